// Package bounds maps the self-referential type parameters of a builder's
// self interface to their concrete instantiation.
package bounds

import (
	"sort"
	"strings"

	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

// Role tells which concrete type a bound stands for
type Role int

const (
	ValueBound Role = iota
	BuilderBound
)

// String returns the string representation of the role
func (r Role) String() string {
	if r == BuilderBound {
		return "builder"
	}
	return "value"
}

// Environment is the per-specification mapping from bound names to concrete types
type Environment struct {
	bindings map[string]models.TypeRef
	roles    map[string]Role
}

// Empty returns an environment without bindings
func Empty() *Environment {
	return &Environment{
		bindings: make(map[string]models.TypeRef),
		roles:    make(map[string]Role),
	}
}

// New builds the environment for the two bounds of a self interface. The
// builder bound is the one whose upper bound refers to itself or to the self
// interface, the other one is the value bound. Declaration order is irrelevant.
// Specifications with no type parameters get an empty environment.
func New(params []models.TypeParam, self, value, builder models.TypeRef) (*Environment, error) {
	env := Empty()
	if len(params) == 0 {
		return env, nil
	}
	if len(params) != 2 {
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = p.Name
		}
		sort.Strings(names)
		return nil, errors.NewGenericSubstitutionError(joinNames(names),
			"a self interface must declare exactly two bounds (value type, builder type)")
	}

	first, second := params[0], params[1]
	firstIsBuilder := isBuilderBound(first, self)
	secondIsBuilder := isBuilderBound(second, self)

	switch {
	case firstIsBuilder && !secondIsBuilder:
		env.bind(first.Name, builder, BuilderBound)
		env.bind(second.Name, value, ValueBound)
	case secondIsBuilder && !firstIsBuilder:
		env.bind(second.Name, builder, BuilderBound)
		env.bind(first.Name, value, ValueBound)
	case firstIsBuilder:
		return nil, errors.NewGenericSubstitutionError(sortedNames(first.Name, second.Name),
			"both bounds refer to the builder type")
	default:
		return nil, errors.NewGenericSubstitutionError(sortedNames(first.Name, second.Name),
			"no bound refers to the builder type")
	}
	return env, nil
}

func isBuilderBound(param models.TypeParam, self models.TypeRef) bool {
	if param.Bound.Mentions(param.Name) {
		return true
	}
	return !self.IsZero() && param.Bound.Erasure() == self.Erasure()
}

func (e *Environment) bind(name string, concrete models.TypeRef, role Role) {
	e.bindings[name] = concrete
	e.roles[name] = role
}

func sortedNames(names ...string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return joinNames(sorted)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

// Lookup returns the concrete type bound to name
func (e *Environment) Lookup(name string) (models.TypeRef, error) {
	t, ok := e.bindings[name]
	if !ok {
		return models.TypeRef{}, errors.NewGenericSubstitutionError(name, "name is not a bound of the self interface")
	}
	return t, nil
}

// Role returns whether name is the value or the builder bound
func (e *Environment) Role(name string) (Role, bool) {
	r, ok := e.roles[name]
	return r, ok
}

// Has reports whether name is bound
func (e *Environment) Has(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Len returns the number of bindings
func (e *Environment) Len() int {
	return len(e.bindings)
}

// Substitute replaces every bound type variable in t by its concrete type.
// Variables for which keep returns true are left untouched; any other
// unbound variable is a substitution error.
func (e *Environment) Substitute(t models.TypeRef, keep func(string) bool) (models.TypeRef, error) {
	var failure error
	out := t.Map(func(v models.TypeRef) models.TypeRef {
		if concrete, ok := e.bindings[v.Name]; ok {
			return concrete
		}
		if keep != nil && keep(v.Name) {
			return v
		}
		if failure == nil {
			failure = errors.NewGenericSubstitutionError(v.Name, "name is not a bound of the self interface")
		}
		return v
	})
	if failure != nil {
		return models.TypeRef{}, failure
	}
	return out, nil
}

// SubstituteAll substitutes a list of types
func (e *Environment) SubstituteAll(types []models.TypeRef, keep func(string) bool) ([]models.TypeRef, error) {
	out := make([]models.TypeRef, len(types))
	for i, t := range types {
		s, err := e.Substitute(t, keep)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
