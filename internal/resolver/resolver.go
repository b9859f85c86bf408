// Package resolver turns raw provider references into concrete call strategies.
package resolver

import (
	"github.com/toyz/buildforge/internal/annotations"
	"github.com/toyz/buildforge/internal/bounds"
	"github.com/toyz/buildforge/internal/config"
	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
	"github.com/toyz/buildforge/internal/registry"
)

// Scope is the per-specification context references are resolved in
type Scope struct {
	Local   models.TypeRef // enclosing type searched by local references
	Builder models.TypeRef // concrete builder type
	Self    models.TypeRef // self interface instantiation the builder implements
	Env     *bounds.Environment
}

// Resolver resolves provider references against a method catalog
type Resolver struct {
	catalog registry.Catalog
	config  config.Config
}

// New creates a resolver over catalog
func New(catalog registry.Catalog, cfg config.Config) *Resolver {
	return &Resolver{catalog: catalog, config: cfg}
}

// Config returns the configuration the resolver was created with
func (r *Resolver) Config() config.Config {
	return r.config
}

// Resolve resolves ref for the expected usage. Local references are searched
// on the enclosing type and called virtually; all others must name a public
// static method of their owner.
func (r *Resolver) Resolve(ref annotations.Reference, want Expectation, scope Scope) (*models.MethodRefSpec, error) {
	env := scope.Env
	if env == nil {
		env = bounds.Empty()
	}

	owner := ref.Owner
	if ref.Local {
		owner = scope.Local
	}

	candidates := Candidates(want, ref.Local, scope.Builder)
	attempted := describe(owner, ref, candidates)

	if !ref.Local && !r.catalog.HasType(owner) {
		return nil, r.failure(errors.UnresolvedReference, ref, want, attempted)
	}

	named := r.catalog.Lookup(owner, ref.Name)
	callable := make([]registry.ProviderMethod, 0, len(named))
	for _, m := range named {
		if ref.Local && !m.Static || !ref.Local && m.Public && m.Static {
			callable = append(callable, m)
		}
	}
	if len(named) > 0 && len(callable) == 0 {
		return nil, r.failure(errors.NotPublicOrStatic, ref, want, attempted)
	}

	if ref.HasParams || ref.Return != nil {
		callable = narrow(callable, ref)
		if len(callable) == 0 {
			return nil, r.failure(errors.UnresolvedReference, ref, want, []string{explicitSignature(owner, ref)})
		}
	}

	for _, cand := range candidates {
		var found []resolved
		for _, m := range callable {
			sub, err := substitute(m, env)
			if err != nil {
				return nil, err
			}
			if fits(cand, m, sub, want, scope) {
				found = append(found, sub)
			}
		}

		switch len(found) {
		case 0:
			continue
		case 1:
			return r.build(found[0], ref, cand)
		default:
			descriptions := make([]string, len(found))
			for i, f := range found {
				descriptions[i] = f.method.String()
			}
			return nil, r.failure(errors.AmbiguousReference, ref, want, descriptions)
		}
	}

	if len(callable) > 0 {
		return nil, r.failure(errors.SignatureMismatch, ref, want, attempted)
	}
	return nil, r.failure(errors.UnresolvedReference, ref, want, attempted)
}

// resolved is a provider method with the bound names of its signature substituted
type resolved struct {
	method registry.ProviderMethod
	params []models.TypeRef
	ret    models.TypeRef
}

func substitute(m registry.ProviderMethod, env *bounds.Environment) (resolved, error) {
	params, err := env.SubstituteAll(m.Params, m.IsTypeVar)
	if err != nil {
		return resolved{}, err
	}
	ret, err := env.Substitute(m.Return, m.IsTypeVar)
	if err != nil {
		return resolved{}, err
	}
	return resolved{method: m, params: params, ret: ret}, nil
}

func (r *Resolver) build(found resolved, ref annotations.Reference, cand Candidate) (*models.MethodRefSpec, error) {
	m := found.method
	if m.Inline {
		if !m.Compiled || m.Expansion == nil {
			return nil, errors.NewInlineEligibilityError(ref.Raw)
		}
		for _, index := range models.ArgIndexes(m.Expansion) {
			if index < 0 || index >= len(m.Params) {
				return nil, errors.NewInlinePlaceholderError(ref.Raw, index, len(m.Params))
			}
		}
	}

	call := models.ExternalCall
	if ref.Local {
		call = models.LocalCall
	}

	return &models.MethodRefSpec{
		Owner:     m.Owner,
		Name:      m.Name,
		Params:    found.params,
		Return:    found.ret,
		Call:      call,
		Form:      cand.Form,
		Inline:    m.Inline,
		Expansion: m.Expansion,
		Raw:       ref.Raw,
		TypeVars:  append([]string(nil), m.TypeVars...),
	}, nil
}

func (r *Resolver) failure(reason errors.ResolutionReason, ref annotations.Reference, want Expectation, attempted []string) error {
	err := errors.NewReferenceResolutionError(reason, ref.Raw, want.Usage.String(), attempted)
	if want.Subject != "" {
		err.WithContext("subject", want.Subject)
	}
	return err
}

func narrow(methods []registry.ProviderMethod, ref annotations.Reference) []registry.ProviderMethod {
	var out []registry.ProviderMethod
	for _, m := range methods {
		if ref.HasParams && !sameTypes(m.Params, ref.Params) {
			continue
		}
		if ref.Return != nil && !m.Return.Equal(*ref.Return) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func sameTypes(a, b []models.TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// fits reports whether the substituted provider signature serves the candidate
func fits(cand Candidate, m registry.ProviderMethod, sub resolved, want Expectation, scope Scope) bool {
	if len(cand.Params) != len(sub.params) {
		return false
	}
	for i := range cand.Params {
		if !compatible(cand.Params[i], sub.params[i], m, scope) {
			return false
		}
	}

	switch {
	case want.Usage == ValidatorUsage:
		return sub.ret.IsVoid()
	case cand.Return.IsVoid():
		return want.Usage == DefaultImplementationUsage
	case sub.ret.IsVoid():
		return false
	}
	return compatible(cand.Return, sub.ret, m, scope)
}

// compatible is a shape check: equal types, a type variable of the provider,
// Object for any reference type, or the self interface for the builder.
func compatible(want, have models.TypeRef, m registry.ProviderMethod, scope Scope) bool {
	if have.Variable && m.IsTypeVar(have.Name) {
		return true
	}
	if want.IsVoid() || have.IsVoid() {
		return want.IsVoid() && have.IsVoid()
	}
	if have.Equal(want) {
		return true
	}
	if have.Equal(models.ObjectType) && !want.IsPrimitive() {
		return true
	}
	if !scope.Self.IsZero() && want.Equal(scope.Builder) && have.Equal(scope.Self) {
		return true
	}
	if want.IsArray() && have.IsArray() && len(want.Args) == 1 && len(have.Args) == 1 {
		if want.Args[0].IsPrimitive() || have.Args[0].IsPrimitive() {
			return sameArgument(want.Args[0], have.Args[0], m)
		}
		return compatible(want.Args[0], have.Args[0], m, scope)
	}
	if have.Erasure() == want.Erasure() && len(have.Args) == len(want.Args) && len(have.Args) > 0 {
		for i := range have.Args {
			if !sameArgument(want.Args[i], have.Args[i], m) {
				return false
			}
		}
		return true
	}
	return false
}

// sameArgument compares type arguments, which are invariant: only equal
// types or a type variable of the provider match.
func sameArgument(want, have models.TypeRef, m registry.ProviderMethod) bool {
	if have.Variable && m.IsTypeVar(have.Name) {
		return true
	}
	if have.Variable != want.Variable || have.Primitive != want.Primitive {
		return false
	}
	if have.Erasure() != want.Erasure() || len(have.Args) != len(want.Args) {
		return false
	}
	for i := range have.Args {
		if !sameArgument(want.Args[i], have.Args[i], m) {
			return false
		}
	}
	return true
}

func describe(owner models.TypeRef, ref annotations.Reference, candidates []Candidate) []string {
	prefix := owner.String()
	if ref.Local {
		prefix = annotations.LocalMarker
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = prefix + "::" + ref.Name + c.String()
	}
	return out
}

func explicitSignature(owner models.TypeRef, ref annotations.Reference) string {
	prefix := owner.String()
	if ref.Local {
		prefix = annotations.LocalMarker
	}
	ret := models.TypeRef{Name: "?"}
	if ref.Return != nil {
		ret = *ref.Return
	}
	return prefix + "::" + models.Signature{Name: ref.Name, ReturnType: ret, ParamTypes: ref.Params}.String()
}
