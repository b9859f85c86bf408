package resolver

import (
	"fmt"

	"github.com/toyz/buildforge/internal/annotations"
	"github.com/toyz/buildforge/internal/bounds"
	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

// ResolveSpec turns a builder declaration into a fully resolved specification.
// Nothing is returned unless every type and reference resolves. With FailFast
// the first error is returned, otherwise all errors are collected.
func (r *Resolver) ResolveSpec(decl *annotations.BuilderDecl) (*models.BuilderSpec, *bounds.Environment, error) {
	if decl == nil {
		return nil, nil, errors.NewSpecError("", "", "declaration cannot be nil")
	}

	c := &collector{errs: errors.NewMultipleErrors(), failFast: r.config.FailFast, loc: decl.Location}
	vars := decl.TypeVars()

	spec := &models.BuilderSpec{}
	spec.Builder = c.parseType(decl.Builder, "builder type")
	spec.Value = c.parseType(decl.Value, "value type")
	if decl.Self != "" {
		spec.Self = c.parseType(decl.Self, "self interface")
	}
	for _, tp := range decl.TypeParams {
		bound := models.ObjectType
		if tp.Bound != "" {
			bound = c.parseType(tp.Bound, "bound "+tp.Name, vars...)
		}
		spec.TypeParams = append(spec.TypeParams, models.TypeParam{Name: tp.Name, Bound: bound})
	}

	spec.Factory = models.FactorySpec{Owner: spec.Value, Method: decl.Factory.Method}
	if decl.Factory.Owner != "" {
		spec.Factory.Owner = c.parseType(decl.Factory.Owner, "factory owner")
	}
	if c.stop() {
		return nil, nil, c.result()
	}

	env, err := bounds.New(spec.TypeParams, spec.Self, spec.Value, spec.Builder)
	if err != nil {
		c.add(err)
		return nil, nil, c.result()
	}

	scope := Scope{Local: spec.SelfType(), Builder: spec.Builder, Self: spec.SelfType(), Env: env}

	for _, pd := range decl.Properties {
		prop, ok := r.resolveProperty(c, pd, vars, scope)
		if c.stop() {
			return nil, nil, c.result()
		}
		if ok {
			spec.Properties = append(spec.Properties, prop)
		}
	}

	for _, md := range decl.Methods {
		method, ok := r.resolveMethod(c, md, vars, scope)
		if c.stop() {
			return nil, nil, c.result()
		}
		if ok {
			spec.Methods = append(spec.Methods, method)
		}
	}

	if err := c.result(); err != nil {
		return nil, nil, err
	}
	return spec, env, nil
}

func (r *Resolver) resolveProperty(c *collector, pd annotations.PropertyDecl, vars []string, scope Scope) (models.PropertySpec, bool) {
	subject := "property " + pd.Name
	mark := c.errs.Count()
	prop := models.PropertySpec{
		Name:                 pd.Name,
		DefaultsPropertyName: pd.DefaultsFrom,
		Nullable:             pd.Nullable || pd.Optional,
		Optional:             pd.Optional,
	}

	prop.Type = c.concrete(c.parseType(pd.Type, subject, vars...), scope.Env)
	if pd.SetterType != "" {
		prop.SetterType = c.concrete(c.parseType(pd.SetterType, subject+" setter", vars...), scope.Env)
	}
	if c.errs.Count() > mark {
		return prop, false
	}

	if pd.DefaultValue != "" {
		prop.DefaultValue = r.resolveRef(c, pd.DefaultValue, ForDefaultValue(prop), vars, scope)
	}
	if pd.Validator != "" && !c.stop() {
		prop.Validator = r.resolveRef(c, pd.Validator, ForValidator(prop), vars, scope)
	}
	return prop, true
}

func (r *Resolver) resolveMethod(c *collector, md annotations.MethodDecl, vars []string, scope Scope) (models.MethodSpec, bool) {
	subject := "method " + md.Name
	mark := c.errs.Count()
	method := models.MethodSpec{Name: md.Name, Return: models.Void}
	if md.Return != "" {
		method.Return = c.parseType(md.Return, subject, vars...)
	}
	for i, p := range md.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		method.Params = append(method.Params, models.Param{Name: name, Type: c.parseType(p.Type, subject, vars...)})
	}
	if c.errs.Count() > mark {
		return method, false
	}

	if md.Impl != "" {
		expected := method
		expected.Return = c.concrete(method.Return, scope.Env)
		expected.Params = make([]models.Param, len(method.Params))
		for i, p := range method.Params {
			expected.Params[i] = models.Param{Name: p.Name, Type: c.concrete(p.Type, scope.Env)}
		}
		if c.errs.Count() > mark {
			return method, false
		}
		method.Provider = r.resolveRef(c, md.Impl, ForDefaultImplementation(expected), vars, scope)
	}
	return method, true
}

func (r *Resolver) resolveRef(c *collector, raw string, want Expectation, vars []string, scope Scope) *models.MethodRefSpec {
	ref, err := annotations.ParseReference(raw, vars...)
	if err != nil {
		c.add(err)
		return nil
	}
	spec, err := r.Resolve(ref, want, scope)
	if err != nil {
		c.add(err)
		return nil
	}
	return spec
}

// collector gathers errors of one declaration according to the fail-fast setting
type collector struct {
	errs     *errors.MultipleErrors
	failFast bool
	loc      errors.SourceLocation
}

func (c *collector) add(err error) {
	errors.Locate(err, c.loc)
	if fe, ok := err.(errors.ForgeError); ok {
		c.errs.Add(fe)
		return
	}
	c.errs.Add(errors.Wrap(errors.UnknownErrorCode, err.Error(), err).WithLocation(c.loc))
}

func (c *collector) failed() bool {
	return !c.errs.IsEmpty()
}

func (c *collector) stop() bool {
	return c.failFast && c.failed()
}

func (c *collector) result() error {
	return c.errs.ToError()
}

func (c *collector) parseType(input, subject string, vars ...string) models.TypeRef {
	if c.stop() {
		return models.TypeRef{}
	}
	if input == "" {
		c.add(errors.NewSyntaxError(input, subject+" has no type"))
		return models.TypeRef{}
	}
	t, err := annotations.ParseType(input, vars...)
	if err != nil {
		if base, ok := err.(interface{ Base() *errors.BaseError }); ok {
			base.Base().WithContext("subject", subject)
		}
		c.add(err)
		return models.TypeRef{}
	}
	return t
}

func (c *collector) concrete(t models.TypeRef, env *bounds.Environment) models.TypeRef {
	if t.IsZero() {
		return t
	}
	out, err := env.Substitute(t, nil)
	if err != nil {
		c.add(err)
		return t
	}
	return out
}
