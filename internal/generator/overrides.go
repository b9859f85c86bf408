package generator

import (
	"github.com/toyz/buildforge/internal/models"
)

// invoke is the single call emission point for resolved providers: inline
// providers are spliced with their placeholders bound to args, local ones are
// called on the builder and external ones statically on their owner.
func invoke(ref models.MethodRefSpec, args []models.Expr) models.Expr {
	switch {
	case ref.Inline:
		return models.Spliced{Provider: ref.String(), Value: models.SubstituteArgs(ref.Expansion, args)}
	case ref.IsThis():
		return models.Call{Receiver: models.This{}, Name: ref.Name, Args: args}
	default:
		return models.StaticCall{Owner: ref.Owner, Name: ref.Name, Args: args}
	}
}

// castTo converts a provider result of type have to want. Results typed by
// one of the provider's own type variables are inferred and left alone.
func castTo(expr models.Expr, have, want models.TypeRef, ref models.MethodRefSpec) models.Expr {
	switch {
	case want.IsVoid(), have.IsVoid():
		return expr
	case have.Variable && ref.IsTypeVar(have.Name):
		return expr
	case have.Equal(want):
		return expr
	}
	return models.Cast{Type: want, Value: expr}
}

func (s *synthesis) override(method models.MethodSpec) (models.Method, error) {
	ref := *method.Provider

	ret, err := s.env.Substitute(method.Return, nil)
	if err != nil {
		return models.Method{}, err
	}
	params := make([]models.Param, len(method.Params))
	for i, p := range method.Params {
		t, err := s.env.Substitute(p.Type, nil)
		if err != nil {
			return models.Method{}, err
		}
		params[i] = models.Param{Name: p.Name, Type: t}
	}

	var args []models.Expr
	if !ref.IsThis() {
		args = append(args, models.This{})
	}

	switch ref.Form {
	case models.DescriptorForm:
		types := make([]models.TypeRef, len(params))
		values := make([]models.Expr, len(params))
		for i, p := range params {
			types[i] = p.Type
			values[i] = models.LocalRef{Name: p.Name}
		}
		args = append(args,
			models.MethodLiteral{Owner: s.spec.SelfType(), Name: method.Name, Params: types},
			models.ArrayLiteral{Elem: models.ObjectType, Values: values},
		)
	default:
		for _, p := range params {
			args = append(args, models.LocalRef{Name: p.Name})
		}
	}

	call := invoke(ref, args)

	var body models.Stmt
	if ret.IsVoid() {
		body = models.Eval{Value: call}
	} else {
		body = models.Return{Value: castTo(call, ref.Return, ret, ref)}
	}

	return models.Method{
		Name:     method.Name,
		Return:   ret,
		Params:   params,
		Body:     []models.Stmt{body},
		Role:     models.RoleDefaultOverride,
		Override: true,
	}, nil
}
