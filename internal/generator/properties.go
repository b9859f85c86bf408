package generator

import (
	"github.com/toyz/buildforge/internal/models"
)

// initializer returns the initial field value: the default value provider,
// the zero of a primitive, the empty value of an optional wrapper, or null.
func (s *synthesis) initializer(prop models.PropertySpec) models.Expr {
	if ref := prop.DefaultValue; ref != nil {
		value := castTo(invoke(*ref, defaultValueArgs(prop, *ref)), ref.Return, prop.Type, *ref)
		if w, ok := prop.Wrapper(); ok {
			return models.UnwrapOptional(w, value)
		}
		return value
	}

	fieldType := prop.FieldType()
	if fieldType.IsPrimitive() {
		return models.ZeroValue(fieldType)
	}
	if w, ok := models.LookupOptional(fieldType); ok {
		return models.EmptyOptional(w)
	}
	return models.Null{}
}

func (s *synthesis) field(prop models.PropertySpec) models.Field {
	return models.Field{
		Name:     prop.Name,
		Type:     prop.FieldType(),
		Init:     s.initializer(prop),
		Property: prop.Name,
	}
}

func (s *synthesis) noArgConstructor() models.Constructor {
	body := make([]models.Stmt, 0, len(s.spec.Properties))
	for _, prop := range s.spec.Properties {
		body = append(body, models.Assign{Field: prop.Name, Value: s.initializer(prop)})
	}
	return models.Constructor{Body: body}
}

// copyConstructor pre-populates the builder from an existing value. Optional
// properties read from their own accessor are unwrapped; a redirected accessor
// is called once and assigned as is.
func (s *synthesis) copyConstructor() models.Constructor {
	body := make([]models.Stmt, 0, len(s.spec.Properties))
	for _, prop := range s.spec.Properties {
		var value models.Expr = models.Call{Receiver: models.LocalRef{Name: copySource}, Name: prop.DefaultsFrom()}
		if w, ok := prop.Wrapper(); ok && prop.DefaultsFrom() == prop.Name {
			value = models.UnwrapOptional(w, value)
		}
		body = append(body, models.Assign{Field: prop.Name, Value: value})
	}
	return models.Constructor{
		Params: []models.Param{{Name: copySource, Type: s.spec.Value}},
		Body:   body,
		Copy:   true,
	}
}

// validation is shared by setters and build(): null rejection, optional
// wrapping and the validator call, in that order.
func (s *synthesis) validation(prop models.PropertySpec, value models.Expr, rejectNull bool) []models.Stmt {
	var stmts []models.Stmt
	if rejectNull && prop.NeedsNullCheck() {
		stmts = append(stmts, models.RequireNonNull{Value: value, Name: prop.Name})
	}

	if ref := prop.Validator; ref != nil {
		checked := value
		if w, ok := prop.Wrapper(); ok {
			checked = models.WrapOptional(w, value)
		}
		stmts = append(stmts, models.Eval{Value: invoke(*ref, validatorArgs(prop, checked, *ref))})
	}
	return stmts
}

func (s *synthesis) setter(prop models.PropertySpec) models.Method {
	param := models.LocalRef{Name: prop.Name}

	body := s.validation(prop, param, s.config.StrictSetterCheck)
	body = append(body,
		models.Assign{Field: prop.Name, Value: param},
		models.Return{Value: models.This{}},
	)

	return models.Method{
		Name:     prop.SetterName(),
		Return:   s.spec.SelfType(),
		Params:   []models.Param{{Name: prop.Name, Type: prop.BuilderSetterType()}},
		Body:     body,
		Role:     models.RoleSetter,
		Property: prop.Name,
	}
}

func (s *synthesis) getter(prop models.PropertySpec) models.Method {
	var value models.Expr = models.FieldRef{Name: prop.Name}
	if w, ok := prop.Wrapper(); ok {
		value = models.WrapOptional(w, value)
	}
	return models.Method{
		Name:     prop.Name,
		Return:   prop.Type,
		Body:     []models.Stmt{models.Return{Value: value}},
		Role:     models.RoleGetter,
		Override: true,
		Property: prop.Name,
	}
}

// build re-validates every field through the setter validation path, then
// calls the factory with the properties in declaration order.
func (s *synthesis) build() models.Method {
	var body []models.Stmt
	args := make([]models.Expr, 0, len(s.spec.Properties))

	for _, prop := range s.spec.Properties {
		field := models.FieldRef{Name: prop.Name}
		body = append(body, s.validation(prop, field, true)...)

		var arg models.Expr = field
		if w, ok := prop.Wrapper(); ok {
			arg = models.WrapOptional(w, field)
		}
		args = append(args, arg)
	}

	factory := s.spec.Factory
	var result models.Expr
	if factory.UsesConstructor() {
		result = models.New{Type: factory.Owner, Args: args}
	} else {
		result = models.StaticCall{Owner: factory.Owner, Name: factory.Method, Args: args}
	}

	return models.Method{
		Name:   BuildMethodName,
		Return: s.spec.Value,
		Body:   append(body, models.Return{Value: result}),
		Role:   models.RoleBuild,
	}
}

func validatorArgs(prop models.PropertySpec, value models.Expr, ref models.MethodRefSpec) []models.Expr {
	all := []models.Expr{value, models.StringLiteral(prop.Name), models.TypeLiteral{Type: prop.Type}}
	return all[:min(ref.Arity(), len(all))]
}

func defaultValueArgs(prop models.PropertySpec, ref models.MethodRefSpec) []models.Expr {
	all := []models.Expr{models.StringLiteral(prop.Name), models.TypeLiteral{Type: prop.Type}}
	return all[:min(ref.Arity(), len(all))]
}
