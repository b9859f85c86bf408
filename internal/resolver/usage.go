package resolver

import (
	"github.com/toyz/buildforge/internal/models"
)

// Usage is what a provider reference is resolved for
type Usage int

const (
	ValidatorUsage Usage = iota
	DefaultValueUsage
	DefaultImplementationUsage
)

// String returns the string representation of the usage
func (u Usage) String() string {
	switch u {
	case ValidatorUsage:
		return "validator"
	case DefaultValueUsage:
		return "default value"
	case DefaultImplementationUsage:
		return "default implementation"
	default:
		return "unknown"
	}
}

// Expectation describes the site a reference must serve
type Expectation struct {
	Usage   Usage
	Subject string         // property name or method name, for diagnostics
	Value   models.TypeRef // property type for validators and default values
	Method  models.MethodSpec
}

// ForValidator expects a validator of the property
func ForValidator(prop models.PropertySpec) Expectation {
	return Expectation{Usage: ValidatorUsage, Subject: prop.Name, Value: prop.Type}
}

// ForDefaultValue expects a default value provider of the property
func ForDefaultValue(prop models.PropertySpec) Expectation {
	return Expectation{Usage: DefaultValueUsage, Subject: prop.Name, Value: prop.Type}
}

// ForDefaultImplementation expects an implementation of an interface method
func ForDefaultImplementation(method models.MethodSpec) Expectation {
	return Expectation{Usage: DefaultImplementationUsage, Subject: method.Name, Method: method}
}

// Candidate is one signature a provider may declare for an expectation
type Candidate struct {
	Params []models.TypeRef
	Return models.TypeRef
	Form   models.CallForm
}

// String renders the candidate as (params) -> return
func (c Candidate) String() string {
	return models.Signature{ReturnType: c.Return, ParamTypes: c.Params}.String()
}

// Candidates returns the signatures accepted for the expectation, most specific first.
// External default implementations receive the builder as their first argument.
func Candidates(want Expectation, local bool, builder models.TypeRef) []Candidate {
	switch want.Usage {
	case ValidatorUsage:
		return []Candidate{
			{Params: []models.TypeRef{want.Value, models.StringType, models.ReflectType}, Return: models.Void},
			{Params: []models.TypeRef{want.Value, models.StringType}, Return: models.Void},
			{Params: []models.TypeRef{want.Value}, Return: models.Void},
		}
	case DefaultValueUsage:
		return []Candidate{
			{Params: []models.TypeRef{models.StringType, models.ReflectType}, Return: want.Value},
			{Params: []models.TypeRef{models.StringType}, Return: want.Value},
			{Params: nil, Return: want.Value},
		}
	case DefaultImplementationUsage:
		var prefix []models.TypeRef
		if !local {
			prefix = []models.TypeRef{builder}
		}
		positional := append(append([]models.TypeRef(nil), prefix...), want.Method.Signature().ParamTypes...)
		descriptor := append(append([]models.TypeRef(nil), prefix...), models.ReflectMethod, models.ArrayOf(models.ObjectType))
		return []Candidate{
			{Params: positional, Return: want.Method.Return, Form: models.PositionalForm},
			{Params: descriptor, Return: want.Method.Return, Form: models.DescriptorForm},
		}
	}
	return nil
}
