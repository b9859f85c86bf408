package annotations

import "github.com/toyz/buildforge/internal/errors"

// BuilderDecl is the typed record of a builder declaration as produced by a front end.
// Types are kept as type expressions and provider references as raw descriptors;
// the resolver turns a BuilderDecl into a models.BuilderSpec.
type BuilderDecl struct {
	Builder    string          // concrete builder type, e.g. com.acme.PersonBuilder
	Value      string          // value type, e.g. com.acme.Person
	Self       string          // self interface instantiation, e.g. PersonSpec<Person, PersonBuilder>
	TypeParams []TypeParamDecl // declared bounds of the self interface
	Properties []PropertyDecl
	Methods    []MethodDecl
	Factory    FactoryDecl
	Location   errors.SourceLocation
}

// TypeParamDecl is a type parameter of the self interface with its upper bound
type TypeParamDecl struct {
	Name  string
	Bound string
}

// PropertyDecl is the record of one property accessor of the value type
type PropertyDecl struct {
	Name         string
	DefaultsFrom string // accessor providing the copy default, defaults to Name
	Type         string
	SetterType   string // defaults to the stored type
	Nullable     bool
	Optional     bool
	DefaultValue string // raw provider descriptor
	Validator    string // raw provider descriptor
}

// MethodDecl is the record of a non-property interface method
type MethodDecl struct {
	Name   string
	Return string
	Params []ParamDecl
	Impl   string // raw provider descriptor, empty when no override is wanted
}

// ParamDecl is a method parameter
type ParamDecl struct {
	Name string
	Type string
}

// FactoryDecl names the factory producing the value type
type FactoryDecl struct {
	Owner  string // defaults to the value type
	Method string // static method name, empty for a constructor
}

// TypeVars returns the names of the declared self interface type parameters
func (d *BuilderDecl) TypeVars() []string {
	vars := make([]string, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		vars[i] = tp.Name
	}
	return vars
}
