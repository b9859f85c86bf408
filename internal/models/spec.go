package models

import "strings"

// CallKind is how a resolved provider is invoked
type CallKind int

const (
	// ExternalCall invokes a public static method of an external owner type
	ExternalCall CallKind = iota
	// LocalCall invokes a method of the builder itself through a virtual call
	LocalCall
)

// String returns the string representation of the call kind
func (k CallKind) String() string {
	if k == LocalCall {
		return "local"
	}
	return "external"
}

// CallForm is the argument layout a default implementation provider expects
type CallForm int

const (
	// PositionalForm passes the overridden method's arguments one by one
	PositionalForm CallForm = iota
	// DescriptorForm passes a method descriptor followed by an argument array
	DescriptorForm
)

// MethodRefSpec is a provider reference resolved to a concrete call strategy
type MethodRefSpec struct {
	Owner     TypeRef
	Name      string
	Params    []TypeRef
	Return    TypeRef
	Call      CallKind
	Form      CallForm
	Inline    bool
	Expansion Expr     // inline expression with ArgRef placeholders
	Raw       string   // reference as written
	TypeVars  []string // type variables declared by the provider method
}

// IsThis reports whether the provider is called on the builder itself
func (r MethodRefSpec) IsThis() bool {
	return r.Call == LocalCall
}

// Arity returns the number of provider parameters
func (r MethodRefSpec) Arity() int {
	return len(r.Params)
}

// String renders the reference as Owner::name(params) -> return
func (r MethodRefSpec) String() string {
	owner := r.Owner.String()
	if r.IsThis() {
		owner = "this"
	}
	sig := Signature{Name: r.Name, ReturnType: r.Return, ParamTypes: r.Params}
	return owner + "::" + sig.String()
}

// IsTypeVar reports whether name is a type variable declared by the provider
func (r MethodRefSpec) IsTypeVar(name string) bool {
	for _, v := range r.TypeVars {
		if v == name {
			return true
		}
	}
	return false
}

// PropertySpec describes one property of the value type
type PropertySpec struct {
	Name                 string
	DefaultsPropertyName string
	Type                 TypeRef
	SetterType           TypeRef
	Nullable             bool
	Optional             bool
	DefaultValue         *MethodRefSpec
	Validator            *MethodRefSpec
}

// DefaultsFrom returns the accessor of the value type that supplies the copy default
func (p PropertySpec) DefaultsFrom() string {
	if p.DefaultsPropertyName == "" {
		return p.Name
	}
	return p.DefaultsPropertyName
}

// Wrapper returns the optional wrapper of an optional property
func (p PropertySpec) Wrapper() (OptionalWrapper, bool) {
	if !p.Optional {
		return OptionalWrapper{}, false
	}
	w, ok := LookupOptional(p.Type)
	if !ok || !w.CanCarry() || len(p.Type.Args) != 1 {
		return OptionalWrapper{}, false
	}
	return w, true
}

// FieldType returns the type stored by the builder, the element type for optional properties
func (p PropertySpec) FieldType() TypeRef {
	if _, ok := p.Wrapper(); ok {
		return p.Type.Args[0]
	}
	return p.Type
}

// BuilderSetterType returns the parameter type of the fluent setter
func (p PropertySpec) BuilderSetterType() TypeRef {
	if !p.SetterType.IsZero() {
		return p.SetterType
	}
	return p.FieldType()
}

// NeedsNullCheck reports whether a null value must be rejected for the property
func (p PropertySpec) NeedsNullCheck() bool {
	return !p.Nullable && !p.Type.IsPrimitive()
}

// SetterName returns the name of the fluent setter
func (p PropertySpec) SetterName() string {
	return "with" + capitalize(p.Name)
}

// MethodSpec is a non-property interface method that needs a synthesized body
type MethodSpec struct {
	Name     string
	Return   TypeRef
	Params   []Param
	Provider *MethodRefSpec
}

// Signature returns the signature of the interface method
func (m MethodSpec) Signature() Signature {
	params := make([]TypeRef, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.Type
	}
	return Signature{Name: m.Name, ReturnType: m.Return, ParamTypes: params}
}

// FactorySpec names how the value type is produced from the collected properties
type FactorySpec struct {
	Owner  TypeRef
	Method string // static factory method, empty to use a constructor
}

// UsesConstructor reports whether the factory is a constructor of Owner
func (f FactorySpec) UsesConstructor() bool {
	return f.Method == ""
}

// TypeParam is a declared type parameter of the builder's self interface
type TypeParam struct {
	Name  string
	Bound TypeRef
}

// BuilderSpec is the aggregate root of a generation request
type BuilderSpec struct {
	Builder    TypeRef     // concrete builder type being generated
	Value      TypeRef     // immutable value type the builder produces
	Self       TypeRef     // generic self interface the builder implements
	TypeParams []TypeParam // declared bounds of the self interface
	Properties []PropertySpec
	Methods    []MethodSpec
	Factory    FactorySpec
}

// Property returns the property with the given name
func (b *BuilderSpec) Property(name string) (PropertySpec, bool) {
	for _, p := range b.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertySpec{}, false
}

// SelfType returns the type setters return, the self interface when declared
func (b *BuilderSpec) SelfType() TypeRef {
	if b.Self.IsZero() {
		return b.Builder
	}
	return b.Self
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
