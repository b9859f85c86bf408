package models

import "strings"

// PrimitiveKind identifies the primitive kind of a type, NotPrimitive for reference types
type PrimitiveKind int

const (
	NotPrimitive PrimitiveKind = iota
	Boolean
	Byte
	Short
	Int
	Long
	Float
	Double
	Char
	VoidKind
)

var primitiveNames = map[string]PrimitiveKind{
	"boolean": Boolean,
	"byte":    Byte,
	"short":   Short,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"char":    Char,
	"void":    VoidKind,
}

// String returns the keyword of the primitive kind
func (k PrimitiveKind) String() string {
	for name, kind := range primitiveNames {
		if kind == k {
			return name
		}
	}
	return ""
}

// ZeroLiteral returns the canonical zero value literal of the primitive kind
func (k PrimitiveKind) ZeroLiteral() string {
	switch k {
	case Boolean:
		return "false"
	case Byte, Short, Int:
		return "0"
	case Long:
		return "0L"
	case Float:
		return "0.0f"
	case Double:
		return "0.0"
	case Char:
		return `'\u0000'`
	default:
		return ""
	}
}

// PrimitiveByName returns the primitive kind for a keyword
func PrimitiveByName(name string) (PrimitiveKind, bool) {
	kind, ok := primitiveNames[name]
	return kind, ok
}

// arrayName is the Name of array types, the element type is Args[0]
const arrayName = "[]"

// TypeRef is a reference to a type as it appears in a builder specification.
// Names are qualified for declared types, keywords for primitives and bare
// identifiers for type variables.
type TypeRef struct {
	Name      string
	Args      []TypeRef
	Primitive PrimitiveKind
	Variable  bool
}

// Well-known types referenced by provider signatures
var (
	Void          = TypeRef{Name: "void", Primitive: VoidKind}
	ObjectType    = Named("java.lang.Object")
	StringType    = Named("java.lang.String")
	ReflectType   = Named("java.lang.reflect.Type")
	ReflectMethod = Named("java.lang.reflect.Method")
)

// Named returns a reference to a declared type with optional type arguments
func Named(name string, args ...TypeRef) TypeRef {
	if kind, ok := PrimitiveByName(name); ok && len(args) == 0 {
		return TypeRef{Name: name, Primitive: kind}
	}
	return TypeRef{Name: name, Args: args}
}

// Primitive returns a reference to a primitive type
func Primitive(kind PrimitiveKind) TypeRef {
	return TypeRef{Name: kind.String(), Primitive: kind}
}

// TypeVar returns a reference to a type variable
func TypeVar(name string) TypeRef {
	return TypeRef{Name: name, Variable: true}
}

// ArrayOf returns an array type of the element type
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Name: arrayName, Args: []TypeRef{elem}}
}

// IsVoid reports whether the type is void
func (t TypeRef) IsVoid() bool {
	return t.Primitive == VoidKind
}

// IsPrimitive reports whether the type is a primitive value type
func (t TypeRef) IsPrimitive() bool {
	return t.Primitive != NotPrimitive && t.Primitive != VoidKind
}

// IsArray reports whether the type is an array type
func (t TypeRef) IsArray() bool {
	return t.Name == arrayName
}

// IsZero reports whether the reference is unset
func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

// Erasure returns the canonical name of the type without its arguments
func (t TypeRef) Erasure() string {
	if t.Variable || t.Primitive != NotPrimitive {
		return t.Name
	}
	return canonicalName(t.Name)
}

// SimpleName returns the unqualified type name without arguments
func (t TypeRef) SimpleName() string {
	if idx := strings.LastIndex(t.Name, "."); idx >= 0 {
		return t.Name[idx+1:]
	}
	return t.Name
}

// String renders the type in source form
func (t TypeRef) String() string {
	if t.IsArray() && len(t.Args) == 1 {
		return t.Args[0].String() + "[]"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, arg := range t.Args {
		parts[i] = arg.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// Equal reports whether both references denote the same type
func (t TypeRef) Equal(other TypeRef) bool {
	if t.Variable != other.Variable || t.Primitive != other.Primitive {
		return false
	}
	if t.Erasure() != other.Erasure() || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Mentions reports whether the type variable name occurs anywhere in the type
func (t TypeRef) Mentions(variable string) bool {
	if t.Variable && t.Name == variable {
		return true
	}
	for _, arg := range t.Args {
		if arg.Mentions(variable) {
			return true
		}
	}
	return false
}

// Map returns a copy of the type with fn applied to every type variable
func (t TypeRef) Map(fn func(TypeRef) TypeRef) TypeRef {
	if t.Variable {
		return fn(t)
	}
	if len(t.Args) == 0 {
		return t
	}
	out := t
	out.Args = make([]TypeRef, len(t.Args))
	for i, arg := range t.Args {
		out.Args[i] = arg.Map(fn)
	}
	return out
}

var javaLang = map[string]bool{
	"Object": true, "String": true, "Boolean": true, "Byte": true, "Short": true,
	"Integer": true, "Long": true, "Float": true, "Double": true, "Character": true,
	"Number": true, "Iterable": true, "CharSequence": true,
}

func canonicalName(name string) string {
	if javaLang[name] {
		return "java.lang." + name
	}
	if wrapper, ok := optionalWrappers[name]; ok {
		return wrapper.Name
	}
	switch name {
	case "Type":
		return ReflectType.Name
	case "Method":
		return ReflectMethod.Name
	}
	return name
}
