package models

// OptionalWrapper describes the canonical operations of a recognized optional container type
type OptionalWrapper struct {
	Name      string // qualified type name
	Generic   bool   // whether the wrapper carries its element as a type argument
	Empty     string // static factory returning the empty value
	Wrap      string // static factory wrapping a possibly null value
	OrDefault string // instance method extracting the value or null
	NullArg   bool   // whether OrDefault takes an explicit null argument
}

// CanCarry reports whether the wrapper can hold an optional builder property
func (w OptionalWrapper) CanCarry() bool {
	return w.Generic && w.Wrap != "" && w.OrDefault != ""
}

var optionalWrappers = map[string]OptionalWrapper{}

func registerWrapper(w OptionalWrapper, aliases ...string) {
	optionalWrappers[w.Name] = w
	for _, alias := range aliases {
		optionalWrappers[alias] = w
	}
}

func init() {
	registerWrapper(OptionalWrapper{
		Name:      "java.util.Optional",
		Generic:   true,
		Empty:     "empty",
		Wrap:      "ofNullable",
		OrDefault: "orElse",
		NullArg:   true,
	}, "Optional")
	registerWrapper(OptionalWrapper{
		Name:      "com.google.common.base.Optional",
		Generic:   true,
		Empty:     "absent",
		Wrap:      "fromNullable",
		OrDefault: "orNull",
	})
	registerWrapper(OptionalWrapper{Name: "java.util.OptionalInt", Empty: "empty"}, "OptionalInt")
	registerWrapper(OptionalWrapper{Name: "java.util.OptionalLong", Empty: "empty"}, "OptionalLong")
	registerWrapper(OptionalWrapper{Name: "java.util.OptionalDouble", Empty: "empty"}, "OptionalDouble")
}

// LookupOptional returns the wrapper description when t is a recognized optional type
func LookupOptional(t TypeRef) (OptionalWrapper, bool) {
	if t.Variable || t.Primitive != NotPrimitive {
		return OptionalWrapper{}, false
	}
	w, ok := optionalWrappers[t.Name]
	return w, ok
}

// EmptyOptional returns the expression producing the empty value of the wrapper
func EmptyOptional(w OptionalWrapper) Expr {
	return StaticCall{Owner: TypeRef{Name: w.Name}, Name: w.Empty}
}

// WrapOptional returns the expression wrapping value into the optional type t
func WrapOptional(w OptionalWrapper, value Expr) Expr {
	return StaticCall{Owner: TypeRef{Name: w.Name}, Name: w.Wrap, Args: []Expr{value}}
}

// UnwrapOptional returns the expression extracting the value of an optional or null
func UnwrapOptional(w OptionalWrapper, value Expr) Expr {
	var args []Expr
	if w.NullArg {
		args = []Expr{Null{}}
	}
	return Call{Receiver: value, Name: w.OrDefault, Args: args}
}
