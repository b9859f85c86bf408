package models

import "strconv"

// MemberKind identifies the kind of a synthesized class member
type MemberKind int

const (
	FieldMember MemberKind = iota
	ConstructorMember
	MethodMember
)

// MethodRole tells emission backends and verifiers what a synthesized method is for
type MethodRole int

const (
	RoleSetter MethodRole = iota
	RoleGetter
	RoleDefaultOverride
	RoleBuild
)

// Member is one declaration of the synthesized builder class
type Member interface {
	Kind() MemberKind
	MemberName() string
}

// Param is a formal parameter of a constructor or method
type Param struct {
	Name string
	Type TypeRef
}

// Field is a private instance field holding one property value
type Field struct {
	Name     string
	Type     TypeRef
	Init     Expr
	Property string // property the field stores
}

func (Field) Kind() MemberKind     { return FieldMember }
func (f Field) MemberName() string { return f.Name }

// Constructor is a builder constructor, Copy is set for the instance-copy constructor
type Constructor struct {
	Params []Param
	Body   []Stmt
	Copy   bool
}

func (Constructor) Kind() MemberKind   { return ConstructorMember }
func (Constructor) MemberName() string { return "<init>" }

// Method is a synthesized public method
type Method struct {
	Name     string
	Return   TypeRef
	Params   []Param
	Body     []Stmt
	Role     MethodRole
	Override bool
	Property string // property the method belongs to, empty for overrides and build
}

func (Method) Kind() MemberKind     { return MethodMember }
func (m Method) MemberName() string { return m.Name }

// Signature is the shape of a method as seen by verifiers
type Signature struct {
	Name       string
	ReturnType TypeRef
	ParamTypes []TypeRef
}

// Signature returns the signature of the method
func (m Method) Signature() Signature {
	params := make([]TypeRef, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.Type
	}
	return Signature{Name: m.Name, ReturnType: m.Return, ParamTypes: params}
}

// String renders the signature as name(types) -> return
func (s Signature) String() string {
	out := s.Name + "("
	for i, p := range s.ParamTypes {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out + ") -> " + s.ReturnType.String()
}

// Stmt is a statement of a synthesized body
type Stmt interface{ stmtNode() }

// Assign stores a value into an instance field of the builder
type Assign struct {
	Field string
	Value Expr
}

// Return returns Value, or nothing when Value is nil
type Return struct {
	Value Expr
}

// Eval evaluates an expression for its side effects
type Eval struct {
	Value Expr
}

// RequireNonNull rejects a null Value, reporting Name as the offending property
type RequireNonNull struct {
	Value Expr
	Name  string
}

func (Assign) stmtNode()         {}
func (Return) stmtNode()         {}
func (Eval) stmtNode()           {}
func (RequireNonNull) stmtNode() {}

// Expr is an expression of a synthesized body
type Expr interface{ exprNode() }

// Literal is a source literal of the given type
type Literal struct {
	Type  TypeRef
	Value string
}

// Null is the null reference
type Null struct{}

// This is the builder instance
type This struct{}

// FieldRef reads an instance field of the builder
type FieldRef struct {
	Name string
}

// LocalRef reads a parameter of the enclosing member
type LocalRef struct {
	Name string
}

// ArgRef is the placeholder for the Index-th argument inside an inline expansion
type ArgRef struct {
	Index int
}

// TypeLiteral is a runtime type token for Type
type TypeLiteral struct {
	Type TypeRef
}

// MethodLiteral is a runtime descriptor of an interface method
type MethodLiteral struct {
	Owner  TypeRef
	Name   string
	Params []TypeRef
}

// ArrayLiteral creates an array of Elem holding Values
type ArrayLiteral struct {
	Elem   TypeRef
	Values []Expr
}

// Call is an instance call on Receiver
type Call struct {
	Receiver Expr
	Name     string
	Args     []Expr
}

// StaticCall is a call of a static method of Owner
type StaticCall struct {
	Owner TypeRef
	Name  string
	Args  []Expr
}

// New invokes a constructor of Type
type New struct {
	Type TypeRef
	Args []Expr
}

// Cast converts Value to Type
type Cast struct {
	Type  TypeRef
	Value Expr
}

// Spliced is an inline provider expansion placed directly into a body
type Spliced struct {
	Provider string
	Value    Expr
}

func (Literal) exprNode()       {}
func (Null) exprNode()          {}
func (This) exprNode()          {}
func (FieldRef) exprNode()      {}
func (LocalRef) exprNode()      {}
func (ArgRef) exprNode()        {}
func (TypeLiteral) exprNode()   {}
func (MethodLiteral) exprNode() {}
func (ArrayLiteral) exprNode()  {}
func (Call) exprNode()          {}
func (StaticCall) exprNode()    {}
func (New) exprNode()           {}
func (Cast) exprNode()          {}
func (Spliced) exprNode()       {}

// StringLiteral returns a string literal expression
func StringLiteral(s string) Literal {
	return Literal{Type: StringType, Value: strconv.Quote(s)}
}

// ZeroValue returns the canonical zero literal of a primitive type
func ZeroValue(t TypeRef) Literal {
	return Literal{Type: t, Value: t.Primitive.ZeroLiteral()}
}

// SubstituteArgs replaces every ArgRef of expr with the matching entry of args
func SubstituteArgs(expr Expr, args []Expr) Expr {
	return Rewrite(expr, func(e Expr) (Expr, bool) {
		if ref, ok := e.(ArgRef); ok && ref.Index >= 0 && ref.Index < len(args) {
			return args[ref.Index], true
		}
		return nil, false
	})
}

// ArgIndexes returns the placeholder indexes used by an inline expansion in visiting order
func ArgIndexes(expr Expr) []int {
	var indexes []int
	Rewrite(expr, func(e Expr) (Expr, bool) {
		if ref, ok := e.(ArgRef); ok {
			indexes = append(indexes, ref.Index)
		}
		return nil, false
	})
	return indexes
}

// Rewrite walks expr top-down. A node for which fn returns true is replaced
// and its children are not visited.
func Rewrite(expr Expr, fn func(Expr) (Expr, bool)) Expr {
	if expr == nil {
		return nil
	}
	if replaced, ok := fn(expr); ok {
		return replaced
	}

	rewriteAll := func(in []Expr) []Expr {
		if in == nil {
			return nil
		}
		out := make([]Expr, len(in))
		for i, e := range in {
			out[i] = Rewrite(e, fn)
		}
		return out
	}

	switch e := expr.(type) {
	case Call:
		return Call{Receiver: Rewrite(e.Receiver, fn), Name: e.Name, Args: rewriteAll(e.Args)}
	case StaticCall:
		return StaticCall{Owner: e.Owner, Name: e.Name, Args: rewriteAll(e.Args)}
	case New:
		return New{Type: e.Type, Args: rewriteAll(e.Args)}
	case Cast:
		return Cast{Type: e.Type, Value: Rewrite(e.Value, fn)}
	case ArrayLiteral:
		return ArrayLiteral{Elem: e.Elem, Values: rewriteAll(e.Values)}
	case Spliced:
		return Spliced{Provider: e.Provider, Value: Rewrite(e.Value, fn)}
	default:
		return expr
	}
}
