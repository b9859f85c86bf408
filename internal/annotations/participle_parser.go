package annotations

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

// LocalMarker prefixes references resolved against the builder itself
const LocalMarker = "this"

// Reference is a parsed raw provider descriptor:
//
//	[this | Owner] :: name [( types )] [-> type]
type Reference struct {
	Raw       string
	Local     bool
	Owner     models.TypeRef // zero for local references
	Name      string
	Params    []models.TypeRef
	HasParams bool // explicit parameter list, possibly empty
	Return    *models.TypeRef
}

type typeNode struct {
	Path []string    `parser:"@Ident ( '.' @Ident )*"`
	Args []*typeNode `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Dims []string    `parser:"( @'[' ']' )*"`
}

type typeList struct {
	Open  string      `parser:"@'('"`
	Types []*typeNode `parser:"( @@ ( ',' @@ )* )? ')'"`
}

type referenceNode struct {
	This   bool      `parser:"( @'this'"`
	Owner  *typeNode `parser:"| @@ )?"`
	Name   string    `parser:"'::' @Ident"`
	Params *typeList `parser:"@@?"`
	Return *typeNode `parser:"( Arrow @@ )?"`
}

type exprNode struct {
	Head  *primaryNode  `parser:"@@"`
	Calls []*callSuffix `parser:"@@*"`
}

type callSuffix struct {
	Name string   `parser:"'.' @Ident"`
	Args *argList `parser:"@@"`
}

type argList struct {
	Args []*exprNode `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

type newNode struct {
	Type *typeNode `parser:"@@"`
	Args *argList  `parser:"@@"`
}

type staticNode struct {
	Path []string `parser:"@Ident ( '.' @Ident )+"`
	Args *argList `parser:"@@"`
}

type primaryNode struct {
	Null   bool        `parser:"  @'null'"`
	Bool   *string     `parser:"| @( 'true' | 'false' )"`
	Arg    *string     `parser:"| @Arg"`
	This   bool        `parser:"| @'this'"`
	New    *newNode    `parser:"| 'new' @@"`
	Number *string     `parser:"| @Number"`
	String *string     `parser:"| @String"`
	Char   *string     `parser:"| @Char"`
	Group  *exprNode   `parser:"| '(' @@ ')'"`
	Static *staticNode `parser:"| @@"`
}

// ParticipleParser parses type expressions, provider descriptors and inline
// provider expansions using alecthomas/participle
type ParticipleParser struct {
	types *participle.Parser[typeNode]
	refs  *participle.Parser[referenceNode]
	exprs *participle.Parser[exprNode]
}

// NewParticipleParser creates a new parser using participle
func NewParticipleParser() *ParticipleParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Char", Pattern: `'(\\.|[^'\\])+'`},
		{Name: "Arrow", Pattern: `->`},
		{Name: "DoubleColon", Pattern: `::`},
		{Name: "Arg", Pattern: `\$[0-9]+`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?[fFdDlL]?`},
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
		{Name: "Punct", Pattern: `[<>,.()\[\]]`},
	})

	options := []participle.Option{
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(4),
	}

	return &ParticipleParser{
		types: participle.MustBuild[typeNode](options...),
		refs:  participle.MustBuild[referenceNode](options...),
		exprs: participle.MustBuild[exprNode](options...),
	}
}

var defaultParser = NewParticipleParser()

// ParseType parses a type expression with the default parser
func ParseType(input string, vars ...string) (models.TypeRef, error) {
	return defaultParser.ParseType(input, vars...)
}

// ParseReference parses a provider descriptor with the default parser
func ParseReference(input string, vars ...string) (Reference, error) {
	return defaultParser.ParseReference(input, vars...)
}

// ParseExpression parses an inline provider expansion with the default parser
func ParseExpression(input string) (models.Expr, error) {
	return defaultParser.ParseExpression(input)
}

// ParseType parses a type expression; single identifiers listed in vars become type variables
func (p *ParticipleParser) ParseType(input string, vars ...string) (models.TypeRef, error) {
	node, err := p.types.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return models.TypeRef{}, errors.WrapParseError(input, err)
	}
	return toTypeRef(node, varSet(vars)), nil
}

// ParseReference parses a raw provider descriptor. A descriptor starting with
// "::" is local, the same as "this::".
func (p *ParticipleParser) ParseReference(input string, vars ...string) (Reference, error) {
	text := strings.TrimSpace(input)
	if strings.HasPrefix(text, "::") {
		text = LocalMarker + text
	}

	node, err := p.refs.ParseString("", text)
	if err != nil {
		return Reference{}, errors.WrapParseError(input, err)
	}
	if !node.This && node.Owner == nil {
		return Reference{}, errors.NewSyntaxError(input, "missing owner type or 'this' before '::'")
	}

	known := varSet(vars)
	ref := Reference{Raw: strings.TrimSpace(input), Local: node.This, Name: node.Name}
	if node.Owner != nil {
		ref.Owner = toTypeRef(node.Owner, known)
	}
	if node.Params != nil {
		ref.HasParams = true
		for _, t := range node.Params.Types {
			ref.Params = append(ref.Params, toTypeRef(t, known))
		}
	}
	if node.Return != nil {
		ret := toTypeRef(node.Return, known)
		ref.Return = &ret
	}
	return ref, nil
}

// ParseExpression parses an inline expansion such as Objects.requireNonNull($0, $1)
func (p *ParticipleParser) ParseExpression(input string) (models.Expr, error) {
	node, err := p.exprs.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return nil, errors.WrapParseError(input, err)
	}
	return toExpr(node)
}

func varSet(vars []string) map[string]bool {
	set := make(map[string]bool, len(vars))
	for _, v := range vars {
		set[v] = true
	}
	return set
}

func toTypeRef(node *typeNode, vars map[string]bool) models.TypeRef {
	name := strings.Join(node.Path, ".")

	var t models.TypeRef
	switch {
	case len(node.Path) == 1 && vars[name] && len(node.Args) == 0:
		t = models.TypeVar(name)
	default:
		args := make([]models.TypeRef, 0, len(node.Args))
		for _, arg := range node.Args {
			args = append(args, toTypeRef(arg, vars))
		}
		t = models.Named(name, args...)
	}

	for range node.Dims {
		t = models.ArrayOf(t)
	}
	return t
}

func toExprs(nodes *argList) ([]models.Expr, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]models.Expr, 0, len(nodes.Args))
	for _, n := range nodes.Args {
		e, err := toExpr(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func toExpr(node *exprNode) (models.Expr, error) {
	head, err := toPrimary(node.Head)
	if err != nil {
		return nil, err
	}
	for _, call := range node.Calls {
		args, err := toExprs(call.Args)
		if err != nil {
			return nil, err
		}
		head = models.Call{Receiver: head, Name: call.Name, Args: args}
	}
	return head, nil
}

func toPrimary(node *primaryNode) (models.Expr, error) {
	switch {
	case node.Null:
		return models.Null{}, nil
	case node.Bool != nil:
		return models.Literal{Type: models.Primitive(models.Boolean), Value: *node.Bool}, nil
	case node.Arg != nil:
		idx, err := strconv.Atoi(strings.TrimPrefix(*node.Arg, "$"))
		if err != nil {
			return nil, errors.WrapParseError(*node.Arg, err)
		}
		return models.ArgRef{Index: idx}, nil
	case node.This:
		return models.This{}, nil
	case node.New != nil:
		args, err := toExprs(node.New.Args)
		if err != nil {
			return nil, err
		}
		return models.New{Type: toTypeRef(node.New.Type, nil), Args: args}, nil
	case node.Number != nil:
		return numberLiteral(*node.Number), nil
	case node.String != nil:
		return models.Literal{Type: models.StringType, Value: *node.String}, nil
	case node.Char != nil:
		return models.Literal{Type: models.Primitive(models.Char), Value: *node.Char}, nil
	case node.Group != nil:
		return toExpr(node.Group)
	case node.Static != nil:
		args, err := toExprs(node.Static.Args)
		if err != nil {
			return nil, err
		}
		path := node.Static.Path
		return models.StaticCall{
			Owner: models.Named(strings.Join(path[:len(path)-1], ".")),
			Name:  path[len(path)-1],
			Args:  args,
		}, nil
	}
	return nil, errors.NewSyntaxError("", "empty expression")
}

func numberLiteral(text string) models.Literal {
	kind := models.Int
	switch {
	case strings.HasSuffix(text, "L") || strings.HasSuffix(text, "l"):
		kind = models.Long
	case strings.HasSuffix(text, "f") || strings.HasSuffix(text, "F"):
		kind = models.Float
	case strings.HasSuffix(text, "d") || strings.HasSuffix(text, "D") || strings.Contains(text, "."):
		kind = models.Double
	}
	return models.Literal{Type: models.Primitive(kind), Value: text}
}
