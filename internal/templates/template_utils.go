package templates

import (
	"fmt"
	"strings"

	"github.com/toyz/buildforge/internal/models"
)

// objectsType hosts the null rejection helper of rendered setters
const objectsType = "java.util.Objects"

// descriptorHelper is the private method rendered method descriptors go through
const descriptorHelper = "descriptor$"

// TemplateUtils renders member bodies as source text for one class
type TemplateUtils struct {
	imports *ImportManager
}

// NewTemplateUtils creates template utilities spelling types through imports
func NewTemplateUtils(imports *ImportManager) *TemplateUtils {
	return &TemplateUtils{imports: imports}
}

// TypeName returns the source spelling of t
func (tu *TemplateUtils) TypeName(t models.TypeRef) string {
	return tu.imports.Name(t)
}

// Params renders a formal parameter list
func (tu *TemplateUtils) Params(params []models.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = tu.TypeName(p.Type) + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

// Statement renders one statement including its terminator
func (tu *TemplateUtils) Statement(stmt models.Stmt) string {
	switch s := stmt.(type) {
	case models.Assign:
		return fmt.Sprintf("this.%s = %s;", s.Field, tu.Expr(s.Value))
	case models.Return:
		if s.Value == nil {
			return "return;"
		}
		return fmt.Sprintf("return %s;", tu.Expr(s.Value))
	case models.Eval:
		return tu.Expr(s.Value) + ";"
	case models.RequireNonNull:
		return fmt.Sprintf("%s.requireNonNull(%s, %s);",
			tu.imports.erasure(objectsType), tu.Expr(s.Value), models.StringLiteral(s.Name).Value)
	default:
		return fmt.Sprintf("/* unsupported statement %T */", stmt)
	}
}

// Statements renders a body, one statement per entry
func (tu *TemplateUtils) Statements(body []models.Stmt) []string {
	lines := make([]string, len(body))
	for i, stmt := range body {
		lines[i] = tu.Statement(stmt)
	}
	return lines
}

// Expr renders an expression
func (tu *TemplateUtils) Expr(expr models.Expr) string {
	switch e := expr.(type) {
	case nil:
		return "null"
	case models.Literal:
		return e.Value
	case models.Null:
		return "null"
	case models.This:
		return "this"
	case models.FieldRef:
		return "this." + e.Name
	case models.LocalRef:
		return e.Name
	case models.ArgRef:
		return fmt.Sprintf("$%d", e.Index)
	case models.TypeLiteral:
		return tu.classLiteral(e.Type)
	case models.MethodLiteral:
		args := []string{tu.classLiteral(e.Owner), models.StringLiteral(e.Name).Value}
		for _, p := range e.Params {
			args = append(args, tu.classLiteral(p))
		}
		return descriptorHelper + "(" + strings.Join(args, ", ") + ")"
	case models.ArrayLiteral:
		return fmt.Sprintf("new %s[] {%s}", tu.TypeName(e.Elem), tu.args(e.Values))
	case models.Call:
		return fmt.Sprintf("%s.%s(%s)", tu.Expr(e.Receiver), e.Name, tu.args(e.Args))
	case models.StaticCall:
		return fmt.Sprintf("%s.%s(%s)", tu.imports.erasure(e.Owner.Erasure()), e.Name, tu.args(e.Args))
	case models.New:
		return fmt.Sprintf("new %s(%s)", tu.TypeName(e.Type), tu.args(e.Args))
	case models.Cast:
		return fmt.Sprintf("((%s) %s)", tu.TypeName(e.Type), tu.Expr(e.Value))
	case models.Spliced:
		return tu.Expr(e.Value)
	default:
		return fmt.Sprintf("/* unsupported expression %T */", expr)
	}
}

func (tu *TemplateUtils) args(exprs []models.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = tu.Expr(e)
	}
	return strings.Join(parts, ", ")
}

// classLiteral renders the runtime class of the erasure of t
func (tu *TemplateUtils) classLiteral(t models.TypeRef) string {
	switch {
	case t.IsArray() && len(t.Args) == 1:
		return strings.TrimSuffix(tu.classLiteral(t.Args[0]), ".class") + "[].class"
	case t.Variable:
		return tu.imports.erasure(models.ObjectType.Name) + ".class"
	case t.Primitive != models.NotPrimitive:
		return t.Name + ".class"
	}
	return tu.imports.erasure(t.Erasure()) + ".class"
}

// collectTypes registers every type a synthesis mentions with im and reports
// whether any body needs the method descriptor helper
func collectTypes(im *ImportManager, s *models.Synthesis) (descriptors bool) {
	im.AddType(s.Self)
	im.AddType(s.Value)

	var expr func(models.Expr)
	expr = func(e models.Expr) {
		switch e := e.(type) {
		case models.TypeLiteral:
			im.AddType(models.TypeRef{Name: e.Type.Erasure()})
		case models.MethodLiteral:
			descriptors = true
			im.AddType(models.TypeRef{Name: e.Owner.Erasure()})
			for _, p := range e.Params {
				if !p.Variable {
					im.AddType(models.TypeRef{Name: p.Erasure(), Primitive: p.Primitive})
				}
			}
		case models.ArrayLiteral:
			im.AddType(e.Elem)
			for _, v := range e.Values {
				expr(v)
			}
		case models.Call:
			expr(e.Receiver)
			for _, a := range e.Args {
				expr(a)
			}
		case models.StaticCall:
			im.AddType(models.TypeRef{Name: e.Owner.Erasure()})
			for _, a := range e.Args {
				expr(a)
			}
		case models.New:
			im.AddType(e.Type)
			for _, a := range e.Args {
				expr(a)
			}
		case models.Cast:
			im.AddType(e.Type)
			expr(e.Value)
		case models.Spliced:
			expr(e.Value)
		}
	}

	body := func(stmts []models.Stmt) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case models.Assign:
				expr(s.Value)
			case models.Return:
				expr(s.Value)
			case models.Eval:
				expr(s.Value)
			case models.RequireNonNull:
				im.AddImport(objectsType)
				expr(s.Value)
			}
		}
	}

	for _, member := range s.Members {
		switch m := member.(type) {
		case models.Field:
			im.AddType(m.Type)
			expr(m.Init)
		case models.Constructor:
			for _, p := range m.Params {
				im.AddType(p.Type)
			}
			body(m.Body)
		case models.Method:
			im.AddType(m.Return)
			for _, p := range m.Params {
				im.AddType(p.Type)
			}
			body(m.Body)
		}
	}
	return descriptors
}
