package templates

import (
	"sort"
	"strings"

	"github.com/toyz/buildforge/internal/models"
)

// ImportManager collects the imports of one rendered class and decides how
// each type is spelled. A qualified type is imported and written by its
// simple name unless that name is already taken, then it stays qualified.
type ImportManager struct {
	pkg       string            // package of the class being rendered
	imports   map[string]string // simple name -> qualified name
	qualified map[string]bool   // qualified names that lost a simple name clash
}

// NewImportManager creates an import manager for a class in pkg. The simple
// names of classes, declared in pkg, are taken before any import.
func NewImportManager(pkg string, classes ...string) *ImportManager {
	im := &ImportManager{
		pkg:       pkg,
		imports:   make(map[string]string),
		qualified: make(map[string]bool),
	}
	for _, name := range classes {
		im.imports[name] = qualify(pkg, name)
	}
	return im
}

// AddType registers t and every type argument it carries
func (im *ImportManager) AddType(t models.TypeRef) {
	if t.IsZero() || t.Variable || t.Primitive != models.NotPrimitive {
		return
	}
	for _, arg := range t.Args {
		im.AddType(arg)
	}
	if t.IsArray() {
		return
	}
	im.AddImport(t.Erasure())
}

// AddImport registers a qualified type name
func (im *ImportManager) AddImport(qualified string) {
	pkg, simple := splitQualified(qualified)
	if pkg == "" || im.qualified[qualified] {
		return
	}
	if existing, ok := im.imports[simple]; ok {
		if existing != qualified {
			im.qualified[qualified] = true
		}
		return
	}
	im.imports[simple] = qualified
}

// Name returns how t is written in the rendered class
func (im *ImportManager) Name(t models.TypeRef) string {
	if t.IsArray() && len(t.Args) == 1 {
		return im.Name(t.Args[0]) + "[]"
	}

	name := t.Name
	if !t.Variable && t.Primitive == models.NotPrimitive {
		name = im.erasure(t.Erasure())
	}
	if len(t.Args) == 0 {
		return name
	}

	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = im.Name(arg)
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

func (im *ImportManager) erasure(qualified string) string {
	pkg, simple := splitQualified(qualified)
	existing, taken := im.imports[simple]
	if existing == qualified || pkg == "java.lang" && !taken {
		return simple
	}
	return qualified
}

// Imports returns the import declarations to emit, sorted. Types of the
// class's own package and of java.lang need none.
func (im *ImportManager) Imports() []string {
	var out []string
	for _, qualified := range im.imports {
		pkg, _ := splitQualified(qualified)
		if pkg == im.pkg || pkg == "java.lang" {
			continue
		}
		out = append(out, qualified)
	}
	sort.Strings(out)
	return out
}

func splitQualified(name string) (pkg, simple string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}

func qualify(pkg, simple string) string {
	if pkg == "" {
		return simple
	}
	return pkg + "." + simple
}
