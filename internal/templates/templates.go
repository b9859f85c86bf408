// Package templates renders a synthesized member list as Java-style source.
// It only formats: every defaulting and validation decision is already part
// of the member bodies.
package templates

import (
	"bytes"
	"path"
	"strings"
	"text/template"

	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/models"
)

// BuilderClassTemplate is the name of the compilation unit template
const BuilderClassTemplate = "builder-class"

// SourceExtension is the file extension of rendered builders
const SourceExtension = ".java"

// GeneratedMarker appears in the header comment of every rendered builder
const GeneratedMarker = "Generated by buildforge, do not edit."

// ClassData is the template view of one builder class
type ClassData struct {
	Package        string
	Imports        []string
	ClassName      string
	ValueName      string
	Implements     string
	Members        []MemberData
	Descriptors    bool
	DescriptorType string
}

// MemberData is the template view of one member, bodies are pre-rendered lines
type MemberData struct {
	Kind     string // field, constructor or method
	Name     string
	Type     string
	Params   string
	Body     []string
	Override bool
}

// Renderer turns syntheses into source files. It is safe for concurrent use.
type Renderer struct {
	base *template.Template
}

// NewRenderer parses the registered templates once
func NewRenderer() (*Renderer, error) {
	registry := NewTemplateRegistry()

	base := template.New(BuilderClassTemplate)
	if _, err := base.Parse(registry.MustGet(BuilderClassTemplate)); err != nil {
		return nil, errors.WrapTemplateError(BuilderClassTemplate, "parse", err)
	}
	for _, name := range []string{"field", "constructor", "method", "descriptor"} {
		if _, err := base.New(name).Parse(registry.MustGet(name)); err != nil {
			return nil, errors.WrapTemplateError(name, "parse", err)
		}
	}
	return &Renderer{base: base}, nil
}

// Render renders s into a source file named after the builder
func (r *Renderer) Render(s *models.Synthesis) (*models.GeneratedFile, error) {
	if s == nil {
		return nil, errors.WrapGenerateError("builder", errors.New(errors.GenerationErrorCode, "synthesis cannot be nil"))
	}

	data := buildClassData(s)

	var buf bytes.Buffer
	if err := r.base.ExecuteTemplate(&buf, BuilderClassTemplate, data); err != nil {
		return nil, errors.WrapTemplateError(BuilderClassTemplate, "execute", err)
	}

	return &models.GeneratedFile{
		Builder: s.Builder.String(),
		Path:    SourcePath(s.Builder),
		Content: buf.String(),
	}, nil
}

// SourcePath returns the package relative path of the source file for builder
func SourcePath(builder models.TypeRef) string {
	pkg, simple := splitQualified(builder.Erasure())
	if pkg == "" {
		return simple + SourceExtension
	}
	return path.Join(strings.Split(pkg, ".")...) + "/" + simple + SourceExtension
}

func buildClassData(s *models.Synthesis) ClassData {
	pkg, className := splitQualified(s.Builder.Erasure())

	imports := NewImportManager(pkg, className)
	descriptors := collectTypes(imports, s)
	if descriptors {
		imports.AddType(models.ReflectMethod)
	}
	utils := NewTemplateUtils(imports)

	data := ClassData{
		Package:     pkg,
		Imports:     imports.Imports(),
		ClassName:   className,
		ValueName:   utils.TypeName(s.Value),
		Descriptors: descriptors,
	}
	if descriptors {
		data.DescriptorType = utils.TypeName(models.ReflectMethod)
	}
	if !s.Self.IsZero() && !s.Self.Equal(s.Builder) {
		data.Implements = utils.TypeName(s.Self)
	}

	for _, member := range s.Members {
		switch m := member.(type) {
		case models.Field:
			data.Members = append(data.Members, MemberData{
				Kind: "field",
				Name: m.Name,
				Type: utils.TypeName(m.Type),
			})
		case models.Constructor:
			data.Members = append(data.Members, MemberData{
				Kind:   "constructor",
				Name:   className,
				Params: utils.Params(m.Params),
				Body:   utils.Statements(m.Body),
			})
		case models.Method:
			data.Members = append(data.Members, MemberData{
				Kind:     "method",
				Name:     m.Name,
				Type:     utils.TypeName(m.Return),
				Params:   utils.Params(m.Params),
				Body:     utils.Statements(m.Body),
				Override: m.Override && data.Implements != "",
			})
		}
	}
	return data
}
