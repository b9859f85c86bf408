package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerClassTemplates()
	registry.registerMemberTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Names returns the names of all registered templates
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// registerClassTemplates registers the compilation unit layout
func (tr *TemplateRegistry) registerClassTemplates() {
	tr.templates[BuilderClassTemplate] = `{{if .Package}}package {{.Package}};

{{end}}{{range .Imports}}import {{.}};
{{end}}{{if .Imports}}
{{end}}/**
 * Builder for {{.ValueName}}. ` + GeneratedMarker + `
 */
public final class {{.ClassName}}{{if .Implements}} implements {{.Implements}}{{end}} {
{{range .Members}}{{if eq .Kind "field"}}{{template "field" .}}{{else if eq .Kind "constructor"}}{{template "constructor" .}}{{else}}{{template "method" .}}{{end}}{{end}}{{if .Descriptors}}{{template "descriptor" .}}{{end}}}
`
}

// registerMemberTemplates registers one template per member kind
func (tr *TemplateRegistry) registerMemberTemplates() {
	tr.templates["field"] = `    private {{.Type}} {{.Name}};
`

	tr.templates["constructor"] = `
    public {{.Name}}({{.Params}}) {
{{range .Body}}        {{.}}
{{end}}    }
`

	tr.templates["method"] = `
{{if .Override}}    @Override
{{end}}    public {{.Type}} {{.Name}}({{.Params}}) {
{{range .Body}}        {{.}}
{{end}}    }
`

	tr.templates["descriptor"] = `
    private static {{.DescriptorType}} descriptor$(Class<?> owner, String name, Class<?>... params) {
        try {
            return owner.getMethod(name, params);
        } catch (NoSuchMethodException e) {
            throw new IllegalStateException(e);
        }
    }
`
}
