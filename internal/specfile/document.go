package specfile

import (
	"gopkg.in/yaml.v3"

	"github.com/toyz/buildforge/internal/annotations"
	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/registry"
)

type documentFile struct {
	Builders  []yaml.Node    `yaml:"builders"`
	Providers []providerFile `yaml:"providers"`
}

type builderFile struct {
	Builder    string          `yaml:"builder"`
	Value      string          `yaml:"value"`
	Self       string          `yaml:"self"`
	TypeParams []typeParamFile `yaml:"typeParams"`
	Factory    factoryFile     `yaml:"factory"`
	Properties []propertyFile  `yaml:"properties"`
	Methods    []methodFile    `yaml:"methods"`
}

type typeParamFile struct {
	Name  string `yaml:"name"`
	Bound string `yaml:"bound"`
}

type factoryFile struct {
	Owner  string `yaml:"owner"`
	Method string `yaml:"method"`
}

type propertyFile struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	DefaultsFrom string `yaml:"defaultsFrom"`
	SetterType   string `yaml:"setterType"`
	Nullable     bool   `yaml:"nullable"`
	Optional     bool   `yaml:"optional"`
	Default      string `yaml:"default"`
	Validator    string `yaml:"validator"`
}

type methodFile struct {
	Name   string      `yaml:"name"`
	Return string      `yaml:"return"`
	Params []paramFile `yaml:"params"`
	Impl   string      `yaml:"impl"`
}

type paramFile struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type providerFile struct {
	Owner   string               `yaml:"owner"`
	Methods []providerMethodFile `yaml:"methods"`
	Line    int                  `yaml:"-"`
}

// UnmarshalYAML records the line of the provider entry
func (p *providerFile) UnmarshalYAML(node *yaml.Node) error {
	type plain providerFile
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = providerFile(raw)
	p.Line = node.Line
	return nil
}

type providerMethodFile struct {
	Name     string   `yaml:"name"`
	TypeVars []string `yaml:"typeVars"`
	Params   []string `yaml:"params"`
	Return   string   `yaml:"return"`
	Public   *bool    `yaml:"public"`
	Static   *bool    `yaml:"static"`
	Inline   string   `yaml:"inline"`
	Compiled *bool    `yaml:"compiled"`
}

func (b builderFile) toDecl() *annotations.BuilderDecl {
	decl := &annotations.BuilderDecl{
		Builder: b.Builder,
		Value:   b.Value,
		Self:    b.Self,
		Factory: annotations.FactoryDecl{Owner: b.Factory.Owner, Method: b.Factory.Method},
	}
	for _, tp := range b.TypeParams {
		decl.TypeParams = append(decl.TypeParams, annotations.TypeParamDecl{Name: tp.Name, Bound: tp.Bound})
	}
	for _, p := range b.Properties {
		decl.Properties = append(decl.Properties, annotations.PropertyDecl{
			Name:         p.Name,
			DefaultsFrom: p.DefaultsFrom,
			Type:         p.Type,
			SetterType:   p.SetterType,
			Nullable:     p.Nullable,
			Optional:     p.Optional,
			DefaultValue: p.Default,
			Validator:    p.Validator,
		})
	}
	for _, m := range b.Methods {
		method := annotations.MethodDecl{Name: m.Name, Return: m.Return, Impl: m.Impl}
		for _, p := range m.Params {
			method.Params = append(method.Params, annotations.ParamDecl{Name: p.Name, Type: p.Type})
		}
		decl.Methods = append(decl.Methods, method)
	}
	return decl
}

// register adds the provider methods to catalog. Methods default to public,
// static and compiled.
func (p providerFile) register(catalog *registry.MethodCatalog) []errors.ForgeError {
	var errs []errors.ForgeError

	if err := validateProvider(p); err != nil {
		return append(errs, errors.NewSpecError("", "provider "+p.Owner, err.Error()))
	}

	owner, err := annotations.ParseType(p.Owner)
	if err != nil {
		return append(errs, asForgeError(err))
	}
	catalog.DeclareType(owner)

	for _, m := range p.Methods {
		method := registry.ProviderMethod{
			Owner:    owner,
			Name:     m.Name,
			TypeVars: append([]string(nil), m.TypeVars...),
			Public:   flag(m.Public, true),
			Static:   flag(m.Static, true),
			Compiled: flag(m.Compiled, true),
		}

		failed := false
		for _, raw := range m.Params {
			t, err := annotations.ParseType(raw, m.TypeVars...)
			if err != nil {
				errs = append(errs, asForgeError(err))
				failed = true
				continue
			}
			method.Params = append(method.Params, t)
		}
		if m.Return != "" {
			t, err := annotations.ParseType(m.Return, m.TypeVars...)
			if err != nil {
				errs = append(errs, asForgeError(err))
				failed = true
			}
			method.Return = t
		}
		if m.Inline != "" {
			expansion, err := annotations.ParseExpression(m.Inline)
			if err != nil {
				errs = append(errs, asForgeError(err))
				failed = true
			}
			method.Inline = true
			method.Expansion = expansion
		}
		if failed {
			continue
		}

		if err := catalog.RegisterMethod(method); err != nil {
			errs = append(errs, errors.NewSpecError("", "provider "+p.Owner, err.Error()))
		}
	}
	return errs
}

func flag(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func asForgeError(err error) errors.ForgeError {
	if fe, ok := err.(errors.ForgeError); ok {
		return fe
	}
	return errors.Wrap(errors.SpecErrorCode, err.Error(), err)
}
