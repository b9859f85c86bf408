// Package specfile reads builder declarations and provider catalogs from
// YAML spec documents.
package specfile

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/buildforge/internal/annotations"
	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/registry"
)

// Document is one loaded spec file
type Document struct {
	Path     string
	Builders []*annotations.BuilderDecl
	Catalog  *registry.MethodCatalog
}

// Load reads and parses the spec document at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a spec document. Every builder is validated and every problem
// of the document is reported together.
func Parse(data []byte, source string) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.NewSpecError("", "", "spec document is empty").
			WithLocation(errors.SourceLocation{File: source})
	}

	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		syntaxErr := errors.WrapParseError(source, err)
		syntaxErr.WithLocation(errors.SourceLocation{File: source})
		return nil, syntaxErr
	}

	errs := errors.NewMultipleErrors()
	result := &Document{Path: source, Catalog: registry.NewMethodCatalog()}

	for _, provider := range doc.Providers {
		loc := errors.SourceLocation{File: source, Line: provider.Line}
		for _, err := range provider.register(result.Catalog) {
			errs.Add(locate(err, loc))
		}
	}

	if len(doc.Builders) == 0 {
		errs.Add(locate(errors.NewSpecError("", "builders", "spec document declares no builders"),
			errors.SourceLocation{File: source}))
	}

	for i := range doc.Builders {
		node := &doc.Builders[i]
		loc := errors.SourceLocation{File: source, Line: node.Line, Column: node.Column}

		var raw builderFile
		if err := node.Decode(&raw); err != nil {
			errs.Add(locate(errors.WrapParseError(source, err), loc))
			continue
		}
		if err := validateBuilder(raw); err != nil {
			errs.Add(locate(errors.NewSpecError(raw.Builder, "", err.Error()), loc))
			continue
		}

		decl := raw.toDecl()
		decl.Location = loc
		result.Builders = append(result.Builders, decl)
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return result, nil
}

func locate(err errors.ForgeError, loc errors.SourceLocation) errors.ForgeError {
	errors.Locate(err, loc)
	return err
}
