package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/toyz/buildforge/internal/annotations"
	"github.com/toyz/buildforge/internal/errors"
	synth "github.com/toyz/buildforge/internal/generator"
	"github.com/toyz/buildforge/internal/models"
	"github.com/toyz/buildforge/internal/resolver"
	"github.com/toyz/buildforge/internal/specfile"
	"github.com/toyz/buildforge/internal/templates"
	"github.com/toyz/buildforge/internal/utils"
	"github.com/toyz/buildforge/internal/verifier"
)

// Generator coordinates the CLI generation process. Every builder declaration
// is an independent request: it is resolved, synthesized, verified and
// rendered on its own goroutine.
type Generator struct {
	config      Config
	scanner     *SpecScanner
	synthesizer synth.MemberSynthesizer
	renderer    *templates.Renderer
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem

	mu      sync.Mutex
	summary GenerationSummary
}

// request is one builder declaration waiting to be generated
type request struct {
	id     string
	doc    *specfile.Document
	decl   *annotations.BuilderDecl
	result *models.GeneratedFile
}

// NewGenerator creates a new CLI generator
func NewGenerator(cfg Config) (*Generator, error) {
	return NewGeneratorWithDiagnostics(cfg, utils.NewDiagnosticSystem(utils.DiagnosticInfo))
}

// NewGeneratorWithDiagnostics creates a new CLI generator reporting through diagnostics
func NewGeneratorWithDiagnostics(cfg Config, diagnostics *utils.DiagnosticSystem) (*Generator, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Generator{
		config:      cfg,
		scanner:     NewSpecScanner(),
		synthesizer: synth.NewGenerator(cfg.Generation),
		renderer:    renderer,
		reporter:    NewDiagnosticReporter(cfg.Verbose),
		diagnostics: diagnostics,
	}, nil
}

// Reporter returns the reporter used for fatal errors
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.summary
}

// Run executes the complete generation process
func (g *Generator) Run(ctx context.Context) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Inputs: %v", g.config.Inputs)

	files, err := g.scanner.Scan(g.config.Inputs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New(errors.SpecErrorCode, "no specification files found").
			WithContext("inputs", g.config.Inputs).
			WithSuggestion("Pass .yaml files, directories holding them or a ./... pattern")
	}

	g.diagnostics.Info("Found %d specification files", len(files))
	g.diagnostics.Indent()
	for _, file := range files {
		g.diagnostics.List("%s", file)
	}
	g.diagnostics.Unindent()

	requests, err := g.load(files)
	if err != nil {
		return err
	}
	g.summary.FilesProcessed = len(files)

	if err := g.generate(ctx, requests); err != nil {
		return err
	}

	for _, req := range requests {
		if req.result != nil {
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, g.outputPath(req.result))
		}
	}
	g.summary.BuildersGenerated = len(g.summary.GeneratedFiles)
	g.summary.Duration = time.Since(startTime)
	return nil
}

// load parses every spec file up front so that syntax errors surface before
// any output is written
func (g *Generator) load(files []string) ([]*request, error) {
	errs := errors.NewMultipleErrors()
	var requests []*request

	for _, file := range files {
		doc, err := specfile.Load(file)
		if err != nil {
			addError(errs, err)
			continue
		}
		g.diagnostics.Verbose("Loaded %s: %d builders, %d providers", file, len(doc.Builders), doc.Catalog.Size())
		if g.diagnostics.Level() >= utils.DiagnosticDebug {
			g.diagnostics.Debug("Provider methods of %s:\n%s", file, doc.Catalog.Describe())
		}
		for _, decl := range doc.Builders {
			requests = append(requests, &request{
				id:   uuid.NewString(),
				doc:  doc,
				decl: decl,
			})
		}
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return requests, nil
}

// generate runs the requests with at most Jobs in flight. With FailFast the
// first failure cancels the remaining requests, otherwise every failure is
// collected.
func (g *Generator) generate(ctx context.Context, requests []*request) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.config.jobs())

	var mu sync.Mutex
	errs := errors.NewMultipleErrors()

	for _, req := range requests {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := g.generateOne(req)
			if err == nil {
				return nil
			}
			if g.config.Generation.FailFast {
				return err
			}
			mu.Lock()
			addError(errs, err)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return errs.ToError()
}

// generateOne takes a single builder declaration from specification to output file
func (g *Generator) generateOne(req *request) error {
	g.diagnostics.Debug("[%s] generating %s", req.id, req.decl.Builder)

	spec, env, err := resolver.New(req.doc.Catalog, g.config.Generation).ResolveSpec(req.decl)
	if err != nil {
		return err
	}

	synthesis, err := g.synthesizer.Synthesize(spec, env)
	if err != nil {
		return errors.Locate(err, req.decl.Location)
	}

	if err := verifier.Verify(synthesis, verifier.CoverageCheck(verifier.InterfaceOf(spec))); err != nil {
		if g.config.StrictVerify {
			return errors.Locate(err, req.decl.Location)
		}
		g.warn(req, err)
	}

	file, err := g.renderer.Render(synthesis)
	if err != nil {
		return err
	}

	if g.config.DryRun {
		g.diagnostics.Verbose("[%s] dry run, skipping %s", req.id, g.outputPath(file))
	} else if err := g.write(file); err != nil {
		return err
	}

	g.diagnostics.PhaseItem("%s (%d members)", req.decl.Builder, len(synthesis.Members))
	req.result = file
	return nil
}

// warn reports every verification finding without failing the request
func (g *Generator) warn(req *request, err error) {
	findings := []error{err}
	if multi, ok := err.(*errors.MultipleErrors); ok {
		findings = multi.Unwrap()
	}

	g.mu.Lock()
	g.summary.VerificationWarnings += len(findings)
	g.mu.Unlock()

	for _, finding := range findings {
		g.diagnostics.Warn("%s: %v", req.decl.Builder, finding)
	}
}

func (g *Generator) outputPath(file *models.GeneratedFile) string {
	return filepath.Join(g.config.OutputDir, filepath.FromSlash(file.Path))
}

// write stores file below the output directory, creating package directories as needed
func (g *Generator) write(file *models.GeneratedFile) error {
	path := g.outputPath(file)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapFileSystemError("create directory for", path, err)
	}
	if err := os.WriteFile(path, []byte(file.Content), 0644); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	g.diagnostics.Debug("Wrote %s", path)
	return nil
}

// addError flattens err into errs, wrapping errors that carry no code
func addError(errs *errors.MultipleErrors, err error) {
	switch e := err.(type) {
	case *errors.MultipleErrors:
		for _, inner := range e.Errors {
			errs.Add(inner)
		}
	case errors.ForgeError:
		errs.Add(e)
	default:
		errs.Add(errors.Wrap(errors.GenerationErrorCode, err.Error(), err))
	}
}
