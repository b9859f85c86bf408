package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/buildforge/internal/errors"
	"github.com/toyz/buildforge/internal/templates"
	"github.com/toyz/buildforge/internal/utils"
)

const brokenSpec = `builders:
  - builder: com.example.OrderBuilder
    value: com.example.Order
    properties:
      - name: total
        type: long
        validator: com.example.Missing::check
`

const secondSpec = `builders:
  - builder: com.example.TagBuilder
    value: com.example.Tag
    properties:
      - name: label
        type: String
`

// quietDiagnostics discards regular output and keeps the generator silent in tests
func quietDiagnostics(t *testing.T) *utils.DiagnosticSystem {
	t.Helper()
	d := utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	d.SetOutput(&discard{}, &discard{})
	return d
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func copySpec(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "specfile", "testdata", "person.yaml"))
	require.NoError(t, err)
	path := filepath.Join(dir, "person.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func newTestGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	g, err := NewGeneratorWithDiagnostics(cfg, quietDiagnostics(t))
	require.NoError(t, err)
	return g
}

func TestGenerator_Run(t *testing.T) {
	specDir := t.TempDir()
	outDir := t.TempDir()
	copySpec(t, specDir)
	require.NoError(t, os.WriteFile(filepath.Join(specDir, "tag.yml"), []byte(secondSpec), 0644))

	cfg := DefaultConfig()
	cfg.Inputs = []string{specDir}
	cfg.OutputDir = outDir
	cfg.Jobs = 2

	g := newTestGenerator(t, cfg)
	require.NoError(t, g.Run(context.Background()))

	person := filepath.Join(outDir, "com", "example", "PersonBuilder.java")
	tag := filepath.Join(outDir, "com", "example", "TagBuilder.java")

	summary := g.GetSummary()
	assert.Equal(t, 2, summary.FilesProcessed)
	assert.Equal(t, 2, summary.BuildersGenerated)
	assert.Equal(t, []string{person, tag}, summary.GeneratedFiles)
	// greeting is declared without a default implementation
	assert.Equal(t, 1, summary.VerificationWarnings)

	content, err := os.ReadFile(person)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package com.example;")
	assert.Contains(t, string(content), templates.GeneratedMarker)
	assert.Contains(t, string(content), "public final class PersonBuilder implements PersonSpec<Person, PersonBuilder>")
	assert.Contains(t, string(content), "Describers.describe(this, prefix)")

	content, err = os.ReadFile(tag)
	require.NoError(t, err)
	assert.Contains(t, string(content), "public TagBuilder withLabel(String label)")
}

func TestGenerator_DebugListsProviderMethods(t *testing.T) {
	spec := copySpec(t, t.TempDir())

	cfg := DefaultConfig()
	cfg.Inputs = []string{spec}
	cfg.DryRun = true

	for _, level := range []utils.DiagnosticLevel{utils.DiagnosticVerbose, utils.DiagnosticDebug} {
		var out bytes.Buffer
		d := utils.NewDiagnosticSystem(level)
		d.SetOutput(&out, &discard{})

		g, err := NewGeneratorWithDiagnostics(cfg, d)
		require.NoError(t, err)
		require.NoError(t, g.Run(context.Background()))

		listed := strings.Contains(out.String(), "com.example.Validators::notBlank(String, String) -> void")
		assert.Equal(t, level == utils.DiagnosticDebug, listed, "level %d", level)
	}
}

func TestGenerator_DryRunWritesNothing(t *testing.T) {
	specDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	spec := copySpec(t, specDir)

	cfg := DefaultConfig()
	cfg.Inputs = []string{spec}
	cfg.OutputDir = outDir
	cfg.DryRun = true

	g := newTestGenerator(t, cfg)
	require.NoError(t, g.Run(context.Background()))

	assert.Equal(t, 1, g.GetSummary().BuildersGenerated)
	_, err := os.Stat(outDir)
	assert.True(t, os.IsNotExist(err), "dry run must not create the output directory")
}

func TestGenerator_StrictVerify(t *testing.T) {
	specDir := t.TempDir()
	spec := copySpec(t, specDir)

	cfg := DefaultConfig()
	cfg.Inputs = []string{spec}
	cfg.OutputDir = t.TempDir()
	cfg.StrictVerify = true

	err := newTestGenerator(t, cfg).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.VerificationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "greeting")
}

func TestGenerator_CollectsFailuresWithoutFailFast(t *testing.T) {
	specDir := t.TempDir()
	broken := filepath.Join(specDir, "order.yaml")
	require.NoError(t, os.WriteFile(broken, []byte(brokenSpec), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(specDir, "tag.yaml"), []byte(secondSpec), 0644))

	outDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Inputs = []string{specDir}
	cfg.OutputDir = outDir
	cfg.Generation.FailFast = false

	err := newTestGenerator(t, cfg).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ReferenceResolutionErrorCode, errors.CodeOf(err))

	fe, ok := err.(errors.ForgeError)
	require.True(t, ok, "expected a single ForgeError, got %T", err)
	assert.Equal(t, broken, fe.Location().File)

	// the independent request still produced its builder
	_, statErr := os.Stat(filepath.Join(outDir, "com", "example", "TagBuilder.java"))
	assert.NoError(t, statErr)
}

func TestGenerator_NoSpecifications(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inputs = []string{t.TempDir()}

	err := newTestGenerator(t, cfg).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.SpecErrorCode, errors.CodeOf(err))
}

func TestGenerator_CancelledContext(t *testing.T) {
	specDir := t.TempDir()
	spec := copySpec(t, specDir)

	cfg := DefaultConfig()
	cfg.Inputs = []string{spec}
	cfg.OutputDir = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestGenerator(t, cfg).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	specDir := t.TempDir()
	outDir := t.TempDir()
	copySpec(t, specDir)

	handWritten := filepath.Join(outDir, "com", "example", "Person.java")
	require.NoError(t, os.MkdirAll(filepath.Dir(handWritten), 0755))
	require.NoError(t, os.WriteFile(handWritten, []byte("package com.example;\n"), 0644))

	cfg := DefaultConfig()
	cfg.Inputs = []string{specDir}
	cfg.OutputDir = outDir
	require.NoError(t, newTestGenerator(t, cfg).Run(context.Background()))

	removed, err := NewCleaner().CleanGeneratedFiles(outDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(outDir, "com", "example", "PersonBuilder.java")}, removed)
	assert.FileExists(t, handWritten)
}
