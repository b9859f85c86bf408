package utils

import (
	"bytes"
	"strings"
	"testing"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticInfo)

	d.Error("broken %s", "spec")
	d.Warn("careful")
	d.Info("hello")
	d.Verbose("hidden")
	d.Debug("hidden too")

	if errOut.String() != "[ERROR] broken spec\n" {
		t.Errorf("unexpected error output %q", errOut.String())
	}
	if out.String() != "[WARN] careful\n[INFO] hello\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestDiagnosticSystem_Quiet(t *testing.T) {
	var out, errOut bytes.Buffer
	d := NewQuietDiagnostics()
	d.SetOutput(&out, &errOut)

	d.Info("hello")
	d.Section("Title")
	d.Summary("Done", map[string]interface{}{"a": 1})
	d.Error("boom")

	if out.Len() != 0 {
		t.Errorf("quiet mode should not print regular output, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("quiet mode should still print errors, got %q", errOut.String())
	}
}

func TestDiagnosticSystem_ListsAndIndent(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.List("top")
	d.Indent()
	d.List("nested %d", 1)
	d.PhaseItem("done")
	d.Unindent()
	d.Unindent()
	d.List("back")

	expected := "- top\n  - nested 1\n  ✓ done\n- back\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestDiagnosticSystem_SummaryIsSorted(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Summary("Generation Complete", map[string]interface{}{
		"Builders generated":    2,
		"Files processed":       1,
		"Verification warnings": 0,
	})

	expected := "\nGeneration Complete\n" +
		"   Builders generated: 2\n" +
		"   Files processed: 1\n" +
		"   Verification warnings: 0\n\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}
