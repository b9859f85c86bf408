package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/toyz/buildforge/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	colors  bool
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
		colors:  !color.NoColor,
	}
}

// SetOutput redirects the reporter and disables colors
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
	r.colors = false
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	r.paint(color.New(color.FgYellow, color.Bold), "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Builder Generation Failed\n")
	fmt.Fprintf(r.out, "================================\n\n")

	switch e := err.(type) {
	case *errors.MultipleErrors:
		fmt.Fprintf(r.out, "%d problems found\n\n", e.Count())
		for i, inner := range e.Errors {
			fmt.Fprintf(r.out, "[%d/%d] ", i+1, e.Count())
			r.reportForgeError(inner)
		}
	case errors.ForgeError:
		r.reportForgeError(e)
	default:
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	r.printGeneralHelp()
}

// reportForgeError reports a coded error with location, context and suggestions
func (r *DiagnosticReporter) reportForgeError(err errors.ForgeError) {
	r.printErrorHeader(err.ErrorCode())

	message := err.Error()
	if loc := err.Location(); !loc.IsEmpty() {
		message = strings.TrimPrefix(message, loc.String()+": ")
		fmt.Fprintf(r.out, "Location: %s\n", loc)
	}
	fmt.Fprintf(r.out, "Message: %s\n\n", message)

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(err.ErrorCode())

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var title string

	switch code {
	case errors.SyntaxErrorCode:
		title = "Syntax Error"
	case errors.SpecErrorCode:
		title = "Specification Error"
	case errors.ReferenceResolutionErrorCode:
		title = "Reference Resolution Error"
	case errors.InlineEligibilityErrorCode:
		title = "Inline Eligibility Error"
	case errors.GenericSubstitutionErrorCode:
		title = "Generic Substitution Error"
	case errors.VerificationErrorCode:
		title = "Verification Error"
	case errors.GenerationErrorCode, errors.TemplateErrorCode:
		title = "Code Generation Error"
	case errors.FileSystemErrorCode:
		title = "File System Error"
	case errors.ConfigurationErrorCode:
		title = "Configuration Error"
	default:
		title = "Unknown Error"
	}

	r.paint(color.New(color.FgRed, color.Bold), "Type: "+title)
	fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("-", len(title)+6))
}

// printContext prints the important context keys first, the rest sorted
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"builder", "subject", "reference", "usage", "method"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	var rest []string
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.ReferenceResolutionErrorCode:
		fmt.Fprintf(r.out, "Method Reference Forms:\n")
		fmt.Fprintf(r.out, "  - Owner::method for a provider declared in the providers section\n")
		fmt.Fprintf(r.out, "  - this::method or ::method for a method of the builder itself\n")
		fmt.Fprintf(r.out, "  - Owner::method(Type, ...) -> Type to pick one overload explicitly\n\n")

	case errors.InlineEligibilityErrorCode:
		fmt.Fprintf(r.out, "Inline Providers:\n")
		fmt.Fprintf(r.out, "  - Must be public, static and declare an inline expansion\n")
		fmt.Fprintf(r.out, "  - Parameters are referenced as $0, $1, ... in the expansion\n\n")

	case errors.GenericSubstitutionErrorCode:
		fmt.Fprintf(r.out, "Type Parameters:\n")
		fmt.Fprintf(r.out, "  - Every type variable of the self interface needs a bound\n")
		fmt.Fprintf(r.out, "  - Bounds may refer to the builder and value types\n\n")
	}
}

// printErrorChain prints every cause below err in verbose mode
func (r *DiagnosticReporter) printErrorChain(err errors.ForgeError) {
	cause := err.Unwrap()
	if cause == nil {
		return
	}

	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for cause != nil {
		fmt.Fprintf(r.out, "    %d. %s\n", level, cause.Error())
		unwrapper, ok := cause.(interface{ Unwrap() error })
		if !ok {
			break
		}
		cause = unwrapper.Unwrap()
		level++
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printGeneralHelp() {
	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(r.out, "  - Compare with the specifications in the examples/ directory\n\n")
}

func (r *DiagnosticReporter) paint(c *color.Color, text string) {
	if r.colors {
		c.Fprint(r.out, text)
		return
	}
	fmt.Fprint(r.out, text)
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	FilesProcessed       int
	BuildersGenerated    int
	VerificationWarnings int
	GeneratedFiles       []string
	Duration             time.Duration
}

// Stats returns the summary as labelled values for display
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Specification files":   s.FilesProcessed,
		"Builders generated":    s.BuildersGenerated,
		"Verification warnings": s.VerificationWarnings,
		"Duration":              s.Duration.Round(time.Millisecond),
	}
}
