package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/toyz/buildforge/internal/cli"
	"github.com/toyz/buildforge/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the requested operation and returns the exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := cli.DefaultConfig()

	flags := flag.NewFlagSet("buildforge", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flags.Bool("clean", false, "Delete all generated builders from the output directory")
		lenientFlag = flags.Bool("lenient-setters", false, "Skip null checks in fluent setters, build() still checks")
		collectFlag = flags.Bool("collect-errors", false, "Report every resolution error instead of stopping at the first")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)
	flags.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory receiving the generated builders")
	flags.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Number of builders generated concurrently")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "Render builders without writing them")
	flags.BoolVar(&cfg.StrictVerify, "strict-verify", false, "Fail when a builder leaves an interface method unimplemented")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: buildforge [options] <spec-paths...>\n\n")
		fmt.Fprintf(stderr, "Builder Class Generator\n")
		fmt.Fprintf(stderr, "Reads YAML builder specifications and generates fluent builder classes.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  spec-paths         Specification files or directories holding them\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  buildforge ./specs/person.yaml                # Generate from one file\n")
		fmt.Fprintf(stderr, "  buildforge -out src/main/java ./specs/...     # Scan recursively, write below src/main/java\n")
		fmt.Fprintf(stderr, "  buildforge -dry-run -verbose ./specs          # Check specifications without writing\n")
		fmt.Fprintf(stderr, "  buildforge -clean -out src/main/java          # Delete generated builders\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	redirected := stdout != io.Writer(os.Stdout) || stderr != io.Writer(os.Stderr)
	if redirected {
		diagnostics.SetOutput(stdout, stderr)
	}

	diagnostics.Section("buildforge")

	if *cleanFlag {
		removed, err := cli.NewCleaner().CleanGeneratedFiles(cfg.OutputDir)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		for _, path := range removed {
			diagnostics.Verbose("Removed %s", path)
		}
		diagnostics.Success("Removed %d generated builders from %s", len(removed), cfg.OutputDir)
		return 0
	}

	cfg.Inputs = flags.Args()
	if len(cfg.Inputs) == 0 {
		fmt.Fprintf(stderr, "Error: At least one specification path is required\n\n")
		flags.Usage()
		return 1
	}
	cfg.Verbose = *verboseFlag
	cfg.Generation.StrictSetterCheck = !*lenientFlag
	cfg.Generation.FailFast = !*collectFlag

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Inputs: %s", strings.Join(cfg.Inputs, ", "))
		diagnostics.List("Output directory: %s", cfg.OutputDir)
		diagnostics.List("Jobs: %d", cfg.Jobs)
		diagnostics.List("Strict setters: %v", cfg.Generation.StrictSetterCheck)
		diagnostics.List("Fail fast: %v", cfg.Generation.FailFast)
	}

	generator, err := cli.NewGeneratorWithDiagnostics(cfg, diagnostics)
	if err != nil {
		diagnostics.Error("Initialization failed: %v", err)
		return 1
	}
	if redirected {
		generator.Reporter().SetOutput(stderr)
	}

	diagnostics.Subsection("Builder Generation")
	if err := generator.Run(ctx); err != nil {
		generator.Reporter().ReportError(err)
		return 1
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete", summary.Stats())

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	if cfg.DryRun {
		diagnostics.Success("Dry run finished, nothing was written")
	} else {
		diagnostics.Success("Builders written to %s", cfg.OutputDir)
	}
	return 0
}
