package cli

import (
	"runtime"

	"github.com/toyz/buildforge/internal/config"
)

// Config holds the configuration for the CLI generator
type Config struct {
	// Inputs lists spec files, directories and recursive ./... patterns
	Inputs []string

	// OutputDir receives the rendered builders, laid out by package
	OutputDir string

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// DryRun renders every builder without writing anything
	DryRun bool

	// StrictVerify turns interface coverage findings into failures
	StrictVerify bool

	// Jobs bounds how many builders are generated concurrently
	Jobs int

	// Generation is handed to the resolver and the synthesizer
	Generation config.Config
}

// DefaultConfig returns the configuration used when no flags are given
func DefaultConfig() Config {
	return Config{
		OutputDir:  "generated",
		Jobs:       runtime.NumCPU(),
		Generation: config.Default(),
	}
}

func (c Config) jobs() int {
	if c.Jobs < 1 {
		return 1
	}
	return c.Jobs
}
