package cli

import (
	"github.com/toyz/buildforge/internal/utils"
)

// SpecScanner resolves command line inputs to specification files
type SpecScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewSpecScanner creates a new specification scanner
func NewSpecScanner() *SpecScanner {
	return &SpecScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// Scan expands the inputs into spec files. Plain files are taken as given,
// directories contribute the spec files they contain, and Go-style patterns
// like "./specs/..." are scanned recursively.
func (s *SpecScanner) Scan(inputs []string) ([]string, error) {
	return s.fileProcessor.ExpandSpecPatterns(inputs)
}
