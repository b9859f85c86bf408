package cli

import (
	"github.com/toyz/buildforge/internal/templates"
	"github.com/toyz/buildforge/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every rendered builder below outputDir.
// Hand written sources in the same tree are left alone.
func (c *Cleaner) CleanGeneratedFiles(outputDir string) ([]string, error) {
	return c.fileProcessor.CleanGenerated(outputDir, templates.SourceExtension, templates.GeneratedMarker)
}
