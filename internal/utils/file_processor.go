package utils

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/buildforge/internal/errors"
)

// RecursiveSuffix marks a path pattern that is scanned recursively, as in ./specs/...
const RecursiveSuffix = "/..."

// markerWindow bounds how much of a file is searched for the generated marker
const markerWindow = 512

// FileProcessor discovers specification files and cleans generated output
type FileProcessor struct {
	directoryFilter DirectoryFilter
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		directoryFilter: DefaultDirectoryFilter(),
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// SpecFileFilter matches YAML specification files
func SpecFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		ext := strings.ToLower(filepath.Ext(info.Name()))
		return ext == ".yaml" || ext == ".yml"
	}
}

// GeneratedFileFilter matches files with the given extension whose header carries marker
func GeneratedFileFilter(extension, marker string) FileFilter {
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() || filepath.Ext(info.Name()) != extension {
			return false
		}
		return hasMarker(path, marker)
	}
}

func hasMarker(path, marker string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, markerWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return false
	}
	return bytes.Contains(head[:n], []byte(marker))
}

// DefaultDirectoryFilter skips directories that never hold specifications
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"build":        true,
		"dist":         true,
		"target":       true,
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// WalkFiles walks through files in a directory tree with filtering.
// The root itself is never rejected by the directory filter.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// ExpandSpecPatterns turns command line arguments into a sorted, duplicate free
// list of specification files. A file is taken as is, a directory contributes
// its own spec files and a pattern ending in /... is scanned recursively.
func (fp *FileProcessor) ExpandSpecPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(paths ...string) error {
		for _, path := range paths {
			abs, err := filepath.Abs(path)
			if err != nil {
				return errors.WrapFileSystemError("resolve", path, err)
			}
			if !seen[abs] {
				seen[abs] = true
				files = append(files, path)
			}
		}
		return nil
	}

	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, RecursiveSuffix) {
			base := strings.TrimSuffix(pattern, RecursiveSuffix)
			if base == "" {
				base = "."
			}
			found, err := fp.WalkFiles(base, FileWalkOptions{
				FileFilter:      SpecFileFilter(),
				DirectoryFilter: fp.directoryFilter,
			})
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", base, err)
			}
			if err := add(found...); err != nil {
				return nil, err
			}
			continue
		}

		info, err := os.Stat(pattern)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", pattern, err)
		}
		if !info.IsDir() {
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		found, err := fp.specFilesIn(pattern)
		if err != nil {
			return nil, err
		}
		if err := add(found...); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// specFilesIn lists the spec files directly inside dir
func (fp *FileProcessor) specFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	filter := SpecFileFilter()
	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if filter(path, entry) {
			files = append(files, path)
		}
	}
	return files, nil
}

// CleanGenerated removes every generated file below dir and returns the removed paths.
// A missing directory is not an error.
func (fp *FileProcessor) CleanGenerated(dir, extension, marker string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	found, err := fp.WalkFiles(dir, FileWalkOptions{
		FileFilter: GeneratedFileFilter(extension, marker),
		SkipErrors: true,
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", dir, err)
	}

	var removed []string
	for _, path := range found {
		if err := os.Remove(path); err != nil {
			return removed, errors.WrapFileSystemError("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
