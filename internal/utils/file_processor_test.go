package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testMarker = "Generated by buildforge, do not edit."

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

func TestFileProcessor_SpecFileFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"person.yaml": "builders: []",
		"order.yml":   "builders: []",
		"UPPER.YAML":  "builders: []",
		"README.md":   "# README",
		"Person.java": "class Person {}",
	})

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read test directory: %v", err)
	}

	filter := SpecFileFilter()
	var specs []string
	for _, entry := range entries {
		if filter(filepath.Join(tmpDir, entry.Name()), entry) {
			specs = append(specs, entry.Name())
		}
	}

	expected := []string{"UPPER.YAML", "order.yml", "person.yaml"}
	if !reflect.DeepEqual(specs, expected) {
		t.Errorf("Expected spec files %v, got %v", expected, specs)
	}
}

func TestFileProcessor_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.yaml":            "",
		"nested/b.yaml":     "",
		"nested/notes.txt":  "",
		"vendor/c.yaml":     "",
		".hidden/d.yaml":    "",
		"nested/deep/e.yml": "",
	})

	fp := NewFileProcessor()
	files, err := fp.WalkFiles(tmpDir, FileWalkOptions{
		FileFilter:      SpecFileFilter(),
		DirectoryFilter: DefaultDirectoryFilter(),
	})
	if err != nil {
		t.Fatalf("WalkFiles failed: %v", err)
	}

	expected := []string{
		filepath.Join(tmpDir, "a.yaml"),
		filepath.Join(tmpDir, "nested", "b.yaml"),
		filepath.Join(tmpDir, "nested", "deep", "e.yml"),
	}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("Expected %v, got %v", expected, files)
	}
}

func TestFileProcessor_ExpandSpecPatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"top.yaml":         "",
		"specs/a.yaml":     "",
		"specs/sub/b.yaml": "",
		"specs/readme.md":  "",
	})

	fp := NewFileProcessor()

	t.Run("directory is not recursive", func(t *testing.T) {
		files, err := fp.ExpandSpecPatterns([]string{filepath.Join(tmpDir, "specs")})
		if err != nil {
			t.Fatalf("ExpandSpecPatterns failed: %v", err)
		}
		expected := []string{filepath.Join(tmpDir, "specs", "a.yaml")}
		if !reflect.DeepEqual(files, expected) {
			t.Errorf("Expected %v, got %v", expected, files)
		}
	})

	t.Run("recursive pattern", func(t *testing.T) {
		files, err := fp.ExpandSpecPatterns([]string{filepath.Join(tmpDir, "specs") + RecursiveSuffix})
		if err != nil {
			t.Fatalf("ExpandSpecPatterns failed: %v", err)
		}
		expected := []string{
			filepath.Join(tmpDir, "specs", "a.yaml"),
			filepath.Join(tmpDir, "specs", "sub", "b.yaml"),
		}
		if !reflect.DeepEqual(files, expected) {
			t.Errorf("Expected %v, got %v", expected, files)
		}
	})

	t.Run("duplicates are dropped", func(t *testing.T) {
		top := filepath.Join(tmpDir, "top.yaml")
		files, err := fp.ExpandSpecPatterns([]string{top, tmpDir, top})
		if err != nil {
			t.Fatalf("ExpandSpecPatterns failed: %v", err)
		}
		if !reflect.DeepEqual(files, []string{top}) {
			t.Errorf("Expected only %s, got %v", top, files)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := fp.ExpandSpecPatterns([]string{filepath.Join(tmpDir, "missing.yaml")}); err == nil {
			t.Error("Expected an error for a missing path")
		}
	})
}

func TestFileProcessor_CleanGenerated(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"com/example/PersonBuilder.java": "package com.example;\n\n/**\n * " + testMarker + "\n */\n",
		"com/example/Person.java":        "package com.example;\n\npublic class Person {}\n",
		"com/example/notes.txt":          testMarker,
	})

	fp := NewFileProcessor()
	removed, err := fp.CleanGenerated(tmpDir, ".java", testMarker)
	if err != nil {
		t.Fatalf("CleanGenerated failed: %v", err)
	}

	generated := filepath.Join(tmpDir, "com", "example", "PersonBuilder.java")
	if !reflect.DeepEqual(removed, []string{generated}) {
		t.Errorf("Expected to remove %s, removed %v", generated, removed)
	}
	if _, err := os.Stat(generated); !os.IsNotExist(err) {
		t.Errorf("Generated file should be removed")
	}
	for _, kept := range []string{"Person.java", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(tmpDir, "com", "example", kept)); err != nil {
			t.Errorf("%s should not be removed: %v", kept, err)
		}
	}

	removed, err = fp.CleanGenerated(filepath.Join(tmpDir, "missing"), ".java", testMarker)
	if err != nil || len(removed) != 0 {
		t.Errorf("Expected a missing directory to be a no-op, got %v, %v", removed, err)
	}
}
