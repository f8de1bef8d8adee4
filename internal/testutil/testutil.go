// Package testutil provides test helpers and fixtures for rawclean tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// TestFixture holds a shooting directory and its export subdirectory
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)

	RawDir    string // Directory holding the RAW files
	ExportDir string // RawDir/Export
}

// NewFixture creates a RAW directory with an empty "Export" subdirectory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()
	raw := filepath.Join(root, "shoot")

	f := &TestFixture{
		T:         t,
		RootDir:   root,
		RawDir:    raw,
		ExportDir: filepath.Join(raw, "Export"),
	}

	if err := os.MkdirAll(f.ExportDir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", f.ExportDir, err)
	}

	return f
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file relative to the fixture root and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateRaw creates files with the given names in the RAW directory
func (f *TestFixture) CreateRaw(names ...string) []string {
	f.T.Helper()
	return f.createIn(f.RawDir, names)
}

// CreateEdited creates files with the given names in the export directory
func (f *TestFixture) CreateEdited(names ...string) []string {
	f.T.Helper()
	return f.createIn(f.ExportDir, names)
}

func (f *TestFixture) createIn(dir string, names []string) []string {
	f.T.Helper()

	paths := make([]string, 0, len(names))
	for _, name := range names {
		rel, err := filepath.Rel(f.RootDir, filepath.Join(dir, name))
		if err != nil {
			f.T.Fatalf("failed to resolve %s: %v", name, err)
		}
		// Content size varies with the name so size totals are predictable
		paths = append(paths, f.CreateFile(rel, []byte(name)))
	}
	return paths
}

// CreateSymlink creates a symlink at linkPath (relative to the root) pointing at target
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLink := filepath.Join(f.RootDir, linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLink), 0755); err != nil {
		f.T.Fatalf("failed to create directory for symlink: %v", err)
	}
	if err := os.Symlink(target, fullLink); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLink, target, err)
	}

	return fullLink
}

// RemoveExportDir deletes the export subdirectory
func (f *TestFixture) RemoveExportDir() {
	f.T.Helper()
	if err := os.RemoveAll(f.ExportDir); err != nil {
		f.T.Fatalf("failed to remove %s: %v", f.ExportDir, err)
	}
}

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a file exists
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// RawNames returns the sorted entry names of the RAW directory, Export included
func (f *TestFixture) RawNames() []string {
	f.T.Helper()

	entries, err := os.ReadDir(f.RawDir)
	if err != nil {
		f.T.Fatalf("failed to read %s: %v", f.RawDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// =============================================================================
// Environment Helpers
// =============================================================================

// IsRoot returns true if running as root/admin
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}

// Sorted returns a sorted copy of names, for comparing unordered listings
func Sorted(names []string) []string {
	cp := make([]string, len(names))
	copy(cp, names)
	sort.Strings(cp)
	return cp
}

// ContainsString checks if s contains substr
func ContainsString(s, substr string) bool {
	return strings.Contains(s, substr)
}
