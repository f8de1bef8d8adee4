package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/rawclean/internal/platform"
)

// PathValidator guards deletions so that only plain files directly inside the
// RAW directory are removed, never anything in the export directory.
type PathValidator struct {
	rootDir        string
	exportDir      string
	protectedPaths []string
}

// NewPathValidator creates a validator for files in rootDir. exportDir is
// always protected, together with the default system directories.
func NewPathValidator(rootDir, exportDir string) *PathValidator {
	return &PathValidator{
		rootDir:        cleanAbs(rootDir),
		exportDir:      cleanAbs(exportDir),
		protectedPaths: platform.ProtectedPaths(),
	}
}

// RootDir returns the absolute directory files are deleted from
func (pv *PathValidator) RootDir() string {
	return pv.rootDir
}

// PathFor joins a validated file name onto the root directory
func (pv *PathValidator) PathFor(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(pv.rootDir, name), nil
}

// ValidatePathForDeletion performs comprehensive validation on a path before deletion
func (pv *PathValidator) ValidatePathForDeletion(path string) error {
	// Step 1: Path must be absolute
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	// Step 2: Reject paths that are not in canonical form
	if filepath.Clean(path) != path {
		return fmt.Errorf("path contains suspicious elements: %s", path)
	}

	// Step 3: Only direct children of the root directory
	if filepath.Dir(path) != pv.rootDir {
		return fmt.Errorf("path is outside %s: %s", pv.rootDir, path)
	}

	// Step 4: Never touch the export directory or anything inside it
	if path == pv.exportDir || strings.HasPrefix(path, pv.exportDir+string(filepath.Separator)) {
		return fmt.Errorf("refusing to delete inside the export directory: %s", path)
	}

	// Step 5: Check against protected paths
	if err := pv.checkProtectedPaths(path); err != nil {
		return err
	}

	// Step 6: Must be a regular file; Lstat so symlinks are not followed
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("path is a symlink: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}

	return nil
}

// checkProtectedPaths validates that a path is not a protected system path
// or a direct child of one
func (pv *PathValidator) checkProtectedPaths(cleanPath string) error {
	for _, protected := range pv.protectedPaths {
		// Exact match
		if cleanPath == protected {
			return fmt.Errorf("refusing to delete protected path: %s", cleanPath)
		}

		if strings.HasPrefix(cleanPath, protected+"/") {
			rel, _ := filepath.Rel(protected, cleanPath)
			if !strings.Contains(rel, "/") {
				return fmt.Errorf("refusing to delete critical system path: %s", cleanPath)
			}
		}
	}

	return nil
}

// ValidateName checks that name is a single file name without directory parts
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid file name: %q", name)
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("file name contains a path separator: %q", name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("file name contains a null byte: %q", name)
	}
	return nil
}

func cleanAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
