package security

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fenilsonani/rawclean/internal/testutil"
)

func TestValidatePathForDeletion(t *testing.T) {
	f := testutil.NewFixture(t)
	raws := f.CreateRaw("a.ARW", "IMG (1).ARW")
	edited := f.CreateEdited("a.jpg")
	f.CreateFile("other/b.ARW", []byte("b"))
	link := f.CreateSymlink(raws[0], "shoot/link.ARW")
	if err := os.Mkdir(filepath.Join(f.RawDir, "sub.ARW"), 0755); err != nil {
		t.Fatal(err)
	}

	pv := NewPathValidator(f.RawDir, f.ExportDir)

	tests := []struct {
		name     string
		path     string
		errorMsg string // empty means valid
	}{
		{"regular file", raws[0], ""},
		{"name with spaces and parens", raws[1], ""},
		{"relative path", "shoot/a.ARW", "path must be absolute"},
		{"unclean path", f.RawDir + "/./a.ARW", "suspicious elements"},
		{"traversal", f.RawDir + "/../other/b.ARW", "suspicious elements"},
		{"sibling directory", f.Path("other/b.ARW"), "outside"},
		{"file in export dir", edited[0], "outside"},
		{"export dir itself", f.ExportDir, "export directory"},
		{"symlink", link, "symlink"},
		{"directory", filepath.Join(f.RawDir, "sub.ARW"), "not a regular file"},
		{"missing file", filepath.Join(f.RawDir, "gone.ARW"), "no such file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pv.ValidatePathForDeletion(tt.path)
			if tt.errorMsg == "" {
				if err != nil {
					t.Errorf("expected %s to be valid, got %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q for %s", tt.errorMsg, tt.path)
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestValidatePathForDeletionRelativeRoot(t *testing.T) {
	f := testutil.NewFixture(t)
	raws := f.CreateRaw("a.ARW")

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(f.RootDir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	pv := NewPathValidator("shoot", filepath.Join("shoot", "Export"))
	if !filepath.IsAbs(pv.RootDir()) {
		t.Fatalf("RootDir() = %q, want absolute", pv.RootDir())
	}

	path, err := pv.PathFor("a.ARW")
	if err != nil {
		t.Fatalf("PathFor() error = %v", err)
	}
	if err := pv.ValidatePathForDeletion(path); err != nil {
		t.Errorf("expected %s to be valid: %v", path, err)
	}
	if filepath.Base(path) != filepath.Base(raws[0]) {
		t.Errorf("PathFor() = %q", path)
	}
}

func TestExportDirNamedLikeRawFile(t *testing.T) {
	f := testutil.NewFixture(t)
	// An export directory that itself matches the RAW extension
	exportDir := filepath.Join(f.RawDir, "Export.ARW")
	if err := os.Mkdir(exportDir, 0755); err != nil {
		t.Fatal(err)
	}

	pv := NewPathValidator(f.RawDir, exportDir)
	err := pv.ValidatePathForDeletion(exportDir)
	if err == nil || !strings.Contains(err.Error(), "export directory") {
		t.Errorf("expected export directory to be refused, got %v", err)
	}
}

func TestProtectedSystemPathRefused(t *testing.T) {
	pv := NewPathValidator("/etc", "/etc/Export")

	err := pv.ValidatePathForDeletion("/etc/hosts")
	if err == nil || !strings.Contains(err.Error(), "critical system path") {
		t.Errorf("expected critical system path error, got %v", err)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"a.ARW", true},
		{"._hidden", true},
		{"IMG (1).ARW", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../a.ARW", false},
		{"sub/a.ARW", false},
		{"a\x00.ARW", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateName(%q) = %v, want valid=%v", tt.name, err, tt.valid)
			}
		})
	}

	pv := NewPathValidator("/photos", "/photos/Export")
	if _, err := pv.PathFor("../etc/passwd"); err == nil {
		t.Error("PathFor should reject traversal")
	}
}
