package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// GetDefault Tests
// =============================================================================

func TestGetDefault(t *testing.T) {
	cfg := GetDefault()

	if cfg == nil {
		t.Fatal("GetDefault returned nil")
	}
	if cfg.ExportDirName != "Export" {
		t.Errorf("expected ExportDirName 'Export', got %q", cfg.ExportDirName)
	}
	if cfg.RawExtension != "ARW" {
		t.Errorf("expected RawExtension 'ARW', got %q", cfg.RawExtension)
	}
	if cfg.EditedExtension != "jpg" {
		t.Errorf("expected EditedExtension 'jpg', got %q", cfg.EditedExtension)
	}
	if cfg.ExportDatePrefix {
		t.Error("expected ExportDatePrefix to be disabled by default")
	}
	if cfg.DryRun {
		t.Error("expected DryRun to be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(GetExampleConfig()), &cfg); err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}

	def := GetDefault()
	if cfg != *def {
		t.Errorf("example config = %+v, want defaults %+v", cfg, *def)
	}
}

func TestExportDir(t *testing.T) {
	cfg := GetDefault()
	cfg.Dir = "/photos/2023"

	if got := cfg.ExportDir(); got != filepath.Join("/photos/2023", "Export") {
		t.Errorf("ExportDir() = %q", got)
	}

	cfg.ExportDirName = "Edited"
	if got := cfg.ExportDir(); got != filepath.Join("/photos/2023", "Edited") {
		t.Errorf("ExportDir() = %q", got)
	}
}

// =============================================================================
// Load Tests
// =============================================================================

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load should not error for non-existent file: %v", err)
	}

	// Should return default config
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.ExportDirName != "Export" {
		t.Error("expected default export dir name")
	}
}

func TestLoadValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
export_dir_name: Edited
raw_extension: CR2
edited_extension: JPG
export_date_prefix: true
preview: never
prompt: line
output: json
dry_run: true
verbose: true
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ExportDirName != "Edited" {
		t.Errorf("expected ExportDirName 'Edited', got %q", cfg.ExportDirName)
	}
	if cfg.RawExtension != "CR2" || cfg.EditedExtension != "JPG" {
		t.Errorf("unexpected extensions %q/%q", cfg.RawExtension, cfg.EditedExtension)
	}
	if !cfg.ExportDatePrefix {
		t.Error("expected ExportDatePrefix to be true")
	}
	if cfg.Preview != PreviewNever {
		t.Errorf("expected preview never, got %q", cfg.Preview)
	}
	if cfg.Prompt != PromptLine {
		t.Errorf("expected prompt line, got %q", cfg.Prompt)
	}
	if cfg.Output != "json" {
		t.Errorf("expected output json, got %q", cfg.Output)
	}
	if !cfg.DryRun || !cfg.Verbose {
		t.Error("expected DryRun and Verbose to be true")
	}
}

func TestLoadPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Only override some values
	configContent := `
export_date_prefix: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Check that defaults are preserved for unspecified values
	if cfg.ExportDirName != "Export" {
		t.Errorf("expected default ExportDirName, got %q", cfg.ExportDirName)
	}
	if cfg.RawExtension != "ARW" {
		t.Errorf("expected default RawExtension, got %q", cfg.RawExtension)
	}
	if !cfg.ExportDatePrefix {
		t.Error("expected ExportDatePrefix to be true (overridden)")
	}
}

func TestLoadEmptyConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed on empty file: %v", err)
	}
	if *cfg != *GetDefault() {
		t.Errorf("empty config should load defaults, got %+v", *cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
export_dir_name: [invalid
raw_extension: ARW
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"separator in export dir", "export_dir_name: a/b\n", "path separators"},
		{"dotted extension", "raw_extension: .ARW\n", "leading dot"},
		{"bad preview", "preview: sometimes\n", "preview"},
		{"bad output", "output: xml\n", "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty export dir", func(c *Config) { c.ExportDirName = "" }, true},
		{"dot export dir", func(c *Config) { c.ExportDirName = "." }, true},
		{"parent export dir", func(c *Config) { c.ExportDirName = ".." }, true},
		{"hidden export dir", func(c *Config) { c.ExportDirName = ".export" }, false},
		{"empty raw extension", func(c *Config) { c.RawExtension = "" }, true},
		{"raw extension with slash", func(c *Config) { c.RawExtension = "a/b" }, true},
		{"edited extension with backslash", func(c *Config) { c.EditedExtension = `a\b` }, true},
		{"custom extensions", func(c *Config) { c.RawExtension = "NEF"; c.EditedExtension = "jpeg" }, false},
		{"same extensions", func(c *Config) { c.RawExtension = "jpg"; c.EditedExtension = "jpg" }, false},
		{"bad prompt", func(c *Config) { c.Prompt = "gui" }, true},
		{"preview always", func(c *Config) { c.Preview = PreviewAlways }, false},
		{"table output", func(c *Config) { c.Output = "table" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"upper log level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	cfg := GetDefault()

	if err := cfg.ValidateDir(); err == nil {
		t.Error("expected error for empty dir")
	}

	dir := t.TempDir()
	cfg.Dir = dir
	if err := cfg.ValidateDir(); err != nil {
		t.Errorf("ValidateDir() = %v for existing dir", err)
	}

	file := filepath.Join(dir, "a.ARW")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Dir = file
	if err := cfg.ValidateDir(); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("expected not a directory error, got %v", err)
	}

	cfg.Dir = filepath.Join(dir, "missing")
	if err := cfg.ValidateDir(); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestValidateDirRefusesProtectedDirs(t *testing.T) {
	tests := []string{"/", "/etc", "/usr", "/usr/", "/var/../etc"}

	for _, dir := range tests {
		t.Run(dir, func(t *testing.T) {
			cfg := GetDefault()
			cfg.Dir = dir
			err := cfg.ValidateDir()
			if !errors.Is(err, ErrProtectedDir) {
				t.Errorf("ValidateDir(%q) = %v, want ErrProtectedDir", dir, err)
			}
		})
	}
}

func TestValidateDirAllowsUserDir(t *testing.T) {
	cfg := GetDefault()
	cfg.Dir = t.TempDir()
	if err := cfg.ValidateDir(); errors.Is(err, ErrProtectedDir) {
		t.Errorf("ValidateDir(%q) = %v, a temp dir is not protected", cfg.Dir, err)
	}
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Error("GetConfigPath should return absolute path")
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("expected path to end with config.yaml, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "rawclean" {
		t.Errorf("expected rawclean config dir, got %s", path)
	}
}
