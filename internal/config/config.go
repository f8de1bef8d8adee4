package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/rawclean/internal/platform"
)

// Config represents the application configuration. It is built once per run
// from defaults, the optional config file and command-line flags.
type Config struct {
	Dir string `yaml:"-"` // RAW directory, always from the command line

	ExportDirName    string `yaml:"export_dir_name"`
	RawExtension     string `yaml:"raw_extension"`
	EditedExtension  string `yaml:"edited_extension"`
	ExportDatePrefix bool   `yaml:"export_date_prefix"`

	Preview PreviewMode `yaml:"preview"`
	Prompt  PromptMode  `yaml:"prompt"`
	Output  string      `yaml:"output"` // summary, table, json, yaml

	DryRun    bool   `yaml:"dry_run"`
	Verbose   bool   `yaml:"verbose"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text, json
}

// PreviewMode controls the preview gate before the delete prompt
type PreviewMode string

const (
	PreviewAsk    PreviewMode = "ask"
	PreviewAlways PreviewMode = "always"
	PreviewNever  PreviewMode = "never"
)

// PromptMode selects how confirmation prompts are shown
type PromptMode string

const (
	PromptAuto PromptMode = "auto" // TUI on a terminal, plain lines otherwise
	PromptTUI  PromptMode = "tui"
	PromptLine PromptMode = "line"
)

var outputFormats = []string{"summary", "table", "json", "yaml"}

// ErrProtectedDir is returned by ValidateDir for system directories
var ErrProtectedDir = errors.New("refusing to clean a protected system directory")

// ExportDir returns the path of the export subdirectory
func (c *Config) ExportDir() string {
	return filepath.Join(c.Dir, c.ExportDirName)
}

// Load loads configuration from a file on top of the defaults
func Load(configPath string) (*Config, error) {
	config := GetDefault()

	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validateName("export directory name", c.ExportDirName); err != nil {
		return err
	}
	if err := validateExtension("raw extension", c.RawExtension); err != nil {
		return err
	}
	if err := validateExtension("edited extension", c.EditedExtension); err != nil {
		return err
	}

	switch c.Preview {
	case PreviewAsk, PreviewAlways, PreviewNever:
	default:
		return fmt.Errorf("preview must be one of ask, always, never: %q", c.Preview)
	}

	switch c.Prompt {
	case PromptAuto, PromptTUI, PromptLine:
	default:
		return fmt.Errorf("prompt must be one of auto, tui, line: %q", c.Prompt)
	}

	if !contains(outputFormats, c.Output) {
		return fmt.Errorf("output must be one of %s: %q", strings.Join(outputFormats, ", "), c.Output)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error: %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "":
	default:
		return fmt.Errorf("log format must be text or json: %q", c.LogFormat)
	}

	return nil
}

// ValidateDir checks that the RAW directory is set, is a directory and is
// not one of the protected system directories
func (c *Config) ValidateDir() error {
	if c.Dir == "" {
		return fmt.Errorf("directory must be set")
	}
	if isProtectedDir(c.Dir) {
		return fmt.Errorf("%w: %s", ErrProtectedDir, c.Dir)
	}
	info, err := os.Stat(c.Dir)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", c.Dir)
	}
	return nil
}

// isProtectedDir checks dir both as given and with symlinks resolved
func isProtectedDir(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if platform.IsProtectedPath(abs) {
		return true
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return platform.IsProtectedPath(resolved)
	}
	return false
}

// validateName checks that name is a single path element
func validateName(what, name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%s is invalid: %q", what, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%s must not contain path separators: %q", what, name)
	}
	return nil
}

func validateExtension(what, ext string) error {
	if err := validateName(what, ext); err != nil {
		return err
	}
	if strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%s must be given without the leading dot: %q", what, ext)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "rawclean", "config.yaml"), nil
}
