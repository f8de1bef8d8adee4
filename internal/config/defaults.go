package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		ExportDirName:    "Export",
		RawExtension:     "ARW", // Sony RAW
		EditedExtension:  "jpg",
		ExportDatePrefix: false,
		Preview:          PreviewAsk,
		Prompt:           PromptAuto,
		Output:           "summary",
		DryRun:           false,
		Verbose:          false,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# rawclean Configuration File
# Defaults for the clean command; flags always win.
# Location: ~/.config/rawclean/config.yaml

# Name of the subdirectory holding the edited exports
export_dir_name: "Export"

# Extensions without the leading dot, matched case-sensitively
raw_extension: "ARW"
edited_extension: "jpg"

# Exports are named YYYYMMDD-<original name>
export_date_prefix: false

# Show the file list before the delete prompt: ask, always, never
preview: ask

# Prompt style: auto (TUI on a terminal), tui, line
prompt: auto

# Report format after cleanup: summary, table, json, yaml
output: summary

# Show what would be deleted without deleting
dry_run: false

# Diagnostic logging on stderr
verbose: false
log_level: info   # debug, info, warn, error
log_format: text  # text, json
`
}
