package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/rawclean/internal/config"
	"github.com/fenilsonani/rawclean/internal/resolver"
	"github.com/fenilsonani/rawclean/internal/ui"
	"github.com/fenilsonani/rawclean/internal/ui/styles"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd.SetArgs(rewriteLegacyShorthands(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rawclean",
	Short: "Delete RAW files that have no edited export",
	Long: `rawclean compares a directory of camera RAW files with its export
subdirectory and deletes the RAW files that were never edited and exported.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		styles.SetColor(ui.IsTerminal(os.Stdout))
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the config file location and the effective defaults for the clean command.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := configPath
		if cfgPath == "" {
			var err error
			if cfgPath, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file: %s\n", cfgPath)

		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "Config file does not exist. Using default configuration.")
			fmt.Fprintln(out, "\nTo create a config file, save the example below to that path:")
			fmt.Fprintln(out)
			fmt.Fprint(out, config.GetExampleConfig())
			return nil
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(out, "\nEffective configuration:")
		fmt.Fprint(out, string(data))
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose diagnostic logging on stderr")

	registerCleanFlags()
	registerScanFlags()

	// Add commands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}

// printError writes err and, for resolution failures, a remediation hint
func printError(err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error:"), err)

	var rerr *resolver.ResolveError
	if errors.As(err, &rerr) {
		if hint := rerr.Hint(); hint != "" {
			fmt.Fprintln(os.Stderr, styles.HelpStyle.Render(hint))
		}
	}
}
