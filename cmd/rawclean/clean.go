package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fenilsonani/rawclean/internal/cleaner"
	"github.com/fenilsonani/rawclean/internal/config"
	"github.com/fenilsonani/rawclean/internal/logging"
	"github.com/fenilsonani/rawclean/internal/reporter"
	"github.com/fenilsonani/rawclean/internal/resolver"
	"github.com/fenilsonani/rawclean/internal/ui"
	"github.com/fenilsonani/rawclean/internal/ui/models"
	"github.com/fenilsonani/rawclean/internal/ui/styles"
)

var (
	exportDirName string
	rawExt        string
	editedExt     string
	datePrefix    bool
	preview       bool
	force         bool
	dryRun        bool
	outputFmt     string
	manifestPath  string
)

// legacyShorthands are two-letter options kept for older scripts
var legacyShorthands = map[string]string{
	"tr": "type-raw",
	"te": "type-edited",
	"dp": "export-date-prefix",
}

var cleanCmd = &cobra.Command{
	Use:   "clean <dir>",
	Short: "Clean up RAW files from a directory where no exported JPEGs exist",
	Long: `Deletes the RAW files in <dir> that have no edited counterpart in the
export subdirectory. Nothing is deleted without confirmation unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commandConfig(cmd, args[0])
		if err != nil {
			return err
		}

		log, err := logging.NewFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		env := newRunEnv(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), log)
		env.prompter = ui.NewPrompter(cfg.Prompt, os.Stdin, env.promptOut())
		env.force = force
		env.manifestPath = manifestPath

		return runClean(cfg, env)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Show which RAW files have no exported JPEG",
	Long:  `Reports the RAW files clean would delete, without prompting or deleting anything.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commandConfig(cmd, args[0])
		if err != nil {
			return err
		}

		log, err := logging.NewFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		return runScan(cfg, newRunEnv(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), log))
	},
}

func addMatchFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&exportDirName, "export-dir-name", "e", "Export", "name of the subdirectory with exported JPEGs")
	fs.StringVar(&rawExt, "type-raw", "ARW", "extension of the RAW files, without the dot (alias --tr)")
	fs.StringVar(&editedExt, "type-edited", "jpg", "extension of the edited files, without the dot (alias --te)")
	fs.BoolVar(&datePrefix, "export-date-prefix", false, "edited files are named YYYYMMDD-<name> (alias --dp)")
	fs.StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml)")
	fs.SetNormalizeFunc(normalizeFlagName)
}

func registerCleanFlags() {
	fs := cleanCmd.Flags()
	addMatchFlags(fs)
	fs.BoolVar(&preview, "preview", false, "list every RAW file with its decision before the delete prompt")
	fs.BoolVar(&force, "force", false, "skip the delete confirmation prompt")
	fs.BoolVar(&dryRun, "dry-run", false, "show what would be deleted without actually deleting")
	fs.StringVar(&manifestPath, "manifest", "", "write a YAML manifest of deleted files to this path")
}

func registerScanFlags() {
	addMatchFlags(scanCmd.Flags())
}

// normalizeFlagName maps the legacy two-letter options onto their long names
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if long, ok := legacyShorthands[name]; ok {
		name = long
	}
	return pflag.NormalizedName(name)
}

// rewriteLegacyShorthands turns "-tr", "-te" and "-dp" into their long form.
// pflag would otherwise read "-tr" as the shorthands -t and -r.
func rewriteLegacyShorthands(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}

		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name, value, hasValue := strings.Cut(arg[1:], "=")
			if _, ok := legacyShorthands[name]; ok {
				arg = "--" + name
				if hasValue {
					arg += "=" + value
				}
			}
		}
		out = append(out, arg)
	}
	return out
}

// commandConfig loads the config file and applies the flags that were set
func commandConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Dir = dir

	// Override config with flags
	fs := cmd.Flags()
	if fs.Changed("export-dir-name") {
		cfg.ExportDirName = exportDirName
	}
	if fs.Changed("type-raw") {
		cfg.RawExtension = rawExt
	}
	if fs.Changed("type-edited") {
		cfg.EditedExtension = editedExt
	}
	if fs.Changed("export-date-prefix") {
		cfg.ExportDatePrefix = datePrefix
	}
	if fs.Changed("output") {
		cfg.Output = outputFmt
	}
	if f := fs.Lookup("preview"); f != nil && f.Changed {
		cfg.Preview = config.PreviewNever
		if preview {
			cfg.Preview = config.PreviewAlways
		}
	}
	if f := fs.Lookup("dry-run"); f != nil && f.Changed {
		cfg.DryRun = dryRun
	}
	if fs.Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runEnv carries the collaborators of one run
type runEnv struct {
	stdout       io.Writer
	stderr       io.Writer
	reporter     *reporter.Reporter
	prompter     ui.Prompter
	log          *slog.Logger
	force        bool
	manifestPath string
}

func newRunEnv(cfg *config.Config, stdout, stderr io.Writer, log *slog.Logger) *runEnv {
	return &runEnv{
		stdout:   stdout,
		stderr:   stderr,
		reporter: reporter.New(stdout, reporter.OutputFormat(cfg.Output)),
		log:      log,
	}
}

// msg is where human-readable progress goes. Structured reports own stdout.
func (e *runEnv) msg() io.Writer {
	if e.reporter.Structured() {
		return e.stderr
	}
	return e.stdout
}

func (e *runEnv) promptOut() *os.File {
	if e.reporter.Structured() {
		return os.Stderr
	}
	return os.Stdout
}

func (e *runEnv) confirm(req models.ConfirmRequest) (bool, error) {
	if e.prompter == nil {
		return false, fmt.Errorf("no prompt available")
	}
	return e.prompter.Confirm(req)
}

// resolvePlan finds the orphans in cfg.Dir and builds the deletion plan
func resolvePlan(cfg *config.Config, log *slog.Logger) (*cleaner.Plan, error) {
	if err := cfg.ValidateDir(); err != nil {
		if errors.Is(err, config.ErrProtectedDir) {
			return nil, err
		}
		return nil, &resolver.ResolveError{Reason: resolver.ReasonRawDirUnavailable, Dir: cfg.Dir, Err: err}
	}

	res, err := resolver.ResolveAll(resolver.Options{
		RawDir:     cfg.Dir,
		ExportDir:  cfg.ExportDir(),
		RawExt:     cfg.RawExtension,
		EditedExt:  cfg.EditedExtension,
		DatePrefix: cfg.ExportDatePrefix,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	return cleaner.NewPlan(cfg.Dir, res.Raw, res.Orphans), nil
}

func runScan(cfg *config.Config, env *runEnv) error {
	plan, err := resolvePlan(cfg, env.log)
	if err != nil {
		return err
	}

	if plan.IsEmpty() && !env.reporter.Structured() {
		fmt.Fprintln(env.stdout, "Nothing to clean up.")
		return nil
	}

	if err := env.reporter.ReportPlan(plan); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return nil
}

func runClean(cfg *config.Config, env *runEnv) error {
	out := env.msg()

	fmt.Fprintln(out, styles.TitleStyle.Render("Cleaning up RAW files"))
	fmt.Fprintln(out, "Dir:", cfg.Dir)
	fmt.Fprintln(out, "Subdir name with exports:", cfg.ExportDirName)

	plan, err := resolvePlan(cfg, env.log)
	if err != nil {
		return err
	}

	if plan.IsEmpty() {
		fmt.Fprintln(out, "Nothing to clean up.")
		return nil
	}

	// Preview gate
	showPreview := cfg.Preview == config.PreviewAlways
	if cfg.Preview == config.PreviewAsk {
		showPreview, err = env.confirm(models.ConfirmRequest{
			Question: fmt.Sprintf("Show all %d RAW files before deleting?", plan.Total()),
			Share:    -1,
		})
		if err != nil {
			return err
		}
	}
	if showPreview {
		if err := reporter.New(out, reporter.FormatTable).Preview(plan); err != nil {
			return fmt.Errorf("failed to print preview: %w", err)
		}
	}

	clnr := cleaner.New(cfg, env.log)

	perms := clnr.CheckPermissions(plan)
	if n := len(perms.Blocked) + len(perms.InaccessibleFiles); n > 0 {
		fmt.Fprintln(out, styles.WarningStyle.Render(
			fmt.Sprintf("⚠️  %d file(s) cannot be deleted (directory not writable or file missing)", n)))
		env.log.Warn("permission check", "blocked", len(perms.Blocked), "inaccessible", len(perms.InaccessibleFiles))
	}

	// Delete gate
	if !env.force && !cfg.DryRun {
		ok, err := env.confirm(models.ConfirmRequest{
			Title:    "Confirm Deletion",
			Question: fmt.Sprintf("Delete %d RAW file(s)?", plan.DeleteCount()),
			Details:  []string{reporter.PlanSummary(plan)},
			Share:    plan.DeletePercent() / 100,
			Danger:   true,
		})
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cleanup cancelled")
			return nil
		}
	} else {
		fmt.Fprintln(out, reporter.PlanSummary(plan))
	}

	if cfg.DryRun {
		fmt.Fprintln(out, "\n[DRY RUN MODE] No files will be deleted.")
	}

	progress := ui.NewDeletionProgress(out, plan.DeleteCount(), cfg.DryRun)
	clnr.SetDeletedCallback(progress.Deleted)

	result, err := clnr.Execute(plan)
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	if err := env.reporter.Report(plan, result); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if env.manifestPath != "" && !cfg.DryRun {
		if err := clnr.SaveManifest(env.manifestPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Manifest saved to: %s\n", env.manifestPath)
	}

	if result.AllFailed() {
		return fmt.Errorf("all %d deletions failed", result.Attempted())
	}
	return nil
}
