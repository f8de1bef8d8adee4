package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/rawclean/internal/cleaner"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Structured reports whether the format is meant for machines
func (r *Reporter) Structured() bool {
	return r.format == FormatJSON || r.format == FormatYAML
}

// FormatBytes formats a byte count for display
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Preview prints every RAW file of the plan with its delete/keep decision
func (r *Reporter) Preview(plan *cleaner.Plan) error {
	rows := make([][]string, 0, len(plan.Entries))
	for i, e := range plan.Entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Name, FormatBytes(e.Size), action(e.Delete)})
	}

	out := renderTable(
		[]string{"#", "File", "Size", "Action"},
		rows,
		[]text.Align{text.AlignRight, text.AlignLeft, text.AlignRight, text.AlignLeft},
	)
	_, err := fmt.Fprintln(r.writer, out)
	return err
}

// PlanSummary describes how many RAW files a plan deletes and keeps
func PlanSummary(plan *cleaner.Plan) string {
	return fmt.Sprintf("%d of %d RAW files (%.1f%%) will be deleted, %d kept. Reclaimable: %s",
		plan.DeleteCount(), plan.Total(), plan.DeletePercent(), plan.KeepCount(), FormatBytes(plan.DeleteSize))
}

// ReportPlan prints a plan without deleting anything
func (r *Reporter) ReportPlan(plan *cleaner.Plan) error {
	switch r.format {
	case FormatTable:
		return r.Preview(plan)
	case FormatJSON:
		encoder := json.NewEncoder(r.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(plan)
	case FormatYAML:
		encoder := yaml.NewEncoder(r.writer)
		defer encoder.Close()
		return encoder.Encode(plan)
	case FormatSummary:
		for _, e := range plan.Targets() {
			fmt.Fprintf(r.writer, "  %s (%s)\n", e.Name, FormatBytes(e.Size))
		}
		_, err := fmt.Fprintln(r.writer, PlanSummary(plan))
		return err
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// Report prints the outcome of a clean run in the configured format
func (r *Reporter) Report(plan *cleaner.Plan, result *cleaner.CleanResult) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(plan, result)
	case FormatJSON:
		return r.reportJSON(plan, result)
	case FormatYAML:
		return r.reportYAML(plan, result)
	case FormatSummary:
		return r.reportSummary(plan, result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(plan *cleaner.Plan, result *cleaner.CleanResult) error {
	verb := "Deleted"
	if result.DryRun {
		verb = "Would delete"
	}

	fmt.Fprintf(r.writer, "\n=== Cleanup Summary ===\n")
	fmt.Fprintf(r.writer, "Directory: %s\n", plan.Dir)
	fmt.Fprintf(r.writer, "%s: %d files, %s\n", verb, len(result.DeletedFiles), FormatBytes(result.DeletedSize))
	fmt.Fprintf(r.writer, "Kept: %d files\n", plan.KeepCount())

	if len(result.Errors) > 0 {
		fmt.Fprintf(r.writer, "Failed: %d files\n", len(result.Errors))
		fmt.Fprint(r.writer, cleaner.FormatErrorSummary(result.Errors))
	}

	return nil
}

// reportTable generates a table report
func (r *Reporter) reportTable(plan *cleaner.Plan, result *cleaner.CleanResult) error {
	failed := make(map[string]cleaner.ErrorReason, len(result.Errors))
	for _, e := range result.Errors {
		failed[filepath.Base(e.Path)] = e.Reason
	}
	deleted := make(map[string]bool, len(result.DeletedFiles))
	for _, name := range result.DeletedFiles {
		deleted[name] = true
	}

	deletedLabel := "deleted"
	if result.DryRun {
		deletedLabel = "would delete"
	}

	rows := make([][]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		status := "kept"
		switch {
		case deleted[e.Name]:
			status = deletedLabel
		case e.Delete:
			status = "failed"
			if reason, ok := failed[e.Name]; ok {
				status = "failed: " + reason.String()
			}
		}
		rows = append(rows, []string{e.Name, FormatBytes(e.Size), status})
	}

	fmt.Fprintln(r.writer, renderTable(
		[]string{"File", "Size", "Status"},
		rows,
		[]text.Align{text.AlignLeft, text.AlignRight, text.AlignLeft},
	))
	fmt.Fprintf(r.writer, "Total: %d deleted (%s), %d kept, %d failed\n",
		len(result.DeletedFiles), FormatBytes(result.DeletedSize), plan.KeepCount(), len(result.Errors))

	return nil
}

// failure is the serialised form of a DeletionError
type failure struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// report is the structured form shared by the JSON and YAML formats
type report struct {
	Timestamp            string    `json:"timestamp" yaml:"timestamp"`
	Dir                  string    `json:"dir" yaml:"dir"`
	DryRun               bool      `json:"dry_run" yaml:"dry_run"`
	TotalFiles           int       `json:"total_files" yaml:"total_files"`
	KeptFiles            int       `json:"kept_files" yaml:"kept_files"`
	Deleted              []string  `json:"deleted" yaml:"deleted"`
	DeletedSize          int64     `json:"deleted_size" yaml:"deleted_size"`
	DeletedSizeFormatted string    `json:"deleted_size_formatted" yaml:"deleted_size_formatted"`
	Failed               []failure `json:"failed" yaml:"failed"`
}

func newReport(plan *cleaner.Plan, result *cleaner.CleanResult) report {
	failed := make([]failure, 0, len(result.Errors))
	for _, e := range result.Errors {
		f := failure{Path: e.Path, Reason: e.Reason.String()}
		if e.Original != nil {
			f.Error = e.Original.Error()
		}
		failed = append(failed, f)
	}

	return report{
		Timestamp:            time.Now().Format(time.RFC3339),
		Dir:                  plan.Dir,
		DryRun:               result.DryRun,
		TotalFiles:           plan.Total(),
		KeptFiles:            plan.KeepCount(),
		Deleted:              result.DeletedFiles,
		DeletedSize:          result.DeletedSize,
		DeletedSizeFormatted: FormatBytes(result.DeletedSize),
		Failed:               failed,
	}
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(plan *cleaner.Plan, result *cleaner.CleanResult) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newReport(plan, result))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(plan *cleaner.Plan, result *cleaner.CleanResult) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(newReport(plan, result))
}

func action(del bool) string {
	if del {
		return "delete"
	}
	return "keep"
}

func renderTable(headers []string, rows [][]string, aligns []text.Align) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
