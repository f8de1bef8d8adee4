// Package resolver finds RAW files that have no edited counterpart.
package resolver

import (
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/fenilsonani/rawclean/internal/scanner"
)

// MetadataPrefix marks the "._" metadata files some copy tools leave behind
const MetadataPrefix = "._"

// DatePrefixLen is the length of a "YYYYMMDD-" prefix
const DatePrefixLen = 9

var datePrefixPattern = regexp.MustCompile(`^\d{8}-`)

// Options describes one resolution run
type Options struct {
	RawDir     string
	ExportDir  string
	RawExt     string
	EditedExt  string
	DatePrefix bool
	Logger     *slog.Logger
}

// Result holds the RAW listing and the orphans found in it
type Result struct {
	Raw     []string
	Orphans []string
}

// Resolve returns the RAW files in opts.RawDir without an edited counterpart
// in opts.ExportDir, in RAW scan order. Every failure is terminal.
func Resolve(opts Options) ([]string, error) {
	res, err := ResolveAll(opts)
	if err != nil {
		return nil, err
	}
	return res.Orphans, nil
}

// ResolveAll is Resolve but also returns the full RAW listing
func ResolveAll(opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}

	if err := precheck(opts.RawDir, ReasonRawDirUnavailable); err != nil {
		return nil, err
	}
	if err := precheck(opts.ExportDir, ReasonExportDirUnavailable); err != nil {
		return nil, err
	}

	edited, err := scanner.ListByExtension(opts.ExportDir, opts.EditedExt)
	if err != nil {
		return nil, &ResolveError{Reason: ReasonExportDirUnavailable, Dir: opts.ExportDir, Err: err}
	}
	log.Debug("edited files listed", "dir", opts.ExportDir, "ext", opts.EditedExt, "count", len(edited))

	if opts.DatePrefix {
		if invalid := CountMissingDatePrefix(edited); invalid > 0 {
			return nil, &ResolveError{Reason: ReasonDatePrefixMismatch, Dir: opts.ExportDir, Count: invalid}
		}
	}

	raw, err := scanner.ListByExtension(opts.RawDir, opts.RawExt)
	if err != nil {
		return nil, &ResolveError{Reason: ReasonRawDirUnavailable, Dir: opts.RawDir, Err: err}
	}
	log.Debug("raw files listed", "dir", opts.RawDir, "ext", opts.RawExt, "count", len(raw))

	orphans := Orphans(raw, Normalize(edited, opts.DatePrefix), opts.RawExt, opts.EditedExt)
	log.Debug("orphans resolved", "orphans", len(orphans), "raw", len(raw))

	return &Result{Raw: raw, Orphans: orphans}, nil
}

func precheck(dir string, unavailable Reason) error {
	found, err := scanner.ListByPrefix(dir, MetadataPrefix)
	if err != nil {
		return &ResolveError{Reason: unavailable, Dir: dir, Err: err}
	}
	if len(found) > 0 {
		return &ResolveError{Reason: ReasonPrecheckFailed, Dir: dir, Count: len(found)}
	}
	return nil
}

// HasDatePrefix reports whether name starts with eight digits and a hyphen
func HasDatePrefix(name string) bool {
	return datePrefixPattern.MatchString(name)
}

// CountMissingDatePrefix returns how many names lack a date prefix
func CountMissingDatePrefix(names []string) int {
	count := 0
	for _, name := range names {
		if !HasDatePrefix(name) {
			count++
		}
	}
	return count
}

// Normalize returns the edited names as they are compared against RAW names.
// With datePrefix set the "YYYYMMDD-" prefix is stripped; Resolve rejects
// names without one before getting here.
func Normalize(edited []string, datePrefix bool) []string {
	normalized := make([]string, len(edited))
	for i, name := range edited {
		if datePrefix && HasDatePrefix(name) {
			name = name[DatePrefixLen:]
		}
		normalized[i] = name
	}
	return normalized
}

// EditedName derives the edited file name for a RAW file name by replacing
// the first occurrence of rawExt with editedExt. The replacement is not
// anchored to the end of the name.
func EditedName(rawName, rawExt, editedExt string) string {
	return strings.Replace(rawName, rawExt, editedExt, 1)
}

// Orphans returns the RAW names whose edited name is not in edited
func Orphans(raw, edited []string, rawExt, editedExt string) []string {
	have := make(map[string]struct{}, len(edited))
	for _, name := range edited {
		have[name] = struct{}{}
	}

	orphans := make([]string, 0)
	for _, name := range raw {
		if _, ok := have[EditedName(name, rawExt, editedExt)]; !ok {
			orphans = append(orphans, name)
		}
	}
	return orphans
}
