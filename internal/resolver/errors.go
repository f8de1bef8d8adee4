package resolver

import (
	"errors"
	"fmt"
)

// Reason categorizes why orphan resolution was aborted
type Reason int

const (
	ReasonPrecheckFailed Reason = iota
	ReasonExportDirUnavailable
	ReasonDatePrefixMismatch
	ReasonRawDirUnavailable
)

// Sentinels for errors.Is checks against a *ResolveError
var (
	ErrPrecheckFailed       = errors.New("precheck failed")
	ErrExportDirUnavailable = errors.New("export directory unavailable")
	ErrDatePrefixMismatch   = errors.New("date prefix mismatch")
	ErrRawDirUnavailable    = errors.New("raw directory unavailable")
)

// String returns a human-readable reason
func (r Reason) String() string {
	switch r {
	case ReasonPrecheckFailed:
		return "Precheck failed"
	case ReasonExportDirUnavailable:
		return "Export directory unavailable"
	case ReasonDatePrefixMismatch:
		return "Date prefix mismatch"
	case ReasonRawDirUnavailable:
		return "RAW directory unavailable"
	default:
		return "Unspecified error"
	}
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonPrecheckFailed:
		return ErrPrecheckFailed
	case ReasonExportDirUnavailable:
		return ErrExportDirUnavailable
	case ReasonDatePrefixMismatch:
		return ErrDatePrefixMismatch
	case ReasonRawDirUnavailable:
		return ErrRawDirUnavailable
	default:
		return nil
	}
}

// ResolveError is a terminal failure of Resolve. Dir names the offending
// directory and Count the number of offending files, where applicable.
type ResolveError struct {
	Reason Reason
	Dir    string
	Count  int
	Err    error
}

// Error implements the error interface
func (e *ResolveError) Error() string {
	switch e.Reason {
	case ReasonPrecheckFailed:
		return fmt.Sprintf("found %d metadata file(s) starting with %q in %s", e.Count, MetadataPrefix, e.Dir)
	case ReasonDatePrefixMismatch:
		return fmt.Sprintf("%d edited file(s) in %s do not start with a YYYYMMDD- date prefix", e.Count, e.Dir)
	case ReasonExportDirUnavailable:
		return fmt.Sprintf("cannot read export directory %s: %v", e.Dir, e.Err)
	case ReasonRawDirUnavailable:
		return fmt.Sprintf("cannot read RAW directory %s: %v", e.Dir, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Dir, e.Reason)
	}
}

// Unwrap returns the underlying error, if any
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the reason
func (e *ResolveError) Is(target error) bool {
	return target != nil && target == e.Reason.sentinel()
}

// Hint returns a remediation hint for the user
func (e *ResolveError) Hint() string {
	switch e.Reason {
	case ReasonPrecheckFailed:
		return fmt.Sprintf("Remove the %q files first, they break name matching (e.g. find %s -name '%s*' -delete)", MetadataPrefix, e.Dir, MetadataPrefix)
	case ReasonExportDirUnavailable:
		return "Check that the export subdirectory exists; its name can be set with --export-dir-name"
	case ReasonDatePrefixMismatch:
		return "Rename the edited files or run without --export-date-prefix"
	case ReasonRawDirUnavailable:
		return "Check that the directory exists and is readable"
	default:
		return ""
	}
}
