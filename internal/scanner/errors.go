package scanner

import (
	"errors"
	"fmt"
	"os"
)

// DirectoryReadError is returned when a directory cannot be listed
type DirectoryReadError struct {
	Dir string
	Err error
}

// Error implements the error interface
func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Dir, e.Err)
}

// Unwrap returns the underlying filesystem error
func (e *DirectoryReadError) Unwrap() error {
	return e.Err
}

// NotExist reports whether the directory is missing
func (e *DirectoryReadError) NotExist() bool {
	return errors.Is(e.Err, os.ErrNotExist)
}
