package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// ListByExtension returns the names of the entries in dir whose extension
// (the suffix after the last dot) equals ext. The comparison is case-sensitive
// and names are returned in directory order.
func ListByExtension(dir, ext string) ([]string, error) {
	suffix := "." + ext
	return list(dir, func(name string) bool {
		return filepath.Ext(name) == suffix
	})
}

// ListByPrefix returns the names of the entries in dir that start with prefix.
func ListByPrefix(dir, prefix string) ([]string, error) {
	return list(dir, func(name string) bool {
		return strings.HasPrefix(name, prefix)
	})
}

// list reads dir once and keeps the names accepted by keep.
func list(dir string, keep func(string) bool) ([]string, error) {
	names, err := readNames(dir)
	if err != nil {
		return nil, &DirectoryReadError{Dir: dir, Err: err}
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		if keep(name) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// readNames returns entry names without sorting them, unlike os.ReadDir.
func readNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdirnames(-1)
}
