package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoHomeDir is returned when neither XDG_CONFIG_HOME nor a home directory is known
var ErrNoHomeDir = errors.New("cannot determine home directory")

var protectedPaths = []string{
	"/",
	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/lib",
	"/lib64",
	"/proc",
	"/root",
	"/sbin",
	"/sys",
	"/usr",
	"/var",
	"/System",         // macOS
	"/Applications",   // macOS
	"/Library/System", // macOS
}

// ProtectedPaths returns the system directories no file is ever deleted from
func ProtectedPaths() []string {
	cp := make([]string, len(protectedPaths))
	copy(cp, protectedPaths)
	return cp
}

// IsProtectedPath checks if a path is itself a protected system directory
func IsProtectedPath(path string) bool {
	clean := filepath.Clean(path)
	for _, protected := range protectedPaths {
		if clean == protected {
			return true
		}
	}
	return false
}

// ConfigDir returns the user's config directory. XDG_CONFIG_HOME wins when it
// holds an absolute path, otherwise ~/.config is used on every platform.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoHomeDir
	}
	return filepath.Join(home, ".config"), nil
}
