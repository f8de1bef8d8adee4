package cleaner

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"syscall"
)

// PermissionManager handles permission checking
type PermissionManager struct {
	isRoot bool
}

// NewPermissionManager creates a new PermissionManager
func NewPermissionManager() *PermissionManager {
	currentUser, _ := user.Current()
	isRoot := currentUser != nil && currentUser.Uid == "0"

	return &PermissionManager{
		isRoot: isRoot,
	}
}

// CanDelete checks if we have permission to delete a file. Removing a
// directory entry needs write access to the parent directory.
func (pm *PermissionManager) CanDelete(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		return false, err
	}

	if pm.isRoot {
		return true, nil
	}

	parentDir := filepath.Dir(path)
	parentInfo, err := os.Stat(parentDir)
	if err != nil {
		return false, err
	}

	stat, ok := parentInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("unable to get file stats")
	}

	currentUser, err := user.Current()
	if err != nil {
		return false, err
	}

	// Owner, then group, then other write bits
	if fmt.Sprint(stat.Uid) == currentUser.Uid {
		return parentInfo.Mode()&0200 != 0, nil
	}
	if fmt.Sprint(stat.Gid) == currentUser.Gid {
		return parentInfo.Mode()&0020 != 0, nil
	}
	return parentInfo.Mode()&0002 != 0, nil
}

// PermissionReport sorts planned deletions by whether they can succeed
type PermissionReport struct {
	Deletable         []string
	Blocked           []string
	InaccessibleFiles map[string]error
}

// AnalyzePermissions checks every path before the delete prompt so that the
// user learns about read-only directories up front
func (pm *PermissionManager) AnalyzePermissions(paths []string) *PermissionReport {
	report := &PermissionReport{
		Deletable:         []string{},
		Blocked:           []string{},
		InaccessibleFiles: make(map[string]error),
	}

	for _, path := range paths {
		canDelete, err := pm.CanDelete(path)
		if err != nil {
			report.InaccessibleFiles[path] = err
			continue
		}

		if canDelete {
			report.Deletable = append(report.Deletable, path)
		} else {
			report.Blocked = append(report.Blocked, path)
		}
	}

	return report
}
