package cleaner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/rawclean/internal/config"
	"github.com/fenilsonani/rawclean/internal/security"
)

// Deleter abstracts filesystem delete operations so tests can prove that
// dry runs never delete
type Deleter interface {
	Remove(path string) error
}

type osDeleter struct{}

func (osDeleter) Remove(path string) error {
	return os.Remove(path)
}

// CleanResult represents the result of a clean operation
type CleanResult struct {
	DeletedFiles []string
	DeletedSize  int64
	Errors       []*DeletionError
	DryRun       bool
}

// Attempted returns the number of files the cleaner tried to delete
func (r *CleanResult) Attempted() int {
	return len(r.DeletedFiles) + len(r.Errors)
}

// AllFailed reports whether every attempted deletion failed
func (r *CleanResult) AllFailed() bool {
	return len(r.Errors) > 0 && len(r.DeletedFiles) == 0
}

// DeletedFunc is called after each successful (or simulated) deletion
type DeletedFunc func(name string, size int64)

// Cleaner deletes the files of a Plan one by one with safeguards
type Cleaner struct {
	config            *config.Config
	validator         *security.PathValidator
	permissionManager *PermissionManager
	deleter           Deleter
	manifest          *DeletionManifest
	onDeleted         DeletedFunc
	log               *slog.Logger
}

// New creates a new Cleaner for the directories named in cfg
func New(cfg *config.Config, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Cleaner{
		config:            cfg,
		validator:         security.NewPathValidator(cfg.Dir, cfg.ExportDir()),
		permissionManager: NewPermissionManager(),
		deleter:           osDeleter{},
		manifest:          NewDeletionManifest(cfg.Dir),
		log:               log,
	}
}

// SetDeleter replaces the filesystem deleter
func (c *Cleaner) SetDeleter(d Deleter) {
	c.deleter = d
}

// SetDeletedCallback registers a function called for every deleted file
func (c *Cleaner) SetDeletedCallback(fn DeletedFunc) {
	c.onDeleted = fn
}

// Execute attempts every deletion in the plan. Failures are recorded and do
// not stop the remaining deletions. Nothing is removed in dry-run mode.
func (c *Cleaner) Execute(plan *Plan) (*CleanResult, error) {
	if plan == nil {
		return nil, errors.New("no plan to execute")
	}

	result := &CleanResult{
		DeletedFiles: []string{},
		Errors:       []*DeletionError{},
		DryRun:       c.config.DryRun,
	}

	c.log.Debug("executing plan", "dir", c.validator.RootDir(), "targets", plan.DeleteCount(), "dry_run", result.DryRun)

	for _, entry := range plan.Targets() {
		path, err := c.validator.PathFor(entry.Name)
		if err != nil {
			result.Errors = append(result.Errors, &DeletionError{Path: entry.Name, Reason: ErrorInvalidPath, Original: err})
			continue
		}

		if delErr := c.deleteFile(path); delErr != nil {
			c.log.Warn("deletion failed", "path", path, "reason", delErr.Reason.String(), "error", delErr.Original)
			result.Errors = append(result.Errors, delErr)
			continue
		}

		if !result.DryRun {
			c.manifest.Add(path, entry.Size)
		}
		result.DeletedFiles = append(result.DeletedFiles, entry.Name)
		result.DeletedSize += entry.Size
		c.log.Debug("deleted", "path", path, "size", entry.Size, "dry_run", result.DryRun)

		if c.onDeleted != nil {
			c.onDeleted(entry.Name, entry.Size)
		}
	}

	return result, nil
}

// deleteFile validates and removes a single file
func (c *Cleaner) deleteFile(path string) *DeletionError {
	if err := c.validator.ValidatePathForDeletion(path); err != nil {
		if os.IsNotExist(err) {
			return CategorizeError(path, err)
		}
		return &DeletionError{Path: path, Reason: ErrorInvalidPath, Original: err}
	}

	if c.config.DryRun {
		return nil
	}

	if err := c.deleter.Remove(path); err != nil {
		return CategorizeError(path, err)
	}
	return nil
}

// CheckPermissions reports planned deletions that are bound to fail
func (c *Cleaner) CheckPermissions(plan *Plan) *PermissionReport {
	paths := make([]string, 0, plan.DeleteCount())
	for _, entry := range plan.Targets() {
		if path, err := c.validator.PathFor(entry.Name); err == nil {
			paths = append(paths, path)
		}
	}
	return c.permissionManager.AnalyzePermissions(paths)
}

// GetManifest returns the deletion manifest
func (c *Cleaner) GetManifest() *DeletionManifest {
	return c.manifest
}

// SaveManifest saves the deletion manifest to a file
func (c *Cleaner) SaveManifest(path string) error {
	return c.manifest.Save(path)
}

// DeletionManifest keeps track of deleted files
type DeletionManifest struct {
	RunID     string            `yaml:"run_id"`
	Dir       string            `yaml:"dir"`
	Timestamp time.Time         `yaml:"timestamp"`
	TotalSize int64             `yaml:"total_size"`
	Files     []DeletedFileInfo `yaml:"files"`
}

// DeletedFileInfo represents information about a deleted file
type DeletedFileInfo struct {
	Path      string    `yaml:"path"`
	Size      int64     `yaml:"size"`
	DeletedAt time.Time `yaml:"deleted_at"`
}

// NewDeletionManifest creates a new DeletionManifest
func NewDeletionManifest(dir string) *DeletionManifest {
	return &DeletionManifest{
		RunID:     uuid.NewString(),
		Dir:       dir,
		Timestamp: time.Now(),
		Files:     []DeletedFileInfo{},
	}
}

// Add adds a file to the manifest
func (m *DeletionManifest) Add(path string, size int64) {
	m.Files = append(m.Files, DeletedFileInfo{
		Path:      path,
		Size:      size,
		DeletedAt: time.Now(),
	})
	m.TotalSize += size
}

// Save writes the manifest as YAML
func (m *DeletionManifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
