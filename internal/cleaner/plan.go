package cleaner

import (
	"os"
	"path/filepath"
)

// Entry is one RAW file and the decision taken for it
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Size   int64  `json:"size" yaml:"size"`
	Delete bool   `json:"delete" yaml:"delete"`
}

// Plan lists every RAW file of a run with its delete/keep decision
type Plan struct {
	Dir        string  `json:"dir" yaml:"dir"`
	Entries    []Entry `json:"entries" yaml:"entries"`
	DeleteSize int64   `json:"delete_size" yaml:"delete_size"`
	KeepSize   int64   `json:"keep_size" yaml:"keep_size"`
}

// NewPlan marks the orphans among rawFiles for deletion, keeping scan order.
// Sizes are best effort; a file that cannot be stat'ed counts as zero bytes.
func NewPlan(dir string, rawFiles, orphans []string) *Plan {
	marked := make(map[string]bool, len(orphans))
	for _, name := range orphans {
		marked[name] = true
	}

	plan := &Plan{
		Dir:     dir,
		Entries: make([]Entry, 0, len(rawFiles)),
	}
	for _, name := range rawFiles {
		entry := Entry{Name: name, Delete: marked[name]}
		if info, err := os.Lstat(filepath.Join(dir, name)); err == nil {
			entry.Size = info.Size()
		}

		if entry.Delete {
			plan.DeleteSize += entry.Size
		} else {
			plan.KeepSize += entry.Size
		}
		plan.Entries = append(plan.Entries, entry)
	}

	return plan
}

// Targets returns the entries marked for deletion
func (p *Plan) Targets() []Entry {
	targets := make([]Entry, 0, p.DeleteCount())
	for _, e := range p.Entries {
		if e.Delete {
			targets = append(targets, e)
		}
	}
	return targets
}

// Total returns the number of RAW files in the plan
func (p *Plan) Total() int {
	return len(p.Entries)
}

// DeleteCount returns the number of files marked for deletion
func (p *Plan) DeleteCount() int {
	n := 0
	for _, e := range p.Entries {
		if e.Delete {
			n++
		}
	}
	return n
}

// KeepCount returns the number of files that stay
func (p *Plan) KeepCount() int {
	return p.Total() - p.DeleteCount()
}

// DeletePercent returns the share of files marked for deletion, 0 to 100
func (p *Plan) DeletePercent() float64 {
	if p.Total() == 0 {
		return 0
	}
	return float64(p.DeleteCount()) * 100 / float64(p.Total())
}

// IsEmpty reports whether there is nothing to delete
func (p *Plan) IsEmpty() bool {
	return p.DeleteCount() == 0
}
