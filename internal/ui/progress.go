package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
)

// DeletionProgress prints one line per deleted file
type DeletionProgress struct {
	mu     sync.Mutex
	out    io.Writer
	total  int
	done   int
	dryRun bool
	width  int // 0 = never truncate
}

// NewDeletionProgress creates a progress printer for total deletions. Lines
// are fitted to the width only on a terminal; logs and pipes get every name
// in full.
func NewDeletionProgress(out io.Writer, total int, dryRun bool) *DeletionProgress {
	width := 0
	if f, ok := out.(*os.File); ok && IsTerminal(f) {
		width = TerminalWidth(f)
	}

	return &DeletionProgress{
		out:    out,
		total:  total,
		dryRun: dryRun,
		width:  width,
	}
}

// Deleted reports one deleted file; it matches cleaner.DeletedFunc
func (p *DeletionProgress) Deleted(name string, size int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++

	verb := "Deleted"
	if p.dryRun {
		verb = "Would delete"
	}

	counter := fmt.Sprintf("[%*d/%d]", len(fmt.Sprint(p.total)), p.done, p.total)
	line := fmt.Sprintf("%s %s %s (%s)", counter, verb, name, humanize.Bytes(uint64(max(size, 0))))
	if p.width > 0 {
		line = FitLine(line, p.width-1)
	}
	fmt.Fprintln(p.out, line)
}
