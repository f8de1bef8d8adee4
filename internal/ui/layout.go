package ui

import (
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size is unknown
const DefaultWidth = 80

// TerminalWidth returns the width of f, or DefaultWidth when f is not a terminal
func TerminalWidth(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultWidth
}

// FitLine truncates s to width display cells, adding an ellipsis if needed
func FitLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
