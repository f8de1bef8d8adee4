package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/fenilsonani/rawclean/internal/config"
	"github.com/fenilsonani/rawclean/internal/ui/models"
	"github.com/fenilsonani/rawclean/internal/ui/styles"
)

// Prompter asks the user a yes/no question and blocks until answered
type Prompter interface {
	Confirm(req models.ConfirmRequest) (bool, error)
}

// NewPrompter picks the prompt implementation for mode. In auto mode the
// Bubble Tea prompt is used only when both in and out are terminals.
func NewPrompter(mode config.PromptMode, in, out *os.File) Prompter {
	switch mode {
	case config.PromptTUI:
		return NewTeaPrompter(in, out)
	case config.PromptLine:
		return NewLinePrompter(in, out)
	}

	if IsTerminal(in) && IsTerminal(out) {
		return NewTeaPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TeaPrompter runs a Bubble Tea confirm model inline
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTeaPrompter creates a new TeaPrompter
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

// Confirm runs the prompt until the user answers
func (p *TeaPrompter) Confirm(req models.ConfirmRequest) (bool, error) {
	m := models.NewConfirmModel(req)

	program := tea.NewProgram(m, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("error running confirmation prompt: %w", err)
	}

	cm, ok := final.(*models.ConfirmModel)
	if !ok || !cm.Answered() {
		return false, nil
	}
	return cm.Confirmed(), nil
}

// LinePrompter reads a y/N answer from a line-oriented reader
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter creates a new LinePrompter
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Confirm prints the request and reads one line. Only "y" or "yes" confirm;
// end of input declines.
func (p *LinePrompter) Confirm(req models.ConfirmRequest) (bool, error) {
	if req.Title != "" {
		fmt.Fprintln(p.out, styles.TitleStyle.Render(req.Title))
	}
	for _, line := range req.Details {
		fmt.Fprintf(p.out, "  %s\n", line)
	}
	if req.Share >= 0 && len(req.Details) > 0 {
		fmt.Fprintf(p.out, "  %s\n", styles.ShareBar(int(req.Share*1000), 1000, 30))
	}
	if req.Danger {
		fmt.Fprintln(p.out, styles.WarningStyle.Render("This action cannot be undone!"))
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", req.Question)

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(p.out)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
