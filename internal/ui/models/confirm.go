package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/rawclean/internal/ui/styles"
)

// ConfirmRequest describes one yes/no gate
type ConfirmRequest struct {
	Title    string
	Question string
	Details  []string

	// Share is the affected fraction (0 to 1) drawn as a bar; negative hides it
	Share float64

	// Danger marks a destructive gate
	Danger bool
}

type confirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Submit key.Binding
}

func defaultConfirmKeys() confirmKeyMap {
	return confirmKeyMap{
		Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:     key.NewBinding(key.WithKeys("n", "N", "q", "esc", "ctrl+c"), key.WithHelp("n", "no")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "yes")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "no")),
		Toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	}
}

// ConfirmModel is a single yes/no question. The cursor starts on "No" so an
// accidental enter never confirms.
type ConfirmModel struct {
	req       ConfirmRequest
	keys      confirmKeyMap
	bar       progress.Model
	cursor    int // 0 = Yes, 1 = No
	answered  bool
	confirmed bool
	width     int
}

// NewConfirmModel creates a new confirm model
func NewConfirmModel(req ConfirmRequest) *ConfirmModel {
	return &ConfirmModel{
		req:    req,
		keys:   defaultConfirmKeys(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cursor: 1,
		width:  80,
	}
}

// Confirmed reports whether the user answered yes. Only meaningful once
// Answered is true.
func (m *ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// Answered reports whether the user answered at all
func (m *ConfirmModel) Answered() bool {
	return m.answered
}

// Init initializes the confirm model
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(40, max(10, msg.Width-10))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m.answer(true)
		case key.Matches(msg, m.keys.No):
			return m.answer(false)
		case key.Matches(msg, m.keys.Left):
			m.cursor = 0
		case key.Matches(msg, m.keys.Right):
			m.cursor = 1
		case key.Matches(msg, m.keys.Toggle):
			m.cursor = 1 - m.cursor
		case key.Matches(msg, m.keys.Submit):
			return m.answer(m.cursor == 0)
		}
	}

	return m, nil
}

func (m *ConfirmModel) answer(yes bool) (tea.Model, tea.Cmd) {
	m.answered = true
	m.confirmed = yes
	return m, tea.Quit
}

// View renders the confirmation view
func (m *ConfirmModel) View() string {
	if m.answered {
		choice := styles.KeepStyle.Render("no")
		if m.confirmed {
			choice = styles.DeleteStyle.Render("yes")
		}
		return fmt.Sprintf("%s %s\n", m.req.Question, choice)
	}

	var b strings.Builder

	if m.req.Title != "" {
		title := m.req.Title
		if m.req.Danger {
			title = "⚠️  " + title
		}
		b.WriteString(styles.TitleStyle.Render(title))
		b.WriteString("\n\n")
	}

	for _, line := range m.req.Details {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.req.Share >= 0 && len(m.req.Details) > 0 {
		b.WriteString("\n  ")
		b.WriteString(m.bar.ViewAs(m.req.Share))
		b.WriteString("\n")
	}

	if m.req.Danger {
		b.WriteString("\n")
		b.WriteString(styles.WarningStyle.Render("This action cannot be undone!"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.BoldStyle.Render(m.req.Question))
	b.WriteString("\n\n")

	yesBtn := "[ Yes ]"
	noBtn := "[ No ]"
	if m.cursor == 0 {
		yesBtn = styles.HighlightStyle.Render(yesBtn)
	} else {
		noBtn = styles.HighlightStyle.Render(noBtn)
	}
	b.WriteString(yesBtn + "  " + noBtn)
	b.WriteString("\n\n")

	helpText := "y:yes  n:no  ←/→:navigate  enter:choose"
	if m.width < 60 {
		helpText = "y:yes  n:no  ←/→"
	}
	b.WriteString(styles.HelpStyle.Render(helpText))
	b.WriteString("\n")

	return b.String()
}
