package models

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModelKeys(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		want    bool
		settled bool
	}{
		{"y confirms", []string{"y"}, true, true},
		{"Y confirms", []string{"Y"}, true, true},
		{"n declines", []string{"n"}, false, true},
		{"esc declines", []string{"esc"}, false, true},
		{"ctrl+c declines", []string{"ctrl+c"}, false, true},
		{"enter defaults to no", []string{"enter"}, false, true},
		{"left then enter confirms", []string{"left", "enter"}, true, true},
		{"left right enter declines", []string{"left", "right", "enter"}, false, true},
		{"tab then enter confirms", []string{"tab", "enter"}, true, true},
		{"navigation alone", []string{"left", "right"}, false, false},
		{"unrelated key", []string{"x"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModel(ConfirmRequest{Question: "Delete?"})

			var cmd tea.Cmd
			for _, k := range tt.keys {
				_, cmd = m.Update(keyMsg(k))
			}

			if m.Answered() != tt.settled {
				t.Fatalf("Answered() = %v, want %v", m.Answered(), tt.settled)
			}
			if m.Confirmed() != tt.want {
				t.Errorf("Confirmed() = %v, want %v", m.Confirmed(), tt.want)
			}
			if tt.settled && cmd == nil {
				t.Error("answering should quit the program")
			}
		})
	}
}

func TestConfirmModelView(t *testing.T) {
	m := NewConfirmModel(ConfirmRequest{
		Title:    "Confirm Deletion",
		Question: "Delete 1 RAW file?",
		Details:  []string{"1 of 2 RAW files (50.0%) will be deleted, 1 kept."},
		Share:    0.5,
		Danger:   true,
	})

	view := m.View()
	for _, want := range []string{"Confirm Deletion", "Delete 1 RAW file?", "50.0%", "cannot be undone", "Yes", "No"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(keyMsg("y"))
	if view := m.View(); !strings.Contains(view, "Delete 1 RAW file?") || !strings.Contains(view, "yes") {
		t.Errorf("answered view = %q", view)
	}
}

func TestConfirmModelWindowSize(t *testing.T) {
	m := NewConfirmModel(ConfirmRequest{Question: "Show the file list?", Share: -1})
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})

	view := m.View()
	if !strings.Contains(view, "y:yes  n:no  ←/→") || strings.Contains(view, "navigate") {
		t.Errorf("narrow terminal should use short help:\n%s", view)
	}
}
