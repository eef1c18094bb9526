package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmDialog_Keys(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"enter confirms by default", []string{"enter"}, ActionConfirm},
		{"y confirms", []string{"y"}, ActionConfirm},
		{"n cancels", []string{"n"}, ActionCancel},
		{"esc cancels", []string{"esc"}, ActionCancel},
		{"tab then enter cancels", []string{"tab", "enter"}, ActionCancel},
		{"tab twice then enter confirms", []string{"tab", "tab", "enter"}, ActionConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewConfirmDialog("Delete?", "Sure?")
			var got string
			for _, k := range tt.keys {
				got = d.HandleKey(key(k))
			}
			if got != tt.want {
				t.Errorf("action = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfirmDialog_View(t *testing.T) {
	d := NewConfirmDialog("Delete memo?", "This cannot be undone.")
	d.ConfirmLabel = " Delete "
	out := ansi.Strip(d.View())
	for _, want := range []string{"Delete memo?", "This cannot be undone.", "Delete", "Cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPrompt(t *testing.T) {
	p := NewPrompt("New folder", "name", "")
	if action, _ := p.Update(key("enter")); action != ActionNone {
		t.Errorf("enter on blank = %q, want none", action)
	}
	p.Update(key("W"))
	p.Update(key("o"))
	if p.Value() != "Wo" {
		t.Errorf("Value() = %q, want Wo", p.Value())
	}
	if action, _ := p.Update(key("enter")); action != ActionConfirm {
		t.Errorf("enter = %q, want confirm", action)
	}
	if action, _ := p.Update(key("esc")); action != ActionCancel {
		t.Errorf("esc = %q, want cancel", action)
	}

	p = NewPrompt("Replace with", "", "")
	p.AllowEmpty = true
	if action, _ := p.Update(key("enter")); action != ActionConfirm {
		t.Errorf("enter with AllowEmpty = %q, want confirm", action)
	}
}

func TestPicker(t *testing.T) {
	p := NewPicker("Move to", []PickerItem{{ID: "", Label: "Unfiled"}, {ID: "f1", Label: "Work"}})
	p.HandleKey(key("down"))
	p.HandleKey(key("down"))
	if it, _ := p.Selected(); it.ID != "f1" {
		t.Errorf("Selected() = %q, want f1", it.ID)
	}
	p.HandleKey(key("up"))
	if it, _ := p.Selected(); it.ID != "" {
		t.Errorf("Selected() = %q, want unfiled", it.ID)
	}
	p.SetCursor("f1")
	if got := p.HandleKey(key("enter")); got != ActionConfirm {
		t.Errorf("enter = %q, want confirm", got)
	}
	if !strings.Contains(ansi.Strip(p.View()), "Work") {
		t.Error("view missing item label")
	}

	empty := NewPicker("Move to", nil)
	if got := empty.HandleKey(key("enter")); got != ActionNone {
		t.Errorf("enter on empty picker = %q, want none", got)
	}
}
