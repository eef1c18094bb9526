package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/memopad/internal/styles"
)

// PickerItem is one choice in a Picker. Label may contain styling.
type PickerItem struct {
	ID    string
	Label string
}

// Picker is a modal list of choices.
type Picker struct {
	Title string
	Items []PickerItem
	Width int

	cursor int
}

func NewPicker(title string, items []PickerItem) *Picker {
	return &Picker{Title: title, Items: items, Width: ModalWidthSmall}
}

// Selected returns the item under the cursor.
func (p *Picker) Selected() (PickerItem, bool) {
	if p.cursor < 0 || p.cursor >= len(p.Items) {
		return PickerItem{}, false
	}
	return p.Items[p.cursor], true
}

// SetCursor moves the cursor to the item with id.
func (p *Picker) SetCursor(id string) {
	for i, it := range p.Items {
		if it.ID == id {
			p.cursor = i
			return
		}
	}
}

// HandleKey moves the cursor or returns ActionConfirm / ActionCancel.
func (p *Picker) HandleKey(msg tea.KeyMsg) string {
	switch msg.String() {
	case "up", "k", "shift+tab":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j", "tab":
		if p.cursor < len(p.Items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.Items) > 0 {
			return ActionConfirm
		}
	case "esc", "q":
		return ActionCancel
	}
	return ActionNone
}

func (p *Picker) View() string {
	inner := p.Width - styles.ModalBox.GetHorizontalFrameSize()

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(p.Title))
	for i, it := range p.Items {
		b.WriteString("\n")
		if i == p.cursor {
			b.WriteString(styles.ListCursor.Render("› "))
			b.WriteString(styles.ListItemSelected.Render(it.Label))
		} else {
			b.WriteString("  ")
			b.WriteString(styles.ListItemNormal.Render(it.Label))
		}
	}
	return styles.ModalBox.Width(inner).Render(b.String())
}
