package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/memopad/internal/styles"
)

// Dialog actions returned from HandleKey.
const (
	ActionNone    = ""
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Modal widths.
const (
	ModalWidthSmall  = 36
	ModalWidthMedium = 50
)

// ConfirmDialog is a yes/no modal with two buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g., " Delete ", " Yes "
	CancelLabel  string
	Danger       bool // render the confirm button in the error colour
	Width        int

	focusCancel bool
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
	}
}

// HandleKey processes a key and returns the resulting action, if any.
// y/n answer directly; tab and arrows move focus; enter picks the focused
// button; esc cancels.
func (d *ConfirmDialog) HandleKey(msg tea.KeyMsg) string {
	switch msg.String() {
	case "y", "Y":
		return ActionConfirm
	case "n", "N", "esc", "q":
		return ActionCancel
	case "tab", "shift+tab", "left", "right", "h", "l":
		d.focusCancel = !d.focusCancel
	case "enter":
		if d.focusCancel {
			return ActionCancel
		}
		return ActionConfirm
	}
	return ActionNone
}

// View renders the dialog box.
func (d *ConfirmDialog) View() string {
	width := d.Width
	if width <= 0 {
		width = ModalWidthMedium
	}
	inner := width - styles.ModalBox.GetHorizontalFrameSize()

	confirm, cancel := styles.Button, styles.Button
	if d.focusCancel {
		cancel = styles.ButtonFocused
	} else if d.Danger {
		confirm = styles.ButtonDanger
	} else {
		confirm = styles.ButtonFocused
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Render(d.Message))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		confirm.Render(strings.TrimSpace(d.ConfirmLabel)),
		"  ",
		cancel.Render(strings.TrimSpace(d.CancelLabel)),
	))

	box := styles.ModalBox.Width(inner)
	if d.Danger {
		box = box.BorderForeground(styles.Error)
	}
	return box.Render(b.String())
}
