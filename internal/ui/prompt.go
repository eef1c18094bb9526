package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/memopad/internal/styles"
)

// Prompt is a single-line text input modal.
type Prompt struct {
	Title string
	Hint  string
	Width int
	// AllowEmpty lets enter submit a blank value.
	AllowEmpty bool

	input textinput.Model
}

// NewPrompt creates a focused prompt pre-filled with value.
func NewPrompt(title, placeholder, value string) *Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return &Prompt{Title: title, Width: ModalWidthMedium, input: ti}
}

// Value returns the current input.
func (p *Prompt) Value() string {
	return p.input.Value()
}

// Update routes msg to the input. It returns ActionConfirm on enter with a
// usable value and ActionCancel on esc.
func (p *Prompt) Update(msg tea.Msg) (string, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return ActionCancel, nil
		case tea.KeyEnter:
			if !p.AllowEmpty && strings.TrimSpace(p.input.Value()) == "" {
				return ActionNone, nil
			}
			return ActionConfirm, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return ActionNone, cmd
}

func (p *Prompt) View() string {
	inner := p.Width - styles.ModalBox.GetHorizontalFrameSize()
	p.input.Width = inner - 3

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(p.Title))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	if p.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render(p.Hint))
	}
	return styles.ModalBox.Width(inner).Render(b.String())
}
