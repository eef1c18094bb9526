package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/memopad/internal/config"
	"github.com/marcus/memopad/internal/msg"
	"github.com/marcus/memopad/internal/styles"
	"github.com/marcus/memopad/internal/ui"
)

// ModalKind identifies the open dialog.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalConfirm
	ModalPrompt
	ModalPicker
)

// dialog is the open modal plus what to do when it is accepted.
type dialog struct {
	kind    ModalKind
	confirm *ui.ConfirmDialog
	prompt  *ui.Prompt
	picker  *ui.Picker
	// onAccept runs with the prompt value or picked item id.
	onAccept func(m *Model, value string) tea.Cmd
	// onCancel runs when the dialog is dismissed.
	onCancel func(m *Model) tea.Cmd
}

// Model is the root Bubble Tea model.
type Model struct {
	ctrl *Controller
	cfg  *config.Config
	keys keyMap

	ctx        context.Context
	configPath string

	width, height int
	ready         bool

	// List state
	cursor    int
	offset    int
	editMode  bool
	selection Selection
	filtering bool
	filter    textinput.Model

	// Editor state
	editor    textarea.Model
	scrollOff int

	modal *dialog

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool
}

// New creates the root model. configPath is watched for live changes when
// non-empty.
func New(ctx context.Context, ctrl *Controller, cfg *config.Config, configPath string) Model {
	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter"
	fi.CharLimit = 200

	m := Model{
		ctrl:       ctrl,
		cfg:        cfg,
		keys:       defaultKeyMap(),
		ctx:        ctx,
		configPath: configPath,
		filter:     fi,
		editor:     newEditor(),
	}
	if memo, ok := ctrl.EditingMemo(); ok {
		m.loadEditor(memo.Text)
	}
	return m
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Placeholder = "Start typing..."
	ta.FocusedStyle = textarea.Style{
		Base:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle(),
		EndOfBuffer: styles.Muted,
		Placeholder: styles.Muted,
		Prompt:      lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
	}
	ta.BlurredStyle = ta.FocusedStyle
	return ta
}

// Init starts the clock tick and the config watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.ctrl.Nav().Editing() {
		cmds = append(cmds, textarea.Blink)
	}
	if m.configPath != "" {
		cmds = append(cmds, watchConfig(m.ctx, m.configPath))
	}
	return tea.Batch(cmds...)
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(text string, duration time.Duration) {
	m.statusMsg = text
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = false
}

// ShowError displays an error toast.
func (m *Model) ShowError(err error) {
	m.ShowToast("Error: "+err.Error(), msg.ToastLong)
	m.statusIsError = true
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

func (m *Model) hasModal() bool {
	return m.modal != nil && m.modal.kind != ModalNone
}

func (m *Model) openConfirm(d *ui.ConfirmDialog, onAccept func(m *Model) tea.Cmd) {
	m.modal = &dialog{
		kind:     ModalConfirm,
		confirm:  d,
		onAccept: func(m *Model, _ string) tea.Cmd { return onAccept(m) },
	}
}

func (m *Model) openPrompt(p *ui.Prompt, onAccept func(m *Model, value string) tea.Cmd) tea.Cmd {
	m.modal = &dialog{kind: ModalPrompt, prompt: p, onAccept: onAccept}
	return textinput.Blink
}

func (m *Model) openPicker(p *ui.Picker, onAccept func(m *Model, id string) tea.Cmd) {
	m.modal = &dialog{kind: ModalPicker, picker: p, onAccept: onAccept}
}
