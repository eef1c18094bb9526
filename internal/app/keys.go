package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for list screens and the editor.
type keyMap struct {
	Quit       key.Binding
	TabMemo    key.Binding
	TabFolder  key.Binding
	TabSearch  key.Binding
	TabSetting key.Binding
	NextTab    key.Binding
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	Back       key.Binding
	Filter     key.Binding
	New        key.Binding
	EditMode   key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Move       key.Binding
	Copy       key.Binding
	Export     key.Binding
	Sort       key.Binding
	Rename     key.Binding
	Recolor    key.Binding

	EditorFind    key.Binding
	EditorReplace key.Binding
	EditorBottom  key.Binding
	EditorYank    key.Binding
	EditorClear   key.Binding
	EditorBack    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		TabMemo:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "memos")),
		TabFolder:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "folders")),
		TabSearch:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "search")),
		TabSetting: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		EditMode:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "select")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Move:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Recolor:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "colour")),

		EditorFind:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("^f", "find")),
		EditorReplace: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "replace")),
		EditorBottom:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^g", "bottom")),
		EditorYank:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "copy text")),
		EditorClear:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^l", "clear highlight")),
		EditorBack:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}
