// Package state holds the navigation state machine: which tab is active,
// which folder or memo is open, the inline query and the editor highlight.
package state

import (
	"encoding/json"
	"slices"

	"github.com/marcus/memopad/internal/memo"
)

// Tab is a top-level section of the app.
type Tab string

const (
	TabMemo     Tab = "memo"
	TabFolder   Tab = "folder"
	TabSearch   Tab = "search"
	TabSettings Tab = "settings"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabMemo, TabFolder, TabSearch, TabSettings}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return slices.Contains(Tabs, t)
}

// View is the screen currently shown.
type View string

const (
	ViewMemoList     View = "memoList"
	ViewFolderList   View = "folderList"
	ViewFolderDetail View = "folderDetail"
	ViewEditor       View = "editor"
	ViewSearch       View = "search"
	ViewSettings     View = "settings"
)

// Snapshot is the persisted part of the navigation state.
type Snapshot struct {
	Tab       Tab
	FolderID  string
	EditingID string
}

type snapshotJSON struct {
	Tab       Tab     `json:"tab"`
	FolderID  *string `json:"folderId"`
	EditingID *string `json:"editingId"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		Tab:       s.Tab,
		FolderID:  nullable(s.FolderID),
		EditingID: nullable(s.EditingID),
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Snapshot{Tab: raw.Tab}
	if raw.FolderID != nil {
		s.FolderID = *raw.FolderID
	}
	if raw.EditingID != nil {
		s.EditingID = *raw.EditingID
	}
	return nil
}

// Documents is the slice of the document store the machine needs.
type Documents interface {
	Memo(id string) (memo.Memo, bool)
	HasFolder(id string) bool
	CreateMemo(folderID string) memo.Memo
	DiscardIfBlank(id string) bool
}

// Machine is the navigation state machine. The current view is derived
// from the tab, the open folder and the editing memo.
type Machine struct {
	docs Documents

	tab       Tab
	folderID  string
	editingID string
	query     string
	highlight string

	onChange func(Snapshot)
}

// New returns a machine on the memo list.
func New(docs Documents) *Machine {
	return &Machine{docs: docs, tab: TabMemo}
}

// OnChange registers fn to receive the snapshot after every transition.
func (m *Machine) OnChange(fn func(Snapshot)) {
	m.onChange = fn
}

func (m *Machine) changed() {
	if m.onChange != nil {
		m.onChange(m.Snapshot())
	}
}

func (m *Machine) Tab() Tab { return m.tab }

func (m *Machine) FolderID() string { return m.folderID }

func (m *Machine) EditingID() string { return m.editingID }

func (m *Machine) Query() string { return m.query }

// Highlight returns the active editor highlight term.
func (m *Machine) Highlight() string { return m.highlight }

func (m *Machine) Editing() bool { return m.editingID != "" }

func (m *Machine) InFolderDetail() bool { return m.tab == TabFolder && m.folderID != "" }

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Tab: m.tab, FolderID: m.folderID, EditingID: m.editingID}
}

// View returns the screen for the current state.
func (m *Machine) View() View {
	if m.editingID != "" {
		return ViewEditor
	}
	switch m.tab {
	case TabFolder:
		if m.folderID != "" {
			return ViewFolderDetail
		}
		return ViewFolderList
	case TabSearch:
		return ViewSearch
	case TabSettings:
		return ViewSettings
	default:
		return ViewMemoList
	}
}

// SwitchTab activates tab, closing any folder detail and clearing the
// inline query. Unknown tabs fall back to the memo tab.
func (m *Machine) SwitchTab(tab Tab) {
	if !tab.Valid() {
		tab = TabMemo
	}
	m.tab = tab
	m.folderID = ""
	m.query = ""
	m.changed()
}

// OpenFolderDetail shows the members of folderID. Unknown folders are
// ignored.
func (m *Machine) OpenFolderDetail(folderID string) bool {
	if m.editingID != "" || !m.docs.HasFolder(folderID) {
		return false
	}
	m.tab = TabFolder
	m.folderID = folderID
	m.query = ""
	m.changed()
	return true
}

// OpenEditor opens memoID in the editor. An empty memoID creates a blank
// memo in folderID and opens that instead. It returns the memo being
// edited, or false when memoID does not exist.
func (m *Machine) OpenEditor(memoID, folderID string) (memo.Memo, bool) {
	var target memo.Memo
	if memoID == "" {
		target = m.docs.CreateMemo(folderID)
	} else {
		found, ok := m.docs.Memo(memoID)
		if !ok {
			return memo.Memo{}, false
		}
		target = found
	}
	m.editingID = target.ID
	m.changed()
	return target, true
}

// GoBack leaves the editor, discarding the memo if it is blank and
// clearing the highlight, or closes the folder detail. It reports whether
// the memo was discarded.
func (m *Machine) GoBack() (discarded bool) {
	switch {
	case m.editingID != "":
		discarded = m.docs.DiscardIfBlank(m.editingID)
		m.editingID = ""
		m.highlight = ""
	case m.InFolderDetail():
		m.folderID = ""
		m.query = ""
	default:
		return false
	}
	m.changed()
	return discarded
}

// SetQuery sets the inline search filter for the current list.
func (m *Machine) SetQuery(q string) {
	m.query = q
}

// SetHighlight sets the editor highlight term. An empty term clears it.
func (m *Machine) SetHighlight(term string) {
	m.highlight = term
}

func (m *Machine) ClearHighlight() {
	m.highlight = ""
}

// Restore applies a persisted snapshot. A snapshot that references a memo
// or folder which no longer exists falls back to the memo list.
func (m *Machine) Restore(s Snapshot) {
	m.tab = TabMemo
	m.folderID = ""
	m.editingID = ""
	m.query = ""
	m.highlight = ""

	tab := s.Tab
	if !tab.Valid() {
		tab = TabMemo
	}

	switch {
	case s.EditingID != "":
		if _, ok := m.docs.Memo(s.EditingID); !ok {
			break
		}
		m.tab = tab
		if tab == TabFolder && s.FolderID != "" {
			if m.docs.HasFolder(s.FolderID) {
				m.folderID = s.FolderID
			} else {
				m.tab = TabMemo
			}
		}
		m.editingID = s.EditingID
	case tab == TabFolder && s.FolderID != "":
		if !m.docs.HasFolder(s.FolderID) {
			break
		}
		m.tab = TabFolder
		m.folderID = s.FolderID
	default:
		m.tab = tab
	}
	m.changed()
}
