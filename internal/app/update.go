package app

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/memopad/internal/config"
	"github.com/marcus/memopad/internal/export"
	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/msg"
	"github.com/marcus/memopad/internal/state"
	"github.com/marcus/memopad/internal/styles"
	"github.com/marcus/memopad/internal/ui"
)

// Update handles all messages.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.resizeEditor()
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration)
		m.statusIsError = message.IsError
		return m, nil

	case ConfigChangedMsg:
		if message.Change.Err != nil {
			m.ShowError(message.Change.Err)
		} else {
			m.applyConfig(message.Change.Config)
			m.ShowToast("Config reloaded", msg.ToastShort)
		}
		return m, waitConfig(message.next)

	case ExportDoneMsg:
		if message.Err != nil {
			m.ShowError(message.Err)
		} else {
			m.ShowToast(fmt.Sprintf("Exported %s", plural(message.Count, "memo")), msg.ToastShort)
			m.leaveEditMode()
		}
		return m, nil

	case tea.KeyMsg:
		cmd = m.handleKey(message)
		if !m.ctrl.Nav().Editing() && m.ctrl.Nav().Tab() != state.TabSettings {
			m.syncOffset(len(m.rows()))
		}
	default:
		cmd = m.forward(message)
	}

	if err := m.ctrl.TakeSaveError(); err != nil {
		m.ShowError(err)
	}
	return m, cmd
}

// forward passes non-key messages (cursor blink) to the focused input.
func (m *Model) forward(message tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.hasModal() && m.modal.kind == ModalPrompt:
		_, cmd = m.modal.prompt.Update(message)
	case m.ctrl.Nav().Editing():
		m.editor, cmd = m.editor.Update(message)
	case m.filtering:
		m.filter, cmd = m.filter.Update(message)
	}
	return cmd
}

func (m *Model) applyConfig(cfg *config.Config) {
	*m.cfg = *cfg
	m.resizeEditor()
}

func (m *Model) handleKey(k tea.KeyMsg) tea.Cmd {
	if k.String() == "ctrl+c" {
		return m.quit()
	}
	if m.hasModal() {
		return m.handleModalKey(k)
	}
	if m.ctrl.Nav().Editing() {
		return m.handleEditorKey(k)
	}
	if m.filtering {
		return m.handleFilterKey(k)
	}
	if m.ctrl.Nav().Tab() == state.TabSettings {
		return m.handleSettingsKey(k)
	}
	return m.handleListKey(k)
}

// quit flushes the open memo before exiting.
func (m *Model) quit() tea.Cmd {
	if m.ctrl.Nav().Editing() {
		_ = m.ctrl.Type(m.editor.Value())
	}
	return tea.Quit
}

func (m *Model) closeModal() {
	m.modal = nil
}

func (m *Model) handleModalKey(k tea.KeyMsg) tea.Cmd {
	d := m.modal
	var action, value string
	var cmd tea.Cmd
	switch d.kind {
	case ModalConfirm:
		action = d.confirm.HandleKey(k)
	case ModalPrompt:
		action, cmd = d.prompt.Update(k)
		value = d.prompt.Value()
	case ModalPicker:
		action = d.picker.HandleKey(k)
		if it, ok := d.picker.Selected(); ok {
			value = it.ID
		}
	}

	switch action {
	case ui.ActionConfirm:
		m.closeModal()
		if d.onAccept != nil {
			return d.onAccept(m, value)
		}
	case ui.ActionCancel:
		m.closeModal()
		if d.onCancel != nil {
			return d.onCancel(m)
		}
	}
	return cmd
}

// Editor

func (m *Model) handleEditorKey(k tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(k, m.keys.EditorBack):
		return m.closeEditor()

	case key.Matches(k, m.keys.EditorFind):
		p := ui.NewPrompt("Highlight", "text to find", m.ctrl.Highlight())
		return m.openPrompt(p, func(m *Model, term string) tea.Cmd {
			n := m.ctrl.Find(m.editor.Value(), term)
			m.resizeEditor()
			if n == 0 {
				return msg.ShowToast(fmt.Sprintf("%q not found", term), msg.ToastShort)
			}
			return msg.ShowToast(matches(n), msg.ToastShort)
		})

	case key.Matches(k, m.keys.EditorReplace):
		return m.promptReplace()

	case key.Matches(k, m.keys.EditorBottom):
		m.cursorToEnd()
		return nil

	case key.Matches(k, m.keys.EditorYank):
		if err := clipboard.WriteAll(m.editor.Value()); err != nil {
			return msg.ShowError(err)
		}
		return msg.ShowToast("Copied to clipboard", msg.ToastShort)

	case key.Matches(k, m.keys.EditorClear):
		m.ctrl.Nav().ClearHighlight()
		m.resizeEditor()
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(k)
	m.trackTextareaScroll()
	if err := m.ctrl.Type(m.editor.Value()); err != nil {
		m.ShowError(err)
	}
	return cmd
}

func (m *Model) promptReplace() tea.Cmd {
	target := ui.NewPrompt("Replace", "text to replace", m.ctrl.Highlight())
	return m.openPrompt(target, func(m *Model, from string) tea.Cmd {
		with := ui.NewPrompt(fmt.Sprintf("Replace %q with", from), "replacement", "")
		with.AllowEmpty = true
		return m.openPrompt(with, func(m *Model, to string) tea.Cmd {
			res, err := m.ctrl.Replace(m.editor.Value(), from, to)
			if errors.Is(err, ErrTargetNotFound) {
				return msg.ShowToast(fmt.Sprintf("%q not found", from), msg.ToastShort)
			}
			if err != nil {
				return msg.ShowError(err)
			}
			m.editor.SetValue(res.Text)
			m.resizeEditor()
			return msg.ShowToast("Replaced", msg.ToastShort)
		})
	})
}

func (m *Model) closeEditor() tea.Cmd {
	discarded := m.ctrl.Back(m.editor.Value())
	m.editor.Blur()
	m.editor.SetValue("")
	m.scrollOff = 0
	m.clampCursor()
	if discarded {
		m.ShowToast("Empty memo discarded", msg.ToastShort)
	}
	return nil
}

func (m *Model) openEditorOn(id string) tea.Cmd {
	mm, ok := m.ctrl.OpenMemo(id)
	if !ok {
		return msg.ShowError(fmt.Errorf("memo %s: %w", id, memo.ErrNotFound))
	}
	m.loadEditor(mm.Text)
	return m.editor.Focus()
}

func (m *Model) newMemo() tea.Cmd {
	mm := m.ctrl.NewMemo()
	m.loadEditor(mm.Text)
	return m.editor.Focus()
}

// Lists

func (m *Model) rows() []row {
	return rowsOf(m.ctrl.View())
}

func (m *Model) currentRow() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) switchTab(tab state.Tab) tea.Cmd {
	m.ctrl.SwitchTab(tab)
	m.leaveEditMode()
	m.cursor, m.offset = 0, 0
	m.filter.SetValue("")
	m.filtering = false
	m.filter.Blur()
	if tab == state.TabSearch {
		return m.startFilter()
	}
	return nil
}

func (m *Model) startFilter() tea.Cmd {
	m.filtering = true
	m.filter.SetValue(m.ctrl.Nav().Query())
	m.filter.CursorEnd()
	return m.filter.Focus()
}

func (m *Model) handleFilterKey(k tea.KeyMsg) tea.Cmd {
	switch k.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		if m.ctrl.Nav().Tab() != state.TabSearch {
			m.filter.SetValue("")
			m.ctrl.SetQuery("")
		}
		m.clampCursor()
		return nil
	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		m.filtering = false
		m.filter.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(k)
	if m.filter.Value() != m.ctrl.Nav().Query() {
		m.ctrl.SetQuery(m.filter.Value())
		m.cursor, m.offset = 0, 0
	}
	return cmd
}

func (m *Model) leaveEditMode() {
	m.editMode = false
	m.selection.Clear()
}

func (m *Model) nextTab() state.Tab {
	tabs := state.Tabs
	cur := m.ctrl.Nav().Tab()
	for i, t := range tabs {
		if t == cur {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return state.TabMemo
}

func (m *Model) handleListKey(k tea.KeyMsg) tea.Cmd {
	nav := m.ctrl.Nav()
	switch {
	case key.Matches(k, m.keys.Quit):
		return m.quit()
	case key.Matches(k, m.keys.TabMemo):
		return m.switchTab(state.TabMemo)
	case key.Matches(k, m.keys.TabFolder):
		return m.switchTab(state.TabFolder)
	case key.Matches(k, m.keys.TabSearch):
		return m.switchTab(state.TabSearch)
	case key.Matches(k, m.keys.TabSetting):
		return m.switchTab(state.TabSettings)
	case key.Matches(k, m.keys.NextTab):
		return m.switchTab(m.nextTab())

	case key.Matches(k, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case key.Matches(k, m.keys.Top):
		m.cursor = 0
	case key.Matches(k, m.keys.Bottom):
		m.cursor = len(m.rows()) - 1
		m.clampCursor()

	case key.Matches(k, m.keys.Filter):
		return m.startFilter()

	case key.Matches(k, m.keys.Back):
		switch {
		case m.editMode:
			m.leaveEditMode()
		case nav.Query() != "" && nav.Tab() != state.TabSearch:
			m.filter.SetValue("")
			m.ctrl.SetQuery("")
		case nav.InFolderDetail():
			m.ctrl.Back("")
			m.cursor, m.offset = 0, 0
		}

	case key.Matches(k, m.keys.Open):
		return m.openRow()

	case key.Matches(k, m.keys.New):
		if m.ctrl.SelectsFolders() {
			return m.promptNewFolder()
		}
		if nav.Tab() == state.TabSearch {
			return nil
		}
		return m.newMemo()

	case key.Matches(k, m.keys.EditMode):
		if nav.Tab() == state.TabSearch {
			return nil
		}
		if m.editMode {
			m.leaveEditMode()
		} else {
			m.editMode = true
		}

	case key.Matches(k, m.keys.Toggle):
		if nav.Tab() == state.TabSearch {
			return nil
		}
		m.editMode = true
		m.toggleRow()

	case key.Matches(k, m.keys.Delete):
		return m.confirmDelete()
	case key.Matches(k, m.keys.Move):
		return m.pickMoveTarget()
	case key.Matches(k, m.keys.Copy):
		return m.copySelection()
	case key.Matches(k, m.keys.Export):
		return m.exportSelection()

	case key.Matches(k, m.keys.Sort):
		order := m.ctrl.CycleSort()
		return msg.ShowToast("Sort: "+order.Label(), msg.ToastShort)
	case key.Matches(k, m.keys.Rename):
		return m.promptRename()
	case key.Matches(k, m.keys.Recolor):
		return m.pickRecolor()
	}
	return nil
}

func (m *Model) openRow() tea.Cmd {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	if m.editMode {
		m.toggleRow()
		return nil
	}
	if r.folder != nil {
		if m.ctrl.OpenFolder(r.folder.Folder.ID) {
			m.cursor, m.offset = 0, 0
			m.filter.SetValue("")
		}
		return nil
	}
	return m.openEditorOn(r.memo.ID)
}

func (m *Model) toggleRow() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	switch {
	case r.folder != nil:
		m.selection.ToggleFolder(r.folder.Folder.ID)
	case r.memo != nil && !r.matched:
		m.selection.ToggleMemo(r.memo.ID)
	}
}

// selectionOrCurrent returns the checked items, or the row under the
// cursor when nothing is checked.
func (m *Model) selectionOrCurrent() Selection {
	if !m.selection.Empty() {
		return m.selection
	}
	var sel Selection
	if r, ok := m.currentRow(); ok {
		switch {
		case r.folder != nil:
			sel.ToggleFolder(r.folder.Folder.ID)
		case r.memo != nil && !r.matched:
			sel.ToggleMemo(r.memo.ID)
		}
	}
	return sel
}

func (m *Model) confirmDelete() tea.Cmd {
	sel := m.selectionOrCurrent()
	if sel.Empty() {
		return msg.ShowError(ErrNothingSelected)
	}
	d := ui.NewConfirmDialog("Delete", m.ctrl.DeleteMessage(sel))
	d.ConfirmLabel = " Delete "
	d.Danger = true
	m.openConfirm(d, func(m *Model) tea.Cmd {
		n, err := m.ctrl.Delete(sel, Approved)
		if err != nil {
			return msg.ShowError(err)
		}
		m.leaveEditMode()
		m.clampCursor()
		return msg.ShowToast(fmt.Sprintf("Deleted %d", n), msg.ToastShort)
	})
	return nil
}

// folderPickerItems lists every folder plus an unfiled choice.
func (m *Model) folderPickerItems(exclude map[string]bool) []ui.PickerItem {
	items := []ui.PickerItem{{ID: "", Label: "No folder"}}
	for _, f := range m.ctrl.Store().SortFolders(m.ctrl.Store().Folders()) {
		if exclude[f.ID] {
			continue
		}
		items = append(items, ui.PickerItem{ID: f.ID, Label: styles.FolderDot(f.Color) + " " + f.Name})
	}
	return items
}

func (m *Model) pickMoveTarget() tea.Cmd {
	sel := m.selectionOrCurrent()
	if sel.Empty() {
		return msg.ShowError(ErrNothingSelected)
	}
	exclude := make(map[string]bool)
	for _, id := range sel.FolderIDs() {
		exclude[id] = true
	}
	p := ui.NewPicker("Move to", m.folderPickerItems(exclude))
	if m.ctrl.Nav().InFolderDetail() {
		p.SetCursor(m.ctrl.Nav().FolderID())
	}
	m.openPicker(p, func(m *Model, target string) tea.Cmd {
		n, err := m.ctrl.Move(sel, target)
		if err != nil {
			return msg.ShowError(err)
		}
		m.leaveEditMode()
		m.clampCursor()
		return msg.ShowToast(fmt.Sprintf("Moved %s", plural(n, "memo")), msg.ToastShort)
	})
	return nil
}

func (m *Model) copySelection() tea.Cmd {
	sel := m.selectionOrCurrent()
	if ids := sel.FolderIDs(); len(ids) == 1 && sel.MemoCount() == 0 {
		f, err := m.ctrl.CopyFolder(ids[0])
		if err != nil {
			return msg.ShowError(err)
		}
		m.leaveEditMode()
		return msg.ShowToast("Created "+f.Name, msg.ToastShort)
	}
	n, err := m.ctrl.Copy(sel)
	if err != nil {
		return msg.ShowError(err)
	}
	m.leaveEditMode()
	return msg.ShowToast(fmt.Sprintf("Copied %d", n), msg.ToastShort)
}

func (m *Model) exportSelection() tea.Cmd {
	sel := m.selectionOrCurrent()
	if len(m.ctrl.ExportTargets(sel)) == 0 {
		return msg.ShowError(export.ErrNothingToExport)
	}
	return exportCmd(m.ctx, m.ctrl, sel)
}

// focusedFolder is the folder a rename or recolor applies to.
func (m *Model) focusedFolder() (memo.Folder, bool) {
	nav := m.ctrl.Nav()
	if nav.InFolderDetail() {
		return m.ctrl.Store().Folder(nav.FolderID())
	}
	if r, ok := m.currentRow(); ok && r.folder != nil {
		return r.folder.Folder, true
	}
	return memo.Folder{}, false
}

func (m *Model) promptRename() tea.Cmd {
	f, ok := m.focusedFolder()
	if !ok {
		return nil
	}
	p := ui.NewPrompt("Rename folder", "folder name", f.Name)
	return m.openPrompt(p, func(m *Model, name string) tea.Cmd {
		if err := m.ctrl.RenameFolder(f.ID, name); err != nil {
			return msg.ShowError(err)
		}
		return nil
	})
}

func colorPicker(title, current string) *ui.Picker {
	items := make([]ui.PickerItem, 0, len(memo.Palette))
	for _, c := range memo.Palette {
		items = append(items, ui.PickerItem{ID: c, Label: styles.FolderDot(c) + " " + c})
	}
	p := ui.NewPicker(title, items)
	p.SetCursor(current)
	return p
}

func (m *Model) pickRecolor() tea.Cmd {
	f, ok := m.focusedFolder()
	if !ok {
		return nil
	}
	m.openPicker(colorPicker("Folder colour", f.Color), func(m *Model, color string) tea.Cmd {
		if err := m.ctrl.RecolorFolder(f.ID, color); err != nil {
			return msg.ShowError(err)
		}
		return nil
	})
	return nil
}

func (m *Model) promptNewFolder() tea.Cmd {
	p := ui.NewPrompt("New folder", "folder name", "")
	return m.openPrompt(p, func(m *Model, name string) tea.Cmd {
		m.openPicker(colorPicker("Folder colour", memo.Palette[0]), func(m *Model, color string) tea.Cmd {
			f, err := m.ctrl.CreateFolder(name, color)
			if err != nil {
				return msg.ShowError(err)
			}
			return msg.ShowToast("Created "+f.Name, msg.ToastShort)
		})
		return nil
	})
}

// Settings

// settingsRows are the adjustable preferences, in display order.
var settingsRows = []string{"Font size", "Sort order"}

var fontSizes = []memo.FontSize{memo.FontSmall, memo.FontMedium, memo.FontLarge}

func (m *Model) handleSettingsKey(k tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(k, m.keys.Quit):
		return m.quit()
	case key.Matches(k, m.keys.TabMemo):
		return m.switchTab(state.TabMemo)
	case key.Matches(k, m.keys.TabFolder):
		return m.switchTab(state.TabFolder)
	case key.Matches(k, m.keys.TabSearch):
		return m.switchTab(state.TabSearch)
	case key.Matches(k, m.keys.NextTab):
		return m.switchTab(m.nextTab())
	case key.Matches(k, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, m.keys.Down):
		if m.cursor < len(settingsRows)-1 {
			m.cursor++
		}
	case key.Matches(k, m.keys.Open), k.String() == "right", k.String() == "l":
		m.adjustSetting(1)
	case k.String() == "left", k.String() == "h":
		m.adjustSetting(-1)
	}
	return nil
}

func (m *Model) adjustSetting(dir int) {
	switch m.cursor {
	case 0:
		cur := m.ctrl.Store().Settings().FontSize
		i := 1
		for j, s := range fontSizes {
			if s == cur {
				i = j
			}
		}
		i = (i + dir + len(fontSizes)) % len(fontSizes)
		if err := m.ctrl.SetFontSize(fontSizes[i]); err != nil {
			m.ShowError(err)
		}
		m.resizeEditor()
	case 1:
		m.ctrl.CycleSort()
	}
}
