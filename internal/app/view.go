package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/state"
	"github.com/marcus/memopad/internal/styles"
	"github.com/marcus/memopad/internal/ui"
	"github.com/marcus/memopad/internal/view"
)

const (
	headerHeight = 2 // tab bar + blank line
	titleWidth   = 20
)

var tabLabels = map[state.Tab]string{
	state.TabMemo:     "Memos",
	state.TabFolder:   "Folders",
	state.TabSearch:   "Search",
	state.TabSettings: "Settings",
}

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	v := m.ctrl.View()

	var body string
	switch {
	case m.ctrl.Nav().Editing():
		body = m.renderEditor()
	case m.ctrl.Nav().Tab() == state.TabSettings:
		body = m.renderSettings()
	default:
		body = m.renderList(v)
	}

	parts := []string{m.renderHeader(v), body}
	if m.footerHeight() > 0 {
		parts = append(parts, m.renderFooter())
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, parts...)
	screen = lipgloss.NewStyle().Width(m.width).Height(m.height).MaxHeight(m.height).Render(screen)

	if m.hasModal() {
		return ui.Overlay(screen, m.modalView(), m.width, m.height)
	}
	return screen
}

func (m *Model) modalView() string {
	switch m.modal.kind {
	case ModalConfirm:
		return m.modal.confirm.View()
	case ModalPrompt:
		return m.modal.prompt.View()
	case ModalPicker:
		return m.modal.picker.View()
	}
	return ""
}

func (m *Model) footerHeight() int {
	if m.cfg.UI.ShowFooter || m.statusMsg != "" {
		return 1
	}
	return 0
}

// renderHeader draws the tab bar and the size of the current scope.
func (m *Model) renderHeader(v view.View) string {
	nav := m.ctrl.Nav()
	var tabs []string
	tabs = append(tabs, styles.Logo.Render(" memopad "))
	for _, t := range state.Tabs {
		tabs = append(tabs, styles.RenderTab(tabLabels[t], t == nav.Tab()))
	}
	left := strings.Join(tabs, " ")

	var right string
	switch {
	case nav.Editing():
		if mm, ok := m.ctrl.EditingMemo(); ok && mm.FolderID != "" {
			if f, ok := m.ctrl.Store().Folder(mm.FolderID); ok {
				right = styles.FolderLabel(f.Name, f.Color)
			}
		}
	case v.Kind == state.ViewSearch:
		right = styles.ListMeta.Render(plural(len(v.Items), "hit"))
	case v.Kind == state.ViewSettings:
	default:
		right = styles.ListMeta.Render(humanize.Comma(int64(v.AggregateCharCount)) + " chars")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left+strings.Repeat(" ", gap)+right) + "\n"
}

// renderFooter shows the toast when one is active, else key hints.
func (m *Model) renderFooter() string {
	if m.statusMsg != "" {
		if m.statusIsError {
			return styles.ToastError.Render(m.statusMsg)
		}
		return styles.ToastSuccess.Render(m.statusMsg)
	}
	return styles.Footer.Width(m.width).Render(ansi.Truncate(m.keyHints(), m.width, "…"))
}

func (m *Model) keyHints() string {
	k := m.keys
	var hints [][2]string
	add := func(b ...key.Binding) {
		for _, h := range b {
			hints = append(hints, [2]string{h.Help().Key, h.Help().Desc})
		}
	}
	nav := m.ctrl.Nav()
	switch {
	case m.hasModal():
		hints = append(hints, [2]string{"enter", "ok"}, [2]string{"esc", "cancel"})
	case nav.Editing():
		add(k.EditorBack, k.EditorFind, k.EditorReplace, k.EditorBottom, k.EditorYank, k.EditorClear)
	case m.filtering:
		hints = append(hints, [2]string{"enter", "done"}, [2]string{"esc", "clear"})
	case nav.Tab() == state.TabSettings:
		add(k.Up, k.Down, k.Open, k.NextTab, k.Quit)
	case m.editMode:
		add(k.Toggle, k.Delete, k.Move, k.Copy, k.Export, k.Back)
	case nav.Tab() == state.TabSearch:
		add(k.Open, k.Filter, k.NextTab, k.Quit)
	case m.ctrl.SelectsFolders():
		add(k.Open, k.New, k.EditMode, k.Rename, k.Recolor, k.Filter, k.Sort, k.Quit)
	case nav.InFolderDetail():
		add(k.Open, k.New, k.EditMode, k.Rename, k.Recolor, k.Back, k.Sort)
	default:
		add(k.Open, k.New, k.EditMode, k.Filter, k.Sort, k.NextTab, k.Quit)
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.KeyHint.Render(h[0])+" "+h[1])
	}
	return " " + strings.Join(parts, "  ")
}

// listHeight is the number of rows available for list content.
func (m *Model) listHeight() int {
	h := m.height - headerHeight - m.footerHeight() - 2 // title + filter line
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) renderList(v view.View) string {
	var b strings.Builder
	b.WriteString(m.listTitle(v))
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n")

	rows := rowsOf(v)
	if len(rows) == 0 {
		b.WriteString(styles.Muted.Render("  " + m.emptyText(v)))
		return b.String()
	}

	m.syncOffset(len(rows))
	end := min(m.offset+m.listHeight(), len(rows))
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteString("\n")
		}
		if rows[i].matched && i > 0 && !rows[i-1].matched {
			b.WriteString(styles.Subtle.Render("  ── memos in folders ──"))
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(rows[i], i == m.cursor))
	}
	return b.String()
}

// syncOffset scrolls the list so the cursor row is visible.
func (m *Model) syncOffset(n int) {
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset > max(n-height, 0) {
		m.offset = max(n-height, 0)
	}
}

func (m *Model) listTitle(v view.View) string {
	nav := m.ctrl.Nav()
	title := tabLabels[nav.Tab()]
	if v.Kind == state.ViewFolderDetail {
		if f, ok := m.ctrl.Store().Folder(nav.FolderID()); ok {
			title = styles.FolderLabel(f.Name, f.Color)
		}
	} else {
		title = styles.Title.Render(title)
	}
	meta := ""
	if v.Kind != state.ViewSearch {
		meta = styles.ListMeta.Render("  sort: " + m.ctrl.Store().SortOrder().Label())
	}
	if m.editMode {
		n := m.selection.MemoCount() + m.selection.FolderCount()
		meta += styles.ListChecked.Render(fmt.Sprintf("  %d selected", n))
	}
	return title + meta
}

func (m *Model) renderFilterLine() string {
	if m.filtering {
		return m.filter.View()
	}
	if q := m.ctrl.Nav().Query(); q != "" {
		return styles.Muted.Render("/ " + q)
	}
	if m.ctrl.Nav().Tab() == state.TabSearch {
		return styles.Subtle.Render("/ type to search")
	}
	return ""
}

func (m *Model) emptyText(v view.View) string {
	switch {
	case v.Kind == state.ViewSearch && m.ctrl.Nav().Query() == "":
		return "Type to search all memos"
	case m.ctrl.Nav().Query() != "":
		return "No matches"
	case v.Kind == state.ViewFolderList:
		return "No folders yet. Press n to create one"
	default:
		return "No memos yet. Press n to write one"
	}
}

// memoTitle is the first line of the memo cut to the title width.
func memoTitle(mm *memo.Memo) string {
	line := strings.TrimSpace(memo.FirstLine(mm.Text))
	if line == "" {
		return "New memo"
	}
	return runewidth.Truncate(line, titleWidth, "...")
}

func (m *Model) renderRow(r row, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.ListCursor.Render("› ")
	}

	check := ""
	if m.editMode && !r.matched {
		checked := (r.folder != nil && m.selection.HasFolder(r.id())) ||
			(r.memo != nil && m.selection.HasMemo(r.id()))
		if checked {
			check = styles.ListChecked.Render("[x] ")
		} else {
			check = styles.Muted.Render("[ ] ")
		}
	}

	var name, meta string
	if r.folder != nil {
		f := r.folder
		name = styles.FolderDot(f.Folder.Color) + " " + runewidth.Truncate(f.Folder.Name, titleWidth, "...")
		meta = fmt.Sprintf("%s · %s chars", plural(f.MemoCount, "memo"), humanize.Comma(int64(f.CharCount)))
	} else {
		name = runewidth.FillRight(memoTitle(r.memo), titleWidth)
		meta = fmt.Sprintf("%s · edited %s · %s chars",
			r.memo.Created().Local().Format("2006-01-02"),
			humanize.Time(r.memo.UpdatedAt),
			humanize.Comma(int64(memo.CharCount(r.memo.Text))))
		switch {
		case r.folderName == "" && m.ctrl.Nav().View() == state.ViewSearch:
			meta += "  " + styles.Subtle.Render("Unfiled")
		case r.folderName != "":
			if f, ok := m.ctrl.Store().Folder(r.memo.FolderID); ok {
				tag := styles.FolderLabel(f.Name, f.Color)
				if r.matched {
					tag = lipgloss.NewStyle().Foreground(styles.MutedColor(f.Color)).Render(f.Name)
				}
				meta += "  " + tag
			}
		}
	}

	style := styles.ListItemNormal
	if selected {
		style = styles.ListItemSelected
	}
	line := cursor + check + style.Render(name) + "  " + styles.ListMeta.Render(meta)
	return ansi.Truncate(line, m.width, "…")
}

func (m *Model) renderSettings() string {
	settings := m.ctrl.Store().Settings()
	values := []string{string(settings.FontSize), m.ctrl.Store().SortOrder().Label()}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Settings"))
	b.WriteString("\n")
	for i, label := range settingsRows {
		b.WriteString("\n")
		cursor := "  "
		style := styles.ListItemNormal
		if i == m.cursor {
			cursor = styles.ListCursor.Render("› ")
			style = styles.ListItemSelected
		}
		b.WriteString(cursor + style.Render(runewidth.FillRight(label, 12)) + "  ‹ " + values[i] + " ›")
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("  %s memos · %s folders",
		humanize.Comma(int64(len(m.ctrl.Store().Memos()))),
		humanize.Comma(int64(len(m.ctrl.Store().Folders()))))))
	return b.String()
}
