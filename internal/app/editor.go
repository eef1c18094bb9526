package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/memopad/internal/highlight"
	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/styles"
)

// minSplitWidth is the narrowest editor that still shows the highlight
// pane beside the textarea.
const minSplitWidth = 60

// loadEditor fills the textarea with text and focuses it.
func (m *Model) loadEditor(text string) {
	m.editor.SetValue(text)
	m.editor.Focus()
	m.scrollOff = 0
	m.resizeEditor()
}

// editorPadding maps the font size setting to horizontal padding.
func editorPadding(size memo.FontSize) int {
	switch size {
	case memo.FontSmall:
		return 0
	case memo.FontLarge:
		return 2
	default:
		return 1
	}
}

// highlightActive reports whether the match pane should be drawn.
func (m *Model) highlightActive() bool {
	return m.cfg.Editor.HighlightOverlay && m.ctrl.Highlight() != ""
}

// editorHeight is the number of rows available to the textarea.
func (m *Model) editorHeight() int {
	h := m.height - headerHeight - m.footerHeight() - 1 // editor status line
	if h < 1 {
		h = 1
	}
	return h
}

// editorWidths returns the textarea width and the highlight pane width
// (zero when the pane is hidden).
func (m *Model) editorWidths() (int, int) {
	pad := editorPadding(m.ctrl.Store().Settings().FontSize)
	total := m.width - 2*pad
	if total < 1 {
		total = 1
	}
	if !m.highlightActive() || total < minSplitWidth {
		return total, 0
	}
	pane := total / 2
	return total - pane - 1, pane
}

// resizeEditor updates the textarea dimensions based on current layout.
func (m *Model) resizeEditor() {
	if m.width == 0 || m.height == 0 {
		return
	}
	w, _ := m.editorWidths()
	m.editor.SetWidth(w)
	m.editor.SetHeight(m.editorHeight())
	m.trackTextareaScroll()
}

// trackTextareaScroll approximates the textarea's viewport offset so the
// highlight pane shows the same lines.
func (m *Model) trackTextareaScroll() {
	cursorLine := m.editor.Line()
	height := m.editorHeight()
	if cursorLine < m.scrollOff {
		m.scrollOff = cursorLine
	}
	if cursorLine >= m.scrollOff+height {
		m.scrollOff = cursorLine - height + 1
	}
}

// cursorToEnd moves the textarea cursor past the last character.
func (m *Model) cursorToEnd() {
	for m.editor.Line() < m.editor.LineCount()-1 {
		m.editor.CursorDown()
	}
	m.editor.CursorEnd()
	m.trackTextareaScroll()
}

// renderHighlightPane draws the visible logical lines with every match of
// the highlight term marked.
func (m *Model) renderHighlightPane(width, height int) string {
	term := m.ctrl.Highlight()
	lines := strings.Split(m.editor.Value(), "\n")

	var b strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		i := m.scrollOff + row
		if i >= len(lines) {
			b.WriteString(styles.Subtle.Render("~"))
			continue
		}
		b.WriteString(ansi.Truncate(renderMatches(lines[i], term), width, "…"))
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

// renderMatches styles the occurrences of term in line.
func renderMatches(line, term string) string {
	var b strings.Builder
	for _, seg := range highlight.Segments(line, term) {
		if seg.Match {
			b.WriteString(styles.SearchMatch.Render(seg.Text))
		} else {
			b.WriteString(styles.Body.Render(seg.Text))
		}
	}
	return b.String()
}

// renderEditor draws the textarea, the optional highlight pane and the
// editor status line.
func (m *Model) renderEditor() string {
	pad := editorPadding(m.ctrl.Store().Settings().FontSize)
	height := m.editorHeight()

	body := m.editor.View()
	if _, pane := m.editorWidths(); pane > 0 {
		divider := styles.Subtle.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, divider, m.renderHighlightPane(pane, height))
	}
	body = lipgloss.NewStyle().Padding(0, pad).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.editorStatus())
}

// editorStatus shows the character count and the active highlight.
func (m *Model) editorStatus() string {
	text := m.editor.Value()
	parts := []string{styles.ListMeta.Render(plural(memo.CharCount(text), "char"))}
	if term := m.ctrl.Highlight(); term != "" {
		n := highlight.Count(text, term)
		parts = append(parts, styles.SearchMatch.Render(" "+term+" "), styles.Muted.Render(matches(n)))
	}
	return strings.Join(parts, styles.Subtle.Render(" · "))
}

func matches(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}
