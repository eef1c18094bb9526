package highlight

import "strings"

const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
	LineBreak = "<br>"
)

// Render produces HTML markup for text with every occurrence of term wrapped
// in <mark>. The text is escaped before markers are inserted, so markers are
// never escaped and user text can never inject markup. An empty term clears
// all highlighting.
//
// Newlines become <br>. A trailing newline gets a space appended first so the
// final empty line keeps its height in the overlay.
func Render(text, term string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for _, seg := range Segments(text, term) {
		escaped := EscapeHTML(seg.Text)
		if seg.Match {
			b.WriteString(MarkOpen)
			b.WriteString(escaped)
			b.WriteString(MarkClose)
			continue
		}
		b.WriteString(escaped)
	}

	html := b.String()
	if strings.HasSuffix(html, "\n") {
		html += " "
	}
	return strings.ReplaceAll(html, "\n", LineBreak)
}
