// Package highlight renders search highlights over memo text and performs
// literal find-and-replace.
package highlight

import "strings"

// htmlReplacer escapes ampersand first so entities produced by the later
// replacements are not escaped again.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces & < > " ' with their entities.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

const regexpMeta = `.*+?^${}()|[]\`

// EscapeRegExp backslash-escapes regular expression metacharacters so s can
// be embedded in a pattern as a literal.
func EscapeRegExp(s string) string {
	if !strings.ContainsAny(s, regexpMeta) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if strings.ContainsRune(regexpMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
