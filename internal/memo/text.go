package memo

import (
	"strings"

	"github.com/rivo/uniseg"
)

// CharCount returns the number of user-perceived characters in s.
func CharCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// TotalChars sums CharCount over the text of every memo.
func TotalChars(memos []Memo) int {
	total := 0
	for _, m := range memos {
		total += CharCount(m.Text)
	}
	return total
}

// FirstLine returns the text up to the first newline.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
