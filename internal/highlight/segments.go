package highlight

import "strings"

// Segment is a run of text that either matches the highlight term or not.
type Segment struct {
	Text  string
	Match bool
}

// matches returns the [start, end) byte offsets of every non-overlapping
// occurrence of term in text, left to right. The comparison is bytewise,
// so terms holding invalid UTF-8 still match literally.
func matches(text, term string) [][2]int {
	if term == "" {
		return nil
	}
	var locs [][2]int
	pos := 0
	for {
		i := strings.Index(text[pos:], term)
		if i < 0 {
			return locs
		}
		start := pos + i
		pos = start + len(term)
		locs = append(locs, [2]int{start, pos})
	}
}

// Segments splits text into alternating runs of non-matching and matching
// text. Matches are found on the raw text, left to right, without overlap.
// Concatenating the Text of every segment yields text unchanged.
func Segments(text, term string) []Segment {
	if text == "" {
		return nil
	}
	locs := matches(text, term)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}

	out := make([]Segment, 0, len(locs)*2+1)
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			out = append(out, Segment{Text: text[pos:loc[0]]})
		}
		out = append(out, Segment{Text: text[loc[0]:loc[1]], Match: true})
		pos = loc[1]
	}
	if pos < len(text) {
		out = append(out, Segment{Text: text[pos:]})
	}
	return out
}

// Count returns the number of non-overlapping occurrences of term in text.
func Count(text, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(text, term)
}
