package memo

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer orders two strings for display.
type Comparer func(a, b string) int

// NewComparer returns a locale-aware comparer for the given BCP 47 tag.
// An unparseable tag falls back to the root collation.
func NewComparer(tag string) Comparer {
	lang, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		lang = language.Und
	}
	c := collate.New(lang)
	return c.CompareString
}

// SortMemos returns a copy of list ordered by order. Equal keys keep their
// relative order.
func SortMemos(list []Memo, order SortOrder, cmp Comparer) []Memo {
	out := slices.Clone(list)
	switch order {
	case SortCreated:
		slices.SortStableFunc(out, func(a, b Memo) int {
			return b.Created().Compare(a.Created())
		})
	case SortName:
		if cmp == nil {
			cmp = strings.Compare
		}
		slices.SortStableFunc(out, func(a, b Memo) int {
			return cmp(a.Text, b.Text)
		})
	default:
		slices.SortStableFunc(out, func(a, b Memo) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return out
}

// SortFolders returns a copy of list ordered for the folder list. Folders
// have no update time, so both time orders sort by creation, newest first.
func SortFolders(list []Folder, order SortOrder, cmp Comparer) []Folder {
	out := slices.Clone(list)
	if order == SortName {
		if cmp == nil {
			cmp = strings.Compare
		}
		slices.SortStableFunc(out, func(a, b Folder) int {
			return cmp(a.Name, b.Name)
		})
		return out
	}
	slices.SortStableFunc(out, func(a, b Folder) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
