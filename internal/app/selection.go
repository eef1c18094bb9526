package app

import "slices"

// Selection is the set of items checked in bulk edit mode. Memos and
// folders are kept apart so ids of different kinds never mix.
type Selection struct {
	memos   map[string]bool
	folders map[string]bool
}

// ToggleMemo flips id in the memo set.
func (s *Selection) ToggleMemo(id string) {
	s.memos = toggle(s.memos, id)
}

// ToggleFolder flips id in the folder set.
func (s *Selection) ToggleFolder(id string) {
	s.folders = toggle(s.folders, id)
}

func toggle(set map[string]bool, id string) map[string]bool {
	if set == nil {
		set = make(map[string]bool)
	}
	if set[id] {
		delete(set, id)
	} else {
		set[id] = true
	}
	return set
}

func (s Selection) HasMemo(id string) bool   { return s.memos[id] }
func (s Selection) HasFolder(id string) bool { return s.folders[id] }
func (s Selection) MemoCount() int           { return len(s.memos) }
func (s Selection) FolderCount() int         { return len(s.folders) }
func (s Selection) Empty() bool              { return len(s.memos) == 0 && len(s.folders) == 0 }

// MemoIDs returns the selected memo ids in sorted order.
func (s Selection) MemoIDs() []string { return keys(s.memos) }

// FolderIDs returns the selected folder ids in sorted order.
func (s Selection) FolderIDs() []string { return keys(s.folders) }

// Clear empties the selection.
func (s *Selection) Clear() {
	s.memos = nil
	s.folders = nil
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
