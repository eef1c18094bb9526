package cli

import (
	"fmt"
	"strings"

	"github.com/marcus/memopad/internal/memo"
)

// findFolder resolves a folder by id, then by exact name, then by a
// case-insensitive name.
func findFolder(st *memo.Store, ref string) (memo.Folder, error) {
	if f, ok := st.Folder(ref); ok {
		return f, nil
	}
	var fold []memo.Folder
	for _, f := range st.Folders() {
		if f.Name == ref {
			return f, nil
		}
		if strings.EqualFold(f.Name, ref) {
			fold = append(fold, f)
		}
	}
	switch len(fold) {
	case 0:
		return memo.Folder{}, fmt.Errorf("folder %q: %w", ref, memo.ErrNotFound)
	case 1:
		return fold[0], nil
	default:
		return memo.Folder{}, fmt.Errorf("folder %q is ambiguous", ref)
	}
}

// findMemo resolves a memo by id or unique id prefix.
func findMemo(st *memo.Store, ref string) (memo.Memo, error) {
	if m, ok := st.Memo(ref); ok {
		return m, nil
	}
	var found []memo.Memo
	for _, m := range st.Memos() {
		if strings.HasPrefix(m.ID, ref) {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return memo.Memo{}, fmt.Errorf("memo %q: %w", ref, memo.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return memo.Memo{}, fmt.Errorf("memo %q is ambiguous (%d matches)", ref, len(found))
	}
}
