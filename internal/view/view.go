// Package view derives what a list screen shows from the document store
// and the navigation state.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/state"
)

// Documents is the read side of the document store.
type Documents interface {
	Memos() []memo.Memo
	Folders() []memo.Folder
	RootMemos() []memo.Memo
	FolderMemos(folderID string) []memo.Memo
	FiledMemos() []memo.Memo
	FolderName(folderID string) string
	SortMemos(list []memo.Memo) []memo.Memo
	SortFolders(list []memo.Folder) []memo.Folder
}

// Nav is the read side of the navigation state.
type Nav interface {
	View() state.View
	FolderID() string
	Query() string
}

// Item is a memo row with the folder it belongs to.
type Item struct {
	Memo memo.Memo
	// FolderName is empty for unfiled memos.
	FolderName string
}

// FolderItem is a folder row with its member count and size.
type FolderItem struct {
	Folder    memo.Folder
	MemoCount int
	CharCount int
}

// View is the derived content of the current screen.
type View struct {
	Kind state.View
	// Items are the memo rows, filtered and sorted.
	Items []Item
	// Folders are the folder rows of the folder list.
	Folders []FolderItem
	// Matched are filed memos containing the folder-list query.
	Matched []Item
	// AggregateCharCount is the size of the whole scope, ignoring the query.
	AggregateCharCount int
}

// Compute returns the view for the current navigation state. Filtering is a
// literal, case-sensitive substring test on memo text or folder name.
func Compute(docs Documents, nav Nav) View {
	q := nav.Query()
	v := View{Kind: nav.View()}

	switch v.Kind {
	case state.ViewMemoList:
		scope := docs.RootMemos()
		v.Items = items(docs, docs.SortMemos(filter(scope, q)), false)
		v.AggregateCharCount = memo.TotalChars(scope)

	case state.ViewFolderDetail:
		scope := docs.FolderMemos(nav.FolderID())
		v.Items = items(docs, docs.SortMemos(filter(scope, q)), false)
		v.AggregateCharCount = memo.TotalChars(scope)

	case state.ViewFolderList:
		folders := docs.Folders()
		if q != "" {
			folders = slices.DeleteFunc(folders, func(f memo.Folder) bool {
				return !strings.Contains(f.Name, q)
			})
		}
		for _, f := range docs.SortFolders(folders) {
			members := docs.FolderMemos(f.ID)
			v.Folders = append(v.Folders, FolderItem{
				Folder:    f,
				MemoCount: len(members),
				CharCount: memo.TotalChars(members),
			})
		}
		if q != "" {
			v.Matched = items(docs, docs.SortMemos(filter(docs.FiledMemos(), q)), true)
		}
		v.AggregateCharCount = memo.TotalChars(docs.Memos())

	case state.ViewSearch:
		all := docs.Memos()
		v.Items = items(docs, Search(all, q), true)
		v.AggregateCharCount = memo.TotalChars(all)
	}
	return v
}

// Search returns the memos containing q, most recently updated first. An
// empty query matches nothing.
func Search(memos []memo.Memo, q string) []memo.Memo {
	if q == "" {
		return nil
	}
	out := filter(memos, q)
	slices.SortStableFunc(out, func(a, b memo.Memo) int {
		return cmp.Compare(b.UpdatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	})
	return out
}

func filter(memos []memo.Memo, q string) []memo.Memo {
	out := make([]memo.Memo, 0, len(memos))
	for _, m := range memos {
		if q == "" || strings.Contains(m.Text, q) {
			out = append(out, m)
		}
	}
	return out
}

func items(docs Documents, memos []memo.Memo, withFolder bool) []Item {
	if len(memos) == 0 {
		return nil
	}
	out := make([]Item, len(memos))
	for i, m := range memos {
		out[i] = Item{Memo: m}
		if withFolder {
			out[i].FolderName = docs.FolderName(m.FolderID)
		}
	}
	return out
}
