package app

import (
	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/view"
)

// row is one selectable line of a list screen.
type row struct {
	memo       *memo.Memo
	folderName string
	folder     *view.FolderItem
	// matched marks filed memos listed under the folder list's filter.
	matched bool
}

func (r row) id() string {
	if r.folder != nil {
		return r.folder.Folder.ID
	}
	if r.memo != nil {
		return r.memo.ID
	}
	return ""
}

// rowsOf flattens a computed view into cursor rows.
func rowsOf(v view.View) []row {
	var rows []row
	for i := range v.Folders {
		rows = append(rows, row{folder: &v.Folders[i]})
	}
	for i := range v.Items {
		rows = append(rows, row{memo: &v.Items[i].Memo, folderName: v.Items[i].FolderName})
	}
	for i := range v.Matched {
		rows = append(rows, row{memo: &v.Matched[i].Memo, folderName: v.Matched[i].FolderName, matched: true})
	}
	return rows
}
