package view

import (
	"testing"
	"time"

	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/state"
)

type stubNav struct {
	view     state.View
	folderID string
	query    string
}

func (n stubNav) View() state.View { return n.view }
func (n stubNav) FolderID() string { return n.folderID }
func (n stubNav) Query() string    { return n.query }

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func fixture() *memo.Store {
	return memo.NewStore(memo.Data{
		Memos: []memo.Memo{
			{ID: "r1", Text: "apple pie", CreatedAt: at(1), UpdatedAt: at(5)},
			{ID: "r2", Text: "banana", CreatedAt: at(2), UpdatedAt: at(2)},
			{ID: "w1", Text: "apple work", FolderID: "work", CreatedAt: at(3), UpdatedAt: at(3)},
			{ID: "w2", Text: "report", FolderID: "work", CreatedAt: at(4), UpdatedAt: at(6)},
			{ID: "d1", Text: "dangling apple", FolderID: "gone", CreatedAt: at(0), UpdatedAt: at(7)},
		},
		Folders: []memo.Folder{
			{ID: "work", Name: "Work", Color: "#007AFF", CreatedAt: at(1)},
			{ID: "home", Name: "Home", Color: "#34C759", CreatedAt: at(2)},
		},
		Sort: memo.SortUpdated,
	})
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Memo.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCompute_MemoList(t *testing.T) {
	docs := fixture()
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"d1", "r1", "r2"}},
		{"apple", []string{"d1", "r1"}},
		{"Apple", nil},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			v := Compute(docs, stubNav{view: state.ViewMemoList, query: tt.query})
			if got := ids(v.Items); !equal(got, tt.want) {
				t.Errorf("items = %v, want %v", got, tt.want)
			}
			want := memo.CharCount("apple pie") + memo.CharCount("banana") + memo.CharCount("dangling apple")
			if v.AggregateCharCount != want {
				t.Errorf("AggregateCharCount = %d, want %d (unfiltered scope)", v.AggregateCharCount, want)
			}
		})
	}
}

func TestCompute_FolderDetail(t *testing.T) {
	docs := fixture()
	v := Compute(docs, stubNav{view: state.ViewFolderDetail, folderID: "work", query: "rep"})
	if got := ids(v.Items); !equal(got, []string{"w2"}) {
		t.Errorf("items = %v, want [w2]", got)
	}
	if want := len("apple work") + len("report"); v.AggregateCharCount != want {
		t.Errorf("AggregateCharCount = %d, want %d", v.AggregateCharCount, want)
	}
}

func TestCompute_FolderList(t *testing.T) {
	docs := fixture()

	v := Compute(docs, stubNav{view: state.ViewFolderList})
	if len(v.Folders) != 2 || v.Folders[0].Folder.ID != "home" {
		t.Fatalf("folders = %+v, want home first (newest created)", v.Folders)
	}
	if v.Folders[1].MemoCount != 2 {
		t.Errorf("work MemoCount = %d, want 2", v.Folders[1].MemoCount)
	}
	if v.Matched != nil {
		t.Errorf("Matched = %v, want nil without query", ids(v.Matched))
	}
	if want := memo.TotalChars(docs.Memos()); v.AggregateCharCount != want {
		t.Errorf("AggregateCharCount = %d, want %d", v.AggregateCharCount, want)
	}

	v = Compute(docs, stubNav{view: state.ViewFolderList, query: "apple"})
	if len(v.Folders) != 0 {
		t.Errorf("folders = %+v, want none matching", v.Folders)
	}
	if got := ids(v.Matched); !equal(got, []string{"w1"}) {
		t.Errorf("Matched = %v, want [w1]", got)
	}
	if v.Matched[0].FolderName != "Work" {
		t.Errorf("FolderName = %q, want Work", v.Matched[0].FolderName)
	}

	v = Compute(docs, stubNav{view: state.ViewFolderList, query: "Wor"})
	if len(v.Folders) != 1 || v.Folders[0].Folder.ID != "work" {
		t.Errorf("folders = %+v, want [work]", v.Folders)
	}
}

func TestCompute_Search(t *testing.T) {
	docs := fixture()
	v := Compute(docs, stubNav{view: state.ViewSearch, query: "apple"})
	if got := ids(v.Items); !equal(got, []string{"d1", "r1", "w1"}) {
		t.Errorf("items = %v, want [d1 r1 w1]", got)
	}
	if v.Items[0].FolderName != "" {
		t.Errorf("dangling folder name = %q, want empty", v.Items[0].FolderName)
	}
	if v.Items[2].FolderName != "Work" {
		t.Errorf("FolderName = %q, want Work", v.Items[2].FolderName)
	}

	v = Compute(docs, stubNav{view: state.ViewSearch})
	if len(v.Items) != 0 {
		t.Errorf("empty query items = %v, want none", ids(v.Items))
	}
}

func TestCompute_UsesSortOrder(t *testing.T) {
	docs := fixture()
	if err := docs.SetSortOrder(memo.SortName); err != nil {
		t.Fatalf("SetSortOrder: %v", err)
	}
	v := Compute(docs, stubNav{view: state.ViewMemoList})
	if got := ids(v.Items); !equal(got, []string{"r1", "r2", "d1"}) {
		t.Errorf("items = %v, want [r1 r2 d1]", got)
	}
}

func TestCompute_NonListViews(t *testing.T) {
	docs := fixture()
	for _, kind := range []state.View{state.ViewEditor, state.ViewSettings} {
		v := Compute(docs, stubNav{view: kind})
		if v.Kind != kind || v.Items != nil || v.AggregateCharCount != 0 {
			t.Errorf("Compute(%s) = %+v, want empty view", kind, v)
		}
	}
}
