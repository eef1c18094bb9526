package state

import (
	"encoding/json"
	"testing"

	"github.com/marcus/memopad/internal/memo"
)

func newMachine(t *testing.T) (*Machine, *memo.Store, *[]Snapshot) {
	t.Helper()
	docs := memo.NewStore(memo.Data{})
	m := New(docs)
	var saved []Snapshot
	m.OnChange(func(s Snapshot) { saved = append(saved, s) })
	return m, docs, &saved
}

func TestNew_DefaultsToMemoList(t *testing.T) {
	m, _, _ := newMachine(t)
	if m.View() != ViewMemoList {
		t.Errorf("View() = %q, want %q", m.View(), ViewMemoList)
	}
	if m.Tab() != TabMemo {
		t.Errorf("Tab() = %q, want %q", m.Tab(), TabMemo)
	}
}

func TestSwitchTab(t *testing.T) {
	tests := []struct {
		tab  Tab
		want View
	}{
		{TabMemo, ViewMemoList},
		{TabFolder, ViewFolderList},
		{TabSearch, ViewSearch},
		{TabSettings, ViewSettings},
		{Tab("bogus"), ViewMemoList},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			m, _, saved := newMachine(t)
			m.SetQuery("abc")
			m.SwitchTab(tt.tab)
			if m.View() != tt.want {
				t.Errorf("View() = %q, want %q", m.View(), tt.want)
			}
			if m.Query() != "" {
				t.Errorf("Query() = %q, want empty after tab switch", m.Query())
			}
			if len(*saved) != 1 {
				t.Errorf("got %d snapshots, want 1", len(*saved))
			}
		})
	}
}

func TestSwitchTab_ClosesFolderDetail(t *testing.T) {
	m, docs, _ := newMachine(t)
	f, err := docs.CreateFolder("Work", memo.Palette[0])
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	m.SwitchTab(TabFolder)
	if !m.OpenFolderDetail(f.ID) {
		t.Fatal("OpenFolderDetail returned false")
	}
	m.SwitchTab(TabFolder)
	if m.View() != ViewFolderList {
		t.Errorf("View() = %q, want %q", m.View(), ViewFolderList)
	}
	if m.FolderID() != "" {
		t.Errorf("FolderID() = %q, want empty", m.FolderID())
	}
}

func TestOpenFolderDetail_UnknownFolder(t *testing.T) {
	m, _, saved := newMachine(t)
	m.SwitchTab(TabFolder)
	if m.OpenFolderDetail("missing") {
		t.Error("OpenFolderDetail(missing) = true, want false")
	}
	if m.View() != ViewFolderList {
		t.Errorf("View() = %q, want %q", m.View(), ViewFolderList)
	}
	if len(*saved) != 1 {
		t.Errorf("got %d snapshots, want 1", len(*saved))
	}
}

func TestOpenEditor_NewMemo(t *testing.T) {
	m, docs, saved := newMachine(t)
	got, ok := m.OpenEditor("", "")
	if !ok {
		t.Fatal("OpenEditor returned false")
	}
	if m.View() != ViewEditor {
		t.Errorf("View() = %q, want %q", m.View(), ViewEditor)
	}
	if m.EditingID() != got.ID {
		t.Errorf("EditingID() = %q, want %q", m.EditingID(), got.ID)
	}
	if _, ok := docs.Memo(got.ID); !ok {
		t.Error("new memo not in store")
	}
	last := (*saved)[len(*saved)-1]
	if last.EditingID != got.ID {
		t.Errorf("snapshot EditingID = %q, want %q", last.EditingID, got.ID)
	}
}

func TestOpenEditor_InFolder(t *testing.T) {
	m, docs, _ := newMachine(t)
	f, _ := docs.CreateFolder("Work", memo.Palette[1])
	m.SwitchTab(TabFolder)
	m.OpenFolderDetail(f.ID)

	got, _ := m.OpenEditor("", f.ID)
	if got.FolderID != f.ID {
		t.Errorf("FolderID = %q, want %q", got.FolderID, f.ID)
	}
	m.GoBack()
	if m.View() != ViewFolderDetail {
		t.Errorf("after GoBack View() = %q, want %q", m.View(), ViewFolderDetail)
	}
	m.GoBack()
	if m.View() != ViewFolderList {
		t.Errorf("after second GoBack View() = %q, want %q", m.View(), ViewFolderList)
	}
}

func TestOpenEditor_MissingMemo(t *testing.T) {
	m, _, _ := newMachine(t)
	if _, ok := m.OpenEditor("missing", ""); ok {
		t.Error("OpenEditor(missing) = true, want false")
	}
	if m.View() != ViewMemoList {
		t.Errorf("View() = %q, want %q", m.View(), ViewMemoList)
	}
}

func TestGoBack_DiscardsBlankMemo(t *testing.T) {
	m, docs, _ := newMachine(t)
	created, _ := m.OpenEditor("", "")
	if err := docs.UpdateMemoTextSilent(created.ID, "   \n\t"); err != nil {
		t.Fatalf("UpdateMemoTextSilent: %v", err)
	}
	if !m.GoBack() {
		t.Error("GoBack() = false, want discarded")
	}
	if _, ok := docs.Memo(created.ID); ok {
		t.Error("blank memo still in store")
	}
	if m.View() != ViewMemoList {
		t.Errorf("View() = %q, want %q", m.View(), ViewMemoList)
	}
}

func TestGoBack_KeepsMemoAndClearsHighlight(t *testing.T) {
	m, docs, _ := newMachine(t)
	created, _ := m.OpenEditor("", "")
	_ = docs.UpdateMemoTextSilent(created.ID, "hello")
	m.SetHighlight("ell")

	if m.GoBack() {
		t.Error("GoBack() discarded a non-blank memo")
	}
	if _, ok := docs.Memo(created.ID); !ok {
		t.Error("memo removed")
	}
	if m.Highlight() != "" {
		t.Errorf("Highlight() = %q, want empty", m.Highlight())
	}
	if m.EditingID() != "" {
		t.Errorf("EditingID() = %q, want empty", m.EditingID())
	}
}

func TestHighlight_PersistsUntilCleared(t *testing.T) {
	m, _, _ := newMachine(t)
	m.OpenEditor("", "")
	m.SetHighlight("x")
	m.SetQuery("y")
	if m.Highlight() != "x" {
		t.Errorf("Highlight() = %q, want x", m.Highlight())
	}
	m.ClearHighlight()
	if m.Highlight() != "" {
		t.Errorf("Highlight() = %q, want empty", m.Highlight())
	}
}

func TestGoBack_OnListIsNoop(t *testing.T) {
	m, _, saved := newMachine(t)
	m.GoBack()
	if len(*saved) != 0 {
		t.Errorf("got %d snapshots, want 0", len(*saved))
	}
}

func TestRestore(t *testing.T) {
	m, docs, _ := newMachine(t)
	f, _ := docs.CreateFolder("Work", memo.Palette[2])
	kept := docs.CreateMemo(f.ID)
	_ = docs.UpdateMemoText(kept.ID, "keep")
	gone := docs.CreateMemo("")
	_ = docs.DeleteMemo(gone.ID)

	tests := []struct {
		name     string
		snap     Snapshot
		wantView View
		wantTab  Tab
		wantEdit string
	}{
		{"empty", Snapshot{}, ViewMemoList, TabMemo, ""},
		{"search tab", Snapshot{Tab: TabSearch}, ViewSearch, TabSearch, ""},
		{"unknown tab", Snapshot{Tab: "nope"}, ViewMemoList, TabMemo, ""},
		{"folder detail", Snapshot{Tab: TabFolder, FolderID: f.ID}, ViewFolderDetail, TabFolder, ""},
		{"deleted folder", Snapshot{Tab: TabFolder, FolderID: "missing"}, ViewMemoList, TabMemo, ""},
		{"editor", Snapshot{Tab: TabFolder, FolderID: f.ID, EditingID: kept.ID}, ViewEditor, TabFolder, kept.ID},
		{"deleted memo", Snapshot{Tab: TabMemo, EditingID: gone.ID}, ViewMemoList, TabMemo, ""},
		{"deleted memo on folder tab", Snapshot{Tab: TabFolder, FolderID: f.ID, EditingID: gone.ID}, ViewMemoList, TabMemo, ""},
		{"editor in deleted folder", Snapshot{Tab: TabFolder, FolderID: "missing", EditingID: kept.ID}, ViewEditor, TabMemo, kept.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Restore(tt.snap)
			if m.View() != tt.wantView {
				t.Errorf("View() = %q, want %q", m.View(), tt.wantView)
			}
			if m.Tab() != tt.wantTab {
				t.Errorf("Tab() = %q, want %q", m.Tab(), tt.wantTab)
			}
			if m.EditingID() != tt.wantEdit {
				t.Errorf("EditingID() = %q, want %q", m.EditingID(), tt.wantEdit)
			}
		})
	}
}

func TestRestore_EditorInDeletedFolderReturnsToMemoList(t *testing.T) {
	m, docs, _ := newMachine(t)
	kept := docs.CreateMemo("")
	_ = docs.UpdateMemoText(kept.ID, "keep")

	m.Restore(Snapshot{Tab: TabFolder, FolderID: "missing", EditingID: kept.ID})
	m.GoBack()

	if m.View() != ViewMemoList {
		t.Errorf("View() after GoBack = %q, want %q", m.View(), ViewMemoList)
	}
}

func TestSnapshotJSON(t *testing.T) {
	data, err := json.Marshal(Snapshot{Tab: TabMemo})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"tab":"memo","folderId":null,"editingId":null}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var got Snapshot
	if err := json.Unmarshal([]byte(`{"tab":"folder","folderId":"f1","editingId":null}`), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != (Snapshot{Tab: TabFolder, FolderID: "f1"}) {
		t.Errorf("Unmarshal = %+v", got)
	}
}
