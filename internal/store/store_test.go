package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/state"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	out := map[string]KV{BackendMemory: NewMemoryKV()}
	for _, name := range []string{BackendFile, BackendBbolt, BackendSQLite} {
		kv, err := Open(name, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%s): %v", name, err)
		}
		t.Cleanup(func() { _ = kv.Close() })
		out[name] = kv
	}
	return out
}

func TestKV_GetSet(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("Get(missing) = ok %v err %v, want absent", ok, err)
			}
			if err := kv.Set(ctx, "k", "v1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := kv.Set(ctx, "k", "v2"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := kv.Get(ctx, "k")
			if err != nil || !ok {
				t.Fatalf("Get(k) = ok %v err %v", ok, err)
			}
			if got != "v2" {
				t.Errorf("Get(k) = %q, want v2", got)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(redis) err = %v, want ErrUnknownBackend", err)
	}
}

func TestFileKV_Layout(t *testing.T) {
	dir := t.TempDir()
	kv, err := Open(BackendFile, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := kv.Set(context.Background(), KeyAppState, `{"tab":"memo"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "kv", "app_state.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"tab":"memo"}` {
		t.Errorf("file content = %q", data)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "kv"))
	if len(entries) != 1 {
		t.Errorf("kv dir has %d entries, want 1 (no temp files left)", len(entries))
	}
}

func sampleSnapshot() Snapshot {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return Snapshot{
		Data: memo.Data{
			Memos: []memo.Memo{
				{ID: "m2", Text: "second", FolderID: "f1", CreatedAt: ts, UpdatedAt: ts.Add(time.Hour)},
				{ID: "m1", Text: "first", CreatedAt: ts, UpdatedAt: ts},
			},
			Folders:  []memo.Folder{{ID: "f1", Name: "Work", Color: "#007AFF", CreatedAt: ts}},
			Settings: memo.Settings{FontSize: memo.FontLarge},
			Sort:     memo.SortName,
		},
		Nav:    state.Snapshot{Tab: state.TabFolder, FolderID: "f1"},
		HasNav: true,
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleSnapshot()
			if err := NewRepository(kv, nil).Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := NewRepository(kv, nil).Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got.Data.Memos) != 2 || got.Data.Memos[0].ID != "m2" || got.Data.Memos[1].FolderID != "" {
				t.Errorf("memos = %+v", got.Data.Memos)
			}
			if !got.Data.Memos[0].UpdatedAt.Equal(want.Data.Memos[0].UpdatedAt) {
				t.Errorf("UpdatedAt = %v, want %v", got.Data.Memos[0].UpdatedAt, want.Data.Memos[0].UpdatedAt)
			}
			if len(got.Data.Folders) != 1 || got.Data.Folders[0].Name != "Work" {
				t.Errorf("folders = %+v", got.Data.Folders)
			}
			if got.Data.Settings != want.Data.Settings {
				t.Errorf("settings = %+v, want %+v", got.Data.Settings, want.Data.Settings)
			}
			if got.Data.Sort != memo.SortName {
				t.Errorf("sort = %q, want name", got.Data.Sort)
			}
			if !got.HasNav || got.Nav != want.Nav {
				t.Errorf("nav = %+v (has %v), want %+v", got.Nav, got.HasNav, want.Nav)
			}
		})
	}
}

func TestRepository_LoadEmpty(t *testing.T) {
	got, err := NewRepository(NewMemoryKV(), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Data.Memos) != 0 || len(got.Data.Folders) != 0 {
		t.Errorf("expected empty collections, got %+v", got.Data)
	}
	if got.Data.Settings != memo.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", got.Data.Settings)
	}
	if got.Data.Sort != memo.SortUpdated {
		t.Errorf("sort = %q, want updated", got.Data.Sort)
	}
	if got.HasNav {
		t.Error("HasNav = true for empty store")
	}
}

func TestRepository_SkipsUnchangedKeys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRepository(kv, nil)
	snap := sampleSnapshot()

	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first := kv.Writes()
	if first != 5 {
		t.Errorf("first save wrote %d keys, want 5", first)
	}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if kv.Writes() != first {
		t.Errorf("unchanged save wrote %d keys", kv.Writes()-first)
	}

	snap.Data.Memos[0].Text = "changed"
	if err := repo.SaveMemos(ctx, snap.Data.Memos); err != nil {
		t.Fatalf("SaveMemos: %v", err)
	}
	if kv.Writes() != first+1 {
		t.Errorf("SaveMemos wrote %d keys, want 1", kv.Writes()-first)
	}
}

func TestRepository_LoadPrimesDigests(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	snap := sampleSnapshot()
	if err := NewRepository(kv, nil).Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	before := kv.Writes()

	repo := NewRepository(kv, nil)
	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if kv.Writes() != before {
		t.Errorf("saving loaded snapshot wrote %d keys", kv.Writes()-before)
	}
}

func TestRepository_CorruptData(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, KeyMemos, "{not json")
	if _, err := NewRepository(kv, nil).Load(ctx); err == nil {
		t.Error("Load with corrupt memos: want error")
	}

	kv = NewMemoryKV()
	_ = kv.Set(ctx, KeyAppState, "garbage")
	_ = kv.Set(ctx, KeySort, "bogus")
	got, err := NewRepository(kv, nil).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.HasNav {
		t.Error("HasNav = true for unreadable state")
	}
	if got.Data.Sort != memo.SortUpdated {
		t.Errorf("sort = %q, want fallback updated", got.Data.Sort)
	}
}
