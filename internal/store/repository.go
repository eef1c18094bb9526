package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"

	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/state"
)

// Persisted keys.
const (
	KeyMemos    = "memos"
	KeyFolders  = "folders"
	KeySettings = "settings"
	KeySort     = "sort"
	KeyAppState = "app_state"
)

// Snapshot is everything the app persists.
type Snapshot struct {
	Data memo.Data
	Nav  state.Snapshot
	// HasNav is false when no navigation state was ever saved.
	HasNav bool
}

// Repository maps Snapshot onto a KV. Each key is written only when its
// encoded value changed since the last load or save.
type Repository struct {
	kv      KV
	logger  *slog.Logger
	digests map[string]uint64
}

// NewRepository wraps kv. A nil logger uses slog.Default.
func NewRepository(kv KV, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{kv: kv, logger: logger, digests: make(map[string]uint64)}
}

// Load reads the snapshot. Absent keys yield defaults. A navigation state
// that cannot be decoded is ignored.
func (r *Repository) Load(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		Data: memo.Data{Settings: memo.DefaultSettings(), Sort: memo.SortUpdated},
	}

	if err := r.loadJSON(ctx, KeyMemos, &snap.Data.Memos); err != nil {
		return Snapshot{}, err
	}
	if err := r.loadJSON(ctx, KeyFolders, &snap.Data.Folders); err != nil {
		return Snapshot{}, err
	}
	if err := r.loadJSON(ctx, KeySettings, &snap.Data.Settings); err != nil {
		return Snapshot{}, err
	}

	raw, ok, err := r.get(ctx, KeySort)
	if err != nil {
		return Snapshot{}, err
	}
	if ok && memo.SortOrder(raw).Valid() {
		snap.Data.Sort = memo.SortOrder(raw)
	}

	raw, ok, err = r.get(ctx, KeyAppState)
	if err != nil {
		return Snapshot{}, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &snap.Nav); err != nil {
			r.logger.Warn("ignoring unreadable navigation state", "err", err)
		} else {
			snap.HasNav = true
		}
	}
	return snap, nil
}

func (r *Repository) get(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	if ok {
		r.digests[key] = xxhash.Sum64String(raw)
	}
	return raw, ok, nil
}

func (r *Repository) loadJSON(ctx context.Context, key string, v any) error {
	raw, ok, err := r.get(ctx, key)
	if err != nil || !ok || raw == "" || raw == "null" {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save writes the whole snapshot.
func (r *Repository) Save(ctx context.Context, snap Snapshot) error {
	if err := r.SaveData(ctx, snap.Data); err != nil {
		return err
	}
	return r.SaveNav(ctx, snap.Nav)
}

// SaveData writes memos, folders, settings and sort order.
func (r *Repository) SaveData(ctx context.Context, data memo.Data) error {
	memos := data.Memos
	if memos == nil {
		memos = []memo.Memo{}
	}
	folders := data.Folders
	if folders == nil {
		folders = []memo.Folder{}
	}
	if err := r.setJSON(ctx, KeyMemos, memos); err != nil {
		return err
	}
	if err := r.setJSON(ctx, KeyFolders, folders); err != nil {
		return err
	}
	if err := r.setJSON(ctx, KeySettings, data.Settings); err != nil {
		return err
	}
	return r.set(ctx, KeySort, string(data.Sort))
}

// SaveMemos writes only the memo list. Used while typing.
func (r *Repository) SaveMemos(ctx context.Context, memos []memo.Memo) error {
	if memos == nil {
		memos = []memo.Memo{}
	}
	return r.setJSON(ctx, KeyMemos, memos)
}

// SaveNav writes the navigation state.
func (r *Repository) SaveNav(ctx context.Context, nav state.Snapshot) error {
	return r.setJSON(ctx, KeyAppState, nav)
}

func (r *Repository) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.set(ctx, key, string(data))
}

func (r *Repository) set(ctx context.Context, key, value string) error {
	sum := xxhash.Sum64String(value)
	if prev, ok := r.digests[key]; ok && prev == sum {
		return nil
	}
	if err := r.kv.Set(ctx, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	r.digests[key] = sum
	r.logger.Debug("persisted key", "key", key, "bytes", len(value))
	return nil
}
