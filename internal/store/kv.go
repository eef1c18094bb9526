// Package store persists the document model and navigation state in a
// string key-value store with pluggable backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBbolt  = "bbolt"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unsupported storage backend")

// KV is a string key-value store. There are no transactions; the last
// write to a key wins.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open opens the backend rooted at dir.
func Open(backend, dir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBbolt:
		return OpenBolt(filepath.Join(dir, "memopad.db"))
	case BackendFile:
		return NewFileKV(filepath.Join(dir, "kv")), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "memopad.sqlite"))
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// MemoryKV keeps values in memory. Used for tests and throwaway sessions.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns the number of Set calls so far.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemoryKV) Close() error { return nil }
