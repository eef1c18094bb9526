package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Change is delivered when the watched config file is rewritten.
type Change struct {
	Config *Config
	Err    error
}

// Watch reloads path whenever it changes until ctx is done. The parent
// directory is watched so editors that replace the file are handled.
func Watch(ctx context.Context, path string) (<-chan Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan Change, 4)
	name := filepath.Clean(path)

	go func() {
		defer watcher.Close()

		var (
			mu     sync.Mutex
			timer  *time.Timer
			closed bool
		)
		defer func() {
			mu.Lock()
			closed = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			close(changes)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					mu.Lock()
					defer mu.Unlock()
					if closed {
						return
					}
					cfg, err := LoadFrom(path)
					select {
					case changes <- Change{Config: cfg, Err: err}:
					default:
					}
				})
				mu.Unlock()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}
