package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marcus/memopad/internal/app"
	"github.com/marcus/memopad/internal/config"
	"github.com/marcus/memopad/internal/export"
	"github.com/marcus/memopad/internal/store"
)

// session is an open notebook: its config, storage and controller.
type session struct {
	cfg    *config.Config
	kv     store.KV
	ctrl   *app.Controller
	logger *slog.Logger
	logOut io.Closer
}

func (g *globals) resolvedConfigPath() string {
	if g.configPath != "" {
		return config.ExpandPath(g.configPath)
	}
	return config.ConfigPath()
}

func (g *globals) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(g.resolvedConfigPath())
	if err != nil {
		return nil, err
	}
	if g.dataDir != "" {
		cfg.Storage.Path = g.dataDir
	}
	return cfg, nil
}

func (g *globals) logLevel(cfg *config.Config) slog.Level {
	if g.debug {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// newLogger writes to the log file when toFile is set, since the TUI owns
// the terminal, and to stderr otherwise.
func (g *globals) newLogger(cfg *config.Config, toFile bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: g.logLevel(cfg)}
	if !toFile {
		if !g.debug {
			opts.Level = slog.LevelWarn
		}
		return slog.New(slog.NewTextHandler(stderr, opts)), nil, nil
	}

	path := cfg.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}

// openSession loads config and data and builds the controller.
func (g *globals) openSession(ctx context.Context, interactive bool, stderr io.Writer) (*session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, logOut, err := g.newLogger(cfg, interactive, stderr)
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(cfg.Storage.Backend, cfg.DataDir())
	if err != nil {
		if logOut != nil {
			logOut.Close()
		}
		return nil, fmt.Errorf("open storage: %w", err)
	}

	repo := store.NewRepository(kv, logger)
	snap, err := repo.Load(ctx)
	if err != nil {
		kv.Close()
		if logOut != nil {
			logOut.Close()
		}
		return nil, fmt.Errorf("load notebook: %w", err)
	}
	logger.Debug("notebook loaded",
		"backend", cfg.Storage.Backend,
		"memos", len(snap.Data.Memos),
		"folders", len(snap.Data.Folders))

	ctrl := app.NewController(ctx, repo, snap, app.Options{
		Logger: logger,
		Sharer: sharerFor(cfg, false, ""),
		Locale: cfg.UI.Locale,
	})
	return &session{cfg: cfg, kv: kv, ctrl: ctrl, logger: logger, logOut: logOut}, nil
}

func (s *session) Close() error {
	err := s.kv.Close()
	if s.logOut != nil {
		s.logOut.Close()
	}
	return err
}

// sharerFor picks the export destination. Flags override the config.
func sharerFor(cfg *config.Config, clipboard bool, dir string) export.Sharer {
	if clipboard || (dir == "" && cfg.Export.Clipboard) {
		return export.ClipboardSharer{}
	}
	if dir == "" {
		dir = cfg.Export.Dir
	}
	return export.DirSharer{Dir: config.ExpandPath(dir)}
}
