package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig
	UI      UIConfig
	Editor  EditorConfig
	Export  ExportConfig
	Logging LoggingConfig
}

// StorageConfig selects where memos are kept.
type StorageConfig struct {
	Backend string // "file", "bbolt" or "sqlite"
	Path    string // data directory (supports ~ expansion)
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Locale     string // BCP 47 tag used for name sorting
	ShowFooter bool
}

// EditorConfig configures the memo editor.
type EditorConfig struct {
	HighlightOverlay bool
}

// ExportConfig configures where exported memos go.
type ExportConfig struct {
	Dir       string
	Clipboard bool // copy to the clipboard instead of writing files
}

// LoggingConfig configures the log output.
type LoggingConfig struct {
	Level string // debug, info, warn, error
	File  string // empty logs to <data dir>/memopad.log
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "bbolt",
			Path:    "~/.local/share/memopad",
		},
		UI: UIConfig{
			Locale:     "und",
			ShowFooter: true,
		},
		Editor: EditorConfig{
			HighlightOverlay: true,
		},
		Export: ExportConfig{
			Dir: "~/memopad-export",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors, resetting soft failures
// to defaults.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case "file", "bbolt", "sqlite":
	default:
		return fmt.Errorf("storage.backend: unsupported backend %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path: required")
	}
	if _, err := language.Parse(c.UI.Locale); err != nil {
		c.UI.Locale = "und"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = "info"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = Default().Export.Dir
	}
	return nil
}

// DataDir returns the expanded storage directory.
func (c *Config) DataDir() string {
	return ExpandPath(c.Storage.Path)
}

// LogFile returns the expanded log file path.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return ExpandPath(c.Logging.File)
	}
	return filepath.Join(c.DataDir(), "memopad.log")
}
