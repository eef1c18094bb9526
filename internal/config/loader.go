package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/memopad"
	configFile = "config.json"
)

// rawConfig is the unmarshaling intermediary. Pointers distinguish unset
// booleans from false.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage" toml:"storage" yaml:"storage"`
	UI      rawUIConfig      `json:"ui" toml:"ui" yaml:"ui"`
	Editor  rawEditorConfig  `json:"editor" toml:"editor" yaml:"editor"`
	Export  rawExportConfig  `json:"export" toml:"export" yaml:"export"`
	Logging rawLoggingConfig `json:"logging" toml:"logging" yaml:"logging"`
}

type rawStorageConfig struct {
	Backend string `json:"backend,omitempty" toml:"backend,omitempty" yaml:"backend,omitempty"`
	Path    string `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
}

type rawUIConfig struct {
	Locale     string `json:"locale,omitempty" toml:"locale,omitempty" yaml:"locale,omitempty"`
	ShowFooter *bool  `json:"showFooter,omitempty" toml:"showFooter,omitempty" yaml:"showFooter,omitempty"`
}

type rawEditorConfig struct {
	HighlightOverlay *bool `json:"highlightOverlay,omitempty" toml:"highlightOverlay,omitempty" yaml:"highlightOverlay,omitempty"`
}

type rawExportConfig struct {
	Dir       string `json:"dir,omitempty" toml:"dir,omitempty" yaml:"dir,omitempty"`
	Clipboard *bool  `json:"clipboard,omitempty" toml:"clipboard,omitempty" yaml:"clipboard,omitempty"`
}

type rawLoggingConfig struct {
	Level string `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty"`
	File  string `json:"file,omitempty" toml:"file,omitempty" yaml:"file,omitempty"`
}

// Format is a config file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from the file extension, JSON by default.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func unmarshal(format Format, data []byte, v any) error {
	switch format {
	case FormatTOML:
		return toml.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/memopad/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := unmarshal(FormatOf(path), data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Path != "" {
		cfg.Storage.Path = raw.Storage.Path
	}

	if raw.UI.Locale != "" {
		cfg.UI.Locale = raw.UI.Locale
	}
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}

	if raw.Editor.HighlightOverlay != nil {
		cfg.Editor.HighlightOverlay = *raw.Editor.HighlightOverlay
	}

	if raw.Export.Dir != "" {
		cfg.Export.Dir = raw.Export.Dir
	}
	if raw.Export.Clipboard != nil {
		cfg.Export.Clipboard = *raw.Export.Clipboard
	}

	if raw.Logging.Level != "" {
		cfg.Logging.Level = raw.Logging.Level
	}
	if raw.Logging.File != "" {
		cfg.Logging.File = raw.Logging.File
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
