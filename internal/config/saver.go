package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// toRawConfig converts Config to the serializable format.
func toRawConfig(cfg *Config) rawConfig {
	return rawConfig{
		Storage: rawStorageConfig{
			Backend: cfg.Storage.Backend,
			Path:    cfg.Storage.Path,
		},
		UI: rawUIConfig{
			Locale:     cfg.UI.Locale,
			ShowFooter: &cfg.UI.ShowFooter,
		},
		Editor: rawEditorConfig{
			HighlightOverlay: &cfg.Editor.HighlightOverlay,
		},
		Export: rawExportConfig{
			Dir:       cfg.Export.Dir,
			Clipboard: &cfg.Export.Clipboard,
		},
		Logging: rawLoggingConfig{
			Level: cfg.Logging.Level,
			File:  cfg.Logging.File,
		},
	}
}

func marshal(format Format, v any) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(v)
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// SaveTo writes cfg to path in the format implied by its extension.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := marshal(FormatOf(path), toRawConfig(cfg))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Save writes the config to ~/.config/memopad/config.json
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}
