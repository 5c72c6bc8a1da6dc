// Package config loads the sodascribe tool configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// EngineConfig configures the recognition engine
type EngineConfig struct {
	LanguagePackDirectory string `toml:"language_pack_directory"`
	APIKey                string `toml:"api_key"`
	RecognitionMode       string `toml:"recognition_mode"` // "ime" or "caption"
	EnableLangID          bool   `toml:"enable_lang_id"`
	MaxBufferBytes        int32  `toml:"max_buffer_bytes"`
}

// StorageConfig configures transcript persistence
type StorageConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ServerConfig configures the transcript query API
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			LanguagePackDirectory: "./SODAModels",
			APIKey:                "dummy_key",
			RecognitionMode:       "caption",
			EnableLangID:          false,
			MaxBufferBytes:        0,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "transcripts.db",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFromFile loads configuration from a TOML file, applied over the
// defaults. A missing file is not an error; the defaults are returned.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return cfg, nil
}
