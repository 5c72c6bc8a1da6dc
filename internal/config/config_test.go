package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine.LanguagePackDirectory != "./SODAModels" {
		t.Errorf("LanguagePackDirectory = %q", cfg.Engine.LanguagePackDirectory)
	}
	if cfg.Engine.APIKey != "dummy_key" {
		t.Errorf("APIKey = %q", cfg.Engine.APIKey)
	}
	if cfg.Engine.RecognitionMode != "caption" {
		t.Errorf("RecognitionMode = %q", cfg.Engine.RecognitionMode)
	}
	if !cfg.Storage.Enabled {
		t.Error("Storage.Enabled = false, want true")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Engine.LanguagePackDirectory != "./SODAModels" {
		t.Error("missing file did not fall back to defaults")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sodascribe.toml")
	contents := `
[engine]
language_pack_directory = "/opt/soda/en_models"
recognition_mode = "ime"
enable_lang_id = true

[storage]
enabled = false

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Engine.LanguagePackDirectory != "/opt/soda/en_models" {
		t.Errorf("LanguagePackDirectory = %q", cfg.Engine.LanguagePackDirectory)
	}
	if cfg.Engine.RecognitionMode != "ime" {
		t.Errorf("RecognitionMode = %q", cfg.Engine.RecognitionMode)
	}
	if !cfg.Engine.EnableLangID {
		t.Error("EnableLangID = false, want true")
	}
	if cfg.Storage.Enabled {
		t.Error("Storage.Enabled = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	// Values absent from the file keep their defaults
	if cfg.Engine.APIKey != "dummy_key" {
		t.Errorf("APIKey = %q, want default", cfg.Engine.APIKey)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}
