package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Error("exists should be false for a missing file")
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.Cache.Path == "" || strings.HasPrefix(cfg.Cache.Path, "~") {
		t.Errorf("cache path should be expanded, got %q", cfg.Cache.Path)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[catalog]
lazy = true

[cache]
enabled = false

[data]
dir = "` + dir + `"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Error("exists should be true")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if !cfg.Catalog.Lazy {
		t.Error("catalog.lazy not applied")
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled not applied")
	}
	if cfg.Data.Dir != dir {
		t.Errorf("data.dir = %q, want %q", cfg.Data.Dir, dir)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging.format = %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad format", "[logging]\nformat = \"yaml\"\n"},
		{"bad level", "[logging]\nlevel = \"verbose\"\n"},
		{"dir and database", "[data]\ndir = \"/tmp/a\"\ndatabase = \"/tmp/b.db\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("MIMEDEX_CACHE", "")
	t.Setenv("MIMEDEX_DATA", dataDir)
	t.Setenv("MIMEDEX_LAZY_LOAD", "true")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheEnabled() {
		t.Error("empty MIMEDEX_CACHE should disable the cache")
	}
	if cfg.Data.Dir != dataDir {
		t.Errorf("data.dir = %q, want %q", cfg.Data.Dir, dataDir)
	}
	if !cfg.Catalog.Lazy {
		t.Error("MIMEDEX_LAZY_LOAD should enable lazy population")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
}
