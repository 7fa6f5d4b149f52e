package testsupport

import (
	"path/filepath"
	"testing"

	"mimedex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test. It
// defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Cache.Path = filepath.Join(base, "cache", "registry.json")
	cfgVal.Logging.Format = "json"
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCacheDisabled turns the snapshot cache off on the test config.
func WithCacheDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
		b.cfg.Cache.Path = ""
	}
}

// WithDataDir points the config at a JSON data directory.
func WithDataDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Data.Dir = dir
		b.cfg.Data.Database = ""
	}
}

// WithDatabase points the config at a compiled SQLite database.
func WithDatabase(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Data.Database = path
		b.cfg.Data.Dir = ""
	}
}

// WithLazyCatalog defers default-registry population to first query.
func WithLazyCatalog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Lazy = true
	}
}
