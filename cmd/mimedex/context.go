package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mimedex/internal/catalog"
	"mimedex/internal/config"
	"mimedex/internal/loader"
	"mimedex/internal/logging"
	"mimedex/internal/typecache"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	catalogOnce sync.Once
	catalog     *catalog.Catalog
	catalogErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// ensureCatalog builds the default catalog once and populates it. The cache
// is wired in only when the config enables it.
func (c *commandContext) ensureCatalog(ctx context.Context) (*catalog.Catalog, error) {
	c.catalogOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.catalogErr = err
			return
		}
		c.catalog = catalog.New(loader.FromConfig(cfg), c.cacheValue(), c.ensureLogger())
	})
	if c.catalogErr != nil {
		return nil, c.catalogErr
	}
	if err := c.catalog.EnsurePopulated(ctx); err != nil {
		return nil, err
	}
	return c.catalog, nil
}

// cacheValue returns the configured snapshot cache, or nil when disabled.
func (c *commandContext) cacheValue() *typecache.Cache {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.CacheEnabled() {
		return nil
	}
	return typecache.New(cfg.Cache.Path, c.ensureLogger())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// usesCatalog reports whether a command queries the default registry, so
// eager population can be limited to commands that benefit from it.
func usesCatalog(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["usesCatalog"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
