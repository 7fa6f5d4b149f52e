package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

// normalizeEnv applies environment overrides before path expansion.
// MIMEDEX_CACHE replaces the cache path (an empty value disables the cache),
// MIMEDEX_DATA points at a JSON data directory, and MIMEDEX_LAZY_LOAD turns
// deferred population on or off.
func (c *Config) normalizeEnv() {
	if value, ok := os.LookupEnv("MIMEDEX_CACHE"); ok {
		c.Cache.Path = strings.TrimSpace(value)
		c.Cache.Enabled = c.Cache.Path != ""
	}
	if value, ok := os.LookupEnv("MIMEDEX_DATA"); ok {
		c.Data.Dir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("MIMEDEX_LAZY_LOAD"); ok {
		c.Catalog.Lazy = isTruthy(value)
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Cache.Path) != "" {
		if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
			return fmt.Errorf("cache.path: %w", err)
		}
	} else {
		c.Cache.Path = ""
	}
	if strings.TrimSpace(c.Data.Dir) != "" {
		if c.Data.Dir, err = expandPath(c.Data.Dir); err != nil {
			return fmt.Errorf("data.dir: %w", err)
		}
	} else {
		c.Data.Dir = ""
	}
	if strings.TrimSpace(c.Data.Database) != "" {
		if c.Data.Database, err = expandPath(c.Data.Database); err != nil {
			return fmt.Errorf("data.database: %w", err)
		}
	} else {
		c.Data.Database = ""
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
