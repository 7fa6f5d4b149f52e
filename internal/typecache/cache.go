package typecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mimedex/internal/logging"
	"mimedex/internal/mediatype"
	"mimedex/internal/registry"
	"mimedex/internal/version"
)

// snapshot is the on-disk envelope. The fingerprint is checked before anything
// else in the payload is trusted.
type snapshot struct {
	Fingerprint string           `json:"fingerprint"`
	CreatedAt   time.Time        `json:"created_at"`
	Count       int              `json:"count"`
	Types       []mediatype.Data `json:"types"`
}

// Info summarizes a snapshot without loading it into a registry.
type Info struct {
	Path        string
	Exists      bool
	Valid       bool
	Fingerprint string
	CreatedAt   time.Time
	Count       int
	SizeBytes   int64
}

// Cache reads and writes registry snapshots at a fixed path. An empty path
// disables the cache: Load always reports absent and Save is a no-op.
type Cache struct {
	path   string
	logger *slog.Logger
}

// New creates a cache for the given snapshot path.
func New(path string, logger *slog.Logger) *Cache {
	return &Cache{
		path:   path,
		logger: logging.NewComponentLogger(logger, "typecache"),
	}
}

// Path returns the snapshot location; empty when the cache is disabled.
func (c *Cache) Path() string { return c.path }

// Load reads the snapshot and reconstructs a registry from it. The boolean is
// false whenever no trustworthy snapshot exists; that is never an error, the
// caller falls back to the data source.
func (c *Cache) Load() (*registry.Registry, bool) {
	if c.path == "" {
		return nil, false
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("cache unreadable",
				logging.String(logging.FieldEventType, "cache_read_failed"),
				logging.Error(err),
				logging.String(logging.FieldImpact, "registry will be rebuilt from the data source"))
		}
		return nil, false
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.logger.Warn("cache corrupt",
			logging.String(logging.FieldEventType, "cache_corrupt"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "registry will be rebuilt from the data source"))
		return nil, false
	}

	if snap.Fingerprint != version.Version {
		c.logger.Debug("cache fingerprint mismatch",
			logging.String("cache_fingerprint", snap.Fingerprint),
			logging.String("running_version", version.Version))
		return nil, false
	}
	if snap.Count != len(snap.Types) {
		c.logger.Warn("cache count mismatch",
			logging.String(logging.FieldEventType, "cache_corrupt"),
			logging.Int("declared", snap.Count),
			logging.Int("actual", len(snap.Types)),
			logging.String(logging.FieldImpact, "registry will be rebuilt from the data source"))
		return nil, false
	}

	// Construct everything before touching a registry so a bad descriptor
	// rejects the snapshot wholesale instead of producing a partial load.
	types := make([]*mediatype.Type, 0, len(snap.Types))
	for _, data := range snap.Types {
		t, err := mediatype.New(data)
		if err != nil {
			c.logger.Warn("cache holds invalid descriptor",
				logging.String(logging.FieldEventType, "cache_corrupt"),
				logging.Error(err),
				logging.String(logging.FieldImpact, "registry will be rebuilt from the data source"))
			return nil, false
		}
		types = append(types, t)
	}

	reg := registry.New(registry.WithLogger(c.logger))
	reg.AddQuiet(types...)

	c.logger.Debug("loaded registry snapshot",
		logging.Int("type_count", reg.Count()),
		logging.String("path", c.path))
	return reg, true
}

// Save writes a snapshot of the registry. Failures are returned for logging
// but must never be treated as fatal; the in-memory registry stays usable.
func (c *Cache) Save(reg *registry.Registry) error {
	if c.path == "" || reg == nil {
		return nil
	}

	types := reg.Types()
	snap := snapshot{
		Fingerprint: version.Version,
		CreatedAt:   time.Now().UTC(),
		Count:       len(types),
		Types:       make([]mediatype.Data, 0, len(types)),
	}
	for _, t := range types {
		snap.Types = append(snap.Types, t.Data())
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	// Unique temp file per writer: concurrent savers race on the rename,
	// last writer wins, and no reader ever sees a partial file.
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	c.logger.Debug("saved registry snapshot",
		logging.Int("type_count", snap.Count),
		logging.String("path", c.path))
	return nil
}

// Clear removes the snapshot file. A missing file is not an error.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// Stat inspects the snapshot without building a registry.
func (c *Cache) Stat() Info {
	info := Info{Path: c.path}
	if c.path == "" {
		return info
	}

	fi, err := os.Stat(c.path)
	if err != nil {
		return info
	}
	info.Exists = true
	info.SizeBytes = fi.Size()

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return info
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return info
	}
	info.Fingerprint = snap.Fingerprint
	info.CreatedAt = snap.CreatedAt
	info.Count = snap.Count
	info.Valid = snap.Fingerprint == version.Version && snap.Count == len(snap.Types)
	return info
}
