package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"mimedex/internal/loader"
	"mimedex/internal/logging"
	"mimedex/internal/registry"
	"mimedex/internal/typecache"
)

// Catalog owns the default registry. It starts unpopulated; EnsurePopulated
// performs the one-time cache-or-source build under a lock, so concurrent
// first callers serialize instead of racing duplicate builds.
type Catalog struct {
	source loader.Source
	cache  *typecache.Cache
	logger *slog.Logger

	mu        chan struct{} // buffered size 1, held across population
	populated bool
	reg       *registry.Registry
	fromCache bool
}

// Stats aggregates registry contents for diagnostic output.
type Stats struct {
	Total       int            `json:"total"`
	Registered  int            `json:"registered"`
	Obsolete    int            `json:"obsolete"`
	Complete    int            `json:"complete"`
	Extensions  int            `json:"extensions"`
	ByMediaType map[string]int `json:"by_media_type"`
}

// New creates an unpopulated catalog over the given source and cache. The
// cache may be nil when snapshot caching is disabled.
func New(source loader.Source, cache *typecache.Cache, logger *slog.Logger) *Catalog {
	mu := make(chan struct{}, 1)
	mu <- struct{}{}
	return &Catalog{
		source: source,
		cache:  cache,
		logger: logging.NewComponentLogger(logger, "catalog"),
		mu:     mu,
	}
}

// EnsurePopulated builds the registry exactly once: first from a valid cache
// snapshot, otherwise from the data source followed by an immediate snapshot
// save. It is idempotent and safe to call from multiple goroutines; a save
// failure is logged and never fails the call.
func (c *Catalog) EnsurePopulated(ctx context.Context) error {
	select {
	case <-c.mu:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { c.mu <- struct{}{} }()

	if c.populated {
		return nil
	}

	if c.cache != nil {
		if reg, ok := c.cache.Load(); ok {
			c.reg = reg
			c.populated = true
			c.fromCache = true
			c.logger.Debug("catalog populated from cache",
				logging.Int("type_count", reg.Count()))
			return nil
		}
	}

	started := time.Now()
	types, err := c.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data source %s: %w", c.source.Name(), err)
	}

	reg := registry.New(registry.WithLogger(c.logger))
	if err := reg.AddData(types...); err != nil {
		return fmt.Errorf("populate from %s: %w", c.source.Name(), err)
	}

	c.reg = reg
	c.populated = true
	c.fromCache = false
	c.logger.Debug("catalog populated from source",
		logging.String("source", c.source.Name()),
		logging.Int("type_count", reg.Count()),
		logging.Duration("elapsed", time.Since(started)))

	if c.cache != nil {
		if err := c.cache.Save(reg); err != nil {
			c.logger.Warn("snapshot save failed",
				logging.String(logging.FieldEventType, "cache_save_failed"),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check cache path permissions"),
				logging.String(logging.FieldImpact, "next start re-parses the data source"))
		}
	}
	return nil
}

// Registry returns the populated registry, populating on first use.
func (c *Catalog) Registry(ctx context.Context) (*registry.Registry, error) {
	if err := c.EnsurePopulated(ctx); err != nil {
		return nil, err
	}
	return c.reg, nil
}

// FromCache reports whether the last population came from a snapshot.
func (c *Catalog) FromCache() bool {
	select {
	case token := <-c.mu:
		defer func() { c.mu <- token }()
		return c.populated && c.fromCache
	default:
		return false
	}
}

// Stats computes aggregate counts over the populated registry.
func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	reg, err := c.Registry(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{ByMediaType: make(map[string]int)}
	for _, t := range reg.Types() {
		stats.Total++
		if t.Registered() {
			stats.Registered++
		}
		if t.Obsolete() {
			stats.Obsolete++
		}
		if t.Complete() {
			stats.Complete++
		}
		stats.ByMediaType[t.Media()]++
	}
	stats.Extensions = len(reg.Extensions())
	return stats, nil
}

// MediaTypes returns the sorted media-type keys present in the stats map.
func (s Stats) MediaTypes() []string {
	out := make([]string, 0, len(s.ByMediaType))
	for media := range s.ByMediaType {
		out = append(out, media)
	}
	sort.Strings(out)
	return out
}
