package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mimedex/internal/config"
	"mimedex/internal/mediatype"
	"mimedex/internal/mimedata"
)

// Source produces the descriptor sequence a registry is populated from.
// Every produced item must be constructible into a valid descriptor.
type Source interface {
	// Name identifies the source in logs and CLI output.
	Name() string
	Load(ctx context.Context) ([]mediatype.Data, error)
}

// FromConfig selects the configured source: a compiled database when
// data.database is set, a JSON directory when data.dir is set, otherwise the
// embedded dataset.
func FromConfig(cfg *config.Config) Source {
	switch {
	case cfg != nil && cfg.Data.Database != "":
		return NewDBSource(cfg.Data.Database)
	case cfg != nil && cfg.Data.Dir != "":
		return NewDirSource(cfg.Data.Dir)
	default:
		return EmbeddedSource{}
	}
}

// EmbeddedSource serves the dataset compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Load(_ context.Context) ([]mediatype.Data, error) {
	return mimedata.Types()
}

// DirSource reads every *.json file in a directory. Each file holds a JSON
// array of serialized descriptors; files are processed in name order so the
// combined sequence is deterministic.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over a JSON data directory.
func NewDirSource(dir string) DirSource {
	return DirSource{dir: dir}
}

func (s DirSource) Name() string { return "dir:" + s.dir }

func (s DirSource) Load(ctx context.Context) ([]mediatype.Data, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var out []mediatype.Data
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read data file %s: %w", name, err)
		}
		var types []mediatype.Data
		if err := json.Unmarshal(raw, &types); err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", name, err)
		}
		out = append(out, types...)
	}
	return out, nil
}
