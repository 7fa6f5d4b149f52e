package registry

import (
	"path/filepath"
	"regexp"
	"strings"

	"mimedex/internal/mediatype"
)

// LookupOption filters lookup results.
type LookupOption func(*lookupFilter)

type lookupFilter struct {
	complete   bool
	registered bool
}

// Complete drops descriptors without any file extension.
func Complete() LookupOption {
	return func(f *lookupFilter) { f.complete = true }
}

// Registered drops descriptors that are not IANA registrations.
func Registered() LookupOption {
	return func(f *lookupFilter) { f.registered = true }
}

// Lookup returns the variants registered under the given identifier, filtered
// and ranked by priority. The identifier is normalized with the same
// simplification rule descriptor construction uses; an unknown or malformed
// identifier yields an empty result, never an error.
func (r *Registry) Lookup(id string, opts ...LookupOption) []*mediatype.Type {
	key := mediatype.Simplify(id)
	if key == "" {
		return nil
	}
	return r.lookupKey(key, opts)
}

// LookupType is Lookup for an existing descriptor, using its simplified key.
func (r *Registry) LookupType(t *mediatype.Type, opts ...LookupOption) []*mediatype.Type {
	if t == nil {
		return nil
	}
	return r.lookupKey(t.Simplified(), opts)
}

// Match returns the union of variants under every simplified key matching the
// pattern, filtered and ranked by priority.
func (r *Registry) Match(re *regexp.Regexp, opts ...LookupOption) []*mediatype.Type {
	if re == nil {
		return nil
	}
	filter := newFilter(opts)

	r.mu.RLock()
	var out []*mediatype.Type
	for key, variants := range r.variants {
		if !re.MatchString(key) {
			continue
		}
		for _, t := range variants {
			if filter.keep(t) {
				out = append(out, t)
			}
		}
	}
	r.mu.RUnlock()

	mediatype.SortByPriority(out)
	return out
}

// ForFilename returns every descriptor claiming the extension of each given
// filename, ranked by priority. The extension is the text after the last "."
// in the trailing path component, case-folded; a name without a dot is used
// whole, so "README" looks up the key "readme". Matches are de-duplicated
// across input names before ranking.
func (r *Registry) ForFilename(names ...string) []*mediatype.Type {
	var out []*mediatype.Type
	seen := make(map[*mediatype.Type]struct{})

	r.mu.RLock()
	for _, name := range names {
		key := filenameKey(name)
		if key == "" {
			continue
		}
		for _, t := range r.extensions[key] {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	mediatype.SortByPriority(out)
	return out
}

func (r *Registry) lookupKey(key string, opts []LookupOption) []*mediatype.Type {
	filter := newFilter(opts)

	r.mu.RLock()
	variants := r.variants[key]
	out := make([]*mediatype.Type, 0, len(variants))
	for _, t := range variants {
		if filter.keep(t) {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	mediatype.SortByPriority(out)
	return out
}

func newFilter(opts []LookupOption) lookupFilter {
	var filter lookupFilter
	for _, opt := range opts {
		opt(&filter)
	}
	return filter
}

func (f lookupFilter) keep(t *mediatype.Type) bool {
	if f.complete && !t.Complete() {
		return false
	}
	if f.registered && !t.Registered() {
		return false
	}
	return true
}

func filenameKey(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	base := filepath.Base(trimmed)
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[idx+1:]
	}
	return foldExtension(base)
}
