package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/text/cases"

	"mimedex/internal/logging"
	"mimedex/internal/mediatype"
)

// Option customizes registry construction.
type Option func(*Registry)

// WithLogger sets the logger used for duplicate-registration warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logging.NewComponentLogger(logger, "registry")
	}
}

// WithInterner shares a string-interning table with other registries instead
// of using a private one.
func WithInterner(interner *Interner) Option {
	return func(r *Registry) {
		r.interner = interner
	}
}

// Registry indexes content-type descriptors by simplified key and by file
// extension. The extension index is derived; it is only ever mutated through
// insertion and through Reindex notifications from held descriptors.
type Registry struct {
	mu         sync.RWMutex
	logger     *slog.Logger
	interner   *Interner
	variants   map[string][]*mediatype.Type
	extensions map[string][]*mediatype.Type
	tokens     map[*mediatype.Type]string
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:     logging.NewNop(),
		variants:   make(map[string][]*mediatype.Type),
		extensions: make(map[string][]*mediatype.Type),
		tokens:     make(map[*mediatype.Type]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.interner == nil {
		r.interner = NewInterner()
	}
	return r
}

// Add inserts descriptors. A descriptor Equal to one already registered under
// the same simplified key logs a warning but is still inserted; variants that
// differ only in metadata coexist. Re-adding the exact same instance is a
// no-op.
func (r *Registry) Add(types ...*mediatype.Type) {
	for _, t := range types {
		r.addOne(t, false)
	}
}

// AddQuiet is Add with duplicate-registration warnings suppressed.
func (r *Registry) AddQuiet(types ...*mediatype.Type) {
	for _, t := range types {
		r.addOne(t, true)
	}
}

// AddData constructs descriptors from their serialized form and inserts them.
// Construction errors abort the whole batch before anything is inserted, so a
// failed call leaves the registry untouched.
func (r *Registry) AddData(data ...mediatype.Data) error {
	types := make([]*mediatype.Type, 0, len(data))
	for _, d := range data {
		t, err := mediatype.New(d)
		if err != nil {
			return fmt.Errorf("add data: %w", err)
		}
		types = append(types, t)
	}
	r.Add(types...)
	return nil
}

// Merge inserts every descriptor held by another registry. Merging is a
// deliberate bulk operation, so duplicate warnings are suppressed.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}
	r.AddQuiet(other.Types()...)
}

func (r *Registry) addOne(t *mediatype.Type, quiet bool) {
	if t == nil {
		return
	}

	key := r.interner.Intern(t.Simplified())
	extensions := t.Extensions()

	r.mu.Lock()
	if _, held := r.tokens[t]; held {
		r.mu.Unlock()
		return
	}
	if !quiet {
		for _, existing := range r.variants[key] {
			if existing.Equal(t) {
				r.logger.Warn("duplicate type registration",
					logging.String(logging.FieldEventType, "duplicate_registration"),
					logging.String("content_type", t.ContentType()),
					logging.String(logging.FieldImpact, "both variants will be returned by lookups"))
				break
			}
		}
	}
	r.variants[key] = append(r.variants[key], t)
	for _, ext := range extensions {
		folded := r.interner.Intern(foldExtension(ext))
		r.extensions[folded] = append(r.extensions[folded], t)
	}
	r.mu.Unlock()

	// Subscribing touches the descriptor's own lock; the registry lock is
	// already released so the Reindex path cannot deadlock against us.
	token := t.Subscribe(r)
	r.mu.Lock()
	r.tokens[t] = token
	r.mu.Unlock()
}

// Reindex resynchronizes the extension index after a held descriptor's
// extension list changed. It implements mediatype.Reindexer.
func (r *Registry) Reindex(t *mediatype.Type, previous, current []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, held := r.tokens[t]; !held {
		return
	}
	for _, ext := range previous {
		folded := foldExtension(ext)
		r.extensions[folded] = removeType(r.extensions[folded], t)
		if len(r.extensions[folded]) == 0 {
			delete(r.extensions, folded)
		}
	}
	for _, ext := range current {
		folded := r.interner.Intern(foldExtension(ext))
		if !containsType(r.extensions[folded], t) {
			r.extensions[folded] = append(r.extensions[folded], t)
		}
	}
}

// Count returns the number of indexed descriptors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, variants := range r.variants {
		total += len(variants)
	}
	return total
}

// Types returns a snapshot of all indexed descriptors ordered by simplified
// key for deterministic iteration.
func (r *Registry) Types() []*mediatype.Type {
	r.mu.RLock()
	keys := make([]string, 0, len(r.variants))
	for key := range r.variants {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]*mediatype.Type, 0, len(keys))
	for _, key := range keys {
		out = append(out, r.variants[key]...)
	}
	r.mu.RUnlock()
	return out
}

// Extensions returns the sorted set of known extension keys.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		out = append(out, ext)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Close unsubscribes the registry from every held descriptor. The indexes
// remain readable but no longer track extension changes.
func (r *Registry) Close() {
	r.mu.Lock()
	tokens := r.tokens
	r.tokens = make(map[*mediatype.Type]string)
	r.mu.Unlock()

	for t, token := range tokens {
		t.Unsubscribe(token)
	}
}

// foldExtension case-folds an extension for use as an index key. Folding
// rather than lowercasing keeps lookups correct for scripts where the two
// disagree.
func foldExtension(ext string) string {
	return cases.Fold().String(ext)
}

func removeType(types []*mediatype.Type, target *mediatype.Type) []*mediatype.Type {
	out := types[:0]
	for _, t := range types {
		if t != target {
			out = append(out, t)
		}
	}
	return out
}

func containsType(types []*mediatype.Type, target *mediatype.Type) bool {
	for _, t := range types {
		if t == target {
			return true
		}
	}
	return false
}
