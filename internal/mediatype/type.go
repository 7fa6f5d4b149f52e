package mediatype

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidContentType reports a type string that does not match the
// "media/subtype" grammar.
var ErrInvalidContentType = errors.New("invalid content type")

// ErrInvalidEncoding reports an unsupported transfer encoding value.
var ErrInvalidEncoding = errors.New("invalid encoding")

var contentTypeRE = regexp.MustCompile(`^\w[-\w.+]*/\w[-\w.+]*$`)

// Reindexer receives extension-change notifications for descriptors it holds.
// Registries implement it to keep their extension indexes in sync.
type Reindexer interface {
	Reindex(t *Type, previous, current []string)
}

// Type describes a single content type. All fields except the extension list
// are fixed at construction; extension mutation is broadcast to subscribed
// registries.
type Type struct {
	contentType string
	simplified  string
	media       string
	sub         string
	encoding    string

	registered bool
	obsolete   bool
	useInstead string
	signature  bool

	docs     string
	friendly map[string]string
	xrefs    map[string][]string

	mu          sync.RWMutex
	extensions  []string
	preferred   string
	subscribers map[string]Reindexer
}

// Parse constructs a descriptor from a bare type string with default
// attributes. The string must match word-chars "/" word-chars; anything else
// fails with ErrInvalidContentType and no descriptor is produced.
func Parse(contentType string) (*Type, error) {
	if !contentTypeRE.MatchString(contentType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}

	simplified := strings.ToLower(contentType)
	media, sub, _ := strings.Cut(simplified, "/")

	return &Type{
		contentType: contentType,
		simplified:  simplified,
		media:       media,
		sub:         sub,
		subscribers: make(map[string]Reindexer),
	}, nil
}

// MustParse is Parse for statically known inputs; it panics on failure.
func MustParse(contentType string) *Type {
	t, err := Parse(contentType)
	if err != nil {
		panic(err)
	}
	return t
}

// ContentType returns the canonical type string as presented, case and any
// leading "x-" marker preserved.
func (t *Type) ContentType() string { return t.contentType }

// Simplified returns the lowercase form used as the index and comparison key.
func (t *Type) Simplified() string { return t.simplified }

// Media returns the media half of the simplified form.
func (t *Type) Media() string { return t.media }

// Sub returns the subtype half of the simplified form.
func (t *Type) Sub() string { return t.sub }

// Registered reports whether the type is an IANA registration rather than a
// local or informal one.
func (t *Type) Registered() bool { return t.registered }

// Obsolete reports whether the type has been withdrawn.
func (t *Type) Obsolete() bool { return t.obsolete }

// UseInstead names the replacement for an obsolete type; empty otherwise.
func (t *Type) UseInstead() string { return t.useInstead }

// Signature reports whether the type is a signature type.
func (t *Type) Signature() bool { return t.signature }

// Docs returns the free-form documentation string carried from the source data.
func (t *Type) Docs() string { return t.docs }

// Friendly returns the human-readable name for the given locale, or the "en"
// entry when the locale is absent.
func (t *Type) Friendly(locale string) string {
	if name, ok := t.friendly[locale]; ok {
		return name
	}
	return t.friendly["en"]
}

// XRefs returns the cross-reference map. The map is carried verbatim; mimedex
// never interprets it.
func (t *Type) XRefs() map[string][]string { return t.xrefs }

// Encoding returns the effective transfer encoding: the declared value when
// present, otherwise quoted-printable for text types and base64 for the rest.
func (t *Type) Encoding() string {
	if t.encoding != "" {
		return t.encoding
	}
	if t.media == "text" {
		return "quoted-printable"
	}
	return "base64"
}

// Complete reports whether the descriptor carries at least one extension.
func (t *Type) Complete() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.extensions) > 0
}

// Extensions returns a copy of the extension list in insertion order.
func (t *Type) Extensions() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.extensions))
	copy(out, t.extensions)
	return out
}

// PreferredExtension returns the preferred extension, defaulting to the first
// extension when none was declared.
func (t *Type) PreferredExtension() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.preferred
}

// SetExtensions replaces the extension list. Duplicates are dropped, insertion
// order is kept, and the preferred extension is re-derived when the current
// one is no longer a member. Every subscribed registry is notified with the
// previous and current lists so it can resynchronize its extension index.
func (t *Type) SetExtensions(extensions ...string) {
	t.mu.Lock()
	previous := t.extensions
	t.extensions = dedupeExtensions(extensions)
	if !containsString(t.extensions, t.preferred) {
		if len(t.extensions) > 0 {
			t.preferred = t.extensions[0]
		} else {
			t.preferred = ""
		}
	}
	current := make([]string, len(t.extensions))
	copy(current, t.extensions)
	subscribers := make([]Reindexer, 0, len(t.subscribers))
	for _, sub := range t.subscribers {
		subscribers = append(subscribers, sub)
	}
	t.mu.Unlock()

	// Notify outside the lock: the registry takes its own lock to reindex.
	for _, sub := range subscribers {
		sub.Reindex(t, previous, current)
	}
}

// Subscribe registers a Reindexer for extension-change notifications and
// returns the token to pass to Unsubscribe.
func (t *Type) Subscribe(r Reindexer) string {
	token := uuid.NewString()
	t.mu.Lock()
	t.subscribers[token] = r
	t.mu.Unlock()
	return token
}

// Unsubscribe removes a previously registered Reindexer.
func (t *Type) Unsubscribe(token string) {
	t.mu.Lock()
	delete(t.subscribers, token)
	t.mu.Unlock()
}

// Equal reports identity: the content-type strings are byte-identical.
func (t *Type) Equal(other *Type) bool {
	return other != nil && t.contentType == other.contentType
}

// Compare orders descriptors by their simplified form.
func (t *Type) Compare(other *Type) int {
	return strings.Compare(t.simplified, other.simplified)
}

// Like reports whether two descriptors name the same type once any leading
// "x-" experimental marker is stripped from both media and subtype, so
// "x-foo/bar" is like "foo/bar" and vice versa.
func (t *Type) Like(other *Type) bool {
	return other != nil && t.unexperimental() == other.unexperimental()
}

// LikeString is Like against a raw type string. A malformed string is never
// like anything.
func (t *Type) LikeString(s string) bool {
	other, err := Parse(s)
	if err != nil {
		return false
	}
	return t.Like(other)
}

func (t *Type) unexperimental() string {
	return strings.TrimPrefix(t.media, "x-") + "/" + strings.TrimPrefix(t.sub, "x-")
}

func (t *Type) String() string { return t.contentType }

// Simplify normalizes a raw identifier the same way descriptor construction
// does, for use as a lookup key. Invalid identifiers simplify to "".
func Simplify(id string) string {
	id = strings.TrimSpace(id)
	if !contentTypeRE.MatchString(id) {
		return ""
	}
	return strings.ToLower(id)
}

func dedupeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	seen := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func containsString(values []string, target string) bool {
	if target == "" {
		return false
	}
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
