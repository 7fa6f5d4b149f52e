package mediatype

import (
	"fmt"
	"strings"
)

// Data is the serialized form of a descriptor. It is the unit the snapshot
// cache and every data source exchange; empty and default-valued fields are
// omitted on output and defaulted on input.
type Data struct {
	ContentType        string              `json:"content-type"`
	Docs               string              `json:"docs,omitempty"`
	Friendly           map[string]string   `json:"friendly,omitempty"`
	Encoding           string              `json:"encoding,omitempty"`
	Extensions         []string            `json:"extensions,omitempty"`
	PreferredExtension string              `json:"preferred-extension,omitempty"`
	Obsolete           bool                `json:"obsolete,omitempty"`
	UseInstead         string              `json:"use-instead,omitempty"`
	XRefs              map[string][]string `json:"xrefs,omitempty"`
	Registered         bool                `json:"registered,omitempty"`
	Signature          bool                `json:"signature,omitempty"`
}

// New constructs a descriptor from its serialized form. The content type must
// be well formed and the encoding, when declared, must be one of 7bit, 8bit,
// base64, or quoted-printable.
func New(data Data) (*Type, error) {
	t, err := Parse(data.ContentType)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(strings.TrimSpace(data.Encoding))
	switch encoding {
	case "", "7bit", "8bit", "base64", "quoted-printable":
	default:
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidEncoding, data.Encoding, data.ContentType)
	}
	t.encoding = encoding

	t.registered = data.Registered
	t.obsolete = data.Obsolete
	if data.Obsolete {
		t.useInstead = strings.TrimSpace(data.UseInstead)
	}
	t.signature = data.Signature
	t.docs = data.Docs
	if len(data.Friendly) > 0 {
		t.friendly = make(map[string]string, len(data.Friendly))
		for locale, name := range data.Friendly {
			t.friendly[locale] = name
		}
	}
	if len(data.XRefs) > 0 {
		t.xrefs = make(map[string][]string, len(data.XRefs))
		for kind, refs := range data.XRefs {
			t.xrefs[kind] = append([]string(nil), refs...)
		}
	}

	t.extensions = dedupeExtensions(data.Extensions)
	preferred := strings.TrimSpace(data.PreferredExtension)
	if containsString(t.extensions, preferred) {
		t.preferred = preferred
	} else if len(t.extensions) > 0 {
		t.preferred = t.extensions[0]
	}

	return t, nil
}

// Data returns the serialized form of the descriptor. Round-tripping through
// New yields an Equal descriptor with identical attributes.
func (t *Type) Data() Data {
	t.mu.RLock()
	extensions := make([]string, len(t.extensions))
	copy(extensions, t.extensions)
	preferred := t.preferred
	t.mu.RUnlock()

	data := Data{
		ContentType: t.contentType,
		Docs:        t.docs,
		Encoding:    t.encoding,
		Extensions:  extensions,
		Obsolete:    t.obsolete,
		UseInstead:  t.useInstead,
		Registered:  t.registered,
		Signature:   t.signature,
	}
	// The default preferred extension is derived; only persist an explicit
	// deviation from "first extension wins".
	if preferred != "" && (len(extensions) == 0 || extensions[0] != preferred) {
		data.PreferredExtension = preferred
	}
	if len(t.friendly) > 0 {
		data.Friendly = make(map[string]string, len(t.friendly))
		for locale, name := range t.friendly {
			data.Friendly[locale] = name
		}
	}
	if len(t.xrefs) > 0 {
		data.XRefs = make(map[string][]string, len(t.xrefs))
		for kind, refs := range t.xrefs {
			data.XRefs[kind] = append([]string(nil), refs...)
		}
	}
	return data
}
