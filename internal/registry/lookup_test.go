package registry

import (
	"regexp"
	"testing"

	"mimedex/internal/mediatype"
)

func TestLookupNormalizesAndRanks(t *testing.T) {
	reg := New()
	unregistered := newType(t, mediatype.Data{ContentType: "text/vcard"})
	registered := newType(t, mediatype.Data{ContentType: "text/vCard", Registered: true, Extensions: []string{"vcf"}})
	reg.Add(unregistered, registered)

	hits := reg.Lookup("Text/VCARD")
	if len(hits) != 2 {
		t.Fatalf("Lookup returned %d hits, want 2", len(hits))
	}
	if hits[0] != registered {
		t.Errorf("registered variant should rank first, got %s", hits[0].ContentType())
	}
}

func TestLookupUnknownAndMalformedKeys(t *testing.T) {
	reg := New()
	reg.Add(newType(t, mediatype.Data{ContentType: "text/plain"}))

	if hits := reg.Lookup("application/nope"); len(hits) != 0 {
		t.Errorf("unknown key should return empty, got %v", hits)
	}
	if hits := reg.Lookup("not a type"); len(hits) != 0 {
		t.Errorf("malformed key should return empty, got %v", hits)
	}
}

func TestLookupFilters(t *testing.T) {
	reg := New()
	complete := newType(t, mediatype.Data{ContentType: "audio/example", Extensions: []string{"exa"}})
	incomplete := newType(t, mediatype.Data{ContentType: "audio/example", Registered: true})
	reg.Add(complete, incomplete)

	if hits := reg.Lookup("audio/example", Complete()); len(hits) != 1 || hits[0] != complete {
		t.Errorf("Complete filter mismatch: %v", hits)
	}
	if hits := reg.Lookup("audio/example", Registered()); len(hits) != 1 || hits[0] != incomplete {
		t.Errorf("Registered filter mismatch: %v", hits)
	}
	if hits := reg.Lookup("audio/example", Complete(), Registered()); len(hits) != 0 {
		t.Errorf("combined filters should drop everything here: %v", hits)
	}
}

func TestLookupType(t *testing.T) {
	reg := New()
	typ := newType(t, mediatype.Data{ContentType: "Application/PDF", Extensions: []string{"pdf"}})
	reg.Add(typ)

	probe := newType(t, mediatype.Data{ContentType: "application/pdf"})
	hits := reg.LookupType(probe)
	if len(hits) != 1 || hits[0] != typ {
		t.Errorf("LookupType mismatch: %v", hits)
	}
	if hits := reg.LookupType(nil); hits != nil {
		t.Errorf("LookupType(nil) = %v, want nil", hits)
	}
}

func TestMatchUnionsKeys(t *testing.T) {
	reg := New()
	reg.Add(
		newType(t, mediatype.Data{ContentType: "text/plain"}),
		newType(t, mediatype.Data{ContentType: "text/html"}),
		newType(t, mediatype.Data{ContentType: "application/xhtml+xml"}),
	)

	hits := reg.Match(regexp.MustCompile(`^text/`))
	if len(hits) != 2 {
		t.Fatalf("Match returned %d hits, want 2", len(hits))
	}
	for _, hit := range hits {
		if hit.Media() != "text" {
			t.Errorf("unexpected match %s", hit.ContentType())
		}
	}
	if hits := reg.Match(nil); hits != nil {
		t.Errorf("Match(nil) = %v, want nil", hits)
	}
}

func TestForFilenameRanking(t *testing.T) {
	reg := New()
	textXML := newType(t, mediatype.Data{ContentType: "text/xml", Extensions: []string{"xml"}})
	appXML := newType(t, mediatype.Data{ContentType: "application/xml", Registered: true, Extensions: []string{"xml"}})
	reg.Add(textXML, appXML)

	hits := reg.ForFilename("report.xml")
	if len(hits) != 2 {
		t.Fatalf("ForFilename returned %d hits, want 2", len(hits))
	}
	if hits[0] != appXML {
		t.Errorf("registered application/xml should rank first, got %s", hits[0].ContentType())
	}
}

func TestForFilenameExtractionEdgeCases(t *testing.T) {
	reg := New()
	readme := newType(t, mediatype.Data{ContentType: "text/x-readme", Extensions: []string{"readme"}})
	archive := newType(t, mediatype.Data{ContentType: "application/gzip", Extensions: []string{"gz"}})
	reg.Add(readme, archive)

	// No dot: the whole trimmed name is the key, case-folded.
	if hits := reg.ForFilename("README"); len(hits) != 1 || hits[0] != readme {
		t.Errorf("ForFilename(README) = %v, want the readme type", hits)
	}
	// Only the trailing path component counts.
	if hits := reg.ForFilename("/srv/data.dir/backup.tar.GZ"); len(hits) != 1 || hits[0] != archive {
		t.Errorf("ForFilename with path = %v, want the gzip type", hits)
	}
	if hits := reg.ForFilename("   "); len(hits) != 0 {
		t.Errorf("blank name should match nothing, got %v", hits)
	}
	if hits := reg.ForFilename("trailing."); len(hits) != 0 {
		t.Errorf("empty extension should match nothing, got %v", hits)
	}
}

func TestForFilenameDeduplicatesAcrossNames(t *testing.T) {
	reg := New()
	typ := newType(t, mediatype.Data{ContentType: "image/jpeg", Extensions: []string{"jpg", "jpeg"}})
	reg.Add(typ)

	hits := reg.ForFilename("a.jpg", "b.jpeg", "c.jpg")
	if len(hits) != 1 {
		t.Errorf("matches should collapse across input names, got %d", len(hits))
	}
}
