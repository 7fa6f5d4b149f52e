package mimedata

import (
	"testing"

	"mimedex/internal/mediatype"
)

func TestTypesDecodesAndConstructs(t *testing.T) {
	types, err := Types()
	if err != nil {
		t.Fatalf("Types failed: %v", err)
	}
	if len(types) < 50 {
		t.Fatalf("embedded dataset has %d entries, expected a useful default set", len(types))
	}

	seen := make(map[string]bool, len(types))
	for _, data := range types {
		if _, err := mediatype.New(data); err != nil {
			t.Errorf("embedded entry %q does not construct: %v", data.ContentType, err)
		}
		if seen[data.ContentType] {
			t.Errorf("embedded dataset repeats %q", data.ContentType)
		}
		seen[data.ContentType] = true
	}
}

func TestTypesContainsCoreEntries(t *testing.T) {
	types, err := Types()
	if err != nil {
		t.Fatalf("Types failed: %v", err)
	}
	byName := make(map[string]mediatype.Data, len(types))
	for _, data := range types {
		byName[data.ContentType] = data
	}

	plain, ok := byName["text/plain"]
	if !ok || !plain.Registered {
		t.Error("text/plain should be present and registered")
	}
	js, ok := byName["application/javascript"]
	if !ok || !js.Obsolete || js.UseInstead != "text/javascript" {
		t.Errorf("application/javascript should be obsolete with a replacement, got %+v", js)
	}
}

func TestTypesReturnsFreshCopies(t *testing.T) {
	first, err := Types()
	if err != nil {
		t.Fatalf("Types failed: %v", err)
	}
	first[0].ContentType = "mutated/entry"

	second, err := Types()
	if err != nil {
		t.Fatalf("Types failed: %v", err)
	}
	if second[0].ContentType == "mutated/entry" {
		t.Error("mutating one result must not leak into later calls")
	}
}
