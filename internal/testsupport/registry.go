package testsupport

import (
	"testing"

	"mimedex/internal/mediatype"
	"mimedex/internal/registry"
)

// MustType constructs a descriptor for tests, failing fast on invalid input.
func MustType(t testing.TB, data mediatype.Data) *mediatype.Type {
	t.Helper()

	mt, err := mediatype.New(data)
	if err != nil {
		t.Fatalf("mediatype.New(%q): %v", data.ContentType, err)
	}
	return mt
}

// MustRegistry builds a registry populated with the given descriptors and
// registers cleanup.
func MustRegistry(t testing.TB, types ...mediatype.Data) *registry.Registry {
	t.Helper()

	reg := registry.New()
	if err := reg.AddData(types...); err != nil {
		t.Fatalf("registry.AddData: %v", err)
	}
	t.Cleanup(func() {
		reg.Close()
	})
	return reg
}
