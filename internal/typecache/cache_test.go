package typecache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mimedex/internal/mediatype"
	"mimedex/internal/registry"
	"mimedex/internal/testsupport"
	"mimedex/internal/version"
)

func seedRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return testsupport.MustRegistry(t,
		mediatype.Data{ContentType: "text/plain", Registered: true, Extensions: []string{"txt", "text"}},
		mediatype.Data{ContentType: "application/json", Registered: true, Extensions: []string{"json"}},
		mediatype.Data{ContentType: "text/x-note", Extensions: []string{"note"}},
	)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	cache := New(path, nil)
	original := seedRegistry(t)

	if err := cache.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok := cache.Load()
	if !ok {
		t.Fatal("Load should succeed on a fresh snapshot")
	}
	if loaded.Count() != original.Count() {
		t.Errorf("Count = %d, want %d", loaded.Count(), original.Count())
	}

	// Every original descriptor must come back Equal.
	for _, want := range original.Types() {
		hits := loaded.Lookup(want.ContentType())
		found := false
		for _, got := range hits {
			if got.Equal(want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("descriptor %s missing after round trip", want.ContentType())
		}
	}

	// The extension index is derived from descriptor data alone.
	if hits := loaded.ForFilename("a.txt"); len(hits) != 1 || hits[0].ContentType() != "text/plain" {
		t.Errorf("extension index not reconstructed: %v", hits)
	}
}

func TestLoadAbsentWhenFileMissing(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "missing.json"), nil)
	if _, ok := cache.Load(); ok {
		t.Error("missing file should load as absent")
	}
}

func TestLoadAbsentWhenDisabled(t *testing.T) {
	cache := New("", nil)
	if _, ok := cache.Load(); ok {
		t.Error("disabled cache should load as absent")
	}
	if err := cache.Save(seedRegistry(t)); err != nil {
		t.Errorf("disabled Save should be a no-op, got %v", err)
	}
}

func TestLoadRejectsCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	cache := New(path, nil)
	if _, ok := cache.Load(); ok {
		t.Error("corrupt payload should load as absent")
	}
}

func TestLoadRejectsFingerprintMismatchThenAcceptsRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	cache := New(path, nil)

	stale := snapshot{
		Fingerprint: "0.0.1-stale",
		CreatedAt:   time.Now().UTC(),
		Count:       1,
		Types:       []mediatype.Data{{ContentType: "text/plain"}},
	}
	raw, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal stale snapshot: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write stale snapshot: %v", err)
	}

	if _, ok := cache.Load(); ok {
		t.Fatal("fingerprint mismatch must load as absent")
	}

	// A correctly-versioned snapshot written immediately after still loads.
	if err := cache.Save(seedRegistry(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, ok := cache.Load(); !ok {
		t.Fatal("rewritten snapshot should load")
	}
}

func TestLoadRejectsSnapshotWithInvalidDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	snap := snapshot{
		Fingerprint: version.Version,
		CreatedAt:   time.Now().UTC(),
		Count:       2,
		Types: []mediatype.Data{
			{ContentType: "text/plain"},
			{ContentType: "not a type"},
		},
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cache := New(path, nil)
	if _, ok := cache.Load(); ok {
		t.Error("snapshot with an invalid descriptor must be rejected wholesale")
	}
}

func TestLoadRejectsCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	snap := snapshot{
		Fingerprint: version.Version,
		CreatedAt:   time.Now().UTC(),
		Count:       5,
		Types:       []mediatype.Data{{ContentType: "text/plain"}},
	}
	raw, _ := json.Marshal(snap)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cache := New(path, nil)
	if _, ok := cache.Load(); ok {
		t.Error("count mismatch must be rejected")
	}
}

func TestClearAndStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	cache := New(path, nil)

	info := cache.Stat()
	if info.Exists {
		t.Error("Stat should report missing snapshot")
	}

	if err := cache.Save(seedRegistry(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info = cache.Stat()
	if !info.Exists || !info.Valid {
		t.Errorf("Stat after save = %+v, want exists and valid", info)
	}
	if info.Fingerprint != version.Version {
		t.Errorf("Fingerprint = %q, want %q", info.Fingerprint, version.Version)
	}
	if info.Count != 3 {
		t.Errorf("Count = %d, want 3", info.Count)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if cache.Stat().Exists {
		t.Error("snapshot should be gone after Clear")
	}
	if err := cache.Clear(); err != nil {
		t.Errorf("Clear of a missing snapshot should succeed, got %v", err)
	}
}
