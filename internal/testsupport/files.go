package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"mimedex/internal/mediatype"
)

// WriteDataFile serializes the descriptors into a JSON data file under dir,
// creating parent directories as needed.
func WriteDataFile(t testing.TB, dir, name string, types []mediatype.Data) string {
	t.Helper()

	raw, err := json.MarshalIndent(types, "", "  ")
	if err != nil {
		t.Fatalf("marshal data file %s: %v", name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
