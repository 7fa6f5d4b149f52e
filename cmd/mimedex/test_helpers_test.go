package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	cachePath  string
}

// setupCLITestEnv isolates HOME and environment overrides, then writes a
// config that keeps all paths inside the test's temp directory.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"MIMEDEX_CACHE", "MIMEDEX_DATA", "MIMEDEX_LAZY_LOAD"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}

	cachePath := filepath.Join(base, "cache", "registry.json")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cachePath, "", "")

	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		cachePath:  cachePath,
	}
}

func writeTestConfig(t *testing.T, path, cachePath, dataDir, database string) {
	t.Helper()
	content := fmt.Sprintf(
		"[cache]\nenabled = true\npath = %q\n\n[data]\ndir = %q\ndatabase = %q\n\n[logging]\nformat = \"json\"\nlevel = \"error\"\n",
		cachePath, dataDir, database,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeDataFiles(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}
	content := `[{"content-type": "application/x-custom", "extensions": ["cst"]}]`
	if err := os.WriteFile(filepath.Join(dir, "custom.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write data file: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
