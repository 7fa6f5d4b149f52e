package main

import (
	"path/filepath"
	"testing"
)

func TestDataCompileAndQueryDatabase(t *testing.T) {
	env := setupCLITestEnv(t)
	dbPath := filepath.Join(env.baseDir, "types.db")

	out, _, err := runCLI(t, []string{"data", "compile", "--out", dbPath}, env.configPath)
	if err != nil {
		t.Fatalf("data compile: %v", err)
	}
	requireContains(t, out, "Compiled")
	requireContains(t, out, "embedded")

	// Point a fresh config at the compiled database and query through it.
	dbConfig := filepath.Join(env.baseDir, "db-config.toml")
	writeTestConfig(t, dbConfig, filepath.Join(env.baseDir, "db-cache", "registry.json"), "", dbPath)

	out, _, err = runCLI(t, []string{"lookup", "text/plain"}, dbConfig)
	if err != nil {
		t.Fatalf("lookup against database: %v", err)
	}
	requireContains(t, out, "text/plain")
}

func TestDataCompileRequiresOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"data", "compile"}, env.configPath); err == nil {
		t.Fatal("compile without an output should fail")
	}
}

func TestDataCompileFromJSONDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	dataDir := filepath.Join(env.baseDir, "data")
	writeDataFiles(t, dataDir)
	dirConfig := filepath.Join(env.baseDir, "dir-config.toml")
	writeTestConfig(t, dirConfig, "", dataDir, "")

	dbPath := filepath.Join(env.baseDir, "custom.db")
	out, _, err := runCLI(t, []string{"data", "compile", "--out", dbPath}, dirConfig)
	if err != nil {
		t.Fatalf("data compile: %v", err)
	}
	requireContains(t, out, "dir:")

	dbConfig := filepath.Join(env.baseDir, "compiled-config.toml")
	writeTestConfig(t, dbConfig, "", "", dbPath)
	out, _, err = runCLI(t, []string{"lookup", "application/x-custom"}, dbConfig)
	if err != nil {
		t.Fatalf("lookup against compiled database: %v", err)
	}
	requireContains(t, out, "application/x-custom")
}
