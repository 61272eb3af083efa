package casetree

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig lays out a valid working environment under dir and
// returns the path to a config.ini referencing it.
func writeTestConfig(t *testing.T, dir string, extra string) string {
	t.Helper()
	for _, sub := range []string{"work", "staging_main", "staging_nested"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"main.csv", "nested.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	content := fmt.Sprintf(`[csv_pathsfiles]
path_main = %s
path_nested = %s

[target]
path = %s

[sources]
path_main = %s
path_nested = %s
%s`,
		filepath.Join(dir, "main.csv"),
		filepath.Join(dir, "nested.csv"),
		filepath.Join(dir, "work"),
		filepath.Join(dir, "staging_main"),
		filepath.Join(dir, "staging_nested"),
		extra)

	path := filepath.Join(dir, "config.ini")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfig(t, dir, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Folder1 != DefaultFolder1 {
		t.Errorf("Expected default folder1 %q, got %q", DefaultFolder1, cfg.Folder1)
	}
	if cfg.Folder2 != DefaultFolder2 {
		t.Errorf("Expected default folder2 %q, got %q", DefaultFolder2, cfg.Folder2)
	}
	if cfg.MainErrCSV != DefaultMainErrCSV {
		t.Errorf("Expected default main error CSV %q, got %q", DefaultMainErrCSV, cfg.MainErrCSV)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Expected default log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.VerifyCSV != "" {
		t.Errorf("Expected no verification CSV by default, got %q", cfg.VerifyCSV)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfig(t, dir, `
[subdir]
folder1 = Site
folder2 = Gate

[csv_errorfiles]
path_main = reports/main_errors.csv

[log]
level = warning
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Folder1 != "Site" || cfg.Folder2 != "Gate" {
		t.Errorf("Expected overridden subdir names, got %q / %q", cfg.Folder1, cfg.Folder2)
	}
	if cfg.MainErrCSV != "reports/main_errors.csv" {
		t.Errorf("Expected overridden main error CSV, got %q", cfg.MainErrCSV)
	}
	if cfg.LogLevel != "warning" {
		t.Errorf("Expected log level 'warning', got %q", cfg.LogLevel)
	}
}

func TestLoadConfigMissingRequiredKey(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "main.csv")
	if err := os.WriteFile(csvPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// No [target], [sources], or nested CSV: first missing required
	// key must fail the load.
	path := filepath.Join(dir, "config.ini")
	content := fmt.Sprintf("[csv_pathsfiles]\npath_main = %s\n", csvPath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for missing required key")
	}
}

func TestLoadConfigNonexistentRequiredPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfig(t, dir, "")
	if err := os.Remove(filepath.Join(dir, "main.csv")); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for nonexistent required path")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.ini")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
