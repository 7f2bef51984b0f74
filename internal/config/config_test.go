package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if s.MaxBytes <= 0 {
		t.Error("expected default MaxBytes to be positive")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
max_bytes: 2048
query_cache_entry_put_timeout: 100ms
max_query_cache_entry_size: 1024
min_executions_before_caching: 2
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.MaxBytes != 2048 {
		t.Errorf("MaxBytes = %d, want 2048", s.MaxBytes)
	}
	if s.EntryPutTimeout != 100*time.Millisecond {
		t.Errorf("EntryPutTimeout = %v, want 100ms", s.EntryPutTimeout)
	}
	if s.MaxEntrySize != 1024 {
		t.Errorf("MaxEntrySize = %d, want 1024", s.MaxEntrySize)
	}
	if s.MinExecutionsBeforeCaching != 2 {
		t.Errorf("MinExecutionsBeforeCaching = %d, want 2", s.MinExecutionsBeforeCaching)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"max_bytes": 4096, "max_query_cache_entry_size": 2048}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.MaxBytes != 4096 {
		t.Errorf("MaxBytes = %d, want 4096", s.MaxBytes)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "cfg.toml", `max_bytes = 100`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported config extension")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
max_bytes: 2048
max_query_cache_entry_size: 1024
`)

	os.Setenv("QCACHE_MAX_BYTES", "8192")
	defer os.Unsetenv("QCACHE_MAX_BYTES")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.MaxBytes != 8192 {
		t.Errorf("MaxBytes = %d, want 8192 (env should win over file)", s.MaxBytes)
	}
}

func TestLoad_InvalidResultFailsValidation(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `max_bytes: -1`)
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for negative max_bytes")
	}
}
