package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FullFile(t *testing.T) {
	dir := t.TempDir()
	content := `version: 1
timeout: 10m
max_output: 2048
shell: [bash, -c]
concurrency: 4
catalog: techniques.json
report: out/report.html
classify:
  access_denied:
    - "Operation not permitted"
  blocked:
    - "quarantined by Defender"
`
	if err := os.WriteFile(filepath.Join(dir, ".attacksim"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Timeout() != 10*time.Minute {
		t.Errorf("Timeout() = %v, want 10m", cfg.Timeout())
	}
	if cfg.MaxOutputBytes() != 2048 {
		t.Errorf("MaxOutputBytes() = %d, want 2048", cfg.MaxOutputBytes())
	}
	if got := cfg.Shell(); len(got) != 2 || got[0] != "bash" {
		t.Errorf("Shell() = %v, want [bash -c]", got)
	}
	if cfg.Concurrency() != 4 {
		t.Errorf("Concurrency() = %d, want 4", cfg.Concurrency())
	}
	if cfg.CatalogPath() != "techniques.json" {
		t.Errorf("CatalogPath() = %q", cfg.CatalogPath())
	}
	if cfg.ReportPath() != "out/report.html" {
		t.Errorf("ReportPath() = %q", cfg.ReportPath())
	}
	if len(cfg.Classify.AccessDenied) != 1 || cfg.Classify.AccessDenied[0] != "Operation not permitted" {
		t.Errorf("Classify.AccessDenied = %v", cfg.Classify.AccessDenied)
	}
	if len(cfg.Classify.Blocked) != 1 || cfg.Classify.Blocked[0] != "quarantined by Defender" {
		t.Errorf("Classify.Blocked = %v", cfg.Classify.Blocked)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want default", cfg.Timeout())
	}
	if cfg.MaxOutputBytes() != DefaultMaxOutput {
		t.Errorf("MaxOutputBytes() = %d, want default", cfg.MaxOutputBytes())
	}
	if got := cfg.Shell(); len(got) != 2 || got[0] != "sh" || got[1] != "-c" {
		t.Errorf("Shell() = %v, want [sh -c]", got)
	}
	if cfg.Concurrency() != 1 {
		t.Errorf("Concurrency() = %d, want 1", cfg.Concurrency())
	}
	if cfg.CatalogPath() != DefaultCatalogPath {
		t.Errorf("CatalogPath() = %q, want %q", cfg.CatalogPath(), DefaultCatalogPath)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".attacksim"), []byte("timeout: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestConfig_InvalidTimeoutFallsBack(t *testing.T) {
	cfg := &Config{RawTimeout: "not-a-duration"}
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want default", cfg.Timeout())
	}
}

func TestConfig_ConcurrencyClamped(t *testing.T) {
	cfg := &Config{RawConcurrency: -3}
	if cfg.Concurrency() != 1 {
		t.Errorf("Concurrency() = %d, want 1", cfg.Concurrency())
	}
}
