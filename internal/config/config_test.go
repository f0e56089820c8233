package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Default()
	if cfg.Port != want.Port || cfg.DocsDir != want.DocsDir || cfg.WorkerCount != want.WorkerCount {
		t.Errorf("expected defaults %+v, got %+v", want, cfg)
	}
	if cfg.PrefsTTLDays != 0 {
		t.Errorf("expected session cookies by default, got %d days", cfg.PrefsTTLDays)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutedoc.yml")
	yml := `port: "9000"
docs_dir: html
worker_count: 2
prefs_ttl_days: 30
whole_word_keywords: true
job_ttl: 10m
exclude:
  - "**/private/**"
cors_origins:
  - "https://dlang.org"
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CUTEDOC_WORKER_COUNT", "8")
	t.Setenv("CUTEDOC_OUTPUT_DIR", "site")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.DocsDir != "html" {
		t.Errorf("expected docs_dir html, got %q", cfg.DocsDir)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("env should override file: expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.OutputDir != "site" {
		t.Errorf("expected output_dir site, got %q", cfg.OutputDir)
	}
	if cfg.PrefsTTLDays != 30 || !cfg.WholeWordKeywords {
		t.Errorf("unexpected prefs/keyword settings: %+v", cfg)
	}
	if cfg.JobTTL != 10*time.Minute {
		t.Errorf("expected job_ttl 10m, got %v", cfg.JobTTL)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "**/private/**" {
		t.Errorf("unexpected exclude list: %v", cfg.Exclude)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://dlang.org" {
		t.Errorf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_NonPositiveFallsBack(t *testing.T) {
	t.Setenv("CUTEDOC_WORKER_COUNT", "0")
	t.Setenv("CUTEDOC_MAX_QUEUE_SIZE", "-5")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 1000 {
		t.Errorf("expected fallbacks, got workers=%d queue=%d", cfg.WorkerCount, cfg.MaxQueueSize)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.DocsDir = dir
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.DocsDir = filepath.Join(dir, "nope")
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing docs_dir")
	}

	f := filepath.Join(dir, "file.html")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.DocsDir = f
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-directory docs_dir")
	}

	cfg.DocsDir = dir
	cfg.OutputDir = ""
	if err := cfg.ValidateBuild(); err == nil {
		t.Error("expected error for empty output_dir")
	}
}
