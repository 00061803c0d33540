package wflconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.TimeoutSeconds != 60 || cfg.LogLevel != "warning" || cfg.MaxMemoryMB != 512 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.wflcfg"))
	if err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesRecognisedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wflcfg")
	content := "timeout_seconds = 10\nlog_level = debug\ndebug_report_enabled = true\nmax_memory_mb = 1024\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TimeoutSeconds != 10 || cfg.LogLevel != "debug" || !cfg.DebugReportEnabled || cfg.MaxMemoryMB != 1024 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wflcfg")
	if err := os.WriteFile(path, []byte("some_future_key = 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected unknown keys to be ignored, got %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults unchanged by an unknown key, got %+v", cfg)
	}
}

func TestLoadSkipsBlankLinesAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wflcfg")
	content := "# a comment\n\nmax_memory_mb = 256\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxMemoryMB != 256 {
		t.Fatalf("expected max_memory_mb=256, got %d", cfg.MaxMemoryMB)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".wflcfg")
	if err := os.WriteFile(path, []byte("this is not key value\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a malformed line")
	}
}

func TestResolvePathHonoursEnvOverride(t *testing.T) {
	t.Setenv(GlobalConfigPathEnv, "/tmp/custom.wflcfg")
	if got := ResolvePath(); got != "/tmp/custom.wflcfg" {
		t.Fatalf("expected env override path, got %q", got)
	}
}

func TestResolvePathDefaultsToDotWflcfg(t *testing.T) {
	t.Setenv(GlobalConfigPathEnv, "")
	if got := ResolvePath(); got != ".wflcfg" {
		t.Fatalf("expected '.wflcfg', got %q", got)
	}
}
