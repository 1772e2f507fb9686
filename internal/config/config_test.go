package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load with no file failed: %v", err)
	}
	if cfg.Backend.Name != "none" {
		t.Errorf("default backend = %q, want none", cfg.Backend.Name)
	}
	if cfg.Backend.Shots != 1024 {
		t.Errorf("default shots = %d, want 1024", cfg.Backend.Shots)
	}
	if cfg.Shor.MaxAttempts != 64 {
		t.Errorf("default max_attempts = %d, want 64", cfg.Shor.MaxAttempts)
	}
}

func TestLoadFile(t *testing.T) {
	ws := t.TempDir()
	if err := os.MkdirAll(filepath.Join(ws, Dir), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "backend:\n  name: none\n  shots: 256\nshor:\n  max_attempts: 8\nui:\n  color_mode: plain\n"
	if err := os.WriteFile(Path(ws), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(ws)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.Shots != 256 || cfg.Shor.MaxAttempts != 8 || cfg.UI.ColorMode != "plain" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q, want default info", cfg.Logging.Level)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QED_BACKEND", "none")
	t.Setenv("QED_SHOTS", "32")
	t.Setenv("QED_COLOR_MODE", "dark")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.Shots != 32 || cfg.UI.ColorMode != "dark" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("QED_COLOR_MODE", "neon")
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for invalid color mode")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	ws := t.TempDir()
	cfg := Default()
	cfg.Backend.Shots = 2048
	if err := Save(ws, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(ws)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Backend.Shots != 2048 {
		t.Errorf("round trip lost shots: %+v", loaded)
	}
}
