package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("KED_CONFIG_HOME", "/tmp/ked-config")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/ked-config" {
		t.Fatalf("ConfigDir = %q, want %q over XDG_CONFIG_HOME", dir, "/tmp/ked-config")
	}

	t.Setenv("KED_CONFIG_HOME", "")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/ked" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/ked")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("KED_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Log.File != "" {
		t.Fatalf("Log.File = %q, want empty", cfg.Log.File)
	}
	if cfg.Log.Debug {
		t.Fatalf("Log.Debug = true, want false")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KED_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 4

[log]
file = "/tmp/ked-test.log"
debug = true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Log.File != "/tmp/ked-test.log" {
		t.Fatalf("Log.File = %q, want %q", cfg.Log.File, "/tmp/ked-test.log")
	}
	if !cfg.Log.Debug {
		t.Fatalf("Log.Debug = false, want true")
	}
}

func TestLoadKeepsDefaultsForZeroValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KED_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 0
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KED_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\ntab-width = 4")

	if _, err := Load(); err == nil {
		t.Fatalf("Load error = nil, want parse failure")
	}
}
