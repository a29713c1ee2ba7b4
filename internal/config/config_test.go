package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/taskflow/internal/constants"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database != constants.DefaultConfigPath {
		t.Errorf("expected database %s, got %s", constants.DefaultConfigPath, cfg.Database)
	}
	if cfg.Server.Addr != constants.DefaultServerAddr {
		t.Errorf("expected server addr %s, got %s", constants.DefaultServerAddr, cfg.Server.Addr)
	}
	if !cfg.Backups.Enabled || cfg.Backups.Max != constants.MaxBackups {
		t.Errorf("unexpected backup defaults %+v", cfg.Backups)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := filepath.Join(home, ".config", "taskflow", "taskflow.db")
	if cfg.Database != want {
		t.Errorf("expected expanded database path %s, got %s", want, cfg.Database)
	}
	if cfg.Debug {
		t.Error("debug should default to false")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`database: /tmp/habits.db
debug: true
server:
  addr: 0.0.0.0:9000
backups:
  enabled: false
  max: 5
`)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != "/tmp/habits.db" || !cfg.Debug || cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Backups.Enabled || cfg.Backups.Max != 5 {
		t.Errorf("backup values not applied: %+v", cfg.Backups)
	}

	t.Setenv("TASKFLOW_SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("TASKFLOW_DATABASE", "/tmp/env.db")
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" || cfg.Database != "/tmp/env.db" {
		t.Errorf("env should override file, got %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != constants.DefaultServerAddr || cfg.Backups.Max != constants.MaxBackups {
		t.Errorf("round-tripped config differs from defaults: %+v", cfg)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := map[string]string{
		"~":               home,
		"~/x/taskflow.db": filepath.Join(home, "x", "taskflow.db"),
		"/abs/path.db":    "/abs/path.db",
		"relative.db":     "relative.db",
		"~other/file":     "~other/file",
	}
	for input, want := range tests {
		if got := ExpandHome(input); got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", input, got, want)
		}
	}
}
