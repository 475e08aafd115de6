package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Execution.MemWords != 65536 {
		t.Errorf("Expected MemWords=65536, got %d", cfg.Execution.MemWords)
	}
	if cfg.Execution.ProgramStart != "0x1000" {
		t.Errorf("Expected ProgramStart=0x1000, got %s", cfg.Execution.ProgramStart)
	}
	if cfg.Clock.Mode != "auto" {
		t.Errorf("Expected Clock.Mode=auto, got %s", cfg.Clock.Mode)
	}
	if !cfg.Trace.Enabled {
		t.Error("Expected Trace.Enabled=true")
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: unexpected error: %v", err)
	}
	if cfg.Execution.MemWords != DefaultConfig().Execution.MemWords {
		t.Errorf("expected defaults when file is missing")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Clock.Hz = 42
	cfg.Clock.Mode = "manual"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Clock.Hz != 42 {
		t.Errorf("Clock.Hz = %d, want 42", loaded.Clock.Hz)
	}
	if loaded.Clock.Mode != "manual" {
		t.Errorf("Clock.Mode = %q, want manual", loaded.Clock.Mode)
	}
}

func TestGetConfigPath_EndsWithConfigToml(t *testing.T) {
	path := GetConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("GetConfigPath() = %q, want to end with config.toml", path)
	}
}
