// Package config persists simulator defaults (memory size, clock mode,
// trace colour) in a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the simulator's persisted defaults.
type Config struct {
	Execution struct {
		MemWords     int    `toml:"mem_words"`
		ProgramStart string `toml:"program_start"`
		MaxCycles    uint64 `toml:"max_cycles"`
	} `toml:"execution"`

	Clock struct {
		Mode string `toml:"mode"` // "auto" or "manual"
		Hz   int    `toml:"hz"`   // 0 = max speed
	} `toml:"clock"`

	Trace struct {
		Enabled bool `toml:"enabled"`
		Color   bool `toml:"color"`
	} `toml:"trace"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MemWords = 65536
	cfg.Execution.ProgramStart = "0x1000"
	cfg.Execution.MaxCycles = 10_000_000
	cfg.Clock.Mode = "auto"
	cfg.Clock.Hz = 0
	cfg.Trace.Enabled = true
	cfg.Trace.Color = true
	return cfg
}

// GetConfigPath returns the platform-specific config file path,
// creating the containing directory if necessary.
func GetConfigPath() string {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "rv32sim")
	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config", "rv32sim")
	default:
		return "config.toml"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads the config file at the default path, falling back to
// defaults if it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads the config file at path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes c to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes c to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
