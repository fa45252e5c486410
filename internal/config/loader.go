package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir returns ~/.config/bizadvisor.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bizadvisor")
}

// DataDir returns ~/.local/share/bizadvisor.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "bizadvisor")
}

// Load loads configuration from ~/.config/bizadvisor/config.yaml.
// A missing or malformed file yields the defaults.
func Load() Config {
	dir := Dir()
	if dir == "" {
		return withPaths(DefaultConfig())
	}
	cfg, err := LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return withPaths(DefaultConfig())
	}
	return cfg
}

// LoadFile loads configuration from an explicit path, merged over defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return withPaths(cfg), fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return withPaths(DefaultConfig()), fmt.Errorf("parsing config: %w", err)
	}
	return withPaths(cfg), nil
}

// withPaths fills in file locations left empty by the user.
func withPaths(cfg Config) Config {
	data := DataDir()
	if data == "" {
		return cfg
	}
	if cfg.HistoryDB == "" {
		cfg.HistoryDB = filepath.Join(data, "history.db")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(data, "bizadvisor.log")
	}
	return cfg
}
