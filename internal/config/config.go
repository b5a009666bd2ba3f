package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.maestrorc, $XDG_CONFIG_HOME/maestro/config.toml, ~/.config/maestro/config.toml
func Load() (*Config, error) {
	cfg := Default()

	// Try loading from file
	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns the first existing config file path.
func FindConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	for _, p := range []string{filepath.Join(home, ".maestrorc"), XDGPath(home)} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// XDGPath returns $XDG_CONFIG_HOME/maestro/config.toml, falling back to
// ~/.config when the variable is unset.
func XDGPath(home string) string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "maestro", "config.toml")
}

// applyEnvOverrides applies environment variable overrides to the config.
// A .env file in the working directory is read first; it never replaces
// variables already set in the environment. A missing .env is fine; a
// malformed one is an error.
func applyEnvOverrides(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}

	// Project
	if v := os.Getenv("MAESTRO_FRAME_RATE"); v != "" {
		cfg.Project.FrameRate = v
	}
	if v := os.Getenv("MAESTRO_SNAP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Project.Snap = b
		}
	}
	if v := os.Getenv("MAESTRO_PROJECT"); v != "" {
		cfg.Project.DefaultPath = v
	}

	// TUI
	if v := os.Getenv("MAESTRO_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}

	// Log
	if v := os.Getenv("MAESTRO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MAESTRO_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}
