package config

import (
	"errors"
	"fmt"

	merrors "github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Project.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("project: %w", err))
	}
	if err := c.Editor.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("editor: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	for key, name := range c.Keys {
		if key == "" || name == "" {
			errs = append(errs, fmt.Errorf("keys: empty binding %q = %q", key, name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", merrors.ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks ProjectConfig for errors.
func (c *ProjectConfig) Validate() error {
	if c.FrameRate != "" {
		if _, err := timecode.ParseRate(c.FrameRate); err != nil {
			return err
		}
	}
	if c.DuplicateGapFrames < 0 {
		return errors.New("duplicate_gap_frames must be non-negative")
	}
	return nil
}

// Validate checks EditorConfig for errors.
func (c *EditorConfig) Validate() error {
	if c.Zoom < 0 {
		return errors.New("zoom must be positive")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	if c.RefreshInterval < 0 {
		return errors.New("refresh_interval must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 {
		return errors.New("max_size_mb and max_backups must be non-negative")
	}
	return nil
}
