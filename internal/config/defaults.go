package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			FrameRate:          "24",
			Snap:               true,
			DuplicateGapFrames: 1,
			DefaultPath:        "project.maestro.json",
		},
		Editor: EditorConfig{
			Ripple: false,
			Zoom:   1,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Keys: map[string]string{},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Project
	if c.Project.FrameRate == "" {
		c.Project.FrameRate = d.Project.FrameRate
	}
	if c.Project.DuplicateGapFrames == 0 {
		c.Project.DuplicateGapFrames = d.Project.DuplicateGapFrames
	}
	if c.Project.DefaultPath == "" {
		c.Project.DefaultPath = d.Project.DefaultPath
	}

	// Editor
	if c.Editor.Zoom == 0 {
		c.Editor.Zoom = d.Editor.Zoom
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}

	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
}
