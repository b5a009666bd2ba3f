package config

// Config is the root configuration structure.
type Config struct {
	Project ProjectConfig     `toml:"project"`
	Editor  EditorConfig      `toml:"editor"`
	TUI     TUIConfig         `toml:"tui"`
	Log     LogConfig         `toml:"log"`
	Keys    map[string]string `toml:"keys"`
}

// ProjectConfig holds defaults for new projects.
type ProjectConfig struct {
	FrameRate          string `toml:"frame_rate"`
	Snap               bool   `toml:"snap"`
	DuplicateGapFrames int    `toml:"duplicate_gap_frames"`
	DefaultPath        string `toml:"default_path"`
}

// EditorConfig holds editing session settings.
type EditorConfig struct {
	Ripple bool    `toml:"ripple"`
	Zoom   float64 `toml:"zoom"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}
