package config

import "time"

// Config holds the application configuration.
type Config struct {
	Theme string `yaml:"theme"`

	// Page width = min(WidthRatio × terminal width, MaxWidth).
	WidthRatio float64 `yaml:"width_ratio"`
	MaxWidth   float64 `yaml:"max_width"`

	HistoryDB       string        `yaml:"history_db"`
	OutboxDir       string        `yaml:"outbox_dir"`
	OutboxFormat    string        `yaml:"outbox_format"`
	CopyToClipboard bool          `yaml:"copy_to_clipboard"`
	SubmitTimeout   time.Duration `yaml:"submit_timeout"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:           "catppuccin-mocha",
		WidthRatio:      0.6,
		MaxWidth:        1024,
		HistoryDB:       "",
		OutboxDir:       "",
		OutboxFormat:    "json",
		CopyToClipboard: false,
		SubmitTimeout:   10 * time.Second,
		LogFile:         "",
		LogLevel:        "info",
	}
}
