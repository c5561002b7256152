package config

import (
	"os"
	"path/filepath"
)

// Config holds all settings for the tracker.
type Config struct {
	// Database is the path to the SQLite file.
	Database string `mapstructure:"database" yaml:"database"`

	// MinWidth and MinHeight gate the carousel behind the calibration
	// screen on undersized terminals.
	MinWidth  int `mapstructure:"min_width" yaml:"min_width"`
	MinHeight int `mapstructure:"min_height" yaml:"min_height"`

	// Recent is how many value rows each card shows, 1 to MaxRecent.
	Recent int `mapstructure:"recent" yaml:"recent"`
}

// Defaults matching the card geometry the layout was designed for.
const (
	DefaultMinWidth  = 120
	DefaultMinHeight = 40
	DefaultRecent    = 3

	// MaxRecent is the number of value rows the card layout reserves
	// between its dividers; 'recent' cannot exceed it.
	MaxRecent = 3
)

// DefaultConfig returns a config with every field at its default.
func DefaultConfig() *Config {
	return &Config{
		Database:  DefaultDatabasePath(),
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
		Recent:    DefaultRecent,
	}
}

// DefaultDatabasePath returns the standard database location,
// ~/.local/share/blood/blood.db, falling back to the working directory when
// the home directory cannot be resolved.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "blood.db"
	}
	return filepath.Join(home, ".local", "share", "blood", "blood.db")
}
