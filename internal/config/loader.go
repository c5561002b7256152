// Package config locates, loads, and writes the tracker's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/agustinfitipaldi/blood/internal/errors"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".blood.yaml"
	// GlobalConfigDir is the directory for global config, relative to home.
	GlobalConfigDir = ".config/blood"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'blood init' to create one, or specify a path with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .blood.yaml in the current directory
// 3. .blood.yaml in parent directories (stops at git root or home)
// 4. ~/.config/blood/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// Walk up through parent directories.
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && parent == home {
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults when no
// config file exists. The tracker works out of the box without one.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetDefault("database", cfg.Database)
	v.SetDefault("min_width", cfg.MinWidth)
	v.SetDefault("min_height", cfg.MinHeight)
	v.SetDefault("recent", cfg.Recent)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.Database = expandHome(cfg.Database)

	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values the renderer cannot work with.
func (c *Config) validate(path string) error {
	if c.Database == "" {
		return errors.New(errors.ErrConfig,
			"Config sets an empty database path",
			"Set 'database' to a writable file path in "+path)
	}
	if c.MinWidth < 1 || c.MinHeight < 1 {
		return errors.New(errors.ErrConfig,
			"Config sets a non-positive minimum screen size",
			"Set 'min_width' and 'min_height' to positive values in "+path)
	}
	if c.Recent < 1 {
		return errors.New(errors.ErrConfig,
			"Config sets 'recent' below 1",
			"Each card needs at least one value row; raise 'recent' in "+path)
	}
	if c.Recent > MaxRecent {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config sets 'recent' above %d", MaxRecent),
			fmt.Sprintf("Cards have room for %d value rows; lower 'recent' in %s", MaxRecent, path))
	}
	return nil
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || path[1] != filepath.Separator && path[1] != '/' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
