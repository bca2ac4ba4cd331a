// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	History  HistoryConfig  `yaml:"history"`
	Playback PlaybackConfig `yaml:"playback"`
	Player   PlayerConfig   `yaml:"player"`
	Language string         `yaml:"language" default:"en"`
}

// StoreConfig represents local store configuration.
type StoreConfig struct {
	Backend string `yaml:"backend" default:"badger" validate:"oneof=badger memory"`
	Path    string `yaml:"path"`
}

// HistoryConfig represents watch history configuration.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries" default:"50" validate:"gte=1,lte=1000"`
}

// PlaybackConfig represents playback control configuration.
type PlaybackConfig struct {
	WatchdogIntervalMs  int `yaml:"watchdog_interval_ms" default:"100" validate:"gte=10,lte=5000"`
	WatchdogThresholdMs int `yaml:"watchdog_threshold_ms" default:"300" validate:"gte=50,lte=10000"`
}

// WatchdogInterval returns the watchdog poll interval as a duration.
func (c PlaybackConfig) WatchdogInterval() time.Duration {
	return time.Duration(c.WatchdogIntervalMs) * time.Millisecond
}

// WatchdogThreshold returns the near-end threshold as a duration.
func (c PlaybackConfig) WatchdogThreshold() time.Duration {
	return time.Duration(c.WatchdogThresholdMs) * time.Millisecond
}

// PlayerConfig represents the player adapter configuration.
type PlayerConfig struct {
	Type     string         `yaml:"type" default:"embed"`
	Settings map[string]any `yaml:"settings"`
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// Run on defaults.
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("TUBE_DATA_DIR"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("TUBE_LANGUAGE"); v != "" {
		c.Language = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	// The watchdog must look further ahead than it polls, otherwise the
	// near-end window can fall between two polls.
	if c.Playback.WatchdogThresholdMs <= c.Playback.WatchdogIntervalMs {
		return errors.Newf("watchdog_threshold_ms (%d) must be greater than watchdog_interval_ms (%d)",
			c.Playback.WatchdogThresholdMs, c.Playback.WatchdogIntervalMs)
	}

	return nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tongbarntube"
	}
	return filepath.Join(home, ".tongbarntube")
}
