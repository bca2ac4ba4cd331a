package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "badger", cfg.Store.Backend)
	assert.NotEmpty(t, cfg.Store.Path)
	assert.Equal(t, 50, cfg.History.MaxEntries)
	assert.Equal(t, 100, cfg.Playback.WatchdogIntervalMs)
	assert.Equal(t, 300, cfg.Playback.WatchdogThresholdMs)
	assert.Equal(t, "embed", cfg.Player.Type)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: memory
history:
  max_entries: 10
playback:
  watchdog_interval_ms: 50
  watchdog_threshold_ms: 500
player:
  type: embed
  settings:
    default_duration_sec: 60
language: th
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 10, cfg.History.MaxEntries)
	assert.Equal(t, 50*time.Millisecond, cfg.Playback.WatchdogInterval())
	assert.Equal(t, 500*time.Millisecond, cfg.Playback.WatchdogThreshold())
	assert.Equal(t, 60, cfg.Player.Settings["default_duration_sec"])
	assert.Equal(t, "th", cfg.Language)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TUBE_DATA_DIR", "/tmp/tube-data")
	t.Setenv("TUBE_LANGUAGE", "th")

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tube-data", cfg.Store.Path)
	assert.Equal(t, "th", cfg.Language)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown store backend",
			mutate:  func(c *Config) { c.Store.Backend = "redis" },
			wantErr: true,
			errMsg:  "Backend",
		},
		{
			name:    "history cap out of range",
			mutate:  func(c *Config) { c.History.MaxEntries = 0 },
			wantErr: true,
			errMsg:  "MaxEntries",
		},
		{
			name: "threshold not greater than interval",
			mutate: func(c *Config) {
				c.Playback.WatchdogIntervalMs = 300
				c.Playback.WatchdogThresholdMs = 300
			},
			wantErr: true,
			errMsg:  "watchdog_threshold_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Store:    StoreConfig{Backend: "badger", Path: "/tmp/tube"},
				History:  HistoryConfig{MaxEntries: 50},
				Playback: PlaybackConfig{WatchdogIntervalMs: 100, WatchdogThresholdMs: 300},
				Player:   PlayerConfig{Type: "embed"},
				Language: "en",
			}
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [not a mapping"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
