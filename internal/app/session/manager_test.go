package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tongbarn/tube/internal/infra/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Store:    config.StoreConfig{Backend: "memory"},
		History:  config.HistoryConfig{MaxEntries: 50},
		Playback: config.PlaybackConfig{WatchdogIntervalMs: 20, WatchdogThresholdMs: 300},
		Player:   config.PlayerConfig{Type: "embed", Settings: map[string]any{"default_duration_sec": 1}},
		Language: "en",
	}
}

func TestNewManager_Wiring(t *testing.T) {
	mgr, err := NewManager(testConfig())
	require.NoError(t, err)
	defer mgr.Close()

	assert.NotEmpty(t, mgr.SessionID())
	assert.Equal(t, "en", mgr.Translator().Language())
	assert.Zero(t, mgr.History().Len())
	assert.Zero(t, mgr.Queue().Len())
}

func TestManager_QueueTakesOverAfterVideoEnds(t *testing.T) {
	mgr, err := NewManager(testConfig())
	require.NoError(t, err)
	defer mgr.Close()

	queued, err := mgr.Reconciler().Enqueue("https://youtu.be/queued123AB")
	require.NoError(t, err)
	require.NoError(t, mgr.Reconciler().DirectPlay("https://youtu.be/current123A"))

	// The 1s emulated video ends, the watchdog intercepts and the queued
	// video takes over.
	assert.Eventually(t, func() bool {
		return mgr.Reconciler().Location().VideoID == queued.ID
	}, 3*time.Second, 20*time.Millisecond)
	assert.Zero(t, mgr.Queue().Len())
	assert.Equal(t, 2, mgr.History().Len())
}

func TestNewManager_PlayerFailureFallsBackToNoop(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Type = "chromecast"

	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	defer mgr.Close()

	// Playback commands still run against the silent player; the lists keep
	// working.
	require.NoError(t, mgr.Reconciler().DirectPlay("https://youtu.be/abc12345678"))
	assert.Equal(t, 1, mgr.History().Len())
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	mgr, err := NewManager(testConfig())
	require.NoError(t, err)

	mgr.Close()
	mgr.Close()
}
