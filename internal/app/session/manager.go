// Package session wires the application components together for one run.
package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/tongbarn/tube/internal/app/i18n"
	"github.com/tongbarn/tube/internal/app/playback"
	"github.com/tongbarn/tube/internal/app/watchlist"
	"github.com/tongbarn/tube/internal/infra/config"
	"github.com/tongbarn/tube/internal/infra/store"
	"github.com/tongbarn/tube/internal/infra/ytembed"
)

// Manager owns the store, the lists, the player and the reconciler, and
// pumps player events into the reconciler for the lifetime of the session.
type Manager struct {
	sessionID string

	store      store.Store
	history    *watchlist.History
	queue      *watchlist.Queue
	translator *i18n.Translator
	player     playback.Player
	reconciler *playback.Reconciler

	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewManager builds a session from the configuration. A player that fails to
// initialize is replaced with a silent no-op so the lists remain usable.
func NewManager(cfg *config.Config) (*Manager, error) {
	s, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store")
	}

	sessionID := uuid.New().String()

	player, err := ytembed.NewFromSettings(cfg.Player.Type, cfg.Player.Settings)
	if err != nil {
		zlog.Error().Err(err).Str("session_id", sessionID).
			Msg("player initialization failed, playback disabled")
		player = noopPlayer{}
	}

	queue := watchlist.NewQueue(s)
	history := watchlist.NewHistory(s, cfg.History.MaxEntries)
	reconciler := playback.New(player, queue, history, playback.Config{
		WatchdogInterval:  cfg.Playback.WatchdogInterval(),
		WatchdogThreshold: cfg.Playback.WatchdogThreshold(),
	})

	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		sessionID:  sessionID,
		store:      s,
		history:    history,
		queue:      queue,
		translator: i18n.New(s, cfg.Language),
		player:     player,
		reconciler: reconciler,
		cancel:     cancel,
	}

	go m.eventLoop(ctx)

	zlog.Info().Str("session_id", sessionID).Str("backend", cfg.Store.Backend).Msg("session started")
	return m, nil
}

// eventLoop forwards player events to the reconciler.
func (m *Manager) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-m.player.Events():
			if !ok {
				return
			}
			m.handlePlayerEvent(event)
		}
	}
}

func (m *Manager) handlePlayerEvent(event playback.PlayerEvent) {
	switch event.Type {
	case playback.PlayerEventStateChange:
		zlog.Debug().Str("session_id", m.sessionID).Stringer("state", event.State).Msg("player state change")
		switch event.State {
		case playback.PlayerEnded:
			m.reconciler.OnVideoEnded()
		case playback.PlayerPlaying:
			m.reconciler.OnVideoPlaying()
		}

	case playback.PlayerEventActiveVideoChanged:
		zlog.Debug().Str("session_id", m.sessionID).Str("video_id", event.VideoID).Msg("player advanced")
		m.reconciler.OnAdapterAdvance(event.VideoID)
	}
}

// Reconciler returns the playback reconciler.
func (m *Manager) Reconciler() *playback.Reconciler {
	return m.reconciler
}

// History returns the watch history.
func (m *Manager) History() *watchlist.History {
	return m.history
}

// Queue returns the play queue.
func (m *Manager) Queue() *watchlist.Queue {
	return m.queue
}

// Translator returns the active translator.
func (m *Manager) Translator() *i18n.Translator {
	return m.translator
}

// SessionID returns the session identifier used for log correlation.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Close tears down the reconciler, the player, the event loop and the store.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.reconciler.Close()
		m.player.Close()
		m.cancel()
		if err := m.store.Close(); err != nil {
			zlog.Warn().Err(err).Msg("failed to close store")
		}
		zlog.Info().Str("session_id", m.sessionID).Msg("session closed")
	})
}

// noopPlayer stands in when the real player cannot be constructed. Every
// command is accepted and ignored, and no events are ever produced.
type noopPlayer struct{}

func (noopPlayer) Load(videoID, playlistID string)       {}
func (noopPlayer) LoadPlaylist(playlistID string, _ int) {}
func (noopPlayer) Pause()                                {}
func (noopPlayer) CurrentPlaylistID() string             { return "" }
func (noopPlayer) CurrentPlaylistIndex() int             { return -1 }
func (noopPlayer) Position() (elapsed, duration float64) { return 0, 0 }
func (noopPlayer) Events() <-chan playback.PlayerEvent   { return nil }
func (noopPlayer) Close()                                {}
