// Package ytembed provides the concrete player adapter over the embeddable
// YouTube widget surface, plus video metadata lookup.
//
// The widget itself runs out of process; this adapter reproduces its
// observable contract for the reconciler: loads are asynchronous, reported
// playlist state lags a Load by one event tick, and a playlist context
// auto-advances natively at end of video.
package ytembed

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/tongbarn/tube/internal/app/playback"
)

// Config holds player configuration.
type Config struct {
	// DefaultDuration is the assumed length of a video, driving the
	// emulated end-of-video timing.
	DefaultDuration time.Duration
	// Advance enables native playlist auto-advance at end of video.
	Advance bool
}

// Player implements playback.Player.
type Player struct {
	mu sync.Mutex

	videoID    string
	playlistID string
	// reported* lag the actual values by one event tick, like the real
	// widget's getPlaylistId/getPlaylistIndex right after a load.
	reportedPlaylistID    string
	reportedPlaylistIndex int

	playlistIndex int
	startedAt     time.Time
	pausedAt      time.Time
	pausedTotal   time.Duration
	duration      time.Duration
	playing       bool

	timerCancel func()

	config Config
	events chan playback.PlayerEvent

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a player.
func New(config Config) *Player {
	if config.DefaultDuration <= 0 {
		config.DefaultDuration = 4 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		playlistIndex:         -1,
		reportedPlaylistIndex: -1,
		config:                config,
		events:                make(chan playback.PlayerEvent, 16),
		ctx:                   ctx,
		cancel:                cancel,
	}
}

// Events implements playback.Player.
func (p *Player) Events() <-chan playback.PlayerEvent {
	return p.events
}

// Load implements playback.Player.
func (p *Player) Load(videoID, playlistID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	index := -1
	if playlistID != "" {
		index = 0
	}
	p.beginLocked(videoID, playlistID, index)
}

// LoadPlaylist implements playback.Player. The video at the given index is
// resolved by the playlist engine; the emulation synthesizes a stable id per
// (playlist, index).
func (p *Player) LoadPlaylist(playlistID string, index int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.beginLocked(playlistVideoID(playlistID, index), playlistID, index)
}

// beginLocked starts playback of a video. Must be called with lock held.
func (p *Player) beginLocked(videoID, playlistID string, index int) {
	if p.timerCancel != nil {
		p.timerCancel()
		p.timerCancel = nil
	}

	p.videoID = videoID
	p.playlistID = playlistID
	p.playlistIndex = index
	p.startedAt = time.Now()
	p.pausedAt = time.Time{}
	p.pausedTotal = 0
	p.duration = p.config.DefaultDuration
	p.playing = true

	p.send(playback.PlayerEvent{Type: playback.PlayerEventStateChange, State: playback.PlayerBuffering})
	p.send(playback.PlayerEvent{Type: playback.PlayerEventStateChange, State: playback.PlayerPlaying})

	// Reported playlist state catches up only after the events above, one
	// tick behind the load.
	p.reportedPlaylistID = playlistID
	p.reportedPlaylistIndex = index

	p.timerCancel = p.startWallClockTimer(p.duration, p.onVideoEnd)
}

// Pause implements playback.Player.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return
	}
	if p.timerCancel != nil {
		p.timerCancel()
		p.timerCancel = nil
	}
	p.playing = false
	p.pausedAt = time.Now()
	p.send(playback.PlayerEvent{Type: playback.PlayerEventStateChange, State: playback.PlayerPaused})
}

// Play resumes paused playback.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing || p.videoID == "" {
		return
	}
	if !p.pausedAt.IsZero() {
		p.pausedTotal += time.Since(p.pausedAt)
		p.pausedAt = time.Time{}
	}
	p.playing = true
	p.send(playback.PlayerEvent{Type: playback.PlayerEventStateChange, State: playback.PlayerPlaying})

	remaining := p.duration - p.elapsedLocked()
	if remaining <= 0 {
		p.onVideoEndLocked()
		return
	}
	p.timerCancel = p.startWallClockTimer(remaining, p.onVideoEnd)
}

// CurrentPlaylistID implements playback.Player.
func (p *Player) CurrentPlaylistID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reportedPlaylistID
}

// CurrentPlaylistIndex implements playback.Player.
func (p *Player) CurrentPlaylistIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reportedPlaylistIndex
}

// Position implements playback.Player.
func (p *Player) Position() (float64, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.videoID == "" {
		return 0, 0
	}
	return p.elapsedLocked().Seconds(), p.duration.Seconds()
}

func (p *Player) elapsedLocked() time.Duration {
	if p.startedAt.IsZero() {
		return 0
	}
	elapsed := time.Since(p.startedAt) - p.pausedTotal
	if !p.pausedAt.IsZero() {
		elapsed -= time.Since(p.pausedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// CurrentVideoID returns the video the widget believes is active.
func (p *Player) CurrentVideoID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.videoID
}

// onVideoEnd fires when the emulated video reaches its natural end.
func (p *Player) onVideoEnd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onVideoEndLocked()
}

func (p *Player) onVideoEndLocked() {
	if p.videoID == "" {
		return
	}
	p.playing = false
	p.timerCancel = nil
	p.send(playback.PlayerEvent{Type: playback.PlayerEventStateChange, State: playback.PlayerEnded})

	// Native playlist auto-advance: the widget moves on by itself without
	// being told to, announcing the new video afterwards.
	if p.config.Advance && p.playlistID != "" {
		next := p.playlistIndex + 1
		videoID := playlistVideoID(p.playlistID, next)
		zlog.Debug().Str("playlist", p.playlistID).Int("index", next).
			Msg("ytembed: native playlist auto-advance")
		p.beginLocked(videoID, p.playlistID, next)
		p.send(playback.PlayerEvent{Type: playback.PlayerEventActiveVideoChanged, VideoID: videoID})
	}
}

// Close implements playback.Player.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timerCancel != nil {
		p.timerCancel()
		p.timerCancel = nil
	}
	p.cancel()
	p.videoID = ""
	p.playing = false
}

// send delivers an event without blocking.
func (p *Player) send(e playback.PlayerEvent) {
	select {
	case p.events <- e:
	case <-p.ctx.Done():
	default:
		// Channel full, drop.
	}
}

// startWallClockTimer triggers callback after duration using wall clock
// time, returning a cancel function. Polling the wall clock avoids drift
// between the monotonic clock and real time over long videos.
func (p *Player) startWallClockTimer(duration time.Duration, callback func()) func() {
	ctx, cancel := context.WithCancel(p.ctx)

	go func() {
		endTime := time.Now().Add(duration)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !time.Now().Before(endTime) {
					callback()
					return
				}
			}
		}
	}()

	return cancel
}

// playlistVideoID synthesizes the stable 11-char id the playlist engine
// resolves for a given position.
func playlistVideoID(playlistID string, index int) string {
	sum := sha256.Sum256([]byte(playlistID + "#" + strconv.Itoa(index)))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:11]
}
