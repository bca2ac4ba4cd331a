package playback

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/tongbarn/tube/internal/app/watchlist"
	"github.com/tongbarn/tube/internal/domain/video"
)

// Errors
var (
	ErrNoVideoID = errors.New("no video id in input")
	ErrNotFound  = errors.New("video not found in list")
	ErrClosed    = errors.New("reconciler is closed")
)

// Config holds reconciler configuration.
type Config struct {
	WatchdogInterval  time.Duration // Near-end poll period
	WatchdogThreshold time.Duration // Remaining time that counts as "near end"
}

// DefaultConfig returns the watchdog timings used by the original player
// widget wrapper.
func DefaultConfig() Config {
	return Config{
		WatchdogInterval:  100 * time.Millisecond,
		WatchdogThreshold: 300 * time.Millisecond,
	}
}

// Reconciler owns the decision of "what video should be showing and in what
// playlist context". It arbitrates between three sources of truth: the
// player's own playlist state, the user-managed queue, and the resume
// checkpoint of a playlist interrupted by the queue.
//
// All state is session-scoped: construct one Reconciler per watch session and
// Close it when the session ends.
type Reconciler struct {
	mu sync.Mutex

	player  Player
	queue   *watchlist.Queue
	history *watchlist.History

	state      State
	location   Location
	sticky     string      // best-effort remembered playlist id
	checkpoint *Checkpoint // at most one at a time

	// endSeen suppresses duplicate end signals: the near-end watchdog and
	// the player's own ENDED event can both fire for the same video, and the
	// ENDED event may land after the queue's next video was already loaded.
	// Cleared when the player reports the next video actually playing.
	endSeen bool

	watchdogCancel func()

	config   Config
	updateCh chan Update
	closed   bool
}

// New creates a reconciler over the given player and lists.
func New(player Player, queue *watchlist.Queue, history *watchlist.History, config Config) *Reconciler {
	if config.WatchdogInterval <= 0 {
		config.WatchdogInterval = DefaultConfig().WatchdogInterval
	}
	if config.WatchdogThreshold <= 0 {
		config.WatchdogThreshold = DefaultConfig().WatchdogThreshold
	}
	return &Reconciler{
		player:   player,
		queue:    queue,
		history:  history,
		state:    StateIdle,
		location: Location{Index: -1},
		config:   config,
		updateCh: make(chan Update, 16),
	}
}

// Updates returns the outbound update channel. It is closed by Close.
func (r *Reconciler) Updates() <-chan Update {
	return r.updateCh
}

// Location returns the current location.
func (r *Reconciler) Location() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// State returns the current session state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// StickyPlaylistID returns the advisory sticky playlist context.
func (r *Reconciler) StickyPlaylistID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sticky
}

// HasCheckpoint reports whether a playlist resume checkpoint is pending.
func (r *Reconciler) HasCheckpoint() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checkpoint != nil
}

// QueueLen returns the number of queued videos.
func (r *Reconciler) QueueLen() int {
	return r.queue.Len()
}

// DirectPlay extracts a video id from pasted text and plays it. When the
// input also carries a playlist id the sticky context is set to it; otherwise
// the sticky context is cleared. Invalid input returns ErrNoVideoID with no
// state change.
func (r *Reconciler) DirectPlay(raw string) error {
	id, ok := video.ExtractVideoID(raw)
	if !ok {
		return ErrNoVideoID
	}
	playlistID, _ := video.ExtractPlaylistID(raw)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	r.sticky = playlistID
	r.loadLocked(video.Ref{ID: id, PlaylistID: playlistID, AddedAt: time.Now()}, false)
	return nil
}

// SelectFromHistory plays an entry from the history panel.
func (r *Reconciler) SelectFromHistory(id string) error {
	ref, ok := r.history.Get(id)
	if !ok {
		return ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	r.sticky = ref.PlaylistID
	ref.AddedAt = time.Now()
	r.loadLocked(ref, false)
	return nil
}

// SelectFromQueue plays an entry from the queue panel, removing it from the
// queue first.
func (r *Reconciler) SelectFromQueue(id string) error {
	ref, ok := r.queue.Get(id)
	if !ok {
		return ErrNotFound
	}
	r.queue.Remove(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	r.sticky = ref.PlaylistID
	ref.AddedAt = time.Now()
	r.loadLocked(ref, true)
	r.sendLocked(Update{Type: UpdateQueueChanged, QueueLen: r.queue.Len()})
	return nil
}

// Enqueue extracts a video id from pasted text and appends it to the queue.
func (r *Reconciler) Enqueue(raw string) (video.Ref, error) {
	id, ok := video.ExtractVideoID(raw)
	if !ok {
		return video.Ref{}, ErrNoVideoID
	}
	playlistID, _ := video.ExtractPlaylistID(raw)

	ref := video.Ref{ID: id, PlaylistID: playlistID, AddedAt: time.Now()}
	r.queue.Add(ref)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendLocked(Update{Type: UpdateQueueChanged, QueueLen: r.queue.Len()})
	return ref, nil
}

// OnVideoEnded handles a natural end of the current video, from either the
// player's ENDED event or the near-end watchdog.
func (r *Reconciler) OnVideoEnded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.location.VideoID == "" {
		return
	}
	if r.endSeen {
		// The watchdog already handled an end; this late ENDED event is the
		// race we defended against.
		return
	}
	r.endSeen = true
	r.advanceLocked()
}

// OnVideoPlaying handles the player reporting active playback. It re-arms
// end handling for the video now playing.
func (r *Reconciler) OnVideoPlaying() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endSeen = false
}

// OnAdapterAdvance handles the player autonomously advancing to a new video,
// e.g. native playlist auto-advance.
func (r *Reconciler) OnAdapterAdvance(newID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || newID == "" || newID == r.location.VideoID {
		return
	}

	if r.queue.Len() > 0 {
		// Hijack: override whatever the player advanced to with the queue's
		// next video. Any trailing ENDED for the video that triggered the
		// advance is already handled.
		zlog.Debug().Str("native", newID).Msg("playback: hijacking native advance for queue")
		r.endSeen = true
		r.advanceLocked()
		return
	}

	// Queue empty: the player's choice is ground truth. Sync location,
	// history and sticky context to it.
	playlistID := r.player.CurrentPlaylistID()
	if playlistID != "" {
		r.sticky = playlistID
	} else {
		playlistID = r.sticky
	}
	r.location = Location{VideoID: newID, PlaylistID: playlistID, Index: r.player.CurrentPlaylistIndex()}
	if playlistID != "" {
		r.state = StatePlayingPlaylist
	} else {
		r.state = StatePlayingStandalone
	}
	r.endSeen = false
	r.history.Add(video.Ref{ID: newID, PlaylistID: playlistID, AddedAt: time.Now()})
	r.armWatchdogLocked()
	r.sendLocked(Update{Type: UpdateLocationChanged, Location: r.location, State: r.state})
}

// advanceLocked decides what plays after the current video: next queue item,
// the interrupted playlist's checkpoint, or nothing.
func (r *Reconciler) advanceLocked() {
	if next, ok := r.queue.ConsumeNext(); ok {
		// Interrupting an active playlist for the first time saves a resume
		// checkpoint.
		if playlistID := r.resolvePlaylistIDLocked(); playlistID != "" && r.checkpoint == nil {
			r.checkpoint = &Checkpoint{PlaylistID: playlistID, Index: r.player.CurrentPlaylistIndex()}
			zlog.Debug().Str("playlist", playlistID).Int("index", r.checkpoint.Index).
				Msg("playback: saved playlist resume checkpoint")
		}
		r.sticky = next.PlaylistID
		r.loadLocked(next, true)
		r.sendLocked(Update{Type: UpdateQueueChanged, QueueLen: r.queue.Len()})
		return
	}

	if cp := r.checkpoint; cp != nil {
		// Queue drained: fall back into the interrupted playlist one past
		// the saved position. The next video id is unknown here; the
		// playlist engine resolves index+1.
		r.checkpoint = nil
		r.sticky = cp.PlaylistID
		r.state = StatePlayingPlaylist
		r.location = Location{VideoID: r.location.VideoID, PlaylistID: cp.PlaylistID, Index: cp.Index + 1}
		zlog.Debug().Str("playlist", cp.PlaylistID).Int("index", cp.Index+1).
			Msg("playback: resuming interrupted playlist")
		r.player.LoadPlaylist(cp.PlaylistID, cp.Index+1)
		r.armWatchdogLocked()
		r.sendLocked(Update{Type: UpdateLocationChanged, Location: r.location, State: r.state})
		return
	}

	// Queue empty, no checkpoint: stay passive and let the player's native
	// auto-advance (if any) govern.
}

// loadLocked commands the player and updates location, state and history.
// detour marks queue-driven playback.
func (r *Reconciler) loadLocked(ref video.Ref, detour bool) {
	playlistID := ref.PlaylistID
	r.location = Location{VideoID: ref.ID, PlaylistID: playlistID, Index: -1}

	switch {
	case detour:
		r.state = StatePlayingQueueDetour
	case playlistID != "":
		r.state = StatePlayingPlaylist
	default:
		r.state = StatePlayingStandalone
	}

	r.history.Add(ref)
	r.player.Load(ref.ID, playlistID)
	r.armWatchdogLocked()
	r.sendLocked(Update{Type: UpdateLocationChanged, Location: r.location, State: r.state})
}

// resolvePlaylistIDLocked resolves the active playlist id from competing
// signals. Precedence: current location > checkpoint > sticky context >
// player-reported > none. The player's own report lags a Load by one event
// tick, which makes it the least trustworthy signal right after a
// transition.
func (r *Reconciler) resolvePlaylistIDLocked() string {
	if r.location.PlaylistID != "" {
		return r.location.PlaylistID
	}
	if r.checkpoint != nil {
		return r.checkpoint.PlaylistID
	}
	if r.sticky != "" {
		return r.sticky
	}
	return r.player.CurrentPlaylistID()
}

// armWatchdogLocked restarts the near-end watchdog for the video being
// loaded, cancelling any previous one.
func (r *Reconciler) armWatchdogLocked() {
	if r.watchdogCancel != nil {
		r.watchdogCancel()
		r.watchdogCancel = nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.watchdogCancel = cancel
	go r.runWatchdog(ctx)
}

// runWatchdog polls playback position and intercepts the natural end of the
// video while the queue is non-empty. Waiting for the player's own ENDED
// event is too late: the native playlist engine may already have started
// advancing, flashing the wrong video before the queue's video takes over.
// The watchdog pauses first and defers the advance decision by one turn so
// the pause takes effect before the next Load.
func (r *Reconciler) runWatchdog(ctx context.Context) {
	ticker := time.NewTicker(r.config.WatchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.queue.Len() == 0 {
				continue
			}
			elapsed, duration := r.player.Position()
			if duration <= 0 || duration-elapsed >= r.config.WatchdogThreshold.Seconds() {
				continue
			}

			r.player.Pause()
			go r.OnVideoEnded()
			return
		}
	}
}

// Close tears down the reconciler: the watchdog is cancelled and the update
// channel closed. Playback commands after Close are rejected.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.watchdogCancel != nil {
		r.watchdogCancel()
		r.watchdogCancel = nil
	}
	r.sendLocked(Update{Type: UpdateSessionClosed, Location: r.location, State: r.state})
	close(r.updateCh)
}

// sendLocked sends an update without blocking. Must be called with lock
// held.
func (r *Reconciler) sendLocked(u Update) {
	if r.closed && u.Type != UpdateSessionClosed {
		return
	}
	select {
	case r.updateCh <- u:
	default:
		// Channel full, drop the update.
	}
}
