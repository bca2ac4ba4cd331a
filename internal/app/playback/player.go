package playback

// PlayerState mirrors the embedded widget's state-change values.
type PlayerState int

const (
	PlayerUnstarted PlayerState = iota
	PlayerPlaying
	PlayerPaused
	PlayerBuffering
	PlayerEnded
)

// String returns the string representation of the player state.
func (s PlayerState) String() string {
	switch s {
	case PlayerUnstarted:
		return "unstarted"
	case PlayerPlaying:
		return "playing"
	case PlayerPaused:
		return "paused"
	case PlayerBuffering:
		return "buffering"
	case PlayerEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PlayerEventType distinguishes player event kinds.
type PlayerEventType int

const (
	// PlayerEventStateChange reports a widget state transition.
	PlayerEventStateChange PlayerEventType = iota
	// PlayerEventActiveVideoChanged reports an autonomous advance to a new
	// video (native playlist auto-advance) that was not requested via Load.
	PlayerEventActiveVideoChanged
)

// PlayerEvent is an asynchronous notification from the player.
type PlayerEvent struct {
	Type    PlayerEventType
	State   PlayerState // For PlayerEventStateChange
	VideoID string      // For PlayerEventActiveVideoChanged
}

// Player wraps the third-party embeddable video widget. It is inherently
// asynchronous and stateful: Load completion is observed only via subsequent
// events, and the reported playlist id/index can lag reality immediately
// after a Load. Implementations must never block and must tolerate calls
// after initialization failure by no-op-ing.
type Player interface {
	// Load begins playback of a video, optionally within a playlist context.
	Load(videoID, playlistID string)
	// LoadPlaylist begins playback inside a playlist at the given index,
	// leaving video resolution to the playlist engine.
	LoadPlaylist(playlistID string, index int)
	// Pause stops playback without unloading.
	Pause()
	// CurrentPlaylistID reports the active playlist, best-effort.
	CurrentPlaylistID() string
	// CurrentPlaylistIndex reports the position within the active playlist,
	// -1 when not in a playlist context.
	CurrentPlaylistIndex() int
	// Position reports elapsed and total duration of the current video.
	// A zero duration means unknown.
	Position() (elapsed, duration float64)
	// Events returns the player's event stream.
	Events() <-chan PlayerEvent
	// Close releases the player.
	Close()
}
