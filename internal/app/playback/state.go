// Package playback provides the reconciler that decides what video should be
// showing and in which playlist context.
package playback

import "strconv"

// State represents the reconciler's view of the active watch session.
type State int

const (
	StateIdle               State = iota // Nothing loaded
	StatePlayingPlaylist                 // Playing inside a playlist context
	StatePlayingQueueDetour              // Playing a queue-driven detour
	StatePlayingStandalone               // Playing a bare video, no playlist
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlayingPlaylist:
		return "playing_playlist"
	case StatePlayingQueueDetour:
		return "playing_queue_detour"
	case StatePlayingStandalone:
		return "playing_standalone"
	default:
		return "unknown"
	}
}

// Checkpoint is the saved playlist position to resume once a queue-driven
// detour completes. At most one exists at a time and it is consumed exactly
// once.
type Checkpoint struct {
	PlaylistID string
	Index      int
}

// Location is the externally visible "current location": video id plus
// optional playlist context and resume index. It is the single source of
// truth handed to the player.
type Location struct {
	VideoID    string
	PlaylistID string
	Index      int // playlist resume position, -1 when unset
}

// Path renders the location as a navigable path.
func (l Location) Path() string {
	if l.VideoID == "" {
		return "/"
	}
	p := "/watch/" + l.VideoID
	sep := "?"
	if l.PlaylistID != "" {
		p += sep + "list=" + l.PlaylistID
		sep = "&"
	}
	if l.Index >= 0 {
		p += sep + "index=" + strconv.Itoa(l.Index)
	}
	return p
}
