package playback

// UpdateType represents a reconciler update type.
type UpdateType int

const (
	UpdateLocationChanged UpdateType = iota // Current location changed
	UpdateQueueChanged                     // Queue length changed
	UpdateSessionClosed                    // Session ended
)

// String returns the string representation of the update type.
func (u UpdateType) String() string {
	switch u {
	case UpdateLocationChanged:
		return "location_changed"
	case UpdateQueueChanged:
		return "queue_changed"
	case UpdateSessionClosed:
		return "session_closed"
	default:
		return "unknown"
	}
}

// Update is an outbound notification for the UI layer.
type Update struct {
	Type     UpdateType
	Location Location
	State    State
	QueueLen int
}
