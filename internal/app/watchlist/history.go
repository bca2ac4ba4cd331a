package watchlist

import (
	"sync"

	"github.com/tongbarn/tube/internal/domain/video"
	"github.com/tongbarn/tube/internal/infra/store"
)

// History is the most-recently-played-first watch history, capped at a fixed
// maximum length.
type History struct {
	mu    sync.RWMutex
	store store.Store
	items []video.Ref
	cap   int
}

// NewHistory hydrates the history from the store. A non-positive cap falls
// back to DefaultHistoryCap.
func NewHistory(s store.Store, maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultHistoryCap
	}
	h := &History{
		store: s,
		items: load(s, HistoryKey),
		cap:   maxEntries,
	}
	// A previously stored list may exceed a newly lowered cap.
	if len(h.items) > h.cap {
		h.items = h.items[:h.cap]
	}
	return h
}

// Add inserts v at the front. An existing entry with the same ID is moved to
// the front rather than duplicated. Beyond the cap the oldest entry is
// evicted.
func (h *History) Add(v video.Ref) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items, _ = removeByID(h.items, v.ID)
	h.items = append([]video.Ref{v}, h.items...)
	if len(h.items) > h.cap {
		h.items = h.items[:h.cap]
	}
	persist(h.store, HistoryKey, h.items)
}

// Remove deletes the entry with the given ID, if present.
func (h *History) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var removed bool
	if h.items, removed = removeByID(h.items, id); removed {
		persist(h.store, HistoryKey, h.items)
	}
}

// Clear empties the history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = nil
	persist(h.store, HistoryKey, h.items)
}

// Get returns the entry with the given ID.
func (h *History) Get(id string) (video.Ref, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, v := range h.items {
		if v.ID == id {
			return v, true
		}
	}
	return video.Ref{}, false
}

// Items returns a copy of the history, most recent first.
func (h *History) Items() []video.Ref {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]video.Ref, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}
