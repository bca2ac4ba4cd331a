package watchlist

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/tongbarn/tube/internal/domain/video"
	"github.com/tongbarn/tube/internal/infra/store"
)

// ErrBadIndex is returned by Reorder for out-of-range positions.
var ErrBadIndex = errors.New("queue index out of range")

// Queue is the user-curated play-next list, consumed in FIFO order and
// reorderable.
type Queue struct {
	mu    sync.RWMutex
	store store.Store
	items []video.Ref
}

// NewQueue hydrates the queue from the store.
func NewQueue(s store.Store) *Queue {
	return &Queue{
		store: s,
		items: load(s, QueueKey),
	}
}

// Add appends v to the back. An existing entry with the same ID is moved to
// the back rather than duplicated.
func (q *Queue) Add(v video.Ref) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items, _ = removeByID(q.items, v.ID)
	q.items = append(q.items, v)
	persist(q.store, QueueKey, q.items)
}

// Remove deletes the entry with the given ID, if present.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var removed bool
	if q.items, removed = removeByID(q.items, id); removed {
		persist(q.store, QueueKey, q.items)
	}
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = nil
	persist(q.store, QueueKey, q.items)
}

// Reorder moves the entry at from to position to.
func (q *Queue) Reorder(from, to int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if from < 0 || from >= len(q.items) || to < 0 || to >= len(q.items) {
		return ErrBadIndex
	}
	if from == to {
		return nil
	}

	moved := q.items[from]
	q.items = append(q.items[:from], q.items[from+1:]...)
	q.items = append(q.items[:to], append([]video.Ref{moved}, q.items[to:]...)...)
	persist(q.store, QueueKey, q.items)
	return nil
}

// ConsumeNext pops and returns the front entry, false when the queue is
// empty.
func (q *Queue) ConsumeNext() (video.Ref, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return video.Ref{}, false
	}
	next := q.items[0]
	q.items = q.items[1:]
	persist(q.store, QueueKey, q.items)
	return next, true
}

// Get returns the entry with the given ID.
func (q *Queue) Get(id string) (video.Ref, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, v := range q.items {
		if v.ID == id {
			return v, true
		}
	}
	return video.Ref{}, false
}

// Items returns a copy of the queue in consumption order.
func (q *Queue) Items() []video.Ref {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make([]video.Ref, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of entries.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}
