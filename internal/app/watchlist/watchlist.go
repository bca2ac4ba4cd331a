// Package watchlist provides the persistent History and Queue list stores.
//
// Both lists deduplicate by video ID: re-adding an existing ID moves the
// entry to its canonical position instead of duplicating it. Mutations
// persist best-effort; a failed write is logged and never surfaced to the
// caller, so losing durability cannot corrupt the in-memory session.
package watchlist

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/tongbarn/tube/internal/domain/video"
	"github.com/tongbarn/tube/internal/infra/store"
)

// Storage keys. These match the original browser-store entries.
const (
	HistoryKey = "tongbarntube-history"
	QueueKey   = "tongbarntube-queue"
)

// DefaultHistoryCap is the maximum history length before oldest-entry
// eviction.
const DefaultHistoryCap = 50

// load hydrates a list from the store. Missing or corrupt entries degrade to
// an empty list.
func load(s store.Store, key string) []video.Ref {
	var items []video.Ref
	if err := s.GetJSON(key, &items); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zlog.Warn().Err(err).Str("key", key).Msg("watchlist: discarding unreadable stored list")
		}
		return nil
	}
	return items
}

// persist writes a list back to the store, logging failures.
func persist(s store.Store, key string, items []video.Ref) {
	if err := s.PutJSON(key, items); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("watchlist: failed to persist list")
	}
}

// removeByID returns items without the entry whose ID matches, and whether an
// entry was removed.
func removeByID(items []video.Ref, id string) ([]video.Ref, bool) {
	for i, v := range items {
		if v.ID == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
