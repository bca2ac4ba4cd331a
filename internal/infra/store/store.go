// Package store provides the durable key-value store backing the app's
// persisted lists and preferences.
package store

import (
	"github.com/cockroachdb/errors"
)

// Errors
var (
	ErrNotFound = errors.New("key not found")
	ErrCorrupt  = errors.New("stored value is corrupt")
)

// Store is a small key-value store with JSON and string values. Readers must
// tolerate absent or malformed entries; writers are best-effort.
type Store interface {
	// GetJSON unmarshals the value at key into out. Returns ErrNotFound when
	// the key is absent and ErrCorrupt when the stored bytes do not parse.
	GetJSON(key string, out any) error
	// PutJSON marshals v and stores it at key.
	PutJSON(key string, v any) error
	// GetString returns the string value at key, false when absent.
	GetString(key string) (string, bool)
	// PutString stores a string value at key.
	PutString(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases the underlying resources.
	Close() error
}

// Open creates a Store for the given backend. An empty backend defaults to
// badger.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "badger", "":
		return OpenBadger(path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, errors.Newf("unknown store backend: %s", backend)
	}
}
