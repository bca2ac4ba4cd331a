package store

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v4"
)

// Badger is a badger-backed Store. Values are stored as raw bytes; JSON
// encoding happens at this layer.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger store at path.
func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store")
	}
	return &Badger{db: db}, nil
}

func (s *Badger) get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read key")
	}
	return out, nil
}

// GetJSON implements Store.
func (s *Badger) GetJSON(key string, out any) error {
	buf, err := s.get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return errors.WithDetail(ErrCorrupt, err.Error())
	}
	return nil
}

// PutJSON implements Store.
func (s *Badger) PutJSON(key string, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal value")
	}
	return s.put(key, buf)
}

// GetString implements Store.
func (s *Badger) GetString(key string) (string, bool) {
	buf, err := s.get(key)
	if err != nil {
		return "", false
	}
	return string(buf), true
}

// PutString implements Store.
func (s *Badger) PutString(key, value string) error {
	return s.put(key, []byte(value))
}

func (s *Badger) put(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	return errors.Wrap(err, "failed to write key")
}

// Delete implements Store.
func (s *Badger) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return errors.Wrap(err, "failed to delete key")
}

// Close implements Store.
func (s *Badger) Close() error {
	return s.db.Close()
}
