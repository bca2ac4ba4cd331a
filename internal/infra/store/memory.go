package store

import (
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
)

// Memory is an in-memory Store used by tests and the memory backend.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// GetJSON implements Store.
func (s *Memory) GetJSON(key string, out any) error {
	s.mu.RLock()
	buf, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return errors.WithDetail(ErrCorrupt, err.Error())
	}
	return nil
}

// PutJSON implements Store.
func (s *Memory) PutJSON(key string, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal value")
	}

	s.mu.Lock()
	s.data[key] = buf
	s.mu.Unlock()
	return nil
}

// GetString implements Store.
func (s *Memory) GetString(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf, ok := s.data[key]
	if !ok {
		return "", false
	}
	return string(buf), true
}

// PutString implements Store.
func (s *Memory) PutString(key, value string) error {
	s.mu.Lock()
	s.data[key] = []byte(value)
	s.mu.Unlock()
	return nil
}

// Delete implements Store.
func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Close implements Store.
func (s *Memory) Close() error {
	return nil
}

// PutRaw stores raw bytes at key. Used by tests to simulate corrupt entries.
func (s *Memory) PutRaw(key string, value []byte) {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
}
