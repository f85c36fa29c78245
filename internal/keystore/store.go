// Package keystore persists exactly one wallet record in encrypted secure storage.
package keystore

import (
	"sync"
)

// SecureStore is a platform key-value vault. GetItem reports ok=false for a missing key.
type SecureStore interface {
	SetItem(key, value string) error
	GetItem(key string) (value string, ok bool, err error)
	DeleteItem(key string) error
}

// MemoryStore keeps items in memory. Fault hooks let tests simulate storage failures.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]string

	// FailSet, FailGet and FailDelete return an error for the given key when non-nil.
	FailSet    func(key string) error
	FailGet    func(key string) error
	FailDelete func(key string) error
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		if err := s.FailSet(key); err != nil {
			return err
		}
	}
	s.items[key] = value
	return nil
}

func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailGet != nil {
		if err := s.FailGet(key); err != nil {
			return "", false, err
		}
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStore) DeleteItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete != nil {
		if err := s.FailDelete(key); err != nil {
			return err
		}
	}
	delete(s.items, key)
	return nil
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
