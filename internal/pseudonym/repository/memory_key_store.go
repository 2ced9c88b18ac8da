// Package repository implements the key store and data source collaborators: in-memory
// and demo stand-ins, environment and HKDF-derived key stores, and database-backed field
// key persistence and field value sources for PostgreSQL and MySQL.
package repository

import (
	"context"
	"sync"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// MemoryKeyStore serves field keys held in process memory. It is safe for concurrent use,
// including Close racing with lookups.
type MemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]domain.SecretKey
}

// NewMemoryKeyStore validates and copies keys. Every field must be a valid field
// identifier and every key at least domain.MinKeySize bytes.
func NewMemoryKeyStore(keys map[string][]byte) (*MemoryKeyStore, error) {
	store := &MemoryKeyStore{keys: make(map[string]domain.SecretKey, len(keys))}
	for field, material := range keys {
		if err := domain.ValidateField(field); err != nil {
			return nil, err
		}
		key, err := domain.NewSecretKey(material)
		if err != nil {
			return nil, err
		}
		store.keys[field] = key
	}
	return store, nil
}

// GetKey returns a copy of the field's key, or domain.ErrUnknownField.
func (s *MemoryKeyStore) GetKey(ctx context.Context, field string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[field]
	if !ok {
		return nil, domain.ErrUnknownField
	}
	return key.Expose(), nil
}

// Fields returns the number of fields the store knows.
func (s *MemoryKeyStore) Fields() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Close zeroes every key held by the store. Later lookups fail with
// domain.ErrUnknownField.
func (s *MemoryKeyStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for field, key := range s.keys {
		key.Destroy()
		delete(s.keys, field)
	}
	return nil
}
