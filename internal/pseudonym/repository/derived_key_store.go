package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

const derivedKeyInfoPrefix = "pseudonymizer/field/"

// DerivedKeyStore derives one key per known field from a single root secret with
// HKDF-SHA256 (info = "pseudonymizer/field/<field>"). Only the root secret needs to live
// in a vault; field keys are recomputed on demand and never stored.
type DerivedKeyStore struct {
	mu     sync.RWMutex
	root   domain.SecretKey
	fields map[string]struct{}
}

// NewDerivedKeyStore copies root and the list of fields it will serve.
func NewDerivedKeyStore(root []byte, fields []string) (*DerivedKeyStore, error) {
	key, err := domain.NewSecretKey(root)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if err := domain.ValidateField(f); err != nil {
			return nil, err
		}
		known[f] = struct{}{}
	}

	return &DerivedKeyStore{root: key, fields: known}, nil
}

// GetKey derives the field's key, or returns domain.ErrUnknownField. A closed store knows
// no fields.
func (s *DerivedKeyStore) GetKey(ctx context.Context, field string) ([]byte, error) {
	s.mu.RLock()
	if _, ok := s.fields[field]; !ok || s.root.IsZero() {
		s.mu.RUnlock()
		return nil, domain.ErrUnknownField
	}
	secret := s.root.Expose()
	s.mu.RUnlock()

	defer domain.Zero(secret)

	reader := hkdf.New(sha256.New, secret, nil, []byte(derivedKeyInfoPrefix+field))
	key := make([]byte, domain.GeneratedKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive field key: %w", err)
	}
	return key, nil
}

// Close zeroes the root secret.
func (s *DerivedKeyStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root.Destroy()
	return nil
}
