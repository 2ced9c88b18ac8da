package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldKey is the persisted form of a field's secret key.
//
// WrappedKey holds the key material encrypted by the configured KMS keeper; the plaintext
// key is never stored.
type FieldKey struct {
	ID         uuid.UUID
	Field      string
	WrappedKey []byte
	CreatedAt  time.Time
}
