// Package service provides the pseudonymization primitives: the keyed digest engine,
// truncation and encoding policy, the Pseudonymizer built on them, and the KMS service
// used to wrap persistent field keys.
package service

import (
	"context"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// DigestEngine computes a keyed digest of a message under a key bound at construction.
// Implementations must be safe for concurrent use and must not carry state between calls.
type DigestEngine interface {
	Sum(message string) ([]byte, error)
	Size() int
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (domain.KMSKeeper, error)
}
