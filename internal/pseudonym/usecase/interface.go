// Package usecase orchestrates pseudonymization of whole fields: it resolves a field's key
// from a KeyStore (or generates a throwaway key), reads the field's identifiers from a
// DataSource, and maps them to pseudonyms. It also manages persistent field keys.
package usecase

import (
	"context"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	"github.com/allisson/pseudonymizer/internal/pseudonym/service"
)

// KeyStore resolves the persistent secret key of a field.
//
// Implementations fail with domain.ErrUnknownField for fields they do not know and never
// include the field name in the returned error.
type KeyStore interface {
	GetKey(ctx context.Context, field string) ([]byte, error)
}

// DataSource returns the raw identifiers of a field.
//
// Implementations fail with domain.ErrUnknownField for fields they do not know and never
// include the field name in the returned error.
type DataSource interface {
	GetValues(ctx context.Context, field string) ([]string, error)
}

// FieldKeyRepository persists wrapped field keys.
type FieldKeyRepository interface {
	Create(ctx context.Context, key *domain.FieldKey) error
	GetByField(ctx context.Context, field string) (*domain.FieldKey, error)
	ListFields(ctx context.Context) ([]string, error)
}

// PseudonymUseCase maps a field's identifiers to pseudonyms.
type PseudonymUseCase interface {
	// AnonymizeField reads every value of field from the DataSource and returns their
	// pseudonyms in the same order. With throwaway set the key is random and discarded, so
	// the result cannot be reproduced by any later call.
	AnonymizeField(ctx context.Context, field string, throwaway bool) ([]string, error)

	// AnonymizeValues applies the same key policy as AnonymizeField to caller-supplied values.
	AnonymizeValues(ctx context.Context, field string, values []string, throwaway bool) ([]string, error)

	// Pseudonymizer returns a Pseudonymizer bound to field's key, or to a throwaway key.
	Pseudonymizer(ctx context.Context, field string, throwaway bool) (*service.Pseudonymizer, error)
}

// FieldKeyUseCase manages persistent field keys.
type FieldKeyUseCase interface {
	// Create generates a random key for field, wraps it with the KMS keeper and stores it.
	// The returned record never carries the plaintext key.
	Create(ctx context.Context, field string) (*domain.FieldKey, error)

	// ListFields returns the names of the fields holding a stored key.
	ListFields(ctx context.Context) ([]string, error)
}
