package repository

import (
	"context"
	"database/sql"

	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// FieldKeyReader looks up persisted field keys.
type FieldKeyReader interface {
	GetByField(ctx context.Context, field string) (*domain.FieldKey, error)
}

// DatabaseKeyStore serves field keys stored wrapped in the field_keys table and unwraps
// them with a KMS keeper on every lookup. Plaintext keys are never cached.
type DatabaseKeyStore struct {
	repo   FieldKeyReader
	keeper domain.KMSKeeper
}

// NewDatabaseKeyStore creates a new DatabaseKeyStore.
func NewDatabaseKeyStore(repo FieldKeyReader, keeper domain.KMSKeeper) *DatabaseKeyStore {
	return &DatabaseKeyStore{repo: repo, keeper: keeper}
}

// GetKey returns the unwrapped key of field, or domain.ErrUnknownField.
func (s *DatabaseKeyStore) GetKey(ctx context.Context, field string) ([]byte, error) {
	fieldKey, err := s.repo.GetByField(ctx, field)
	if err != nil {
		return nil, err
	}

	key, err := s.keeper.Decrypt(ctx, fieldKey.WrappedKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unwrap field key")
	}
	if len(key) < domain.MinKeySize {
		domain.Zero(key)
		return nil, domain.ErrInvalidKey
	}
	return key, nil
}

// scanStrings drains rows holding a single string column.
func scanStrings(rows *sql.Rows, scanMsg string) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.Wrap(err, scanMsg)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate rows")
	}
	return out, nil
}
