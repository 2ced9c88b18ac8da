package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/allisson/pseudonymizer/internal/database"
	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

const pgUniqueViolation = "23505"

// PostgreSQLFieldKeyRepository persists wrapped field keys in PostgreSQL using the native
// UUID type and BYTEA for the wrapped key. All methods honor a transaction carried in ctx
// via database.GetTx.
type PostgreSQLFieldKeyRepository struct {
	db *sql.DB
}

// NewPostgreSQLFieldKeyRepository creates a new PostgreSQLFieldKeyRepository.
func NewPostgreSQLFieldKeyRepository(db *sql.DB) *PostgreSQLFieldKeyRepository {
	return &PostgreSQLFieldKeyRepository{db: db}
}

// Create inserts a field key. A second key for the same field fails with
// domain.ErrFieldKeyAlreadyExists.
func (p *PostgreSQLFieldKeyRepository) Create(ctx context.Context, key *domain.FieldKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO field_keys (id, field, wrapped_key, created_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, key.ID, key.Field, key.WrappedKey, key.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return domain.ErrFieldKeyAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create field key")
	}
	return nil
}

// GetByField returns the field's key record, or domain.ErrUnknownField.
func (p *PostgreSQLFieldKeyRepository) GetByField(ctx context.Context, field string) (*domain.FieldKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, field, wrapped_key, created_at FROM field_keys WHERE field = $1`

	var key domain.FieldKey
	err := querier.QueryRowContext(ctx, query, field).Scan(
		&key.ID,
		&key.Field,
		&key.WrappedKey,
		&key.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnknownField
		}
		return nil, apperrors.Wrap(err, "failed to get field key")
	}
	return &key, nil
}

// ListFields returns the names of every field holding a key, sorted.
func (p *PostgreSQLFieldKeyRepository) ListFields(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, `SELECT field FROM field_keys ORDER BY field`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list field keys")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanStrings(rows, "failed to scan field key")
}
