package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/pseudonymizer/internal/database"
	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

const mysqlDuplicateEntry = 1062

// MySQLFieldKeyRepository persists wrapped field keys in MySQL, storing ids as
// BINARY(16) and the wrapped key as BLOB. All methods honor a transaction carried in ctx
// via database.GetTx.
type MySQLFieldKeyRepository struct {
	db *sql.DB
}

// NewMySQLFieldKeyRepository creates a new MySQLFieldKeyRepository.
func NewMySQLFieldKeyRepository(db *sql.DB) *MySQLFieldKeyRepository {
	return &MySQLFieldKeyRepository{db: db}
}

// Create inserts a field key. A second key for the same field fails with
// domain.ErrFieldKeyAlreadyExists.
func (m *MySQLFieldKeyRepository) Create(ctx context.Context, key *domain.FieldKey) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO field_keys (id, field, wrapped_key, created_at) VALUES (?, ?, ?, ?)`

	id, err := key.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal field key id")
	}

	_, err = querier.ExecContext(ctx, query, id, key.Field, key.WrappedKey, key.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.ErrFieldKeyAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create field key")
	}
	return nil
}

// GetByField returns the field's key record, or domain.ErrUnknownField.
func (m *MySQLFieldKeyRepository) GetByField(ctx context.Context, field string) (*domain.FieldKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, field, wrapped_key, created_at FROM field_keys WHERE field = ?`

	var key domain.FieldKey
	var id []byte
	err := querier.QueryRowContext(ctx, query, field).Scan(
		&id,
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

	if err := key.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal field key id")
	}
	return &key, nil
}

// ListFields returns the names of every field holding a key, sorted.
func (m *MySQLFieldKeyRepository) ListFields(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, `SELECT field FROM field_keys ORDER BY field`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list field keys")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanStrings(rows, "failed to scan field key")
}
