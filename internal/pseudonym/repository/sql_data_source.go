package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"github.com/allisson/pseudonymizer/internal/database"
	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// ErrInvalidFieldSourcesFormat indicates a FIELD_SOURCES entry is not "field=table.column".
var ErrInvalidFieldSourcesFormat = errors.New("invalid FIELD_SOURCES format")

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ColumnRef names the table and column a field's values are read from.
type ColumnRef struct {
	Table  string
	Column string
}

// ParseFieldSources parses "field1=table.column,field2=schema_table.column" into an
// allow-list of column references. Identifiers are restricted to [A-Za-z0-9_] so that
// no configured value can carry SQL.
func ParseFieldSources(raw string) (map[string]ColumnRef, error) {
	sources := make(map[string]ColumnRef)
	if strings.TrimSpace(raw) == "" {
		return sources, nil
	}

	for i, part := range strings.Split(raw, ",") {
		field, ref, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidFieldSourcesFormat, i)
		}
		if err := domain.ValidateField(field); err != nil {
			return nil, fmt.Errorf("%w: entry %d: invalid field name", ErrInvalidFieldSourcesFormat, i)
		}
		table, column, ok := strings.Cut(ref, ".")
		if !ok || !identifierRegex.MatchString(table) || !identifierRegex.MatchString(column) {
			return nil, fmt.Errorf("%w: entry %d: invalid column reference", ErrInvalidFieldSourcesFormat, i)
		}
		if _, dup := sources[field]; dup {
			return nil, fmt.Errorf("%w: entry %d: duplicate field", ErrInvalidFieldSourcesFormat, i)
		}
		sources[field] = ColumnRef{Table: table, Column: column}
	}
	return sources, nil
}

// SQLDataSource reads a field's identifiers from the column it is mapped to. Only fields
// present in the allow-list are readable; NULL values are skipped.
type SQLDataSource struct {
	db      *sql.DB
	queries map[string]string
}

// NewSQLDataSource builds one query per allow-listed field, quoting identifiers for
// driver ("postgres" or "mysql").
func NewSQLDataSource(db *sql.DB, driver string, sources map[string]ColumnRef) (*SQLDataSource, error) {
	quote := pq.QuoteIdentifier
	switch driver {
	case "postgres":
	case "mysql":
		quote = quoteMySQLIdentifier
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	queries := make(map[string]string, len(sources))
	for field, ref := range sources {
		if !identifierRegex.MatchString(ref.Table) || !identifierRegex.MatchString(ref.Column) {
			return nil, ErrInvalidFieldSourcesFormat
		}
		column := quote(ref.Column)
		queries[field] = fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s IS NOT NULL",
			column,
			quote(ref.Table),
			column,
		)
	}

	return &SQLDataSource{db: db, queries: queries}, nil
}

// GetValues returns every non-NULL value of field, or domain.ErrUnknownField.
func (d *SQLDataSource) GetValues(ctx context.Context, field string) ([]string, error) {
	query, ok := d.queries[field]
	if !ok {
		return nil, domain.ErrUnknownField
	}

	querier := database.GetTx(ctx, d.db)
	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query field values")
	}
	defer func() {
		_ = rows.Close()
	}()

	values, err := scanStrings(rows, "failed to scan field value")
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func quoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
