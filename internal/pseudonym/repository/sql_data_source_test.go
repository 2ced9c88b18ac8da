package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	"github.com/allisson/pseudonymizer/internal/testutil"
)

func TestParseFieldSources(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sources, err := ParseFieldSources("email=customers.email_address, phone=contacts.phone")
		require.NoError(t, err)
		assert.Equal(t, map[string]ColumnRef{
			"email": {Table: "customers", Column: "email_address"},
			"phone": {Table: "contacts", Column: "phone"},
		}, sources)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		sources, err := ParseFieldSources("")
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("Error_Invalid", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{"missing equals", "email"},
			{"missing column", "email=customers"},
			{"injection in table", "email=customers;DROP TABLE x.email"},
			{"injection in column", "email=customers.email--"},
			{"invalid field", "E-Mail=customers.email"},
			{"duplicate field", "email=a.b,email=c.d"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseFieldSources(tt.raw)
				assert.ErrorIs(t, err, ErrInvalidFieldSourcesFormat)
			})
		}
	})
}

func TestSQLDataSource_GetValues(t *testing.T) {
	sources := map[string]ColumnRef{"email": {Table: "customers", Column: "email"}}

	t.Run("Success_PostgresQuoting", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		ds, err := NewSQLDataSource(db, "postgres", sources)
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "email" FROM "customers" WHERE "email" IS NOT NULL`)).
			WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("a@example.com").AddRow("b@example.com"))

		values, err := ds.GetValues(context.Background(), "email")
		require.NoError(t, err)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, values)
	})

	t.Run("Success_MySQLQuoting", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		ds, err := NewSQLDataSource(db, "mysql", sources)
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT `email` FROM `customers` WHERE `email` IS NOT NULL")).
			WillReturnRows(sqlmock.NewRows([]string{"email"}))

		values, err := ds.GetValues(context.Background(), "email")
		require.NoError(t, err)
		assert.NotNil(t, values)
		assert.Empty(t, values)
	})

	t.Run("Error_UnknownFieldNoQuery", func(t *testing.T) {
		db, _ := testutil.NewMockDB(t)
		ds, err := NewSQLDataSource(db, "postgres", sources)
		require.NoError(t, err)

		_, err = ds.GetValues(context.Background(), "phone")
		assert.ErrorIs(t, err, domain.ErrUnknownField)
		assert.NotContains(t, err.Error(), "phone")
	})

	t.Run("Error_QueryFails", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		ds, err := NewSQLDataSource(db, "postgres", sources)
		require.NoError(t, err)

		mock.ExpectQuery("SELECT").WillReturnError(errors.New("relation does not exist"))

		_, err = ds.GetValues(context.Background(), "email")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query field values")
	})

	t.Run("Error_UnsupportedDriver", func(t *testing.T) {
		db, _ := testutil.NewMockDB(t)
		_, err := NewSQLDataSource(db, "sqlite", sources)
		assert.Error(t, err)
	})

	t.Run("Error_UnsafeIdentifier", func(t *testing.T) {
		db, _ := testutil.NewMockDB(t)
		_, err := NewSQLDataSource(db, "postgres", map[string]ColumnRef{"email": {Table: "a b", Column: "c"}})
		assert.ErrorIs(t, err, ErrInvalidFieldSourcesFormat)
	})
}
