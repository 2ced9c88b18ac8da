package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	pseudonymDomain "github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

func TestFailureKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unknown field", fmt.Errorf("failed to anonymize field: %w", pseudonymDomain.ErrUnknownField), "unknown_field"},
		{"invalid key", pseudonymDomain.ErrInvalidKey, "invalid_key"},
		{"invalid argument", pseudonymDomain.ErrInvalidArgument, "invalid_argument"},
		{"field key exists", pseudonymDomain.ErrFieldKeyAlreadyExists, "field_key_exists"},
		{
			"field key exists with failed rollback",
			errors.Join(pseudonymDomain.ErrFieldKeyAlreadyExists, errors.New("failed to rollback transaction: conn reset")),
			"field_key_exists",
		},
		{"not initialized", pseudonymDomain.ErrNotInitialized, "not_initialized"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "invalid configuration"), "invalid_input"},
		{"precondition", apperrors.Wrap(apperrors.ErrPrecondition, "needs kms"), "precondition_failed"},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), "canceled"},
		{"internal", errors.New("connection refused"), "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureKind(tt.err))
		})
	}
}

func TestWriteOutput(t *testing.T) {
	t.Run("Success_Text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeOutput(&out, "text", []string{"a", "b"}, nil))
		assert.Equal(t, "a\nb\n", out.String())
	})

	t.Run("Success_JSON", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeOutput(&out, "json", nil, map[string][]string{"fields": {"email"}}))
		assert.JSONEq(t, `{"fields":["email"]}`, out.String())
	})

	t.Run("Error_UnknownFormat", func(t *testing.T) {
		err := writeOutput(&bytes.Buffer{}, "yaml", nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Success_Defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.KeyStoreDriver)
	})

	t.Run("Error_Invalid", func(t *testing.T) {
		t.Setenv("PSEUDONYM_TRUNCATE_BYTES", "11")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
