package repository

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets/localsecrets"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

func TestLoadEnvKeyStore(t *testing.T) {
	ctx := context.Background()
	key := []byte("0123456789abcdef0123456789abcdef")
	encoded := base64.StdEncoding.EncodeToString(key)

	t.Run("Success_PlainKeys", func(t *testing.T) {
		store, err := LoadEnvKeyStore(ctx, "email:"+encoded+", phone:"+encoded, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, store.Fields())

		got, err := store.GetKey(ctx, "phone")
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("Success_KMSWrappedKeys", func(t *testing.T) {
		secret, err := localsecrets.NewRandomKey()
		require.NoError(t, err)
		keeper := localsecrets.NewKeeper(secret)
		defer func() { _ = keeper.Close() }()

		wrapped, err := keeper.Encrypt(ctx, key)
		require.NoError(t, err)

		store, err := LoadEnvKeyStore(ctx, "email:"+base64.StdEncoding.EncodeToString(wrapped), keeper)
		require.NoError(t, err)

		got, err := store.GetKey(ctx, "email")
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		_, err := LoadEnvKeyStore(ctx, "  ", nil)
		assert.ErrorIs(t, err, ErrFieldKeysNotSet)
	})

	t.Run("Error_MalformedEntries", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{"missing separator", "email" + encoded},
			{"invalid field", "Private_Col:" + encoded},
			{"invalid base64", "email:***"},
			{"duplicate field", "email:" + encoded + ",email:" + encoded},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := LoadEnvKeyStore(ctx, tt.raw, nil)
				require.ErrorIs(t, err, ErrInvalidFieldKeysFormat)
				assert.NotContains(t, err.Error(), "Private_Col")
				assert.NotContains(t, err.Error(), encoded)
			})
		}
	})

	t.Run("Error_ShortKey", func(t *testing.T) {
		_, err := LoadEnvKeyStore(ctx, "email:"+base64.StdEncoding.EncodeToString([]byte("short")), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidKey)
	})

	t.Run("Error_UndecryptableCiphertext", func(t *testing.T) {
		secret, err := localsecrets.NewRandomKey()
		require.NoError(t, err)
		keeper := localsecrets.NewKeeper(secret)
		defer func() { _ = keeper.Close() }()

		_, err = LoadEnvKeyStore(ctx, "email:"+encoded, keeper)
		assert.Error(t, err)
	})
}
