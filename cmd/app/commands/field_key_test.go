package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	pseudonymDomain "github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	pseudonymService "github.com/allisson/pseudonymizer/internal/pseudonym/service"
	"github.com/allisson/pseudonymizer/internal/pseudonym/usecase/mocks"
)

const testKMSKeyURI = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

// MockKMSService is a mock implementation of pseudonymService.KMSService.
type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, uri string) (pseudonymDomain.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pseudonymDomain.KMSKeeper), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCreateFieldKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Text", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mockUseCase := &mocks.MockFieldKeyUseCase{}
		mockUseCase.On("Create", ctx, "email").Return(&pseudonymDomain.FieldKey{
			ID:         id,
			Field:      "email",
			WrappedKey: []byte("wrapped"),
			CreatedAt:  time.Now().UTC(),
		}, nil).Once()

		var out bytes.Buffer
		err := RunCreateFieldKey(ctx, mockUseCase, discardLogger(), IOTuple{Writer: &out}, "email", "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), id.String())
		assert.NotContains(t, out.String(), "wrapped")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_JSON", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mockUseCase := &mocks.MockFieldKeyUseCase{}
		mockUseCase.On("Create", ctx, "email").Return(&pseudonymDomain.FieldKey{
			ID:        id,
			Field:     "email",
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}, nil).Once()

		var out bytes.Buffer
		err := RunCreateFieldKey(ctx, mockUseCase, discardLogger(), IOTuple{Writer: &out}, "email", "json")
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"id":"`+id.String()+`","field":"email","created_at":"2026-01-02T03:04:05Z"}`,
			out.String(),
		)
	})

	t.Run("Error_InvalidFormatCreatesNothing", func(t *testing.T) {
		mockUseCase := &mocks.MockFieldKeyUseCase{}

		err := RunCreateFieldKey(ctx, mockUseCase, discardLogger(), IOTuple{Writer: &bytes.Buffer{}}, "email", "yaml")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_AlreadyExists", func(t *testing.T) {
		mockUseCase := &mocks.MockFieldKeyUseCase{}
		mockUseCase.On("Create", ctx, "email").Return(nil, pseudonymDomain.ErrFieldKeyAlreadyExists).Once()

		err := RunCreateFieldKey(ctx, mockUseCase, discardLogger(), IOTuple{Writer: &bytes.Buffer{}}, "email", "text")
		assert.ErrorIs(t, err, pseudonymDomain.ErrFieldKeyAlreadyExists)
		assert.Equal(t, "field_key_exists", FailureKind(err))
	})
}

func TestRunListFieldKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Text", func(t *testing.T) {
		mockUseCase := &mocks.MockFieldKeyUseCase{}
		mockUseCase.On("ListFields", ctx).Return([]string{"email", "phone"}, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunListFieldKeys(ctx, mockUseCase, IOTuple{Writer: &out}, "text"))
		assert.Equal(t, "email\nphone\n", out.String())
	})

	t.Run("Error_Repository", func(t *testing.T) {
		mockUseCase := &mocks.MockFieldKeyUseCase{}
		mockUseCase.On("ListFields", ctx).Return(nil, errors.New("connection refused")).Once()

		err := RunListFieldKeys(ctx, mockUseCase, IOTuple{Writer: &bytes.Buffer{}}, "text")
		require.Error(t, err)
		assert.Equal(t, "internal_error", FailureKind(err))
	})
}

func TestRunGenerateFieldKey(t *testing.T) {
	ctx := context.Background()
	entry := regexp.MustCompile(`FIELD_KEYS="email:([A-Za-z0-9+/=]+)"`)

	t.Run("Success_Plaintext", func(t *testing.T) {
		var out bytes.Buffer
		err := RunGenerateFieldKey(ctx, nil, discardLogger(), IOTuple{Writer: &out}, "email", "")
		require.NoError(t, err)

		match := entry.FindStringSubmatch(out.String())
		require.Len(t, match, 2)
		key, err := base64.StdEncoding.DecodeString(match[1])
		require.NoError(t, err)
		assert.Len(t, key, pseudonymDomain.GeneratedKeySize)
		assert.NotContains(t, out.String(), "KMS_KEY_URI")
	})

	t.Run("Success_KMSRoundTrip", func(t *testing.T) {
		kmsService := pseudonymService.NewKMSService()

		var out bytes.Buffer
		err := RunGenerateFieldKey(ctx, kmsService, discardLogger(), IOTuple{Writer: &out}, "email", testKMSKeyURI)
		require.NoError(t, err)
		assert.Contains(t, out.String(), `KMS_KEY_URI="`+testKMSKeyURI+`"`)

		match := entry.FindStringSubmatch(out.String())
		require.Len(t, match, 2)
		ciphertext, err := base64.StdEncoding.DecodeString(match[1])
		require.NoError(t, err)

		keeper, err := kmsService.OpenKeeper(ctx, testKMSKeyURI)
		require.NoError(t, err)
		defer func() { _ = keeper.Close() }()

		key, err := keeper.Decrypt(ctx, ciphertext)
		require.NoError(t, err)
		assert.Len(t, key, pseudonymDomain.GeneratedKeySize)
	})

	t.Run("Success_ClosesKeeper", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &mocks.MockKMSKeeper{}
		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil).Once()
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("encrypted"), nil).Once()
		mockKeeper.On("Close").Return(nil).Once()

		var out bytes.Buffer
		err := RunGenerateFieldKey(ctx, mockService, discardLogger(), IOTuple{Writer: &out}, "email", "base64key://...")
		require.NoError(t, err)
		assert.Contains(t, out.String(), `FIELD_KEYS="email:`+base64.StdEncoding.EncodeToString([]byte("encrypted"))+`"`)

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("Error_InvalidField", func(t *testing.T) {
		err := RunGenerateFieldKey(ctx, nil, discardLogger(), IOTuple{Writer: &bytes.Buffer{}}, "bad field", "")
		assert.ErrorIs(t, err, pseudonymDomain.ErrInvalidArgument)
		assert.NotContains(t, err.Error(), "bad field")
	})

	t.Run("Error_OpenKeeper", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("OpenKeeper", ctx, "gcpkms://nope").Return(nil, errors.New("dial failed")).Once()

		err := RunGenerateFieldKey(ctx, mockService, discardLogger(), IOTuple{Writer: &bytes.Buffer{}}, "email", "gcpkms://nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}
