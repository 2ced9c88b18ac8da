package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets/localsecrets"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	"github.com/allisson/pseudonymizer/internal/pseudonym/repository"
	"github.com/allisson/pseudonymizer/internal/pseudonym/usecase/mocks"
)

func TestFieldKeyUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StoresWrappedKey", func(t *testing.T) {
		secret, err := localsecrets.NewRandomKey()
		require.NoError(t, err)
		keeper := localsecrets.NewKeeper(secret)
		defer func() { _ = keeper.Close() }()

		txManager := &mocks.MockTxManager{}
		repo := &mocks.MockFieldKeyRepository{}
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByField", mock.Anything, "email").Return(nil, domain.ErrUnknownField).Once()

		var stored *domain.FieldKey
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FieldKey")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.FieldKey)
			}).
			Return(nil).
			Once()

		uc := NewFieldKeyUseCase(txManager, repo, keeper)
		key, err := uc.Create(ctx, "email")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, stored, key)
		assert.Equal(t, "email", key.Field)
		assert.Equal(t, uuid.Version(7), key.ID.Version())

		plaintext, err := keeper.Decrypt(ctx, key.WrappedKey)
		require.NoError(t, err)
		assert.Len(t, plaintext, domain.GeneratedKeySize)

		// The stored key serves the pseudonym use case through the database key store.
		store := repository.NewDatabaseKeyStore(repo, keeper)
		repo.On("GetByField", mock.Anything, "email").Return(key, nil).Once()
		got, err := store.GetKey(ctx, "email")
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)

		txManager.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("Error_AlreadyExists", func(t *testing.T) {
		txManager := &mocks.MockTxManager{}
		repo := &mocks.MockFieldKeyRepository{}
		keeper := &mocks.MockKMSKeeper{}
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByField", mock.Anything, "email").Return(&domain.FieldKey{Field: "email"}, nil).Once()

		uc := NewFieldKeyUseCase(txManager, repo, keeper)
		_, err := uc.Create(ctx, "email")
		assert.ErrorIs(t, err, domain.ErrFieldKeyAlreadyExists)
		keeper.AssertNotCalled(t, "Encrypt", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidField", func(t *testing.T) {
		txManager := &mocks.MockTxManager{}
		uc := NewFieldKeyUseCase(txManager, &mocks.MockFieldKeyRepository{}, &mocks.MockKMSKeeper{})

		_, err := uc.Create(ctx, "Email Address")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("Error_WrapFails", func(t *testing.T) {
		txManager := &mocks.MockTxManager{}
		repo := &mocks.MockFieldKeyRepository{}
		keeper := &mocks.MockKMSKeeper{}
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByField", mock.Anything, "email").Return(nil, domain.ErrUnknownField).Once()
		keeper.On("Encrypt", mock.Anything, mock.Anything).Return(nil, errors.New("kms unavailable")).Once()

		uc := NewFieldKeyUseCase(txManager, repo, keeper)
		_, err := uc.Create(ctx, "email")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to wrap field key")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_LookupFails", func(t *testing.T) {
		txManager := &mocks.MockTxManager{}
		repo := &mocks.MockFieldKeyRepository{}
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByField", mock.Anything, "email").Return(nil, errors.New("db down")).Once()

		uc := NewFieldKeyUseCase(txManager, repo, &mocks.MockKMSKeeper{})
		_, err := uc.Create(ctx, "email")
		assert.EqualError(t, err, "db down")
	})

	t.Run("Error_TransactionFails", func(t *testing.T) {
		txManager := &mocks.MockTxManager{}
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(errors.New("begin failed")).Once()

		uc := NewFieldKeyUseCase(txManager, &mocks.MockFieldKeyRepository{}, &mocks.MockKMSKeeper{})
		_, err := uc.Create(ctx, "email")
		assert.EqualError(t, err, "begin failed")
	})
}

func TestFieldKeyUseCase_ListFields(t *testing.T) {
	repo := &mocks.MockFieldKeyRepository{}
	repo.On("ListFields", mock.Anything).Return([]string{"email", "phone"}, nil).Once()

	uc := NewFieldKeyUseCase(&mocks.MockTxManager{}, repo, &mocks.MockKMSKeeper{})
	fields, err := uc.ListFields(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "phone"}, fields)
}
