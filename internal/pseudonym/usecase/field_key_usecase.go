package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/pseudonymizer/internal/database"
	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

type fieldKeyUseCase struct {
	txManager    database.TxManager
	fieldKeyRepo FieldKeyRepository
	keeper       domain.KMSKeeper
}

// NewFieldKeyUseCase creates a new FieldKeyUseCase.
func NewFieldKeyUseCase(
	txManager database.TxManager,
	fieldKeyRepo FieldKeyRepository,
	keeper domain.KMSKeeper,
) FieldKeyUseCase {
	return &fieldKeyUseCase{
		txManager:    txManager,
		fieldKeyRepo: fieldKeyRepo,
		keeper:       keeper,
	}
}

// Create generates and stores a wrapped key for field inside a transaction.
func (f *fieldKeyUseCase) Create(ctx context.Context, field string) (*domain.FieldKey, error) {
	if err := domain.ValidateField(field); err != nil {
		return nil, err
	}

	var fieldKey *domain.FieldKey
	err := f.txManager.WithTx(ctx, func(ctx context.Context) error {
		_, err := f.fieldKeyRepo.GetByField(ctx, field)
		if err == nil {
			return domain.ErrFieldKeyAlreadyExists
		}
		if !apperrors.Is(err, domain.ErrUnknownField) {
			return err
		}

		key, err := domain.GenerateSecretKey()
		if err != nil {
			return err
		}
		plaintext := key.Expose()
		defer func() {
			domain.Zero(plaintext)
			key.Destroy()
		}()

		wrapped, err := f.keeper.Encrypt(ctx, plaintext)
		if err != nil {
			return apperrors.Wrap(err, "failed to wrap field key")
		}

		id, err := uuid.NewV7()
		if err != nil {
			return apperrors.Wrap(err, "failed to generate UUID for field key")
		}

		fieldKey = &domain.FieldKey{
			ID:         id,
			Field:      field,
			WrappedKey: wrapped,
			CreatedAt:  time.Now().UTC(),
		}
		return f.fieldKeyRepo.Create(ctx, fieldKey)
	})
	if err != nil {
		return nil, err
	}

	return fieldKey, nil
}

// ListFields returns the fields holding a stored key.
func (f *fieldKeyUseCase) ListFields(ctx context.Context) ([]string, error) {
	return f.fieldKeyRepo.ListFields(ctx)
}
