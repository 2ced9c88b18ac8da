// Package mocks provides mock implementations of the pseudonym use case collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	"github.com/allisson/pseudonymizer/internal/pseudonym/service"
)

// MockKeyStore is a mock implementation of KeyStore.
type MockKeyStore struct {
	mock.Mock
}

// GetKey mocks the GetKey method of KeyStore.
func (m *MockKeyStore) GetKey(ctx context.Context, field string) ([]byte, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Callers zero the returned key.
	key := append([]byte(nil), args.Get(0).([]byte)...)
	return key, args.Error(1)
}

// MockDataSource is a mock implementation of DataSource.
type MockDataSource struct {
	mock.Mock
}

// GetValues mocks the GetValues method of DataSource.
func (m *MockDataSource) GetValues(ctx context.Context, field string) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockFieldKeyRepository is a mock implementation of FieldKeyRepository.
type MockFieldKeyRepository struct {
	mock.Mock
}

// Create mocks the Create method of FieldKeyRepository.
func (m *MockFieldKeyRepository) Create(ctx context.Context, key *domain.FieldKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// GetByField mocks the GetByField method of FieldKeyRepository.
func (m *MockFieldKeyRepository) GetByField(ctx context.Context, field string) (*domain.FieldKey, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldKey), args.Error(1)
}

// ListFields mocks the ListFields method of FieldKeyRepository.
func (m *MockFieldKeyRepository) ListFields(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPseudonymUseCase is a mock implementation of PseudonymUseCase.
type MockPseudonymUseCase struct {
	mock.Mock
}

// AnonymizeField mocks the AnonymizeField method of PseudonymUseCase.
func (m *MockPseudonymUseCase) AnonymizeField(ctx context.Context, field string, throwaway bool) ([]string, error) {
	args := m.Called(ctx, field, throwaway)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// AnonymizeValues mocks the AnonymizeValues method of PseudonymUseCase.
func (m *MockPseudonymUseCase) AnonymizeValues(
	ctx context.Context,
	field string,
	values []string,
	throwaway bool,
) ([]string, error) {
	args := m.Called(ctx, field, values, throwaway)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Pseudonymizer mocks the Pseudonymizer method of PseudonymUseCase.
func (m *MockPseudonymUseCase) Pseudonymizer(
	ctx context.Context,
	field string,
	throwaway bool,
) (*service.Pseudonymizer, error) {
	args := m.Called(ctx, field, throwaway)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Pseudonymizer), args.Error(1)
}

// MockFieldKeyUseCase is a mock implementation of FieldKeyUseCase.
type MockFieldKeyUseCase struct {
	mock.Mock
}

// Create mocks the Create method of FieldKeyUseCase.
func (m *MockFieldKeyUseCase) Create(ctx context.Context, field string) (*domain.FieldKey, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldKey), args.Error(1)
}

// ListFields mocks the ListFields method of FieldKeyUseCase.
func (m *MockFieldKeyUseCase) ListFields(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockKMSKeeper is a mock implementation of domain.KMSKeeper.
type MockKMSKeeper struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of KMSKeeper.
func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of KMSKeeper.
func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Close mocks the Close method of KMSKeeper.
func (m *MockKMSKeeper) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTxManager is a mock implementation of database.TxManager. WithTx runs fn with the
// given context unless the expectation returns an error.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
