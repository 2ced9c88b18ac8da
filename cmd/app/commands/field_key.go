package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	pseudonymDomain "github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	pseudonymService "github.com/allisson/pseudonymizer/internal/pseudonym/service"
	pseudonymUseCase "github.com/allisson/pseudonymizer/internal/pseudonym/usecase"
)

// fieldKeyOutput is the JSON form of a created field key record.
type fieldKeyOutput struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"`
	CreatedAt time.Time `json:"created_at"`
}

// RunCreateFieldKey generates and stores a wrapped key for field in the database key
// store. Only the record metadata is printed; the key itself never leaves the process
// unwrapped.
//
// Requirements: Database must be migrated and KMS_KEY_URI must be set.
func RunCreateFieldKey(
	ctx context.Context,
	useCase pseudonymUseCase.FieldKeyUseCase,
	logger *slog.Logger,
	io IOTuple,
	field string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	fieldKey, err := useCase.Create(ctx, field)
	if err != nil {
		return fmt.Errorf("failed to create field key: %w", err)
	}

	logger.Info("field key created",
		slog.String("id", fieldKey.ID.String()),
		slog.String("field", fieldKey.Field),
	)

	return writeOutput(io.Writer, format,
		[]string{fmt.Sprintf("Field key created for %s (id %s)", fieldKey.Field, fieldKey.ID)},
		fieldKeyOutput{ID: fieldKey.ID.String(), Field: fieldKey.Field, CreatedAt: fieldKey.CreatedAt},
	)
}

// RunListFieldKeys prints the fields holding a stored key, one per line.
func RunListFieldKeys(
	ctx context.Context,
	useCase pseudonymUseCase.FieldKeyUseCase,
	io IOTuple,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	fields, err := useCase.ListFields(ctx)
	if err != nil {
		return fmt.Errorf("failed to list field keys: %w", err)
	}

	return writeOutput(io.Writer, format, fields, map[string][]string{"fields": fields})
}

// RunGenerateFieldKey generates a random key for field and prints it as a FIELD_KEYS
// entry for the env key store.
//
// When kmsKeyURI is set, the key is encrypted with the KMS before output and the matching
// KMS_KEY_URI line is printed too. Without it, the plaintext key is printed; use that only
// for local development.
//
// Output format:
//   - FIELD_KEYS="<field>:<base64-key-or-kms-ciphertext>"
//   - KMS_KEY_URI="<uri>" (KMS mode only)
func RunGenerateFieldKey(
	ctx context.Context,
	kmsService pseudonymService.KMSService,
	logger *slog.Logger,
	io IOTuple,
	field string,
	kmsKeyURI string,
) error {
	if err := pseudonymDomain.ValidateField(field); err != nil {
		return err
	}

	key := make([]byte, pseudonymDomain.GeneratedKeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate field key: %w", err)
	}
	defer pseudonymDomain.Zero(key)

	if kmsKeyURI == "" {
		logger.Warn("printing an unwrapped field key; set --kms-key-uri outside local development")
		fmt.Fprintln(io.Writer, "# Plaintext field key (local development only)")
		fmt.Fprintf(io.Writer, "FIELD_KEYS=\"%s:%s\"\n", field, base64.StdEncoding.EncodeToString(key))
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt field key with KMS: %w", err)
	}

	fmt.Fprintln(io.Writer, "# Field key configuration (KMS mode)")
	fmt.Fprintln(io.Writer, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintf(io.Writer, "KEY_STORE_DRIVER=\"env\"\n")
	fmt.Fprintf(io.Writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(io.Writer, "FIELD_KEYS=\"%s:%s\"\n", field, base64.StdEncoding.EncodeToString(ciphertext))
	fmt.Fprintln(io.Writer, "# For several fields, join entries with commas:")
	fmt.Fprintf(io.Writer, "# FIELD_KEYS=\"%s:...,other_field:...\"\n", field)

	return nil
}
