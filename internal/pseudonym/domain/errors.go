package domain

import (
	"github.com/allisson/pseudonymizer/internal/errors"
)

// Pseudonymization error definitions.
//
// Messages are constant: none of them ever carries the key, the identifier being
// pseudonymized, or the field name that was rejected.
var (
	// ErrInvalidKey indicates the secret key is absent or shorter than MinKeySize bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKey = errors.Wrap(errors.ErrInvalidInput, "invalid key")

	// ErrInvalidArgument indicates an invalid field name, a truncation length below
	// MinTruncateLength, or an unsupported option value.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidArgument = errors.Wrap(errors.ErrInvalidInput, "invalid argument")

	// ErrNotInitialized indicates an operation was invoked on a pseudonymizer that was
	// never successfully constructed (e.g., a zero value).
	//
	// HTTP Status: 500 Internal Server Error
	ErrNotInitialized = errors.Wrap(errors.ErrPrecondition, "pseudonymizer is not initialized")

	// ErrUnknownField indicates the key store or data source does not recognize the field.
	//
	// The field name is untrusted input and is deliberately absent from the message.
	//
	// HTTP Status: 404 Not Found
	ErrUnknownField = errors.Wrap(errors.ErrNotFound, "unknown field")

	// ErrFieldKeyAlreadyExists indicates a persistent key already exists for the field.
	//
	// HTTP Status: 409 Conflict
	ErrFieldKeyAlreadyExists = errors.Wrap(errors.ErrConflict, "field key already exists")
)
