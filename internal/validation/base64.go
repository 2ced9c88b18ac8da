package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// Base64Key validates that a string is base64 key material of at least
// domain.MinKeySize bytes.
var Base64Key = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	defer domain.Zero(decoded)
	if len(decoded) < domain.MinKeySize {
		return validation.NewError("validation_key_length", "must decode to at least 16 bytes")
	}
	return nil
})
