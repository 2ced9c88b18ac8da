// Package validation provides custom validation rules for the application.
package validation

import (
	"net/url"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// kmsSchemes lists the URL schemes of the keepers linked into the binary.
var kmsSchemes = map[string]struct{}{
	"base64key":     {},
	"awskms":        {},
	"gcpkms":        {},
	"azurekeyvault": {},
	"hashivault":    {},
}

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// FieldName validates a field identifier. The message never repeats the value.
var FieldName = validation.NewStringRuleWithError(
	func(s string) bool {
		return domain.ValidateField(s) == nil
	},
	validation.NewError(
		"validation_field_name",
		"must start with a lowercase letter and contain only lowercase letters, digits and underscores",
	),
)

// KMSKeyURI validates that a string is a keeper URL with a supported scheme.
var KMSKeyURI = validation.NewStringRuleWithError(
	func(s string) bool {
		u, err := url.Parse(s)
		if err != nil {
			return false
		}
		_, ok := kmsSchemes[u.Scheme]
		return ok
	},
	validation.NewError("validation_kms_key_uri", "must be a base64key, awskms, gcpkms, azurekeyvault or hashivault URL"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
