package domain

import (
	"regexp"
)

// fieldPattern restricts field identifiers to lowercase snake_case names. Anything else
// is rejected before a key store or data source is consulted.
var fieldPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// ValidateField checks that field is a well-formed field identifier.
// Returns ErrInvalidArgument otherwise; the rejected value is never included.
func ValidateField(field string) error {
	if !fieldPattern.MatchString(field) {
		return ErrInvalidArgument
	}
	return nil
}
