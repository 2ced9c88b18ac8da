// Package dto provides data transfer objects for the pseudonym HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"
)

// PseudonymizeRequest carries caller-supplied identifiers to pseudonymize.
type PseudonymizeRequest struct {
	Values    []string `json:"values"`
	Throwaway bool     `json:"throwaway"`
}

// Validate checks that between 1 and maxValues values were sent.
func (r *PseudonymizeRequest) Validate(maxValues int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Values,
			validation.Required,
			validation.Length(1, maxValues),
		),
	)
}
