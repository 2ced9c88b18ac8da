package validation

import (
	"encoding/base64"
	"strings"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/pseudonymizer/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(validation.Errors{"values": validation.ErrRequired})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "values")
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"simple", "email", false},
		{"with digits and underscores", "phone_2", false},
		{"empty is left to Required", "", false},
		{"uppercase", "Email", true},
		{"leading digit", "2email", true},
		{"punctuation", "email;drop", true},
		{"too long", "a" + strings.Repeat("b", 63), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, FieldName)
			if tt.shouldErr {
				require.Error(t, err)
				if tt.value != "" {
					assert.NotContains(t, err.Error(), tt.value)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKMSKeyURI(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"localsecrets", "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=", false},
		{"aws", "awskms://alias/pseudonymizer?region=us-east-1", false},
		{"gcp", "gcpkms://projects/p/locations/global/keyRings/r/cryptoKeys/k", false},
		{"vault", "hashivault://pseudonymizer", false},
		{"unsupported scheme", "file:///tmp/key", true},
		{"not a url", "://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, KMSKeyURI)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBase64Key(t *testing.T) {
	assert.NoError(t, validation.Validate(base64.StdEncoding.EncodeToString(make([]byte, 16)), Base64Key))
	assert.NoError(t, validation.Validate("", Base64Key))
	assert.Error(t, validation.Validate(base64.StdEncoding.EncodeToString(make([]byte, 15)), Base64Key))
	assert.Error(t, validation.Validate("not base64!", Base64Key))
	assert.Error(t, validation.Validate(42, Base64Key))
}

func TestBase64(t *testing.T) {
	assert.NoError(t, validation.Validate("aGVsbG8=", Base64))
	assert.Error(t, validation.Validate("***", Base64))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("email", NoWhitespace))
	assert.Error(t, validation.Validate(" email", NoWhitespace))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("a", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}
