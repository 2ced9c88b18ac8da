package domain

import (
	"crypto/rand"
	"fmt"
	"log/slog"
)

const redacted = "[REDACTED]"

// SecretKey holds the key material bound to a pseudonymizer.
//
// The struct wraps a slice so that == does not compile for it, and every formatting
// path (fmt verbs, %#v, slog, encoding.TextMarshaler) renders a fixed placeholder.
type SecretKey struct {
	material []byte
}

// NewSecretKey copies b into a new SecretKey. Returns ErrInvalidKey when b is shorter
// than MinKeySize.
func NewSecretKey(b []byte) (SecretKey, error) {
	if len(b) < MinKeySize {
		return SecretKey{}, ErrInvalidKey
	}
	material := make([]byte, len(b))
	copy(material, b)
	return SecretKey{material: material}, nil
}

// GenerateSecretKey returns a fresh GeneratedKeySize key read from crypto/rand.
func GenerateSecretKey() (SecretKey, error) {
	material := make([]byte, GeneratedKeySize)
	if _, err := rand.Read(material); err != nil {
		return SecretKey{}, fmt.Errorf("failed to generate secret key: %w", err)
	}
	return SecretKey{material: material}, nil
}

// Expose returns a copy of the key material. Callers should Zero the copy once done.
func (k SecretKey) Expose() []byte {
	if k.material == nil {
		return nil
	}
	out := make([]byte, len(k.material))
	copy(out, k.material)
	return out
}

// Len returns the key length in bytes.
func (k SecretKey) Len() int {
	return len(k.material)
}

// IsZero reports whether the key holds no material.
func (k SecretKey) IsZero() bool {
	return len(k.material) == 0
}

// Destroy overwrites the key material with zeros.
func (k *SecretKey) Destroy() {
	Zero(k.material)
	k.material = nil
}

// String implements fmt.Stringer.
func (k SecretKey) String() string {
	return redacted
}

// GoString implements fmt.GoStringer.
func (k SecretKey) GoString() string {
	return "domain.SecretKey{" + redacted + "}"
}

// LogValue implements slog.LogValuer.
func (k SecretKey) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalText implements encoding.TextMarshaler so JSON and text encoders never see
// the material.
func (k SecretKey) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
