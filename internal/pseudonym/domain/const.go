// Package domain defines the core pseudonymization domain models: secret keys, field
// identifiers, output encodings, and the error taxonomy shared by every layer.
package domain

import (
	"errors"
)

// Key size constraints.
const (
	// MinKeySize is the minimum accepted secret key length in bytes (128 bits).
	MinKeySize = 16

	// GeneratedKeySize is the length of keys generated for throwaway pseudonymizers and
	// for newly created field keys (256 bits).
	GeneratedKeySize = 32
)

// Truncation constraints.
const (
	// DefaultTruncateLength keeps 15 digest bytes: collision safe for any realistic corpus
	// and aligned with both base64 (20 chars, no padding) and base32 (24 chars) blocks.
	DefaultTruncateLength = 15

	// MinTruncateLength is the hard floor (96 bits). Anything shorter is rejected.
	MinTruncateLength = 12

	// MaxTruncateLength is the full HMAC-SHA256 output size.
	MaxTruncateLength = 32
)

// Encoding defines the alphabet used to turn truncated digest bytes into a pseudonym.
type Encoding string

const (
	// EncodingBase64 is standard base64 (A-Z a-z 0-9 + /) with '=' padding.
	EncodingBase64 Encoding = "base64"
	// EncodingBase64URL is URL-safe base64 (A-Z a-z 0-9 - _) with '=' padding.
	EncodingBase64URL Encoding = "base64url"
	// EncodingBase32 is standard base32 (A-Z 2-7) with '=' padding.
	EncodingBase32 Encoding = "base32"
	// EncodingHex is lowercase hexadecimal.
	EncodingHex Encoding = "hex"
)

// Validate checks if the encoding is supported.
func (e Encoding) Validate() error {
	switch e {
	case EncodingBase64, EncodingBase64URL, EncodingBase32, EncodingHex:
		return nil
	default:
		return errors.New("invalid encoding")
	}
}

// String returns the string representation of the encoding.
func (e Encoding) String() string {
	return string(e)
}
