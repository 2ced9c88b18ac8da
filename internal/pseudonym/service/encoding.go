package service

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

// Truncate returns the first min(byteLength, len(data)) bytes of data.
// The result shares data's backing array. Returns domain.ErrInvalidArgument when the
// effective length is below domain.MinTruncateLength, however short data is.
func Truncate(data []byte, byteLength int) ([]byte, error) {
	length := min(byteLength, len(data))
	if length < domain.MinTruncateLength {
		return nil, domain.ErrInvalidArgument
	}
	return data[:length], nil
}

// EncodeToString encodes data as standard padded base64.
func EncodeToString(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Encode encodes data with the given alphabet.
func Encode(data []byte, enc domain.Encoding) (string, error) {
	switch enc {
	case domain.EncodingBase64:
		return EncodeToString(data), nil
	case domain.EncodingBase64URL:
		return base64.URLEncoding.EncodeToString(data), nil
	case domain.EncodingBase32:
		return base32.StdEncoding.EncodeToString(data), nil
	case domain.EncodingHex:
		return hex.EncodeToString(data), nil
	default:
		return "", domain.ErrInvalidArgument
	}
}

// EncodedLen returns the pseudonym length for n truncated bytes.
func EncodedLen(n int, enc domain.Encoding) int {
	switch enc {
	case domain.EncodingBase64:
		return base64.StdEncoding.EncodedLen(n)
	case domain.EncodingBase64URL:
		return base64.URLEncoding.EncodedLen(n)
	case domain.EncodingBase32:
		return base32.StdEncoding.EncodedLen(n)
	case domain.EncodingHex:
		return hex.EncodedLen(n)
	default:
		return 0
	}
}
