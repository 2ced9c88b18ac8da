package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoding_Validate(t *testing.T) {
	tests := []struct {
		name     string
		encoding Encoding
		wantErr  bool
	}{
		{name: "base64", encoding: EncodingBase64},
		{name: "base64url", encoding: EncodingBase64URL},
		{name: "base32", encoding: EncodingBase32},
		{name: "hex", encoding: EncodingHex},
		{name: "empty", encoding: "", wantErr: true},
		{name: "unknown", encoding: "base58", wantErr: true},
		{name: "case sensitive", encoding: "BASE64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.encoding.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, string(tt.encoding), tt.encoding.String())
		})
	}
}

func TestTruncationConstants(t *testing.T) {
	assert.Equal(t, 12, MinTruncateLength)
	assert.Equal(t, 15, DefaultTruncateLength)
	assert.GreaterOrEqual(t, DefaultTruncateLength, MinTruncateLength)
	assert.LessOrEqual(t, DefaultTruncateLength, MaxTruncateLength)
	assert.Equal(t, 16, MinKeySize)
	assert.Equal(t, 32, GeneratedKeySize)
}
