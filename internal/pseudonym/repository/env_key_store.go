package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

var (
	// ErrFieldKeysNotSet indicates FIELD_KEYS is empty.
	ErrFieldKeysNotSet = errors.New("FIELD_KEYS is not set")

	// ErrInvalidFieldKeysFormat indicates a FIELD_KEYS entry is not "field:base64key".
	ErrInvalidFieldKeysFormat = errors.New("invalid FIELD_KEYS format")
)

// LoadEnvKeyStore parses field keys in the form "field1:base64key,field2:base64key".
//
// When keeper is not nil each decoded value is KMS ciphertext and is unwrapped with it.
// Errors refer to entries by position only; decoded material is zeroed once copied into
// the store.
func LoadEnvKeyStore(ctx context.Context, raw string, keeper domain.KMSKeeper) (*MemoryKeyStore, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrFieldKeysNotSet
	}

	keys := make(map[string][]byte)
	defer func() {
		for _, k := range keys {
			domain.Zero(k)
		}
	}()

	for i, part := range strings.Split(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidFieldKeysFormat, i)
		}
		field := p[0]
		if err := domain.ValidateField(field); err != nil {
			return nil, fmt.Errorf("%w: entry %d: invalid field name", ErrInvalidFieldKeysFormat, i)
		}
		if _, dup := keys[field]; dup {
			return nil, fmt.Errorf("%w: entry %d: duplicate field", ErrInvalidFieldKeysFormat, i)
		}

		decoded, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: invalid base64", ErrInvalidFieldKeysFormat, i)
		}

		if keeper != nil {
			plaintext, err := keeper.Decrypt(ctx, decoded)
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt field key at entry %d: %w", i, err)
			}
			decoded = plaintext
		}

		if len(decoded) < domain.MinKeySize {
			domain.Zero(decoded)
			return nil, fmt.Errorf("entry %d: %w", i, domain.ErrInvalidKey)
		}
		keys[field] = decoded
	}

	return NewMemoryKeyStore(keys)
}
