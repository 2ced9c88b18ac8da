package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

func referenceHMAC(key []byte, message string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return mac.Sum(nil)
}

func TestNewHMACSHA256(t *testing.T) {
	t.Run("Error_15ByteKey", func(t *testing.T) {
		engine, err := NewHMACSHA256(make([]byte, 15))
		assert.ErrorIs(t, err, domain.ErrInvalidKey)
		assert.Nil(t, engine)
	})

	t.Run("Error_NilKey", func(t *testing.T) {
		engine, err := NewHMACSHA256(nil)
		assert.ErrorIs(t, err, domain.ErrInvalidKey)
		assert.Nil(t, engine)
	})

	t.Run("Success_16ByteKey", func(t *testing.T) {
		engine, err := NewHMACSHA256(make([]byte, 16))
		require.NoError(t, err)
		assert.Equal(t, sha256.Size, engine.Size())
	})
}

func TestHMACDigest_MatchesCryptoHMAC(t *testing.T) {
	messages := []string{
		"",
		"amelia@erhardt.fm",
		"James.Hoffa@floor.lakemi.us",
		"Hello 世界 🌍",
		strings.Repeat("A", 10240),
	}

	// Key lengths around the SHA-256 block size exercise padding and pre-hashing.
	for _, keyLen := range []int{16, 23, 32, 63, 64, 65, 200} {
		key := make([]byte, keyLen)
		_, err := rand.Read(key)
		require.NoError(t, err)

		engine, err := NewHMACSHA256(key)
		require.NoError(t, err)

		for _, msg := range messages {
			got, err := engine.Sum(msg)
			require.NoError(t, err)
			assert.Equal(t, referenceHMAC(key, msg), got, "key length %d", keyLen)
		}
	}
}

func TestHMACDigest_CallsAreIndependent(t *testing.T) {
	engine, err := NewHMACSHA256([]byte("XCGkaWfQQ9TQyfDLVKebYdH"))
	require.NoError(t, err)

	first, err := engine.Sum("amelia@erhardt.fm")
	require.NoError(t, err)

	_, err = engine.Sum("db_cooper@rocky_mtn.high.co.us")
	require.NoError(t, err)
	_, err = engine.Sum("")
	require.NoError(t, err)

	again, err := engine.Sum("amelia@erhardt.fm")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestHMACDigest_DoesNotRetainKey(t *testing.T) {
	key := []byte("XCGkaWfQQ9TQyfDLVKebYdH")
	engine, err := NewHMACSHA256(key)
	require.NoError(t, err)

	before, err := engine.Sum("amelia@erhardt.fm")
	require.NoError(t, err)

	domain.Zero(key)

	after, err := engine.Sum("amelia@erhardt.fm")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHMACDigest_ConcurrentUse(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	engine, err := NewHMACSHA256(key)
	require.NoError(t, err)

	inputs := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}

	var wg sync.WaitGroup
	errs := make(chan string, 64*len(inputs))
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, in := range inputs {
				got, err := engine.Sum(in)
				if err != nil || !hmac.Equal(got, referenceHMAC(key, in)) {
					errs <- in
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	assert.Empty(t, errs)
}

func TestHMACDigest_NotInitialized(t *testing.T) {
	var engine *HMACDigest
	_, err := engine.Sum("value")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, err = (&HMACDigest{}).Sum("value")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
