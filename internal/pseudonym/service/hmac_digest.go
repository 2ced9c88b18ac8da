package service

import (
	"crypto/sha256"
	"encoding"
	"fmt"
	"hash"

	"github.com/allisson/pseudonymizer/internal/pseudonym/domain"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// HMACDigest is an HMAC-SHA256 engine keyed once at construction.
//
// The key-dependent prefix of both HMAC passes (SHA-256 after absorbing K^ipad and
// K^opad) is captured as marshaled hash state. Sum restores fresh hashes from those
// snapshots on every call, so the snapshots are read-only after construction and one
// HMACDigest can be shared by any number of goroutines without locking.
type HMACDigest struct {
	inner []byte
	outer []byte
}

// NewHMACSHA256 binds key to a new engine. Returns domain.ErrInvalidKey when the key is
// shorter than domain.MinKeySize.
func NewHMACSHA256(key []byte) (*HMACDigest, error) {
	if len(key) < domain.MinKeySize {
		return nil, domain.ErrInvalidKey
	}

	// Keys longer than the block size are hashed first, shorter ones are zero padded.
	block := make([]byte, sha256.BlockSize)
	defer domain.Zero(block)
	if len(key) > sha256.BlockSize {
		sum := sha256.Sum256(key)
		copy(block, sum[:])
		domain.Zero(sum[:])
	} else {
		copy(block, key)
	}

	inner, err := keyedState(block, ipad)
	if err != nil {
		return nil, err
	}
	outer, err := keyedState(block, opad)
	if err != nil {
		domain.Zero(inner)
		return nil, err
	}

	return &HMACDigest{inner: inner, outer: outer}, nil
}

// Sum returns HMAC-SHA256(key, UTF-8 bytes of message).
func (d *HMACDigest) Sum(message string) ([]byte, error) {
	if d == nil || d.inner == nil || d.outer == nil {
		return nil, domain.ErrNotInitialized
	}

	h, err := restore(d.inner)
	if err != nil {
		return nil, err
	}
	_, _ = h.Write([]byte(message))
	innerSum := h.Sum(nil)

	h, err = restore(d.outer)
	if err != nil {
		return nil, err
	}
	_, _ = h.Write(innerSum)
	return h.Sum(nil), nil
}

// Size returns the digest length in bytes.
func (d *HMACDigest) Size() int {
	return sha256.Size
}

// keyedState absorbs block^pad into a SHA-256 and returns its marshaled state.
func keyedState(block []byte, pad byte) ([]byte, error) {
	padded := make([]byte, len(block))
	defer domain.Zero(padded)
	for i, b := range block {
		padded[i] = b ^ pad
	}

	h := sha256.New()
	_, _ = h.Write(padded)

	m, ok := h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("sha256 state is not marshalable")
	}
	state, err := m.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot keyed state: %w", err)
	}
	return state, nil
}

// restore returns a new SHA-256 positioned at the snapshot.
func restore(state []byte) (hash.Hash, error) {
	h := sha256.New()
	u, ok := h.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("sha256 state is not unmarshalable")
	}
	if err := u.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("failed to restore keyed state: %w", err)
	}
	return h, nil
}
