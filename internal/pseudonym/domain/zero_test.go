package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("zero key material", func(t *testing.T) {
		b := []byte("XCGkaWfQQ9TQyfDLVKebYdH")
		Zero(b)
		assert.Equal(t, make([]byte, 23), b)
	})

	t.Run("zero empty slice", func(t *testing.T) {
		b := []byte{}
		Zero(b)
		assert.Empty(t, b)
	})

	t.Run("zero nil slice", func(t *testing.T) {
		var b []byte
		assert.NotPanics(t, func() { Zero(b) })
	})
}
