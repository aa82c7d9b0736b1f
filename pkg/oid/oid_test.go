package oid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOID(t *testing.T) {

	t.Run("New", func(t *testing.T) {
		a := New()
		b := New()
		assert.Len(t, a.String(), 40)
		assert.NotEqual(t, a, b)
	})

	t.Run("NewFromBytes is deterministic", func(t *testing.T) {
		a := NewFromBytes([]byte("# My Draft"))
		b := NewFromBytes([]byte("# My Draft"))
		assert.Equal(t, a, b)
		assert.Len(t, a.String(), 40)
	})

	t.Run("ParseOrNil", func(t *testing.T) {
		valid := strings.Repeat("a", 40)
		assert.Equal(t, OID(valid), ParseOrNil(valid))
		assert.Equal(t, Nil, ParseOrNil("too-short"))
	})

	t.Run("UseFixed", func(t *testing.T) {
		UseFixed(t, OID(strings.Repeat("0", 40)))
		assert.Equal(t, New(), New())
	})

	t.Run("UseSequence", func(t *testing.T) {
		UseSequence(t)
		assert.Equal(t, OID("0000000000000000000000000000000000000001"), New())
		assert.Equal(t, OID("0000000000000000000000000000000000000002"), New())
	})
}
