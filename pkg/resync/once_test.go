package resync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnce(t *testing.T) {
	var once Once
	count := 0

	once.Do(func() { count++ })
	once.Do(func() { count++ })
	assert.Equal(t, 1, count)

	once.Reset()
	once.Do(func() { count++ })
	once.Do(func() { count++ })
	assert.Equal(t, 2, count)
}
