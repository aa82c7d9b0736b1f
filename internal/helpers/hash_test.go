package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	assert.Equal(t, Hash([]byte("# My Draft")), Hash([]byte("# My Draft")))
	assert.NotEqual(t, Hash([]byte("a")), Hash([]byte("b")))
	assert.Len(t, Hash([]byte("")), 32)
}

func TestHashFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("# My Draft"), 0644))

	hash, err := HashFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Hash([]byte("# My Draft")), hash)

	_, err = HashFromFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}
