package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenFileNamed(t *testing.T) {
	content := GoldenFileNamed(t, "sample.md")
	assert.Contains(t, string(content), "# Sample")
}

func TestSetUpFromFileContent(t *testing.T) {
	path := SetUpFromFileContent(t, "notes.md", "# Notes\n")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Notes\n", string(content))
}
