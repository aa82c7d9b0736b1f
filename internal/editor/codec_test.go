package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	var tests = []struct {
		name string
		text string
	}{
		{"Empty", ""},
		{"ASCII", "# Hello\n\nSome **bold** text.\n"},
		{"Unicode", "héllo wörld — 日本語 🚀"},
		{"Repetitive", strings.Repeat("lorem ipsum dolor sit amet\n", 200)},
		{"Whitespace only", " \t\n\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := Encode(tt.text)
			decoded, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.text, decoded)
		})
	}
}

func TestEncodeIsURLSafe(t *testing.T) {
	token := Encode(strings.Repeat("markdown?&=# ", 100))
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestDecodeRewrittenTokens(t *testing.T) {

	t.Run("Spaces from query-string decoding", func(t *testing.T) {
		token := Encode("shared document")
		mangled := strings.ReplaceAll(token, "-", " ")
		decoded, err := Decode(mangled)
		require.NoError(t, err)
		assert.Equal(t, "shared document", decoded)
	})

	t.Run("Standard alphabet with padding", func(t *testing.T) {
		token := Encode("shared document")
		mangled := strings.ReplaceAll(token, "-", "+")
		mangled = strings.ReplaceAll(mangled, "_", "/")
		for len(mangled)%4 != 0 {
			mangled += "="
		}
		decoded, err := Decode(mangled)
		require.NoError(t, err)
		assert.Equal(t, "shared document", decoded)
	})
}

func TestDecodeCorrupt(t *testing.T) {

	t.Run("Not base64", func(t *testing.T) {
		_, err := Decode("%%%%%")
		assert.Error(t, err)
	})

	t.Run("Not zlib", func(t *testing.T) {
		_, err := Decode("aGVsbG8") // base64("hello") but not compressed
		assert.Error(t, err)
	})

	t.Run("Truncated stream", func(t *testing.T) {
		token := Encode(strings.Repeat("some longer document body\n", 50))
		_, err := Decode(token[:len(token)/2])
		assert.Error(t, err)
	})
}
