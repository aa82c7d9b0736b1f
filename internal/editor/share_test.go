package editor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubShortener struct {
	short string
	err   error
	calls int
}

func (s *stubShortener) Shorten(ctx context.Context, longURL string) (string, error) {
	s.calls++
	return s.short, s.err
}

func TestBuildShareReference(t *testing.T) {

	t.Run("Direct when under the threshold", func(t *testing.T) {
		shortener := &stubShortener{}
		sharer := NewSharer("", 0, shortener)

		result := sharer.BuildShareReference(context.Background(), "# Small doc")
		assert.Equal(t, ShareDirect, result.Kind)
		assert.True(t, strings.HasPrefix(result.URL, DefaultOrigin+"/#/view?c="))
		assert.Equal(t, 0, shortener.calls) // No escalation needed

		// The link must round-trip
		decoded, err := ParseShareReference(result.URL)
		require.NoError(t, err)
		assert.Equal(t, "# Small doc", decoded)
	})

	t.Run("Shortened when over the threshold", func(t *testing.T) {
		shortener := &stubShortener{short: "https://sho.rt/abc"}
		sharer := NewSharer("", 200, shortener)

		result := sharer.BuildShareReference(context.Background(), randomish(4000))
		assert.Equal(t, ShareShortened, result.Kind)
		assert.Equal(t, "https://sho.rt/abc", result.URL)
	})

	t.Run("TooLarge when the shortener fails", func(t *testing.T) {
		shortener := &stubShortener{err: errors.New("service unavailable")}
		sharer := NewSharer("", 200, shortener)

		result := sharer.BuildShareReference(context.Background(), randomish(4000))
		assert.Equal(t, ShareTooLarge, result.Kind)

		// Content is never dropped: the full link still round-trips
		decoded, err := ParseShareReference(result.URL)
		require.NoError(t, err)
		assert.Equal(t, randomish(4000), decoded)
	})

	t.Run("TooLarge when the short link is still too long", func(t *testing.T) {
		shortener := &stubShortener{short: "https://sho.rt/" + strings.Repeat("x", 300)}
		sharer := NewSharer("", 200, shortener)

		result := sharer.BuildShareReference(context.Background(), randomish(4000))
		assert.Equal(t, ShareTooLarge, result.Kind)
	})

	t.Run("TooLarge without a shortener", func(t *testing.T) {
		sharer := NewSharer("", 200, nil)
		result := sharer.BuildShareReference(context.Background(), randomish(4000))
		assert.Equal(t, ShareTooLarge, result.Kind)
	})
}

// randomish produces an incompressible-ish text of at least n bytes so the
// encoded link reliably exceeds small thresholds.
func randomish(n int) string {
	var sb strings.Builder
	for i := 0; sb.Len() < n; i++ {
		fmt.Fprintf(&sb, "%d-%x ", i, i*2654435761)
	}
	return sb.String()
}

func TestParseShareReference(t *testing.T) {

	t.Run("Absent parameter", func(t *testing.T) {
		_, err := ParseShareReference("https://markpad.app/#/view")
		assert.ErrorIs(t, err, ErrShareAbsent)
	})

	t.Run("Empty value is not absent", func(t *testing.T) {
		_, err := ParseShareReference("https://markpad.app/#/view?c=")
		assert.ErrorIs(t, err, ErrShareEmpty)
		assert.NotErrorIs(t, err, ErrShareAbsent)
	})

	t.Run("Corrupt token", func(t *testing.T) {
		_, err := ParseShareReference("https://markpad.app/#/view?c=definitely-not-a-document")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrShareAbsent)
		assert.NotErrorIs(t, err, ErrShareEmpty)
	})

	t.Run("Query outside the fragment", func(t *testing.T) {
		text, err := ParseShareReference("https://markpad.app/view?c=" + Encode("plain query"))
		require.NoError(t, err)
		assert.Equal(t, "plain query", text)
	})

	t.Run("Plus signs decoded to spaces in transit", func(t *testing.T) {
		token := strings.ReplaceAll(Encode("resilient"), "-", " ")
		text, err := ParseShareReference("https://markpad.app/#/view?c=" + token)
		require.NoError(t, err)
		assert.Equal(t, "resilient", text)
	})
}

func TestHTTPShortener(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "https://markpad.app/#/view?c=abc", r.URL.Query().Get("url"))
			fmt.Fprint(w, "https://sho.rt/xyz\n")
		}))
		defer server.Close()

		short, err := NewHTTPShortener(server.URL).Shorten(context.Background(), "https://markpad.app/#/view?c=abc")
		require.NoError(t, err)
		assert.Equal(t, "https://sho.rt/xyz", short)
	})

	t.Run("Non-200 answer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "try later", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewHTTPShortener(server.URL).Shorten(context.Background(), "https://example.org")
		assert.Error(t, err)
	})

	t.Run("Garbage answer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "oops not a url at all")
		}))
		defer server.Close()

		_, err := NewHTTPShortener(server.URL).Shorten(context.Background(), "https://example.org")
		assert.Error(t, err)
	})

	t.Run("Cancelled context discards the call", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewHTTPShortener("http://127.0.0.1:0").Shorten(ctx, "https://example.org")
		assert.Error(t, err)
	})
}
