package editor

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// The codec turns a document into a token small enough to live inside a URL:
// zlib compression followed by URL-safe base64 without padding, so the token
// never needs percent-encoding in transit.

// Encode compresses text into a URL-safe share token.
func Encode(text string) string {
	var zb bytes.Buffer
	w := zlib.NewWriter(&zb)
	w.Write([]byte(text))
	w.Close()
	return base64.RawURLEncoding.EncodeToString(zb.Bytes())
}

// Decode reverses Encode. It tolerates tokens rewritten in transit: literal
// spaces are mapped back to '+' (query-string decoding turns '+' into a
// space), and the standard base64 alphabet with padding is accepted alongside
// the URL-safe one.
func Decode(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(normalizeToken(token))
	if err != nil {
		return "", fmt.Errorf("invalid encoding: %w", err)
	}
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("invalid compressed data: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("truncated compressed data: %w", err)
	}
	if !utf8.Valid(out) {
		// Never display binary garbage as a document.
		return "", errors.New("decoded content is not valid UTF-8")
	}
	return string(out), nil
}

var tokenNormalizer = strings.NewReplacer(
	" ", "-", // '+' decoded to ' ' by query parsing, then mapped like '+'
	"+", "-",
	"/", "_",
)

func normalizeToken(token string) string {
	token = strings.TrimRight(token, "=")
	return tokenNormalizer.Replace(token)
}
