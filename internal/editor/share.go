package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxURLLength is the longest share link considered safe to paste
// anywhere. Beyond it the boundary escalates to a shortening service.
const DefaultMaxURLLength = 2000

// DefaultOrigin hosts the viewer the share links point at.
const DefaultOrigin = "https://markpad.app"

// The three decode failures are distinguishable so callers can word their
// messages: a link without a document, a link with an empty one, and a link
// whose token cannot be decoded.
var (
	ErrShareAbsent = errors.New("share link contains no document")
	ErrShareEmpty  = errors.New("share link document is empty")
)

// ShareKind is the outcome of the size-based escalation policy.
type ShareKind int

const (
	// ShareDirect fits within the maximum URL length.
	ShareDirect ShareKind = iota
	// ShareShortened exceeded the threshold and was shortened successfully.
	ShareShortened
	// ShareTooLarge exceeded the threshold and could not be shortened. The
	// full link is still returned: content is never silently dropped, the
	// caller must offer copying the raw content or downloading a file.
	ShareTooLarge
)

func (k ShareKind) String() string {
	switch k {
	case ShareDirect:
		return "direct"
	case ShareShortened:
		return "shortened"
	case ShareTooLarge:
		return "too-large"
	}
	return "unknown"
}

type ShareResult struct {
	Kind ShareKind
	URL  string
}

// Shortener turns a long URL into a short one. Implementations are untrusted
// and possibly slow or unavailable.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// HTTPShortener calls a tinyurl-style endpoint that answers a GET request
// with the short URL as its plain-text body.
type HTTPShortener struct {
	endpoint string
	client   *http.Client
}

func NewHTTPShortener(endpoint string) *HTTPShortener {
	return &HTTPShortener{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *HTTPShortener) Shorten(ctx context.Context, longURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?url="+url.QueryEscape(longURL), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shortener answered %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", err
	}
	short := strings.TrimSpace(string(body))
	if _, err := url.ParseRequestURI(short); err != nil {
		return "", fmt.Errorf("shortener answered garbage: %w", err)
	}
	return short, nil
}

// Sharer builds and parses share references.
type Sharer struct {
	origin    string
	maxLength int
	shortener Shortener
}

// NewSharer accepts a nil shortener, in which case over-long links escalate
// straight to ShareTooLarge.
func NewSharer(origin string, maxLength int, shortener Shortener) *Sharer {
	if origin == "" {
		origin = DefaultOrigin
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxURLLength
	}
	return &Sharer{
		origin:    origin,
		maxLength: maxLength,
		shortener: shortener,
	}
}

// BuildShareReference compresses text into a share link and applies the
// escalation policy: direct link, shortened link, or too-large with the full
// link intact.
func (s *Sharer) BuildShareReference(ctx context.Context, text string) ShareResult {
	link := s.origin + "/#/view?c=" + Encode(text)
	if len(link) <= s.maxLength {
		return ShareResult{Kind: ShareDirect, URL: link}
	}
	if s.shortener == nil {
		return ShareResult{Kind: ShareTooLarge, URL: link}
	}
	short, err := s.shortener.Shorten(ctx, link)
	if err != nil {
		CurrentLogger().Warnf("Cannot shorten share link: %v", err)
		return ShareResult{Kind: ShareTooLarge, URL: link}
	}
	if short == "" || len(short) > s.maxLength {
		return ShareResult{Kind: ShareTooLarge, URL: link}
	}
	return ShareResult{Kind: ShareShortened, URL: short}
}

// ParseShareReference reconstructs a document from a share link or from a
// bare "c=..." query. The three failure modes stay distinguishable:
// errors.Is(err, ErrShareAbsent), errors.Is(err, ErrShareEmpty), and any
// other non-nil error meaning a corrupt token.
func ParseShareReference(rawURL string) (string, error) {
	values, err := shareQuery(rawURL)
	if err != nil {
		return "", fmt.Errorf("corrupted share link: %w", err)
	}
	if !values.Has("c") {
		return "", ErrShareAbsent
	}
	token := values.Get("c")
	if token == "" {
		return "", ErrShareEmpty
	}
	decoded, err := Decode(token)
	if err != nil {
		return "", fmt.Errorf("corrupted share link: %w", err)
	}
	return decoded, nil
}

func shareQuery(rawURL string) (url.Values, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	// The document rides in the fragment ("/#/view?c=..."), which browsers
	// never send to a server. Accept a plain query too for convenience.
	query := u.RawQuery
	if _, frag, found := strings.Cut(u.Fragment, "?"); found {
		query = frag
	}
	return url.ParseQuery(query)
}
