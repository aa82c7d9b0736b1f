package editor

import "regexp"

// Span is a match location in the buffer, in byte offsets.
type Span struct {
	Start int
	End   int
}

// FindMatches scans the whole text for query and returns non-overlapping
// spans in ascending order. The query is a regular expression; a malformed
// pattern or an empty query yields no matches, never an error. Documents are
// small enough that a full rescan beats incremental matching in simplicity.
func FindMatches(text, query string, caseSensitive bool) []Span {
	if query == "" {
		return nil
	}
	pattern := query
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		// Silent degrade: a half-typed pattern is not an error
		return nil
	}
	indexes := re.FindAllStringIndex(text, -1)
	var spans []Span
	for _, idx := range indexes {
		if idx[0] == idx[1] {
			continue // Zero-width matches are useless as highlights
		}
		spans = append(spans, Span{Start: idx[0], End: idx[1]})
	}
	return spans
}

// Search tracks the live query and the current match cursor. Matches are
// recomputed from scratch on every text, query or case-flag change so spans
// are always valid against the current buffer.
type Search struct {
	query         string
	caseSensitive bool
	matches       []Span
	current       int
}

func NewSearch() *Search {
	return &Search{}
}

// SetQuery changes the query or the case flag and rescans text.
func (s *Search) SetQuery(query string, caseSensitive bool, text string) {
	s.query = query
	s.caseSensitive = caseSensitive
	s.current = 0
	s.matches = FindMatches(text, query, caseSensitive)
}

// Refresh rescans after a buffer change. The current match index wraps to 0
// when it no longer points inside the new match list.
func (s *Search) Refresh(text string) {
	s.matches = FindMatches(text, s.query, s.caseSensitive)
	if s.current >= len(s.matches) {
		s.current = 0
	}
}

func (s *Search) Query() string {
	return s.query
}

func (s *Search) Matches() []Span {
	return s.matches
}

// Current returns the active match, if any.
func (s *Search) Current() (Span, bool) {
	if len(s.matches) == 0 {
		return Span{}, false
	}
	return s.matches[s.current], true
}

// Next moves the cursor forward, wrapping past the last match.
func (s *Search) Next() (Span, bool) {
	if len(s.matches) == 0 {
		return Span{}, false
	}
	s.current = (s.current + 1) % len(s.matches)
	return s.matches[s.current], true
}

// Prev moves the cursor backward, wrapping before the first match.
func (s *Search) Prev() (Span, bool) {
	if len(s.matches) == 0 {
		return Span{}, false
	}
	s.current = (s.current - 1 + len(s.matches)) % len(s.matches)
	return s.matches[s.current], true
}
