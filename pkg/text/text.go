// Package text provides offset arithmetic on raw strings.
package text

import "strings"

// Clamp forces an offset inside [0, len(text)].
func Clamp(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(text) {
		return len(text)
	}
	return offset
}

// LineStart returns the offset of the first character of the line containing offset.
func LineStart(text string, offset int) int {
	offset = Clamp(text, offset)
	i := strings.LastIndexByte(text[:offset], '\n')
	return i + 1
}

// LineEnd returns the offset just past the last character of the line
// containing offset (excluding the newline itself).
func LineEnd(text string, offset int) int {
	offset = Clamp(text, offset)
	i := strings.IndexByte(text[offset:], '\n')
	if i < 0 {
		return len(text)
	}
	return offset + i
}

// IsBlank returns if a text is blank.
func IsBlank(text string) bool {
	return len(strings.TrimSpace(text)) == 0
}
