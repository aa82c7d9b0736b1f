package text

import (
	"testing"

	"gotest.tools/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp("abc", -1))
	assert.Equal(t, 2, Clamp("abc", 2))
	assert.Equal(t, 3, Clamp("abc", 10))
}

func TestLineStart(t *testing.T) {
	doc := "# Title\n\nSome text\n"
	assert.Equal(t, 0, LineStart(doc, 0))
	assert.Equal(t, 0, LineStart(doc, 4))
	assert.Equal(t, 8, LineStart(doc, 8))
	assert.Equal(t, 9, LineStart(doc, 12)) // Inside "Some text"
	assert.Equal(t, 19, LineStart(doc, 19))
}

func TestLineEnd(t *testing.T) {
	doc := "# Title\n\nSome text"
	assert.Equal(t, 7, LineEnd(doc, 0))
	assert.Equal(t, 7, LineEnd(doc, 7))
	assert.Equal(t, 8, LineEnd(doc, 8))
	assert.Equal(t, 18, LineEnd(doc, 12)) // Last line has no trailing newline
}

func TestIsBlank(t *testing.T) {
	assert.Assert(t, IsBlank(""))
	assert.Assert(t, IsBlank("  \t\n"))
	assert.Assert(t, !IsBlank(" a "))
}
