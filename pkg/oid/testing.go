package oid

import "testing"

// UseFixed makes every generated OID identical for the duration of a test.
func UseFixed(t *testing.T, value OID) {
	generator = NewFixedGenerator(value)
	t.Cleanup(Reset)
}

// UseSequence makes generated OIDs predictable for the duration of a test.
func UseSequence(t *testing.T) {
	generator = NewSequenceGenerator()
	t.Cleanup(Reset)
}
