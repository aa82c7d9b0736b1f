package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCommit(t *testing.T) {

	t.Run("Records distinct values only", func(t *testing.T) {
		h := NewHistory("", 0)
		assert.True(t, h.Commit("a"))
		assert.False(t, h.Commit("a")) // Same as checkpoint
		assert.True(t, h.Commit("b"))
		assert.Equal(t, 2, h.UndoDepth())
	})

	t.Run("Clears the redo stack", func(t *testing.T) {
		h := NewHistory("", 0)
		h.Commit("a")
		h.Commit("b")
		h.Undo("b")
		require.True(t, h.CanRedo())

		h.Commit("c")
		assert.False(t, h.CanRedo()) // A fresh edit branches history
	})

	t.Run("Evicts the oldest beyond the cap", func(t *testing.T) {
		h := NewHistory("v0", 0)
		for i := 1; i <= 60; i++ {
			h.Commit(fmt.Sprintf("v%d", i))
		}
		assert.Equal(t, 50, h.UndoDepth())

		// The most recent snapshots survived, the oldest 10 are gone
		current := "v60"
		for i := 59; i >= 10; i-- {
			var ok bool
			current, ok = h.Undo(current)
			require.True(t, ok)
			assert.Equal(t, fmt.Sprintf("v%d", i), current)
		}
		_, ok := h.Undo(current)
		assert.False(t, ok)
	})
}

func TestHistoryUndoRedo(t *testing.T) {

	t.Run("Undo then redo is an inverse", func(t *testing.T) {
		h := NewHistory("", 0)
		h.Commit("a")
		h.Commit("b")

		value, ok := h.Undo("b")
		require.True(t, ok)
		assert.Equal(t, "a", value)

		value, ok = h.Redo(value)
		require.True(t, ok)
		assert.Equal(t, "b", value)
	})

	t.Run("Empty stacks are harmless no-ops", func(t *testing.T) {
		h := NewHistory("doc", 0)
		value, ok := h.Undo("doc")
		assert.False(t, ok)
		assert.Equal(t, "doc", value)

		value, ok = h.Redo("doc")
		assert.False(t, ok)
		assert.Equal(t, "doc", value)
	})

	t.Run("Undo moves the checkpoint", func(t *testing.T) {
		h := NewHistory("", 0)
		h.Commit("a")
		value, _ := h.Undo("a")
		assert.Equal(t, "", value)

		// Re-committing the undone value must be recorded again
		assert.True(t, h.Commit("a"))
	})
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory("", 0)
	h.Commit("a")
	h.Commit("b")
	h.Undo("b")
	require.True(t, h.CanUndo())
	require.True(t, h.CanRedo())

	h.Reset("imported")
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.False(t, h.Commit("imported")) // New lineage starts here
}
