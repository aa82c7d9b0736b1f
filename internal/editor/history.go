package editor

// DefaultHistoryLimit bounds the number of retained past snapshots. Exceeding
// it evicts the oldest snapshot, trading undo depth for bounded memory.
const DefaultHistoryLimit = 50

// History holds the bounded undo/redo stacks plus the last committed
// checkpoint. The checkpoint decides whether a new buffer value is distinct
// enough to record; it always equals the most recently committed snapshot.
type History struct {
	limit      int
	past       []string
	future     []string
	checkpoint string
}

// NewHistory starts an empty history whose checkpoint is the initial buffer.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewHistory(initial string, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		limit:      limit,
		checkpoint: initial,
	}
}

// Commit records the transition from the current checkpoint to the new buffer
// value: the superseded checkpoint is pushed onto the undo stack and current
// becomes the new checkpoint. A value equal to the checkpoint is not distinct
// and records nothing. Committing always clears the redo stack.
func (h *History) Commit(current string) bool {
	if current == h.checkpoint {
		return false
	}
	h.past = h.push(h.past, h.checkpoint)
	h.future = nil
	h.checkpoint = current
	return true
}

// Undo exchanges the current buffer for the most recent past snapshot.
// A harmless no-op when the undo stack is empty.
func (h *History) Undo(current string) (string, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	h.checkpoint = prev
	return prev, true
}

// Redo exchanges the current buffer for the most recently undone snapshot.
// A harmless no-op when the redo stack is empty.
func (h *History) Redo(current string) (string, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = h.push(h.past, current)
	h.checkpoint = next
	return next, true
}

// Reset drops both stacks and restarts the lineage from text. Used after an
// import: imported content must not be undoable into the previous document.
func (h *History) Reset(text string) {
	h.past = nil
	h.future = nil
	h.checkpoint = text
}

func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// UndoDepth returns the number of retained past snapshots.
func (h *History) UndoDepth() int {
	return len(h.past)
}

func (h *History) push(stack []string, snapshot string) []string {
	stack = append(stack, snapshot)
	if len(stack) > h.limit {
		stack = stack[len(stack)-h.limit:]
	}
	return stack
}
