package editor

import (
	"time"

	"github.com/markpad/markpad/pkg/clock"
)

// DefaultQuietWindow is how long after the last event the driving pane keeps
// ownership of the scroll lock.
const DefaultQuietWindow = 50 * time.Millisecond

// Pane identifies one of the two synchronized scrollable regions.
type Pane int

const (
	PaneNone Pane = iota
	PaneEditor
	PanePreview
)

func (p Pane) String() string {
	switch p {
	case PaneEditor:
		return "editor"
	case PanePreview:
		return "preview"
	}
	return "none"
}

// ScrollView is a scrollable region addressed by proportional position
// (scrollTop / (scrollHeight - clientHeight)), because the two panes render
// the same document at different heights.
type ScrollView interface {
	ScrollFraction() float64
	SetScrollFraction(fraction float64)
}

// ScrollSync mirrors proportional scroll position between the editor and the
// preview. It is a two-state machine, Idle or Locked(owner, expiry): the pane
// that scrolls first owns the lock for a quiet window, and events arriving
// from the other pane while locked are echoes of our own programmatic scroll
// and are dropped. This breaks the feedback cycle and guarantees both panes
// converge after a single gesture.
type ScrollSync struct {
	clock   clock.Clock
	quiet   time.Duration
	editor  ScrollView
	preview ScrollView
	owner   Pane
	expiry  time.Time
}

func NewScrollSync(c clock.Clock, editor, preview ScrollView, quiet time.Duration) *ScrollSync {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &ScrollSync{
		clock:   c,
		quiet:   quiet,
		editor:  editor,
		preview: preview,
	}
}

// OnScroll handles a scroll event from source and reports whether it was
// propagated to the other pane (false means it was a suppressed echo).
func (s *ScrollSync) OnScroll(source Pane) bool {
	if source != PaneEditor && source != PanePreview {
		return false
	}
	now := s.clock.Now()
	if s.owner != PaneNone && s.owner != source && now.Before(s.expiry) {
		return false
	}
	s.owner = source
	s.expiry = now.Add(s.quiet)

	from, to := s.editor, s.preview
	if source == PanePreview {
		from, to = s.preview, s.editor
	}
	to.SetScrollFraction(from.ScrollFraction())
	return true
}

// Owner returns the pane currently holding the lock, or PaneNone once the
// quiet window has elapsed.
func (s *ScrollSync) Owner() Pane {
	if s.owner == PaneNone || !s.clock.Now().Before(s.expiry) {
		return PaneNone
	}
	return s.owner
}
