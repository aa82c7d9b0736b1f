package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/markpad/markpad/pkg/clock"
	"github.com/markpad/markpad/pkg/text"
	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
)

// DefaultCheckpointDelay is the quiet period after the last keystroke before
// the history checkpoint is committed.
const DefaultCheckpointDelay = 500 * time.Millisecond

const historyTask = "history"

// Placeholder marks the insertion point inside a snippet template.
const Placeholder = "{text}"

// Substituted for the placeholder when nothing is selected.
const placeholderWord = "text"

// DefaultDocument greets new users when no draft exists yet.
const DefaultDocument = `# Welcome to Markpad

Markpad is a Markdown scratchpad that lives entirely in your browser bar:
the **whole document** is compressed into the link, so sharing the link
shares the document. Nothing is stored on a server.

## Getting started

- Type on the left, read on the right
- *Undo* freely: a pause in typing creates a checkpoint
- Share with a single compressed URL

Happy writing!
`

// DefaultExtensions lists the file types accepted by ImportText.
var DefaultExtensions = []string{"md", "markdown", "txt"}

// ErrImportType rejects imports whose file type is not an allowed extension.
var ErrImportType = errors.New("unsupported file type")

// InsertMode selects the snippet insertion policy.
type InsertMode int

const (
	// InsertWrap splits the template on the placeholder and wraps the
	// selection (or a default word) between prefix and suffix.
	InsertWrap InsertMode = iota
	// InsertLine splices a prefix at the start of the current line.
	InsertLine
	// InsertBlock splices the template at the selection on its own lines.
	InsertBlock
)

// Session owns the live document buffer. Every mutation funnels through it:
// typing, snippet insertion, undo/redo and imports. Mutations are atomic
// under the session lock, so search and rendering subscribers always observe
// a complete post-mutation buffer.
type Session struct {
	mu sync.Mutex

	clock     clock.Clock
	bus       *Bus
	debouncer *Debouncer
	persister *Persister
	history   *History
	search    *Search

	checkpointDelay time.Duration
	saveDelay       time.Duration
	historyLimit    int
	extensions      []string
	defaultDoc      string

	buffer   string
	selStart int
	selEnd   int
}

// NewSession loads the draft (or the default document) and starts a fresh
// history lineage from it.
func NewSession(store DraftStore, options ...func(*Session)) *Session {
	s := &Session{
		clock:           clock.CurrentClock(),
		bus:             NewBus(),
		search:          NewSearch(),
		checkpointDelay: DefaultCheckpointDelay,
		saveDelay:       DefaultSaveDelay,
		historyLimit:    DefaultHistoryLimit,
		extensions:      DefaultExtensions,
		defaultDoc:      DefaultDocument,
	}
	for _, option := range options {
		option(s)
	}
	s.debouncer = NewDebouncer(s.clock)
	s.persister = NewPersister(store, s.debouncer, s.saveDelay)
	s.buffer = s.persister.Load(s.defaultDoc)
	s.history = NewHistory(s.buffer, s.historyLimit)
	s.search.Refresh(s.buffer)
	return s
}

func WithClock(c clock.Clock) func(*Session) {
	return func(s *Session) {
		s.clock = c
	}
}

func WithCheckpointDelay(d time.Duration) func(*Session) {
	return func(s *Session) {
		s.checkpointDelay = d
	}
}

func WithSaveDelay(d time.Duration) func(*Session) {
	return func(s *Session) {
		s.saveDelay = d
	}
}

func WithHistoryLimit(limit int) func(*Session) {
	return func(s *Session) {
		s.historyLimit = limit
	}
}

func WithExtensions(extensions []string) func(*Session) {
	return func(s *Session) {
		s.extensions = extensions
	}
}

func WithDefaultDocument(doc string) func(*Session) {
	return func(s *Session) {
		s.defaultDoc = doc
	}
}

// Bus exposes the session notification channel for subscribers.
func (s *Session) Bus() *Bus {
	return s.bus
}

func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

func (s *Session) Selection() (start, end int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selStart, s.selEnd
}

func (s *Session) SetSelection(start, end int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start = text.Clamp(s.buffer, start)
	end = text.Clamp(s.buffer, end)
	if start > end {
		start, end = end, start
	}
	s.selStart, s.selEnd = start, end
}

// SetText replaces the buffer unconditionally. This is the funnel for direct
// typing: the buffer updates immediately, while the history checkpoint and
// the draft write are debounced so a burst of keystrokes produces exactly one
// of each.
func (s *Session) SetText(newText string) {
	s.mu.Lock()
	s.buffer = newText
	s.clampSelectionLocked()
	s.search.Refresh(newText)
	s.mu.Unlock()

	s.debouncer.Schedule(historyTask, s.checkpointDelay, s.commitCheckpoint)
	s.persister.ScheduleSave(newText)
	s.bus.Publish(Event{Kind: EventBufferChanged, Text: newText})
}

func (s *Session) commitCheckpoint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Commit(s.buffer)
}

// InsertAtSelection splices a snippet according to mode and returns the new
// caret offset so the caller can restore focus deterministically. Unlike free
// typing, a snippet insertion is a deliberate act and commits to history
// immediately.
func (s *Session) InsertAtSelection(fragment string, mode InsertMode) int {
	s.mu.Lock()
	s.debouncer.Cancel(historyTask)
	s.history.Commit(s.buffer) // Flush the in-progress typing burst first

	var caret int
	switch mode {
	case InsertWrap:
		caret = s.insertWrapLocked(fragment)
	case InsertLine:
		caret = s.insertLineLocked(fragment)
	case InsertBlock:
		caret = s.insertBlockLocked(fragment)
	default:
		caret = s.selEnd
		s.mu.Unlock()
		return caret
	}

	s.history.Commit(s.buffer)
	s.search.Refresh(s.buffer)
	newText := s.buffer
	s.mu.Unlock()

	s.persister.ScheduleSave(newText)
	s.bus.Publish(Event{Kind: EventBufferChanged, Text: newText})
	return caret
}

func (s *Session) insertWrapLocked(template string) int {
	prefix, suffix, found := strings.Cut(template, Placeholder)
	selected := s.buffer[s.selStart:s.selEnd]
	if !found {
		// No placeholder: the template replaces the selection as-is
		s.buffer = s.buffer[:s.selStart] + template + s.buffer[s.selEnd:]
		caret := s.selStart + len(template)
		s.selStart, s.selEnd = caret, caret
		return caret
	}
	content := placeholderWord
	if selected != "" {
		content = selected
	}
	s.buffer = s.buffer[:s.selStart] + prefix + content + suffix + s.buffer[s.selEnd:]
	// Select the substituted content so the caller can type over it
	s.selStart += len(prefix)
	s.selEnd = s.selStart + len(content)
	return s.selEnd
}

func (s *Session) insertLineLocked(prefix string) int {
	lineStart := text.LineStart(s.buffer, s.selStart)
	s.buffer = s.buffer[:lineStart] + prefix + s.buffer[lineStart:]
	caret := s.selStart + len(prefix)
	s.selStart, s.selEnd = caret, caret
	return caret
}

func (s *Session) insertBlockLocked(template string) int {
	body := template
	if strings.Contains(template, Placeholder) {
		content := placeholderWord
		if selected := s.buffer[s.selStart:s.selEnd]; selected != "" {
			content = selected
		}
		body = strings.Replace(template, Placeholder, content, 1)
	}
	replacement := "\n" + body + "\n"
	s.buffer = s.buffer[:s.selStart] + replacement + s.buffer[s.selEnd:]
	caret := s.selStart + len(replacement)
	s.selStart, s.selEnd = caret, caret
	return caret
}

// ImportText replaces the whole document with an imported file. An import is
// a deliberate, infrequent replacement, not a keystroke: history restarts
// from the imported content and the draft is written synchronously. On a
// rejected file type the buffer is left untouched.
func (s *Session) ImportText(name, content string) error {
	if !s.supportsExtension(name) {
		s.bus.Notify(NoticeError, fmt.Sprintf("Cannot import %q: supported extensions are %s",
			name, strings.Join(s.extensions, ", ")))
		return fmt.Errorf("%w: %s", ErrImportType, filepath.Ext(name))
	}
	content = normalizeImport(content)

	s.mu.Lock()
	s.debouncer.Cancel(historyTask)
	s.buffer = content
	s.selStart, s.selEnd = 0, 0
	s.history.Reset(content)
	s.search.Refresh(content)
	s.mu.Unlock()

	s.persister.SaveNow(content)
	s.bus.Publish(Event{Kind: EventBufferChanged, Text: content})
	s.bus.Notify(NoticeInfo, fmt.Sprintf("Imported %s", name))
	return nil
}

func (s *Session) supportsExtension(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return slices.ContainsFunc(s.extensions, func(allowed string) bool {
		return strings.EqualFold(allowed, ext)
	})
}

// Imported files may come from anywhere: normalize Unicode to NFC and line
// endings to LF so search offsets and the codec behave predictably.
func normalizeImport(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return norm.NFC.String(content)
}

// Undo reverts the buffer to the previous checkpoint. A typing burst still
// waiting for its debounce is committed first so it is undoable too.
// Reports false (a harmless no-op) when there is nothing to undo.
func (s *Session) Undo() bool {
	return s.timeTravel((*History).Undo)
}

// Redo re-applies the most recently undone checkpoint. Reports false when
// there is nothing to redo.
func (s *Session) Redo() bool {
	return s.timeTravel((*History).Redo)
}

func (s *Session) timeTravel(move func(*History, string) (string, bool)) bool {
	s.mu.Lock()
	s.debouncer.Cancel(historyTask)
	s.history.Commit(s.buffer)
	value, ok := move(s.history, s.buffer)
	if ok {
		s.buffer = value
		s.clampSelectionLocked()
		s.search.Refresh(value)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	s.persister.ScheduleSave(value)
	s.bus.Publish(Event{Kind: EventBufferChanged, Text: value})
	return true
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// SetSearchQuery updates the live query and returns the matches against the
// current buffer.
func (s *Session) SetSearchQuery(query string, caseSensitive bool) []Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search.SetQuery(query, caseSensitive, s.buffer)
	return s.search.Matches()
}

func (s *Session) SearchMatches() []Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.Matches()
}

func (s *Session) CurrentMatch() (Span, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.Current()
}

func (s *Session) NextMatch() (Span, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.Next()
}

func (s *Session) PrevMatch() (Span, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.Prev()
}

// Close flushes the pending draft write and drops the pending checkpoint.
func (s *Session) Close() {
	s.debouncer.Cancel(historyTask)
	s.debouncer.Flush(draftTask)
}

func (s *Session) clampSelectionLocked() {
	s.selStart = text.Clamp(s.buffer, s.selStart)
	s.selEnd = text.Clamp(s.buffer, s.selEnd)
}
