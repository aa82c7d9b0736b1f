package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/markpad/markpad/internal/helpers"
	"github.com/markpad/markpad/pkg/clock"
	"github.com/markpad/markpad/pkg/oid"
	"gopkg.in/yaml.v3"
)

// DefaultSaveDelay is the quiet period before the live buffer is written
// through to the draft store.
const DefaultSaveDelay = time.Second

const draftTask = "draft"

// DraftStore persists the most recent buffer value under a fixed key.
type DraftStore interface {
	// Load returns the persisted draft. found is false when no draft exists,
	// which is an empty-state signal, not an error.
	Load() (content string, found bool, err error)
	// Save replaces the persisted draft. Failures are non-fatal.
	Save(content string) error
}

// Draft is the on-disk draft format.
type Draft struct {
	OID       oid.OID   `yaml:"oid"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Content   string    `yaml:"content"`
}

// FileDraftStore keeps the draft in a single YAML file.
type FileDraftStore struct {
	path string
	oid  oid.OID
}

func NewFileDraftStore(path string) *FileDraftStore {
	return &FileDraftStore{
		path: path,
	}
}

func (s *FileDraftStore) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	var draft Draft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return "", false, fmt.Errorf("unreadable draft file %s: %w", s.path, err)
	}
	s.oid = draft.OID
	return draft.Content, true, nil
}

func (s *FileDraftStore) Save(content string) error {
	if s.oid.IsNil() {
		s.oid = oid.New()
	}
	draft := Draft{
		OID:       s.oid,
		UpdatedAt: clock.Now(),
		Content:   content,
	}
	data, err := yaml.Marshal(&draft)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a half-written draft
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Persister debounces write-through of the live buffer to a draft store,
// coalescing a burst of edits into a single write. Saves may come from the
// debounce timer goroutine and from callers at once; the mutex serializes the
// hash check and the store write.
type Persister struct {
	mu        sync.Mutex
	store     DraftStore
	debouncer *Debouncer
	delay     time.Duration
	lastHash  string
}

func NewPersister(store DraftStore, debouncer *Debouncer, delay time.Duration) *Persister {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Persister{
		store:     store,
		debouncer: debouncer,
		delay:     delay,
	}
}

// Load returns the persisted draft, or fallback when absent or unreadable.
// A missing or broken draft never blocks the session from starting.
func (p *Persister) Load(fallback string) string {
	content, found, err := p.store.Load()
	if err != nil {
		CurrentLogger().Warnf("Ignoring draft: %v", err)
		return fallback
	}
	if !found {
		return fallback
	}
	p.mu.Lock()
	p.lastHash = helpers.Hash([]byte(content))
	p.mu.Unlock()
	return content
}

// ScheduleSave queues a debounced write of text.
func (p *Persister) ScheduleSave(text string) {
	p.debouncer.Schedule(draftTask, p.delay, func() {
		p.SaveNow(text)
	})
}

// SaveNow writes text immediately, cancelling any pending debounced write.
// Failures (e.g. storage quota) are logged and swallowed: losing a draft is
// an accepted risk, interrupting editing is not.
func (p *Persister) SaveNow(text string) {
	p.debouncer.Cancel(draftTask)
	p.mu.Lock()
	defer p.mu.Unlock()
	hash := helpers.Hash([]byte(text))
	if hash == p.lastHash {
		// Nothing changed since the last write
		return
	}
	if err := p.store.Save(text); err != nil {
		CurrentLogger().Warnf("Cannot save draft: %v", err)
		return
	}
	p.lastHash = hash
}
