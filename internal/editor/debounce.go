package editor

import (
	"sync"
	"time"

	"github.com/markpad/markpad/pkg/clock"
)

// Debouncer coalesces bursts of work: scheduling under a key that already has
// a pending task cancels and replaces it, so a burst of N schedules runs the
// action exactly once, after the delay following the last schedule.
type Debouncer struct {
	mu      sync.Mutex
	clock   clock.Clock
	pending map[string]*debouncedTask
}

type debouncedTask struct {
	timer  clock.Timer
	action func()
}

func NewDebouncer(c clock.Clock) *Debouncer {
	return &Debouncer{
		clock:   c,
		pending: make(map[string]*debouncedTask),
	}
}

// Schedule runs action after delay, replacing any pending task under key.
func (d *Debouncer) Schedule(key string, delay time.Duration, action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if previous, ok := d.pending[key]; ok {
		previous.timer.Stop()
	}
	task := &debouncedTask{action: action}
	task.timer = d.clock.AfterFunc(delay, func() {
		d.fire(key, task)
	})
	d.pending[key] = task
}

func (d *Debouncer) fire(key string, task *debouncedTask) {
	d.mu.Lock()
	if d.pending[key] != task {
		// Superseded between firing and locking
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()
	task.action()
}

// Cancel drops the pending task under key. It reports whether one was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	task, ok := d.pending[key]
	if !ok {
		return false
	}
	task.timer.Stop()
	delete(d.pending, key)
	return true
}

// Flush runs the pending task under key immediately, if any.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()
	task, ok := d.pending[key]
	if ok {
		task.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()
	if ok {
		task.action()
	}
}

// Pending reports whether a task is waiting under key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}
