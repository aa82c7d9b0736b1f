// Package clock abstracts time so that debounce delays and quiet windows can
// be tested with a virtual clock instead of real sleeps.
package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/markpad/markpad/pkg/resync"
)

var (
	// Lazy-load
	clockOnce      resync.Once
	clockSingleton Clock
)

// Clock tells the time and schedules callbacks.
type Clock interface {
	Now() time.Time
	// AfterFunc runs f after d has elapsed. f runs on its own goroutine for
	// the default clock and synchronously from FastForward for the test clock.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was still pending.
	Stop() bool
}

type DefaultClock struct{}

func (c DefaultClock) Now() time.Time {
	return time.Now()
}

func (c DefaultClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{time.AfterFunc(d, f)}
}

type realTimer struct {
	t *time.Timer
}

func (t realTimer) Stop() bool {
	return t.t.Stop()
}

// TestClock only moves when fast-forwarded, firing due timers deterministically.
type TestClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*testTimer
}

func NewTestClock() *TestClock {
	return NewTestClockAt(time.Now())
}

func NewTestClockAt(date time.Time) *TestClock {
	return &TestClock{
		now: date,
	}
}

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *TestClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &testTimer{
		clock:    c,
		deadline: c.now.Add(d),
		fn:       f,
	}
	c.timers = append(c.timers, timer)
	return timer
}

// FastForward advances the clock, running every pending callback whose
// deadline is reached, in deadline order.
func (c *TestClock) FastForward(d time.Duration) time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due, pending []*testTimer
	for _, timer := range c.timers {
		if timer.stopped {
			continue
		}
		if timer.deadline.After(now) {
			pending = append(pending, timer)
		} else {
			// Fired timers must report false from Stop, like time.Timer
			timer.stopped = true
			due = append(due, timer)
		}
	}
	c.timers = pending
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	c.mu.Unlock()

	// Callbacks run unlocked so they can schedule new timers.
	for _, timer := range due {
		timer.fn()
	}
	return now
}

type testTimer struct {
	clock    *TestClock
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *testTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func CurrentClock() Clock {
	if clockSingleton != nil {
		return clockSingleton
	}
	clockOnce.Do(func() {
		clockSingleton = DefaultClock{}
	})
	return clockSingleton
}

// Same as time.Now() but makes possible to control time from unit tests.
func Now() time.Time {
	return CurrentClock().Now()
}

func FreezeAt(now time.Time) *TestClock {
	testClock := NewTestClockAt(now)
	clockSingleton = testClock
	return testClock
}

func Freeze() *TestClock {
	testClock := NewTestClock()
	clockSingleton = testClock
	return testClock
}

func Unfreeze() {
	clockSingleton = nil
	clockOnce.Reset()
}
