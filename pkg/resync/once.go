// Package resync provides a sync.Once variant that can be rearmed.
//
// Useful for package-level singletons that tests must be able to tear down
// and reinitialize between cases.
package resync

import (
	"sync"
	"sync/atomic"
)

// Once behaves like sync.Once but supports Reset.
type Once struct {
	mu   sync.Mutex
	done atomic.Bool
}

// Do calls f only if Do has not been called since creation or the last Reset.
func (o *Once) Do(f func()) {
	if o.done.Load() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.done.Load() {
		defer o.done.Store(true)
		f()
	}
}

// Reset rearms the Once so that the next Do invokes its function again.
func (o *Once) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done.Store(false)
}
