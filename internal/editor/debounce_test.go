package editor

import (
	"testing"
	"time"

	"github.com/markpad/markpad/pkg/clock"
	"github.com/stretchr/testify/assert"
)

func TestDebouncer(t *testing.T) {

	t.Run("Burst runs once", func(t *testing.T) {
		c := clock.NewTestClock()
		d := NewDebouncer(c)
		count := 0
		for i := 0; i < 10; i++ {
			d.Schedule("save", 500*time.Millisecond, func() { count++ })
			c.FastForward(100 * time.Millisecond)
		}
		assert.Equal(t, 0, count) // Never a quiet period long enough

		c.FastForward(500 * time.Millisecond)
		assert.Equal(t, 1, count)
	})

	t.Run("Replacing restarts the delay", func(t *testing.T) {
		c := clock.NewTestClock()
		d := NewDebouncer(c)
		fired := false
		d.Schedule("save", 500*time.Millisecond, func() { fired = true })
		c.FastForward(400 * time.Millisecond)
		d.Schedule("save", 500*time.Millisecond, func() { fired = true })
		c.FastForward(400 * time.Millisecond)
		assert.False(t, fired)
		c.FastForward(100 * time.Millisecond)
		assert.True(t, fired)
	})

	t.Run("Keys are independent", func(t *testing.T) {
		c := clock.NewTestClock()
		d := NewDebouncer(c)
		var fired []string
		d.Schedule("history", 500*time.Millisecond, func() { fired = append(fired, "history") })
		d.Schedule("draft", time.Second, func() { fired = append(fired, "draft") })
		c.FastForward(time.Second)
		assert.Equal(t, []string{"history", "draft"}, fired)
	})

	t.Run("Cancel", func(t *testing.T) {
		c := clock.NewTestClock()
		d := NewDebouncer(c)
		fired := false
		d.Schedule("save", 500*time.Millisecond, func() { fired = true })
		assert.True(t, d.Pending("save"))
		assert.True(t, d.Cancel("save"))
		assert.False(t, d.Pending("save"))
		c.FastForward(time.Second)
		assert.False(t, fired)
		assert.False(t, d.Cancel("save")) // Nothing left to cancel
	})

	t.Run("Flush runs immediately", func(t *testing.T) {
		c := clock.NewTestClock()
		d := NewDebouncer(c)
		count := 0
		d.Schedule("save", 500*time.Millisecond, func() { count++ })
		d.Flush("save")
		assert.Equal(t, 1, count)
		c.FastForward(time.Second) // Must not run a second time
		assert.Equal(t, 1, count)
	})
}
