package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {

	t.Run("Delivers in subscription order", func(t *testing.T) {
		bus := NewBus()
		var order []string
		bus.Subscribe(func(e Event) { order = append(order, "first") })
		bus.Subscribe(func(e Event) { order = append(order, "second") })

		bus.Publish(Event{Kind: EventBufferChanged})
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("Unsubscribe stops delivery", func(t *testing.T) {
		bus := NewBus()
		count := 0
		sub := bus.Subscribe(func(e Event) { count++ })
		bus.Publish(Event{})
		bus.Unsubscribe(sub)
		bus.Publish(Event{})
		assert.Equal(t, 1, count)
	})

	t.Run("Handlers may subscribe while publishing", func(t *testing.T) {
		bus := NewBus()
		nested := 0
		bus.Subscribe(func(e Event) {
			if nested == 0 {
				bus.Subscribe(func(e Event) { nested++ })
			}
		})
		bus.Publish(Event{})
		bus.Publish(Event{})
		assert.Equal(t, 1, nested)
	})

	t.Run("Notify publishes a notice", func(t *testing.T) {
		bus := NewBus()
		var events []Event
		bus.Subscribe(func(e Event) { events = append(events, e) })
		bus.Notify(NoticeWarning, "draft not saved")

		assert.Len(t, events, 1)
		assert.Equal(t, EventNotice, events[0].Kind)
		assert.Equal(t, NoticeWarning, events[0].Level)
		assert.Equal(t, "draft not saved", events[0].Message)
	})
}
