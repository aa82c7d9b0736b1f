package editor

import "sync"

// EventKind distinguishes the notifications flowing through the bus.
type EventKind int

const (
	// EventBufferChanged is published after every successful mutation.
	// Subscribers (search, renderer, views) always observe the post-mutation
	// buffer, never a torn intermediate value.
	EventBufferChanged EventKind = iota
	// EventNotice carries a user-facing message for a recoverable error or
	// confirmation. No notice is ever fatal to the session.
	EventNotice
)

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

type Event struct {
	Kind EventKind

	// Buffer-changed payload
	Text string

	// Notice payload
	Level   NoticeLevel
	Message string
}

type Handler func(Event)

// Subscription is the token returned by Subscribe, used to unsubscribe.
type Subscription int

// Bus is the session-scoped publish/subscribe channel replacing implicit
// global listener lists.
type Bus struct {
	mu       sync.Mutex
	next     Subscription
	handlers map[Subscription]Handler
	order    []Subscription
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Subscription]Handler),
	}
}

func (b *Bus) Subscribe(h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	sub := b.next
	b.handlers[sub] = h
	b.order = append(b.order, sub)
	return sub
}

func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, sub)
	for i, s := range b.order {
		if s == sub {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish delivers the event to every handler in subscription order.
// Handlers run outside the bus lock so they may subscribe or publish.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.order))
	for _, sub := range b.order {
		if h, ok := b.handlers[sub]; ok {
			handlers = append(handlers, h)
		}
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Notify publishes a user-facing notice.
func (b *Bus) Notify(level NoticeLevel, message string) {
	b.Publish(Event{Kind: EventNotice, Level: level, Message: message})
}
