// Package pubsub fans out typed events to subscribers and bridges them into
// the Bubble Tea update loop.
package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 8

// EventType names what happened to the subject of an event.
type EventType string

const (
	// ChangedEvent means the subject was written or replaced.
	ChangedEvent EventType = "changed"
	// RemovedEvent means the subject no longer exists.
	RemovedEvent EventType = "removed"
	// ErrorEvent carries a failure from the publisher.
	ErrorEvent EventType = "error"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Broker delivers every published event to all current subscribers.
//
// Subscribers that fall behind lose their oldest pending events, never the
// newest: consumers here only act on the latest state of a file.
type Broker[T any] struct {
	mu         sync.Mutex
	subs       map[chan Event[T]]struct{}
	closed     bool
	bufferSize int
}

// NewBroker creates a broker with the default per-subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscribers buffer size events.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	if size < 1 {
		size = 1
	}
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		bufferSize: size,
	}
}

// Subscribe returns a channel of events. It is closed when ctx is done or
// the broker is closed, whichever comes first.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan Event[T], b.bufferSize)
	if b.closed {
		close(sub)
		return sub
	}
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.unsubscribe(sub)
	}()

	return sub
}

func (b *Broker[T]) unsubscribe(sub chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub)
}

// Publish sends an event to every subscriber without blocking.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	event := Event[T]{Type: eventType, Payload: payload, Timestamp: time.Now()}
	for sub := range b.subs {
		for {
			select {
			case sub <- event:
			default:
				// Full: discard the oldest and retry.
				select {
				case <-sub:
				default:
				}
				continue
			}
			break
		}
	}
}

// Close closes every subscriber channel. Later Publish calls are no-ops.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
