// Package events provides the in-process event bus connecting capture
// sessions, device monitoring, the LED manager and the SSE endpoint.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers of its type.
// Usage: events.Publish(bus, CaptureStartedEvent{...})
func Publish[T Event](b *Bus, ev T) {
	event.Publish(b.dispatcher, ev)
}

// Subscribe registers a typed handler. The handler's parameter type
// determines which events it receives. Returns an unsubscribe function.
// Usage: unsub := events.Subscribe(bus, func(e CaptureStartedEvent) { ... })
func Subscribe[T Event](b *Bus, handler func(T)) func() {
	return event.Subscribe(b.dispatcher, handler)
}

// SubscribeToChannel forwards events of one type into a shared channel.
// Events are dropped rather than blocking when the channel is full;
// slow consumers (SSE clients) must not stall the dispatcher.
func SubscribeToChannel[T Event](b *Bus, ch chan<- any) func() {
	return event.Subscribe(b.dispatcher, func(ev T) {
		select {
		case ch <- ev:
		default:
		}
	})
}
