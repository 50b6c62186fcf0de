package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for in-process broadcasting of
// registry lifecycle events.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(ModuleLoadedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event dispatches on the concrete type, so fan out through
	// a type switch rather than the interface value.
	switch e := ev.(type) {
	case ModuleLoadedEvent:
		event.Publish(b.dispatcher, e)
	case ModuleLoadFailedEvent:
		event.Publish(b.dispatcher, e)
	case RegistryInitializedEvent:
		event.Publish(b.dispatcher, e)
	case RegistryCleanedEvent:
		event.Publish(b.dispatcher, e)
	case ModulesReloadedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function. The handler's
// parameter type determines which events it receives. Returns an
// unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e ModuleLoadedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ModuleLoadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ModuleLoadFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RegistryInitializedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RegistryCleanedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ModulesReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Unknown handler types get a no-op unsubscribe
		return func() {}
	}
}
