package events

import (
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan ModuleLoadedEvent, 1)

	unsub := bus.Subscribe(func(e ModuleLoadedEvent) {
		received <- e
	})
	defer unsub()

	event := ModuleLoadedEvent{
		Kind:      "encoder",
		Name:      "x264",
		CodecType: "x264",
		Timestamp: "2025-01-27T10:30:00Z",
	}
	bus.Publish(event)

	got := <-received
	if got.Name != event.Name {
		t.Errorf("Expected name %s, got %s", event.Name, got.Name)
	}
	if got.Kind != event.Kind {
		t.Errorf("Expected kind %s, got %s", event.Kind, got.Kind)
	}
}

func TestBus_MultipleSubscribers(_ *testing.T) {
	bus := New()
	received1 := make(chan RegistryInitializedEvent, 1)
	received2 := make(chan RegistryInitializedEvent, 1)

	unsub1 := bus.Subscribe(func(e RegistryInitializedEvent) {
		received1 <- e
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(e RegistryInitializedEvent) {
		received2 <- e
	})
	defer unsub2()

	bus.Publish(RegistryInitializedEvent{Encodings: 3, Decodings: 2})

	<-received1
	<-received2
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan ModuleLoadFailedEvent, 1)

	unsub := bus.Subscribe(func(e ModuleLoadFailedEvent) {
		received <- e
	})
	unsub()

	bus.Publish(ModuleLoadFailedEvent{Kind: "decoder", Name: "avcodec"})

	select {
	case <-received:
		t.Error("Expected no event after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_UnknownHandlerType(t *testing.T) {
	bus := New()

	// An unrecognized handler type should not panic and should return a
	// working no-op unsubscribe.
	unsub := bus.Subscribe(func(s string) {})
	unsub()

	bus.Publish(RegistryCleanedEvent{ModulesTornDown: 1})
}
