package engine

import "testing"

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus()

	var got []EventType
	bus.Subscribe(func(evt Event) {
		got = append(got, evt.Type)
	})

	bus.Emit(Event{Type: EventMachineStateChanged})
	bus.Emit(Event{Type: EventQualityRecordCreated})

	if len(got) != 2 || got[0] != EventMachineStateChanged || got[1] != EventQualityRecordCreated {
		t.Fatalf("received %v", got)
	}
}

func TestEventBusSubscribeTypesFilters(t *testing.T) {
	bus := NewEventBus()

	var got []EventType
	bus.SubscribeTypes(func(evt Event) {
		got = append(got, evt.Type)
	}, EventMachineSnapshot)

	bus.Emit(Event{Type: EventMachineStateChanged})
	bus.Emit(Event{Type: EventMachineSnapshot})
	bus.Emit(Event{Type: EventToolExpired})

	if len(got) != 1 || got[0] != EventMachineSnapshot {
		t.Fatalf("received %v, want only MachineSnapshot", got)
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	id := bus.Subscribe(func(Event) { calls++ })

	bus.Emit(Event{Type: EventMachineSnapshot})
	bus.Unsubscribe(id)
	bus.Emit(Event{Type: EventMachineSnapshot})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestEventBusStampsTimestamp(t *testing.T) {
	bus := NewEventBus()

	var got Event
	bus.Subscribe(func(evt Event) { got = evt })

	bus.Emit(Event{Type: EventProductionStarted})
	if got.Timestamp.IsZero() {
		t.Fatal("emitted event has zero timestamp")
	}
}
