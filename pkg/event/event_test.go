// pkg/event/event_test.go
package event

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	require.NotNil(t, bus)
	assert.NotNil(t, bus.handlers)
	assert.Equal(t, uint64(1), bus.nextID)
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"ship_spawned_event", ShipSpawned, "test_source"},
		{"collision_event", ShipCollision, 123},
		{"empty_source", SimulationStarted, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}
			assert.Equal(t, tt.eventType, event.GetType())
			assert.Equal(t, tt.source, event.GetSource())
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(ShipSpawned, func(Event) {})
	sub2 := bus.Subscribe(ShipSpawned, func(Event) {})
	sub3 := bus.Subscribe(ShipCollision, func(Event) {})

	assert.NotEqual(t, sub1.ID, sub2.ID)
	assert.NotEqual(t, sub2.ID, sub3.ID)
	assert.NotNil(t, sub1.Cancel)

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	assert.Len(t, bus.handlers[ShipSpawned], 2)
	assert.Len(t, bus.handlers[ShipCollision], 1)
}

func TestBusPublish_WithSubscribers_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []int

	bus.Subscribe(FocusChanged, func(Event) { calls = append(calls, 1) })
	bus.Subscribe(FocusChanged, func(Event) { calls = append(calls, 2) })
	bus.Subscribe(ShipSpawned, func(Event) { calls = append(calls, 3) })

	bus.Publish(&BaseEvent{EventType: FocusChanged})

	assert.Equal(t, []int{1, 2}, calls)
}

func TestBusPublish_NoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Publish(&BaseEvent{EventType: SimulationStopped})
	})
}

func TestSubscriptionCancel_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	sub := bus.Subscribe(ShipCollision, func(Event) { first++ })
	bus.Subscribe(ShipCollision, func(Event) { second++ })

	bus.Publish(&BaseEvent{EventType: ShipCollision})
	sub.Cancel()
	sub.Cancel()
	bus.Publish(&BaseEvent{EventType: ShipCollision})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestSubscriptionCancel_LastHandler_RemovesType(t *testing.T) {
	bus := NewEventBus()

	sub := bus.Subscribe(ShipSpawned, func(Event) {})
	sub.Cancel()

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	assert.NotContains(t, bus.handlers, ShipSpawned)
}

func TestSubscriptionCancel_DuringPublish_CurrentPublishCompletes(t *testing.T) {
	bus := NewEventBus()
	var calls int
	var sub *Subscription

	sub = bus.Subscribe(ShipSpawned, func(Event) {
		calls++
		sub.Cancel()
	})
	bus.Subscribe(ShipSpawned, func(Event) { calls++ })

	bus.Publish(&BaseEvent{EventType: ShipSpawned})
	assert.Equal(t, 2, calls)

	bus.Publish(&BaseEvent{EventType: ShipSpawned})
	assert.Equal(t, 3, calls)
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var received atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe(ShipCollision, func(Event) { received.Add(1) })
			bus.Publish(&BaseEvent{EventType: ShipCollision})
			sub.Cancel()
		}()
	}
	wg.Wait()

	assert.Positive(t, received.Load())
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	assert.Empty(t, bus.handlers)
}

func TestNewShipEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	id := uuid.New()
	ev := NewShipEvent(ShipSpawned, "world", id, "xwing")

	assert.Equal(t, ShipSpawned, ev.GetType())
	assert.Equal(t, "world", ev.GetSource())
	assert.Equal(t, id, ev.ShipID)
	assert.Equal(t, "xwing", ev.Name)
}

func TestNewCollisionEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ev := NewCollisionEvent(nil, a, b, 42)

	assert.Equal(t, ShipCollision, ev.GetType())
	assert.Equal(t, a, ev.ShipA)
	assert.Equal(t, b, ev.ShipB)
	assert.Equal(t, uint64(42), ev.Tick)
}

func TestNewFocusEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	ev := NewFocusEvent(nil, from, to)

	assert.Equal(t, FocusChanged, ev.GetType())
	assert.Equal(t, from, ev.From)
	assert.Equal(t, to, ev.To)
}

func TestEventTypes_Constants_AllDistinct(t *testing.T) {
	types := []Type{ShipSpawned, ShipCollision, FocusChanged, SimulationStarted, SimulationStopped}
	seen := make(map[Type]bool)
	for _, typ := range types {
		assert.NotEmpty(t, typ)
		assert.False(t, seen[typ], "duplicate type %s", typ)
		seen[typ] = true
	}
}
