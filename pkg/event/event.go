// pkg/event/event.go
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ShipSpawned       Type = "ship_spawned"
	ShipCollision     Type = "ship_collision"
	FocusChanged      Type = "focus_changed"
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the
// bus and is safe to call more than once.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// ShipEvent contains information about ship-related events
type ShipEvent struct {
	BaseEvent
	ShipID uuid.UUID
	Name   string
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uuid.UUID, name string) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID: shipID,
		Name:   name,
	}
}

// CollisionEvent contains information about overlapping ships
type CollisionEvent struct {
	BaseEvent
	ShipA uuid.UUID
	ShipB uuid.UUID
	Tick  uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, shipA, shipB uuid.UUID, tick uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: ShipCollision,
			Source:    source,
		},
		ShipA: shipA,
		ShipB: shipB,
		Tick:  tick,
	}
}

// FocusEvent records the camera moving from one ship to another
type FocusEvent struct {
	BaseEvent
	From uuid.UUID
	To   uuid.UUID
}

// NewFocusEvent creates a new focus change event
func NewFocusEvent(source interface{}, from, to uuid.UUID) *FocusEvent {
	return &FocusEvent{
		BaseEvent: BaseEvent{
			EventType: FocusChanged,
			Source:    source,
		},
		From: from,
		To:   to,
	}
}
