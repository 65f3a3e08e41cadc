// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-hexbounce/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
	SimulationReset   Type = "simulation_reset"
	BoundaryContact   Type = "boundary_contact"
	ConfigChanged     Type = "config_changed"
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

// Subscription identifies a registered handler. Cancel removes it and may be
// called more than once.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
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

	var once sync.Once
	return &Subscription{
		ID: id,
		Cancel: func() {
			once.Do(func() { b.unsubscribe(eventType, id) })
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	registrations := b.handlers[eventType]
	for i, r := range registrations {
		if r.id == id {
			// Copy so a Publish iterating the old slice is unaffected.
			kept := make([]registration, 0, len(registrations)-1)
			kept = append(kept, registrations[:i]...)
			kept = append(kept, registrations[i+1:]...)
			b.handlers[eventType] = kept
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	registrations := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range registrations {
		r.handler(event)
	}
}

// Specific event implementations

// ContactEvent reports a boundary collision resolved during a tick
type ContactEvent struct {
	BaseEvent
	Tick        uint64
	Contact     physics.CollisionResult
	SpeedBefore float64
	SpeedAfter  float64
}

// NewContactEvent creates a new boundary contact event
func NewContactEvent(source interface{}, tick uint64, contact physics.CollisionResult, speedBefore, speedAfter float64) *ContactEvent {
	return &ContactEvent{
		BaseEvent: BaseEvent{
			EventType: BoundaryContact,
			Source:    source,
		},
		Tick:        tick,
		Contact:     contact,
		SpeedBefore: speedBefore,
		SpeedAfter:  speedAfter,
	}
}

// ConfigEvent carries the physics configuration that takes effect from the
// next tick
type ConfigEvent struct {
	BaseEvent
	Previous physics.Config
	Current  physics.Config
}

// NewConfigEvent creates a new config change event
func NewConfigEvent(source interface{}, previous, current physics.Config) *ConfigEvent {
	return &ConfigEvent{
		BaseEvent: BaseEvent{
			EventType: ConfigChanged,
			Source:    source,
		},
		Previous: previous,
		Current:  current,
	}
}

// LifecycleEvent reports start, stop and reset of a simulation
type LifecycleEvent struct {
	BaseEvent
	Tick uint64
}

// NewLifecycleEvent creates a new lifecycle event
func NewLifecycleEvent(eventType Type, source interface{}, tick uint64) *LifecycleEvent {
	return &LifecycleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick: tick,
	}
}
