// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Type represents the type of event
type Type string

// Game event types
const (
	LevelStarted        Type = "level_started"
	PlanetPlaced        Type = "planet_placed"
	PlanetRepositioning Type = "planet_repositioning"
	CraftLaunched       Type = "craft_launched"
	PlanetBounce        Type = "planet_bounce"
	WallBounce          Type = "wall_bounce"
	OrbCollected        Type = "orb_collected"
	LevelComplete       Type = "level_complete"
	GameOver            Type = "game_over"
	PowerupActivated    Type = "powerup_activated"
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

// Subscription identifies a registered handler. Cancel removes it from the bus.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers in subscription order.
// Handlers run on the publishing goroutine.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// LevelEvent covers level start, completion and game over
type LevelEvent struct {
	BaseEvent
	Level       int
	Seed        int64
	OrbsLeft    int
	BouncesLeft int
}

// NewLevelEvent creates a new level event
func NewLevelEvent(eventType Type, source interface{}, level int, seed int64, orbsLeft, bouncesLeft int) *LevelEvent {
	return &LevelEvent{
		BaseEvent:   BaseEvent{EventType: eventType, Source: source},
		Level:       level,
		Seed:        seed,
		OrbsLeft:    orbsLeft,
		BouncesLeft: bouncesLeft,
	}
}

// PlanetEvent reports a planet being placed or picked up for repositioning
type PlanetEvent struct {
	BaseEvent
	PlanetID uint64
	Position physics.Vector2D
}

// NewPlanetEvent creates a new planet event
func NewPlanetEvent(eventType Type, source interface{}, planetID uint64, position physics.Vector2D) *PlanetEvent {
	return &PlanetEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		PlanetID:  planetID,
		Position:  position,
	}
}

// LaunchEvent reports a launch and its velocity
type LaunchEvent struct {
	BaseEvent
	CraftID  uint64
	Position physics.Vector2D
	Velocity physics.Vector2D
	Split    bool
}

// NewLaunchEvent creates a new launch event
func NewLaunchEvent(source interface{}, craftID uint64, position, velocity physics.Vector2D, split bool) *LaunchEvent {
	return &LaunchEvent{
		BaseEvent: BaseEvent{EventType: CraftLaunched, Source: source},
		CraftID:   craftID,
		Position:  position,
		Velocity:  velocity,
		Split:     split,
	}
}

// BounceEvent reports a planet or wall bounce. Counted is set when a planet
// bounce consumed one of the level's bounces.
type BounceEvent struct {
	BaseEvent
	CraftID     uint64
	Main        bool
	Position    physics.Vector2D
	Speed       float64
	Counted     bool
	BouncesLeft int
}

// NewBounceEvent creates a new bounce event
func NewBounceEvent(eventType Type, source interface{}, craftID uint64, main bool, position physics.Vector2D, speed float64, counted bool, bouncesLeft int) *BounceEvent {
	return &BounceEvent{
		BaseEvent:   BaseEvent{EventType: eventType, Source: source},
		CraftID:     craftID,
		Main:        main,
		Position:    position,
		Speed:       speed,
		Counted:     counted,
		BouncesLeft: bouncesLeft,
	}
}

// OrbEvent reports an orb collected by a craft
type OrbEvent struct {
	BaseEvent
	OrbID    uint64
	CraftID  uint64
	OrbsLeft int
}

// NewOrbEvent creates a new orb event
func NewOrbEvent(source interface{}, orbID, craftID uint64, orbsLeft int) *OrbEvent {
	return &OrbEvent{
		BaseEvent: BaseEvent{EventType: OrbCollected, Source: source},
		OrbID:     orbID,
		CraftID:   craftID,
		OrbsLeft:  orbsLeft,
	}
}

// PowerupEvent reports a power-up taken from the inventory for a level
type PowerupEvent struct {
	BaseEvent
	Powerup   string
	Remaining int
}

// NewPowerupEvent creates a new power-up event
func NewPowerupEvent(source interface{}, powerup string, remaining int) *PowerupEvent {
	return &PowerupEvent{
		BaseEvent: BaseEvent{EventType: PowerupActivated, Source: source},
		Powerup:   powerup,
		Remaining: remaining,
	}
}
