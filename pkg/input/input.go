// Package input turns pointer and key activity into game commands.
// Frontends push events onto a Queue from any goroutine; the game loop
// drains the queue once per frame.
package input

import (
	"sync"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Event is a command for the game loop
type Event interface {
	isEvent()
}

// DragStart is a primary button press at Position
type DragStart struct {
	Position physics.Vector2D
}

// DragMove is pointer movement, with or without a button held
type DragMove struct {
	Position physics.Vector2D
}

// DragEnd is a primary button release at Position
type DragEnd struct {
	Position physics.Vector2D
}

// Cancel aborts an aim in progress
type Cancel struct{}

// Restart starts a new game from level one
type Restart struct{}

// RestartLevel replays the current level with the same orb layout
type RestartLevel struct{}

// NextLevel advances after a completed level
type NextLevel struct{}

// Resize reports new play area dimensions
type Resize struct {
	Width  float64
	Height float64
}

// SelectPowerup arms a power-up for the current level
type SelectPowerup struct {
	Powerup string
}

func (DragStart) isEvent()     {}
func (DragMove) isEvent()      {}
func (DragEnd) isEvent()       {}
func (Cancel) isEvent()        {}
func (Restart) isEvent()       {}
func (RestartLevel) isEvent()  {}
func (NextLevel) isEvent()     {}
func (Resize) isEvent()        {}
func (SelectPowerup) isEvent() {}

// Queue buffers events between frontend goroutines and the game loop
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Push appends an event
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Drain removes and returns every queued event in arrival order
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	drained := q.events
	q.events = make([]Event, 0, cap(drained))
	return drained
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
