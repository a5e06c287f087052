// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Render(r Renderer)
}

var lastID atomic.Uint64

// GenerateID returns a process-wide unique, non-zero ID
func GenerateID() ID {
	return ID(lastID.Add(1))
}
