// pkg/entity/craft.go
package entity

import (
	"time"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Craft is a launched body: the player's spaceship or a split-shot projectile
type Craft struct {
	physics.Body
	ID      ID
	Active  bool
	Visible bool
	// Expires is when a projectile disappears; zero for the player's craft
	Expires time.Time
}

// NewCraft creates the player's craft at rest, hidden until it is aimed
func NewCraft(id ID, position physics.Vector2D, radius float64, trailLength int) *Craft {
	return &Craft{
		Body: physics.Body{
			Position: position,
			Radius:   radius,
			Trail:    physics.NewTrail(trailLength),
			Main:     true,
		},
		ID:     id,
		Active: true,
	}
}

// NewProjectile creates a split-shot projectile that expires at expires
func NewProjectile(id ID, position, velocity physics.Vector2D, radius float64, trailLength int, expires time.Time) *Craft {
	return &Craft{
		Body: physics.Body{
			Position: position,
			Velocity: velocity,
			Radius:   radius,
			Trail:    physics.NewTrail(trailLength),
		},
		ID:      id,
		Active:  true,
		Visible: true,
		Expires: expires,
	}
}

// GetID returns the craft's unique identifier
func (c *Craft) GetID() ID {
	return c.ID
}

// GetPosition returns the craft's position
func (c *Craft) GetPosition() physics.Vector2D {
	return c.Position
}

// GetCollider returns the craft's collision shape
func (c *Craft) GetCollider() physics.Circle {
	return c.Body.Circle()
}

// Render draws the craft
func (c *Craft) Render(r Renderer) {
	r.RenderCraft(c)
}

// Expired reports whether a projectile's lifetime is over at now
func (c *Craft) Expired(now time.Time) bool {
	return !c.Main && !c.Expires.IsZero() && !now.Before(c.Expires)
}

// Reset puts the craft back at rest at position and clears its trail
func (c *Craft) Reset(position physics.Vector2D) {
	c.Position = position
	c.Velocity = physics.Vector2D{}
	c.Trail.Reset()
	c.Active = true
	c.Visible = false
}
