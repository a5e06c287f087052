// pkg/entity/planet.go
package entity

import (
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// PlanetMode tells renderers how to draw a planet
type PlanetMode int

const (
	// PlanetFixed is a placed planet after the first launch
	PlanetFixed PlanetMode = iota
	// PlanetMovable is a placed planet that can still be picked up
	PlanetMovable
	// PlanetPending is a valid placement preview
	PlanetPending
	// PlanetInvalid is a preview too close to an orb
	PlanetInvalid
)

func (m PlanetMode) String() string {
	switch m {
	case PlanetFixed:
		return "fixed"
	case PlanetMovable:
		return "movable"
	case PlanetPending:
		return "pending"
	case PlanetInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Planet is the level's attractor
type Planet struct {
	physics.Planet
	ID   ID
	Mode PlanetMode
}

// NewPlanet creates a planet
func NewPlanet(id ID, position physics.Vector2D, radius float64, mode PlanetMode) *Planet {
	return &Planet{
		Planet: physics.Planet{Position: position, Radius: radius},
		ID:     id,
		Mode:   mode,
	}
}

// GetID returns the planet's unique identifier
func (p *Planet) GetID() ID {
	return p.ID
}

// GetPosition returns the planet's position
func (p *Planet) GetPosition() physics.Vector2D {
	return p.Position
}

// GetCollider returns the planet's collision shape
func (p *Planet) GetCollider() physics.Circle {
	return p.Planet.Circle()
}

// Render draws the planet
func (p *Planet) Render(r Renderer) {
	r.RenderPlanet(p)
}

// Orb is a collectible
type Orb struct {
	physics.Orb
	ID ID
	// Preview is set while the planet is being placed
	Preview bool
}

// NewOrb wraps a generated orb with an ID
func NewOrb(id ID, orb physics.Orb) *Orb {
	return &Orb{Orb: orb, ID: id}
}

// GetID returns the orb's unique identifier
func (o *Orb) GetID() ID {
	return o.ID
}

// GetPosition returns the orb's position
func (o *Orb) GetPosition() physics.Vector2D {
	return o.Position
}

// GetCollider returns the orb's collision shape
func (o *Orb) GetCollider() physics.Circle {
	return o.Orb.Circle()
}

// Render draws the orb
func (o *Orb) Render(r Renderer) {
	r.RenderOrb(o)
}
