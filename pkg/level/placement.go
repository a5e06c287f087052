// pkg/level/placement.go
package level

import (
	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Placer checks candidate planet positions against the current orbs
type Placer struct {
	Radius      float64
	EdgeMargin  float64
	MinDistance float64
}

// NewPlacer builds a Placer from the game configuration
func NewPlacer(cfg *config.GameConfig) Placer {
	return Placer{
		Radius:      cfg.PlanetConfig.Radius,
		EdgeMargin:  cfg.PlanetConfig.EdgeMargin,
		MinDistance: cfg.OrbConfig.MinDistanceFromPlanet,
	}
}

// Clamp moves candidate at least EdgeMargin away from every edge
func (p Placer) Clamp(candidate physics.Vector2D, bounds physics.Bounds) physics.Vector2D {
	return clampInside(candidate, bounds, p.EdgeMargin)
}

// Valid reports whether a planet at position keeps its clearance from every orb
func (p Placer) Valid(position physics.Vector2D, orbs []physics.Orb) bool {
	for _, orb := range orbs {
		if position.Distance(orb.Position) < p.Radius+orb.Radius+p.MinDistance {
			return false
		}
	}
	return true
}

// Place clamps candidate into bounds and returns the planet there. ok is false
// when the clamped position is too close to an orb; the clamped planet is
// still returned so frontends can show where the rejected planet would sit.
func (p Placer) Place(candidate physics.Vector2D, bounds physics.Bounds, orbs []physics.Orb) (planet physics.Planet, ok bool) {
	position := p.Clamp(candidate, bounds)
	return physics.Planet{Position: position, Radius: p.Radius}, p.Valid(position, orbs)
}

// Rescale maps a point from one play area to another proportionally
func Rescale(point physics.Vector2D, from, to physics.Bounds) physics.Vector2D {
	if from.Width <= 0 || from.Height <= 0 {
		return point
	}
	return physics.Vector2D{
		X: point.X * to.Width / from.Width,
		Y: point.Y * to.Height / from.Height,
	}
}

// RescaleOrbs relays orbs out in place for a resized play area, keeping them inside it
func RescaleOrbs(orbs []physics.Orb, from, to physics.Bounds) {
	for i := range orbs {
		orbs[i].Position = clampInside(Rescale(orbs[i].Position, from, to), to, orbs[i].Radius)
	}
}

// RescalePlanet moves a placed planet for a resized play area. The result stays
// EdgeMargin away from the edges; Separate restores orb clearance afterwards.
func (p Placer) RescalePlanet(planet physics.Planet, from, to physics.Bounds) physics.Planet {
	planet.Position = p.Clamp(Rescale(planet.Position, from, to), to)
	return planet
}

// Separate moves orb radially away from a planet at position until it has the
// placement clearance again, keeping it inside bounds. When the wall blocks the
// outward direction the opposite side is tried, and the farther of the two wins.
func (p Placer) Separate(position physics.Vector2D, orb physics.Orb, bounds physics.Bounds) physics.Orb {
	required := p.Radius + orb.Radius + p.MinDistance
	if position.Distance(orb.Position) >= required {
		return orb
	}

	dir := orb.Position.Sub(position).Normalize()
	if dir == (physics.Vector2D{}) {
		dir = physics.Vector2D{X: 1}
	}
	out := clampInside(position.Add(dir.Scale(required)), bounds, orb.Radius)
	if position.Distance(out) < required {
		back := clampInside(position.Sub(dir.Scale(required)), bounds, orb.Radius)
		if position.Distance(back) > position.Distance(out) {
			out = back
		}
	}
	orb.Position = out
	return orb
}
