// pkg/physics/dynamics.go
package physics

import "math"

// fallbackNormal is used when a body sits exactly on the planet center
var fallbackNormal = Vector2D{X: 1, Y: 0}

// GravityAcceleration returns the boosted acceleration magnitude at distance from the planet center
func (p Params) GravityAcceleration(distance float64) float64 {
	accel := p.GravityStrength / math.Max(distance*distance, p.GravityEpsilon)
	boost := 0.0
	if distance < p.BoostRadius && p.BoostRadius > 0 {
		boost = (p.BoostRadius - distance) / p.BoostRadius * p.BoostFactor
	}
	return accel * (1 + boost)
}

// ApplyGravity pulls body toward planet for dt seconds and clamps its speed to MaxVelocity.
// Bodies overlapping the planet are left alone; HandlePlanetBounce deals with them.
func (p Params) ApplyGravity(body *Body, planet Planet, dt float64) {
	offset := planet.Position.Sub(body.Position)
	distance := offset.Length()
	if distance <= planet.Radius+body.Radius {
		return
	}

	accel := p.GravityAcceleration(distance)
	direction := offset.Scale(1 / distance)
	body.Velocity = body.Velocity.Add(direction.Scale(accel * dt))
	body.Velocity = body.Velocity.ClampLength(p.MaxVelocity)
}

// Integrate advances the body's position by dt seconds of its current velocity
func (p Params) Integrate(body *Body, dt float64) {
	body.Position = body.Position.Add(body.Velocity.Scale(dt * p.FrameScale))
}

// HandlePlanetBounce pushes an overlapping body out of the planet and reflects its velocity.
// It reports whether a bounce happened.
func (p Params) HandlePlanetBounce(body *Body, planet Planet) bool {
	offset := body.Position.Sub(planet.Position)
	distance := offset.Length()
	if distance >= planet.Radius+body.Radius {
		return false
	}

	normal := fallbackNormal
	if distance > 0 {
		normal = offset.Scale(1 / distance)
	}

	clearance := planet.Radius + body.Radius + p.BounceClearance
	body.Position = planet.Position.Add(normal.Scale(clearance))

	body.Velocity = body.Velocity.Reflect(normal).Scale(p.BounceDamping)

	speed := body.Velocity.Length()
	if speed < p.MinEscapeSpeed {
		if speed == 0 {
			body.Velocity = normal.Scale(p.MinEscapeSpeed)
		} else {
			body.Velocity = body.Velocity.Scale(p.MinEscapeSpeed / speed)
		}
	}
	return true
}

// HandleWallBounces clamps the body inside bounds, reflecting and damping the velocity
// component of every axis it crossed. It reports whether any axis bounced.
func (p Params) HandleWallBounces(body *Body, bounds Bounds) bool {
	bouncedX := bounceAxis(&body.Position.X, &body.Velocity.X, body.Radius, bounds.Width, p.WallBounceDamping)
	bouncedY := bounceAxis(&body.Position.Y, &body.Velocity.Y, body.Radius, bounds.Height, p.WallBounceDamping)
	return bouncedX || bouncedY
}

func bounceAxis(pos, vel *float64, radius, extent, damping float64) bool {
	switch {
	case *pos < radius:
		*pos = radius
	case *pos > extent-radius:
		*pos = extent - radius
	default:
		return false
	}
	*vel *= -damping
	return true
}
