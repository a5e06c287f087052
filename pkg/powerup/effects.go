// pkg/powerup/effects.go
package powerup

import (
	"time"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// MagnetEffect pulls orbs near the craft toward it
type MagnetEffect struct {
	Radius   float64
	Speed    float64
	Duration time.Duration
}

// SplitShotEffect fires two extra projectiles beside the craft
type SplitShotEffect struct {
	Angle    float64
	Lifetime time.Duration
}

// NewMagnetEffect reads magnet tuning from cfg
func NewMagnetEffect(cfg *config.GameConfig) MagnetEffect {
	return MagnetEffect{
		Radius:   cfg.PowerupConfig.MagnetRadius,
		Speed:    cfg.PowerupConfig.MagnetSpeed,
		Duration: cfg.MagnetDuration(),
	}
}

// NewSplitShotEffect reads split-shot tuning from cfg
func NewSplitShotEffect(cfg *config.GameConfig) SplitShotEffect {
	return SplitShotEffect{
		Angle:    cfg.PowerupConfig.SplitAngle,
		Lifetime: cfg.SplitLifetime(),
	}
}

// Pull moves orb toward target by Speed units per 60fps frame if it lies within
// Radius, never past the target. It reports whether the orb moved.
func (m MagnetEffect) Pull(orb *physics.Orb, target physics.Vector2D, dt, frameScale float64) bool {
	offset := target.Sub(orb.Position)
	distance := offset.Length()
	if distance == 0 || distance > m.Radius {
		return false
	}
	step := min(m.Speed*dt*frameScale, distance)
	orb.Position = orb.Position.Add(offset.Scale(step / distance))
	return true
}

// Attract pulls every orb in orbs and returns how many moved
func (m MagnetEffect) Attract(orbs []physics.Orb, target physics.Vector2D, dt, frameScale float64) int {
	moved := 0
	for i := range orbs {
		if m.Pull(&orbs[i], target, dt, frameScale) {
			moved++
		}
	}
	return moved
}

// Velocities returns the launch velocities of the two extra projectiles,
// rotated by -Angle and +Angle from velocity
func (s SplitShotEffect) Velocities(velocity physics.Vector2D) [2]physics.Vector2D {
	return [2]physics.Vector2D{
		velocity.Rotate(-s.Angle),
		velocity.Rotate(s.Angle),
	}
}
