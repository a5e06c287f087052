// pkg/input/launch.go
package input

import (
	"math"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// LaunchModel maps a slingshot drag to a launch velocity.
// The aim preview and the real launch both go through it.
type LaunchModel struct {
	PowerDivisor    float64
	MaxPower        float64
	MinDragDistance float64
}

// Power returns the launch speed for a drag of the given length
func (m LaunchModel) Power(dragDistance float64) float64 {
	return math.Min(dragDistance/m.PowerDivisor, m.MaxPower)
}

// PowerFraction returns Power scaled to [0, 1] for power meters
func (m LaunchModel) PowerFraction(dragDistance float64) float64 {
	if m.MaxPower <= 0 {
		return 0
	}
	return m.Power(dragDistance) / m.MaxPower
}

// Velocity returns the launch velocity for a drag from start to end. The craft
// leaves opposite to the drag. ok is false for drags too short to count as a launch.
func (m LaunchModel) Velocity(start, end physics.Vector2D) (velocity physics.Vector2D, ok bool) {
	drag := end.Sub(start)
	distance := drag.Length()
	if distance <= m.MinDragDistance || distance == 0 {
		return physics.Vector2D{}, false
	}
	return drag.Scale(-m.Power(distance) / distance), true
}

// NewLaunchModel builds the launch model from the game configuration
func NewLaunchModel(cfg *config.GameConfig) LaunchModel {
	return LaunchModel{
		PowerDivisor:    cfg.LaunchConfig.PowerDivisor,
		MaxPower:        cfg.MaxLaunchPower(),
		MinDragDistance: cfg.LaunchConfig.MinDragDistance,
	}
}
