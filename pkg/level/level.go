// Package level generates orb layouts and validates planet placement.
// Layouts are deterministic for a given level, seed and play area, so a
// restarted level reproduces the same orbs.
package level

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Rand is the linear congruential generator behind orb layouts
type Rand struct {
	state float64
}

// NewRand seeds a generator. Seeds are reduced modulo the generator period.
func NewRand(seed int64) *Rand {
	if seed < 0 {
		seed = -seed
	}
	return &Rand{state: float64(seed % lcgModulus)}
}

// Float64 returns the next value in [0, 1)
func (r *Rand) Float64() float64 {
	r.state = math.Mod(r.state*lcgMultiplier+lcgIncrement, lcgModulus)
	return r.state / lcgModulus
}

// NewSeed draws a fresh level seed
func NewSeed() int64 {
	return rand.Int64N(lcgModulus)
}

// OrbCount returns how many orbs a level has
func OrbCount(level int, cfg config.OrbConfig) int {
	return max(level*cfg.PerLevelMultiplier, 0)
}

// ClusterCount returns how many clusters n orbs are spread over
func ClusterCount(n int, cfg config.OrbConfig) int {
	if n <= 0 {
		return 0
	}
	return min(cfg.MaxClusters, (n+2)/3)
}

// GenerateOrbs lays out the orbs of a level around up to MaxClusters cluster
// centers. Orbs are assigned to clusters round robin and clamped inside bounds.
func GenerateOrbs(level int, seed int64, bounds physics.Bounds, cfg config.OrbConfig) []physics.Orb {
	n := OrbCount(level, cfg)
	clusters := ClusterCount(n, cfg)
	if clusters == 0 {
		return nil
	}

	rng := NewRand(seed)
	centers := make([]physics.Vector2D, clusters)
	for i := range centers {
		centers[i] = physics.Vector2D{
			X: rng.Float64()*(bounds.Width-2*cfg.ClusterMargin) + cfg.ClusterMargin,
			Y: rng.Float64()*(bounds.Height-2*cfg.ClusterMargin) + cfg.ClusterMargin,
		}
	}

	spread := cfg.ClusterMaxSpread - cfg.ClusterMinSpread
	orbs := make([]physics.Orb, n)
	for i := range orbs {
		angle := rng.Float64() * 2 * math.Pi
		distance := rng.Float64()*spread + cfg.ClusterMinSpread
		position := centers[i%clusters].Add(physics.FromAngle(angle, distance))

		orbs[i] = physics.Orb{
			Position: clampInside(position, bounds, cfg.Radius),
			Radius:   cfg.Radius,
		}
	}
	return orbs
}

// clampInside keeps p at least margin away from every edge of bounds. When the
// bounds are narrower than 2*margin the lower edge wins.
func clampInside(p physics.Vector2D, bounds physics.Bounds, margin float64) physics.Vector2D {
	return physics.Vector2D{
		X: math.Max(margin, math.Min(bounds.Width-margin, p.X)),
		Y: math.Max(margin, math.Min(bounds.Height-margin, p.Y)),
	}
}
