package level

import (
	"math"
	"testing"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

func TestRand_KnownSequence(t *testing.T) {
	rng := NewRand(0)
	expected := []float64{0.21132115912208504, 0.7094221536351166, 0.5467721193415638}

	for i, want := range expected {
		if got := rng.Float64(); math.Abs(got-want) > 1e-12 {
			t.Errorf("value %d = %.15f, want %.15f", i, got, want)
		}
	}
}

func TestRand_Range(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, 233279, 233280, 1 << 40, -17} {
		rng := NewRand(seed)
		for i := 0; i < 5000; i++ {
			if v := rng.Float64(); v < 0 || v >= 1 {
				t.Fatalf("seed %d: value %f out of [0, 1)", seed, v)
			}
		}
	}
}

func TestNewSeed_InPeriod(t *testing.T) {
	for i := 0; i < 100; i++ {
		if seed := NewSeed(); seed < 0 || seed >= lcgModulus {
			t.Fatalf("NewSeed() = %d, outside [0, %d)", seed, lcgModulus)
		}
	}
}

func TestClusterCount(t *testing.T) {
	cfg := config.DefaultConfig().OrbConfig

	tests := []struct {
		orbs int
		want int
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{15, 2},
	}

	for _, tt := range tests {
		if got := ClusterCount(tt.orbs, cfg); got != tt.want {
			t.Errorf("ClusterCount(%d) = %d, want %d", tt.orbs, got, tt.want)
		}
	}

	cfg.MaxClusters = 1
	if got := ClusterCount(9, cfg); got != 1 {
		t.Errorf("ClusterCount with one allowed cluster = %d, want 1", got)
	}
}

func TestGenerateOrbs_KnownLayout(t *testing.T) {
	cfg := config.DefaultConfig().OrbConfig
	bounds := physics.Bounds{Width: 1200, Height: 800}

	orbs := GenerateOrbs(4, 42, bounds, cfg)
	if len(orbs) != 4 {
		t.Fatalf("got %d orbs, want 4", len(orbs))
	}

	expected := []physics.Vector2D{
		{X: 914.0080326263007, Y: 561.1053724149803},
		{X: 1038.9611298283246, Y: 548.1236613463333},
		{X: 961.8814286105606, Y: 511.68008333521414},
		{X: 1047.6903645516757, Y: 517.6042831553148},
	}
	for i, want := range expected {
		if orbs[i].Position.Distance(want) > 1e-6 {
			t.Errorf("orb %d at %+v, want %+v", i, orbs[i].Position, want)
		}
		if orbs[i].Radius != cfg.Radius {
			t.Errorf("orb %d radius = %f, want %f", i, orbs[i].Radius, cfg.Radius)
		}
	}
}

func TestGenerateOrbs_SameSeedSameLayout(t *testing.T) {
	cfg := config.DefaultConfig().OrbConfig
	bounds := physics.Bounds{Width: 1200, Height: 800}

	first := GenerateOrbs(6, 1234, bounds, cfg)
	second := GenerateOrbs(6, 1234, bounds, cfg)
	other := GenerateOrbs(6, 4321, bounds, cfg)

	if len(first) != 6 || len(second) != 6 {
		t.Fatalf("got %d and %d orbs, want 6", len(first), len(second))
	}
	differs := false
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("orb %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
		if first[i] != other[i] {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds produced identical layouts")
	}
}

func TestGenerateOrbs_StaysInBounds(t *testing.T) {
	cfg := config.DefaultConfig().OrbConfig

	tests := []struct {
		name   string
		bounds physics.Bounds
		level  int
	}{
		{"default window", physics.Bounds{Width: 1200, Height: 800}, 15},
		{"small window", physics.Bounds{Width: 260, Height: 240}, 10},
		{"narrow window", physics.Bounds{Width: 120, Height: 900}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 50; seed++ {
				for _, orb := range GenerateOrbs(tt.level, seed, tt.bounds, cfg) {
					p := orb.Position
					if p.X < orb.Radius || p.X > tt.bounds.Width-orb.Radius ||
						p.Y < orb.Radius || p.Y > tt.bounds.Height-orb.Radius {
						t.Fatalf("seed %d: orb at %+v outside %+v", seed, p, tt.bounds)
					}
				}
			}
		})
	}
}

func TestGenerateOrbs_NoOrbsForLevelZero(t *testing.T) {
	if orbs := GenerateOrbs(0, 1, physics.Bounds{Width: 800, Height: 600}, config.DefaultConfig().OrbConfig); orbs != nil {
		t.Errorf("expected no orbs, got %v", orbs)
	}
}
