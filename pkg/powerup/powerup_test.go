package powerup

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"magnet", Magnet, false},
		{"  Split_Shot ", SplitShot, false},
		{"laser", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknown) {
				t.Errorf("expected ErrUnknown, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewInventory_StartingCounts(t *testing.T) {
	inv := NewInventory(config.DefaultConfig().PowerupConfig.StartingInventory)

	if inv.Count(Magnet) != 2 || inv.Count(SplitShot) != 3 {
		t.Fatalf("unexpected counts magnet=%d split=%d", inv.Count(Magnet), inv.Count(SplitShot))
	}

	inv = NewInventory(map[string]int{"magnet": -1, "laser": 4})
	if inv.HasAny() {
		t.Errorf("expected invalid entries to be dropped, got %v", inv.Snapshot())
	}
}

func TestInventory_UseAndAdd(t *testing.T) {
	inv := NewInventory(map[string]int{"magnet": 1})

	if err := inv.Use(Magnet); err != nil {
		t.Fatalf("Use(magnet) failed: %v", err)
	}
	if err := inv.Use(Magnet); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("second Use(magnet) = %v, want ErrNotOwned", err)
	}
	if inv.Count(Magnet) != 0 {
		t.Errorf("count went negative: %d", inv.Count(Magnet))
	}
	if inv.HasAny() {
		t.Error("HasAny() = true on an empty inventory")
	}

	inv.Add(SplitShot)
	inv.Add(SplitShot)
	if !inv.HasAny() || inv.Count(SplitShot) != 2 {
		t.Errorf("after two adds: HasAny=%v count=%d", inv.HasAny(), inv.Count(SplitShot))
	}

	snapshot := inv.Snapshot()
	if len(snapshot) != 1 || snapshot["split_shot"] != 2 {
		t.Errorf("Snapshot() = %v, want only split_shot: 2", snapshot)
	}
	if owned := inv.Owned(); !slices.Equal(owned, []Type{SplitShot}) {
		t.Errorf("Owned() = %v", owned)
	}
}

func TestSystem_ActivateConsumesSelection(t *testing.T) {
	sys := NewSystem(NewInventory(map[string]int{"magnet": 1}))

	if got, err := sys.Activate(); got != "" || err != nil {
		t.Fatalf("Activate with no selection = %q, %v", got, err)
	}
	if err := sys.Select(SplitShot); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("Select(unowned) = %v, want ErrNotOwned", err)
	}
	if err := sys.Select(Magnet); err != nil {
		t.Fatalf("Select(magnet) failed: %v", err)
	}

	got, err := sys.Activate()
	if err != nil || got != Magnet {
		t.Fatalf("Activate() = %q, %v", got, err)
	}
	if !sys.IsActive(Magnet) || sys.IsActive(SplitShot) {
		t.Error("magnet should be the only active power-up")
	}
	if sys.Inventory.Count(Magnet) != 0 {
		t.Errorf("magnet not consumed, count %d", sys.Inventory.Count(Magnet))
	}
	if sys.Selected() != "" {
		t.Errorf("selection not cleared: %q", sys.Selected())
	}

	sys.ClearActive()
	if sys.IsActive(Magnet) {
		t.Error("magnet still active after ClearActive")
	}
}

func TestSystem_RestoreRefundsOnce(t *testing.T) {
	sys := NewSystem(NewInventory(map[string]int{"split_shot": 1}))
	_ = sys.Select(SplitShot)
	if _, err := sys.Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	if !sys.RestoreLevelPowerup() {
		t.Fatal("first restore should refund")
	}
	if sys.RestoreLevelPowerup() {
		t.Error("second restore should not refund again")
	}
	if sys.Inventory.Count(SplitShot) != 1 {
		t.Errorf("count after restore = %d, want 1", sys.Inventory.Count(SplitShot))
	}
	if sys.Selected() != SplitShot {
		t.Errorf("restore should reselect the power-up, got %q", sys.Selected())
	}

	// Using it again makes it refundable again
	if _, err := sys.Activate(); err != nil {
		t.Fatalf("re-activate failed: %v", err)
	}
	if !sys.RestoreLevelPowerup() {
		t.Error("restore after re-activation should refund")
	}

	sys.ClearLevelPowerup()
	if sys.RestoreLevelPowerup() {
		t.Error("restore after ClearLevelPowerup should do nothing")
	}
}

func TestMagnetEffect_Attract(t *testing.T) {
	magnet := MagnetEffect{Radius: 150, Speed: 3, Duration: 10 * time.Second}
	target := physics.Vector2D{X: 0, Y: 0}
	orbs := []physics.Orb{
		{Position: physics.Vector2D{X: 100, Y: 0}, Radius: 15},
		{Position: physics.Vector2D{X: 0, Y: 200}, Radius: 15},
		{Position: physics.Vector2D{X: 1, Y: 0}, Radius: 15},
	}

	moved := magnet.Attract(orbs, target, 1.0/60.0, 60)

	if moved != 2 {
		t.Errorf("moved %d orbs, want 2", moved)
	}
	if math.Abs(orbs[0].Position.X-97) > 1e-9 {
		t.Errorf("near orb at x=%f, want 97", orbs[0].Position.X)
	}
	if orbs[1].Position.Y != 200 {
		t.Errorf("far orb moved to %+v", orbs[1].Position)
	}
	if orbs[2].Position != target {
		t.Errorf("orb closer than one step should land on the target, got %+v", orbs[2].Position)
	}
}

func TestSplitShotEffect_Velocities(t *testing.T) {
	split := NewSplitShotEffect(config.DefaultConfig())
	velocity := physics.Vector2D{X: 10, Y: 0}

	v := split.Velocities(velocity)

	for i, sv := range v {
		if math.Abs(sv.Length()-10) > 1e-9 {
			t.Errorf("projectile %d speed = %f, want 10", i, sv.Length())
		}
	}
	if math.Abs(v[0].Angle()+split.Angle) > 1e-9 || math.Abs(v[1].Angle()-split.Angle) > 1e-9 {
		t.Errorf("angles = %f, %f, want ∓%f", v[0].Angle(), v[1].Angle(), split.Angle)
	}
}
