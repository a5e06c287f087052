// pkg/physics/world_test.go
package physics

import (
	"slices"
	"testing"
)

func TestTrail_Push(t *testing.T) {
	trail := NewTrail(3)

	for i := 1; i <= 5; i++ {
		trail.Push(Vector2D{X: float64(i)})
	}

	if trail.Len() != 3 || trail.Cap() != 3 {
		t.Fatalf("Len() = %d, Cap() = %d, expected 3 and 3", trail.Len(), trail.Cap())
	}
	expected := []Vector2D{{X: 3}, {X: 4}, {X: 5}}
	if !slices.Equal(trail.Points(), expected) {
		t.Errorf("Points() = %v, expected oldest-first %v", trail.Points(), expected)
	}

	trail.Reset()
	if trail.Len() != 0 {
		t.Errorf("Len() after Reset = %d", trail.Len())
	}
	trail.Push(Vector2D{Y: 1})
	if trail.Len() != 1 {
		t.Errorf("Len() after Reset and Push = %d", trail.Len())
	}
}

func TestTrail_ZeroCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		trail := NewTrail(capacity)
		trail.Push(Vector2D{X: 1})
		if trail.Len() != 0 {
			t.Errorf("NewTrail(%d) stored %d points", capacity, trail.Len())
		}
	}
}

func TestBounds_Contains(t *testing.T) {
	bounds := Bounds{Width: 800, Height: 600}

	tests := []struct {
		name     string
		point    Vector2D
		margin   float64
		expected bool
	}{
		{"inside", Vector2D{X: 400, Y: 300}, 0, true},
		{"on_edge", Vector2D{X: 800, Y: 600}, 0, true},
		{"just_outside", Vector2D{X: 801, Y: 300}, 0, false},
		{"inside_margin", Vector2D{X: -99, Y: 650}, 100, true},
		{"beyond_margin", Vector2D{X: -101, Y: 300}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bounds.Contains(tt.point, tt.margin); got != tt.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tt.point, tt.margin, got, tt.expected)
			}
		})
	}
}

func TestBounds_Rect(t *testing.T) {
	r := Bounds{Width: 800, Height: 600}.Rect()
	if !r.Contains(Vector2D{}) || r.Contains(Vector2D{X: 800, Y: 0}) {
		t.Errorf("Rect() = %v does not span the play area", r)
	}
}

func TestBody_Circle(t *testing.T) {
	body := &Body{Position: Vector2D{X: 3, Y: 4}, Velocity: Vector2D{X: 6, Y: 8}, Radius: 15}

	if c := body.Circle(); c.Center != body.Position || c.Radius != 15 {
		t.Errorf("Circle() = %v", c)
	}
	if body.Speed() != 10 {
		t.Errorf("Speed() = %v, expected 10", body.Speed())
	}
	orb := Orb{Position: Vector2D{X: 20, Y: 4}, Radius: 15}
	if !CheckCollision(body, orb) {
		t.Error("expected body and orb to overlap")
	}
}
