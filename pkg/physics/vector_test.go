// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

func vecNear(a, b Vector2D) bool {
	return math.Abs(a.X-b.X) <= 1e-9 && math.Abs(a.Y-b.Y) <= 1e-9
}

func TestVector2D_Arithmetic(t *testing.T) {
	a := Vector2D{X: 5, Y: -3}
	b := Vector2D{X: -2, Y: 7}

	if got := a.Add(b); got != (Vector2D{X: 3, Y: 4}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != (Vector2D{X: 7, Y: -10}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Scale(-2); got != (Vector2D{X: -10, Y: 6}) {
		t.Errorf("Scale() = %v", got)
	}
	if got := a.Dot(b); got != -31 {
		t.Errorf("Dot() = %v", got)
	}
}

func TestVector2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected float64
	}{
		{"zero_vector", Vector2D{}, 0},
		{"unit_x", Vector2D{X: 1}, 1},
		{"pythagorean_triple", Vector2D{X: 3, Y: 4}, 5},
		{"negative_components", Vector2D{X: -3, Y: -4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Length(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Length() = %v, expected %v", got, tt.expected)
			}
			if got := tt.vector.LengthSquared(); math.Abs(got-tt.expected*tt.expected) > 1e-9 {
				t.Errorf("LengthSquared() = %v, expected %v", got, tt.expected*tt.expected)
			}
		})
	}
}

func TestVector2D_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected Vector2D
	}{
		{"zero_stays_zero", Vector2D{}, Vector2D{}},
		{"unit_unchanged", Vector2D{X: 0, Y: 1}, Vector2D{X: 0, Y: 1}},
		{"regular", Vector2D{X: 3, Y: 4}, Vector2D{X: 0.6, Y: 0.8}},
		{"negative", Vector2D{X: -6, Y: -8}, Vector2D{X: -0.6, Y: -0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.vector.Normalize()
			if !vecNear(got, tt.expected) {
				t.Errorf("Normalize() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_Distance(t *testing.T) {
	a := Vector2D{X: -1, Y: -1}
	b := Vector2D{X: 2, Y: 3}
	if got := a.Distance(b); math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance() = %v, expected 5", got)
	}
	if got := a.Distance(b); got != b.Distance(a) {
		t.Errorf("Distance is not symmetric: %v vs %v", got, b.Distance(a))
	}
}

func TestVector2D_AngleRoundTrip(t *testing.T) {
	angles := []float64{0, math.Pi / 4, math.Pi / 2, 3 * math.Pi / 4, -math.Pi / 2, math.Pi}

	for _, angle := range angles {
		v := FromAngle(angle, 2)
		if math.Abs(v.Length()-2) > 1e-9 {
			t.Errorf("FromAngle(%v, 2) has length %v", angle, v.Length())
		}
		if math.Abs(v.Angle()-angle) > 1e-9 {
			t.Errorf("FromAngle(%v).Angle() = %v", angle, v.Angle())
		}
	}
}

func TestVector2D_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		angle    float64
		expected Vector2D
	}{
		{"no_rotation", Vector2D{X: 1}, 0, Vector2D{X: 1}},
		{"quarter_turn", Vector2D{X: 2, Y: 3}, math.Pi / 2, Vector2D{X: -3, Y: 2}},
		{"half_turn", Vector2D{X: 1}, math.Pi, Vector2D{X: -1}},
		{"negative_quarter", Vector2D{X: 1}, -math.Pi / 2, Vector2D{Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Rotate(tt.angle); !vecNear(got, tt.expected) {
				t.Errorf("Rotate() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		normal   Vector2D
		expected Vector2D
	}{
		{"head_on", Vector2D{X: 0, Y: 5}, Vector2D{X: 0, Y: -1}, Vector2D{X: 0, Y: -5}},
		{"glancing", Vector2D{X: 3, Y: 4}, Vector2D{X: 0, Y: -1}, Vector2D{X: 3, Y: -4}},
		{"parallel_to_surface", Vector2D{X: 3, Y: 0}, Vector2D{X: 0, Y: 1}, Vector2D{X: 3, Y: 0}},
		{"diagonal_normal", Vector2D{X: 1, Y: 0}, Vector2D{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2}, Vector2D{X: 0, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.vector.Reflect(tt.normal)
			if !vecNear(got, tt.expected) {
				t.Errorf("Reflect() = %v, expected %v", got, tt.expected)
			}
			if math.Abs(got.Length()-tt.vector.Length()) > 1e-9 {
				t.Errorf("Reflect changed the speed from %v to %v", tt.vector.Length(), got.Length())
			}
		})
	}
}

func TestVector2D_ClampLength(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		max      float64
		expected Vector2D
	}{
		{"below_limit", Vector2D{X: 3, Y: 4}, 10, Vector2D{X: 3, Y: 4}},
		{"at_limit", Vector2D{X: 6, Y: 8}, 10, Vector2D{X: 6, Y: 8}},
		{"above_limit", Vector2D{X: 30, Y: 40}, 10, Vector2D{X: 6, Y: 8}},
		{"zero_vector", Vector2D{}, 10, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.ClampLength(tt.max); !vecNear(got, tt.expected) {
				t.Errorf("ClampLength() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected bool
	}{
		{"finite", Vector2D{X: 1e300, Y: -4}, true},
		{"nan", Vector2D{X: math.NaN()}, false},
		{"positive_inf", Vector2D{Y: math.Inf(1)}, false},
		{"negative_inf", Vector2D{X: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.IsFinite(); got != tt.expected {
				t.Errorf("IsFinite() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func BenchmarkVector2D_ClampLength(b *testing.B) {
	v := Vector2D{X: 30, Y: 40}

	for i := 0; i < b.N; i++ {
		_ = v.ClampLength(30)
	}
}
