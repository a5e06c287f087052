// pkg/physics/world.go
package physics

// Body is a moving, gravity-affected circle: the player's craft or a split-shot projectile
type Body struct {
	Position Vector2D
	Velocity Vector2D
	Radius   float64
	Trail    Trail
	// Main is set only on the player's craft
	Main bool
}

// Circle implements Collider
func (b *Body) Circle() Circle {
	return Circle{Center: b.Position, Radius: b.Radius}
}

// Speed returns the magnitude of the body's velocity
func (b *Body) Speed() float64 {
	return b.Velocity.Length()
}

// Planet is the single attractor of a level
type Planet struct {
	Position Vector2D
	Radius   float64
}

// Circle implements Collider
func (p Planet) Circle() Circle {
	return Circle{Center: p.Position, Radius: p.Radius}
}

// Orb is a collectible
type Orb struct {
	Position Vector2D
	Radius   float64
}

// Circle implements Collider
func (o Orb) Circle() Circle {
	return Circle{Center: o.Position, Radius: o.Radius}
}

// Bounds is the rectangular play area anchored at the origin
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether p lies within the bounds extended by margin on every side
func (b Bounds) Contains(p Vector2D, margin float64) bool {
	return p.X >= -margin && p.X <= b.Width+margin &&
		p.Y >= -margin && p.Y <= b.Height+margin
}

// Rect returns the bounds as a Rect
func (b Bounds) Rect() Rect {
	return Rect{
		Center: Vector2D{X: b.Width / 2, Y: b.Height / 2},
		Width:  b.Width,
		Height: b.Height,
	}
}

// Trail is a fixed-capacity FIFO of recent positions, oldest first
type Trail struct {
	points   []Vector2D
	capacity int
}

// NewTrail creates an empty trail holding at most capacity points
func NewTrail(capacity int) Trail {
	if capacity < 0 {
		capacity = 0
	}
	return Trail{points: make([]Vector2D, 0, capacity), capacity: capacity}
}

// Push appends p and drops points from the front beyond capacity
func (t *Trail) Push(p Vector2D) {
	if t.capacity == 0 {
		return
	}
	if len(t.points) == t.capacity {
		copy(t.points, t.points[1:])
		t.points = t.points[:len(t.points)-1]
	}
	t.points = append(t.points, p)
}

// Points returns the trail oldest first. The slice is owned by the trail.
func (t *Trail) Points() []Vector2D {
	return t.points
}

// Len returns the number of stored points
func (t *Trail) Len() int {
	return len(t.points)
}

// Cap returns the maximum number of stored points
func (t *Trail) Cap() int {
	return t.capacity
}

// Reset drops every point
func (t *Trail) Reset() {
	t.points = t.points[:0]
}
