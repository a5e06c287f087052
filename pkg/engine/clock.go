// pkg/engine/clock.go
package engine

import "time"

// Clock supplies wall-clock time to the game. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FrameTimer measures the time between frames and caps it so a stall does
// not turn into one huge physics step
type FrameTimer struct {
	clock    Clock
	last     time.Time
	maxFrame float64
}

// NewFrameTimer creates a timer capping frame time at maxFrame seconds
func NewFrameTimer(clock Clock, maxFrame float64) *FrameTimer {
	return &FrameTimer{clock: clock, maxFrame: maxFrame}
}

// Tick returns the seconds since the previous Tick, clamped to [0, maxFrame].
// The first Tick returns 0.
func (t *FrameTimer) Tick() float64 {
	now := t.clock.Now()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	dt := now.Sub(t.last).Seconds()
	t.last = now
	return clampFrame(dt, t.maxFrame)
}

func clampFrame(dt, maxFrame float64) float64 {
	if dt < 0 {
		return 0
	}
	if maxFrame > 0 && dt > maxFrame {
		return maxFrame
	}
	return dt
}
