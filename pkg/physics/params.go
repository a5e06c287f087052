// pkg/physics/params.go
package physics

// Params holds the tuned constants of the force and collision model.
// Velocities are in units per 60fps frame; FrameScale converts seconds to frames.
type Params struct {
	GravityStrength   float64
	MaxVelocity       float64
	BounceDamping     float64
	WallBounceDamping float64
	MinEscapeSpeed    float64
	// BounceClearance is the gap left between body and planet after a bounce
	BounceClearance float64
	BoostRadius     float64
	BoostFactor     float64
	// GravityEpsilon floors the squared distance in the gravity denominator
	GravityEpsilon float64
	FrameScale     float64

	// ProbeRadius is the body radius assumed by trajectory prediction
	ProbeRadius       float64
	TrajectorySteps   int
	TrajectoryStep    float64
	OutOfBoundsMargin float64
}

// DefaultParams returns the shipped tuning
func DefaultParams() Params {
	return Params{
		GravityStrength:   250000,
		MaxVelocity:       30,
		BounceDamping:     0.9,
		WallBounceDamping: 0.9,
		MinEscapeSpeed:    12,
		BounceClearance:   5,
		BoostRadius:       200,
		BoostFactor:       1.2,
		GravityEpsilon:    1e-6,
		FrameScale:        60,
		ProbeRadius:       15,
		TrajectorySteps:   150,
		TrajectoryStep:    0.5,
		OutOfBoundsMargin: 100,
	}
}

// TrajectoryDeltaTime is the per-step time the predictor feeds to the gravity model
func (p Params) TrajectoryDeltaTime() float64 {
	return p.TrajectoryStep / p.FrameScale
}
