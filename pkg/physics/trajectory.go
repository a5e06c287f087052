// pkg/physics/trajectory.go
package physics

import "iter"

// PredictTrajectory simulates a probe launched from start with velocity and yields its position after
// each fixed step. The probe uses the same gravity, clamp and wall model as the live simulation with
// dt = TrajectoryStep/FrameScale. The sequence ends before the first step that starts inside the planet,
// after a position more than OutOfBoundsMargin outside bounds, or after TrajectorySteps points.
// Nothing outside the probe's local state is touched.
func (p Params) PredictTrajectory(start, velocity Vector2D, planet Planet, bounds Bounds) iter.Seq[Vector2D] {
	return func(yield func(Vector2D) bool) {
		probe := Body{Position: start, Velocity: velocity, Radius: p.ProbeRadius}
		dt := p.TrajectoryDeltaTime()

		for step := 0; step < p.TrajectorySteps; step++ {
			if CheckCollision(&probe, planet) {
				return
			}

			p.ApplyGravity(&probe, planet, dt)
			p.Integrate(&probe, dt)
			p.HandleWallBounces(&probe, bounds)

			if !yield(probe.Position) {
				return
			}
			if !bounds.Contains(probe.Position, p.OutOfBoundsMargin) {
				return
			}
		}
	}
}

// Trajectory collects PredictTrajectory into a slice
func (p Params) Trajectory(start, velocity Vector2D, planet Planet, bounds Bounds) []Vector2D {
	points := make([]Vector2D, 0, max(p.TrajectorySteps, 0))
	for point := range p.PredictTrajectory(start, velocity, planet, bounds) {
		points = append(points, point)
	}
	return points
}
