// pkg/render/trajectory.go
package render

import "github.com/opd-ai/go-slingshot/pkg/physics"

// Dash is one visible piece of a stroked trajectory
type Dash struct {
	From  physics.Vector2D
	To    physics.Vector2D
	Alpha float64
}

// TrajectoryStyle controls how a predicted path is stroked
type TrajectoryStyle struct {
	DashLength float64
	GapLength  float64
	// MinAlpha is the opacity reached at the end of the path
	MinAlpha float64
}

// DefaultTrajectoryStyle is dashes of 8 with gaps of 4 fading to 0.3
var DefaultTrajectoryStyle = TrajectoryStyle{DashLength: 8, GapLength: 4, MinAlpha: 0.3}

// SegmentAlpha returns the opacity of segment i of a path with n points
func (s TrajectoryStyle) SegmentAlpha(i, n int) float64 {
	if n <= 0 {
		return 1
	}
	return 1 - float64(i)/float64(n)*(1-s.MinAlpha)
}

// Stroke cuts the polyline through points into dashes. The dash pattern runs
// along the arc length across segments, and each piece takes the alpha of the
// segment it lies on. Fewer than two points produce nothing.
func (s TrajectoryStyle) Stroke(points []physics.Vector2D) []Dash {
	if len(points) < 2 {
		return nil
	}

	period := s.DashLength + s.GapLength
	solid := s.DashLength <= 0 || s.GapLength <= 0

	var dashes []Dash
	phase := 0.0
	for i := 0; i+1 < len(points); i++ {
		from, to := points[i], points[i+1]
		alpha := s.SegmentAlpha(i, len(points))
		length := from.Distance(to)
		if length == 0 {
			continue
		}
		if solid {
			dashes = append(dashes, Dash{From: from, To: to, Alpha: alpha})
			continue
		}

		dir := to.Sub(from).Scale(1 / length)
		walked := 0.0
		for walked < length {
			var step float64
			if phase < s.DashLength {
				step = min(s.DashLength-phase, length-walked)
				dashes = append(dashes, Dash{
					From:  from.Add(dir.Scale(walked)),
					To:    from.Add(dir.Scale(walked + step)),
					Alpha: alpha,
				})
			} else {
				step = min(period-phase, length-walked)
			}
			walked += step
			phase += step
			if phase >= period {
				phase -= period
			}
		}
	}
	return dashes
}
