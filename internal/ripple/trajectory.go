package ripple

// Trajectory is the straight descending path of one saltating grain. It
// exists only while a single impact is being resolved.
type Trajectory struct {
	LaunchHeight float64
	Slope        float64
}

// NewTrajectory returns the path launched at launchHeight that descends with
// the given impact angle.
func NewTrajectory(launchHeight, impactAngle float64) Trajectory {
	return Trajectory{LaunchHeight: launchHeight, Slope: -impactAngle}
}

// HeightAt returns the trajectory height above position x.
func (t Trajectory) HeightAt(x float64) float64 {
	return t.Slope*x + t.LaunchHeight
}

// ResolveImpact returns the first cell, scanning upward from x = 0, where the
// trajectory is at or below the bed. ok is false when the grain clears the
// whole profile.
func ResolveImpact(f *Field, t Trajectory) (cell int, ok bool) {
	for i, x := range f.positions {
		if t.HeightAt(x) <= f.heights[i] {
			return i, true
		}
	}
	return -1, false
}

// LaunchRange returns the interval launch heights are drawn from: from a path
// that meets a flat bed at the first cell to one that meets it a cell past the
// last. Grains near the top of the range can overshoot the bed entirely.
func LaunchRange(f *Field, impactAngle float64) (min, max float64) {
	min = impactAngle * f.positions[0]
	max = impactAngle * (f.positions[len(f.positions)-1] + f.binWidth)
	return min, max
}
