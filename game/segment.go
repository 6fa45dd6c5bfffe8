package game

import "github.com/go-gl/mathgl/mgl32"

// ClosestPointOnSegment returns the point on the segment a-b that is closest to p. A degenerate
// segment returns a.
func ClosestPointOnSegment(a, b, p mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr <= 1e-12 {
		return a
	}

	t := ClampFloat(p.Sub(a).Dot(ab)/lenSqr, 0, 1)
	return a.Add(ab.Mul(t))
}

// DistanceToSegment returns the distance from p to the closest point on the segment a-b.
func DistanceToSegment(p, a, b mgl32.Vec3) float32 {
	return p.Sub(ClosestPointOnSegment(a, b, p)).Len()
}

// SegmentProgress returns where the projection of p falls along a-b, where 0 is a and 1 is b. The
// value is not clamped.
func SegmentProgress(a, b, p mgl32.Vec3) float32 {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr <= 1e-12 {
		return 0
	}
	return p.Sub(a).Dot(ab) / lenSqr
}
