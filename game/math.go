package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// Float32ApproxEq determines whether two floating point numbers are within 1e-4 of each other.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-4
}

// Vec3ApproxEq determines whether every component of the two vectors is within 1e-4 of each other.
func Vec3ApproxEq(a, b mgl32.Vec3) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1]) && Float32ApproxEq(a[2], b[2])
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// AbsVec32 will return the given vector, but all the values of it are switched to their absolute values.
func AbsVec32(vec mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(vec.X()), math32.Abs(vec.Y()), math32.Abs(vec.Z())}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Vec3HzDist returns the horizontal distance between two points.
func Vec3HzDist(a, b mgl32.Vec3) float32 {
	return math32.Sqrt(Vec3HzDistSqr(a.Sub(b)))
}

// SafeNormalize normalizes the vector, returning the zero vector for vectors too short to have a direction.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// WithY returns the vector with its Y component replaced.
func WithY(v mgl32.Vec3, y float32) mgl32.Vec3 {
	v[1] = y
	return v
}

// PHPSpaceshipOp returns -1 if x < y, 0 if x == y, or 1 if x > y
func PHPSpaceshipOp(x, y float32) float32 {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}

	return 1
}
