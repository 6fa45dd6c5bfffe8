package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Repeat loops t so that it is never larger than length and never smaller than 0.
func Repeat(t, length float32) float32 {
	return ClampFloat(t-math32.Floor(t/length)*length, 0, length)
}

// NormalizeAngle wraps an angle in degrees into [0, 360).
func NormalizeAngle(angle float32) float32 {
	a := Repeat(angle, 360)
	if a >= 360 {
		a -= 360
	}
	return a
}

// DeltaAngle returns the shortest signed difference from current to target in degrees. The result
// lies in (-180, 180].
func DeltaAngle(current, target float32) float32 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// WrapYawDelta wraps a yaw delta that is at most one revolution off into [-180, 180].
func WrapYawDelta(delta float32) float32 {
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// YawVector returns the horizontal unit vector an observer with the given yaw is facing. A yaw of 0
// faces +Z and a yaw of 90 faces +X.
func YawVector(yaw float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(yaw)
	return mgl32.Vec3{math32.Sin(rad), 0, math32.Cos(rad)}
}

// DirectionVector returns a direction vector from the given yaw and pitch values. Positive pitch
// looks down.
func DirectionVector(yaw, pitch float32) mgl32.Vec3 {
	yawRad, pitchRad := mgl32.DegToRad(yaw), mgl32.DegToRad(pitch)
	m := math32.Cos(pitchRad)

	return mgl32.Vec3{
		m * math32.Sin(yawRad),
		-math32.Sin(pitchRad),
		m * math32.Cos(yawRad),
	}
}

// HorizontalAngle returns the yaw of the horizontal part of the vector, in [0, 360). The zero vector
// has an angle of 0.
func HorizontalAngle(v mgl32.Vec3) float32 {
	if Vec3HzDistSqr(v) <= 1e-12 {
		return 0
	}
	return NormalizeAngle(mgl32.RadToDeg(math32.Atan2(v.X(), v.Z())))
}

// YawRotation returns the rotation around the up axis for the given yaw.
func YawRotation(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(yaw), Up)
}
