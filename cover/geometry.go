package cover

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/game"
)

// ClosestPointTo returns the point on the back edge of the cover closest to position. The point keeps
// the height of position. sideRadius pulls the point away from both corners and frontRadius pushes it
// back from the cover, towards the occupant.
func (c *Cover) ClosestPointTo(position mgl32.Vec3, sideRadius, frontRadius float32) mgl32.Vec3 {
	local := c.orientation.Rotate(position.Sub(c.position))
	hw, hd := c.Width()*0.5, c.Depth()*0.5

	left := mgl32.Vec3{-hw + sideRadius, local.Y(), -hd}
	right := mgl32.Vec3{hw - sideRadius, local.Y(), -hd}
	if sideRadius*2 >= c.Width() {
		left = mgl32.Vec3{0, local.Y(), -hd}
		right = left
	}
	local = game.ClosestPointOnSegment(left, right, local)

	return c.negativeOrientation.Rotate(local).Add(c.position).Sub(c.Forward().Mul(frontRadius))
}

// LeftCorner returns the left corner of the back edge at height y, moved further to the left by offset.
func (c *Cover) LeftCorner(y, offset float32) mgl32.Vec3 {
	return game.WithY(c.leftCorner.Add(c.Left().Mul(offset)), y)
}

// RightCorner returns the right corner of the back edge at height y, moved further to the right by
// offset.
func (c *Cover) RightCorner(y, offset float32) mgl32.Vec3 {
	return game.WithY(c.rightCorner.Add(c.Right().Mul(offset)), y)
}

// IsInFront returns true if the observer is behind the cover and looking at it from roughly straight
// on. Observers already using the cover are given more leeway. An observer standing on the back edge
// has no direction to the cover and is never in front of it.
func (c *Cover) IsInFront(observer mgl32.Vec3, isOld bool) bool {
	toCover := c.ClosestPointTo(observer, 0, 0).Sub(observer)
	if toCover.LenSqr() <= 1e-8 {
		return false
	}

	min := game.InFrontDotNew
	if isOld {
		min = game.InFrontDotOld
	}
	return toCover.Normalize().Dot(c.Forward()) >= min
}

// IsByLeftCorner returns true if the position is within distance of the left corner.
func (c *Cover) IsByLeftCorner(position mgl32.Vec3, distance float32) bool {
	return c.LeftCorner(position.Y(), 0).Sub(position).Len() <= distance
}

// IsByRightCorner returns true if the position is within distance of the right corner.
func (c *Cover) IsByRightCorner(position mgl32.Vec3, distance float32) bool {
	return c.RightCorner(position.Y(), 0).Sub(position).Len() <= distance
}

// ClosestCornerTo returns the side of the corner closest to point, -1 for left and 1 for right, along
// with the corner itself. Corners are taken at a height of 0 and moved inwards by radius. Ties go to
// the right corner.
func (c *Cover) ClosestCornerTo(point mgl32.Vec3, radius float32) (int, mgl32.Vec3) {
	left, right := c.LeftCorner(0, -radius), c.RightCorner(0, -radius)
	if left.Sub(point).Len() < right.Sub(point).Len() {
		return -1, left
	}
	return 1, right
}

// ClosestCornerToSegment works like ClosestCornerTo but measures the distance of each corner to the
// segment from a to b.
func (c *Cover) ClosestCornerToSegment(a, b mgl32.Vec3, radius float32) (int, mgl32.Vec3) {
	left, right := c.LeftCorner(0, -radius), c.RightCorner(0, -radius)
	if game.DistanceToSegment(left, a, b) < game.DistanceToSegment(right, a, b) {
		return -1, left
	}
	return 1, right
}

// DistanceTo returns the horizontal distance from position to the back edge of the cover.
func (c *Cover) DistanceTo(position mgl32.Vec3) float32 {
	return game.Vec3HzDist(position, c.ClosestPointTo(position, 0, 0))
}
