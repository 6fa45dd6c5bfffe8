package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// AABBFromDimensions returns a bounding box from the given dimensions, standing on the origin.
func AABBFromDimensions(width, height float32) cube.BBox {
	h := width / 2
	return cube.Box(
		-h, 0, -h,
		h, height, h,
	)
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))

	return math32.Sqrt(x*x + y*y + z*z)
}

// ClosestPointToBBox returns the point inside or on the box that is closest to v.
func ClosestPointToBBox(v mgl32.Vec3, bb cube.BBox) mgl32.Vec3 {
	return mgl32.Vec3{
		ClampFloat(v.X(), bb.Min().X(), bb.Max().X()),
		ClampFloat(v.Y(), bb.Min().Y(), bb.Max().Y()),
		ClampFloat(v.Z(), bb.Min().Z(), bb.Max().Z()),
	}
}

// OrientedBounds returns the axis aligned box enclosing a box centred on center with the given half
// extents, rotated by rot.
func OrientedBounds(center, halfExtents mgl32.Vec3, rot mgl32.Quat) cube.BBox {
	min := mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	max := mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32}
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{halfExtents.X(), halfExtents.Y(), halfExtents.Z()}
		if i&1 != 0 {
			corner[0] = -corner[0]
		}
		if i&2 != 0 {
			corner[1] = -corner[1]
		}
		if i&4 != 0 {
			corner[2] = -corner[2]
		}
		corner = rot.Rotate(corner).Add(center)
		for axis := 0; axis < 3; axis++ {
			min[axis] = math32.Min(min[axis], corner[axis])
			max[axis] = math32.Max(max[axis], corner[axis])
		}
	}
	return cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
}
