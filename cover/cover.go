package cover

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/cover/game"
	"github.com/sasha-s/go-deadlock"
)

// Handle identifies a cover inside its scene. The zero Handle is never assigned to a cover.
type Handle uint32

// Spec describes a cover volume placed in a level.
type Spec struct {
	Name string
	// Position is the centre of the cover volume.
	Position mgl32.Vec3
	// Yaw is the direction the cover faces in degrees. Occupants stand behind the cover looking along it.
	Yaw float32
	// Size scales the unit box of the cover along its local right, up and forward axes.
	Size mgl32.Vec3
	// OpenLeft and OpenRight are true if the occupant may use the corner on that side.
	OpenLeft, OpenRight bool
	// AdjacentDistance is the largest gap between corners of two covers that are linked as neighbors.
	AdjacentDistance float32
}

// Cover is a single oriented rectangular cover volume.
type Cover struct {
	handle Handle
	name   string
	scene  *Scene

	position mgl32.Vec3
	yaw      float32
	scale    mgl32.Vec3

	// OpenLeft is true if the left corner of the cover may be used.
	OpenLeft bool
	// OpenRight is true if the right corner of the cover may be used.
	OpenRight bool
	// AdjacentDistance is the largest gap between corners of two covers that are linked as neighbors.
	AdjacentDistance float32

	left, right Handle

	// Derived from the placement by refresh and read only afterwards.
	orientation             mgl32.Quat
	negativeOrientation     mgl32.Quat
	size                    mgl32.Vec3
	bounds                  cube.BBox
	leftCorner, rightCorner mgl32.Vec3

	usersMu deadlock.Mutex
	users   *orderedmap.OrderedMap[uuid.UUID, Registration]
}

func newCover(h Handle, scene *Scene, spec Spec) *Cover {
	c := &Cover{
		handle:           h,
		name:             spec.Name,
		scene:            scene,
		position:         spec.Position,
		yaw:              spec.Yaw,
		scale:            spec.Size,
		OpenLeft:         spec.OpenLeft,
		OpenRight:        spec.OpenRight,
		AdjacentDistance: spec.AdjacentDistance,
		users:            orderedmap.NewOrderedMap[uuid.UUID, Registration](),
	}
	c.refresh()
	return c
}

// Handle returns the handle of the cover inside its scene.
func (c *Cover) Handle() Handle {
	return c.handle
}

// Name returns the name the cover was placed with.
func (c *Cover) Name() string {
	return c.name
}

// Position returns the centre of the cover.
func (c *Cover) Position() mgl32.Vec3 {
	return c.position
}

// Angle returns the yaw of the cover in [0, 360).
func (c *Cover) Angle() float32 {
	return game.NormalizeAngle(c.yaw)
}

// Forward returns the direction the cover faces, away from its occupants.
func (c *Cover) Forward() mgl32.Vec3 {
	return c.negativeOrientation.Rotate(mgl32.Vec3{0, 0, 1})
}

// Right returns the right of the cover as seen by its occupants.
func (c *Cover) Right() mgl32.Vec3 {
	return c.negativeOrientation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Left returns the left of the cover as seen by its occupants.
func (c *Cover) Left() mgl32.Vec3 {
	return c.Right().Mul(-1)
}

// Width returns the size of the cover along its right axis.
func (c *Cover) Width() float32 {
	return c.size.X()
}

// Height returns the world space vertical size of the cover.
func (c *Cover) Height() float32 {
	return c.size.Y()
}

// Depth returns the size of the cover along its forward axis.
func (c *Cover) Depth() float32 {
	return c.size.Z()
}

// Bounds returns the world space box enclosing the cover.
func (c *Cover) Bounds() cube.BBox {
	return c.bounds
}

// Top returns the highest point of the cover.
func (c *Cover) Top() float32 {
	return c.Bounds().Max().Y()
}

// Bottom returns the lowest point of the cover.
func (c *Cover) Bottom() float32 {
	return c.Bounds().Min().Y()
}

// IsTall returns true if the cover is taller than the tall threshold.
func (c *Cover) IsTall() bool {
	return c.Top()-c.Bottom() > game.CoverTallThreshold
}

// CheckTall returns true if the top of the cover is more than the tall threshold above y.
func (c *Cover) CheckTall(y float32) bool {
	return c.Top()-y > game.CoverTallThreshold
}

// LeftAdjacent returns the neighbor linked to the left corner, or nil.
func (c *Cover) LeftAdjacent() *Cover {
	return c.scene.Cover(c.left)
}

// RightAdjacent returns the neighbor linked to the right corner, or nil.
func (c *Cover) RightAdjacent() *Cover {
	return c.scene.Cover(c.right)
}

// Invalidate recomputes the orientation, size, bounds and corners of the cover from its placement. It
// must not run while other goroutines query the cover.
func (c *Cover) Invalidate() {
	c.refresh()
}

// InverseTransformVector transforms a world space direction into the local space of the unit box of
// the cover, undoing both its rotation and its scale.
func (c *Cover) InverseTransformVector(v mgl32.Vec3) mgl32.Vec3 {
	local := game.YawRotation(-c.yaw).Rotate(v)
	return mgl32.Vec3{local.X() / c.scale.X(), local.Y() / c.scale.Y(), local.Z() / c.scale.Z()}
}

func (c *Cover) refresh() {
	c.orientation = game.YawRotation(-c.yaw)
	c.negativeOrientation = game.YawRotation(c.yaw)
	c.bounds = game.OrientedBounds(c.position, c.scale.Mul(0.5), c.negativeOrientation)

	c.size = mgl32.Vec3{
		1 / c.InverseTransformVector(c.negativeOrientation.Rotate(mgl32.Vec3{1, 0, 0})).Len(),
		c.bounds.Max().Y() - c.bounds.Min().Y(),
		1 / c.InverseTransformVector(c.negativeOrientation.Rotate(mgl32.Vec3{0, 0, 1})).Len(),
	}
	c.leftCorner = c.ClosestPointTo(c.position.Add(c.Left().Mul(game.CornerProbeDistance)), 0, 0)
	c.rightCorner = c.ClosestPointTo(c.position.Add(c.Right().Mul(game.CornerProbeDistance)), 0, 0)
}
