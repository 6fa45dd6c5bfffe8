package game

const (
	// CoverTallThreshold is how far the top of a cover has to be above a point for the cover to count
	// as tall relative to it.
	CoverTallThreshold = float32(1.2)
	// StateTallThreshold is how far the top of a cover has to be above the feet of its occupant for the
	// occupant to stand instead of crouch-peek.
	StateTallThreshold = float32(1.1)

	// CornerProbeDistance is how far away from a cover the corner probe point is placed.
	CornerProbeDistance = float32(999)

	// InFrontDotOld is the minimum dot product between the cover forward and the direction to the
	// cover for an observer already using it.
	InFrontDotOld = float32(0.85)
	// InFrontDotNew is the same as InFrontDotOld for an observer not yet using the cover.
	InFrontDotNew = float32(0.95)

	// LeftAdjacentMinAngle and LeftAdjacentMaxAngle bound the yaw difference to a left neighbor.
	LeftAdjacentMinAngle = float32(-120)
	LeftAdjacentMaxAngle = float32(60)
	// RightAdjacentMinAngle and RightAdjacentMaxAngle bound the yaw difference to a right neighbor.
	RightAdjacentMinAngle = float32(-60)
	RightAdjacentMaxAngle = float32(120)

	// SearchMaxBottomAbove is how far the bottom of a cover may be above the feet of an actor searching
	// for cover.
	SearchMaxBottomAbove = float32(0.5)

	// MinCoverExtent is the smallest width, height or depth a cover may have.
	MinCoverExtent = float32(1e-4)

	// TimeEnterToAim is how long it takes to raise the weapon from cover.
	TimeEnterToAim = float32(0.2)
	// TimeAimToLeave is how long aiming lingers after letting go of aim.
	TimeAimToLeave = float32(0.15)
)
