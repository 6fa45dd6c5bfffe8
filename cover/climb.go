package cover

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/game"
)

// Climb is the way an occupant may get over a cover.
type Climb uint8

const (
	// CannotClimb means the cover cannot be crossed at the position.
	CannotClimb Climb = iota
	// CanClimb means the occupant may climb on top of the cover.
	CanClimb
	// CanVault means the occupant may jump over the cover and land behind it.
	CanVault
)

// String ...
func (c Climb) String() string {
	switch c {
	case CanClimb:
		return "climb"
	case CanVault:
		return "vault"
	default:
		return "none"
	}
}

// LineOfSight reports whether nothing solid lies on the segment between two points.
type LineOfSight interface {
	LineClear(start, end mgl32.Vec3) bool
}

// GetClimbAt returns the way an occupant of the given radius standing at position may cross the cover.
// Positions past a corner without a neighbor on that side cannot climb.
func (c *Cover) GetClimbAt(position mgl32.Vec3, radius, maxClimbHeight, maxVaultHeight, maxVaultDistance float32) Climb {
	width := c.Width()
	x := c.Right().Dot(position.Sub(c.LeftCorner(position.Y(), 0))) / width
	if (x < 0 && c.left == 0) || (x > 1 && c.right == 0) {
		return CannotClimb
	}

	height := c.Height()
	if height > maxClimbHeight && height > maxVaultHeight {
		return CannotClimb
	}

	space := radius / width
	samples := [3]float32{x - space, x, x + space}
	probe := c.scene.probe
	for _, sample := range samples {
		start := c.probeStart(sample)
		if !c.lineClear(start, start.Add(c.Forward().Mul(probe.Forward))) {
			return CannotClimb
		}

		up := start.Add(c.Forward().Mul(probe.UpOffset))
		if !c.lineClear(up, up.Add(game.Up.Mul(probe.Up))) {
			return CannotClimb
		}
	}

	if height < maxVaultHeight {
		landing := false
		for _, sample := range samples {
			start := c.probeStart(sample).Add(c.Forward().Mul(maxVaultDistance))
			if !c.lineClear(start, start.Sub(game.Up.Mul(probe.Down))) {
				landing = true
				break
			}
		}
		if !landing {
			return CanVault
		}
	}
	return CanClimb
}

// probeStart returns the point just above the back edge of the cover at x, where 0 is the left corner
// and 1 is the right corner.
func (c *Cover) probeStart(x float32) mgl32.Vec3 {
	return c.LeftCorner(c.Top()+c.scene.probe.TopLift, -c.Width()*x)
}

func (c *Cover) lineClear(start, end mgl32.Vec3) bool {
	if c.scene.los == nil {
		return true
	}
	return c.scene.los.LineClear(start, end)
}
