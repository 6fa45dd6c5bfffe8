package cover

import (
	"github.com/oomph-ac/cover/game"
	"github.com/oomph-ac/cover/settings"
)

// IsFront returns true if the angle is within 90-margin degrees of the cover angle.
func (c *Cover) IsFront(angle, margin float32) bool {
	delta := c.delta(angle)
	return delta >= -90+margin && delta <= 90-margin
}

// IsFrontSide checks IsFront with the margin of the side of the cover the angle points to.
func (c *Cover) IsFrontSide(angle float32, angles settings.SideAngles) bool {
	if c.IsLeft(angle, 0) {
		return c.IsFront(angle, angles.Left)
	}
	return c.IsFront(angle, angles.Right)
}

// IsFrontTrigger checks IsFront with the exit margin if state is set and the enter margin otherwise.
func (c *Cover) IsFrontTrigger(angle float32, angles settings.TriggerAngles, state bool) bool {
	if state {
		return c.IsFront(angle, angles.Exit)
	}
	return c.IsFront(angle, angles.Enter)
}

// IsFrontFace checks IsFront with the Face margin if the angle points to the side the occupant faces,
// and with the Opposite margin otherwise.
func (c *Cover) IsFrontFace(angle float32, angles settings.FaceAngles, direction int) bool {
	if direction < 0 {
		if c.IsLeft(angle, 0) {
			return c.IsFront(angle, angles.Face)
		}
		return c.IsFront(angle, angles.Opposite)
	}
	if c.IsRight(angle, 0) {
		return c.IsFront(angle, angles.Face)
	}
	return c.IsFront(angle, angles.Opposite)
}

// IsFrontField returns true if the angle is inside a field of the given size centred on the cover angle.
func (c *Cover) IsFrontField(angle, field float32) bool {
	return c.IsFront(angle, (180-field)/2)
}

// IsBack returns true if the angle is at least 90+margin degrees away from the cover angle.
func (c *Cover) IsBack(angle, margin float32) bool {
	delta := c.delta(angle)
	return delta <= -90-margin || delta >= 90+margin
}

// IsLeft returns true if the angle points to the left half of the cover.
func (c *Cover) IsLeft(angle, margin float32) bool {
	delta := c.delta(angle)
	return delta >= margin && delta <= 180-margin
}

// IsLeftTrigger checks IsLeft with the exit margin if state is set and the enter margin otherwise.
func (c *Cover) IsLeftTrigger(angle float32, angles settings.TriggerAngles, state bool) bool {
	if state {
		return c.IsLeft(angle, angles.Exit)
	}
	return c.IsLeft(angle, angles.Enter)
}

// IsLeftField returns true if the angle is inside a field of the given size centred on the left of the
// cover.
func (c *Cover) IsLeftField(angle, field float32) bool {
	return c.IsLeft(angle, (180-field)/2)
}

// IsRight returns true if the angle points to the right half of the cover.
func (c *Cover) IsRight(angle, margin float32) bool {
	delta := c.delta(angle)
	return delta >= -180+margin && delta <= -margin
}

// IsRightTrigger checks IsRight with the exit margin if state is set and the enter margin otherwise.
func (c *Cover) IsRightTrigger(angle float32, angles settings.TriggerAngles, state bool) bool {
	if state {
		return c.IsRight(angle, angles.Exit)
	}
	return c.IsRight(angle, angles.Enter)
}

// IsRightField returns true if the angle is inside a field of the given size centred on the right of
// the cover.
func (c *Cover) IsRightField(angle, field float32) bool {
	return c.IsRight(angle, (180-field)/2)
}

func (c *Cover) delta(angle float32) float32 {
	return game.DeltaAngle(angle, c.Angle())
}
