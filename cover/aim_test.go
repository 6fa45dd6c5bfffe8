package cover

import (
	"testing"

	"github.com/oomph-ac/cover/game"
	"github.com/stretchr/testify/assert"
)

func TestAimRoundTrip(t *testing.T) {
	var aim AimState
	assert.False(t, aim.IsAiming())

	aim.CoverAim(45)
	assert.Equal(t, AimEnter, aim.Step)
	assert.True(t, aim.IsAiming())

	aim.Update(game.TimeEnterToAim)
	assert.Equal(t, AimAiming, aim.Step)
	assert.Equal(t, float32(45), aim.Angle)

	aim.Leave()
	aim.Update(game.TimeAimToLeave)
	assert.Equal(t, AimNone, aim.Step)
	assert.False(t, aim.LeaveAfterAiming)
}

func TestAimSplitFrames(t *testing.T) {
	var aim AimState
	aim.CoverAim(0)
	aim.Update(0.1)
	assert.Equal(t, AimEnter, aim.Step)
	aim.Update(0.1)
	assert.Equal(t, AimAiming, aim.Step)
	assert.Equal(t, game.TimeAimToLeave, aim.TimeLeftForNextStep)
}

func TestAimCancelLeave(t *testing.T) {
	var aim AimState
	aim.CoverAim(10)
	aim.Update(game.TimeEnterToAim)

	aim.Leave()
	aim.Update(0.1)
	aim.CoverAim(20)
	assert.False(t, aim.LeaveAfterAiming)

	for i := 0; i < 10; i++ {
		aim.Update(0.1)
		assert.Equal(t, AimAiming, aim.Step)
	}
	assert.Equal(t, float32(20), aim.Angle)
	assert.Zero(t, aim.TimeLeftForNextStep)
}

func TestAimLeaveDuringEnter(t *testing.T) {
	var aim AimState
	aim.CoverAim(0)
	aim.Leave()
	assert.Equal(t, AimEnter, aim.Step)

	aim.Update(game.TimeEnterToAim)
	assert.Equal(t, AimAiming, aim.Step)
	aim.Update(game.TimeAimToLeave)
	assert.Equal(t, AimNone, aim.Step)
}

func TestFreeAimAndImmediateLeave(t *testing.T) {
	var aim AimState
	aim.FreeAim(90)
	assert.Equal(t, AimAiming, aim.Step)

	aim.CoverAim(80)
	assert.Equal(t, AimAiming, aim.Step, "already aiming")

	aim.Leave()
	aim.ImmediateLeave()
	assert.Equal(t, AimState{Angle: 80}, aim)
}
