package cover

import "github.com/oomph-ac/cover/game"

// AimStep is the stage of aiming from cover.
type AimStep uint8

const (
	// AimNone means the actor is not aiming.
	AimNone AimStep = iota
	// AimEnter means the actor is raising the weapon out of cover.
	AimEnter
	// AimAiming means the actor is aiming.
	AimAiming
)

// String ...
func (s AimStep) String() string {
	switch s {
	case AimEnter:
		return "enter"
	case AimAiming:
		return "aiming"
	default:
		return "none"
	}
}

// aimTimerEpsilon absorbs the rounding of frame deltas that sum up to a step duration.
const aimTimerEpsilon = float32(1e-6)

// AimState tracks aiming from cover. The zero AimState is not aiming.
type AimState struct {
	Step  AimStep
	Angle float32
	// IsZoomed is true if the actor aims down the sights.
	IsZoomed bool
	// TimeLeftForNextStep is the time in seconds until the pending step change.
	TimeLeftForNextStep float32
	// LeaveAfterAiming is true if aiming stops once the current step is over.
	LeaveAfterAiming bool
}

// IsAiming returns true while the actor raises the weapon or aims.
func (s *AimState) IsAiming() bool {
	return s.Step == AimEnter || s.Step == AimAiming
}

// Update advances the timer by dt seconds. Once it runs out, Enter moves on to Aiming and Aiming stops
// if a leave is pending. The timer never goes below zero.
func (s *AimState) Update(dt float32) {
	if s.Step == AimNone {
		return
	}

	s.TimeLeftForNextStep -= dt
	if s.TimeLeftForNextStep > aimTimerEpsilon {
		return
	}
	s.TimeLeftForNextStep = 0

	switch s.Step {
	case AimEnter:
		s.Step = AimAiming
		s.TimeLeftForNextStep = game.TimeAimToLeave
	case AimAiming:
		if s.LeaveAfterAiming {
			s.Step = AimNone
			s.LeaveAfterAiming = false
		}
	}
}

// ImmediateLeave stops aiming without waiting.
func (s *AimState) ImmediateLeave() {
	s.LeaveAfterAiming = false
	s.TimeLeftForNextStep = 0
	s.Step = AimNone
}

// Leave stops aiming once the current step is over.
func (s *AimState) Leave() {
	switch s.Step {
	case AimEnter:
		s.LeaveAfterAiming = true
	case AimAiming:
		if !s.LeaveAfterAiming {
			s.LeaveAfterAiming = true
			s.TimeLeftForNextStep = game.TimeAimToLeave
		}
	}
}

// FreeAim aims at the angle straight away, as done outside of cover.
func (s *AimState) FreeAim(angle float32) {
	s.Angle = angle
	s.Step = AimAiming
}

// CoverAim aims at the angle from cover. Raising the weapon takes a moment unless the actor already
// aims, in which case a pending leave is cancelled.
func (s *AimState) CoverAim(angle float32) {
	s.Angle = angle

	switch s.Step {
	case AimAiming:
		s.LeaveAfterAiming = false
	case AimNone:
		s.Step = AimEnter
		s.TimeLeftForNextStep = game.TimeEnterToAim
	}
}
