package cover

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/game"
)

// Occupancy is either Out or In.
type Occupancy interface {
	occupancy()
}

// Out is the occupancy of an actor that is not in cover.
type Out struct{}

// In is the occupancy of an actor in cover. Left and Right mirror the neighbors of Main.
type In struct {
	Main        *Cover
	Left, Right *Cover
}

func (Out) occupancy() {}
func (In) occupancy()  {}

// State tracks the cover an actor occupies. The zero State is out of cover.
type State struct {
	occupancy Occupancy

	// Observer is the feet position of the actor at the last Take or Maintain.
	Observer mgl32.Vec3
	// Direction is -1 if the actor stands towards the left of the cover and +1 towards the right.
	Direction int
	// MainChangeAge is the time in seconds since the occupied cover last changed.
	MainChangeAge float32
}

// Occupancy returns the current occupancy.
func (s *State) Occupancy() Occupancy {
	if s.occupancy == nil {
		return Out{}
	}
	return s.occupancy
}

// In returns true if the actor occupies a cover.
func (s *State) In() bool {
	_, ok := s.occupancy.(In)
	return ok
}

// Main returns the occupied cover, or nil.
func (s *State) Main() *Cover {
	if in, ok := s.occupancy.(In); ok {
		return in.Main
	}
	return nil
}

// LeftAdjacent returns the left neighbor of the occupied cover, or nil.
func (s *State) LeftAdjacent() *Cover {
	if in, ok := s.occupancy.(In); ok {
		return in.Left
	}
	return nil
}

// RightAdjacent returns the right neighbor of the occupied cover, or nil.
func (s *State) RightAdjacent() *Cover {
	if in, ok := s.occupancy.(In); ok {
		return in.Right
	}
	return nil
}

func (s *State) setMain(c *Cover) {
	if c == nil {
		s.occupancy = Out{}
		return
	}
	s.occupancy = In{Main: c, Left: c.LeftAdjacent(), Right: c.RightAdjacent()}
}

// Take enters the closest cover found by search if the actor is not in cover yet. Otherwise, or if no
// cover is found, the state is cleared. Take returns true only if the actor was out of cover and now
// occupies one.
func (s *State) Take(search Search, observer mgl32.Vec3) bool {
	s.Observer = observer

	wasIn := s.In()
	closest := search.FindClosest()
	previous := s.Main()

	if previous == nil && closest != nil {
		s.setMain(closest)
	} else {
		s.Clear()
	}
	if s.Main() != previous {
		s.MainChangeAge = 0
	}
	return s.In() && !wasIn
}

// Maintain keeps the actor in cover while the closest cover is either the occupied one or one of its
// neighbors, in which case the actor slides over to it. Any other result leaves cover.
func (s *State) Maintain(search Search, observer mgl32.Vec3) {
	s.Observer = observer

	closest := search.FindClosest()
	previous := s.Main()
	main := previous

	if main != nil && main != closest {
		switch {
		case closest == nil:
			main = nil
		case closest == s.LeftAdjacent():
			s.StandLeft()
			main = closest
		case closest == s.RightAdjacent():
			s.StandRight()
			main = closest
		default:
			main = nil
		}
	}

	s.setMain(main)
	if main != previous {
		s.MainChangeAge = 0
	}
}

// Clear leaves cover.
func (s *State) Clear() {
	s.occupancy = Out{}
	s.MainChangeAge = 0
}

// StandLeft makes the actor stand towards the left of the cover.
func (s *State) StandLeft() {
	s.Direction = -1
}

// StandRight makes the actor stand towards the right of the cover.
func (s *State) StandRight() {
	s.Direction = 1
}

// Update advances MainChangeAge by dt seconds.
func (s *State) Update(dt float32) {
	s.MainChangeAge += dt
}

// MoveToLeftAdjacent makes the left neighbor the occupied cover. It returns false if there is none.
func (s *State) MoveToLeftAdjacent() bool {
	left := s.LeftAdjacent()
	if left == nil {
		return false
	}
	s.setMain(left)
	s.MainChangeAge = 0
	return true
}

// MoveToRightAdjacent makes the right neighbor the occupied cover. It returns false if there is none.
func (s *State) MoveToRightAdjacent() bool {
	right := s.RightAdjacent()
	if right == nil {
		return false
	}
	s.setMain(right)
	s.MainChangeAge = 0
	return true
}

// IsTall returns true if the occupied cover hides the actor while standing.
func (s *State) IsTall() bool {
	main := s.Main()
	return main != nil && main.Top()-s.Observer.Y() > game.StateTallThreshold
}

// Width returns the width of the occupied cover, or 0.
func (s *State) Width() float32 {
	if main := s.Main(); main != nil {
		return main.Width()
	}
	return 0
}

// ForwardAngle returns the angle of the occupied cover, or 0.
func (s *State) ForwardAngle() float32 {
	if main := s.Main(); main != nil {
		return main.Angle()
	}
	return 0
}

// ForwardDirection returns the forward direction of the occupied cover, or the zero vector.
func (s *State) ForwardDirection() mgl32.Vec3 {
	if main := s.Main(); main != nil {
		return main.Forward()
	}
	return mgl32.Vec3{}
}

// MovementAngle returns the angle the actor moves along the cover towards.
func (s *State) MovementAngle() float32 {
	return s.ForwardAngle() + 90*float32(s.Direction)
}

// FaceAngle returns the angle the actor faces. Behind tall cover the actor faces away from the cover,
// behind low cover it faces along it.
func (s *State) FaceAngle() float32 {
	forward := s.ForwardAngle()
	if s.IsTall() {
		return forward + game.DeltaAngle(forward, forward+180)
	}
	return forward + 90*float32(s.Direction)
}

// IsStandingLeft returns true if the actor is moving towards the left of the cover.
func (s *State) IsStandingLeft() bool {
	return game.DeltaAngle(s.MovementAngle(), s.ForwardAngle()) > 0
}

// IsStandingRight returns true if the actor is moving towards the right of the cover.
func (s *State) IsStandingRight() bool {
	return game.DeltaAngle(s.MovementAngle(), s.ForwardAngle()) < 0
}

// LeftAdjacentAngle returns the angle from the left neighbor to the occupied cover, or 0.
func (s *State) LeftAdjacentAngle() float32 {
	main, left := s.Main(), s.LeftAdjacent()
	if main == nil || left == nil {
		return 0
	}
	return game.DeltaAngle(left.Angle(), main.Angle())
}

// RightAdjacentAngle returns the angle from the occupied cover to the right neighbor, or 0.
func (s *State) RightAdjacentAngle() float32 {
	main, right := s.Main(), s.RightAdjacent()
	if main == nil || right == nil {
		return 0
	}
	return game.DeltaAngle(main.Angle(), right.Angle())
}

// HasLeftAdjacent returns true if the occupied cover has a left neighbor.
func (s *State) HasLeftAdjacent() bool {
	return s.LeftAdjacent() != nil
}

// HasRightAdjacent returns true if the occupied cover has a right neighbor.
func (s *State) HasRightAdjacent() bool {
	return s.RightAdjacent() != nil
}

// IsLeftAdjacentTall returns true if the left neighbor hides the actor while standing.
func (s *State) IsLeftAdjacentTall() bool {
	left := s.LeftAdjacent()
	return left != nil && left.Top()-s.Observer.Y() >= game.StateTallThreshold
}

// IsRightAdjacentTall returns true if the right neighbor hides the actor while standing.
func (s *State) IsRightAdjacentTall() bool {
	right := s.RightAdjacent()
	return right != nil && right.Top()-s.Observer.Y() >= game.StateTallThreshold
}

// HasLeftCorner returns true if the actor may peek around the left corner of the occupied cover.
func (s *State) HasLeftCorner() bool {
	main := s.Main()
	if main == nil || !main.OpenLeft {
		return false
	}
	return s.LeftAdjacent() == nil || (s.IsTall() && !s.IsLeftAdjacentTall())
}

// HasRightCorner returns true if the actor may peek around the right corner of the occupied cover.
func (s *State) HasRightCorner() bool {
	main := s.Main()
	if main == nil || !main.OpenRight {
		return false
	}
	return s.RightAdjacent() == nil || (s.IsTall() && !s.IsRightAdjacentTall())
}
