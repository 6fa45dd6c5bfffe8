package cover

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/game"
	"github.com/samber/lo"
)

// Search finds the cover an actor should occupy.
type Search interface {
	// FindClosest returns the closest usable cover, or nil.
	FindClosest() *Cover
}

// SearchFunc is a Search backed by a function.
type SearchFunc func() *Cover

// FindClosest ...
func (f SearchFunc) FindClosest() *Cover {
	return f()
}

// ProximitySearch finds the closest cover of a scene that the observer stands behind.
type ProximitySearch struct {
	Scene *Scene
	// Observer is the feet position of the actor.
	Observer mgl32.Vec3
	// Radius is the radius of the actor, subtracted from distances to covers.
	Radius float32
	// Current is the cover the actor occupies, or nil. It is kept up to LeaveDistance away.
	Current *Cover
	// EnterDistance is the largest distance at which a new cover is taken.
	EnterDistance float32
	// LeaveDistance is the largest distance at which the current cover is kept.
	LeaveDistance float32
}

type candidate struct {
	cover    *Cover
	distance float32
}

// FindClosest ...
func (s ProximitySearch) FindClosest() *Cover {
	if s.Scene == nil {
		return nil
	}

	candidates := lo.FilterMap(s.Scene.covers, func(c *Cover, _ int) (candidate, bool) {
		if c.Top() <= s.Observer.Y() || c.Bottom() > s.Observer.Y()+game.SearchMaxBottomAbove {
			return candidate{}, false
		}

		isCurrent := c == s.Current
		limit := s.EnterDistance
		if isCurrent {
			limit = s.LeaveDistance
		}

		distance := c.DistanceTo(s.Observer) - s.Radius
		if distance > limit || !c.IsInFront(s.Observer, isCurrent) {
			return candidate{}, false
		}
		return candidate{cover: c, distance: distance}, true
	})
	if len(candidates) == 0 {
		return nil
	}

	return lo.MinBy(candidates, func(a, b candidate) bool {
		if a.distance == b.distance {
			return a.cover.handle < b.cover.handle
		}
		return a.distance < b.distance
	}).cover
}
