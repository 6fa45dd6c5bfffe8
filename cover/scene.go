package cover

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/chewxy/math32"
	"github.com/oomph-ac/cover/actor"
	"github.com/oomph-ac/cover/assert"
	"github.com/oomph-ac/cover/game"
	"github.com/oomph-ac/cover/oerror"
	"github.com/oomph-ac/cover/settings"
	"github.com/samber/lo"
)

// Scene holds every cover of a level. Covers are added first, then Resolve links neighbors. After
// Resolve the scene is read only until Unload.
type Scene struct {
	log      *slog.Logger
	registry *actor.Registry
	los      LineOfSight
	probe    settings.ProbeSettings

	covers   []*Cover
	resolved bool
}

// NewScene returns an empty scene. Occupants of its covers are resolved through registry and climb
// probes are cast against los. Both may be nil.
func NewScene(log *slog.Logger, registry *actor.Registry, los LineOfSight) *Scene {
	if log == nil {
		log = slog.Default()
	}
	return &Scene{
		log:      log,
		registry: registry,
		los:      los,
		probe:    settings.DefaultSettings().Probe,
	}
}

// SetProbeSettings replaces the probe settings used to classify climbs.
func (s *Scene) SetProbeSettings(probe settings.ProbeSettings) {
	s.probe = probe
}

// Add places a new cover in the scene.
func (s *Scene) Add(spec Spec) (*Cover, error) {
	if s.resolved {
		return nil, oerror.New(game.ErrorSceneResolved, spec.Name)
	}
	if spec.AdjacentDistance < 0 || math32.IsNaN(spec.AdjacentDistance) {
		return nil, oerror.New(game.ErrorInvalidAdjacentRange, spec.Name, spec.AdjacentDistance)
	}
	if !validExtent(spec.Size.X()) || !validExtent(spec.Size.Y()) || !validExtent(spec.Size.Z()) {
		return nil, oerror.New(game.ErrorDegenerateCover, spec.Name, spec.Size)
	}

	c := newCover(Handle(len(s.covers)+1), s, spec)
	if !validExtent(c.Width()) || !validExtent(c.Height()) || !validExtent(c.Depth()) {
		return nil, oerror.New(game.ErrorDegenerateCover, spec.Name, spec.Size)
	}
	s.covers = append(s.covers, c)
	return c, nil
}

func validExtent(v float32) bool {
	return v > game.MinCoverExtent && !math32.IsInf(v, 0) && !math32.IsNaN(v)
}

// Resolved returns true once Resolve has been called.
func (s *Scene) Resolved() bool {
	return s.resolved
}

// adjacentLink is a candidate pair where right is the right neighbor of left.
type adjacentLink struct {
	left, right *Cover
	distance    float32
}

// Resolve links neighboring covers. Candidate pairs are linked closest first so that every link is
// mutual: if A lists B as its left neighbor then B lists A as its right neighbor.
func (s *Scene) Resolve() {
	for _, c := range s.covers {
		c.left, c.right = 0, 0
	}

	var links []adjacentLink
	for _, c := range s.covers {
		y := c.Bottom()
		for _, other := range lo.Filter(s.covers, func(o *Cover, _ int) bool { return o != c }) {
			delta := game.DeltaAngle(c.Angle(), other.Angle())

			if delta >= game.LeftAdjacentMinAngle && delta <= game.LeftAdjacentMaxAngle {
				if d := c.LeftCorner(y, 0).Sub(other.RightCorner(y, 0)).Len(); d <= c.AdjacentDistance {
					links = append(links, adjacentLink{left: other, right: c, distance: d})
				}
			}
			if delta >= game.RightAdjacentMinAngle && delta <= game.RightAdjacentMaxAngle {
				if d := c.RightCorner(y, 0).Sub(other.LeftCorner(y, 0)).Len(); d <= c.AdjacentDistance {
					links = append(links, adjacentLink{left: c, right: other, distance: d})
				}
			}
		}
	}

	slices.SortStableFunc(links, func(a, b adjacentLink) int {
		return cmp.Or(
			cmp.Compare(a.distance, b.distance),
			cmp.Compare(a.left.handle, b.left.handle),
			cmp.Compare(a.right.handle, b.right.handle),
		)
	})

	linked := 0
	for _, l := range links {
		if l.left.right != 0 || l.right.left != 0 {
			continue
		}
		l.left.right, l.right.left = l.right.handle, l.left.handle
		linked++
	}

	for _, c := range s.covers {
		if l := c.LeftAdjacent(); l != nil {
			assert.IsTrue(l.right == c.handle, game.ErrorAsymmetricAdjacency, c.handle, l.handle, "left")
		}
		if r := c.RightAdjacent(); r != nil {
			assert.IsTrue(r.left == c.handle, game.ErrorAsymmetricAdjacency, c.handle, r.handle, "right")
		}
	}

	s.resolved = true
	s.log.Debug("resolved cover scene", "covers", len(s.covers), "candidates", len(links), "links", linked)
}

// Cover returns the cover with the handle, or nil if there is none.
func (s *Scene) Cover(h Handle) *Cover {
	if s == nil || h == 0 || int(h) > len(s.covers) {
		return nil
	}
	return s.covers[h-1]
}

// Lookup returns the cover with the handle, or an error if there is none.
func (s *Scene) Lookup(h Handle) (*Cover, error) {
	if c := s.Cover(h); c != nil {
		return c, nil
	}
	return nil, oerror.New(game.ErrorUnknownCover, h)
}

// Covers returns the covers of the scene in the order they were added.
func (s *Scene) Covers() []*Cover {
	return slices.Clone(s.covers)
}

// Len returns the number of covers in the scene.
func (s *Scene) Len() int {
	return len(s.covers)
}

// Occupants returns the live actors registered as users of the cover. Users that died or left the
// registry are skipped.
func (s *Scene) Occupants(c *Cover) []*actor.Actor {
	if s.registry == nil {
		return nil
	}
	return lo.FilterMap(c.Users(), func(u Registration, _ int) (*actor.Actor, bool) {
		a, ok := s.registry.Get(u.User.ID())
		return a, ok && a.IsAlive()
	})
}

// Unload removes every cover from the scene. Covers and handles from before Unload must not be used
// afterwards.
func (s *Scene) Unload() {
	for _, c := range s.covers {
		c.clearUsers()
		c.left, c.right = 0, 0
		c.scene = nil
	}
	s.covers = nil
	s.resolved = false
	s.log.Debug("unloaded cover scene")
}
