package cover

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeRecorder is a LineOfSight that records the probes cast and blocks those matched by blocked.
type probeRecorder struct {
	rays    [][2]mgl32.Vec3
	blocked func(start, end mgl32.Vec3) bool
}

func (p *probeRecorder) LineClear(start, end mgl32.Vec3) bool {
	p.rays = append(p.rays, [2]mgl32.Vec3{start, end})
	return p.blocked == nil || !p.blocked(start, end)
}

func downward(start, end mgl32.Vec3) bool {
	return end.Y() < start.Y()
}

func TestClimbVaultOverLowCover(t *testing.T) {
	los := &probeRecorder{}
	s := NewScene(nil, nil, los)
	c := mustAdd(t, s, wall("low", 0, 0.8))

	climb := c.GetClimbAt(mgl32.Vec3{0, 0, -0.6}, 0.3, 2, 1, 1.2)
	assert.Equal(t, CanVault, climb)
	// Three samples with a forward and an upward probe each, then three downward probes.
	assert.Len(t, los.rays, 9)
	for _, ray := range los.rays {
		assert.InDelta(t, 0.9, ray[0].Y(), 1e-4, "probes start just above the cover")
	}
}

func TestClimbWhenLandingFound(t *testing.T) {
	s := NewScene(nil, nil, &probeRecorder{blocked: downward})
	c := mustAdd(t, s, wall("low", 0, 0.8))

	assert.Equal(t, CanClimb, c.GetClimbAt(mgl32.Vec3{0, 0, -0.6}, 0.3, 2, 1, 1.2))
}

func TestClimbTooTall(t *testing.T) {
	s := NewScene(nil, nil, &probeRecorder{})
	c := mustAdd(t, s, wall("tall", 0, 2.5))

	assert.Equal(t, CannotClimb, c.GetClimbAt(mgl32.Vec3{0, 0, -0.6}, 0.3, 2, 1, 1.2))
}

func TestClimbOnMediumCover(t *testing.T) {
	s := NewScene(nil, nil, &probeRecorder{})
	c := mustAdd(t, s, wall("medium", 0, 1.5))

	assert.Equal(t, CanClimb, c.GetClimbAt(mgl32.Vec3{0, 0, -0.6}, 0.3, 2, 1, 1.2), "too tall to vault")
}

func TestClimbBlockedAbove(t *testing.T) {
	s := NewScene(nil, nil, &probeRecorder{blocked: func(start, end mgl32.Vec3) bool {
		return end.Y() > start.Y()
	}})
	c := mustAdd(t, s, wall("low", 0, 0.8))

	assert.Equal(t, CannotClimb, c.GetClimbAt(mgl32.Vec3{0, 0, -0.6}, 0.3, 2, 1, 1.2))
}

func TestClimbPastCorner(t *testing.T) {
	s := NewScene(nil, nil, &probeRecorder{})
	a := mustAdd(t, s, wall("a", 0, 0.8))
	mustAdd(t, s, wall("b", 2.5, 0.8))
	s.Resolve()

	assert.Equal(t, CannotClimb, a.GetClimbAt(mgl32.Vec3{-1.5, 0, -0.6}, 0.3, 2, 1, 1.2), "no left neighbor")
	assert.Equal(t, CanVault, a.GetClimbAt(mgl32.Vec3{1.2, 0, -0.6}, 0.3, 2, 1, 1.2), "right neighbor continues the cover")
}

func TestClimbAgainstWorld(t *testing.T) {
	w := world.New(nil)
	require.NoError(t, w.AddObstacle(world.Obstacle{Name: "ground", Box: cube.Box(-10, -1, -10, 10, 0, 10)}))

	s := NewScene(nil, nil, w)
	c := mustAdd(t, s, wall("low", 0, 0.8))
	require.NoError(t, w.AddObstacle(world.Obstacle{Name: "low", Box: c.Bounds()}))

	observer := mgl32.Vec3{0, 0, -0.6}
	assert.Equal(t, CanVault, c.GetClimbAt(observer, 0.3, 2, 1, 1.2))

	require.NoError(t, w.AddObstacle(world.Obstacle{Name: "platform", Box: cube.Box(-2, 0, 0.25, 2, 0.6, 3)}))
	assert.Equal(t, CanClimb, c.GetClimbAt(observer, 0.3, 2, 1, 1.2))

	require.NoError(t, w.AddObstacle(world.Obstacle{Name: "beam", Box: cube.Box(-2, 1.5, -1, 2, 1.7, 1)}))
	assert.Equal(t, CannotClimb, c.GetClimbAt(observer, 0.3, 2, 1, 1.2))
}
