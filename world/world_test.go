package world

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorld(t *testing.T) *World {
	t.Helper()

	w := New(nil)
	require.NoError(t, w.AddObstacle(Obstacle{Name: "ground", Box: cube.Box(-10, -1, -10, 10, 0, 10)}))
	require.NoError(t, w.AddObstacle(Obstacle{Name: "wall", Box: cube.Box(2, 0, -1, 2.5, 3, 1)}))
	require.NoError(t, w.AddObstacle(Obstacle{Name: "zone", Box: cube.Box(-3, 0, -3, -1, 2, 3), Trigger: true}))
	return w
}

func TestLineClear(t *testing.T) {
	w := testWorld(t)

	assert.False(t, w.LineClear(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{4, 1, 0}), "wall blocks the line")
	assert.True(t, w.LineClear(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1.5, 1, 0}), "line stops before the wall")
	assert.True(t, w.LineClear(mgl32.Vec3{0, 3.5, 0}, mgl32.Vec3{4, 3.5, 0}), "line passes over the wall")
	assert.True(t, w.LineClear(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-4, 1, 0}), "triggers never block")
	assert.False(t, w.LineClear(mgl32.Vec3{0, 0.4, 0}, mgl32.Vec3{0, -0.4, 0}), "ground blocks a downward line")
	assert.True(t, w.LineClear(mgl32.Vec3{0, 0.9, 0}, mgl32.Vec3{0, 0.4, 0}), "downward line ends above the ground")
}

func TestRaycastReturnsClosestHit(t *testing.T) {
	w := testWorld(t)
	require.NoError(t, w.AddObstacle(Obstacle{Name: "far wall", Box: cube.Box(5, 0, -1, 6, 3, 1)}))

	o, pos, ok := w.Raycast(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{8, 1, 0})
	require.True(t, ok)
	assert.Equal(t, "wall", o.Name)
	assert.InDelta(t, 2, pos.X(), 1e-4)

	o, pos, ok = w.Raycast(mgl32.Vec3{2.2, 1, 0}, mgl32.Vec3{8, 1, 0})
	require.True(t, ok)
	assert.Equal(t, "wall", o.Name, "a ray starting inside an obstacle hits it")
	assert.Equal(t, mgl32.Vec3{2.2, 1, 0}, pos)
}

func TestNearbyBoxes(t *testing.T) {
	w := testWorld(t)

	boxes := w.NearbyBoxes(cube.Box(1.5, 0.5, -0.5, 2.1, 1.5, 0.5))
	assert.Len(t, boxes, 1)

	w.Purge()
	assert.Empty(t, w.Obstacles())
	assert.True(t, w.LineClear(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{4, 1, 0}))
}

func TestAddDegenerateObstacle(t *testing.T) {
	w := New(nil)
	assert.Error(t, w.AddObstacle(Obstacle{Name: "point", Box: cube.Box(1, 1, 1, 1, 1, 1)}))
	assert.Error(t, w.AddObstacle(Obstacle{Name: "floor", Box: cube.Box(-1, 0, -1, 1, 0, 1)}))
	assert.Error(t, w.AddObstacle(Obstacle{Name: "sheet", Box: cube.Box(0, 0, -1, 0, 2, 1)}))
	assert.Empty(t, w.Obstacles())
}
