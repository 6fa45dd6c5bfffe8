package cover

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLinksStraightLine(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := mustAdd(t, s, wall("a", 0, 1.5))
	b := mustAdd(t, s, wall("b", 2.5, 1.5))
	far := mustAdd(t, s, wall("far", 10, 1.5))
	s.Resolve()

	assert.Equal(t, b, a.RightAdjacent())
	assert.Equal(t, a, b.LeftAdjacent())
	assert.Nil(t, a.LeftAdjacent())
	assert.Nil(t, b.RightAdjacent())
	assert.Nil(t, far.LeftAdjacent())
	assert.Nil(t, far.RightAdjacent())
}

func TestResolveRejectsOppositeYaw(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := mustAdd(t, s, wall("a", 0, 1.5))
	spec := wall("b", 2.5, 1.5)
	spec.Yaw = 150
	mustAdd(t, s, spec)
	s.Resolve()

	assert.Nil(t, a.RightAdjacent())
}

func TestResolvePrefersClosestNeighbor(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := mustAdd(t, s, wall("a", 0, 1.5))
	b := mustAdd(t, s, wall("b", 2.5, 1.5))
	d := mustAdd(t, s, wall("d", 2.3, 1.5))
	s.Resolve()

	assert.Equal(t, d, a.RightAdjacent())
	assert.Equal(t, a, d.LeftAdjacent())
	assert.Nil(t, b.LeftAdjacent(), "a is already linked to a closer cover")
}

func TestAdjacencySymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := NewScene(nil, nil, nil)
	for i := 0; i < 40; i++ {
		mustAdd(t, s, Spec{
			Position:         mgl32.Vec3{r.Float32() * 12, 0.5, r.Float32() * 12},
			Yaw:              r.Float32()*360 - 180,
			Size:             mgl32.Vec3{0.5 + r.Float32()*2, 1, 0.5},
			OpenLeft:         true,
			OpenRight:        true,
			AdjacentDistance: 1.5,
		})
	}
	s.Resolve()

	linked := 0
	for _, a := range s.Covers() {
		for _, b := range s.Covers() {
			assert.Equal(t, a.RightAdjacent() == b, b.LeftAdjacent() == a)
			assert.Equal(t, a.LeftAdjacent() == b, b.RightAdjacent() == a)
		}
		if a.RightAdjacent() != nil {
			linked++
		}
	}
	assert.NotZero(t, linked)
}

func TestAddRejectsDegenerateCover(t *testing.T) {
	s := NewScene(nil, nil, nil)

	_, err := s.Add(Spec{Name: "flat", Size: mgl32.Vec3{0, 1, 1}})
	assert.Error(t, err)
	_, err = s.Add(Spec{Name: "thin", Size: mgl32.Vec3{1, 1, 1e-6}})
	assert.Error(t, err)
	_, err = s.Add(Spec{Name: "negative", Size: mgl32.Vec3{1, 1, 1}, AdjacentDistance: -1})
	assert.Error(t, err)
	assert.Zero(t, s.Len())
}

func TestAddAfterResolve(t *testing.T) {
	s := NewScene(nil, nil, nil)
	mustAdd(t, s, wall("a", 0, 1.5))
	s.Resolve()
	require.True(t, s.Resolved())

	_, err := s.Add(wall("b", 2.5, 1.5))
	assert.Error(t, err)
}

func TestLookupAndUnload(t *testing.T) {
	s := NewScene(nil, nil, nil)
	a := mustAdd(t, s, wall("a", 0, 1.5))
	mustAdd(t, s, wall("b", 2.5, 1.5))
	s.Resolve()

	c, err := s.Lookup(a.Handle())
	require.NoError(t, err)
	assert.Equal(t, a, c)
	_, err = s.Lookup(0)
	assert.Error(t, err)
	_, err = s.Lookup(3)
	assert.Error(t, err)

	s.Unload()
	assert.Zero(t, s.Len())
	assert.False(t, s.Resolved())
	assert.Nil(t, s.Cover(a.Handle()))
	assert.Nil(t, a.RightAdjacent())

	mustAdd(t, s, wall("c", 0, 1.5))
	assert.Equal(t, 1, s.Len())
}
