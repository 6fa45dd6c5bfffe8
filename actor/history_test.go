package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryWraps(t *testing.T) {
	h := NewHistory(3)
	_, ok := h.Latest()
	assert.False(t, ok)
	assert.Zero(t, h.Displacement(0))

	for i := 0; i < 5; i++ {
		h.Add(Sample{Time: float32(i), Position: mgl32.Vec3{float32(i), 0, 0}})
	}
	assert.Equal(t, 3, h.Size())
	assert.Equal(t, 3, h.Capacity())

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, float32(4), latest.Time)

	oldest, ok := h.Closest(0)
	require.True(t, ok)
	assert.Equal(t, float32(2), oldest.Time, "overwritten samples are gone")

	assert.Equal(t, []Sample{
		{Time: 4, Position: mgl32.Vec3{4, 0, 0}},
		{Time: 3, Position: mgl32.Vec3{3, 0, 0}},
	}, h.Range(2.5, 10))

	h.Clear()
	assert.Zero(t, h.Size())
}

func TestHistoryDisplacement(t *testing.T) {
	h := NewHistory(8)
	h.Add(Sample{Time: 0, Position: mgl32.Vec3{0, 0, 0}})
	h.Add(Sample{Time: 0.1, Position: mgl32.Vec3{0, 5, 0}})
	h.Add(Sample{Time: 0.2, Position: mgl32.Vec3{3, 5, 4}})

	assert.InDelta(t, 5, h.Displacement(0), 1e-5, "vertical movement is ignored")
	assert.Zero(t, h.Displacement(0.2))
}
