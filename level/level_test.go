package level

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	l, err := Load(filepath.Join("testdata", "arena.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "courtyard", l.Name)
	require.Len(t, l.Covers, 3)
	assert.Len(t, l.Obstacles, 2)
	assert.Len(t, l.Actors, 2)
	assert.NotZero(t, l.Hash)

	west := l.Covers[0].Spec()
	assert.True(t, west.OpenLeft)
	assert.True(t, west.OpenRight)
	assert.Equal(t, DefaultAdjacentDistance, west.AdjacentDistance)

	pillar := l.Covers[2].Spec()
	assert.False(t, pillar.OpenLeft)
	assert.True(t, pillar.OpenRight)
	assert.Equal(t, float32(0.5), pillar.AdjacentDistance)
	assert.Equal(t, float32(90), pillar.Yaw)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("covers:\n  - name: a\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = Parse([]byte("actors:\n  - name: lost\n"))
	assert.Error(t, err, "actors need a path")

	_, err = Parse(nil)
	assert.Error(t, err)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestHash(t *testing.T) {
	a, err := Parse([]byte("name: a\n"))
	require.NoError(t, err)
	b, err := Parse([]byte("name: a\n"))
	require.NoError(t, err)
	c, err := Parse([]byte("name: b\n"))
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestBuild(t *testing.T) {
	l, err := Load(filepath.Join("testdata", "arena.yaml"))
	require.NoError(t, err)

	registry := actor.NewRegistry()
	scene, w, err := l.Build(nil, registry)
	require.NoError(t, err)

	assert.Equal(t, 3, scene.Len())
	assert.Len(t, w.Obstacles(), 5, "covers are solid obstacles too")

	covers := scene.Covers()
	assert.Equal(t, covers[1], covers[0].RightAdjacent())
	assert.Equal(t, covers[0], covers[1].LeftAdjacent())
	assert.Nil(t, covers[2].LeftAdjacent())

	actors := l.Spawn(registry)
	require.Len(t, actors, 2)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, mgl32.Vec3{0, 0, -3}, actors[0].Position())
	assert.Equal(t, 1, actors[1].Side)
}

func TestBuildRejectsDegenerateCover(t *testing.T) {
	l, err := Parse([]byte("covers:\n  - name: flat\n    size: [2, 0, 1]\n"))
	require.NoError(t, err)

	_, _, err = l.Build(nil, actor.NewRegistry())
	assert.Error(t, err)
}

func TestPatrol(t *testing.T) {
	s := ActorSpec{Path: [][3]float32{{0, 0, 0}, {0, 0, 2}, {3, 0, 2}}, Speed: 1}
	assert.Equal(t, float32(5), s.PathLength())

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.PositionAt(0))
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, s.PositionAt(1))
	assert.Equal(t, mgl32.Vec3{1, 0, 2}, s.PositionAt(3))
	assert.InDelta(t, 90, s.YawAt(3), 1e-4)
	assert.Equal(t, mgl32.Vec3{3, 0, 2}, s.PositionAt(5))
	// On the way back.
	assert.Equal(t, mgl32.Vec3{2, 0, 2}, s.PositionAt(6))
	assert.InDelta(t, 270, s.YawAt(6), 1e-4)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.PositionAt(10))

	still := ActorSpec{Path: [][3]float32{{4, 0, 4}}, Speed: 3}
	assert.Equal(t, mgl32.Vec3{4, 0, 4}, still.PositionAt(12))
}

// writeAtomic replaces the file at path in one step, the way editors save files.
func writeAtomic(t *testing.T, path, content string) {
	t.Helper()

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: before\n"), 0644))
	l, err := Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(nil, path, l.Hash)
	require.NoError(t, err)
	defer w.Close()

	writeAtomic(t, path, "name: after\n")
	select {
	case changed := <-w.Levels:
		assert.Equal(t, "after", changed.Name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("level change not seen")
	}

	writeAtomic(t, path, "name: after\n")
	select {
	case changed := <-w.Levels:
		t.Fatalf("unchanged level %q sent again", changed.Name)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	_, open := <-w.Levels
	assert.False(t, open)
}
