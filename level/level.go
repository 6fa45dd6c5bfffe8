package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/actor"
	"github.com/oomph-ac/cover/cover"
	"github.com/oomph-ac/cover/game"
	"github.com/oomph-ac/cover/world"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"
)

// DefaultAdjacentDistance is the adjacent distance of covers that do not set one.
const DefaultAdjacentDistance = float32(1)

// Level is a cover arena loaded from YAML.
type Level struct {
	Name      string         `yaml:"name"`
	Covers    []CoverSpec    `yaml:"covers"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
	Actors    []ActorSpec    `yaml:"actors"`

	// Hash is the xxh3 hash of the source the level was parsed from.
	Hash uint64 `yaml:"-"`
}

// CoverSpec places a cover. Corners are open and the adjacent distance is DefaultAdjacentDistance
// unless set otherwise.
type CoverSpec struct {
	Name             string     `yaml:"name"`
	Position         [3]float32 `yaml:"position"`
	Yaw              float32    `yaml:"yaw"`
	Size             [3]float32 `yaml:"size"`
	OpenLeft         *bool      `yaml:"open_left"`
	OpenRight        *bool      `yaml:"open_right"`
	AdjacentDistance *float32   `yaml:"adjacent_distance"`
}

// ObstacleSpec places a box obstacle.
type ObstacleSpec struct {
	Name    string     `yaml:"name"`
	Min     [3]float32 `yaml:"min"`
	Max     [3]float32 `yaml:"max"`
	Trigger bool       `yaml:"trigger"`
}

// ActorSpec places an actor that patrols back and forth along Path.
type ActorSpec struct {
	Name   string       `yaml:"name"`
	Side   int          `yaml:"side"`
	Height float32      `yaml:"height"`
	Path   [][3]float32 `yaml:"path"`
	Speed  float32      `yaml:"speed"`
}

// Parse decodes a level. Unknown fields and empty documents are rejected.
func Parse(data []byte) (*Level, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var l Level
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("level: empty document")
		}
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	for i, a := range l.Actors {
		if len(a.Path) == 0 {
			return nil, fmt.Errorf("level: actor %q (#%d) has no path", a.Name, i)
		}
	}
	l.Hash = xxh3.Hash(data)
	return &l, nil
}

// Load reads and parses the level at path.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	return l, nil
}

// Spec returns the cover spec with defaults applied.
func (s CoverSpec) Spec() cover.Spec {
	spec := cover.Spec{
		Name:             s.Name,
		Position:         mgl32.Vec3(s.Position),
		Yaw:              s.Yaw,
		Size:             mgl32.Vec3(s.Size),
		OpenLeft:         true,
		OpenRight:        true,
		AdjacentDistance: DefaultAdjacentDistance,
	}
	if s.OpenLeft != nil {
		spec.OpenLeft = *s.OpenLeft
	}
	if s.OpenRight != nil {
		spec.OpenRight = *s.OpenRight
	}
	if s.AdjacentDistance != nil {
		spec.AdjacentDistance = *s.AdjacentDistance
	}
	return spec
}

// Obstacle returns the world obstacle of the spec.
func (s ObstacleSpec) Obstacle() world.Obstacle {
	return world.Obstacle{
		Name:    s.Name,
		Box:     cube.Box(s.Min[0], s.Min[1], s.Min[2], s.Max[0], s.Max[1], s.Max[2]),
		Trigger: s.Trigger,
	}
}

// Build creates the world and the resolved cover scene of the level. Every cover is also a solid
// obstacle of the world.
func (l *Level) Build(log *slog.Logger, registry *actor.Registry) (*cover.Scene, *world.World, error) {
	if log == nil {
		log = slog.Default()
	}

	w := world.New(log)
	for _, o := range l.Obstacles {
		if err := w.AddObstacle(o.Obstacle()); err != nil {
			return nil, nil, err
		}
	}

	scene := cover.NewScene(log, registry, w)
	for _, spec := range l.Covers {
		c, err := scene.Add(spec.Spec())
		if err != nil {
			return nil, nil, err
		}
		if err := w.AddObstacle(world.Obstacle{Name: c.Name(), Box: c.Bounds()}); err != nil {
			return nil, nil, err
		}
	}
	scene.Resolve()

	log.Info("built level", "name", l.Name, "covers", scene.Len(), "obstacles", len(w.Obstacles()), "hash", l.Hash)
	return scene, w, nil
}

// Spawn creates the actors of the level at the start of their path and registers them.
func (l *Level) Spawn(registry *actor.Registry) []*actor.Actor {
	actors := make([]*actor.Actor, 0, len(l.Actors))
	for _, s := range l.Actors {
		a := actor.New(s.Name, s.Side, s.PositionAt(0), s.YawAt(0))
		if s.Height > 0 {
			a.SetHeight(s.Height)
			a.OnStandingHeight(s.Height)
		}
		registry.Register(a)
		actors = append(actors, a)
	}
	return actors
}

// PathLength returns the length of the patrol path.
func (s ActorSpec) PathLength() float32 {
	var length float32
	for i := 1; i < len(s.Path); i++ {
		length += mgl32.Vec3(s.Path[i]).Sub(mgl32.Vec3(s.Path[i-1])).Len()
	}
	return length
}

// PositionAt returns where the actor is t seconds into its patrol. The actor walks to the end of the
// path and back again.
func (s ActorSpec) PositionAt(t float32) mgl32.Vec3 {
	pos, _ := s.walk(t)
	return pos
}

// YawAt returns the direction the actor walks in t seconds into its patrol.
func (s ActorSpec) YawAt(t float32) float32 {
	_, yaw := s.walk(t)
	return yaw
}

func (s ActorSpec) walk(t float32) (mgl32.Vec3, float32) {
	if len(s.Path) == 0 {
		return mgl32.Vec3{}, 0
	}
	length := s.PathLength()
	if len(s.Path) == 1 || length <= 0 || s.Speed <= 0 {
		return mgl32.Vec3(s.Path[0]), 0
	}

	d := math32.Mod(t*s.Speed, length*2)
	forward := d <= length
	if !forward {
		d = length*2 - d
	}

	for i := 1; i < len(s.Path); i++ {
		a, b := mgl32.Vec3(s.Path[i-1]), mgl32.Vec3(s.Path[i])
		segment := b.Sub(a).Len()
		if d > segment && i < len(s.Path)-1 {
			d -= segment
			continue
		}

		dir := b.Sub(a)
		if !forward {
			dir = dir.Mul(-1)
		}
		if segment <= 0 {
			return b, 0
		}
		return a.Add(b.Sub(a).Mul(math32.Min(d/segment, 1))), game.HorizontalAngle(dir)
	}
	return mgl32.Vec3(s.Path[len(s.Path)-1]), 0
}
