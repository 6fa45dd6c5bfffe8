package world

import (
	"log/slog"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/cover/game"
	"github.com/oomph-ac/cover/oerror"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/atomic"
)

var currentWorldId atomic.Uint64

// Obstacle is a static box in the world that can block rays.
type Obstacle struct {
	Name string
	Box  cube.BBox
	// Trigger obstacles never block rays.
	Trigger bool
}

// World holds the static obstacles of a level and answers line of sight queries against them. The
// obstacles are bucketed into unit cells so that a query only tests the boxes along its path.
type World struct {
	id uint64

	obstacles []Obstacle
	cells     map[cube.Pos][]int

	logger *slog.Logger

	deadlock.RWMutex
}

// New returns an empty world. A nil logger logs to slog.Default().
func New(logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		id:     currentWorldId.Inc(),
		cells:  make(map[cube.Pos][]int),
		logger: logger,
	}
}

// ID returns the unique id of the world.
func (w *World) ID() uint64 {
	return w.id
}

// AddObstacle adds a static obstacle to the world.
func (w *World) AddObstacle(o Obstacle) error {
	size := o.Box.Max().Sub(o.Box.Min())
	if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
		return oerror.New(game.ErrorDegenerateObstacle, o.Name)
	}

	w.Lock()
	defer w.Unlock()

	index := len(w.obstacles)
	w.obstacles = append(w.obstacles, o)
	for pos := range boxCells(o.Box) {
		w.cells[pos] = append(w.cells[pos], index)
	}
	w.logger.Debug("obstacle added", "world", w.id, "name", o.Name, "min", o.Box.Min(), "max", o.Box.Max(), "trigger", o.Trigger)
	return nil
}

// Obstacles returns a copy of all obstacles in the world.
func (w *World) Obstacles() []Obstacle {
	w.RLock()
	defer w.RUnlock()

	obstacles := make([]Obstacle, len(w.obstacles))
	copy(obstacles, w.obstacles)
	return obstacles
}

// Purge removes all obstacles from the world.
func (w *World) Purge() {
	w.Lock()
	defer w.Unlock()

	w.obstacles = nil
	clear(w.cells)
}

// LineClear returns true if no solid obstacle lies on the segment from start to end.
func (w *World) LineClear(start, end mgl32.Vec3) bool {
	_, _, hit := w.Raycast(start, end)
	return !hit
}

// Raycast returns the solid obstacle closest to start that the segment from start to end hits, along
// with the position of the hit. A segment starting inside an obstacle hits it at start.
func (w *World) Raycast(start, end mgl32.Vec3) (Obstacle, mgl32.Vec3, bool) {
	w.RLock()
	defer w.RUnlock()

	var (
		closest     Obstacle
		closestPos  mgl32.Vec3
		closestDist = float32(-1)
		seen        = make(map[int]struct{})
	)
	for pos := range game.CellsBetween(start, end) {
		for _, index := range w.cells[pos] {
			if _, ok := seen[index]; ok {
				continue
			}
			seen[index] = struct{}{}

			o := w.obstacles[index]
			if o.Trigger {
				continue
			}

			var hitPos mgl32.Vec3
			if within(o.Box, start) {
				hitPos = start
			} else if result, ok := trace.BBoxIntercept(o.Box, start, end); ok {
				hitPos = result.Position()
			} else {
				continue
			}

			if dist := hitPos.Sub(start).LenSqr(); closestDist < 0 || dist < closestDist {
				closest, closestPos, closestDist = o, hitPos, dist
			}
		}
	}
	return closest, closestPos, closestDist >= 0
}

// NearbyBoxes returns the boxes of all solid obstacles intersecting bb.
func (w *World) NearbyBoxes(bb cube.BBox) []cube.BBox {
	w.RLock()
	defer w.RUnlock()

	var (
		boxes []cube.BBox
		seen  = make(map[int]struct{})
	)
	for pos := range boxCells(bb) {
		for _, index := range w.cells[pos] {
			if _, ok := seen[index]; ok {
				continue
			}
			seen[index] = struct{}{}
			if o := w.obstacles[index]; !o.Trigger && o.Box.IntersectsWith(bb) {
				boxes = append(boxes, o.Box)
			}
		}
	}
	return boxes
}

// boxCells yields every unit cell the box overlaps.
func boxCells(bb cube.BBox) func(yield func(cube.Pos) bool) {
	return func(yield func(cube.Pos) bool) {
		min, max := cube.PosFromVec3(bb.Min()), cube.PosFromVec3(bb.Max())
		for x := min[0]; x <= max[0]; x++ {
			for y := min[1]; y <= max[1]; y++ {
				for z := min[2]; z <= max[2]; z++ {
					if !yield(cube.Pos{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

// within returns true if v is strictly inside bb.
func within(bb cube.BBox, v mgl32.Vec3) bool {
	min, max := bb.Min(), bb.Max()
	return v.X() > min.X() && v.X() < max.X() &&
		v.Y() > min.Y() && v.Y() < max.Y() &&
		v.Z() > min.Z() && v.Z() < max.Z()
}
