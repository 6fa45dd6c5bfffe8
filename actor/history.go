package actor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sample is the position of an actor at a point in time.
type Sample struct {
	// Time is the simulation time of the sample in seconds.
	Time     float32
	Position mgl32.Vec3
}

// History is a fixed-size circular buffer for storing position history. Samples must be added in
// increasing time order.
type History struct {
	buffer   []Sample
	capacity int
	head     int // Points to the next write position
	size     int // Current number of elements
}

// NewHistory creates a new history with the specified capacity
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buffer:   make([]Sample, capacity),
		capacity: capacity,
	}
}

// Add inserts a new sample, overwriting the oldest one if the history is full.
func (h *History) Add(s Sample) {
	h.buffer[h.head] = s
	h.head = (h.head + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
}

// at returns the i-th most recent sample.
func (h *History) at(i int) Sample {
	return h.buffer[(h.head-1-i+h.capacity)%h.capacity]
}

// Closest retrieves the sample closest in time to t.
func (h *History) Closest(t float32) (Sample, bool) {
	if h.size == 0 {
		return Sample{}, false
	}

	closest, closestDist := h.at(0), math32.Abs(h.at(0).Time-t)
	for i := 1; i < h.size; i++ {
		s := h.at(i)
		if dist := math32.Abs(s.Time - t); dist < closestDist {
			closest, closestDist = s, dist
		}
	}
	return closest, true
}

// Range retrieves the samples within [start, end], most recent first.
func (h *History) Range(start, end float32) []Sample {
	if h.size == 0 {
		return nil
	}

	result := make([]Sample, 0, h.size)
	for i := 0; i < h.size; i++ {
		s := h.at(i)
		if s.Time < start {
			// Older samples only get further away from the range.
			break
		}
		if s.Time <= end {
			result = append(result, s)
		}
	}
	return result
}

// Displacement returns the horizontal distance between the sample closest to since and the latest
// sample.
func (h *History) Displacement(since float32) float32 {
	latest, ok := h.Latest()
	if !ok {
		return 0
	}
	from, _ := h.Closest(since)
	d := latest.Position.Sub(from.Position)
	return math32.Sqrt(d.X()*d.X() + d.Z()*d.Z())
}

// Size returns the current number of elements in the buffer
func (h *History) Size() int {
	return h.size
}

// Capacity returns the maximum capacity of the buffer
func (h *History) Capacity() int {
	return h.capacity
}

// Clear removes all elements from the buffer
func (h *History) Clear() {
	h.head = 0
	h.size = 0
}

// Latest returns the most recently added sample
func (h *History) Latest() (Sample, bool) {
	if h.size == 0 {
		return Sample{}, false
	}
	return h.at(0), true
}
