package actor

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// DefaultHeight is the height of a newly created actor.
const DefaultHeight = float32(1.8)

// DefaultRadius is the radius of the capsule of a newly created actor.
const DefaultRadius = float32(0.3)

// CoverHandle identifies the cover an actor is using. It mirrors cover.Handle without importing it.
type CoverHandle uint32

// Actor is a character taking part in the simulation.
type Actor struct {
	id   uuid.UUID
	name string

	// Side is the team of the actor.
	Side int

	alive atomic.Bool

	// mu protects all the following fields.
	mu sync.Mutex
	// position is the position of the feet of the actor.
	position mgl32.Vec3
	// lastPosition is the position of the actor before the last move.
	lastPosition mgl32.Vec3
	// yaw is the horizontal facing of the actor in degrees.
	yaw float32
	// height is the current height of the actor's capsule.
	height float32
	// standingHeight is the height of the actor when it stands, if known.
	standingHeight    float32
	hasStandingHeight bool
	radius            float32
	// cover is the cover the actor is using, or 0.
	cover CoverHandle

	registry *Registry
}

// New creates a new, alive actor at the given position.
func New(name string, side int, position mgl32.Vec3, yaw float32) *Actor {
	a := &Actor{
		id:           uuid.New(),
		name:         name,
		Side:         side,
		position:     position,
		lastPosition: position,
		yaw:          yaw,
		height:       DefaultHeight,
		radius:       DefaultRadius,
	}
	a.alive.Store(true)
	return a
}

// ID returns the identity of the actor.
func (a *Actor) ID() uuid.UUID {
	return a.id
}

// Name returns the name the actor was created with.
func (a *Actor) Name() string {
	return a.name
}

// IsAlive returns true until OnDead is called.
func (a *Actor) IsAlive() bool {
	return a.alive.Load()
}

// Position returns the position of the feet of the actor.
func (a *Actor) Position() mgl32.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

// LastPosition returns the position of the actor before its last move.
func (a *Actor) LastPosition() mgl32.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastPosition
}

// Yaw returns the facing of the actor in degrees.
func (a *Actor) Yaw() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.yaw
}

// Move moves the actor to the provided position and facing.
func (a *Actor) Move(pos mgl32.Vec3, yaw float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastPosition = a.position
	a.position = pos
	a.yaw = yaw
}

// Height returns the current height of the actor's capsule.
func (a *Actor) Height() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

// SetHeight changes the height of the actor's capsule, for instance when crouching.
func (a *Actor) SetHeight(height float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.height = height
}

// Radius returns the radius of the actor's capsule.
func (a *Actor) Radius() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.radius
}

// SetRadius changes the radius of the actor's capsule.
func (a *Actor) SetRadius(radius float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.radius = radius
}

// OnStandingHeight records the height of the actor when standing.
func (a *Actor) OnStandingHeight(height float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.standingHeight, a.hasStandingHeight = height, true
}

// TopPosition returns the position of the top of the actor's capsule.
func (a *Actor) TopPosition() mgl32.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position.Add(mgl32.Vec3{0, a.height})
}

// StandingTopPosition returns the position the top of the actor would be at if it stood up.
func (a *Actor) StandingTopPosition() mgl32.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.hasStandingHeight {
		return a.position.Add(mgl32.Vec3{0, a.standingHeight})
	}
	return a.position.Add(mgl32.Vec3{0, a.height})
}

// Cover returns the cover the actor is using, and false if it is not in cover.
func (a *Actor) Cover() (CoverHandle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cover, a.cover != 0
}

// OnEnterCover records the cover the actor is now using.
func (a *Actor) OnEnterCover(h CoverHandle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cover = h
}

// OnLeaveCover clears the cover the actor was using.
func (a *Actor) OnLeaveCover() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cover = 0
}

// OnDead marks the actor as dead and removes it from the registry it was registered to.
func (a *Actor) OnDead() {
	a.alive.Store(false)

	a.mu.Lock()
	r := a.registry
	a.mu.Unlock()
	if r != nil {
		r.Unregister(a)
	}
}
