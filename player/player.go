package player

import (
	"log/slog"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/cover/actor"
	"github.com/oomph-ac/cover/cover"
	"github.com/oomph-ac/cover/settings"
	"github.com/oomph-ac/cover/utils"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/atomic"
)

const (
	// historySize is the number of positions kept to tell if the actor moves.
	historySize = 16
	// movingWindow is how far back in seconds the position history is compared against.
	movingWindow = float32(0.25)
	// movingThreshold is the horizontal distance the actor has to cover within movingWindow to count
	// as moving.
	movingThreshold = float32(0.05)
)

// Player drives the cover state of one actor. It searches for cover on the cadence set in the
// settings, keeps the actor registered as a user of the cover it occupies and fires events when the
// actor enters or leaves cover.
type Player struct {
	log      *slog.Logger
	actor    *actor.Actor
	scene    *cover.Scene
	settings settings.Settings

	hMutex sync.RWMutex
	h      Handler

	// mu protects all the following fields.
	mu          deadlock.Mutex
	state       cover.State
	aim         cover.AimState
	searchDelay float32
	elapsed     float32
	history     *actor.History

	closed atomic.Bool
}

// New creates a new player for the actor, taking cover in the covers of scene.
func New(log *slog.Logger, a *actor.Actor, scene *cover.Scene, s settings.Settings) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{
		log:      log.With("player", a.Name()),
		actor:    a,
		scene:    scene,
		settings: s,
		h:        NopHandler{},
		history:  actor.NewHistory(historySize),
	}
}

// Handle sets the handler of the player. Passing nil resets it to a NopHandler.
func (p *Player) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	p.hMutex.Lock()
	p.h = h
	p.hMutex.Unlock()
}

func (p *Player) handler() Handler {
	p.hMutex.RLock()
	defer p.hMutex.RUnlock()
	return p.h
}

// Actor returns the actor driven by the player.
func (p *Player) Actor() *actor.Actor {
	return p.actor
}

// State returns a copy of the cover state of the player.
func (p *Player) State() cover.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Aim returns a copy of the aim state of the player.
func (p *Player) Aim() cover.AimState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.aim
}

// InCover returns true if the player occupies a cover.
func (p *Player) InCover() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.In()
}

// Tick advances the player by dt seconds and searches for cover once the search delay ran out.
func (p *Player) Tick(dt float32) {
	if p.closed.Load() {
		return
	}

	p.mu.Lock()
	var events []func()
	if !p.actor.IsAlive() {
		events = p.leave(events)
		events = p.setAim(events, p.aim.ImmediateLeave)
		p.mu.Unlock()
		p.fire(events)
		return
	}

	p.elapsed += dt
	p.history.Add(actor.Sample{Time: p.elapsed, Position: p.actor.Position()})
	p.state.Update(dt)
	events = p.setAim(events, func() { p.aim.Update(dt) })

	// A delay picked while idle is cut short once the actor starts moving.
	p.searchDelay = min(p.searchDelay, p.settings.Cover.Update.Delay(p.moving(), p.state.In())) - dt
	if p.searchDelay <= 0 {
		events = p.search(events)
	}
	p.mu.Unlock()
	p.fire(events)
}

// Search searches for cover straight away, regardless of the search delay.
func (p *Player) Search() {
	if p.closed.Load() {
		return
	}

	p.mu.Lock()
	events := p.search(nil)
	p.mu.Unlock()
	p.fire(events)
}

// search runs a cover search and resets the search delay. It must be called with mu held.
func (p *Player) search(events []func()) []func() {
	pos := p.actor.Position()
	moving := p.moving()

	previous := p.state.Main()
	search := cover.ProximitySearch{
		Scene:         p.scene,
		Observer:      pos,
		Radius:        p.actor.Radius(),
		Current:       previous,
		EnterDistance: p.settings.Cover.EnterDistance,
		LeaveDistance: p.settings.Cover.LeaveDistance,
	}
	if p.state.In() {
		p.state.Maintain(search, pos)
	} else {
		p.state.Take(search, pos)
	}
	p.searchDelay = p.settings.Cover.Update.Delay(moving, p.state.In())

	current := p.state.Main()
	if previous != nil && previous != current {
		previous.UnregisterUser(p.actor)
	}
	if current != nil {
		current.RegisterUser(p.actor, pos)
	}

	switch {
	case previous == nil && current != nil:
		p.actor.OnEnterCover(actor.CoverHandle(current.Handle()))
		p.debugCover("entered cover", current)
		events = append(events, func() { p.handler().HandleEnterCover(p, current) })
	case previous != nil && current == nil:
		events = p.leaveCover(events, previous)
	case previous != current:
		p.actor.OnEnterCover(actor.CoverHandle(current.Handle()))
		p.debugCover("moved along cover", current)
	}
	return events
}

// moving returns true if the actor covered some distance recently. It must be called with mu held.
func (p *Player) moving() bool {
	return p.history.Displacement(p.elapsed-movingWindow) > movingThreshold
}

// leave makes the player leave its cover, if any. It must be called with mu held.
func (p *Player) leave(events []func()) []func() {
	previous := p.state.Main()
	if previous == nil {
		return events
	}
	p.state.Clear()
	return p.leaveCover(events, previous)
}

func (p *Player) leaveCover(events []func(), previous *cover.Cover) []func() {
	previous.UnregisterUser(p.actor)
	p.actor.OnLeaveCover()
	p.debugCover("left cover", previous)
	return append(events, func() { p.handler().HandleLeaveCover(p, previous) })
}

// setAim runs f on the aim state and queues an event if the aim step changed. It must be called with
// mu held.
func (p *Player) setAim(events []func(), f func()) []func() {
	before := p.aim.Step
	f()
	if step := p.aim.Step; step != before {
		p.log.Debug("aim step changed", "from", before, "to", step)
		events = append(events, func() { p.handler().HandleAimStep(p, step) })
	}
	return events
}

func (p *Player) fire(events []func()) {
	for _, f := range events {
		f()
	}
}

func (p *Player) debugCover(msg string, c *cover.Cover) {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("cover", c.Name())
	data.Set("handle", c.Handle())
	data.Set("tall", p.state.IsTall())
	data.Set("direction", p.state.Direction)
	data.Set("left", p.state.HasLeftAdjacent())
	data.Set("right", p.state.HasRightAdjacent())
	data.Set("users", c.UserCount())
	p.log.Debug(msg, "data", utils.OrderedMapToString(*data))
}

// CoverAim starts aiming from cover at the angle.
func (p *Player) CoverAim(angle float32) {
	p.mu.Lock()
	events := p.setAim(nil, func() { p.aim.CoverAim(angle) })
	p.mu.Unlock()
	p.fire(events)
}

// FreeAim aims at the angle straight away.
func (p *Player) FreeAim(angle float32) {
	p.mu.Lock()
	events := p.setAim(nil, func() { p.aim.FreeAim(angle) })
	p.mu.Unlock()
	p.fire(events)
}

// LeaveAim stops aiming once the current aim step is over.
func (p *Player) LeaveAim() {
	p.mu.Lock()
	events := p.setAim(nil, p.aim.Leave)
	p.mu.Unlock()
	p.fire(events)
}

// ImmediateLeaveAim stops aiming straight away.
func (p *Player) ImmediateLeaveAim() {
	p.mu.Lock()
	events := p.setAim(nil, p.aim.ImmediateLeave)
	p.mu.Unlock()
	p.fire(events)
}

// SetZoomed sets whether the player aims down the sights.
func (p *Player) SetZoomed(zoomed bool) {
	p.mu.Lock()
	p.aim.IsZoomed = zoomed
	p.mu.Unlock()
}

// Climb returns the way the player may get over the cover it occupies at its current position.
func (p *Player) Climb() cover.Climb {
	p.mu.Lock()
	main := p.state.Main()
	p.mu.Unlock()
	if main == nil {
		return cover.CannotClimb
	}

	climb := main.GetClimbAt(
		p.actor.Position(),
		p.actor.Radius(),
		p.settings.Climb.MaxHeight,
		p.settings.Vault.MaxHeight,
		p.settings.Vault.MaxDistance,
	)
	p.log.Debug("climb test", "cover", main.Name(), "result", climb)
	return climb
}

// Close makes the player leave its cover and stops it from ticking.
func (p *Player) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.mu.Lock()
	events := p.leave(nil)
	events = p.setAim(events, p.aim.ImmediateLeave)
	p.mu.Unlock()
	p.fire(events)
	return nil
}
