package player

import (
	"github.com/oomph-ac/cover/cover"
)

// Handler handles the cover events of a player.
type Handler interface {
	// HandleEnterCover is called when the player enters cover from outside of cover.
	HandleEnterCover(p *Player, c *cover.Cover)
	// HandleLeaveCover is called when the player leaves cover. c is the cover that was left.
	HandleLeaveCover(p *Player, c *cover.Cover)
	// HandleAimStep is called when the aim step of the player changes.
	HandleAimStep(p *Player, step cover.AimStep)
}

// NopHandler implements the Handler interface but does not execute any code when an event is called.
type NopHandler struct{}

func (NopHandler) HandleEnterCover(*Player, *cover.Cover) {}
func (NopHandler) HandleLeaveCover(*Player, *cover.Cover) {}
func (NopHandler) HandleAimStep(*Player, cover.AimStep)   {}
