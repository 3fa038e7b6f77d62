package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/behaviors"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Controller turns input frames into player movement.
//
// Terminals report key presses but not releases, so a direction or the jump
// key counts as held until its hold window after the last press runs out.
// Auto-repeat refreshes the window while the key stays down.
type Controller struct {
	hold     int64
	jumpHold int64

	leftUntil  int64
	rightUntil int64
	jumpUntil  int64

	jumpQueued  bool  // pressed, waiting for the player to touch ground
	jumpKeyDown bool  // jump started and key still held
	jumpStart   int64 // ms timestamp the current jump started
}

// NewController creates a controller with the configured hold windows.
func NewController(cfg config.InputConfig) *Controller {
	return &Controller{
		hold:     int64(cfg.HoldMs),
		jumpHold: int64(cfg.JumpHoldMs),
	}
}

// Reset forgets all held keys.
func (c *Controller) Reset() {
	*c = Controller{hold: c.hold, jumpHold: c.jumpHold}
}

// Holding reports whether action is currently held at now.
func (c *Controller) Holding(a core.Action, now int64) bool {
	switch a {
	case core.ActionLeft:
		return now < c.leftUntil
	case core.ActionRight:
		return now < c.rightUntil
	case core.ActionJump:
		return now < c.jumpUntil
	}
	return false
}

// Apply feeds one tick of input to the player. Input is ignored while the
// player is dead or playing its death sequence.
func (c *Controller) Apply(in core.InputFrame, clk physics.Clock, p *entity.Entity) {
	now := clk.Now

	if in.Has(core.ActionLeft) {
		c.leftUntil = now + c.hold
	}
	if in.Has(core.ActionRight) {
		c.rightUntil = now + c.hold
	}
	if in.Has(core.ActionJump) {
		if !c.Holding(core.ActionJump, now) {
			c.jumpQueued = true
		}
		c.jumpUntil = now + c.jumpHold
	}
	if !c.Holding(core.ActionJump, now) {
		c.jumpQueued = false
		c.jumpKeyDown = false
	}

	if p == nil || !p.IsAlive() || behaviors.IsDying(p) {
		return
	}
	a := p.Agility

	if c.Holding(core.ActionRight, now) {
		a.Accelerate(false)
	}
	if c.Holding(core.ActionLeft, now) {
		a.Accelerate(true)
	}

	if c.jumpQueued && !a.IsJumping() && p.IsOnGround() {
		c.jumpQueued = false
		c.jumpKeyDown = true
		c.jumpStart = now
		a.Jump()
	}

	if c.jumpKeyDown && a.IsJumping() {
		a.ExtendJump(float64(now-c.jumpStart), false)
	} else if a.IsFalling() {
		c.jumpKeyDown = false
	}

	if in.Has(core.ActionUse) {
		p.Use()
	}
}
