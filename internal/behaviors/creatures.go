package behaviors

import (
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Patrol directions, stored in Entity.Routine.
const (
	PatrolEast = iota
	PatrolWest
)

// Snail walks along its ledge and turns at walls and edges.
type Snail struct {
	entity.BaseBehavior
}

// NewSnail builds a snail.
func NewSnail() *entity.Entity {
	e := sized(KindSnail, Snail{}, 62, 54)
	e.BlockingSpace = false
	e.Agility.Configure(3, 3, 100, 32, 32)
	return e
}

func (Snail) Act(e *entity.Entity, _ physics.Clock) {
	w := e.World()
	if w == nil || !e.IsOnGround() || !w.IsOnCell(e) {
		return
	}

	if e.Routine == PatrolEast {
		e.Agility.Accelerate(false)
		if !w.IsEastCellPassable(e) {
			e.Routine = PatrolWest
			e.Agility.Velocity.Reset()
		}
		return
	}

	e.Agility.Accelerate(true)
	if !w.IsWestCellPassable(e) {
		e.Routine = PatrolEast
		e.Agility.Velocity.Reset()
	}
}

func (Snail) UpdateFrame(e *entity.Entity, _ physics.Clock) {
	e.Frame = e.Routine
}

func (Snail) OnPlayerCollision(e *entity.Entity) {
	killPlayer(e)
}

// Jumper hops in place.
type Jumper struct {
	entity.BaseBehavior
}

// NewJumper builds a jumper.
func NewJumper() *entity.Entity {
	e := sized(KindJumper, Jumper{}, 50, 50)
	e.BlockingSpace = false
	e.Agility.MinJumpHeight = 220
	e.Agility.MaxJumpHeight = 220
	return e
}

func (Jumper) Act(e *entity.Entity, _ physics.Clock) {
	if e.IsOnGround() {
		e.Agility.Jump()
	}
}

func (Jumper) UpdateFrame(e *entity.Entity, _ physics.Clock) {
	switch {
	case e.Agility.IsJumping():
		e.Frame = FrameJump
	case e.Agility.IsFalling():
		e.Frame = FrameFall
	}
}

func (Jumper) OnPlayerCollision(e *entity.Entity) {
	killPlayer(e)
}
