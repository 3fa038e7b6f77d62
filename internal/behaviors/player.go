package behaviors

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Player routines, stored in Entity.Routine.
const (
	PlayerAlive = iota
	PlayerDeathInit
	PlayerDying
)

// Player animation frames.
const (
	FrameIdle = iota
	FrameRunEast
	FrameRunWest
	FrameJump
	FrameFall
	FrameDead
)

const (
	playerDeathPause = 1500 // ms before the body drops
	playerDeathFall  = 10   // drop acceleration per second
)

// Player is the user-controlled character. In play mode a kill starts a
// death sequence instead of removing the player right away.
type Player struct {
	entity.BaseBehavior

	// DeathOffset is how far the body has dropped during the death
	// sequence; the renderer draws the player shifted by it.
	DeathOffset float64
	deathForce  float64
}

// NewPlayer builds the player entity.
func NewPlayer() *entity.Entity {
	e := sized(KindPlayer, &Player{}, 42, 84)
	e.BlockingSpace = false
	e.Agility.Configure(8, 10, 260, 76, 160)
	return e
}

// IsDying reports whether e is playing its death sequence.
func IsDying(e *entity.Entity) bool {
	return e.Routine == PlayerDeathInit || e.Routine == PlayerDying
}

func (p *Player) Act(e *entity.Entity, c physics.Clock) {
	switch e.Routine {
	case PlayerDeathInit:
		e.RoutineTimer = c.Now + playerDeathPause
		e.IgnoreGravity = true
		e.Routine = PlayerDying
		p.deathForce = 0
		p.DeathOffset = 0
	case PlayerDying:
		e.Agility.ResetJump()
		e.Agility.Velocity.Reset()
		if e.RoutineTimer <= c.Now {
			p.deathForce += c.PerSecond(playerDeathFall)
			p.DeathOffset -= p.deathForce
			if e.RoutineTimer <= c.Now-playerDeathPause {
				e.Expire()
			}
		}
	}
}

func (p *Player) UpdateFrame(e *entity.Entity, _ physics.Clock) {
	v := e.Agility.Velocity
	switch {
	case IsDying(e):
		e.Frame = FrameDead
	case e.Agility.IsJumping():
		e.Frame = FrameJump
	case !e.IsOnGround() && e.Agility.IsFalling():
		e.Frame = FrameFall
	case v.Positive > v.Negative:
		e.Frame = FrameRunEast
	case v.Negative > v.Positive:
		e.Frame = FrameRunWest
	default:
		e.Frame = FrameIdle
	}
}

// HandleDeath starts the death sequence in play mode and ignores further
// kills while it runs. Outside play mode the player dies immediately.
func (p *Player) HandleDeath(e *entity.Entity) bool {
	w := e.World()
	if w == nil || !w.IsLive() {
		return false
	}
	if e.Routine == PlayerAlive {
		e.Routine = PlayerDeathInit
		w.SetState(core.StatePlayerDies)
	}
	return true
}
