package behaviors

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Springboard launches anything falling onto it.
type Springboard struct {
	entity.BaseBehavior
}

const (
	springboardLaunch = 400
	springboardFlash  = 200 // ms the compressed frame is shown
)

// NewSpringboard builds a springboard.
func NewSpringboard() *entity.Entity {
	e := entity.New(KindSpringboard, Springboard{})
	e.BlockingSpace = false
	return e
}

func (Springboard) Act(e *entity.Entity, c physics.Clock) {
	b := e.Bounds
	for _, o := range e.Neighbors() {
		if o == e || !o.IsAlive() {
			continue
		}
		ob := o.Bounds
		if ob.Y < b.CenterY() || ob.Y > b.Top()+4 {
			continue
		}
		if ob.Right() <= b.X || ob.X >= b.Right() {
			continue
		}
		if !o.Agility.IsFalling() {
			continue
		}

		o.Bounds.Y = b.Top()
		o.Agility.ResetJump()
		o.Agility.Jump()
		o.Agility.ExtendJump(springboardLaunch, true)
		e.RoutineTimer = c.Now + springboardFlash
	}
}

func (Springboard) UpdateFrame(e *entity.Entity, c physics.Clock) {
	if c.Now < e.RoutineTimer {
		e.Frame = 1
	} else {
		e.Frame = 0
	}
}

// Treadmill pushes everything standing on it east while powered.
type Treadmill struct {
	entity.BaseBehavior
}

// NewTreadmill builds a powered treadmill.
func NewTreadmill() *entity.Entity {
	return powered(entity.New(KindTreadmill, Treadmill{}))
}

func (Treadmill) Act(e *entity.Entity, _ physics.Clock) {
	if !e.PowerOn {
		return
	}
	for _, o := range e.Neighbors() {
		if o == e || !o.IsAlive() {
			continue
		}
		if o.IsOnGround() && o.Bounds.Y == e.Bounds.Top() {
			o.Agility.AddRepulsion(3, 0, 7)
		}
	}
}

func (Treadmill) UpdateFrame(e *entity.Entity, c physics.Clock) {
	if !e.PowerOn {
		e.Frame = 0
		return
	}
	e.Frame = 1 + int(c.Now/50)%3
}

// Cannon fires a cannon ball every few seconds while powered. The ball
// leaves flush with the side the cannon faces.
type Cannon struct {
	entity.BaseBehavior
	Heading int
}

const cannonInterval = 4000

// NewCannon builds a cannon facing east.
func NewCannon() *entity.Entity {
	return newCannon(KindCannon, HeadingEast)
}

// NewCannonLeft builds a cannon facing west.
func NewCannonLeft() *entity.Entity {
	return newCannon(KindCannonLeft, HeadingWest)
}

// NewCannonUp builds a cannon facing up.
func NewCannonUp() *entity.Entity {
	return newCannon(KindCannonUp, HeadingUp)
}

// NewCannonDown builds a cannon facing down.
func NewCannonDown() *entity.Entity {
	return newCannon(KindCannonDown, HeadingDown)
}

func newCannon(kind entity.Kind, heading int) *entity.Entity {
	e := powered(sized(kind, Cannon{Heading: heading}, 40, 38))
	e.IgnoreGravity = true
	e.Routine = heading

	// sit against the wall behind the barrel
	switch heading {
	case HeadingWest:
		e.HAlign, e.VAlign = entity.AlignRight, entity.AlignCenter
	case HeadingUp:
		e.HAlign, e.VAlign = entity.AlignCenter, entity.AlignBottom
	case HeadingDown:
		e.HAlign, e.VAlign = entity.AlignCenter, entity.AlignTop
	default:
		e.HAlign, e.VAlign = entity.AlignLeft, entity.AlignCenter
	}
	return e
}

func (cn Cannon) Act(e *entity.Entity, c physics.Clock) {
	w := e.World()
	if w == nil || !e.PowerOn || e.RoutineTimer >= c.Now {
		return
	}
	e.RoutineTimer = c.Now + cannonInterval

	ball := NewCannonBall(cn.Heading)
	b, bw, bh := e.Bounds, ball.Bounds.W, ball.Bounds.H
	// centered spawns sit one unit high, the vertical muzzles undo that
	switch cn.Heading {
	case HeadingWest:
		w.Spawn(ball, b.X-bw/2, b.CenterY(), true)
	case HeadingUp:
		w.Spawn(ball, b.CenterX(), b.Top()+bh/2-1, true)
	case HeadingDown:
		w.Spawn(ball, b.CenterX(), b.Y-bh/2-1, true)
	default:
		w.Spawn(ball, b.Right()+bw/2, b.CenterY(), true)
	}
}

// Headings of a cannon ball, stored in Entity.Routine.
const (
	HeadingEast = iota
	HeadingWest
	HeadingUp
	HeadingDown
)

// CannonBall flies straight until it hits something.
type CannonBall struct {
	entity.BaseBehavior
}

// NewCannonBall builds a cannon ball flying in the given heading.
func NewCannonBall(heading int) *entity.Entity {
	e := sized(KindCannonBall, CannonBall{}, 32, 32)
	e.BlockingSpace = false
	e.IgnoreGravity = true
	e.Agility.Configure(10, 10, 180, 32, 32)
	e.Routine = heading
	return e
}

func (CannonBall) Act(e *entity.Entity, c physics.Clock) {
	w := e.World()
	if w == nil || !e.IsAlive() {
		return
	}

	d := c.PerSecond(e.Agility.Velocity.MaxPositive)
	switch e.Routine {
	case HeadingEast:
		w.Move(e, d, 0)
	case HeadingWest:
		w.Move(e, -d, 0)
	case HeadingUp:
		w.Move(e, 0, d)
	case HeadingDown:
		w.Move(e, 0, -d)
	}

	if e.LastCollision != (entity.Collision{}) {
		e.Kill()
	}
}

func (CannonBall) UpdateFrame(e *entity.Entity, _ physics.Clock) {
	e.Frame = e.Routine
}

func (CannonBall) OnPlayerCollision(e *entity.Entity) {
	killPlayer(e)
}

// Box is a crate that falls and crushes the player.
type Box struct {
	entity.BaseBehavior
}

// NewBox builds a box.
func NewBox() *entity.Entity {
	return entity.New(KindBox, Box{})
}

func (Box) OnPlayerCollision(e *entity.Entity) {
	if e.Agility.IsFalling() {
		killPlayer(e)
	}
}

// Spikes kill on touch. They block from the sides but let a player who is
// already above them fall in.
type Spikes struct {
	entity.BaseBehavior
}

// NewSpikes builds spikes.
func NewSpikes() *entity.Entity {
	return sized(KindSpikes, Spikes{}, 50, 31)
}

func (Spikes) Act(e *entity.Entity, _ physics.Clock) {
	w := e.World()
	if w == nil {
		return
	}
	p := w.Player()
	if p == nil || !p.Bounds.Overlaps(e.ScanArea()) {
		return
	}
	e.BlockingSpace = p.Bounds.Right() <= e.Bounds.X || p.Bounds.X >= e.Bounds.Right()
}

func (Spikes) OnPlayerCollision(e *entity.Entity) {
	killPlayer(e)
}

// Platform routines, stored in Entity.Routine.
const (
	PlatformOff = iota
	PlatformOn
	PlatformTransition
)

const (
	platformOnTime         = 5000
	platformTransitionTime = 3000
	platformOffTime        = 5000
)

// Platform is a powered block that is solid while on and during the
// transition back to off.
type Platform struct {
	entity.BaseBehavior
}

// NewPlatform builds a powered platform.
func NewPlatform() *entity.Entity {
	e := powered(entity.New(KindPlatform, Platform{}))
	e.IgnoreGravity = true
	return e
}

func (Platform) Act(e *entity.Entity, c physics.Clock) {
	if !e.PowerOn {
		e.Routine = PlatformOff
	} else if e.RoutineTimer < c.Now {
		switch e.Routine {
		case PlatformOff:
			e.Routine = PlatformOn
			e.RoutineTimer = c.Now + platformOnTime
		case PlatformOn:
			e.Routine = PlatformTransition
			e.RoutineTimer = c.Now + platformTransitionTime
		default:
			e.Routine = PlatformOff
			e.RoutineTimer = c.Now + platformOffTime
		}
	}
	e.BlockingSpace = e.Routine != PlatformOff
}

func (Platform) UpdateFrame(e *entity.Entity, _ physics.Clock) {
	e.Frame = e.Routine
}

// UpdateAlpha shows the platform faint while off and unpowered.
func (Platform) UpdateAlpha(e *entity.Entity, c physics.Clock) {
	if !e.IsAlive() {
		e.Alpha = core.ClampF(e.Alpha-c.PerSecond(7), 0, 1)
		return
	}
	if !e.PowerOn {
		e.Alpha = 0.04
		return
	}
	switch e.Routine {
	case PlatformOn:
		e.Alpha = min(e.Alpha+c.PerSecond(2), 1)
	case PlatformTransition:
		e.Alpha = max(e.Alpha-c.PerSecond(1), 0.75)
	default:
		e.Alpha = max(e.Alpha-c.PerSecond(1), 0.25)
	}
}

// Switch toggles every powered entity sharing its power id.
type Switch struct {
	entity.BaseBehavior
}

// NewSwitch builds a switch.
func NewSwitch() *entity.Entity {
	e := powered(sized(KindSwitch, Switch{}, 42, 64))
	e.BlockingSpace = false
	return e
}

func (Switch) OnUse(e *entity.Entity) bool {
	w := e.World()
	if w == nil {
		return false
	}
	for _, o := range w.Entities() {
		if o.PowerSupported && o.PowerID == e.PowerID {
			o.PowerOn = !o.PowerOn
		}
	}

	text := "off"
	if e.PowerOn {
		text = "on"
	}
	w.AddPopup(text, e.Bounds.CenterX(), e.Bounds.CenterY())
	return true
}

func (Switch) UpdateFrame(e *entity.Entity, _ physics.Clock) {
	if e.PowerOn {
		e.Frame = 1
	} else {
		e.Frame = 0
	}
}

// Trap routines, stored in Entity.Routine.
const (
	TrapOff = iota
	TrapOn
)

const trapInterval = 4000

// Trap is an electric trap that switches on and off every few seconds.
type Trap struct {
	entity.BaseBehavior
}

// NewTrap builds an electric trap.
func NewTrap() *entity.Entity {
	e := powered(sized(KindTrap, Trap{}, 60, 54))
	e.BlockingSpace = false
	return e
}

func (Trap) Act(e *entity.Entity, c physics.Clock) {
	if e.RoutineTimer == 0 {
		e.RoutineTimer = c.Now + trapInterval
	}
	if !e.PowerOn {
		e.Routine = TrapOff
		return
	}
	if e.RoutineTimer < c.Now {
		e.RoutineTimer = c.Now + trapInterval
		if e.Routine == TrapOn {
			e.Routine = TrapOff
		} else {
			e.Routine = TrapOn
		}
	}
}

func (Trap) UpdateFrame(e *entity.Entity, _ physics.Clock) {
	e.Frame = e.Routine
}

func (Trap) OnPlayerCollision(e *entity.Entity) {
	if e.Routine == TrapOn {
		killPlayer(e)
	}
}
