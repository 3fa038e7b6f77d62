package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Direction is the horizontal intent for the current frame.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionPositive
	DirectionNegative
)

// Jump curve tuning, in world units.
const (
	jumpSpeedMin   = 150  // slowest rise per second, reached near the apex
	jumpSpeedMax   = 450  // fastest rise per second
	jumpSpeedGain  = 8    // rise speed per unit of remaining height
	fallStep       = 32   // downward acceleration per 60 Hz tick
	jumpHardLimit  = 9999 // ceiling for ExtendJump with overrideMax
	defaultSpeed   = 300
	defaultAccel   = 10
	defaultJumpMin = 32
)

// Agility is the kinematic state of one entity: horizontal velocity, the
// jump curve and the active repulsions. Update must run exactly once per
// tick.
type Agility struct {
	Velocity Value

	MinJumpHeight float64
	MaxJumpHeight float64

	direction  Direction
	jumpHeight float64
	jumpTarget float64
	jumpDelta  float64
	gravity    bool
	repulsions []*Repulsion
}

// NewAgility returns the tuning shared by plain entities.
func NewAgility() *Agility {
	a := &Agility{gravity: true}
	a.Configure(defaultAccel, defaultAccel, defaultSpeed, defaultJumpMin, defaultJumpMin)
	return a
}

// Configure sets acceleration, deceleration, top speed (both directions)
// and the jump height range.
func (a *Agility) Configure(accel, decel, maxSpeed, minJump, maxJump float64) {
	a.Velocity = NewValue(accel, decel, maxSpeed, maxSpeed)
	a.MinJumpHeight = minJump
	a.MaxJumpHeight = maxJump
}

// Accelerate requests movement for this frame only: east by default,
// west when reverse is set.
func (a *Agility) Accelerate(reverse bool) {
	if reverse {
		a.direction = DirectionNegative
	} else {
		a.direction = DirectionPositive
	}
}

// Direction returns the pending horizontal intent.
func (a *Agility) Direction() Direction {
	return a.direction
}

// Update advances velocity, jump curve and repulsions by one frame.
func (a *Agility) Update(c Clock) {
	a.updateVelocity(c)
	a.updateJump(c)
	a.updateRepulsions(c)
}

func (a *Agility) updateVelocity(c Clock) {
	v := &a.Velocity
	switch a.direction {
	case DirectionPositive:
		v.AcceleratePositive(c)
		if v.Negative > 0 {
			v.DecelerateNegative(c)
		}
	case DirectionNegative:
		v.AccelerateNegative(c)
		if v.Positive > 0 {
			v.DeceleratePositive(c)
		}
	default:
		v.DeceleratePositive(c)
		v.DecelerateNegative(c)
	}
	a.direction = DirectionNone
}

func (a *Agility) updateJump(c Clock) {
	if a.jumpHeight < a.jumpTarget {
		speed := core.ClampF((a.jumpHeight-a.jumpTarget)*-jumpSpeedGain, jumpSpeedMin, jumpSpeedMax)
		a.jumpDelta = LimitDelta(c.PerSecond(speed))
		a.jumpHeight += a.jumpDelta

		// apex reached: no residual upward velocity
		if a.jumpHeight >= a.jumpTarget {
			a.ResetJump()
		}
		return
	}
	if a.gravity {
		a.jumpDelta -= c.Ratio60(fallStep)
	}
}

func (a *Agility) updateRepulsions(c Clock) {
	kept := a.repulsions[:0]
	for _, r := range a.repulsions {
		r.Update(c)
		if !r.Expired() {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(a.repulsions); i++ {
		a.repulsions[i] = nil
	}
	a.repulsions = kept
}

// Jump starts a new jump towards MinJumpHeight.
func (a *Agility) Jump() {
	a.ResetJump()
	a.jumpTarget = a.MinJumpHeight
}

// ExtendJump raises the jump target. The target stays within
// [MinJumpHeight, MaxJumpHeight] unless overrideMax is set.
func (a *Agility) ExtendJump(height float64, overrideMax bool) {
	ceiling := a.MaxJumpHeight
	if overrideMax {
		ceiling = jumpHardLimit
	}
	a.jumpTarget = core.ClampF(height, a.MinJumpHeight, ceiling)
}

// ResetJump clears all vertical state.
func (a *Agility) ResetJump() {
	a.jumpHeight = 0
	a.jumpTarget = 0
	a.jumpDelta = 0
}

// IsJumping reports whether the entity is still rising toward its target.
func (a *Agility) IsJumping() bool {
	return a.jumpHeight < a.jumpTarget
}

// IsFalling reports whether the entity is moving down under gravity.
func (a *Agility) IsFalling() bool {
	return a.jumpDelta < 0 && a.jumpHeight >= a.jumpTarget
}

// JumpHeight returns the height gained in the current jump.
func (a *Agility) JumpHeight() float64 { return a.jumpHeight }

// JumpTarget returns the height the current jump rises to.
func (a *Agility) JumpTarget() float64 { return a.jumpTarget }

// JumpDelta returns the vertical displacement for this frame.
func (a *Agility) JumpDelta() float64 { return a.jumpDelta }

// SetGravityEnabled toggles the fall branch of the jump curve.
func (a *Agility) SetGravityEnabled(enabled bool) {
	a.gravity = enabled
}

// GravityEnabled reports whether gravity applies.
func (a *Agility) GravityEnabled() bool {
	return a.gravity
}

// AddRepulsion appends a decaying push.
func (a *Agility) AddRepulsion(force, angle, attenuation float64) {
	a.repulsions = append(a.repulsions, &Repulsion{Force: force, Angle: angle, Attenuation: attenuation})
}

// ClearRepulsions drops every push.
func (a *Agility) ClearRepulsions() {
	a.repulsions = nil
}

// Repulsions returns the number of active pushes.
func (a *Agility) Repulsions() int {
	return len(a.repulsions)
}

// RepulsionVector sums all pushes and scales them to this frame.
func (a *Agility) RepulsionVector(c Clock) r2.Vec {
	var sum r2.Vec
	for _, r := range a.repulsions {
		sum = r2.Add(sum, r.Vector())
	}
	return r2.Scale(c.Ratio60(1), sum)
}

// Delta returns this frame's requested displacement. The repulsion vector
// is counted twice on both axes; conveyor and launch tuning relies on it.
func (a *Agility) Delta(c Clock) (dx, dy float64) {
	rep := a.RepulsionVector(c)
	dx = rep.X + a.Velocity.Sum() + rep.X
	dy = rep.Y + a.jumpDelta + rep.Y
	return dx, dy
}
