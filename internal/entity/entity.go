// Package entity defines the common state of every object placed on a map
// and the per-frame update sequence they share. Kind-specific decisions
// live behind the Behavior interface so the physics core never branches on
// entity type.
package entity

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Side is the face of an entity that touched something during a move.
type Side int

const (
	SideNone Side = iota
	SideWest
	SideEast
	SideTop
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideWest:
		return "west"
	case SideEast:
		return "east"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Collision is the outcome of the last move on each axis.
type Collision struct {
	X Side
	Y Side
}

// Align positions an entity inside the cell it is placed in.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
	AlignTop
	AlignBottom
)

const fadeSpeed = 7 // alpha per second

// Entity is an object on the map: the player, enemies, items, machinery.
type Entity struct {
	ID     int
	Kind   Kind
	Bounds core.RectF

	Agility       *physics.Agility
	LastCollision Collision

	Alpha         float64
	BlockingSpace bool
	IgnoreGravity bool

	RoutineTimer int64 // ms timestamp owned by the behavior
	Routine      int   // behavior-defined phase
	Frame        int   // animation hint for the renderer
	Score        int

	PowerID        int
	PowerSupported bool
	PowerOn        bool

	HAlign Align
	VAlign Align

	alive     bool
	neighbors []*Entity
	behavior  Behavior
	world     World
}

// New creates a live 64x64 blocking entity with default agility.
func New(kind Kind, b Behavior) *Entity {
	if b == nil {
		b = BaseBehavior{}
	}
	return &Entity{
		Kind:          kind,
		Bounds:        core.NewRectF(0, 0, core.CellSize, core.CellSize),
		Agility:       physics.NewAgility(),
		BlockingSpace: true,
		HAlign:        AlignCenter,
		VAlign:        AlignBottom,
		alive:         true,
		behavior:      b,
	}
}

// Behavior returns the kind-specific logic.
func (e *Entity) Behavior() Behavior {
	return e.behavior
}

// World returns the world the entity lives in, or nil.
func (e *Entity) World() World {
	return e.world
}

// Attach binds the entity to a world.
func (e *Entity) Attach(w World) {
	e.world = w
}

// IsAlive reports whether the entity takes part in the simulation.
func (e *Entity) IsAlive() bool {
	return e.alive
}

// SetAlive changes the alive flag. A behavior implementing DeathHandler may
// intercept a kill to play out a death sequence first.
func (e *Entity) SetAlive(alive bool) {
	if !alive && e.alive {
		if h, ok := e.behavior.(DeathHandler); ok && h.HandleDeath(e) {
			return
		}
	}
	e.alive = alive
}

// Kill is SetAlive(false).
func (e *Entity) Kill() {
	e.SetAlive(false)
}

// Expire marks the entity dead without consulting its behavior.
func (e *Entity) Expire() {
	e.alive = false
}

// IsPlayer reports whether this entity is the world's player.
func (e *Entity) IsPlayer() bool {
	return e.world != nil && e.world.Player() == e
}

// IsOnGround reports whether the last move ended on something below.
func (e *Entity) IsOnGround() bool {
	return e.LastCollision.Y == SideBottom
}

// SetPosition moves the entity and clears its jump. With center set, (x, y)
// is the desired center point.
func (e *Entity) SetPosition(x, y float64, center bool) {
	if center {
		e.Bounds.X = x - e.Bounds.W/2
		e.Bounds.Y = y - e.Bounds.H/2 + 1
	} else {
		e.Bounds.X = x
		e.Bounds.Y = y
	}
	e.Agility.ResetJump()
}

// SetSize changes width and height keeping the bottom-left corner.
func (e *Entity) SetSize(w, h float64) {
	e.Bounds.W = w
	e.Bounds.H = h
}

// ScanArea is the region searched for neighbors: the bounds grown by half a
// cell on every side.
func (e *Entity) ScanArea() core.RectF {
	return e.Bounds.Grow(core.CellSize / 2)
}

// Neighbors returns the entities found in the scan area this tick.
func (e *Entity) Neighbors() []*Entity {
	return e.neighbors
}

// SetNeighbors replaces the neighborhood.
func (e *Entity) SetNeighbors(n []*Entity) {
	e.neighbors = n
}

// Use triggers OnUse on every neighbor overlapping this entity and reports
// whether any of them reacted.
func (e *Entity) Use() bool {
	used := false
	for _, o := range e.neighbors {
		if o == e || !o.alive || !e.Bounds.Overlaps(o.Bounds) {
			continue
		}
		if o.behavior.OnUse(o) {
			used = true
		}
	}
	return used
}

// Update runs the per-frame sequence: agility, move, behavior, and the
// player contact check.
func (e *Entity) Update(c physics.Clock, m Mover) {
	e.Agility.SetGravityEnabled(!e.IgnoreGravity)
	e.Agility.Update(c)

	if e.alive {
		e.LastCollision = Collision{}
		dx, dy := e.Agility.Delta(c)
		m.Move(e, dx, dy)
	}

	e.behavior.Act(e, c)
	e.behavior.UpdateFrame(e, c)

	if e.world == nil || !e.world.IsLive() {
		return
	}
	if p := e.world.Player(); p != nil && p.Bounds.Overlaps(e.Bounds) {
		e.behavior.OnPlayerCollision(e)
	}
}

// Fade moves alpha toward 1 while alive and toward 0 once dead.
func (e *Entity) Fade(c physics.Clock) {
	if u, ok := e.behavior.(AlphaUpdater); ok {
		u.UpdateAlpha(e, c)
		return
	}
	if e.alive {
		e.Alpha = core.ClampF(e.Alpha+c.PerSecond(fadeSpeed), 0, 1)
	} else {
		e.Alpha = core.ClampF(e.Alpha-c.PerSecond(fadeSpeed), 0, 1)
	}
}

// Gone reports whether the entity is dead and fully faded out.
func (e *Entity) Gone() bool {
	return !e.alive && e.Alpha == 0
}
