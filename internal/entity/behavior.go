package entity

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Behavior is the kind-specific part of an entity.
type Behavior interface {
	// Act runs the entity's routine after it moved this frame.
	Act(e *Entity, c physics.Clock)

	// UpdateFrame picks the animation frame.
	UpdateFrame(e *Entity, c physics.Clock)

	// OnPlayerCollision is called in live mode while the player overlaps e.
	OnPlayerCollision(e *Entity)

	// OnUse is called when a user (the player) triggers e. It reports
	// whether e reacted.
	OnUse(e *Entity) bool
}

// BaseBehavior implements Behavior with no-ops. Embed it and override what
// a kind needs.
type BaseBehavior struct{}

func (BaseBehavior) Act(*Entity, physics.Clock)         {}
func (BaseBehavior) UpdateFrame(*Entity, physics.Clock) {}
func (BaseBehavior) OnPlayerCollision(*Entity)          {}
func (BaseBehavior) OnUse(*Entity) bool                 { return false }

// DeathHandler intercepts SetAlive(false). Returning true keeps the entity
// alive.
type DeathHandler interface {
	HandleDeath(e *Entity) bool
}

// AlphaUpdater replaces the default fade.
type AlphaUpdater interface {
	UpdateAlpha(e *Entity, c physics.Clock)
}

// Initializer runs once when the entity is added to a world.
type Initializer interface {
	Init(e *Entity, w World)
}

// Mover resolves a requested displacement against the map.
type Mover interface {
	Move(e *Entity, dx, dy float64)
}

// World is the view of the orchestrator that behaviors use.
type World interface {
	Mover

	Grid() *tilemap.Grid
	IsLive() bool
	Now() int64
	Player() *Entity
	Entities() []*Entity

	// Spawn adds e to the world at (x, y).
	Spawn(e *Entity, x, y float64, center bool)
	AddScore(points int)
	AddPopup(text string, x, y float64)
	SetState(s core.WorldState)

	IsEastCellPassable(e *Entity) bool
	IsWestCellPassable(e *Entity) bool
	IsOnCell(e *Entity) bool
}
