// Package collision moves entities through the tile grid and around each
// other. Every displacement in the game goes through Resolver.Move.
package collision

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Epsilon keeps a snapped entity just outside the cell it hit.
const Epsilon = 0.001

// Resolver resolves entity motion against one grid.
type Resolver struct {
	grid *tilemap.Grid
}

// NewResolver creates a resolver for the grid.
func NewResolver(g *tilemap.Grid) *Resolver {
	return &Resolver{grid: g}
}

// Grid returns the grid the resolver works on.
func (r *Resolver) Grid() *tilemap.Grid {
	return r.grid
}

// Move displaces e by (dx, dy), each clamped to half a cell. The vertical
// axis resolves first. A blocked axis snaps e against the obstacle and
// records the side in e.LastCollision; a free axis applies the full delta.
// Afterwards water, map borders and the fall-out limits are enforced.
//
// LastCollision is not cleared here; the entity update does that before
// moving, so sides set earlier in the frame still block their axis.
func (r *Resolver) Move(e *entity.Entity, dx, dy float64) {
	dx = physics.LimitDelta(dx)
	dy = physics.LimitDelta(dy)

	if dy > 0 {
		r.moveUp(e, dy)
	}
	if dy < 0 {
		r.moveDown(e, dy)
	}
	if dx > 0 {
		r.moveEast(e, dx)
	}
	if dx < 0 {
		r.moveWest(e, dx)
	}

	b := &e.Bounds
	if e.LastCollision.X == entity.SideNone {
		b.X += dx
	}
	if e.LastCollision.Y == entity.SideNone {
		b.Y += dy
	}

	r.enforceLimits(e)
}

func (r *Resolver) moveUp(e *entity.Entity, dy float64) {
	b := &e.Bounds
	y := b.Top() + dy
	if r.anyBlocked(b.X, y, b.Right()-Epsilon, y, b.CenterX(), y) {
		row := r.grid.CellAt(b.X, y).Row
		b.Y = float64(row*core.CellSize) - b.H - Epsilon
		r.hitVertical(e, entity.SideTop)
		return
	}
	if o := blocker(e, b.Translate(0, dy)); o != nil {
		b.Y = o.Bounds.Y - b.H
		r.hitVertical(e, entity.SideTop)
	}
}

func (r *Resolver) moveDown(e *entity.Entity, dy float64) {
	b := &e.Bounds
	y := b.Y + dy
	if r.anyBlocked(b.X, y, b.Right()-Epsilon, y, b.CenterX(), y) {
		row := r.grid.CellAt(b.X, y).Row
		b.Y = float64(row*core.CellSize + core.CellSize)
		r.hitVertical(e, entity.SideBottom)
		return
	}
	if o := blocker(e, b.Translate(0, dy)); o != nil {
		b.Y = o.Bounds.Top()
		r.hitVertical(e, entity.SideBottom)
	}
}

func (r *Resolver) moveEast(e *entity.Entity, dx float64) {
	b := &e.Bounds
	x := b.Right() + dx
	if r.anyBlocked(x, b.Y, x, b.Top()-Epsilon, x, b.CenterY()) {
		col := r.grid.CellAt(x, b.Y).Col
		b.X = float64(col*core.CellSize) - b.W - Epsilon
		r.hitHorizontal(e, entity.SideEast)
		return
	}
	if o := blocker(e, b.Translate(dx, 0)); o != nil {
		b.X = o.Bounds.X - b.W
		r.hitHorizontal(e, entity.SideEast)
	}
}

func (r *Resolver) moveWest(e *entity.Entity, dx float64) {
	b := &e.Bounds
	x := b.X + dx
	if r.anyBlocked(x, b.Y, x, b.Top()-Epsilon, x, b.CenterY()) {
		col := r.grid.CellAt(x, b.Y).Col
		b.X = float64(col*core.CellSize + core.CellSize)
		r.hitHorizontal(e, entity.SideWest)
		return
	}
	if o := blocker(e, b.Translate(dx, 0)); o != nil {
		b.X = o.Bounds.Right()
		r.hitHorizontal(e, entity.SideWest)
	}
}

func (r *Resolver) hitVertical(e *entity.Entity, side entity.Side) {
	e.LastCollision.Y = side
	e.Agility.ResetJump()
}

func (r *Resolver) hitHorizontal(e *entity.Entity, side entity.Side) {
	e.LastCollision.X = side
	e.Agility.Velocity.Reset()
}

func (r *Resolver) enforceLimits(e *entity.Entity) {
	b := &e.Bounds
	mapBounds := r.grid.Bounds()

	if b.Top() < r.grid.WaterHeight {
		e.Kill()
	}

	if b.X < 0 {
		b.X = 0
		e.LastCollision.X = entity.SideWest
	}
	if b.X > mapBounds.W-b.W {
		b.X = mapBounds.W - b.W
		e.LastCollision.X = entity.SideEast
	}

	if b.Y < -2*core.CellSize {
		b.Y = -2 * core.CellSize
		e.Kill()
	}
	// nothing pushes back from above; leaving through the top is fatal
	if b.Y > mapBounds.H+core.CellSize {
		e.Kill()
	}
}

// anyBlocked tests three sample points.
func (r *Resolver) anyBlocked(x1, y1, x2, y2, x3, y3 float64) bool {
	return r.grid.Blocked(x1, y1) || r.grid.Blocked(x2, y2) || r.grid.Blocked(x3, y3)
}

// blocker returns the first blocking neighbor overlapping area, in
// neighborhood order. A dead entity stays solid until it has faded out.
func blocker(e *entity.Entity, area core.RectF) *entity.Entity {
	for _, o := range e.Neighbors() {
		if o == e || o == nil || !o.BlockingSpace || o.Gone() {
			continue
		}
		if o.Bounds.Overlaps(area) {
			return o
		}
	}
	return nil
}

// IsEastCellPassable reports whether there is ground ahead to the east and
// no wall was hit there: the tile half a cell below the right foot is
// occupied and the last move did not collide east.
func (r *Resolver) IsEastCellPassable(e *entity.Entity) bool {
	b := e.Bounds
	return r.grid.Blocked(b.Right(), b.Y-core.CellSize/2) && e.LastCollision.X != entity.SideEast
}

// IsWestCellPassable is the western counterpart of IsEastCellPassable.
func (r *Resolver) IsWestCellPassable(e *entity.Entity) bool {
	b := e.Bounds
	return r.grid.Blocked(b.X, b.Y-core.CellSize/2) && e.LastCollision.X != entity.SideWest
}

// IsOnCell reports whether a tile lies directly under e's center.
func (r *Resolver) IsOnCell(e *entity.Entity) bool {
	b := e.Bounds
	return r.grid.Blocked(b.CenterX(), b.Y-1)
}
