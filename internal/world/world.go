// Package world owns one running level: the tile grid, the entity list, the
// player, score, timers and the world state machine. It drives the per-tick
// update and implements entity.World for the behaviors.
package world

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/collision"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// World is the simulation of one map.
type World struct {
	grid     *tilemap.Grid
	resolver *collision.Resolver
	camera   *Camera
	logger   *log.Logger

	entities []*entity.Entity
	marked   []*entity.Entity
	player   *entity.Entity
	popups   []*Popup
	nextID   int

	state      core.WorldState
	score      int
	live       bool
	now        int64
	startTime  int64
	pauseStart int64
	elapsed    int64
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a live world with an empty 0x0 map.
func New(opts ...Option) *World {
	w := &World{
		camera: NewCamera(),
		logger: log.New(io.Discard),
		live:   true,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.CreateWorld(0, 0)
	return w
}

// CreateWorld discards everything and starts over with an empty map of
// the given size.
func (w *World) CreateWorld(cols, rows int) {
	w.state = core.StatePlaying
	w.score = 0
	w.startTime = w.now
	w.pauseStart = 0
	w.elapsed = 0

	w.camera.X, w.camera.Y = 0, 0

	w.grid = tilemap.New(cols, rows)
	w.resolver = collision.NewResolver(w.grid)

	w.entities = nil
	w.marked = nil
	w.popups = nil
	w.player = nil
	w.nextID = 0

	w.logger.Debug("world created", "cols", cols, "rows", rows)
}

// Update advances the world by one tick.
func (w *World) Update(c physics.Clock) {
	w.now = c.Now
	w.updateTimers(c)

	if !c.Paused {
		w.updateEntities(c)
		w.updatePopups(c)
		w.updateState()
	}

	w.updateCamera()
}

func (w *World) updateTimers(c physics.Clock) {
	if c.Paused {
		if w.pauseStart == 0 {
			w.pauseStart = c.Now
		}
		return
	}

	if w.pauseStart != 0 {
		delay := c.Now - w.pauseStart
		w.pauseStart = 0
		for _, e := range w.entities {
			e.RoutineTimer += delay
		}
		w.startTime += delay
	}

	if countdown := w.grid.Countdown; countdown > 0 {
		w.elapsed = max(countdown-(c.Now-w.startTime), 0)
	} else {
		w.elapsed = c.Now - w.startTime
	}
}

func (w *World) updateEntities(c physics.Clock) {
	// entities spawned during this loop wait for the next tick
	n := len(w.entities)
	var gone []*entity.Entity

	for i := 0; i < n; i++ {
		e := w.entities[i]
		if e.IsAlive() {
			e.SetNeighbors(w.EntitiesIn(e.ScanArea()))
			e.Update(c, w)
		}
		e.Fade(c)
		if e.Gone() {
			gone = append(gone, e)
		}
	}

	for _, e := range gone {
		w.Remove(e)
	}
}

func (w *World) updatePopups(c physics.Clock) {
	kept := w.popups[:0]
	for _, p := range w.popups {
		if p.Alpha > 0 {
			p.Y += c.PerSecond(popupRise)
			p.Alpha -= c.PerSecond(popupFade)
		}
		if p.Alpha > 0 {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(w.popups); i++ {
		w.popups[i] = nil
	}
	w.popups = kept
}

func (w *World) updateState() {
	if !w.live {
		return
	}
	if w.state != core.StatePlaying && w.state != core.StatePlayerDies {
		return
	}

	if w.grid.Countdown > 0 && w.elapsed <= 0 {
		w.SetState(core.StateRestart)
	}
	if w.player == nil {
		return
	}
	if !w.player.IsAlive() {
		w.SetState(core.StateRestart)
	}
	if w.player.Bounds.Overlaps(w.grid.FinishArea) {
		w.SetState(core.StateViewStats)
	}
}

func (w *World) updateCamera() {
	if !w.live || w.player == nil {
		return
	}
	w.camera.Follow(w.player.Bounds)
	w.camera.Clamp(w.grid.Bounds())
}

// SetLive switches between play (true) and edit (false) mode. Contact
// callbacks and the state machine only run in play mode.
func (w *World) SetLive(live bool) {
	w.live = live
}

// IsLive reports whether the world is in play mode.
func (w *World) IsLive() bool {
	return w.live
}

// State returns the current world state.
func (w *World) State() core.WorldState {
	return w.state
}

// SetState changes the world state.
func (w *World) SetState(s core.WorldState) {
	if s == w.state {
		return
	}
	w.logger.Info("world state", "from", w.state, "to", s, "score", w.score)
	w.state = s
}

// Score returns the collected points.
func (w *World) Score() int {
	return w.score
}

// AddScore adds points.
func (w *World) AddScore(points int) {
	w.score += points
}

// Elapsed returns the play time in milliseconds, or the remaining time when
// the map has a countdown.
func (w *World) Elapsed() int64 {
	return w.elapsed
}

// ResetTimer restarts the play time at now.
func (w *World) ResetTimer(now int64) {
	w.now = now
	w.startTime = now
	w.pauseStart = 0
}

// Now returns the timestamp of the current tick in milliseconds.
func (w *World) Now() int64 {
	return w.now
}

// Grid returns the map.
func (w *World) Grid() *tilemap.Grid {
	return w.grid
}

// Camera returns the camera.
func (w *World) Camera() *Camera {
	return w.camera
}

// Add appends e, assigns its id and runs its Initializer.
func (w *World) Add(e *entity.Entity) {
	w.nextID++
	e.ID = w.nextID
	e.Attach(w)
	w.entities = append(w.entities, e)

	if i, ok := e.Behavior().(entity.Initializer); ok {
		i.Init(e, w)
	}
}

// Spawn adds e and positions it at (x, y).
func (w *World) Spawn(e *entity.Entity, x, y float64, center bool) {
	e.SetPosition(x, y, center)
	w.Add(e)
}

// Remove takes e out of the world. Removing the player clears the player
// reference.
func (w *World) Remove(e *entity.Entity) {
	if e == w.player {
		w.player = nil
	}
	w.entities = without(w.entities, e)
	w.marked = without(w.marked, e)
}

// RemoveIn removes every entity overlapping area and returns how many were
// removed.
func (w *World) RemoveIn(area core.RectF) int {
	found := w.EntitiesIn(area)
	for _, e := range found {
		w.Remove(e)
	}
	return len(found)
}

// EntitiesIn returns the entities overlapping area in list order.
func (w *World) EntitiesIn(area core.RectF) []*entity.Entity {
	var out []*entity.Entity
	for _, e := range w.entities {
		if e.Bounds.Overlaps(area) {
			out = append(out, e)
		}
	}
	return out
}

// Entities returns the entity list in update order. Callers must not
// modify it.
func (w *World) Entities() []*entity.Entity {
	return w.entities
}

// Player returns the player entity, or nil.
func (w *World) Player() *entity.Entity {
	return w.player
}

// SetPlayer makes e the player and moves it to the end of the list so it
// updates after everything it may stand on.
func (w *World) SetPlayer(e *entity.Entity) {
	w.player = e
	if e == nil {
		return
	}
	w.entities = append(without(w.entities, e), e)
	e.Attach(w)
	w.updateCamera()
}

// ToggleMarked marks e, or unmarks it when already marked. A nil e clears
// all marks.
func (w *World) ToggleMarked(e *entity.Entity) {
	if e == nil {
		w.marked = nil
		return
	}
	for _, m := range w.marked {
		if m == e {
			w.marked = without(w.marked, e)
			return
		}
	}
	w.marked = append(w.marked, e)
}

// Marked returns the marked entities.
func (w *World) Marked() []*entity.Entity {
	return w.marked
}

// ResetRoutines restarts every entity's routine timer at now.
func (w *World) ResetRoutines(now int64) {
	for _, e := range w.entities {
		e.RoutineTimer = now
	}
}

// SetCells sets every cell overlapping area to id and reclassifies the
// map when anything changed.
func (w *World) SetCells(area core.RectF, id int) {
	if w.grid.Fill(area, id) > 0 {
		w.grid.Autotile()
	}
}

// VisibleCells returns the cells inside the camera view.
func (w *World) VisibleCells() []*tilemap.Cell {
	return w.grid.VisibleCells(w.camera.View())
}

// AddPopup shows text centered at (x, y).
func (w *World) AddPopup(text string, x, y float64) {
	w.popups = append(w.popups, &Popup{Text: text, X: x, Y: y, Alpha: 1})
}

// Popups returns the active popups.
func (w *World) Popups() []*Popup {
	return w.popups
}

// Move resolves a displacement for e against the map and its neighbors.
func (w *World) Move(e *entity.Entity, dx, dy float64) {
	w.resolver.Move(e, dx, dy)
}

// IsEastCellPassable reports whether e can keep walking east.
func (w *World) IsEastCellPassable(e *entity.Entity) bool {
	return w.resolver.IsEastCellPassable(e)
}

// IsWestCellPassable reports whether e can keep walking west.
func (w *World) IsWestCellPassable(e *entity.Entity) bool {
	return w.resolver.IsWestCellPassable(e)
}

// IsOnCell reports whether a tile lies right under e.
func (w *World) IsOnCell(e *entity.Entity) bool {
	return w.resolver.IsOnCell(e)
}

func without(list []*entity.Entity, e *entity.Entity) []*entity.Entity {
	for i, o := range list {
		if o == e {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

var _ entity.World = (*World)(nil)
