// Package platformer runs a level as an arcade game: it owns the world, feeds
// it frame clocks and player input, records finished runs and projects the
// map onto the character screen.
package platformer

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// RunRecorder receives every finished run.
type RunRecorder interface {
	Record(r storage.Run) error
}

// Options configures a game.
type Options struct {
	Config     config.PlatformerConfig
	Difficulty config.DifficultyPreset // empty keeps the config's difficulty
	Logger     *log.Logger
	Recorder   RunRecorder
	Now        func() time.Time // wall clock, time.Now when nil
}

// package defaults for games created through the registry
var defaults = Options{Config: config.DefaultPlatformerConfig()}

// SetDefaults sets the options used by games created through the registry.
func SetDefaults(opts Options) {
	defaults = opts
}

func init() {
	all, err := levels.Builtin()
	if err != nil {
		panic(fmt.Sprintf("platformer: %v", err))
	}
	if skipped := RegisterLevels(all); len(skipped) > 0 {
		panic(fmt.Sprintf("platformer: duplicate built-in levels %v", skipped))
	}
}

// RegisterLevels registers a game per level and returns the ids that were
// skipped because they are already taken.
func RegisterLevels(ls []*levels.Level) (skipped []string) {
	for _, l := range ls {
		if registry.Exists(l.ID) {
			skipped = append(skipped, l.ID)
			continue
		}
		registry.Register(l.ID, func() registry.Game {
			return New(l, defaults)
		})
	}
	return skipped
}

// Game implements registry.Game for one level.
type Game struct {
	level *levels.Level
	opts  Options
	cfg   config.PlatformerConfig

	world      *world.World
	tracker    *physics.DeltaTracker
	controller *Controller
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	clock      physics.Clock

	paused   bool
	restart  bool // rebuild the level on the next step
	recorded bool // the current attempt was saved
	attempts int
	ticks    int

	// screen size the camera viewport was fitted to
	fitW, fitH int
}

// New creates a game for level. Nothing is built until Reset.
func New(level *levels.Level, opts Options) *Game {
	cfg := opts.Config
	if opts.Difficulty != "" {
		config.ApplyPlatformerPreset(&cfg, opts.Difficulty)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Game{
		level:      level,
		opts:       opts,
		cfg:        cfg,
		controller: NewController(cfg.Input),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID returns the level id.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level title.
func (g *Game) Title() string {
	if g.level.Title == "" {
		return g.level.ID
	}
	return g.level.Title
}

// Difficulty returns the level's difficulty label.
func (g *Game) Difficulty() string {
	return g.level.Difficulty
}

// Level returns the level being played.
func (g *Game) Level() *levels.Level {
	return g.level
}

// World returns the running world, nil before Reset.
func (g *Game) World() *world.World {
	return g.world
}

// Reset builds the level and starts a fresh attempt.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = g.cfg.Gameplay.FPS
	}
	g.runtime = rc
	g.attempts = 0
	g.rebuild()
}

// rebuild loads the level into a new world.
func (g *Game) rebuild() {
	if g.world == nil {
		g.world = world.New(world.WithLogger(g.opts.Logger))
	}
	if _, err := g.level.Build(g.world); err != nil {
		// Built-in and loaded levels are validated, so this only happens
		// for levels mutated after loading.
		g.opts.Logger.Error("level build failed", "level", g.level.ID, "err", err)
		g.world.CreateWorld(0, 0)
	}

	grid := g.world.Grid()
	grid.Countdown = g.difficulty.Countdown(grid.Countdown)
	if p := g.world.Player(); p != nil {
		pc := g.cfg.Player
		p.Agility.Configure(pc.Acceleration, pc.Deceleration, pc.MaxSpeed, pc.MinJump,
			g.difficulty.MaxJump(pc.MaxJump, pc.MinJump))
	}

	g.tracker = physics.NewDeltaTracker(g.runtime.TickRate)
	g.controller.Reset()
	g.paused = false
	g.restart = false
	g.recorded = false
	g.ticks = 0
	g.attempts++

	now := g.opts.Now().UnixMilli()
	g.world.SetLive(true)
	g.world.ResetTimer(now)
	g.world.ResetRoutines(now)
	g.fitW, g.fitH = 0, 0
	g.fitViewport(g.runtime.ScreenW, g.runtime.ScreenH)

	g.opts.Logger.Debug("level started", "level", g.level.ID, "attempt", g.attempts,
		"countdown", grid.Countdown, "difficulty", g.difficulty.Level())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(g.runtime)
	}
	if g.restart {
		g.rebuild()
	}

	state := g.world.State()

	if in.Has(core.ActionPause) && (g.paused || state == core.StatePlaying) {
		g.paused = !g.paused
		g.tracker.SetPaused(g.paused)
	}
	if in.Has(core.ActionRestart) && !g.paused && !state.Terminal() && state != core.StateViewStats {
		g.rebuild()
		state = g.world.State()
	}
	if state == core.StateViewStats && (in.Has(core.ActionConfirm) || in.Has(core.ActionBack)) {
		g.world.SetState(core.StateBackToMenu)
	}

	g.clock = g.tracker.Tick(g.opts.Now())
	g.world.Update(g.clock)
	if !g.clock.Paused {
		g.controller.Apply(in, g.clock, g.world.Player())
		g.ticks++
	}

	g.finishAttempt()
	return core.StepResult{State: g.State()}
}

// finishAttempt records the run once the world reaches a final state and
// schedules a rebuild after a failed attempt.
func (g *Game) finishAttempt() {
	switch g.world.State() {
	case core.StateViewStats:
		g.record(true)
	case core.StateRestart:
		g.record(false)
		g.restart = true
	}
}

func (g *Game) record(completed bool) {
	if g.recorded {
		return
	}
	g.recorded = true

	run := storage.Run{
		LevelID:    g.level.ID,
		Difficulty: string(g.opts.Difficulty),
		Score:      g.world.Score(),
		TimeMs:     g.PlayTime(),
		Completed:  completed,
	}
	g.opts.Logger.Info("run finished", "level", run.LevelID, "completed", completed,
		"score", run.Score, "time_ms", run.TimeMs)

	if g.opts.Recorder == nil {
		return
	}
	if err := g.opts.Recorder.Record(run); err != nil {
		g.opts.Logger.Warn("saving run failed", "level", run.LevelID, "err", err)
	}
}

// PlayTime returns the milliseconds spent in the current attempt.
func (g *Game) PlayTime() int64 {
	if g.world == nil {
		return 0
	}
	if countdown := g.world.Grid().Countdown; countdown > 0 {
		return countdown - g.world.Elapsed()
	}
	return g.world.Elapsed()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	s := g.world.State()
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: s == core.StateViewStats || s.Terminal(),
		Paused:   g.paused,
	}
}

// WorldState returns the phase of the current attempt.
func (g *Game) WorldState() core.WorldState {
	if g.world == nil {
		return core.StatePlaying
	}
	return g.world.State()
}

// Done reports whether the player left the level.
func (g *Game) Done() bool {
	return g.WorldState() == core.StateBackToMenu
}

// Clock returns the clock of the last step.
func (g *Game) Clock() physics.Clock {
	return g.clock
}

// Ticks returns the number of unpaused steps in the current attempt.
func (g *Game) Ticks() int {
	return g.ticks
}

// Attempts returns how many times the level was built since Reset.
func (g *Game) Attempts() int {
	return g.attempts
}

// Controller returns the input controller.
func (g *Game) Controller() *Controller {
	return g.controller
}

var (
	_ registry.Game     = (*Game)(nil)
	_ registry.Finisher = (*Game)(nil)
	_ registry.Rated    = (*Game)(nil)
)
