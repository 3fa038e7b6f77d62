package platformer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// scriptActions names the actions a script can press.
var scriptActions = map[string]core.Action{
	"wait":    core.ActionNone,
	"left":    core.ActionLeft,
	"right":   core.ActionRight,
	"jump":    core.ActionJump,
	"use":     core.ActionUse,
	"pause":   core.ActionPause,
	"restart": core.ActionRestart,
	"confirm": core.ActionConfirm,
}

// ScriptStep presses a set of actions for a number of ticks.
type ScriptStep struct {
	Actions []core.Action
	Ticks   int
}

// Script is a sequence of input steps. After the last step no keys are
// pressed.
type Script []ScriptStep

// ParseScript reads a comma separated list of steps. A step is one or more
// action names joined by '+', optionally followed by '*' and a tick count:
//
//	right*90,right+jump*20,wait*30,use
func ParseScript(s string) (Script, error) {
	var script Script
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		names, count, hasCount := strings.Cut(part, "*")
		step := ScriptStep{Ticks: 1}
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("platformer: script step %q: bad tick count", part)
			}
			step.Ticks = n
		}
		for _, name := range strings.Split(names, "+") {
			a, ok := scriptActions[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, fmt.Errorf("platformer: script step %q: unknown action %q", part, name)
			}
			if a != core.ActionNone {
				step.Actions = append(step.Actions, a)
			}
		}
		script = append(script, step)
	}
	return script, nil
}

// Len returns the number of ticks the script covers.
func (s Script) Len() int {
	n := 0
	for _, step := range s {
		n += step.Ticks
	}
	return n
}

// Frame returns the input for tick (0-based).
func (s Script) Frame(tick int) core.InputFrame {
	in := core.NewInputFrame()
	for _, step := range s {
		if tick < step.Ticks {
			for _, a := range step.Actions {
				in.Set(a)
			}
			return in
		}
		tick -= step.Ticks
	}
	return in
}

// Outcome summarizes a simulation.
type Outcome struct {
	Ticks     int
	State     core.WorldState
	Score     int
	TimeMs    int64
	Completed bool
	Attempts  int
}

// Simulation runs a level headless on a fixed frame clock.
type Simulation struct {
	Game   *Game
	script Script
	now    time.Time
	frame  time.Duration
}

// NewSimulation creates a simulation of level at fps frames per second.
// opts.Now is replaced by the simulation clock.
func NewSimulation(level *levels.Level, opts Options, script Script, fps int) *Simulation {
	if fps <= 0 {
		fps = 60
	}
	s := &Simulation{
		script: script,
		now:    time.UnixMilli(0),
		frame:  time.Second / time.Duration(fps),
	}
	opts.Now = func() time.Time { return s.now }
	s.Game = New(level, opts)
	s.Game.Reset(core.RuntimeConfig{TickRate: fps})
	return s
}

// Run steps the level up to maxTicks times. It stops early when the level
// is completed, or after the first failed attempt unless retry is set.
// observe, when not nil, is called after every tick.
func (s *Simulation) Run(maxTicks int, retry bool, observe func(tick int, g *Game)) Outcome {
	g := s.Game
	out := Outcome{}

	for tick := 0; tick < maxTicks; tick++ {
		s.now = s.now.Add(s.frame)
		g.Step(s.script.Frame(tick))
		out.Ticks = tick + 1
		if observe != nil {
			observe(tick, g)
		}

		state := g.WorldState()
		if state == core.StateViewStats || state == core.StateBackToMenu {
			out.Completed = true
			break
		}
		if state == core.StateRestart && !retry {
			break
		}
	}

	out.State = g.WorldState()
	out.Score = g.World().Score()
	out.TimeMs = g.PlayTime()
	out.Attempts = g.Attempts()
	return out
}
