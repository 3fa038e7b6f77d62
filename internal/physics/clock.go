// Package physics holds the frame-rate independent kinematics used by every
// moving entity: the simulation clock, clamped velocity values, decaying
// repulsion forces and the per-entity Agility state.
package physics

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Clock describes the frame being simulated. It is passed by value into
// every update so nothing reads frame timing from global state.
type Clock struct {
	Delta        float64 // seconds elapsed during this frame
	AverageDelta float64 // rolling mean of recent frame times, in seconds
	Now          int64   // wall time in milliseconds
	Paused       bool
}

// FixedClock returns a clock whose frame time is exactly 1/tickRate.
func FixedClock(tickRate int) Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	d := 1 / float64(tickRate)
	return Clock{Delta: d, AverageDelta: d}
}

// At returns a copy of the clock with Now set to ms.
func (c Clock) At(ms int64) Clock {
	c.Now = ms
	return c
}

// PerSecond converts a per-second quantity into this frame's share of it.
func (c Clock) PerSecond(a float64) float64 {
	return a * c.AverageDelta
}

// Ratio60 scales a per-second quantity and normalizes it against a 60 Hz
// frame rate. Quantities tuned at 60 Hz (gravity, acceleration) use this.
func (c Clock) Ratio60(a float64) float64 {
	if c.Delta <= 0 {
		return c.PerSecond(a)
	}
	return c.PerSecond(a) * 60 * c.Delta
}

// LimitDelta clamps a per-frame displacement to half a cell so no entity can
// tunnel through a tile in a single move.
func LimitDelta(v float64) float64 {
	return core.ClampF(v, -core.CellSize/2, core.CellSize/2)
}

const (
	deltaSamples = 16

	// MaxDelta caps a single measured frame. Longer gaps (a stalled
	// terminal, a suspended process) are replaced by the nominal delta.
	MaxDelta = 250 * time.Millisecond
)

// DeltaTracker measures frame times and produces the Clock for each frame.
type DeltaTracker struct {
	nominal float64
	window  [deltaSamples]float64
	count   int
	next    int
	last    time.Time
	paused  bool
}

// NewDeltaTracker creates a tracker for the given nominal tick rate.
func NewDeltaTracker(tickRate int) *DeltaTracker {
	return &DeltaTracker{nominal: FixedClock(tickRate).Delta}
}

// SetPaused sets the pause flag carried by subsequent clocks.
func (t *DeltaTracker) SetPaused(p bool) {
	t.paused = p
}

// Paused reports the current pause flag.
func (t *DeltaTracker) Paused() bool {
	return t.paused
}

// Tick records a frame ending at now and returns its clock.
func (t *DeltaTracker) Tick(now time.Time) Clock {
	delta := t.nominal
	if !t.last.IsZero() {
		elapsed := now.Sub(t.last)
		if elapsed > 0 && elapsed <= MaxDelta {
			delta = elapsed.Seconds()
		}
	}
	t.last = now

	t.window[t.next] = delta
	t.next = (t.next + 1) % deltaSamples
	if t.count < deltaSamples {
		t.count++
	}

	return Clock{
		Delta:        delta,
		AverageDelta: stat.Mean(t.window[:t.count], nil),
		Now:          now.UnixMilli(),
		Paused:       t.paused,
	}
}

// Reset forgets all samples; the next tick uses the nominal delta.
func (t *DeltaTracker) Reset() {
	t.count = 0
	t.next = 0
	t.last = time.Time{}
}
