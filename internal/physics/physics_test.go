package physics

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestClockScaling(t *testing.T) {
	tests := []struct {
		name      string
		tickRate  int
		perSecond float64
		ratio60   float64
	}{
		{"60 Hz", 60, 32.0 / 60, 32.0 / 60},
		{"30 Hz", 30, 32.0 / 30, 32.0 / 30 * 2},
		{"120 Hz", 120, 32.0 / 120, 32.0 / 120 / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := FixedClock(tc.tickRate)
			if got := c.PerSecond(32); !near(got, tc.perSecond) {
				t.Errorf("PerSecond(32) = %v, expected %v", got, tc.perSecond)
			}
			if got := c.Ratio60(32); !near(got, tc.ratio60) {
				t.Errorf("Ratio60(32) = %v, expected %v", got, tc.ratio60)
			}
		})
	}
}

func TestRatio60ZeroDelta(t *testing.T) {
	c := Clock{AverageDelta: 0.02}
	if got := c.Ratio60(10); !near(got, 0.2) {
		t.Errorf("Ratio60 with zero delta = %v, expected PerSecond fallback 0.2", got)
	}
}

func TestLimitDelta(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{10, 10},
		{40, 32},
		{-40, -32},
		{-32, -32},
	}
	for _, tc := range tests {
		if got := LimitDelta(tc.in); got != tc.expected {
			t.Errorf("LimitDelta(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestDeltaTracker(t *testing.T) {
	tr := NewDeltaTracker(60)
	start := time.UnixMilli(1_000_000)

	c := tr.Tick(start)
	if !near(c.Delta, 1.0/60) {
		t.Errorf("first tick delta = %v, expected nominal", c.Delta)
	}
	if c.Now != 1_000_000 {
		t.Errorf("Now = %d, expected 1000000", c.Now)
	}

	c = tr.Tick(start.Add(50 * time.Millisecond))
	if !near(c.Delta, 0.05) {
		t.Errorf("measured delta = %v, expected 0.05", c.Delta)
	}
	if !near(c.AverageDelta, (1.0/60+0.05)/2) {
		t.Errorf("AverageDelta = %v", c.AverageDelta)
	}

	// a stall longer than MaxDelta falls back to the nominal frame
	c = tr.Tick(start.Add(5 * time.Second))
	if !near(c.Delta, 1.0/60) {
		t.Errorf("stalled delta = %v, expected nominal", c.Delta)
	}

	tr.SetPaused(true)
	if c = tr.Tick(start.Add(5*time.Second + 16*time.Millisecond)); !c.Paused {
		t.Error("clock should carry the pause flag")
	}
}

func TestDeltaTrackerWindow(t *testing.T) {
	tr := NewDeltaTracker(60)
	now := time.UnixMilli(0)
	tr.Tick(now)
	for i := 0; i < 40; i++ {
		now = now.Add(20 * time.Millisecond)
		tr.Tick(now)
	}
	c := tr.Tick(now.Add(20 * time.Millisecond))
	if !near(c.AverageDelta, 0.02) {
		t.Errorf("AverageDelta after a full window = %v, expected 0.02", c.AverageDelta)
	}
}

func TestValueNeverExceedsScaledMax(t *testing.T) {
	c := FixedClock(60)
	v := NewValue(10, 10, 300, 200)

	for i := 0; i < 200; i++ {
		v.AcceleratePositive(c)
		if v.Positive > c.PerSecond(v.MaxPositive)+eps {
			t.Fatalf("Positive = %v exceeds scaled max %v", v.Positive, c.PerSecond(v.MaxPositive))
		}
	}
	if !near(v.Positive, 5) {
		t.Errorf("Positive = %v, expected to saturate at 5", v.Positive)
	}

	for i := 0; i < 200; i++ {
		v.AccelerateNegative(c)
	}
	if !near(v.Negative, 200.0/60) {
		t.Errorf("Negative = %v, expected %v", v.Negative, 200.0/60)
	}
	if !near(v.Sum(), 5-200.0/60) {
		t.Errorf("Sum() = %v", v.Sum())
	}
}

func TestValueDecelerateFloorsAtZero(t *testing.T) {
	c := FixedClock(60)
	v := NewValue(10, 10, 300, 300)
	v.AcceleratePositive(c)
	for i := 0; i < 10; i++ {
		v.DeceleratePositive(c)
	}
	if v.Positive != 0 {
		t.Errorf("Positive = %v, expected 0", v.Positive)
	}

	v.AcceleratePositive(c)
	v.Reset()
	if v.Positive != 0 || v.Negative != 0 {
		t.Error("Reset() should zero both magnitudes")
	}
}

func TestValueMaxFollowsFrameTime(t *testing.T) {
	v := NewValue(1000, 10, 300, 300)
	v.AcceleratePositive(FixedClock(30))
	if !near(v.Positive, 10) {
		t.Errorf("30 Hz ceiling = %v, expected 10", v.Positive)
	}
	v.AcceleratePositive(FixedClock(60))
	if !near(v.Positive, 5) {
		t.Errorf("60 Hz ceiling = %v, expected 5", v.Positive)
	}
}

func TestAgilityDirectionIsOneFrame(t *testing.T) {
	c := FixedClock(60)
	a := NewAgility()

	a.Accelerate(false)
	a.Update(c)
	if a.Direction() != DirectionNone {
		t.Error("direction should reset after Update")
	}
	first := a.Velocity.Sum()
	if first <= 0 {
		t.Fatalf("velocity after accelerating east = %v", first)
	}

	a.Update(c)
	if a.Velocity.Sum() >= first {
		t.Error("velocity should decay without input")
	}

	a.Accelerate(true)
	a.Update(c)
	a.Accelerate(true)
	a.Update(c)
	if a.Velocity.Sum() >= 0 {
		t.Errorf("velocity after accelerating west = %v", a.Velocity.Sum())
	}
}

func TestAgilityJumpArc(t *testing.T) {
	c := FixedClock(60)
	a := NewAgility()
	a.Jump()

	if !a.IsJumping() {
		t.Fatal("Jump() should start rising")
	}

	prev := 0.0
	rising := 0
	for a.IsJumping() {
		a.Update(c)
		if a.IsJumping() && a.IsFalling() {
			t.Fatal("IsJumping and IsFalling both true")
		}
		if a.IsJumping() {
			if a.JumpHeight() <= prev {
				t.Fatalf("jump height not monotonic: %v after %v", a.JumpHeight(), prev)
			}
			prev = a.JumpHeight()
		}
		rising++
		if rising > 600 {
			t.Fatal("jump never reached its target")
		}
	}

	// apex resets vertical state
	if a.JumpHeight() != 0 || a.JumpTarget() != 0 || a.JumpDelta() != 0 {
		t.Errorf("apex state = (%v, %v, %v), expected zeros", a.JumpHeight(), a.JumpTarget(), a.JumpDelta())
	}

	a.Update(c)
	if !a.IsFalling() {
		t.Error("expected to fall after the apex")
	}
	if !near(a.JumpDelta(), -c.Ratio60(32)) {
		t.Errorf("first fall step = %v", a.JumpDelta())
	}
}

func TestAgilityJumpWithoutGravityHovers(t *testing.T) {
	c := FixedClock(60)
	a := NewAgility()
	a.SetGravityEnabled(false)
	for i := 0; i < 10; i++ {
		a.Update(c)
	}
	if a.JumpDelta() != 0 || a.IsFalling() {
		t.Errorf("without gravity delta = %v", a.JumpDelta())
	}
}

func TestAgilityExtendJump(t *testing.T) {
	a := NewAgility()
	a.Configure(8, 10, 260, 76, 160)

	tests := []struct {
		name        string
		height      float64
		overrideMax bool
		expected    float64
	}{
		{"below min", 10, false, 76},
		{"in range", 120, false, 120},
		{"above max", 500, false, 160},
		{"override", 400, true, 400},
		{"override hard limit", 20000, true, 9999},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a.Jump()
			a.ExtendJump(tc.height, tc.overrideMax)
			if a.JumpTarget() != tc.expected {
				t.Errorf("JumpTarget() = %v, expected %v", a.JumpTarget(), tc.expected)
			}
		})
	}
}

func TestRepulsionVector(t *testing.T) {
	tests := []struct {
		angle  float64
		dx, dy float64
	}{
		{0, 3, 0},
		{90, 0, 3},
		{180, -3, 0},
	}

	for _, tc := range tests {
		r := Repulsion{Force: 3, Angle: tc.angle}
		v := r.Vector()
		if !near(v.X, tc.dx) || !near(v.Y, tc.dy) {
			t.Errorf("angle %v: vector = (%v, %v), expected (%v, %v)", tc.angle, v.X, v.Y, tc.dx, tc.dy)
		}
	}
}

func TestAgilityRepulsionCountsTwice(t *testing.T) {
	c := FixedClock(60)
	a := NewAgility()
	a.AddRepulsion(3, 0, 7)

	dx, dy := a.Delta(c)
	// 3 * Ratio60(1) on each of the two contributions
	if !near(dx, 2*3.0/60) {
		t.Errorf("dx = %v, expected %v", dx, 2*3.0/60)
	}
	if !near(dy, 0) {
		t.Errorf("dy = %v, expected 0", dy)
	}

	a.ClearRepulsions()
	a.AddRepulsion(3, 90, 7)
	_, dy = a.Delta(c)
	if !near(dy, 2*3.0/60) {
		t.Errorf("dy = %v, expected %v", dy, 2*3.0/60)
	}
}

func TestAgilityRepulsionExpires(t *testing.T) {
	c := FixedClock(60)
	a := NewAgility()
	a.SetGravityEnabled(false)
	a.AddRepulsion(3, 0, 7)

	for i := 0; i < 25; i++ {
		a.Update(c)
	}
	if a.Repulsions() != 1 {
		t.Fatalf("Repulsions() = %d after 25 ticks, expected 1", a.Repulsions())
	}
	a.Update(c)
	if a.Repulsions() != 0 {
		t.Errorf("Repulsions() = %d after 26 ticks, expected 0", a.Repulsions())
	}
}
