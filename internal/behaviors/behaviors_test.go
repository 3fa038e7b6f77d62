package behaviors

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

var fixed = physics.FixedClock(60)

// newWorld creates a live world with a solid floor on row 0.
func newWorld(cols, rows int) *world.World {
	w := world.New()
	w.CreateWorld(cols, rows)
	w.SetCells(core.NewRectF(0, 0, float64(cols*core.CellSize), 1), 0)
	w.Grid().FinishArea = core.NewRectF(-1000, -1000, 1, 1)
	return w
}

// run advances w by n ticks starting at start ms, 16 ms apart, and returns
// the time of the next tick.
func run(w *world.World, start int64, n int) int64 {
	now := start
	for i := 0; i < n; i++ {
		w.Update(fixed.At(now))
		now += 16
	}
	return now
}

func addPlayer(w *world.World, x, y float64) *entity.Entity {
	p := NewPlayer()
	w.Spawn(p, x, y, false)
	w.SetPlayer(p)
	return p
}

func TestAllKindsRegistered(t *testing.T) {
	kinds := []entity.Kind{
		KindPlayer, KindSnail, KindJumper, KindSpringboard, KindTreadmill,
		KindCannon, KindCannonLeft, KindCannonUp, KindCannonDown,
		KindCannonBall, KindBox, KindDonut, KindCup,
		KindSpikes, KindPlatform, KindSwitch, KindTrap,
	}
	for _, k := range kinds {
		t.Run(string(k), func(t *testing.T) {
			e, err := entity.Create(k)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", k, err)
			}
			if e.Kind != k {
				t.Errorf("Kind = %q", e.Kind)
			}
		})
	}
}

func TestPlayerDefaults(t *testing.T) {
	p := NewPlayer()
	if p.Bounds.W != 42 || p.Bounds.H != 84 {
		t.Errorf("size = %vx%v, expected 42x84", p.Bounds.W, p.Bounds.H)
	}
	if p.BlockingSpace {
		t.Error("player should not block space")
	}
	if p.Agility.MinJumpHeight != 76 || p.Agility.MaxJumpHeight != 160 {
		t.Errorf("jump range = %v..%v", p.Agility.MinJumpHeight, p.Agility.MaxJumpHeight)
	}
}

func TestPlayerDeathSequence(t *testing.T) {
	w := newWorld(10, 6)
	p := addPlayer(w, 100, 64)
	now := run(w, 1000, 20)

	p.Kill()
	if !p.IsAlive() || !IsDying(p) {
		t.Fatal("kill in play mode should start the death sequence")
	}
	if w.State() != core.StatePlayerDies {
		t.Errorf("state = %v, expected player-dies", w.State())
	}

	// a second kill while dying changes nothing
	p.Kill()
	if !p.IsAlive() {
		t.Fatal("player should stay alive during the sequence")
	}

	now = run(w, now, 60) // ~1 s
	if !p.IsAlive() || p.Frame != FrameDead {
		t.Errorf("alive=%v frame=%d, expected the dead frame", p.IsAlive(), p.Frame)
	}

	run(w, now, 180) // ~3 s more
	if p.IsAlive() {
		t.Error("player should die once the sequence ends")
	}
	if w.State() != core.StateRestart {
		t.Errorf("state = %v, expected restart", w.State())
	}
	if p.Behavior().(*Player).DeathOffset >= 0 {
		t.Error("body should have dropped")
	}
}

func TestPlayerDiesImmediatelyInEditMode(t *testing.T) {
	w := newWorld(10, 6)
	w.SetLive(false)
	p := addPlayer(w, 100, 64)

	p.Kill()
	if p.IsAlive() {
		t.Error("player should die immediately outside play mode")
	}
	if w.State() != core.StatePlaying {
		t.Errorf("state = %v, expected unchanged", w.State())
	}
}

func TestSnailPatrolsLedge(t *testing.T) {
	w := newWorld(10, 6)
	// floor only under the first five columns
	w.SetCells(core.NewRectF(320, 0, 320, 1), -1)

	s := NewSnail()
	w.Spawn(s, 64, 64, false)

	turns := 0
	last := s.Routine
	now := int64(1000)
	for i := 0; i < 20*60; i++ {
		w.Update(fixed.At(now))
		now += 16

		if s.Routine != last {
			turns++
			last = s.Routine
		}
		if s.Bounds.X < 0 || s.Bounds.CenterX() > 320 {
			t.Fatalf("tick %d: snail left its ledge at x=%v", i, s.Bounds.X)
		}
	}

	if !s.IsAlive() {
		t.Fatal("snail should not fall off")
	}
	if turns < 2 {
		t.Errorf("turns = %d, expected the snail to patrol back and forth", turns)
	}
}

func TestJumperHops(t *testing.T) {
	w := newWorld(5, 8)
	j := NewJumper()
	w.Spawn(j, 64, 64, false)

	peak := 0.0
	for i := 0; i < 120; i++ {
		w.Update(fixed)
		peak = max(peak, j.Bounds.Y)
	}
	if peak < 64+150 {
		t.Errorf("peak = %v, expected a jump of about 220", peak)
	}
}

func TestSpringboardLaunches(t *testing.T) {
	w := newWorld(6, 14)
	w.Spawn(NewSpringboard(), 128, 64, false)

	faller := entity.New("crate", nil)
	faller.BlockingSpace = false
	w.Spawn(faller, 140, 200, false)

	peak := 0.0
	for i := 0; i < 180; i++ {
		w.Update(fixed)
		peak = max(peak, faller.Bounds.Y)
	}
	if peak < 400 {
		t.Errorf("peak = %v, expected a launch of about 400", peak)
	}
}

func TestTreadmillPushes(t *testing.T) {
	tests := []struct {
		name  string
		power bool
		moved bool
	}{
		{"powered", true, true},
		{"unpowered", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(10, 6)
			tm := NewTreadmill()
			tm.PowerOn = tc.power
			w.Spawn(tm, 128, 64, false)

			box := NewBox()
			w.Spawn(box, 128, 130, false)

			run(w, 1000, 30)
			moved := box.Bounds.X > 138
			if moved != tc.moved {
				t.Errorf("box x = %v, moved = %v, expected %v", box.Bounds.X, moved, tc.moved)
			}
		})
	}
}

func TestCannonFiresAndBallBreaks(t *testing.T) {
	w := newWorld(10, 6)
	w.SetCells(core.NewRectF(384, 64, 64, 128), 0)

	cannon := NewCannon()
	w.Spawn(cannon, 64, 80, false)

	now := run(w, 1000, 1)
	if n := len(w.Entities()); n != 2 {
		t.Fatalf("len(Entities()) = %d, expected the cannon and a ball", n)
	}
	ball := w.Entities()[1]
	if ball.Kind != KindCannonBall {
		t.Fatalf("spawned %q, expected a cannon ball", ball.Kind)
	}
	if ball.Bounds.X != cannon.Bounds.Right() {
		t.Errorf("ball x = %v, expected at the muzzle %v", ball.Bounds.X, cannon.Bounds.Right())
	}

	run(w, now, 150)
	if ball.IsAlive() {
		t.Error("ball should break on the wall")
	}
	if n := len(w.Entities()); n != 1 {
		t.Errorf("len(Entities()) = %d, expected the broken ball to be purged", n)
	}
}

func TestCannonHeadings(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *entity.Entity
		wall    core.RectF
		muzzle  func(cannon, ball core.RectF) bool
		forward func(before, after core.RectF) bool
	}{
		{
			"east", NewCannon,
			core.NewRectF(512, 64, 64, 448),
			func(c, b core.RectF) bool { return b.X == c.Right() },
			func(a, b core.RectF) bool { return b.X > a.X && b.Y == a.Y },
		},
		{
			"west", NewCannonLeft,
			core.NewRectF(64, 64, 64, 448),
			func(c, b core.RectF) bool { return b.Right() == c.X },
			func(a, b core.RectF) bool { return b.X < a.X && b.Y == a.Y },
		},
		{
			"up", NewCannonUp,
			core.NewRectF(0, 384, 640, 64),
			func(c, b core.RectF) bool { return b.Y == c.Top() && b.CenterX() == c.CenterX() },
			func(a, b core.RectF) bool { return b.Y > a.Y && b.X == a.X },
		},
		{
			"down", NewCannonDown,
			core.NewRectF(0, 0, 640, 64),
			func(c, b core.RectF) bool { return b.Top() == c.Y && b.CenterX() == c.CenterX() },
			func(a, b core.RectF) bool { return b.Y < a.Y && b.X == a.X },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(10, 8)
			w.SetCells(tc.wall, 0)

			cannon := tc.build()
			w.Spawn(cannon, 256, 192, false)

			now := run(w, 1000, 1)
			if n := len(w.Entities()); n != 2 {
				t.Fatalf("len(Entities()) = %d, expected the cannon and a ball", n)
			}
			ball := w.Entities()[1]
			if ball.Kind != KindCannonBall {
				t.Fatalf("spawned %q, expected a cannon ball", ball.Kind)
			}
			if !tc.muzzle(cannon.Bounds, ball.Bounds) {
				t.Errorf("ball at %+v, expected flush with the muzzle of %+v", ball.Bounds, cannon.Bounds)
			}

			start := ball.Bounds
			now = run(w, now, 5)
			if !ball.IsAlive() || !tc.forward(start, ball.Bounds) {
				t.Errorf("ball moved from %+v to %+v, alive = %v", start, ball.Bounds, ball.IsAlive())
			}

			run(w, now, 150)
			if ball.IsAlive() {
				t.Errorf("ball at %+v should break on the wall", ball.Bounds)
			}
			if n := len(w.Entities()); n != 1 {
				t.Errorf("len(Entities()) = %d, expected the broken ball to be purged", n)
			}
		})
	}
}

func TestHazardsKillPlayer(t *testing.T) {
	tests := []struct {
		name  string
		build func() *entity.Entity
		dies  bool
	}{
		{"snail", NewSnail, true},
		{"jumper", NewJumper, true},
		{"cannon ball", func() *entity.Entity { return NewCannonBall(HeadingEast) }, true},
		{"spikes", NewSpikes, true},
		{"resting box", NewBox, false},
		{"springboard", NewSpringboard, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(10, 6)
			p := addPlayer(w, 100, 64)
			run(w, 1000, 5)

			h := tc.build()
			h.IgnoreGravity = true
			h.Agility.ResetJump()
			w.Spawn(h, p.Bounds.X, p.Bounds.Y, false)
			w.Update(fixed.At(2000))
			w.Update(fixed.At(2016))

			if IsDying(p) != tc.dies {
				t.Errorf("dying = %v, expected %v", IsDying(p), tc.dies)
			}
		})
	}
}

func TestFallingBoxCrushes(t *testing.T) {
	w := newWorld(10, 8)
	p := addPlayer(w, 100, 64)
	w.Spawn(NewBox(), 90, 300, false)

	run(w, 1000, 120)
	if !IsDying(p) {
		t.Error("falling box should crush the player")
	}
}

func TestItemsScoreOnce(t *testing.T) {
	tests := []struct {
		build func() *entity.Entity
		score int
		text  string
	}{
		{NewDonut, 50, "50"},
		{NewCup, 700, "700"},
	}

	for _, tc := range tests {
		item := tc.build()
		t.Run(string(item.Kind), func(t *testing.T) {
			w := newWorld(10, 6)
			addPlayer(w, 100, 64)
			w.Spawn(item, 110, 80, false)

			run(w, 1000, 10)
			if w.Score() != tc.score {
				t.Errorf("score = %d, expected %d", w.Score(), tc.score)
			}
			if item.IsAlive() {
				t.Error("collected item should die")
			}
			found := false
			for _, pp := range w.Popups() {
				if pp.Text == tc.text {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a %q popup", tc.text)
			}
		})
	}
}

func TestItemsIgnoredInEditMode(t *testing.T) {
	w := newWorld(10, 6)
	w.SetLive(false)
	addPlayer(w, 100, 64)
	d := NewDonut()
	w.Spawn(d, 110, 80, false)

	run(w, 1000, 10)
	if w.Score() != 0 || !d.IsAlive() {
		t.Error("items should not be collected while editing")
	}
}

func TestSpikesBlockFromTheSide(t *testing.T) {
	tests := []struct {
		name     string
		playerX  float64
		playerY  float64
		blocking bool
	}{
		{"player to the left", 50, 64, true},
		{"player to the right", 160, 64, true},
		{"player above", 110, 110, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(10, 6)
			w.SetLive(false)
			s := NewSpikes()
			w.Spawn(s, 100, 64, false)
			p := addPlayer(w, tc.playerX, tc.playerY)
			p.IgnoreGravity = true
			s.BlockingSpace = !tc.blocking

			w.Update(fixed)
			if s.BlockingSpace != tc.blocking {
				t.Errorf("BlockingSpace = %v, expected %v", s.BlockingSpace, tc.blocking)
			}
		})
	}
}

func TestPlatformCycle(t *testing.T) {
	w := newWorld(10, 6)
	pl := NewPlatform()
	w.Spawn(pl, 192, 192, false)

	steps := []struct {
		now      int64
		routine  int
		blocking bool
	}{
		{1000, PlatformOn, true},
		{5999, PlatformOn, true},
		{6001, PlatformTransition, true},
		{9002, PlatformOff, false},
		{14003, PlatformOn, true},
	}
	for _, s := range steps {
		w.Update(fixed.At(s.now))
		if pl.Routine != s.routine || pl.BlockingSpace != s.blocking {
			t.Errorf("at %d: routine=%d blocking=%v, expected %d/%v",
				s.now, pl.Routine, pl.BlockingSpace, s.routine, s.blocking)
		}
	}

	pl.PowerOn = false
	w.Update(fixed.At(15000))
	if pl.Routine != PlatformOff || pl.BlockingSpace {
		t.Error("unpowered platform should switch off")
	}
	if pl.Alpha != 0.04 {
		t.Errorf("Alpha = %v, expected 0.04 when unpowered", pl.Alpha)
	}
}

func TestSwitchTogglesPowerGroup(t *testing.T) {
	w := newWorld(10, 6)

	sw := NewSwitch()
	sw.PowerID = 3
	w.Spawn(sw, 100, 64, false)

	same := NewPlatform()
	same.PowerID = 3
	w.Spawn(same, 320, 192, false)

	other := NewPlatform()
	other.PowerID = 4
	w.Spawn(other, 448, 192, false)

	p := addPlayer(w, 100, 64)
	run(w, 1000, 2)

	if !p.Use() {
		t.Fatal("Use() should reach the switch")
	}
	if same.PowerOn || sw.PowerOn {
		t.Error("same power group should be switched off")
	}
	if !other.PowerOn {
		t.Error("other power group should be untouched")
	}
	popups := w.Popups()
	if len(popups) != 1 || popups[0].Text != "off" {
		t.Errorf("popups = %v, expected an off notice", popups)
	}

	p.Use()
	if !same.PowerOn || !sw.PowerOn {
		t.Error("second use should switch the group back on")
	}
}

func TestTrapToggles(t *testing.T) {
	w := newWorld(10, 6)
	p := addPlayer(w, 400, 64)
	trap := NewTrap()
	w.Spawn(trap, 100, 64, false)

	w.Update(fixed.At(1000))
	if trap.Routine != TrapOff || trap.RoutineTimer != 5000 {
		t.Fatalf("routine=%d timer=%d, expected off until 5000", trap.Routine, trap.RoutineTimer)
	}

	w.Update(fixed.At(5001))
	if trap.Routine != TrapOn {
		t.Fatal("trap should switch on")
	}

	p.SetPosition(trap.Bounds.X, trap.Bounds.Y, false)
	w.Update(fixed.At(5017))
	if !IsDying(p) {
		t.Error("active trap should kill the player")
	}

	w.Update(fixed.At(9002))
	if trap.Routine != TrapOff {
		t.Error("trap should switch off again")
	}
}
