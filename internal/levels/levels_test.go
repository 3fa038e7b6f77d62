package levels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/behaviors"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

const smallLevel = `
id: small
title: Small
countdown: 30
water_height: 12
water_speed: 4
tiles: |
  ....
  ..=.
  ####
start: {col: 0, row: 1}
finish: {col: 3, row: 1}
entities:
  - {kind: switch, col: 1, row: 1, power: 3}
  - {kind: platform, col: 3, row: 2, power: 3, power_off: true}
`

func TestBuiltinLevels(t *testing.T) {
	all, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	if len(all) < 2 {
		t.Fatalf("expected at least 2 builtin levels, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("levels not sorted: %q before %q", all[i-1].ID, all[i].ID)
		}
	}

	for _, l := range all {
		t.Run(l.ID, func(t *testing.T) {
			w := world.New()
			p, err := l.Build(w)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if w.Player() != p {
				t.Error("built player is not the world player")
			}
			// The player must start on solid ground.
			below := w.Grid().CellAt(p.Bounds.CenterX(), p.Bounds.Y-1)
			if below == nil || !below.Occupied() {
				t.Error("player does not start on a tile")
			}
		})
	}
}

func TestGet(t *testing.T) {
	l, err := Get("meadow")
	if err != nil {
		t.Fatalf("Get(meadow) error: %v", err)
	}
	if l.ID != "meadow" {
		t.Errorf("ID = %q, expected meadow", l.ID)
	}

	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestGetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	if err := os.WriteFile(path, []byte(smallLevel), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Get(path)
	if err != nil {
		t.Fatalf("Get(%s) error: %v", path, err)
	}
	if l.ID != "small" || l.FilePath != path {
		t.Errorf("got id %q path %q", l.ID, l.FilePath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr string
	}{
		{
			name:    "missing id",
			level:   "tiles: \"#\"\n",
			wantErr: "missing id",
		},
		{
			name:    "no tiles",
			level:   "id: x\n",
			wantErr: "no tiles",
		},
		{
			name:    "ragged rows",
			level:   "id: x\ntiles: |\n  ...\n  ..\n",
			wantErr: "columns",
		},
		{
			name:    "unknown tile",
			level:   "id: x\ntiles: |\n  .?.\n",
			wantErr: "unknown tile",
		},
		{
			name:    "start outside",
			level:   "id: x\ntiles: |\n  ...\nstart: {col: 5, row: 0}\n",
			wantErr: "start",
		},
		{
			name:    "finish outside",
			level:   "id: x\ntiles: |\n  ...\nfinish: {col: 0, row: 2}\n",
			wantErr: "finish",
		},
		{
			name:    "negative countdown",
			level:   "id: x\ncountdown: -1\ntiles: |\n  ...\n",
			wantErr: "countdown",
		},
		{
			name:    "water speed out of range",
			level:   "id: x\nwater_speed: 9\ntiles: |\n  ...\n",
			wantErr: "water speed",
		},
		{
			name:    "unknown kind",
			level:   "id: x\ntiles: |\n  ...\nentities:\n  - {kind: dragon, col: 0, row: 0}\n",
			wantErr: "unknown kind",
		},
		{
			name:    "player entity",
			level:   "id: x\ntiles: |\n  ...\nentities:\n  - {kind: player, col: 0, row: 0}\n",
			wantErr: "player",
		},
		{
			name:    "entity outside",
			level:   "id: x\ntiles: |\n  ...\nentities:\n  - {kind: donut, col: 3, row: 0}\n",
			wantErr: "outside",
		},
		{
			name:  "valid",
			level: smallLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.level))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	l, err := Load(strings.NewReader(smallLevel))
	if err != nil {
		t.Fatal(err)
	}

	w := world.New()
	p, err := l.Build(w)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	g := w.Grid()
	if g.Columns() != 4 || g.Rows() != 3 {
		t.Fatalf("grid size = %dx%d, expected 4x3", g.Columns(), g.Rows())
	}

	// The last text row is the bottom of the world.
	for col := 0; col < 4; col++ {
		if g.ID(col, 0) != 0 {
			t.Errorf("cell (%d,0) = %d, expected 0", col, g.ID(col, 0))
		}
		if g.ID(col, 2) != tilemap.Empty {
			t.Errorf("cell (%d,2) = %d, expected empty", col, g.ID(col, 2))
		}
	}
	if g.ID(2, 1) != 1 {
		t.Errorf("cell (2,1) = %d, expected 1", g.ID(2, 1))
	}

	if g.WaterHeight != 12 || g.WaterSpeed != 4 {
		t.Errorf("water = %v/%d, expected 12/4", g.WaterHeight, g.WaterSpeed)
	}
	if g.Countdown != 30000 {
		t.Errorf("countdown = %d, expected 30000", g.Countdown)
	}
	if g.StartArea != tilemap.CellRect(0, 1) || g.FinishArea != tilemap.CellRect(3, 1) {
		t.Errorf("start %+v finish %+v", g.StartArea, g.FinishArea)
	}

	if p.Kind != behaviors.KindPlayer || w.Player() != p {
		t.Fatal("player not set")
	}
	wantX := (core.CellSize - p.Bounds.W) / 2
	if p.Bounds.X != wantX || p.Bounds.Y != core.CellSize {
		t.Errorf("player at (%v,%v), expected (%v,%v)", p.Bounds.X, p.Bounds.Y, wantX, float64(core.CellSize))
	}

	var sw, pf *entity.Entity
	for _, e := range w.Entities() {
		switch e.Kind {
		case behaviors.KindSwitch:
			sw = e
		case behaviors.KindPlatform:
			pf = e
		}
	}
	if sw == nil || pf == nil {
		t.Fatal("level entities missing")
	}
	if sw.PowerID != 3 || pf.PowerID != 3 {
		t.Errorf("power ids = %d/%d, expected 3", sw.PowerID, pf.PowerID)
	}
	if !sw.PowerOn {
		t.Error("switch should start powered")
	}
	if pf.PowerOn {
		t.Error("platform should start switched off")
	}
}

func TestBuildReplacesWorld(t *testing.T) {
	a, _ := Get("factory")
	b, err := Load(strings.NewReader(smallLevel))
	if err != nil {
		t.Fatal(err)
	}

	w := world.New()
	if _, err := a.Build(w); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(w); err != nil {
		t.Fatal(err)
	}
	if got := len(w.Entities()); got != 3 {
		t.Errorf("entities after rebuild = %d, expected 3", got)
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name   string
		h, v  entity.Align
		wantX  float64
		wantY  float64
	}{
		{"bottom center", entity.AlignCenter, entity.AlignBottom, 128 + 22, 64},
		{"left center", entity.AlignLeft, entity.AlignCenter, 128, 64 + 22},
		{"right top", entity.AlignRight, entity.AlignTop, 128 + 44, 64 + 44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entity.New("box", nil)
			e.SetSize(20, 20)
			e.HAlign, e.VAlign = tt.h, tt.v
			Place(e, 2, 1)
			if e.Bounds.X != tt.wantX || e.Bounds.Y != tt.wantY {
				t.Errorf("placed at (%v,%v), expected (%v,%v)", e.Bounds.X, e.Bounds.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "more")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	write := func(path, data string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(dir, "b.yaml"), strings.Replace(smallLevel, "id: small", "id: b", 1))
	write(filepath.Join(nested, "a.yml"), strings.Replace(smallLevel, "id: small", "id: a", 1))
	write(filepath.Join(dir, "broken.yaml"), "id: [")
	write(filepath.Join(dir, "notes.txt"), "ignored")

	ls, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if len(ls) != 2 {
		t.Fatalf("loaded %d levels, expected 2", len(ls))
	}
	if ls[0].ID != "a" || ls[1].ID != "b" {
		t.Errorf("order = %q, %q", ls[0].ID, ls[1].ID)
	}
	if ls[0].FilePath == "" {
		t.Error("FilePath not recorded")
	}
}
