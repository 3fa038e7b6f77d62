// Package levels reads YAML level files and builds worlds from them.
package levels

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/behaviors"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

// Point addresses a cell.
type Point struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// EntitySpec places one entity.
type EntitySpec struct {
	Kind     string `yaml:"kind"`
	Col      int    `yaml:"col"`
	Row      int    `yaml:"row"`
	Power    int    `yaml:"power,omitempty"`     // power group id
	PowerOff bool   `yaml:"power_off,omitempty"` // start switched off
}

// Level is a parsed level file.
type Level struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Creator     string       `yaml:"creator,omitempty"`
	Difficulty  string       `yaml:"difficulty,omitempty"`
	Countdown   int          `yaml:"countdown,omitempty"` // seconds, 0 disables
	WaterHeight float64      `yaml:"water_height,omitempty"`
	WaterSpeed  *int         `yaml:"water_speed,omitempty"`
	Tiles       string       `yaml:"tiles"`
	Start       Point        `yaml:"start"`
	Finish      Point        `yaml:"finish"`
	Entities    []EntitySpec `yaml:"entities,omitempty"`

	// FilePath is set when the level was read from disk.
	FilePath string `yaml:"-"`
}

// Load parses and validates a level.
func Load(r io.Reader) (*Level, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("levels: read: %w", err)
	}
	return parse(data)
}

// LoadFile parses and validates a level file.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	l, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", path, err)
	}
	l.FilePath = path
	return l, nil
}

func parse(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Rows returns the tile rows, top row first.
func (l *Level) Rows() []string {
	text := strings.TrimRight(l.Tiles, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Size returns the map size in cells.
func (l *Level) Size() (cols, rows int) {
	lines := l.Rows()
	if len(lines) == 0 {
		return 0, 0
	}
	return len(lines[0]), len(lines)
}

// Validate checks the level for structural errors.
func (l *Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("levels: missing id")
	}

	lines := l.Rows()
	if len(lines) == 0 {
		return fmt.Errorf("levels: %s: no tiles", l.ID)
	}
	cols := len(lines[0])
	for i, line := range lines {
		if len(line) != cols {
			return fmt.Errorf("levels: %s: row %d has %d columns, expected %d", l.ID, i, len(line), cols)
		}
		for j, ch := range line {
			if _, ok := tileID(ch); !ok {
				return fmt.Errorf("levels: %s: unknown tile %q at row %d column %d", l.ID, ch, i, j)
			}
		}
	}

	inRange := func(p Point) bool {
		return p.Col >= 0 && p.Col < cols && p.Row >= 0 && p.Row < len(lines)
	}
	if !inRange(l.Start) {
		return fmt.Errorf("levels: %s: start %+v outside the map", l.ID, l.Start)
	}
	if !inRange(l.Finish) {
		return fmt.Errorf("levels: %s: finish %+v outside the map", l.ID, l.Finish)
	}
	if l.Countdown < 0 {
		return fmt.Errorf("levels: %s: negative countdown", l.ID)
	}
	if l.WaterSpeed != nil && (*l.WaterSpeed < 0 || *l.WaterSpeed >= len(tilemap.WaterSpeeds)) {
		return fmt.Errorf("levels: %s: water speed %d out of range", l.ID, *l.WaterSpeed)
	}

	for i, spec := range l.Entities {
		kind := entity.Kind(spec.Kind)
		if kind == behaviors.KindPlayer {
			return fmt.Errorf("levels: %s: entity %d: the player is placed at start", l.ID, i)
		}
		if !entity.Exists(kind) {
			return fmt.Errorf("levels: %s: entity %d: unknown kind %q", l.ID, i, spec.Kind)
		}
		if !inRange(Point{Col: spec.Col, Row: spec.Row}) {
			return fmt.Errorf("levels: %s: entity %d (%s) outside the map", l.ID, i, spec.Kind)
		}
	}
	return nil
}

// tileID maps a tile symbol to a tile set id.
func tileID(ch rune) (int, bool) {
	switch {
	case ch == '.' || ch == ' ':
		return tilemap.Empty, true
	case ch == '#':
		return 0, true
	case ch == '=':
		return 1, true
	case ch == '%':
		return 2, true
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	}
	return 0, false
}

// Build replaces the contents of w with the level and returns the player.
func (l *Level) Build(w *world.World) (*entity.Entity, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	lines := l.Rows()
	cols, rows := l.Size()
	w.CreateWorld(cols, rows)

	g := w.Grid()
	for i, line := range lines {
		row := rows - 1 - i
		for col, ch := range line {
			id, _ := tileID(ch)
			if id != tilemap.Empty {
				g.Set(col, row, id)
			}
		}
	}
	g.Autotile()

	g.WaterHeight = l.WaterHeight
	if l.WaterSpeed != nil {
		g.WaterSpeed = *l.WaterSpeed
	}
	g.Countdown = int64(l.Countdown) * 1000
	g.StartArea = tilemap.CellRect(l.Start.Col, l.Start.Row)
	g.FinishArea = tilemap.CellRect(l.Finish.Col, l.Finish.Row)

	for i, spec := range l.Entities {
		e, err := entity.Create(entity.Kind(spec.Kind))
		if err != nil {
			return nil, fmt.Errorf("levels: %s: entity %d: %w", l.ID, i, err)
		}
		e.PowerID = spec.Power
		if spec.PowerOff && e.PowerSupported {
			e.PowerOn = false
		}
		Place(e, spec.Col, spec.Row)
		w.Add(e)
	}

	player, err := entity.Create(behaviors.KindPlayer)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.ID, err)
	}
	Place(player, l.Start.Col, l.Start.Row)
	w.Add(player)
	w.SetPlayer(player)

	return player, nil
}

// Place positions e inside the cell (col, row) according to its alignment.
func Place(e *entity.Entity, col, row int) {
	cell := tilemap.CellRect(col, row)
	x, y := cell.X, cell.Y

	switch e.HAlign {
	case entity.AlignLeft:
	case entity.AlignRight:
		x += core.CellSize - e.Bounds.W
	default:
		x += (core.CellSize - e.Bounds.W) / 2
	}

	switch e.VAlign {
	case entity.AlignBottom:
	case entity.AlignTop:
		y += core.CellSize - e.Bounds.H
	default:
		y += (core.CellSize - e.Bounds.H) / 2
	}

	e.SetPosition(x, y, false)
}
