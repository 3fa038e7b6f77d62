// Package tilemap models the fixed-size tile grid a level is built on: cell
// occupancy, clamped point queries for collision, autotile variants for
// rendering, and the level metadata that travels with the grid.
package tilemap

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Empty marks a free cell.
const Empty = -1

// WaterSpeeds are the scroll speeds of the water surface, indexed by
// Grid.WaterSpeed. Only the renderer uses them.
var WaterSpeeds = [...]float64{150, 50, 0, -50, -150}

// Cell is one tile of the grid.
type Cell struct {
	ID        int // tile set id, Empty when free
	Adjacency Variant
	Col, Row  int
}

// Occupied reports whether the cell blocks movement.
func (c *Cell) Occupied() bool {
	return c.ID >= 0
}

// Grid is a columns x rows array of cells. Row 0 is the bottom of the world.
type Grid struct {
	cols  int
	rows  int
	cells []Cell

	// Level metadata.
	WaterHeight float64 // entities whose top edge is below this drown
	WaterSpeed  int     // index into WaterSpeeds
	StartArea   core.RectF
	FinishArea  core.RectF
	Countdown   int64 // time limit in milliseconds, 0 disables
}

// New creates an empty grid. Negative sizes are treated as zero.
func New(cols, rows int) *Grid {
	cols = core.Max(cols, 0)
	rows = core.Max(rows, 0)

	g := &Grid{
		cols:       cols,
		rows:       rows,
		cells:      make([]Cell, cols*rows),
		WaterSpeed: 2,
		StartArea:  core.NewRectF(0, core.CellSize, core.CellSize, core.CellSize),
		FinishArea: core.NewRectF(0, 0, core.CellSize, core.CellSize),
	}
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			g.cells[col*rows+row] = Cell{ID: Empty, Adjacency: Single, Col: col, Row: row}
		}
	}
	return g
}

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Bounds returns the world rectangle covered by the grid.
func (g *Grid) Bounds() core.RectF {
	return core.NewRectF(0, 0, float64(g.cols*core.CellSize), float64(g.rows*core.CellSize))
}

// Cells returns the backing cells in storage order (column-major).
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Cell returns the cell at (col, row), clamped to the nearest edge cell.
// It returns nil only for an empty grid.
func (g *Grid) Cell(col, row int) *Cell {
	if len(g.cells) == 0 {
		return nil
	}
	col = core.Clamp(col, 0, g.cols-1)
	row = core.Clamp(row, 0, g.rows-1)
	return &g.cells[col*g.rows+row]
}

// CellAt returns the cell containing the world point, clamped.
func (g *Grid) CellAt(x, y float64) *Cell {
	return g.Cell(int(x/core.CellSize), int(y/core.CellSize))
}

// Blocked reports whether the world point lies in an occupied cell. An
// empty grid blocks everything.
func (g *Grid) Blocked(x, y float64) bool {
	c := g.CellAt(x, y)
	return c == nil || c.Occupied()
}

// InRange reports whether (col, row) addresses a cell without clamping.
func (g *Grid) InRange(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// ID returns the tile id at (col, row), clamped.
func (g *Grid) ID(col, row int) int {
	c := g.Cell(col, row)
	if c == nil {
		return Empty
	}
	return c.ID
}

// Set changes one cell and reclassifies it and its neighbors.
// Out-of-range coordinates are ignored.
func (g *Grid) Set(col, row, id int) {
	if !g.InRange(col, row) {
		return
	}
	c := &g.cells[col*g.rows+row]
	if c.ID == id {
		return
	}
	c.ID = id

	g.classify(col, row)
	g.classify(col+1, row)
	g.classify(col-1, row)
	g.classify(col, row+1)
	g.classify(col, row-1)
}

// Fill sets every cell overlapping area to id without reclassifying and
// returns how many cells changed. Call Autotile afterwards.
func (g *Grid) Fill(area core.RectF, id int) int {
	changed := 0
	for i := range g.cells {
		c := &g.cells[i]
		if c.ID == id || !area.Overlaps(g.cellRect(c)) {
			continue
		}
		c.ID = id
		changed++
	}
	return changed
}

// Autotile reclassifies every cell.
func (g *Grid) Autotile() {
	for i := range g.cells {
		g.classify(g.cells[i].Col, g.cells[i].Row)
	}
}

// VisibleCells returns the cells overlapping view, in storage order.
func (g *Grid) VisibleCells(view core.RectF) []*Cell {
	if len(g.cells) == 0 {
		return nil
	}
	minCol := core.Clamp(int(view.X/core.CellSize), 0, g.cols-1)
	maxCol := core.Clamp(int(view.Right()/core.CellSize), 0, g.cols-1)
	minRow := core.Clamp(int(view.Y/core.CellSize), 0, g.rows-1)
	maxRow := core.Clamp(int(view.Top()/core.CellSize), 0, g.rows-1)

	out := make([]*Cell, 0, (maxCol-minCol+1)*(maxRow-minRow+1))
	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			out = append(out, &g.cells[col*g.rows+row])
		}
	}
	return out
}

// CellRect returns the world rectangle of the cell at (col, row).
func CellRect(col, row int) core.RectF {
	return core.NewRectF(float64(col*core.CellSize), float64(row*core.CellSize), core.CellSize, core.CellSize)
}

func (g *Grid) cellRect(c *Cell) core.RectF {
	return CellRect(c.Col, c.Row)
}

func (g *Grid) classify(col, row int) {
	if !g.InRange(col, row) {
		return
	}
	c := &g.cells[col*g.rows+row]
	c.Adjacency = Classify(
		c.ID,
		g.ID(col+1, row),
		g.ID(col-1, row),
		g.ID(col, row-1),
		g.ID(col, row+1),
	)
}
