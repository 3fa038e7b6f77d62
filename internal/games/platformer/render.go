package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/behaviors"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Screen rows reserved outside the play area.
const (
	hudRows  = 1
	helpRows = 1

	minScreenW = 20
	minScreenH = 6
)

const helpText = "←/→ move  space jump  e use  p pause  r restart  q quit"

// projection maps world units (y-up) onto the character grid (y-down).
type projection struct {
	viewX, viewY float64 // bottom-left corner of the camera view
	sx, sy       float64 // characters per world unit
	top          int     // first screen row of the play area
	w, h         int     // play area size in characters
}

func (p projection) col(x float64) int {
	return int(math.Floor((x - p.viewX) * p.sx))
}

func (p projection) row(y float64) int {
	return p.top + p.h - 1 - int(math.Floor((y-p.viewY)*p.sy))
}

// rect returns the screen cells covered by r, at least one.
func (p projection) rect(r core.RectF) core.Rect {
	const inset = 0.001
	x0, x1 := p.col(r.X), p.col(r.Right()-inset)
	y0, y1 := p.row(r.Top()-inset), p.row(r.Y)
	return core.NewRect(x0, y0, max(x1-x0+1, 1), max(y1-y0+1, 1))
}

func (p projection) inside(x, y int) bool {
	return x >= 0 && x < p.w && y >= p.top && y < p.top+p.h
}

func (p projection) set(dst *core.Screen, x, y int, r rune, c core.Color) {
	if p.inside(x, y) {
		dst.SetColor(x, y, r, c)
	}
}

func (p projection) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			p.set(dst, x, y, ch, c)
		}
	}
}

// fitViewport sizes the camera to the play area of a w x h screen. Without
// a screen the configured viewport is used.
func (g *Game) fitViewport(w, h int) {
	if g.world == nil || (w == g.fitW && h == g.fitH) {
		return
	}
	g.fitW, g.fitH = w, h

	v := g.cfg.View
	cam := g.world.Camera()
	if w <= 0 || h <= hudRows+helpRows {
		cam.SetViewport(float64(v.ViewportCols*core.CellSize), float64(v.ViewportRows*core.CellSize))
		return
	}
	playH := h - hudRows - helpRows
	cam.SetViewport(
		float64(w)/float64(v.CellCols)*core.CellSize,
		float64(playH)/float64(v.CellRows)*core.CellSize,
	)
}

func (g *Game) projection(w, h int) projection {
	view := g.world.Camera().View()
	return projection{
		viewX: view.X,
		viewY: view.Y,
		sx:    float64(g.cfg.View.CellCols) / core.CellSize,
		sy:    float64(g.cfg.View.CellRows) / core.CellSize,
		top:   hudRows,
		w:     w,
		h:     h - hudRows - helpRows,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorWarning)
		return
	}
	if g.world == nil {
		dst.DrawTextCentered(h/2, g.Title(), core.ColorBrightWhite)
		return
	}

	g.fitViewport(w, h)
	p := g.projection(w, h)

	if g.cfg.View.ShowWater {
		g.drawWater(dst, p)
	}
	g.drawTiles(dst, p)
	g.drawFinish(dst, p)
	g.drawEntities(dst, p)
	g.drawPopups(dst, p)
	g.drawHUD(dst)
	g.drawBanner(dst, p)
	dst.DrawTextColor(0, h-1, helpText, core.ColorHint)
}

func (g *Game) drawWater(dst *core.Screen, p projection) {
	grid := g.world.Grid()
	if grid.WaterHeight <= 0 {
		return
	}

	surface := p.row(grid.WaterHeight - 0.001)
	speed := tilemap.WaterSpeeds[grid.WaterSpeed]
	wave := int(float64(g.clock.Now) / 1000 * speed * p.sx)

	for y := max(surface, p.top); y < p.top+p.h; y++ {
		for x := 0; x < p.w; x++ {
			if y == surface {
				if (x+wave)%4 < 2 {
					p.set(dst, x, y, '~', core.ColorWaterSurface)
				} else {
					p.set(dst, x, y, '-', core.ColorWater)
				}
				continue
			}
			p.set(dst, x, y, '░', core.ColorWater)
		}
	}
}

func (g *Game) drawTiles(dst *core.Screen, p projection) {
	for _, cell := range g.world.VisibleCells() {
		if !cell.Occupied() {
			continue
		}
		r := p.rect(tilemap.CellRect(cell.Col, cell.Row))
		body, color, topColor := tileStyle(cell.ID)
		exposed := topExposed(cell.Adjacency)

		for y := r.Y; y < r.Bottom(); y++ {
			c := color
			if y == r.Y && exposed {
				c = topColor
			}
			for x := r.X; x < r.Right(); x++ {
				p.set(dst, x, y, body, c)
			}
		}
	}
}

// tileStyle returns the fill rune and colors of a tile set id.
func tileStyle(id int) (body rune, color, top core.Color) {
	switch id {
	case 0:
		return '█', core.ColorOrange, core.ColorBrightGreen
	case 1:
		return '▓', core.ColorGray, core.ColorBrightWhite
	case 2:
		return '▒', core.ColorMagenta, core.ColorBrightMagenta
	default:
		return '#', core.ColorWhite, core.ColorBrightWhite
	}
}

// topExposed reports whether a variant has nothing above it.
func topExposed(v tilemap.Variant) bool {
	switch v {
	case tilemap.TopLeft, tilemap.Top, tilemap.TopRight,
		tilemap.HorizontalLeft, tilemap.Horizontal, tilemap.HorizontalRight,
		tilemap.VerticalTop, tilemap.Single:
		return true
	}
	return false
}

func (g *Game) drawFinish(dst *core.Screen, p projection) {
	area := g.world.Grid().FinishArea
	r := p.rect(area)
	x := r.X + r.W/2
	for y := r.Y; y < r.Bottom()-1; y++ {
		p.set(dst, x, y+1, '│', core.ColorWhite)
	}
	p.set(dst, x, r.Y, '⚑', core.ColorBrightYellow)
}

func (g *Game) drawEntities(dst *core.Screen, p projection) {
	for _, e := range g.world.Entities() {
		if e.Alpha < 0.1 && !e.IsPlayer() {
			continue
		}

		bounds := e.Bounds
		if pl, ok := e.Behavior().(*behaviors.Player); ok {
			bounds.Y += pl.DeathOffset
		}

		ch, c := entityGlyph(e, g.clock.Now)
		if !e.IsAlive() || e.Alpha < 0.5 {
			c = core.ColorFaded
		}
		p.fill(dst, p.rect(bounds), ch, c)
	}
}

// entityGlyph returns the rune and color an entity is drawn with.
func entityGlyph(e *entity.Entity, now int64) (rune, core.Color) {
	switch e.Kind {
	case behaviors.KindPlayer:
		switch e.Frame {
		case behaviors.FrameDead:
			return 'x', core.ColorBrightRed
		case behaviors.FrameJump, behaviors.FrameFall:
			return '^', core.ColorBrightCyan
		}
		return '@', core.ColorBrightCyan
	case behaviors.KindSnail:
		return 's', core.ColorBrightGreen
	case behaviors.KindJumper:
		return 'j', core.ColorBrightRed
	case behaviors.KindSpringboard:
		if e.Frame == 1 {
			return 'z', core.ColorYellow
		}
		return 'Z', core.ColorYellow
	case behaviors.KindTreadmill:
		if e.Frame == 0 {
			return '=', core.ColorGray
		}
		return []rune{'>', '»', '›'}[(e.Frame-1)%3], core.ColorWhite
	case behaviors.KindCannon, behaviors.KindCannonLeft, behaviors.KindCannonUp, behaviors.KindCannonDown:
		return 'C', core.ColorGray
	case behaviors.KindCannonBall:
		return 'o', core.ColorBrightWhite
	case behaviors.KindBox:
		return '▣', core.ColorOrange
	case behaviors.KindDonut:
		return 'o', core.ColorBrightMagenta
	case behaviors.KindCup:
		return 'Y', core.ColorBrightYellow
	case behaviors.KindSpikes:
		return '^', core.ColorWhite
	case behaviors.KindPlatform:
		switch {
		case !e.PowerOn || e.Routine == behaviors.PlatformOff:
			return '·', core.ColorGray
		case e.Routine == behaviors.PlatformTransition && (now/250)%2 == 0:
			return '▬', core.ColorYellow
		}
		return '▬', core.ColorBrightBlue
	case behaviors.KindSwitch:
		if e.PowerOn {
			return '/', core.ColorBrightGreen
		}
		return '\\', core.ColorRed
	case behaviors.KindTrap:
		if e.Routine == behaviors.TrapOn {
			return '≈', core.ColorBrightYellow
		}
		return '-', core.ColorGray
	}
	return '?', core.ColorWhite
}

func (g *Game) drawPopups(dst *core.Screen, p projection) {
	for _, pop := range g.world.Popups() {
		c := core.ColorBrightYellow
		if pop.Alpha < 0.4 {
			c = core.ColorYellow
		}
		runes := []rune(pop.Text)
		x := p.col(pop.X) - len(runes)/2
		y := p.row(pop.Y)
		for i, r := range runes {
			p.set(dst, x+i, y, r, c)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	left := fmt.Sprintf(" %s  Score: %d", g.Title(), g.world.Score())
	dst.DrawTextColor(0, 0, left, core.ColorHUD)

	label := "Time"
	if g.world.Grid().Countdown > 0 {
		label = "Left"
	}
	right := fmt.Sprintf("%s: %s ", label, formatMs(g.world.Elapsed()))
	c := core.ColorHUD
	if label == "Left" && g.world.Elapsed() < 10000 {
		c = core.ColorWarning
	}
	dst.DrawTextColor(dst.Width()-len([]rune(right)), 0, right, c)
}

func (g *Game) drawBanner(dst *core.Screen, p projection) {
	mid := p.top + p.h/2
	switch {
	case g.paused:
		dst.DrawTextCentered(mid, " PAUSED ", core.ColorBrightYellow)
		dst.DrawTextCentered(mid+1, " press p to resume ", core.ColorHint)
	case g.world.State() == core.StatePlayerDies:
		dst.DrawTextCentered(mid, " OUCH! ", core.ColorBrightRed)
	case g.world.State() == core.StateViewStats:
		dst.DrawTextCentered(mid-1, " LEVEL COMPLETE ", core.ColorBrightGreen)
		stats := fmt.Sprintf(" Score %d   Time %s ", g.world.Score(), formatMs(g.PlayTime()))
		dst.DrawTextCentered(mid, stats, core.ColorBrightWhite)
		dst.DrawTextCentered(mid+1, " press Enter ", core.ColorHint)
	}
}

// formatMs formats milliseconds as m:ss.t.
func formatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d.%d", ms/60000, (ms/1000)%60, (ms/100)%10)
}
