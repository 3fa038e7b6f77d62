package world

import "github.com/vovakirdan/tui-platformer/internal/core"

// Default viewport in world units: 20 x 10 cells.
const (
	DefaultViewportW = 20 * core.CellSize
	DefaultViewportH = 10 * core.CellSize
)

// Camera is the window onto the map. X and Y are its center.
type Camera struct {
	X, Y float64
	W, H float64
}

// NewCamera returns a camera with the default viewport at the origin.
func NewCamera() *Camera {
	return &Camera{W: DefaultViewportW, H: DefaultViewportH}
}

// SetViewport changes the viewport size. Non-positive sizes are ignored.
func (c *Camera) SetViewport(w, h float64) {
	if w > 0 {
		c.W = w
	}
	if h > 0 {
		c.H = h
	}
}

// View returns the visible world rectangle.
func (c *Camera) View() core.RectF {
	return core.NewRectF(c.X-c.W/2, c.Y-c.H/2, c.W, c.H)
}

// Follow centers the camera on r.
func (c *Camera) Follow(r core.RectF) {
	c.X = r.CenterX()
	c.Y = r.CenterY()
}

// Clamp keeps the view inside bounds. On an axis where the map is smaller
// than the viewport the camera centers on the map.
func (c *Camera) Clamp(bounds core.RectF) {
	c.X = clampAxis(c.X, c.W, bounds.X, bounds.W)
	c.Y = clampAxis(c.Y, c.H, bounds.Y, bounds.H)
}

func clampAxis(pos, view, start, size float64) float64 {
	if size <= view {
		return start + size/2
	}
	return core.ClampF(pos, start+view/2, start+size-view/2)
}

// Popup is a floating text such as a score notice.
type Popup struct {
	Text  string
	X, Y  float64
	Alpha float64
}

const (
	popupRise = 150 // units per second
	popupFade = 1   // alpha per second
)
