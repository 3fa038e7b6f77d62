// Package core provides fundamental types shared by the simulation and the
// terminal platform. It has no external dependencies (especially no Bubble
// Tea) so the simulation stays pure and testable.
package core

// CellSize is the edge length of one tile in world units.
const CellSize = 64

// Rect is an integer rectangle in screen space (y grows downward).
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// RectF is an axis-aligned rectangle in world space. World space is y-up:
// (X, Y) is the bottom-left corner.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a world rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r RectF) Top() float64 {
	return r.Y + r.H
}

// CenterX returns the horizontal center.
func (r RectF) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical center.
func (r RectF) CenterY() float64 {
	return r.Y + r.H/2
}

// Overlaps reports whether the two rectangles share interior area.
// Touching edges do not overlap.
func (r RectF) Overlaps(o RectF) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether the point lies inside the rectangle, edges included.
func (r RectF) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Translate returns the rectangle moved by (dx, dy).
func (r RectF) Translate(dx, dy float64) RectF {
	r.X += dx
	r.Y += dy
	return r
}

// Grow returns the rectangle expanded by m on every side.
func (r RectF) Grow(m float64) RectF {
	return RectF{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
// The lower bound wins when min > max.
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
