package physics

import "github.com/vovakirdan/tui-platformer/internal/core"

// Value is a velocity along one axis kept as two non-negative magnitudes,
// one per direction. Maximums are per-second speeds; the clamp converts them
// into this frame's delta, so the ceiling moves with the frame time.
type Value struct {
	Positive     float64
	Negative     float64
	Acceleration float64
	Deceleration float64
	MaxPositive  float64
	MaxNegative  float64
}

// NewValue returns a value at rest with the given tuning.
func NewValue(accel, decel, maxPositive, maxNegative float64) Value {
	return Value{
		Acceleration: accel,
		Deceleration: decel,
		MaxPositive:  maxPositive,
		MaxNegative:  maxNegative,
	}
}

// AcceleratePositive speeds up in the positive direction.
func (v *Value) AcceleratePositive(c Clock) {
	v.Positive += c.Ratio60(v.Acceleration)
	v.clamp(c)
}

// AccelerateNegative speeds up in the negative direction.
func (v *Value) AccelerateNegative(c Clock) {
	v.Negative += c.Ratio60(v.Acceleration)
	v.clamp(c)
}

// DeceleratePositive slows down the positive magnitude.
func (v *Value) DeceleratePositive(c Clock) {
	v.Positive -= c.Ratio60(v.Deceleration)
	v.clamp(c)
}

// DecelerateNegative slows down the negative magnitude.
func (v *Value) DecelerateNegative(c Clock) {
	v.Negative -= c.Ratio60(v.Deceleration)
	v.clamp(c)
}

// Sum returns the signed per-frame velocity.
func (v *Value) Sum() float64 {
	return v.Positive - v.Negative
}

// Reset stops all motion.
func (v *Value) Reset() {
	v.Positive = 0
	v.Negative = 0
}

func (v *Value) clamp(c Clock) {
	v.Positive = core.ClampF(v.Positive, 0, c.PerSecond(v.MaxPositive))
	v.Negative = core.ClampF(v.Negative, 0, c.PerSecond(v.MaxNegative))
}
