package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Repulsion is a transient push (a conveyor belt, a launch) that decays
// linearly until it expires.
type Repulsion struct {
	Force       float64
	Angle       float64 // degrees, counter-clockwise from east
	Attenuation float64 // force lost per second
}

// Vector returns the force as a cartesian vector.
func (r *Repulsion) Vector() r2.Vec {
	return r2.Rotate(r2.Vec{X: r.Force}, r.Angle*math.Pi/180, r2.Vec{})
}

// Update decays the force by one frame.
func (r *Repulsion) Update(c Clock) {
	r.Force -= c.PerSecond(r.Attenuation)
}

// Expired reports whether the force is used up.
func (r *Repulsion) Expired() bool {
	return r.Force <= 0
}
