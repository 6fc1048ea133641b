// Package field models electromagnetic field sources and their
// superposition: the pluggable E/B field composite the integrators
// evaluate at every particle each sub-step.
package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Value is an electric/magnetic field sample: E in V/m, B in T. Value
// forms a commutative monoid under component-wise addition with
// identity (0, 0).
type Value struct {
	E mgl64.Vec3
	B mgl64.Vec3
}

// Add returns the component-wise sum of two field values.
func (v Value) Add(other Value) Value {
	return Value{E: v.E.Add(other.E), B: v.B.Add(other.B)}
}

// Zero is the additive identity (0, 0).
var Zero = Value{}

// Box is an axis-aligned bounding box. Min/Max may hold +/-Inf to model
// an unbounded source. Containment is inclusive on both ends.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Infinite returns a box with no bound in any direction.
func Infinite() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{-inf, -inf, -inf},
		Max: mgl64.Vec3{inf, inf, inf},
	}
}

// Contains reports whether pos lies within the box, inclusive on both
// ends on every axis.
func (b Box) Contains(pos mgl64.Vec3) bool {
	return pos.X() >= b.Min.X() && pos.X() <= b.Max.X() &&
		pos.Y() >= b.Min.Y() && pos.Y() <= b.Max.Y() &&
		pos.Z() >= b.Min.Z() && pos.Z() <= b.Max.Z()
}
