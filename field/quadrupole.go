package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quadrupole is a magnetic-gradient focusing/defocusing element. In its
// local frame (Center, Orientation), at (x, y) inside both the radial
// aperture and the z half-length window, it contributes
// (0, (G·y, G·x, 0)). G > 0 is horizontal-focusing; G < 0 is
// horizontal-defocusing.
type Quadrupole struct {
	Center mgl64.Vec3
	Orientation mgl64.Quat
	Aperture float64 // radial aperture, metres
	HalfLength float64 // z half-length window, metres
	Gradient float64 // G, T/m

	enabled bool
}

// NewQuadrupole builds an enabled quadrupole at the origin with identity
// orientation; callers reposition via Center/Orientation.
func NewQuadrupole(aperture, length, gradient float64) *Quadrupole {
	return &Quadrupole{
		Orientation: mgl64.QuatIdent(),
		Aperture: aperture,
		HalfLength: length / 2,
		Gradient: gradient,
		enabled: true,
	}
}

func (q *Quadrupole) toLocal(pos mgl64.Vec3) mgl64.Vec3 {
	return q.Orientation.Conjugate().Rotate(pos.Sub(q.Center))
}

func (q *Quadrupole) Evaluate(pos mgl64.Vec3, t float64) Value {
	if !q.Inside(pos) {
		return Zero
	}
	local := q.toLocal(pos)
	localB := mgl64.Vec3{q.Gradient * local.Y(), q.Gradient * local.X(), 0}
	return Value{B: q.Orientation.Rotate(localB)}
}

func (q *Quadrupole) Bounds() Box {
	r := q.Aperture
	h := q.HalfLength
	return Box{
		Min: q.Center.Sub(mgl64.Vec3{r, r, h}),
		Max: q.Center.Add(mgl64.Vec3{r, r, h}),
	}
}

func (q *Quadrupole) Inside(pos mgl64.Vec3) bool {
	local := q.toLocal(pos)
	radial := math.Hypot(local.X(), local.Y())
	return radial <= q.Aperture && math.Abs(local.Z()) <= q.HalfLength
}

func (q *Quadrupole) Enabled() bool { return q.enabled }

func (q *Quadrupole) SetEnabled(enabled bool) { q.enabled = enabled }
