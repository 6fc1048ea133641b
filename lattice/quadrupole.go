package lattice

import "github.com/gekko3d/beamline/field"

// Quadrupole is a focusing/defocusing element wrapping a
// field.Quadrupole. Its radial aperture is taken from the component's
// Aperture.RX (the quadrupole field's own aperture is always radial,
// independent of the lattice Aperture's general shape used for loss
// detection).
type Quadrupole struct {
	base

	gradient float64

	cached *field.Quadrupole
	dirty bool
}

// NewQuadrupole builds a named quadrupole of the given length, aperture,
// and gradient G (T/m). G > 0 is horizontal-focusing.
func NewQuadrupole(name string, length float64, aperture Aperture, gradient float64) *Quadrupole {
	return &Quadrupole{base: newBase(name, length, aperture), gradient: gradient, dirty: true}
}

func (q *Quadrupole) Type() Type { return QuadrupoleType }

// Gradient returns the configured G (T/m).
func (q *Quadrupole) Gradient() float64 { return q.gradient }

// SetGradient updates G and invalidates the cached field source.
func (q *Quadrupole) SetGradient(g float64) {
	q.gradient = g
	q.dirty = true
}

func (q *Quadrupole) FieldSource() (field.Source, bool) {
	if q.cached == nil || q.dirty {
		q.rebuild()
	}
	return q.cached, true
}

func (q *Quadrupole) rebuild() {
	src := field.NewQuadrupole(q.aperture.RX, q.length, q.gradient)
	src.Center, src.Orientation = q.fieldCenterAndOrientation()
	q.cached = src
	q.dirty = false
}
