package lattice

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/field"
)

// Dipole is a bending magnet wrapping a field.UniformB. Its field source
// is rebuilt lazily whenever the configured B vector changes.
type Dipole struct {
	base

	b mgl64.Vec3

	cached *field.UniformB
	dirty bool
}

// NewDipole builds a named dipole of the given length and aperture, with
// uniform field b (T).
func NewDipole(name string, length float64, aperture Aperture, b mgl64.Vec3) *Dipole {
	return &Dipole{base: newBase(name, length, aperture), b: b, dirty: true}
}

func (d *Dipole) Type() Type { return DipoleType }

// Field returns the dipole's configured uniform B vector.
func (d *Dipole) Field() mgl64.Vec3 { return d.b }

// SetField updates the B vector and invalidates the cached field source.
func (d *Dipole) SetField(b mgl64.Vec3) {
	d.b = b
	d.dirty = true
}

func (d *Dipole) FieldSource() (field.Source, bool) {
	if d.cached == nil || d.dirty {
		d.rebuild()
	}
	return d.cached, true
}

func (d *Dipole) rebuild() {
	region := field.Box{
		Min: mgl64.Vec3{-d.aperture.RX, -d.aperture.RY, -d.length / 2},
		Max: mgl64.Vec3{d.aperture.RX, d.aperture.RY, d.length / 2},
	}
	src := field.NewUniformB(region, d.b)
	src.Center, src.Orientation = d.fieldCenterAndOrientation()
	d.cached = src
	d.dirty = false
}
