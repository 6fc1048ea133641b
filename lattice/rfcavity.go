package lattice

import "github.com/gekko3d/beamline/field"

// RFCavity is an accelerating element wrapping a field.RF.
type RFCavity struct {
	base

	voltage float64
	frequency float64
	phase float64

	cached *field.RF
	dirty bool
}

// NewRFCavity builds a named RF cavity of the given length, aperture,
// voltage (V), frequency (Hz), and phase (rad).
func NewRFCavity(name string, length float64, aperture Aperture, voltage, frequency, phase float64) *RFCavity {
	return &RFCavity{
		base: newBase(name, length, aperture),
		voltage: voltage,
		frequency: frequency,
		phase: phase,
		dirty: true,
	}
}

func (r *RFCavity) Type() Type { return RFCavityType }

func (r *RFCavity) Voltage() float64 { return r.voltage }
func (r *RFCavity) Frequency() float64 { return r.frequency }
func (r *RFCavity) Phase() float64 { return r.phase }

// SetVoltage updates V and invalidates the cached field source.
func (r *RFCavity) SetVoltage(v float64) {
	r.voltage = v
	r.dirty = true
}

// SetFrequency updates f and invalidates the cached field source.
func (r *RFCavity) SetFrequency(f float64) {
	r.frequency = f
	r.dirty = true
}

// SetPhase updates phi and invalidates the cached field source.
func (r *RFCavity) SetPhase(phi float64) {
	r.phase = phi
	r.dirty = true
}

func (r *RFCavity) FieldSource() (field.Source, bool) {
	if r.cached == nil || r.dirty {
		r.rebuild()
	}
	return r.cached, true
}

func (r *RFCavity) rebuild() {
	src := field.NewRF(r.aperture.RX, r.length, r.voltage, r.frequency, r.phase)
	src.Center, src.Orientation = r.fieldCenterAndOrientation()
	r.cached = src
	r.dirty = false
}
