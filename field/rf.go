package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RF is a longitudinal accelerating cavity. In its local frame, inside
// the radial aperture and the z half-length window, it contributes
// E_z = (V/L)·cos(2π·f·t + φ); B is always zero.
type RF struct {
	Center mgl64.Vec3
	Orientation mgl64.Quat
	Aperture float64 // radial aperture, metres
	Length float64 // full cavity length L, metres
	Voltage float64 // V, volts
	Phase float64 // φ, radians

	frequency float64 // f, Hz
	angularFreq float64 // cached 2π·f
	enabled bool
}

// NewRF builds an enabled RF cavity at the origin with identity orientation.
func NewRF(aperture, length, voltage, frequency, phase float64) *RF {
	r := &RF{
		Orientation: mgl64.QuatIdent(),
		Aperture: aperture,
		Length: length,
		Voltage: voltage,
		Phase: phase,
		enabled: true,
	}
	r.SetFrequency(frequency)
	return r
}

// Frequency returns the cavity's RF frequency in Hz.
func (r *RF) Frequency() float64 { return r.frequency }

// SetFrequency updates the frequency and its cached angular frequency.
func (r *RF) SetFrequency(frequency float64) {
	r.frequency = frequency
	r.angularFreq = 2 * math.Pi * frequency
}

func (r *RF) toLocal(pos mgl64.Vec3) mgl64.Vec3 {
	return r.Orientation.Conjugate().Rotate(pos.Sub(r.Center))
}

func (r *RF) Evaluate(pos mgl64.Vec3, t float64) Value {
	if !r.Inside(pos) {
		return Zero
	}
	if r.Length == 0 {
		return Zero
	}
	ez := (r.Voltage / r.Length) * math.Cos(r.angularFreq*t+r.Phase)
	localE := mgl64.Vec3{0, 0, ez}
	return Value{E: r.Orientation.Rotate(localE)}
}

func (r *RF) Bounds() Box {
	rad := r.Aperture
	h := r.Length / 2
	return Box{
		Min: r.Center.Sub(mgl64.Vec3{rad, rad, h}),
		Max: r.Center.Add(mgl64.Vec3{rad, rad, h}),
	}
}

func (r *RF) Inside(pos mgl64.Vec3) bool {
	local := r.toLocal(pos)
	radial := math.Hypot(local.X(), local.Y())
	return radial <= r.Aperture && math.Abs(local.Z()) <= r.Length/2
}

func (r *RF) Enabled() bool { return r.enabled }

func (r *RF) SetEnabled(enabled bool) { r.enabled = enabled }
