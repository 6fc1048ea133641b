// Package integrate implements the four particle-pushing strategies the
// controller can select between: Euler, Velocity-Verlet, Boris, and
// RK4. Every strategy shares the same stepping contract over
// (particle, field manager, time, dt) so the controller can swap them
// mid-simulation without touching particle state.
package integrate

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/particle"
)

// Kind enumerates the selectable integrator strategies.
type Kind int

const (
	Euler Kind = iota
	VelocityVerlet
	Boris
	RK4
)

// String returns the display name of an integrator Kind.
func (k Kind) String() string {
	switch k {
	case Euler:
		return "Euler"
	case VelocityVerlet:
		return "VelocityVerlet"
	case Boris:
		return "Boris"
	case RK4:
		return "RK4"
	default:
		return "Unknown"
	}
}

// Integrator advances one particle by exactly one fixed dt. Inactive
// particles are a no-op. Implementations must not allocate on the
// per-step hot path.
type Integrator interface {
	Step(p *particle.Particle, fields *field.Manager, t, dt float64)
}

// New returns the Integrator for the given Kind, defaulting to Boris for
// an unrecognized kind (unknown integrator kind -> default to
// Boris and surface a warning; the warning itself is the caller's
// responsibility since this package never logs).
func New(kind Kind) Integrator {
	switch kind {
	case Euler:
		return EulerIntegrator{}
	case VelocityVerlet:
		return VelocityVerletIntegrator{}
	case RK4:
		return RK4Integrator{}
	case Boris:
		return BorisIntegrator{}
	default:
		return BorisIntegrator{}
	}
}

// lorentzForce returns q(E + v×B) at the given field sample and velocity.
func lorentzForce(charge float64, v mgl64.Vec3, f field.Value) mgl64.Vec3 {
	return f.E.Add(v.Cross(f.B)).Mul(charge)
}
