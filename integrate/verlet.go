package integrate

import (
	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/particle"
)

// VelocityVerletIntegrator is the order-2, conservative-limit-symplectic
// scheme: evaluate the field once at the current position/time, half-
// step position with the current velocity, update momentum with the
// full-dt force, then finish the position step with the new velocity.
type VelocityVerletIntegrator struct{}

func (VelocityVerletIntegrator) Step(p *particle.Particle, fields *field.Manager, t, dt float64) {
	if !p.Active() {
		return
	}

	fld := fields.Evaluate(p.Position(), t)
	v := p.Velocity()
	f := lorentzForce(p.Charge(), v, fld)

	halfStep := p.Position().Add(v.Mul(dt / 2))

	p.SetMomentum(p.Momentum().Add(f.Mul(dt)))

	newV := p.Velocity()
	p.SetPosition(halfStep.Add(newV.Mul(dt / 2)))
}
