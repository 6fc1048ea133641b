package integrate

import (
	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/particle"
)

// EulerIntegrator is the order-1 diagnostic-only scheme: the force is
// evaluated once at the current position/time and applied for the
// whole step.
type EulerIntegrator struct{}

func (EulerIntegrator) Step(p *particle.Particle, fields *field.Manager, t, dt float64) {
	if !p.Active() {
		return
	}

	fld := fields.Evaluate(p.Position(), t)
	v := p.Velocity()
	f := lorentzForce(p.Charge(), v, fld)

	p.SetMomentum(p.Momentum().Add(f.Mul(dt)))

	newV := p.Velocity()
	p.SetPosition(p.Position().Add(newV.Mul(dt)))
}
