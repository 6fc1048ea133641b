package integrate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/particle"
	"github.com/gekko3d/beamline/physics"
)

// RK4Integrator is the standard order-4, 4-stage Runge-Kutta scheme on
// (x, p), with no adaptive step.
type RK4Integrator struct{}

// derivative is (dx/dt, dp/dt) = (v, f) at a given (x, p, t).
type derivative struct {
	dx mgl64.Vec3
	dp mgl64.Vec3
}

func rk4Derivative(mass, charge float64, fields *field.Manager, x, p mgl64.Vec3, t float64) derivative {
	mc := mass * physics.SpeedOfLight
	ratio := p.Len() / mc
	gamma := math.Sqrt(1 + ratio*ratio)

	v := p.Mul(1 / (gamma * mass))
	fld := fields.Evaluate(x, t)
	f := lorentzForce(charge, v, fld)

	return derivative{dx: v, dp: f}
}

func (RK4Integrator) Step(p *particle.Particle, fields *field.Manager, t, dt float64) {
	if !p.Active() {
		return
	}

	mass := p.Mass()
	charge := p.Charge()
	x0 := p.Position()
	p0 := p.Momentum()

	k1 := rk4Derivative(mass, charge, fields, x0, p0, t)
	k2 := rk4Derivative(mass, charge, fields,
		x0.Add(k1.dx.Mul(dt/2)), p0.Add(k1.dp.Mul(dt/2)), t+dt/2)
	k3 := rk4Derivative(mass, charge, fields,
		x0.Add(k2.dx.Mul(dt/2)), p0.Add(k2.dp.Mul(dt/2)), t+dt/2)
	k4 := rk4Derivative(mass, charge, fields,
		x0.Add(k3.dx.Mul(dt)), p0.Add(k3.dp.Mul(dt)), t+dt)

	dx := k1.dx.Add(k2.dx.Mul(2)).Add(k3.dx.Mul(2)).Add(k4.dx).Mul(dt / 6)
	dp := k1.dp.Add(k2.dp.Mul(2)).Add(k3.dp.Mul(2)).Add(k4.dp).Mul(dt / 6)

	p.SetPosition(x0.Add(dx))
	p.SetMomentum(p0.Add(dp))
}
