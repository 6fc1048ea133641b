package integrate

import (
	"math"

	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/particle"
	"github.com/gekko3d/beamline/physics"
)

// BorisIntegrator is the order-2, phase-space-volume-preserving pusher
// that decouples the electric half-impulse from the magnetic rotation.
// It is the default and recommended integrator: it conserves kinetic
// energy identically (to rounding) in a pure magnetic field and
// produces an exact circular orbit in a uniform B-field.
type BorisIntegrator struct{}

func (BorisIntegrator) Step(p *particle.Particle, fields *field.Manager, t, dt float64) {
	if !p.Active() {
		return
	}

	mass := p.Mass()
	charge := p.Charge()
	c := physics.SpeedOfLight

	fld := fields.Evaluate(p.Position(), t)

	// 1. Half electric impulse.
	pMinus := p.Momentum().Add(fld.E.Mul(charge * dt / 2))

	// 2. Gamma from |p-|.
	mc := mass * c
	ratio := pMinus.Len() / mc
	gamma := math.Sqrt(1 + ratio*ratio)

	// 3. Rotation vectors.
	tVec := fld.B.Mul(charge * dt / (2 * gamma * mass))
	tMagSq := tVec.Dot(tVec)
	sVec := tVec.Mul(2 / (1 + tMagSq))

	// 4. Rotate.
	uMinus := pMinus.Mul(1 / (gamma * mass))
	uPrime := uMinus.Add(uMinus.Cross(tVec))
	uPlus := uMinus.Add(uPrime.Cross(sVec))
	pPlus := uPlus.Mul(gamma * mass)

	// 5. Second half electric impulse.
	newMomentum := pPlus.Add(fld.E.Mul(charge * dt / 2))
	p.SetMomentum(newMomentum)

	// 6. Position update using the post-impulse velocity.
	newV := p.Velocity()
	p.SetPosition(p.Position().Add(newV.Mul(dt)))
}
