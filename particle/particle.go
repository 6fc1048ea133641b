// Package particle implements the relativistic charged-particle state at
// the core of the beam dynamics engine: position, momentum, and the
// derived Lorentz invariants (γ, β) that every integrator and statistic
// depends on.
package particle

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/physics"
)

// maxBetaFraction is the subluminal clamp applied when a caller requests
// a velocity with |v| >= c: never accept a superluminal state.
const maxBetaFraction = 0.999999

var idCounter atomic.Uint64

// nextID returns a process-wide monotonically increasing particle id.
// Density is not required, only uniqueness.
func nextID() uint64 {
	return idCounter.Add(1)
}

// Particle is the atomic simulated object: a relativistic point charge
// with position (m), momentum (kg·m/s), rest mass (kg), and electric
// charge (C). γ and β are cached and recomputed by every mutator that
// touches momentum or velocity.
type Particle struct {
	id uint64
	position mgl64.Vec3
	momentum mgl64.Vec3
	mass float64
	charge float64
	active bool

	gamma float64
	beta float64
}

// New constructs a particle of the given rest mass and charge at the
// given position and momentum. Callers are responsible for NaN/negative-
// mass inputs (caller errors are the caller's responsibility);
// the only internal guard is the subluminal clamp in SetVelocity.
func New(mass, charge float64, position, momentum mgl64.Vec3) *Particle {
	p := &Particle{
		id:       nextID(),
		position: position,
		mass: mass,
		charge: charge,
		active: true,
	}
	p.SetMomentum(momentum)
	return p
}

// NewElectron builds an electron (m_e, −e) at the given position and momentum.
func NewElectron(position, momentum mgl64.Vec3) *Particle {
	return New(physics.ElectronMass, -physics.ElementaryCharge, position, momentum)
}

// NewPositron builds a positron (m_e, +e) at the given position and momentum.
func NewPositron(position, momentum mgl64.Vec3) *Particle {
	return New(physics.ElectronMass, physics.ElementaryCharge, position, momentum)
}

// NewProton builds a proton (m_p, +e) at the given position and momentum.
func NewProton(position, momentum mgl64.Vec3) *Particle {
	return New(physics.ProtonMass, physics.ElementaryCharge, position, momentum)
}

// NewAntiproton builds an antiproton (m_p, −e) at the given position and momentum.
func NewAntiproton(position, momentum mgl64.Vec3) *Particle {
	return New(physics.ProtonMass, -physics.ElementaryCharge, position, momentum)
}

// Clone returns a deep copy with the same id. Used to hand out stable
// snapshots (e.g. to a loss callback) that won't be mutated by the next
// sub-step.
func (p *Particle) Clone() *Particle {
	cp := *p
	return &cp
}

// ID returns the process-wide monotonic particle id.
func (p *Particle) ID() uint64 { return p.id }

// Active reports whether the particle is still tracked (not lost).
func (p *Particle) Active() bool { return p.active }

// SetActive marks the particle active/inactive (e.g. on an aperture loss).
func (p *Particle) SetActive(active bool) { p.active = active }

// Position returns the particle's position in metres.
func (p *Particle) Position() mgl64.Vec3 { return p.position }

// SetPosition sets the position. No invariants are touched.
func (p *Particle) SetPosition(pos mgl64.Vec3) { p.position = pos }

// Momentum returns the particle's momentum in kg·m/s.
func (p *Particle) Momentum() mgl64.Vec3 { return p.momentum }

// Mass returns the rest mass in kg.
func (p *Particle) Mass() float64 { return p.mass }

// Charge returns the electric charge in C (may be negative).
func (p *Particle) Charge() float64 { return p.charge }

// Gamma returns the cached Lorentz factor γ ≥ 1.
func (p *Particle) Gamma() float64 { return p.gamma }

// Beta returns the cached β = v/c ∈ [0, 1).
func (p *Particle) Beta() float64 { return p.beta }

// Speed returns |v| = β·c in m/s.
func (p *Particle) Speed() float64 { return p.beta * physics.SpeedOfLight }

// Velocity returns v = p/(γ·m).
func (p *Particle) Velocity() mgl64.Vec3 {
	if p.gamma == 0 || p.mass == 0 {
		return mgl64.Vec3{}
	}
	return p.momentum.Mul(1.0 / (p.gamma * p.mass))
}

// RestEnergy returns m·c², a constant for the particle's lifetime.
func (p *Particle) RestEnergy() float64 {
	c := physics.SpeedOfLight
	return p.mass * c * c
}

// TotalEnergy returns E = γ·m·c².
func (p *Particle) TotalEnergy() float64 {
	return p.gamma * p.RestEnergy()
}

// KineticEnergy returns K = (γ−1)·m·c².
func (p *Particle) KineticEnergy() float64 {
	return (p.gamma - 1) * p.RestEnergy()
}

// Delta returns δ = (|p| − p0)/p0, the relative momentum deviation
// against the given reference momentum p0.
func (p *Particle) Delta(referenceMomentum float64) float64 {
	if referenceMomentum == 0 {
		return 0
	}
	return (p.momentum.Len() - referenceMomentum) / referenceMomentum
}

// recomputeFromMomentum updates γ and β from the current momentum:
// γ = √(1 + (|p|/(m·c))²), β = √(1 − 1/γ²).
func (p *Particle) recomputeFromMomentum() {
	if p.mass <= 0 {
		p.gamma = 1
		p.beta = 0
		return
	}
	mc := p.mass * physics.SpeedOfLight
	ratio := p.momentum.Len() / mc
	p.gamma = math.Sqrt(1 + ratio*ratio)
	p.beta = math.Sqrt(1 - 1/(p.gamma*p.gamma))
}

// SetMomentum sets the momentum vector and recomputes γ, β.
func (p *Particle) SetMomentum(momentum mgl64.Vec3) {
	p.momentum = momentum
	p.recomputeFromMomentum()
}

// SetMomentumComponents sets momentum by component and recomputes γ, β.
func (p *Particle) SetMomentumComponents(px, py, pz float64) {
	p.SetMomentum(mgl64.Vec3{px, py, pz})
}

// SetVelocity sets the velocity, clamping |v| to 0.999999·c when the
// caller requests |v| >= c (never accept a superluminal
// state), then recomputes γ, β, and p = γ·m·v.
func (p *Particle) SetVelocity(velocity mgl64.Vec3) {
	c := physics.SpeedOfLight
	speed := velocity.Len()
	if speed >= c {
		velocity = velocity.Mul((maxBetaFraction * c) / speed)
		speed = maxBetaFraction * c
	}
	beta := speed / c
	gamma := 1.0
	if beta > 0 {
		gamma = 1.0 / math.Sqrt(1-beta*beta)
	}
	p.momentum = velocity.Mul(gamma * p.mass)
	p.gamma = gamma
	p.beta = beta
}

// SetKineticEnergy sets K along direction d (normalized on use), updating
// γ, β, and p = γ·β·m·c·d. If d is ~zero, the current momentum direction
// is reused; if that is also ~zero, it falls back to +z.
func (p *Particle) SetKineticEnergy(kinetic float64, direction mgl64.Vec3) {
	const epsilon = 1e-30
	dir := direction
	if dir.Len() < epsilon {
		dir = p.momentum
		if dir.Len() < epsilon {
			dir = mgl64.Vec3{0, 0, 1}
		}
	}
	dir = dir.Normalize()

	restEnergy := p.RestEnergy()
	gamma := 1.0
	if restEnergy > 0 {
		gamma = 1 + kinetic/restEnergy
	}
	if gamma < 1 {
		gamma = 1
	}
	beta := math.Sqrt(1 - 1/(gamma*gamma))

	p.gamma = gamma
	p.beta = beta
	p.momentum = dir.Mul(gamma * beta * p.mass * physics.SpeedOfLight)
}
