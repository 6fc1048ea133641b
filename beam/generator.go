package beam

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/physics"
)

// ReferenceMomentum computes γ0, β0, p0 for a particle of the given
// rest mass at the given kinetic energy:
//
//	γ0 = 1 + K/(m·c²), β0 = √(1 − 1/γ0²), p0 = γ0·β0·m·c
//
// Used by the generator (below) to set the ensemble's reference
// momentum. Statistics' normalized emittance recovers γ and β from that
// stored p0 through referenceGammaBeta instead.
func ReferenceMomentum(mass, kineticEnergy float64) (gamma0, beta0, p0 float64) {
	restEnergy := mass * physics.SpeedOfLight * physics.SpeedOfLight
	gamma0 = 1.0
	if restEnergy > 0 {
		gamma0 = 1 + kineticEnergy/restEnergy
	}
	if gamma0 < 1 {
		gamma0 = 1
	}
	beta0 = math.Sqrt(1 - 1/(gamma0*gamma0))
	p0 = gamma0 * beta0 * mass * physics.SpeedOfLight
	return gamma0, beta0, p0
}

// referenceGammaBeta inverts p0 = γ·β·m·c for γ and β, the same
// relation recomputeFromMomentum uses for a live particle, applied here
// to the ensemble's stored reference momentum (used by Statistics'
// normalized emittance).
func referenceGammaBeta(p0, mass float64) (gamma, beta float64) {
	if mass <= 0 {
		return 1, 0
	}
	mc := mass * physics.SpeedOfLight
	ratio := p0 / mc
	gamma = math.Sqrt(1 + ratio*ratio)
	beta = math.Sqrt(1 - 1/(gamma*gamma))
	return gamma, beta
}

// transverseAxes picks the two axes perpendicular to direction used for
// momentum kicks: direction × ŷ normally, or direction × x̂
// when |direction.y| > 0.9 (avoids a near-degenerate cross product when
// the beam points close to ŷ).
func transverseAxes(direction mgl64.Vec3) (axis1, axis2 mgl64.Vec3) {
	yhat := mgl64.Vec3{0, 1, 0}
	xhat := mgl64.Vec3{1, 0, 0}
	ref := yhat
	if math.Abs(direction.Y()) > 0.9 {
		ref = xhat
	}
	axis1 = direction.Cross(ref).Normalize()
	axis2 = direction.Cross(axis1).Normalize()
	return axis1, axis2
}

// sampler draws the six per-particle random offsets (dx, dy, dz, dpx,
// dpy, delta) for one distribution kind.
type sampler func(rng *rand.Rand, sigmaX, sigmaY, sigmaZ, sigmaPx, sigmaPy, sigmaDelta float64) (dx, dy, dz, dpx, dpy, delta float64)

func uniformSigned(rng *rand.Rand) float64 {
	return 2*rng.Float64() - 1
}

func sampleGaussian(rng *rand.Rand, sigmaX, sigmaY, sigmaZ, sigmaPx, sigmaPy, sigmaDelta float64) (dx, dy, dz, dpx, dpy, delta float64) {
	dx = sigmaX * rng.NormFloat64()
	dy = sigmaY * rng.NormFloat64()
	dz = sigmaZ * rng.NormFloat64()
	dpx = sigmaPx * rng.NormFloat64()
	dpy = sigmaPy * rng.NormFloat64()
	delta = sigmaDelta * rng.NormFloat64()
	return
}

const sqrt3 = 1.7320508075688772

func sampleUniform(rng *rand.Rand, sigmaX, sigmaY, sigmaZ, sigmaPx, sigmaPy, sigmaDelta float64) (dx, dy, dz, dpx, dpy, delta float64) {
	dx = sigmaX * sqrt3 * uniformSigned(rng)
	dy = sigmaY * sqrt3 * uniformSigned(rng)
	dz = sigmaZ * sqrt3 * uniformSigned(rng)
	dpx = sigmaPx * sqrt3 * uniformSigned(rng)
	dpy = sigmaPy * sqrt3 * uniformSigned(rng)
	delta = sigmaDelta * sqrt3 * uniformSigned(rng)
	return
}

func sampleWaterbag(rng *rand.Rand, sigmaX, sigmaY, sigmaZ, sigmaPx, sigmaPy, sigmaDelta float64) (dx, dy, dz, dpx, dpy, delta float64) {
	u := rng.Float64()
	r := math.Cbrt(u)
	theta := math.Acos(uniformSigned(rng))
	phi := math.Pi * uniformSigned(rng)

	sinTheta, cosTheta := math.Sincos(theta)
	dx = r * sinTheta * math.Cos(phi) * sigmaX
	dy = r * sinTheta * math.Sin(phi) * sigmaY
	dz = r * cosTheta * sigmaZ

	dpx = sigmaPx * sqrt3 * uniformSigned(rng)
	dpy = sigmaPy * sqrt3 * uniformSigned(rng)
	delta = sigmaDelta * sqrt3 * uniformSigned(rng)
	return
}

func samplerFor(d Distribution) sampler {
	switch d {
	case Uniform:
		return sampleUniform
	case Waterbag:
		return sampleWaterbag
	default:
		return sampleGaussian
	}
}

// GenerateBeam builds a new ensemble of NumParticles particles per
// Parameters, replacing any previous content. Given the same
// parameters and seed on the same platform, two calls produce
// per-particle bitwise-identical positions in single-threaded
// execution: sampling uses a single seeded *rand.Rand, drawn from
// per particle in a fixed order per distribution ((dx, dy, dz, dpx, dpy,
// delta) for Gaussian and Uniform; (r, θ, φ, dpx, dpy, delta) for
// Waterbag).
func GenerateBeam(params Parameters) *Ensemble {
	mass := params.ParticleType.Mass()
	_, _, p0 := ReferenceMomentum(mass, params.KineticEnergy)

	direction := params.Direction
	if direction.Len() < 1e-30 {
		direction = mgl64.Vec3{0, 0, 1}
	}
	direction = direction.Normalize()
	axis1, axis2 := transverseAxes(direction)

	draw := samplerFor(params.Distribution)
	rng := rand.New(rand.NewSource(int64(params.Seed)))

	ensemble := NewEnsemble()
	ensemble.SetReferenceMomentum(p0)

	n := params.NumParticles
	if n < 0 {
		n = 0
	}
	for i := 0; i < n; i++ {
		dx, dy, dz, dpx, dpy, delta := draw(rng, params.SigmaX, params.SigmaY, params.SigmaZ, params.SigmaPx, params.SigmaPy, params.SigmaDelta)

		pos := params.PositionOffset.Add(mgl64.Vec3{dx, dy, dz})

		longitudinal := direction.Mul(p0 * (1 + delta))
		transverse := axis1.Mul(dpx * p0).Add(axis2.Mul(dpy * p0))
		momentum := longitudinal.Add(transverse)

		ensemble.Push(params.ParticleType.New(pos, momentum))
	}
	return ensemble
}
