package beam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat"

	"github.com/gekko3d/beamline/particle"
)

// Statistics is the read-only summary computed against an ensemble's
// active particles.
type Statistics struct {
	TotalParticles int
	LostParticles int

	MeanPosition mgl64.Vec3
	MeanMomentum mgl64.Vec3

	MeanKineticEnergy float64
	MinKineticEnergy float64
	MaxKineticEnergy float64
	RMSEnergy float64

	RMSPosition mgl64.Vec3
	RMSMomentum mgl64.Vec3

	EmittanceX float64
	EmittanceY float64

	NormalizedEmittanceX float64
	NormalizedEmittanceY float64
}

// rms computes √(Σ (v_i − mean)² / N), the population (not sample)
// root-mean-square used throughout and required exactly by the
// ±1-pair scenario (σ_x = 1 for two particles at ±1): gonum's
// stat.StdDev applies Bessel's correction (divides by N−1), which
// would fail that scenario, so the population form is computed
// directly here instead.
func rms(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// ComputeStatistics computes Statistics over the ensemble's active
// particles. With zero active particles it returns zeroed statistics
// with TotalParticles and LostParticles populated.
func ComputeStatistics(e *Ensemble) Statistics {
	var s Statistics
	s.TotalParticles = e.Len()
	active := e.Active()
	s.LostParticles = s.TotalParticles - len(active)
	if len(active) == 0 {
		return s
	}

	n := len(active)
	xs, ys, zs := make([]float64, n), make([]float64, n), make([]float64, n)
	pxs, pys, pzs := make([]float64, n), make([]float64, n), make([]float64, n)
	ks := make([]float64, n)

	for i, p := range active {
		pos := p.Position()
		mom := p.Momentum()
		xs[i], ys[i], zs[i] = pos.X(), pos.Y(), pos.Z()
		pxs[i], pys[i], pzs[i] = mom.X(), mom.Y(), mom.Z()
		ks[i] = p.KineticEnergy()
	}

	// stat.Mean is gonum's plain unweighted mean (weights == nil);
	// correct here regardless of the N-vs-N-1 distinction that rules
	// out reusing gonum's StdDev below.
	muX, muY, muZ := stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil)
	muPx, muPy, muPz := stat.Mean(pxs, nil), stat.Mean(pys, nil), stat.Mean(pzs, nil)
	muK := stat.Mean(ks, nil)

	s.MeanPosition = mgl64.Vec3{muX, muY, muZ}
	s.MeanMomentum = mgl64.Vec3{muPx, muPy, muPz}
	s.MeanKineticEnergy = muK

	s.RMSPosition = mgl64.Vec3{rms(xs, muX), rms(ys, muY), rms(zs, muZ)}
	s.RMSMomentum = mgl64.Vec3{rms(pxs, muPx), rms(pys, muPy), rms(pzs, muPz)}
	s.RMSEnergy = rms(ks, muK)

	s.MinKineticEnergy, s.MaxKineticEnergy = ks[0], ks[0]
	for _, k := range ks {
		if k < s.MinKineticEnergy {
			s.MinKineticEnergy = k
		}
		if k > s.MaxKineticEnergy {
			s.MaxKineticEnergy = k
		}
	}

	s.EmittanceX = geometricEmittance(active,
		func(p *particle.Particle) float64 { return p.Position().X() },
		func(p *particle.Particle) float64 { return p.Momentum().X() })
	s.EmittanceY = geometricEmittance(active,
		func(p *particle.Particle) float64 { return p.Position().Y() },
		func(p *particle.Particle) float64 { return p.Momentum().Y() })

	gamma, beta := referenceGammaBeta(e.ReferenceMomentum(), active[0].Mass())
	s.NormalizedEmittanceX = beta * gamma * s.EmittanceX
	s.NormalizedEmittanceY = beta * gamma * s.EmittanceY

	return s
}

const pzEpsilon = 1e-30

// geometricEmittance computes ε = √(max(0, ⟨α²⟩⟨α'²⟩ − ⟨α·α'⟩²)) for a
// transverse coordinate α (x or y) with α' = p_α/p_z, skipping particles
// with |p_z| < 1e-30 and averaging only over the contributors that
// remain.
func geometricEmittance(active []*particle.Particle, coord, momCoord func(*particle.Particle) float64) float64 {
	var sumA2, sumAp2, sumAAp float64
	count := 0
	for _, p := range active {
		pz := p.Momentum().Z()
		if math.Abs(pz) < pzEpsilon {
			continue
		}
		a := coord(p)
		ap := momCoord(p) / pz
		sumA2 += a * a
		sumAp2 += ap * ap
		sumAAp += a * ap
		count++
	}
	if count == 0 {
		return 0
	}
	n := float64(count)
	meanA2, meanAp2, meanAAp := sumA2/n, sumAp2/n, sumAAp/n
	value := meanA2*meanAp2 - meanAAp*meanAAp
	if value < 0 {
		value = 0
	}
	return math.Sqrt(value)
}
