package beam

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/beamline/physics"
)

func baseParams(seed uint64) Parameters {
	return Parameters{
		ParticleType:  Proton,
		NumParticles:  50,
		KineticEnergy: 10 * physics.MeV,
		SigmaX:        1e-3,
		SigmaY:        1e-3,
		SigmaZ:        1e-2,
		SigmaPx:       1e-4,
		SigmaPy:       1e-4,
		SigmaDelta:    1e-3,
		Direction:     mgl64.Vec3{0, 0, 1},
		Distribution:  Gaussian,
		Seed:          seed,
	}
}

// beam reproducibility: identical parameters and seed
// produce per-particle bitwise-identical positions, single-threaded.
func TestBeamReproducibility(t *testing.T) {
	p := baseParams(42)
	e1 := GenerateBeam(p)
	e2 := GenerateBeam(p)

	require.Equal(t, e1.Len(), e2.Len())
	for i := 0; i < e1.Len(); i++ {
		a, _ := e1.At(i)
		b, _ := e2.At(i)
		assert.Equal(t, a.Position(), b.Position())
		assert.Equal(t, a.Momentum(), b.Momentum())
	}
}

func TestBeamDifferentSeedsDiffer(t *testing.T) {
	e1 := GenerateBeam(baseParams(1))
	e2 := GenerateBeam(baseParams(2))

	a, _ := e1.At(0)
	b, _ := e2.At(0)
	assert.NotEqual(t, a.Position(), b.Position())
}

func TestGenerateBeamReplacesPreviousContent(t *testing.T) {
	e := GenerateBeam(baseParams(1))
	require.Equal(t, 50, e.Len())

	small := baseParams(1)
	small.NumParticles = 3
	e2 := GenerateBeam(small)
	assert.Equal(t, 3, e2.Len())
}

func TestReferenceMomentumMatchesEnsemble(t *testing.T) {
	p := baseParams(7)
	e := GenerateBeam(p)

	gamma0, _, p0 := ReferenceMomentum(physics.ProtonMass, p.KineticEnergy)
	assert.Greater(t, gamma0, 1.0)
	assert.InDelta(t, p0, e.ReferenceMomentum(), 1e-20)
}

func TestAllDistributionsProduceFiniteMomenta(t *testing.T) {
	for _, d := range []Distribution{Gaussian, Uniform, Waterbag} {
		p := baseParams(99)
		p.Distribution = d
		e := GenerateBeam(p)
		for i := 0; i < e.Len(); i++ {
			particle, _ := e.At(i)
			assert.Greater(t, particle.Gamma(), 0.0)
			assert.Less(t, particle.Beta(), 1.0)
		}
	}
}

func pairEnsemble() *Ensemble {
	e := NewEnsemble()
	p0 := 1.0 // arbitrary reference momentum for normalized-emittance math
	e.SetReferenceMomentum(p0)
	momentum := mgl64.Vec3{0, 0, p0}
	e.Push(Proton.New(mgl64.Vec3{-1, 0, 0}, momentum))
	e.Push(Proton.New(mgl64.Vec3{1, 0, 0}, momentum))
	return e
}

// two particles at (∓1, 0, 0) with identical momenta:
// σ_x = 1 exactly, σ_y = σ_z = 0, mean position = (0, 0, 0) exactly.
func TestStatisticsOnDeterministicPair(t *testing.T) {
	e := pairEnsemble()
	s := ComputeStatistics(e)

	assert.Equal(t, 2, s.TotalParticles)
	assert.Equal(t, 0, s.LostParticles)
	assert.InDelta(t, 0, s.MeanPosition.X(), 1e-15)
	assert.InDelta(t, 0, s.MeanPosition.Y(), 1e-15)
	assert.InDelta(t, 0, s.MeanPosition.Z(), 1e-15)
	assert.InDelta(t, 1.0, s.RMSPosition.X(), 1e-12)
	assert.InDelta(t, 0, s.RMSPosition.Y(), 1e-15)
	assert.InDelta(t, 0, s.RMSPosition.Z(), 1e-15)
}

func TestStatisticsEmptyEnsembleIsZeroedButCounts(t *testing.T) {
	e := NewEnsemble()
	e.Push(Proton.New(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	p, _ := e.At(0)
	p.SetActive(false)

	s := ComputeStatistics(e)
	assert.Equal(t, 1, s.TotalParticles)
	assert.Equal(t, 1, s.LostParticles)
	assert.Equal(t, 0.0, s.MeanKineticEnergy)
}

// applyAperture marks inactive exactly those particles
// whose transverse radius exceeds r and returns the count newly lost.
func TestApplyApertureMarksAndCounts(t *testing.T) {
	e := NewEnsemble()
	e.Push(Proton.New(mgl64.Vec3{0.05, 0, 0}, mgl64.Vec3{0, 0, 1}))
	e.Push(Proton.New(mgl64.Vec3{0.2, 0, 0}, mgl64.Vec3{0, 0, 1}))
	e.Push(Proton.New(mgl64.Vec3{0, 0.2, 0}, mgl64.Vec3{0, 0, 1}))

	lost := e.ApplyAperture(0.1)
	assert.Equal(t, 2, lost)
	assert.Equal(t, 1, e.ActiveCount())

	p0, _ := e.At(0)
	assert.True(t, p0.Active())
}

func TestCompactInactivePreservesOrder(t *testing.T) {
	e := NewEnsemble()
	e.Push(Proton.New(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}))
	e.Push(Proton.New(mgl64.Vec3{0.2, 0, 0}, mgl64.Vec3{0, 0, 1}))
	e.Push(Proton.New(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}))
	first, _ := e.At(0)
	third, _ := e.At(2)

	e.ApplyAperture(0.1)
	e.CompactInactive()

	assert.Equal(t, 2, e.Len())
	kept0, _ := e.At(0)
	kept1, _ := e.At(1)
	assert.Same(t, first, kept0)
	assert.Same(t, third, kept1)
}
