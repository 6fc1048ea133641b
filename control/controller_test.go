package control

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/beamline/beam"
	"github.com/gekko3d/beamline/integrate"
	"github.com/gekko3d/beamline/lattice"
	"github.com/gekko3d/beamline/particle"
)

func TestNewControllerDefaults(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, integrate.Boris, c.IntegratorKind())
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", c.RunID.String())
}

func TestUpdateIsNoopUnlessRunning(t *testing.T) {
	c := New(nil, nil)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	c.SetTimeStep(1e-9)

	c.Update(1.0)
	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.StepCount)
}

func TestUpdateAccumulatesSubSteps(t *testing.T) {
	c := New(nil, nil)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	c.SetTimeStep(1.0)
	c.SetTimeScale(1.0)
	c.Start()

	c.Update(3.5)
	stats := c.Stats()
	assert.Equal(t, uint64(3), stats.StepCount)
	assert.InDelta(t, 3.0, stats.SimTime, 1e-9)
}

func TestUpdateDiscardsExcessOnSubStepCap(t *testing.T) {
	c := New(nil, nil)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	c.SetTimeStep(1.0)
	c.SetTimeScale(1.0)
	c.SetMaxSubSteps(2)
	c.Start()

	c.Update(10.0)
	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.StepCount)
}

func TestStepAdvancesRegardlessOfState(t *testing.T) {
	c := New(nil, nil)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	c.SetTimeStep(1e-9)

	require.Equal(t, Stopped, c.State())
	c.Step()
	assert.Equal(t, uint64(1), c.Stats().StepCount)
}

func TestResetPreservesIntegratorDtTauLattice(t *testing.T) {
	c := New(nil, nil)
	lat := lattice.New(lattice.Linear)
	lat.Append(lattice.NewBeamPipe("d1", 1, lattice.NewCircularAperture(0.1)))
	c.SetAccelerator(lat)
	c.SetTimeStep(2e-9)
	c.SetTimeScale(0.5)
	c.SetIntegratorKind(integrate.RK4)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	c.Start()
	c.Update(2e-9)

	c.Reset()

	assert.Equal(t, 0, c.Ensemble().Len())
	assert.Equal(t, uint64(0), c.Stats().StepCount)
	assert.Equal(t, integrate.RK4, c.IntegratorKind())
	assert.InDelta(t, 2e-9, c.TimeStep(), 1e-20)
	assert.InDelta(t, 0.5, c.TimeScale(), 1e-12)
	assert.Same(t, lat, c.Lattice())
}

func TestStartFromStoppedResetsCountersButKeepsEnsemble(t *testing.T) {
	c := New(nil, nil)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	c.SetTimeStep(1.0)
	c.SetTimeScale(1.0)
	c.Start()
	c.Update(2.5)
	require.Equal(t, uint64(2), c.Stats().StepCount)

	c.Stop()
	c.Start()

	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.StepCount)
	assert.Equal(t, 0.0, stats.SimTime)
	assert.Equal(t, 1, c.Ensemble().Len())
	assert.Equal(t, Running, c.State())
}

func TestStartFromPausedDoesNotResetCounters(t *testing.T) {
	c := New(nil, nil)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))
	c.SetTimeStep(1.0)
	c.SetTimeScale(1.0)
	c.Start()
	c.Update(2.0)
	c.Pause()

	c.Start()

	assert.Equal(t, uint64(2), c.Stats().StepCount)
}

func TestUnknownIntegratorKindDefaultsToBoris(t *testing.T) {
	c := New(nil, nil)
	c.SetIntegratorKind(integrate.Kind(99))
	assert.Equal(t, integrate.Boris, c.IntegratorKind())
}

func TestLossDetectionInvokesCallbackAndMarksInactive(t *testing.T) {
	c := New(nil, nil)
	lat := lattice.New(lattice.Linear)
	lat.Append(lattice.NewBeamPipe("d1", 10, lattice.NewCircularAperture(0.01)))
	lat.ComputeLattice()
	c.SetAccelerator(lat)
	c.SetTimeStep(1e-9)
	c.SetFallbackAperture(0.01)

	var lostReason string
	c.SetLossCallback(func(p *particle.Particle, reason string) {
		lostReason = reason
	})

	p := particle.NewProton(mgl64.Vec3{0.5, 0, 0}, mgl64.Vec3{0, 0, 1})
	c.Ensemble().Push(p)

	c.Step()

	assert.False(t, p.Active())
	assert.Equal(t, "outside aperture", lostReason)
	assert.Equal(t, uint64(1), c.Stats().LostCount)
}

func TestDetectorRecordsHitsForContainedParticles(t *testing.T) {
	c := New(nil, nil)
	lat := lattice.New(lattice.Linear)
	det := lattice.NewDetector("det1", 1, lattice.NewCircularAperture(0.1))
	lat.Append(det)
	lat.ComputeLattice()
	c.SetAccelerator(lat)
	c.SetTimeStep(1e-9)

	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{0, 0, 0.5}, mgl64.Vec3{0, 0, 1}))

	c.Step()

	assert.Equal(t, uint64(1), det.Hits())
}

func TestNoLatticeMeansNoApertureLosses(t *testing.T) {
	c := New(nil, nil)
	c.SetTimeStep(1e-9)
	p := particle.NewProton(mgl64.Vec3{100, 100, 100}, mgl64.Vec3{0, 0, 1})
	c.Ensemble().Push(p)

	c.Step()
	assert.True(t, p.Active())
}

func TestSnapshotIsReadOnlyView(t *testing.T) {
	c := New(nil, nil)
	lat := lattice.New(lattice.Linear)
	lat.Append(lattice.NewBeamPipe("d1", 1, lattice.NewCircularAperture(0.1)))
	lat.ComputeLattice()
	c.SetAccelerator(lat)
	c.Ensemble().Push(particle.NewProton(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}))

	snap := c.Snapshot()
	require.Len(t, snap.Particles, 1)
	require.Len(t, snap.Components, 1)
	assert.Equal(t, "d1", snap.Components[0].Name)
	assert.Equal(t, c.RunID.String(), snap.RunID)
}

func TestParallelSteppingMatchesSequentialTrajectory(t *testing.T) {
	build := func() *beam.Ensemble {
		e := beam.NewEnsemble()
		for i := 0; i < 20; i++ {
			e.Push(particle.NewProton(mgl64.Vec3{float64(i), 0, 0}, mgl64.Vec3{0, 0, 1e-18}))
		}
		return e
	}

	seq := New(build(), nil)
	seq.SetTimeStep(1e-12)
	seq.Start()
	seq.Update(1e-12)

	par := New(build(), nil)
	par.SetTimeStep(1e-12)
	par.Parallel = true
	par.Start()
	par.Update(1e-12)

	for i := 0; i < 20; i++ {
		a, _ := seq.Ensemble().At(i)
		b, _ := par.Ensemble().At(i)
		assert.InDelta(t, a.Position().Z(), b.Position().Z(), 1e-30)
	}
}
