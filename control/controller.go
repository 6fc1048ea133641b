// Package control drives the simulation: a fixed-timestep accumulator
// loop over a particle ensemble, a bound lattice's field manager, and
// one of the four integrators, advanced through an explicit
// Stopped/Running/Paused state machine.
package control

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gekko3d/beamline"
	"github.com/gekko3d/beamline/beam"
	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/integrate"
	"github.com/gekko3d/beamline/lattice"
	"github.com/gekko3d/beamline/particle"
)

// State is the controller's run state.
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// defaultMaxSubSteps is M, the per-tick sub-step cap that bounds the
// "spiral of death" when Δt is too small or τ too large.
const defaultMaxSubSteps = 10000

// defaultFallbackAperture is the hard transverse-radius cutoff applied
// when a lattice is bound, catching particles in inter-element drifts
// not covered by a BeamPipe. It is a safety net, not a physical model,
// so it stays configurable via SetFallbackAperture rather than
// unconditionally baked in.
const defaultFallbackAperture = 0.10

// LossCallback is invoked with a stable snapshot of a particle the
// instant it is marked lost, and a short human-readable reason.
type LossCallback func(p *particle.Particle, reason string)

// Stats is the read-only performance/progress snapshot exposed by
// Controller.Stats.
type Stats struct {
	SimTime float64
	StepCount uint64
	StepsPerSec float64
	ParticleCount int
	LostCount uint64
	MeanEnergy float64
	EnergySpread float64
}

// Controller owns the ensemble, the bound lattice, and the integrator
// selection, and advances them together under a fixed Δt.
type Controller struct {
	mu sync.Mutex

	RunID uuid.UUID

	logger beamline.Logger

	state State

	dt float64
	timeScale float64
	maxSubSteps int

	integratorKind integrate.Kind
	integrator integrate.Integrator

	ensemble *beam.Ensemble

	lat *lattice.Lattice
	fieldManager *field.Manager
	fallbackAperture float64

	// Parallel switches the per-substep particle loop to the bounded
	// worker pool in workerpool.go. Off by default. Each particle is
	// stepped independently, so the per-particle results match the
	// sequential path.
	Parallel bool

	accumulator float64
	tSim float64
	stepCount uint64
	lostCount uint64

	lossCallback LossCallback

	subStepsLastSecond int
	stepsPerSec float64
	perfWindowStart time.Time
}

// New returns a Stopped controller with the given ensemble, default
// Δt = 1e-9 s, τ = 1, Boris integrator, M = 10000, and no bound
// lattice. Pass a nil logger to use beamline.NewNopLogger().
func New(ensemble *beam.Ensemble, logger beamline.Logger) *Controller {
	if logger == nil {
		logger = beamline.NewNopLogger()
	}
	if ensemble == nil {
		ensemble = beam.NewEnsemble()
	}
	c := &Controller{
		RunID: uuid.New(),
		logger: logger,
		state: Stopped,
		dt: 1e-9,
		timeScale: 1.0,
		maxSubSteps: defaultMaxSubSteps,
		integratorKind: integrate.Boris,
		integrator: integrate.New(integrate.Boris),
		ensemble: ensemble,
		fieldManager: field.NewManager(),
		fallbackAperture: defaultFallbackAperture,
		perfWindowStart: time.Now(),
	}
	return c
}

// State returns the current run state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start transitions any state → Running. Coming from Stopped, it first
// resets the accumulator, simulation time, step counter, and
// performance counters (but not the ensemble, so a beam pushed before
// Start is not discarded — Reset is the operation that clears the
// ensemble).
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Stopped {
		c.resetCountersLocked()
	}
	c.state = Running
}

// Stop is cooperative: it takes effect at the next outer tick, there is
// no forced cancellation of an in-flight sub-step.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Stopped
}

// Pause transitions Running → Paused.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Running {
		c.state = Paused
	}
}

// Resume transitions Paused → Running.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Paused {
		c.state = Running
	}
}

// Reset clears the ensemble, accumulator, simulation time, step
// counter, and performance counters. It preserves the integrator
// selection, Δt, τ, and lattice binding.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensemble.Clear()
	c.resetCountersLocked()
}

// resetCountersLocked clears the accumulator, simulation time, step
// counter, loss counter, and performance counters, leaving the
// ensemble untouched.
func (c *Controller) resetCountersLocked() {
	c.accumulator = 0
	c.tSim = 0
	c.stepCount = 0
	c.lostCount = 0
	c.subStepsLastSecond = 0
	c.stepsPerSec = 0
	c.perfWindowStart = time.Now()
}

// SetTimeStep sets Δt (seconds).
func (c *Controller) SetTimeStep(dt float64) {
	c.mu.Lock()
	c.dt = dt
	c.mu.Unlock()
}

// TimeStep returns Δt.
func (c *Controller) TimeStep() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dt
}

// SetTimeScale sets τ (clamped to ≥ 0).
func (c *Controller) SetTimeScale(tau float64) {
	if tau < 0 {
		tau = 0
	}
	c.mu.Lock()
	c.timeScale = tau
	c.mu.Unlock()
}

// TimeScale returns τ.
func (c *Controller) TimeScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeScale
}

// SetMaxSubSteps sets M, the per-tick sub-step cap.
func (c *Controller) SetMaxSubSteps(m int) {
	if m < 1 {
		m = 1
	}
	c.mu.Lock()
	c.maxSubSteps = m
	c.mu.Unlock()
}

// SetIntegratorKind selects the integrator used by every subsequent
// sub-step. An unrecognized kind defaults to Boris with a logged
// warning.
func (c *Controller) SetIntegratorKind(kind integrate.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch kind {
	case integrate.Euler, integrate.VelocityVerlet, integrate.Boris, integrate.RK4:
	default:
		c.logger.Warnf("unknown integrator kind %v, defaulting to Boris", kind)
		kind = integrate.Boris
	}
	c.integratorKind = kind
	c.integrator = integrate.New(kind)
}

// IntegratorKind returns the selected integrator kind.
func (c *Controller) IntegratorKind() integrate.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.integratorKind
}

// SetLossCallback installs the callback invoked on every particle loss.
func (c *Controller) SetLossCallback(cb LossCallback) {
	c.mu.Lock()
	c.lossCallback = cb
	c.mu.Unlock()
}

// Ensemble returns the controller's mutable ensemble (e.g. to push a
// freshly generated beam).
func (c *Controller) Ensemble() *beam.Ensemble {
	return c.ensemble
}

// SetAccelerator binds a lattice, rebuilding the field manager from it
// before the next sub-step and dropping references to the previous
// lattice's field sources (scoped acquisition). Pass nil to unbind.
func (c *Controller) SetAccelerator(lat *lattice.Lattice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lat = lat
	c.fieldManager = field.NewManager()
	if lat != nil {
		lat.PopulateFieldManager(c.fieldManager)
	}
}

// Lattice returns the bound lattice, or nil if none is bound.
func (c *Controller) Lattice() *lattice.Lattice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lat
}

// SetFallbackAperture overrides the hard transverse-radius loss cutoff
// applied for gaps between lattice components.
func (c *Controller) SetFallbackAperture(r float64) {
	c.mu.Lock()
	c.fallbackAperture = r
	c.mu.Unlock()
}

// Stats returns the current performance/progress snapshot, including
// mean energy and energy spread over the ensemble's active particles.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *Controller) statsLocked() Stats {
	beamStats := beam.ComputeStatistics(c.ensemble)
	return Stats{
		SimTime: c.tSim,
		StepCount: c.stepCount,
		StepsPerSec: c.stepsPerSec,
		ParticleCount: c.ensemble.ActiveCount(),
		LostCount: c.lostCount,
		MeanEnergy: beamStats.MeanKineticEnergy,
		EnergySpread: beamStats.RMSEnergy,
	}
}

// Update advances the simulation by at most M sub-steps covering
// τ·dtWall of simulated time. It is a no-op unless the
// controller is Running.
func (c *Controller) Update(dtWall float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return
	}

	c.accumulator += c.timeScale * dtWall

	subSteps := 0
	for c.accumulator >= c.dt && subSteps < c.maxSubSteps {
		c.substepLocked()
		c.accumulator -= c.dt
		subSteps++
	}

	if subSteps >= c.maxSubSteps && c.accumulator > c.dt {
		c.accumulator = 0
	}

	c.recordPerfLocked(subSteps)
}

// Step performs exactly one sub-step regardless of run state, advancing
// t_sim by Δt (an externally-callable single sub-step).
func (c *Controller) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.substepLocked()
	c.recordPerfLocked(1)
}

func (c *Controller) substepLocked() {
	active := c.ensemble.Active()
	if c.Parallel {
		stepParallel(c.integrator, active, c.fieldManager, c.tSim, c.dt)
	} else {
		for _, p := range active {
			c.integrator.Step(p, c.fieldManager, c.tSim, c.dt)
		}
	}
	c.detectHitsLocked()
	c.detectLossesLocked()
	c.tSim += c.dt
	c.stepCount++
}

// detectHitsLocked records a hit on every Detector component whose
// aperture currently contains an active particle.
func (c *Controller) detectHitsLocked() {
	if c.lat == nil {
		return
	}
	for _, comp := range c.lat.Components() {
		det, ok := comp.(*lattice.Detector)
		if !ok {
			continue
		}
		for _, p := range c.ensemble.Active() {
			if det.Contains(p.Position()) {
				det.RecordHit()
			}
		}
	}
}

func (c *Controller) detectLossesLocked() {
	if c.lat == nil || c.lat.Len() == 0 {
		return
	}
	for _, p := range c.ensemble.Active() {
		if c.containedLocked(p) {
			continue
		}
		p.SetActive(false)
		c.lostCount++
		if c.lossCallback != nil {
			c.lossCallback(p.Clone(), "outside aperture")
		}
	}
}

func (c *Controller) containedLocked(p *particle.Particle) bool {
	pos := p.Position()
	for _, comp := range c.lat.Components() {
		if comp.Contains(pos) {
			return true
		}
	}
	radial2 := pos.X()*pos.X() + pos.Y()*pos.Y()
	return radial2 <= c.fallbackAperture*c.fallbackAperture
}

func (c *Controller) recordPerfLocked(subSteps int) {
	c.subStepsLastSecond += subSteps
	elapsed := time.Since(c.perfWindowStart).Seconds()
	if elapsed >= 1.0 {
		c.stepsPerSec = float64(c.subStepsLastSecond) / elapsed
		c.subStepsLastSecond = 0
		c.perfWindowStart = time.Now()
	}
}
