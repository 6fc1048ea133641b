// Package beam holds the particle ensemble, the deterministic beam
// generator, and the statistics computed over an active population.
package beam

import (
	"github.com/gekko3d/beamline/particle"
)

// Ensemble is a dense, iterate-every-tick population of particles: one
// slice of owned pointers, since each particle carries derived state
// (γ, β) alongside position and momentum. No archetype/entity
// machinery here: every particle shares the identical field set, so a
// flat slice is simplest.
type Ensemble struct {
	particles []*particle.Particle
	referenceMomentum float64
}

// NewEnsemble returns an empty ensemble.
func NewEnsemble() *Ensemble {
	return &Ensemble{}
}

// Push appends a particle to the ensemble.
func (e *Ensemble) Push(p *particle.Particle) {
	e.particles = append(e.particles, p)
}

// Clear removes every particle and resets the reference momentum.
func (e *Ensemble) Clear() {
	e.particles = nil
	e.referenceMomentum = 0
}

// Len returns the total particle count, active or not.
func (e *Ensemble) Len() int { return len(e.particles) }

// ActiveCount returns the number of active particles.
func (e *Ensemble) ActiveCount() int {
	n := 0
	for _, p := range e.particles {
		if p.Active() {
			n++
		}
	}
	return n
}

// At returns the particle at the given index.
func (e *Ensemble) At(i int) (*particle.Particle, bool) {
	if i < 0 || i >= len(e.particles) {
		return nil, false
	}
	return e.particles[i], true
}

// All returns every particle in the ensemble, active or not. Callers
// must not replace entries through the returned slice; mutating a
// particle's own state through its pointer is fine.
func (e *Ensemble) All() []*particle.Particle {
	return e.particles
}

// Active returns the active particles, in ensemble order (
// supplement: used by Statistics and by the controller's per-substep
// loop).
func (e *Ensemble) Active() []*particle.Particle {
	active := make([]*particle.Particle, 0, len(e.particles))
	for _, p := range e.particles {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// ReferenceMomentum returns the beam's reference momentum p0 (kg·m/s).
func (e *Ensemble) ReferenceMomentum() float64 { return e.referenceMomentum }

// SetReferenceMomentum sets p0.
func (e *Ensemble) SetReferenceMomentum(p0 float64) { e.referenceMomentum = p0 }

// ApplyAperture marks every active particle whose transverse radius
// √(x²+y²) exceeds r as inactive, returning the count newly lost.
func (e *Ensemble) ApplyAperture(r float64) int {
	r2 := r * r
	lost := 0
	for _, p := range e.particles {
		if !p.Active() {
			continue
		}
		pos := p.Position()
		radial2 := pos.X()*pos.X() + pos.Y()*pos.Y()
		if radial2 > r2 {
			p.SetActive(false)
			lost++
		}
	}
	return lost
}

// CompactInactive stably removes inactive particles, preserving the
// relative order of the ones that remain.
func (e *Ensemble) CompactInactive() {
	kept := e.particles[:0]
	for _, p := range e.particles {
		if p.Active() {
			kept = append(kept, p)
		}
	}
	e.particles = kept
}
