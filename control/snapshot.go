package control

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/lattice"
)

// ParticleView is one read-only particle record exposed to the
// renderer/telemetry collaborator: no mutation of engine
// state is reachable through it.
type ParticleView struct {
	ID uint64
	Position mgl64.Vec3
	Momentum mgl64.Vec3
	KineticEnergy float64
	Charge float64
	Active bool
}

// ComponentView is one read-only lattice component record.
type ComponentView struct {
	Type lattice.Type
	Name string
	SPosition float64
	Length float64
	Aperture lattice.Aperture
}

// Snapshot is a read-only view of the controller's state at a single
// instant, safe to hand to a renderer or telemetry collaborator.
// RunID lets that collaborator correlate the snapshot with a
// specific simulation run.
type Snapshot struct {
	RunID string
	Stats Stats
	Particles []ParticleView
	Components []ComponentView
}

// Snapshot builds a read-only copy of the controller's current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := c.ensemble.All()
	particles := make([]ParticleView, len(all))
	for i, p := range all {
		particles[i] = ParticleView{
			ID:            p.ID(),
			Position:      p.Position(),
			Momentum:      p.Momentum(),
			KineticEnergy: p.KineticEnergy(),
			Charge:        p.Charge(),
			Active:        p.Active(),
		}
	}

	var components []ComponentView
	if c.lat != nil {
		components = make([]ComponentView, c.lat.Len())
		for i, comp := range c.lat.Components() {
			components[i] = ComponentView{
				Type:      comp.Type(),
				Name:      comp.Name(),
				SPosition: comp.SPosition(),
				Length:    comp.Length(),
				Aperture:  comp.Aperture(),
			}
		}
	}

	return Snapshot{
		RunID:      c.RunID.String(),
		Stats:      c.statsLocked(),
		Particles:  particles,
		Components: components,
	}
}
