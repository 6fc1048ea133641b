package field

import "github.com/go-gl/mathgl/mgl64"

// Manager is an ordered, non-owning collection of field sources. Its
// Evaluate is the superposition of every enabled source whose Inside
// test passes. Sources are owned by lattice components;
// the manager only borrows references and never mutates them.
type Manager struct {
	sources []Source
}

// NewManager returns an empty field manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add appends a field source. Adding a nil source is a no-op.
func (m *Manager) Add(source Source) {
	if source == nil {
		return
	}
	m.sources = append(m.sources, source)
}

// Clear drops all references. It does not affect the sources themselves
// if they are still held elsewhere (e.g. by their owning lattice component).
func (m *Manager) Clear() {
	m.sources = nil
}

// Sources returns the manager's current source list, in registration
// order. Callers must not mutate the returned slice's sources.
func (m *Manager) Sources() []Source {
	return m.sources
}

// Evaluate returns the sum of Evaluate(pos, t) over every source that is
// Enabled and whose Inside(pos) holds. No ordering is required since
// addition is commutative.
func (m *Manager) Evaluate(pos mgl64.Vec3, t float64) Value {
	total := Zero
	for _, s := range m.sources {
		if !s.Enabled() || !s.Inside(pos) {
			continue
		}
		total = total.Add(s.Evaluate(pos, t))
	}
	return total
}
