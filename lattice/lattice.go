package lattice

import (
	"math"

	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/physics"
)

// Kind is the overall lattice topology: linear (a beamline) or circular
// (a ring).
type Kind int

const (
	Linear Kind = iota
	Circular
)

// Lattice is an ordered sequence of components plus a topology kind.
// s-positions are the running prefix sum of component lengths
// starting at 0, recomputed by ComputeLattice.
type Lattice struct {
	components []Component
	kind Kind
	totalLength float64
}

// New returns an empty lattice of the given kind.
func New(kind Kind) *Lattice {
	return &Lattice{kind: kind}
}

// Kind returns the lattice's topology.
func (l *Lattice) Kind() Kind { return l.kind }

// TotalLength returns the lattice's total length as of the last
// ComputeLattice call.
func (l *Lattice) TotalLength() float64 { return l.totalLength }

// Len returns the number of components in the lattice.
func (l *Lattice) Len() int { return len(l.components) }

// Components returns the lattice's components in order. Callers must
// not mutate the returned slice's backing array; mutating a component
// through it is fine (that's how strengths/gradients are changed) but
// structural changes must go through Append/InsertAt/RemoveAt.
func (l *Lattice) Components() []Component {
	return l.components
}

// Append adds a component at the end of the lattice. s-positions become
// stale until ComputeLattice runs again.
func (l *Lattice) Append(c Component) {
	l.components = append(l.components, c)
}

// InsertAt inserts a component at the given index, clamping out-of-range
// indices to the nearest valid bound.
func (l *Lattice) InsertAt(index int, c Component) {
	if index < 0 {
		index = 0
	}
	if index > len(l.components) {
		index = len(l.components)
	}
	l.components = append(l.components, nil)
	copy(l.components[index+1:], l.components[index:])
	l.components[index] = c
}

// RemoveAt removes the component at the given index. Out-of-range
// indices are a silent no-op.
func (l *Lattice) RemoveAt(index int) {
	if index < 0 || index >= len(l.components) {
		return
	}
	l.components = append(l.components[:index], l.components[index+1:]...)
}

// RemoveByName removes the first component with the given name. No
// match is a silent no-op.
func (l *Lattice) RemoveByName(name string) {
	for i, c := range l.components {
		if c.Name() == name {
			l.RemoveAt(i)
			return
		}
	}
}

// ComponentByName returns the first component with the given name.
func (l *Lattice) ComponentByName(name string) (Component, bool) {
	for _, c := range l.components {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// ComponentAt returns the component at the given index.
func (l *Lattice) ComponentAt(index int) (Component, bool) {
	if index < 0 || index >= len(l.components) {
		return nil, false
	}
	return l.components[index], true
}

// ComputeLattice recomputes s-positions as the prefix sum of lengths and
// the total length.
func (l *Lattice) ComputeLattice() {
	s := 0.0
	for _, c := range l.components {
		c.setSPosition(s)
		s += c.Length()
	}
	l.totalLength = s
}

// CloseRing sets the lattice's kind to circular and recomputes
// s-positions.
func (l *Lattice) CloseRing() {
	l.kind = Circular
	l.ComputeLattice()
}

// GetComponentAtS returns the unique component whose [s_i, s_i+L_i)
// contains s. For circular lattices, s is reduced modulo the total
// length (negative values wrapped into [0, total)). Returns not-found on
// an empty lattice or, for a linear lattice, for s outside [0, total).
func (l *Lattice) GetComponentAtS(s float64) (Component, bool) {
	if len(l.components) == 0 || l.totalLength <= 0 {
		return nil, false
	}

	if l.kind == Circular {
		s = math.Mod(s, l.totalLength)
		if s < 0 {
			s += l.totalLength
		}
	} else if s < 0 || s >= l.totalLength {
		return nil, false
	}

	for _, c := range l.components {
		start := c.SPosition()
		if s >= start && s < start+c.Length() {
			return c, true
		}
	}
	return nil, false
}

// PopulateFieldManager appends the field source of each component that
// has one. It does not clear the manager first.
func (l *Lattice) PopulateFieldManager(mgr *field.Manager) {
	for _, c := range l.components {
		if src, ok := c.FieldSource(); ok {
			mgr.Add(src)
		}
	}
}

// BuildFODOLattice appends a focusing-defocusing periodic cell:
// QF(quadLength, +gradient), Drift(d), QD(quadLength, -gradient),
// Drift(d). If driftLength <= 0, d is derived as
// (cellLength - 2*quadLength)/2 so the cell totals cellLength. Names use
// the given prefix.
func (l *Lattice) BuildFODOLattice(prefix string, cellLength, quadLength, gradient, driftLength float64) {
	d := driftLength
	if d <= 0 {
		d = (cellLength - 2*quadLength) / 2
	}

	qfAperture := NewCircularAperture(0.05)
	driftAperture := NewCircularAperture(0.05)

	l.Append(NewQuadrupole(prefix+"-QF", quadLength, qfAperture, gradient))
	l.Append(NewBeamPipe(prefix+"-D1", d, driftAperture))
	l.Append(NewQuadrupole(prefix+"-QD", quadLength, qfAperture, -gradient))
	l.Append(NewBeamPipe(prefix+"-D2", d, driftAperture))
}

// GetTotalBendingAngle returns sum(|q|*|B_i|*L_i) / p0 over the
// lattice's dipoles, for the given reference momentum p0, using the
// elementary charge magnitude. It uses the magnitude of each
// dipole's configured field vector.
func (l *Lattice) GetTotalBendingAngle(p0 float64) float64 {
	if p0 == 0 {
		return 0
	}
	total := 0.0
	for _, c := range l.components {
		dip, ok := c.(*Dipole)
		if !ok {
			continue
		}
		total += physics.ElementaryCharge * dip.Field().Len() * dip.Length()
	}
	return total / p0
}
