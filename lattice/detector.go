package lattice

import "github.com/gekko3d/beamline/field"

// Detector is a field-free element that records particle hits passing
// through its aperture.
type Detector struct {
	base

	hits uint64
}

// NewDetector builds a named detector of the given length and aperture.
func NewDetector(name string, length float64, aperture Aperture) *Detector {
	return &Detector{base: newBase(name, length, aperture)}
}

func (d *Detector) Type() Type { return DetectorType }

func (d *Detector) FieldSource() (field.Source, bool) { return nil, false }

// RecordHit increments the detector's hit counter.
func (d *Detector) RecordHit() { d.hits++ }

// Hits returns the number of hits recorded so far.
func (d *Detector) Hits() uint64 { return d.hits }
