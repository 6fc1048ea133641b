package lattice

import "github.com/gekko3d/beamline/field"

// BeamPipe is a field-free drift section.
type BeamPipe struct {
	base
}

// NewBeamPipe builds a named drift of the given length and aperture.
func NewBeamPipe(name string, length float64, aperture Aperture) *BeamPipe {
	return &BeamPipe{base: newBase(name, length, aperture)}
}

func (bp *BeamPipe) Type() Type { return BeamPipeType }

func (bp *BeamPipe) FieldSource() (field.Source, bool) { return nil, false }
