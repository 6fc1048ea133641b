package lattice

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/field"
)

// Type tags the small closed set of lattice component kinds: a tagged
// variant over classical inheritance for this closed set.
type Type int

const (
	BeamPipeType Type = iota
	DipoleType
	QuadrupoleType
	RFCavityType
	DetectorType
)

func (t Type) String() string {
	switch t {
	case BeamPipeType:
		return "beampipe"
	case DipoleType:
		return "dipole"
	case QuadrupoleType:
		return "quadrupole"
	case RFCavityType:
		return "rfcavity"
	case DetectorType:
		return "detector"
	default:
		return "unknown"
	}
}

// Component is the capability trait every lattice element implements:
// type tag, name, length, aperture, global placement, s-position, and an
// optional wrapped field source.
type Component interface {
	Type() Type
	Name() string
	SetName(name string)
	Length() float64
	Aperture() Aperture
	SetAperture(a Aperture)
	Position() mgl64.Vec3
	SetPosition(pos mgl64.Vec3)
	Orientation() mgl64.Quat
	SetOrientation(q mgl64.Quat)
	SPosition() float64
	setSPosition(s float64)
	// FieldSource returns the component's wrapped field source, if any.
	// Mutating strength/gradient/voltage/frequency/phase invalidates the
	// cached source so the next call rebuilds it.
	FieldSource() (field.Source, bool)
	// Contains tests the component's aperture against a global position,
	// using the component's position/orientation to transform into
	// local coordinates and the local z window [0, Length].
	Contains(globalPos mgl64.Vec3) bool
}

// base holds the fields and behavior shared by every component variant.
type base struct {
	name string
	length float64
	aperture Aperture
	position mgl64.Vec3
	orientation mgl64.Quat
	sPosition float64
}

func newBase(name string, length float64, aperture Aperture) base {
	return base{
		name: name,
		length: length,
		aperture: aperture,
		orientation: mgl64.QuatIdent(),
	}
}

func (b *base) Name() string { return b.name }
func (b *base) SetName(name string) { b.name = name }
func (b *base) Length() float64 { return b.length }
func (b *base) Aperture() Aperture { return b.aperture }
func (b *base) SetAperture(a Aperture) { b.aperture = a }
func (b *base) Position() mgl64.Vec3 { return b.position }
func (b *base) SetPosition(pos mgl64.Vec3) { b.position = pos }
func (b *base) Orientation() mgl64.Quat { return b.orientation }
func (b *base) SetOrientation(q mgl64.Quat) { b.orientation = q }
func (b *base) SPosition() float64 { return b.sPosition }
func (b *base) setSPosition(s float64) { b.sPosition = s }

func (b *base) toLocal(pos mgl64.Vec3) mgl64.Vec3 {
	return b.orientation.Conjugate().Rotate(pos.Sub(b.position))
}

// Contains tests the aperture in local (x, y) and the local z window
// [0, Length].
func (b *base) Contains(globalPos mgl64.Vec3) bool {
	local := b.toLocal(globalPos)
	if local.Z() < 0 || local.Z() > b.length {
		return false
	}
	return b.aperture.Contains(local.X(), local.Y())
}

// fieldCenterAndOrientation places a wrapped field source so
// that its own local frame has z in [-Length/2, Length/2], matching the
// z-half-length window language the field sources use, by
// offsetting the center to the component's midpoint along its local z.
func (b *base) fieldCenterAndOrientation() (mgl64.Vec3, mgl64.Quat) {
	mid := b.orientation.Rotate(mgl64.Vec3{0, 0, b.length / 2})
	return b.position.Add(mid), b.orientation
}
