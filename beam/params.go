package beam

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline/particle"
	"github.com/gekko3d/beamline/physics"
)

// ParticleType is the small closed set of species the generator can
// produce.
type ParticleType int

const (
	Electron ParticleType = iota
	Positron
	Proton
	Antiproton
)

func (t ParticleType) String() string {
	switch t {
	case Electron:
		return "electron"
	case Positron:
		return "positron"
	case Proton:
		return "proton"
	case Antiproton:
		return "antiproton"
	default:
		return "unknown"
	}
}

// Mass returns the species' rest mass in kg.
func (t ParticleType) Mass() float64 {
	switch t {
	case Electron, Positron:
		return physics.ElectronMass
	default:
		return physics.ProtonMass
	}
}

// New constructs a particle of this species at the given position and
// momentum.
func (t ParticleType) New(position, momentum mgl64.Vec3) *particle.Particle {
	switch t {
	case Electron:
		return particle.NewElectron(position, momentum)
	case Positron:
		return particle.NewPositron(position, momentum)
	case Antiproton:
		return particle.NewAntiproton(position, momentum)
	default:
		return particle.NewProton(position, momentum)
	}
}

// Distribution is the beam's spatial-momentum sampling kind.
// An unrecognized value falls back to Gaussian (config-domain
// errors default and continue rather than fail).
type Distribution int

const (
	Gaussian Distribution = iota
	Uniform
	Waterbag
)

func (d Distribution) String() string {
	switch d {
	case Gaussian:
		return "gaussian"
	case Uniform:
		return "uniform"
	case Waterbag:
		return "waterbag"
	default:
		return "unknown"
	}
}

// Parameters configures GenerateBeam (BeamParameters).
type Parameters struct {
	ParticleType ParticleType
	NumParticles int
	KineticEnergy float64 // J
	SigmaX, SigmaY, SigmaZ float64 // m
	SigmaPx, SigmaPy float64 // relative
	SigmaDelta float64 // relative
	PositionOffset mgl64.Vec3
	Direction mgl64.Vec3 // normalized on use
	Distribution Distribution
	Seed uint64
}
