package config

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/beamline"
	"github.com/gekko3d/beamline/lattice"
)

// dipoleFieldAxis is the convention BuildLattice/DumpLattice agree on
// for a dipole's scalar "field" (T): the bending field points along Y
// (vertical), the usual choice for horizontal-plane bending.
var dipoleFieldAxis = mgl64.Vec3{0, 1, 0}

// BuildLattice materializes an AcceleratorConfig into a live
// lattice.Lattice (the accelerator file format names the JSON shape
// only; a configuration collaborator needs the shape to actually
// produce something the engine can bind). An unrecognized component
// type is skipped with a logged warning and loading continues.
func BuildLattice(logger beamline.Logger, cfg AcceleratorConfig) *lattice.Lattice {
	if logger == nil {
		logger = beamline.NewNopLogger()
	}

	kind := lattice.Linear
	if cfg.LatticeType == "circular" {
		kind = lattice.Circular
	}
	lat := lattice.New(kind)

	for _, c := range cfg.Components {
		aperture := lattice.NewCircularAperture(c.Aperture)
		switch c.Type {
		case "beampipe", "drift":
			lat.Append(lattice.NewBeamPipe(c.Name, c.Length, aperture))
		case "dipole":
			lat.Append(lattice.NewDipole(c.Name, c.Length, aperture, dipoleFieldAxis.Mul(c.Field)))
		case "quadrupole":
			lat.Append(lattice.NewQuadrupole(c.Name, c.Length, aperture, c.Gradient))
		case "rfcavity":
			lat.Append(lattice.NewRFCavity(c.Name, c.Length, aperture, c.Voltage, c.Frequency, c.Phase))
		case "detector":
			lat.Append(lattice.NewDetector(c.Name, c.Length, aperture))
		default:
			logger.Warnf("config: unknown component type %q for %q, skipping", c.Type, c.Name)
		}
	}

	lat.ComputeLattice()
	return lat
}

// DumpLattice is BuildLattice's inverse: it captures a live lattice as
// an AcceleratorConfig suitable for SaveAcceleratorFile.
func DumpLattice(lat *lattice.Lattice) AcceleratorConfig {
	cfg := AcceleratorConfig{TotalLength: lat.TotalLength()}
	if lat.Kind() == lattice.Circular {
		cfg.LatticeType = "circular"
	} else {
		cfg.LatticeType = "linear"
	}

	for _, c := range lat.Components() {
		cc := ComponentConfig{
			Name:      c.Name(),
			Length:    c.Length(),
			Aperture:  c.Aperture().RX,
			SPosition: c.SPosition(),
		}
		switch v := c.(type) {
		case *lattice.BeamPipe:
			cc.Type = "beampipe"
		case *lattice.Dipole:
			cc.Type = "dipole"
			cc.Field = v.Field().Dot(dipoleFieldAxis)
		case *lattice.Quadrupole:
			cc.Type = "quadrupole"
			cc.Gradient = v.Gradient()
		case *lattice.RFCavity:
			cc.Type = "rfcavity"
			cc.Voltage = v.Voltage()
			cc.Frequency = v.Frequency()
			cc.Phase = v.Phase()
		case *lattice.Detector:
			cc.Type = "detector"
		}
		cfg.Components = append(cfg.Components, cc)
	}
	return cfg
}
