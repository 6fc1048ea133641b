// Package config holds the JSON-tagged configuration shapes and
// their load/save/materialize operations: plain encoding/json
// marshaling with report-and-keep-previous-on-failure behavior.
package config

import "github.com/gekko3d/beamline/integrate"

// SimulationConfig is the `"simulation"` section of the configuration
// file.
type SimulationConfig struct {
	TimeStep float64 `json:"timeStep"`
	TimeScale float64 `json:"timeScale"`
	IntegratorType int `json:"integratorType"`
	ParticleCount uint64 `json:"particleCount"`
	BeamEnergy float64 `json:"beamEnergy"` // eV
}

// WindowConfig is the `"window"` section. It is external to this
// engine (owned by the windowing collaborator) and carried here only
// as a JSON shape so the three top-level sections round-trip together.
type WindowConfig struct {
	Width int `json:"width"`
	Height int `json:"height"`
	VSync bool `json:"vsync"`
	Fullscreen bool `json:"fullscreen"`
}

// RenderConfig is the `"render"` section, external to this engine in
// the same sense as WindowConfig.
type RenderConfig struct {
	Wireframe bool `json:"wireframe"`
	ShowGrid bool `json:"showGrid"`
	ShowAxes bool `json:"showAxes"`
	ParticleSize float64 `json:"particleSize"`
	ColorScheme string `json:"colorScheme"`
}

// File is the whole configuration document: simulation, window, and
// render sections.
type File struct {
	Simulation SimulationConfig `json:"simulation"`
	Window WindowConfig `json:"window"`
	Render RenderConfig `json:"render"`
}

// ComponentConfig is one entry of an AcceleratorConfig's component
// list. Field, Gradient, Voltage, Frequency, and Phase are only
// meaningful for the component types that use them.
type ComponentConfig struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Length float64 `json:"length"`
	Aperture float64 `json:"aperture"`
	SPosition float64 `json:"sPosition"`
	Field float64 `json:"field,omitempty"`
	Gradient float64 `json:"gradient,omitempty"`
	Voltage float64 `json:"voltage,omitempty"`
	Frequency float64 `json:"frequency,omitempty"`
	Phase float64 `json:"phase,omitempty"`
}

// AcceleratorConfig is the accelerator/lattice file shape.
type AcceleratorConfig struct {
	LatticeType string `json:"latticeType"` // "linear" | "circular"
	TotalLength float64 `json:"totalLength"`
	Components []ComponentConfig `json:"components"`
}

// IntegratorKind maps a SimulationConfig.IntegratorType code to an
// integrate.Kind, per the {0:Euler,1:Verlet,2:Boris,3:RK4}. An
// unrecognized code defaults to Boris (config-domain errors
// default and continue).
func IntegratorKind(code int) integrate.Kind {
	switch code {
	case 0:
		return integrate.Euler
	case 1:
		return integrate.VelocityVerlet
	case 3:
		return integrate.RK4
	default:
		return integrate.Boris
	}
}
