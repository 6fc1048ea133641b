package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/beamline"
	"github.com/gekko3d/beamline/integrate"
	"github.com/gekko3d/beamline/lattice"
)

func TestSaveLoadFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := File{
		Simulation: SimulationConfig{TimeStep: 1e-9, TimeScale: 1, IntegratorType: 2, ParticleCount: 1000, BeamEnergy: 7e12},
		Window: WindowConfig{Width: 1280, Height: 720, VSync: true},
		Render: RenderConfig{Wireframe: false, ShowGrid: true, ParticleSize: 2, ColorScheme: "energy"},
	}
	require.NoError(t, SaveFile(path, cfg))

	loaded := LoadFile(beamline.NewNopLogger(), path, File{})
	assert.Equal(t, cfg, loaded)
}

func TestLoadFileMissingKeepsPrevious(t *testing.T) {
	previous := File{Simulation: SimulationConfig{TimeStep: 5e-9}}
	loaded := LoadFile(beamline.NewNopLogger(), "/nonexistent/path/config.json", previous)
	assert.Equal(t, previous, loaded)
}

func TestLoadFileBadJSONKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0644))

	previous := File{Simulation: SimulationConfig{TimeStep: 5e-9}}
	loaded := LoadFile(beamline.NewNopLogger(), path, previous)
	assert.Equal(t, previous, loaded)
}

func TestIntegratorKindMapping(t *testing.T) {
	assert.Equal(t, integrate.Euler, IntegratorKind(0))
	assert.Equal(t, integrate.VelocityVerlet, IntegratorKind(1))
	assert.Equal(t, integrate.Boris, IntegratorKind(2))
	assert.Equal(t, integrate.RK4, IntegratorKind(3))
	assert.Equal(t, integrate.Boris, IntegratorKind(99))
}

func TestBuildLatticeSkipsUnknownComponentType(t *testing.T) {
	cfg := AcceleratorConfig{
		LatticeType: "linear",
		Components: []ComponentConfig{
			{Type: "beampipe", Name: "d1", Length: 1, Aperture: 0.1},
			{Type: "wiggler", Name: "w1", Length: 1, Aperture: 0.1},
			{Type: "quadrupole", Name: "qf", Length: 0.5, Aperture: 0.05, Gradient: 50},
		},
	}
	lat := BuildLattice(beamline.NewNopLogger(), cfg)
	assert.Equal(t, 2, lat.Len())
}

func TestBuildAndDumpLatticeRoundTrip(t *testing.T) {
	cfg := AcceleratorConfig{
		LatticeType: "linear",
		Components: []ComponentConfig{
			{Type: "dipole", Name: "b1", Length: 2, Aperture: 0.05, Field: 1.5},
			{Type: "quadrupole", Name: "qf", Length: 0.5, Aperture: 0.05, Gradient: 50},
			{Type: "rfcavity", Name: "rf1", Length: 0.5, Aperture: 0.1, Voltage: 1e6, Frequency: 1e9, Phase: 0},
		},
	}
	lat := BuildLattice(beamline.NewNopLogger(), cfg)
	require.Equal(t, 3, lat.Len())

	dumped := DumpLattice(lat)
	require.Len(t, dumped.Components, 3)
	assert.Equal(t, "dipole", dumped.Components[0].Type)
	assert.InDelta(t, 1.5, dumped.Components[0].Field, 1e-9)
	assert.Equal(t, "quadrupole", dumped.Components[1].Type)
	assert.InDelta(t, 50.0, dumped.Components[1].Gradient, 1e-9)
	assert.Equal(t, "rfcavity", dumped.Components[2].Type)
	assert.InDelta(t, 1e6, dumped.Components[2].Voltage, 1e-6)
}

func TestBuildLatticeCircularClosesRing(t *testing.T) {
	cfg := AcceleratorConfig{
		LatticeType: "circular",
		Components: []ComponentConfig{
			{Type: "beampipe", Name: "d1", Length: 5, Aperture: 0.1},
		},
	}
	lat := BuildLattice(beamline.NewNopLogger(), cfg)
	assert.Equal(t, lattice.Circular, lat.Kind())
	_, ok := lat.GetComponentAtS(7) // wraps past total length 5
	assert.True(t, ok)
}
