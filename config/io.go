package config

import (
	"encoding/json"
	"os"

	"github.com/gekko3d/beamline"
)

// LoadFile reads and parses the three-section configuration document
// at path. On any I/O or parse failure it reports through logger and
// returns previous unchanged instead of propagating an error.
func LoadFile(logger beamline.Logger, path string, previous File) File {
	if logger == nil {
		logger = beamline.NewNopLogger()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("config: failed to read %s: %v, keeping previous configuration", path, err)
		return previous
	}
	var parsed File
	if err := json.Unmarshal(data, &parsed); err != nil {
		logger.Warnf("config: failed to parse %s: %v, keeping previous configuration", path, err)
		return previous
	}
	return parsed
}

// SaveFile writes cfg to path as indented JSON.
func SaveFile(path string, cfg File) error {
	data, err := json.MarshalIndent(cfg, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAcceleratorFile reads and parses an accelerator/lattice file at
// path, with the same report-and-keep-previous semantics as LoadFile.
func LoadAcceleratorFile(logger beamline.Logger, path string, previous AcceleratorConfig) AcceleratorConfig {
	if logger == nil {
		logger = beamline.NewNopLogger()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("config: failed to read accelerator file %s: %v, keeping previous configuration", path, err)
		return previous
	}
	var parsed AcceleratorConfig
	if err := json.Unmarshal(data, &parsed); err != nil {
		logger.Warnf("config: failed to parse accelerator file %s: %v, keeping previous configuration", path, err)
		return previous
	}
	return parsed
}

// SaveAcceleratorFile writes cfg to path as indented JSON.
func SaveAcceleratorFile(path string, cfg AcceleratorConfig) error {
	data, err := json.MarshalIndent(cfg, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
