// Package config loads the solver's chamber and run parameters from a
// YAML file. Grounded on InputParameters/InputParameters2D.go and
// cmd/2D.go's InputParameters struct: the same yaml-tag/Parse/Print
// idiom, scaled to the jet solver's parameter set.
package config

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/jetsolver/fluid"
)

// Config holds everything needed to drive a fluid.Solver headlessly.
type Config struct {
	Title           string  `yaml:"Title"`
	Nx              int     `yaml:"Nx"`
	Ny              int     `yaml:"Ny"`
	CFL             float64 `yaml:"CFL"`
	SimulationSpeed float64 `yaml:"SimulationSpeed"`
	PressureTotal   float64 `yaml:"PressureTotal"`
	TempTotal       float64 `yaml:"TempTotal"`
	Mach            float64 `yaml:"Mach"`
	PressureAmbient float64 `yaml:"PressureAmbient"`
	Steps           int     `yaml:"Steps"`
	Field           string  `yaml:"Field"`
}

// Default returns the module's default configuration (spec.md section
// 6 "Default parameter values").
func Default() Config {
	return Config{
		Title:           "underexpanded jet (default)",
		Nx:              300,
		Ny:              150,
		CFL:             0.5,
		SimulationSpeed: 1.0,
		PressureTotal:   350000,
		TempTotal:       1000,
		Mach:            2.0,
		PressureAmbient: 101325,
		Steps:           3000,
		Field:           "mach",
	}
}

// Parse unmarshals YAML data into c, leaving any omitted fields at
// their current (typically Default()) values.
func (c *Config) Parse(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// Print dumps the configuration for diagnostic purposes, matching
// InputParameters2D.Print's layout.
func (c *Config) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", c.Title)
	fmt.Printf("%d x %d\t\t= Grid (Nx, Ny)\n", c.Nx, c.Ny)
	fmt.Printf("%8.5f\t\t= CFL\n", c.CFL)
	fmt.Printf("%8.5f\t\t= SimulationSpeed\n", c.SimulationSpeed)
	fmt.Printf("%10.1f\t\t= PressureTotal\n", c.PressureTotal)
	fmt.Printf("%10.1f\t\t= TempTotal\n", c.TempTotal)
	fmt.Printf("%8.5f\t\t= Mach\n", c.Mach)
	fmt.Printf("%10.1f\t\t= PressureAmbient\n", c.PressureAmbient)
	fmt.Printf("%d\t\t\t= Steps\n", c.Steps)
	fmt.Printf("[%s]\t\t\t= Field\n", c.Field)
}

// ChamberParams returns the fluid.ChamberParams implied by this config.
func (c *Config) ChamberParams() fluid.ChamberParams {
	return fluid.ChamberParams{
		PressureTotal:   c.PressureTotal,
		TempTotal:       c.TempTotal,
		Mach:            c.Mach,
		PressureAmbient: c.PressureAmbient,
	}
}

// fieldModes maps the YAML Field name to a fluid.FieldMode, mirroring
// InputParameters2D's string-keyed lookups (e.g. FluxNames in
// model_problems/Euler2D/fluxes.go).
var fieldModes = map[string]fluid.FieldMode{
	"density":     fluid.FieldDensity,
	"pressure":    fluid.FieldPressure,
	"velocity":    fluid.FieldVelocity,
	"temperature": fluid.FieldTemperature,
	"mach":        fluid.FieldMach,
	"schlieren":   fluid.FieldSchlieren,
}

// FieldMode resolves the configured Field name.
func (c *Config) FieldMode() (fluid.FieldMode, error) {
	mode, ok := fieldModes[c.Field]
	if !ok {
		names := make([]string, 0, len(fieldModes))
		for k := range fieldModes {
			names = append(names, k)
		}
		sort.Strings(names)
		return 0, fmt.Errorf("config: unknown field %q, want one of %v", c.Field, names)
	}
	return mode, nil
}
