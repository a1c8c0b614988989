/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/notargets/jetsolver/config"
	"github.com/notargets/jetsolver/fluid"
)

// RunCmd drives the solver headlessly: load config, step it, export a
// scalar field to CSV. Grounded on cmd/2D.go's TwoDCmd (flag parsing,
// processInput-then-drive shape).
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jet solver for a number of steps and export a scalar field",
	Run: func(cmd *cobra.Command, args []string) {
		steps, _ := cmd.Flags().GetInt("steps")
		field, _ := cmd.Flags().GetString("field")
		out, _ := cmd.Flags().GetString("out")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg := loadConfig(verbose)
		if steps > 0 {
			cfg.Steps = steps
		}
		if field != "" {
			cfg.Field = field
		}
		if verbose {
			cfg.Print()
		}

		if err := runSolver(cfg, out, verbose); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(RunCmd)
	RunCmd.Flags().Int("steps", 0, "number of steps to run (0 = use config value)")
	RunCmd.Flags().String("field", "", "scalar field to export: density|pressure|velocity|temperature|mach|schlieren")
	RunCmd.Flags().String("out", "", "CSV path to write the final scalar field (default: stdout)")
	RunCmd.Flags().BoolP("verbose", "v", false, "print configuration and progress")
}

// loadConfig reads the configured YAML file if present, otherwise
// falls back to config.Default().
func loadConfig(verbose bool) config.Config {
	cfg := config.Default()
	path, err := resolveConfigPath()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if verbose {
			fmt.Printf("no config file at %s, using defaults\n", path)
		}
		return cfg
	}
	if err := cfg.Parse(data); err != nil {
		fmt.Fprintf(os.Stderr, "jetsolver: failed to parse %s: %v, using defaults\n", path, err)
		return config.Default()
	}
	return cfg
}

// runSolver implements the spec.md section 5 external driver loop: a
// fractional simulationSpeed accumulator releases floor(accumulator)
// steps per tick, hard-capped at 10, remainder carried across ticks.
func runSolver(cfg config.Config, out string, verbose bool) error {
	solver, err := fluid.NewSolver(cfg.Nx, cfg.Ny)
	if err != nil {
		return err
	}
	if err := solver.UpdateBoundary(cfg.ChamberParams()); err != nil {
		return err
	}
	solver.Reset()
	solver.SetVerbose(verbose)

	mode, err := cfg.FieldMode()
	if err != nil {
		return err
	}

	const stepCap = 10
	accumulator := 0.0
	done := 0
	for done < cfg.Steps {
		accumulator += cfg.SimulationSpeed
		n := int(accumulator)
		if n > stepCap {
			n = stepCap
			accumulator = 0
		} else {
			accumulator -= float64(n)
		}
		for i := 0; i < n && done < cfg.Steps; i++ {
			if err := solver.Step(cfg.CFL); err != nil {
				return err
			}
			done++
		}
		if verbose && done%500 == 0 {
			fmt.Printf("step %d / %d, t=%g\n", done, cfg.Steps, solver.T())
		}
	}

	values, min, max := solver.ScalarField(mode)
	return writeCSV(out, solver.Nx(), solver.Ny(), values, min, max)
}

// writeCSV writes the field as ny rows of nx values plus a trailing
// min/max summary row. This is the nearest "external renderer" stand-in
// available without a GUI stack; it holds no solver state between
// invocations.
func writeCSV(path string, nx, ny int, values []float32, min, max float32) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("jetsolver: cannot create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for j := 0; j < ny; j++ {
		row := make([]string, nx)
		for i := 0; i < nx; i++ {
			row[i] = strconv.FormatFloat(float64(values[j*nx+i]), 'g', 6, 32)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Write([]string{"min", strconv.FormatFloat(float64(min), 'g', 6, 32), "max", strconv.FormatFloat(float64(max), 'g', 6, 32)})
}
