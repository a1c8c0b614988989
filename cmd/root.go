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
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var cfgFile string

// RootCmd is the base command when called without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "jetsolver",
	Short: "Compressible fluid solver core for a 2D supersonic jet simulator",
	Long: `jetsolver drives the finite-volume Euler solver core: a
Roe-flux, dimensionally-split, positivity-preserving compressible flow
solver over a fixed rectangular grid, representing an underexpanded
supersonic jet.`,
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.jetsolver.yaml)")
}

// resolveConfigPath returns the explicit --config path if given,
// otherwise the default $HOME/.jetsolver.yaml path.
func resolveConfigPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("jetsolver: cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".jetsolver.yaml"), nil
}
