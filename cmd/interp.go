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

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/oceanmesh/gomesh/geometry2D"
	"github.com/oceanmesh/gomesh/interp"
	"github.com/oceanmesh/gomesh/params"
)

// DataDocument carries one source value array and the target points
// for an interpolation run.
type DataDocument struct {
	Values  []float64 `yaml:"Values"`
	Targets struct {
		X []float64 `yaml:"X"`
		Y []float64 `yaml:"Y"`
	} `yaml:"Targets"`
}

// interpCmd represents the interp command
var interpCmd = &cobra.Command{
	Use:   "interp",
	Short: "Interpolate a scalar field from a mesh onto target points",
	Long: `Registers a batch of target points against a source mesh and
applies one value array, reporting the interpolated values. Parameters
(delete value, circular type, chop mode, source kind) come from a YAML
parameters file, for example:

########################################
Title: "Surface elevation"
DeleteValue: 1e-35
CircularType: Normal   # Degrees180, Degrees360, RadiansPi, Radians2Pi
ChopMode: Abrupt       # or Smoothed
SourceKind: ElementsAndNodes
Tolerance: 1e-9
########################################`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err       error
			willExit  bool
			meshFile  string
			dataFile  string
			paramFile string
		)
		if meshFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			panic(err)
		}
		if dataFile, err = cmd.Flags().GetString("dataFile"); err != nil {
			panic(err)
		}
		paramFile, _ = cmd.Flags().GetString("parametersFile")
		if len(meshFile) == 0 {
			fmt.Println("error: must supply a mesh document (-F, --meshFile)")
			willExit = true
		}
		if len(dataFile) == 0 {
			fmt.Println("error: must supply a data document (-D, --dataFile)")
			willExit = true
		}
		if willExit {
			os.Exit(1)
		}
		runInterp(meshFile, dataFile, paramFile)
	},
}

func init() {
	rootCmd.AddCommand(interpCmd)
	interpCmd.Flags().StringP("meshFile", "F", "", "Mesh document to read (YAML node/element arrays)")
	interpCmd.Flags().StringP("dataFile", "D", "", "YAML document with Values and Targets")
	interpCmd.Flags().StringP("parametersFile", "I", "", "YAML file with interpolation parameters")
}

func runInterp(meshFile, dataFile, paramFile string) {
	m, err := readMeshFile(meshFile)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	ip := &params.InterpParameters{}
	if len(paramFile) != 0 {
		data, err := os.ReadFile(paramFile)
		if err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
		if err = ip.Parse(data); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
		ip.Print()
	}
	data, err := os.ReadFile(dataFile)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	var doc DataDocument
	if err = yaml.Unmarshal(data, &doc); err != nil {
		fmt.Printf("error: parsing %s: %s\n", dataFile, err)
		os.Exit(1)
	}
	if len(doc.Targets.X) != len(doc.Targets.Y) {
		fmt.Printf("error: target array length mismatch: X %d, Y %d\n",
			len(doc.Targets.X), len(doc.Targets.Y))
		os.Exit(1)
	}
	mi, err := interp.NewMeshInterpolator(m, ip.Config())
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	targets := make([]geometry2D.Point, len(doc.Targets.X))
	for i := range targets {
		targets[i] = geometry2D.Point{X: doc.Targets.X[i], Y: doc.Targets.Y[i]}
	}
	mi.RegisterTargets(targets)
	out, err := mi.Apply(doc.Values)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	for i, v := range out {
		fmt.Printf("%14.6g %14.6g %14.6g\n", targets[i].X, targets[i].Y, v)
	}
}
