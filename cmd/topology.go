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
	"sort"

	"github.com/spf13/cobra"

	"github.com/oceanmesh/gomesh/mesh"
	"github.com/oceanmesh/gomesh/types"
)

// topologyCmd represents the topology command
var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Derive and report the face topology and boundaries of a mesh",
	Long: `Builds the directed face graph of a mesh given as a YAML document
of raw node/element arrays, then reports face counts, boundary
segments per code and the assembled boundary polygons.`,
	Run: func(cmd *cobra.Command, args []string) {
		meshFile, err := cmd.Flags().GetString("meshFile")
		if err != nil {
			panic(err)
		}
		if len(meshFile) == 0 {
			fmt.Println("error: must supply a mesh document (-F, --meshFile)")
			os.Exit(1)
		}
		polygons, err := cmd.Flags().GetBool("polygons")
		if err != nil {
			panic(err)
		}
		m, err := readMeshFile(meshFile)
		if err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
		reportTopology(m, polygons)
	},
}

func init() {
	rootCmd.AddCommand(topologyCmd)
	topologyCmd.Flags().StringP("meshFile", "F", "", "Mesh document to read (YAML node/element arrays)")
	topologyCmd.Flags().BoolP("polygons", "p", false, "assemble and report boundary polygons")
}

func reportTopology(m *mesh.Mesh, polygons bool) {
	top, err := m.Topology()
	if err != nil {
		fmt.Printf("topology build failed: %s\n", err)
		os.Exit(1)
	}
	boundary := top.BoundaryFaces()
	fmt.Printf("%d\t\t= Nodes\n", m.NumNodes())
	fmt.Printf("%d\t\t= Elements\n", m.NumElements())
	fmt.Printf("%d\t\t= Faces\n", len(top.Faces))
	fmt.Printf("%d\t\t= Boundary faces\n", len(boundary))
	for _, w := range m.Warnings() {
		fmt.Printf("warning: %s\n", w)
	}
	segments := mesh.TraceBoundaries(top)
	codes := make([]types.BCFlag, 0, len(segments))
	for code := range segments {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		for _, seg := range segments[code] {
			state := "open"
			if seg.Closed {
				state = "closed"
			}
			fmt.Printf("code %d [%s]: %d faces, node %d -> node %d\n",
				code, state, len(seg.Faces),
				m.Nodes[seg.FirstNode(top)].ID, m.Nodes[seg.LastNode(top)].ID)
		}
	}
	if !polygons {
		return
	}
	polys, err := m.BoundaryPolygons()
	if err != nil {
		fmt.Printf("polygon assembly failed: %s\n", err)
		return
	}
	for i, poly := range polys {
		fmt.Printf("component %d: shell of %d points, %d holes, area %.6g\n",
			i, len(poly[0]), len(poly)-1, poly.Area())
	}
}
