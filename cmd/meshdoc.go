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

	"github.com/oceanmesh/gomesh/mesh"
)

// MeshDocument is the generic YAML form of raw mesh arrays consumed by
// the CLI. Domain mesh file formats are the business of external
// adapters; this document exists for debugging and scripted use.
type MeshDocument struct {
	Nodes struct {
		ID   []int     `yaml:"Id"`
		X    []float64 `yaml:"X"`
		Y    []float64 `yaml:"Y"`
		Z    []float64 `yaml:"Z"`
		Code []int     `yaml:"Code"`
	} `yaml:"Nodes"`
	Elements struct {
		ID           []int   `yaml:"Id"`
		Connectivity [][]int `yaml:"Connectivity"`
	} `yaml:"Elements"`
	// OneBased marks 1-based node references in Connectivity; they are
	// normalized to 0-based before the mesh is assembled.
	OneBased bool `yaml:"OneBased"`
}

// Build assembles and validates the mesh described by the document.
func (doc *MeshDocument) Build() (*mesh.Mesh, error) {
	n := &doc.Nodes
	if n.Z == nil {
		n.Z = make([]float64, len(n.X))
	}
	if n.Code == nil {
		n.Code = make([]int, len(n.X))
	}
	if n.ID == nil {
		n.ID = identity(len(n.X))
	}
	if doc.Elements.ID == nil {
		doc.Elements.ID = identity(len(doc.Elements.Connectivity))
	}
	conn := make([][]int32, len(doc.Elements.Connectivity))
	for k, nodes := range doc.Elements.Connectivity {
		conn[k] = make([]int32, len(nodes))
		for i, v := range nodes {
			if doc.OneBased {
				v--
			}
			conn[k][i] = int32(v)
		}
	}
	return mesh.NewMesh(n.ID, n.X, n.Y, n.Z, n.Code, doc.Elements.ID, conn)
}

func identity(n int) (ids []int) {
	ids = make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return
}

func readMeshFile(path string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc MeshDocument
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc.Build()
}
