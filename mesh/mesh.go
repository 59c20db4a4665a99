// Package mesh represents an unstructured 2D computational mesh of
// triangles and quadrilaterals and derives its topology: directed
// half-edge faces, boundary codes, per-element centers, adjacency
// indices and boundary segments.
//
// Nodes and elements are supplied once at construction and are
// immutable thereafter; derived structures are built once and cached.
// Faces and adjacency lists reference nodes and elements by index into
// the mesh arenas, never by pointer.
package mesh

import (
	"fmt"

	"github.com/oceanmesh/gomesh/types"
)

// Node is a mesh vertex. Code 0 marks an interior node; nonzero codes
// tag boundary nodes with their physical boundary type.
type Node struct {
	ID      int
	X, Y, Z float64
	Code    types.BCFlag
}

// Element is a triangular or quadrilateral cell. Nodes are indices
// into the mesh node arena, listed counter-clockwise.
type Element struct {
	ID    int
	Nodes []int32
}

// Face is a directed half-edge between two nodes. Left is always set;
// Right is -1 exactly when the face lies on the mesh boundary. Code is
// 0 for internal faces and the boundary code otherwise.
type Face struct {
	From, To int32
	Left     int32
	Right    int32
	Code     types.BCFlag
}

// OnBoundary reports whether the face has no right element.
func (f Face) OnBoundary() bool {
	return f.Right < 0
}

// Grid is the capability interface the topology and interpolation
// algorithms are written against, so that the arena-backed Mesh and
// the struct-of-arrays ArrayGrid share one implementation.
type Grid interface {
	NumNodes() int
	NumElements() int
	NodeXY(n int) (x, y float64)
	NodeZ(n int) float64
	NodeCode(n int) types.BCFlag
	ElementNodes(k int) []int32
}

// Mesh is the aggregate root: it owns the node and element arenas and,
// once built, the derived topology.
type Mesh struct {
	Nodes    []Node
	Elements []Element

	top      *Topology
	warnings []Warning
	buildErr error
	built    bool
}

// NewMesh assembles a mesh from raw arrays: node ids, coordinates and
// boundary codes, element ids and 0-based element connectivity. All
// input is validated eagerly; the returned mesh carries no derived
// topology yet.
func NewMesh(nodeIDs []int, x, y, z []float64, codes []int,
	elementIDs []int, conn [][]int32) (m *Mesh, err error) {
	nn := len(nodeIDs)
	if len(x) != nn || len(y) != nn || len(z) != nn || len(codes) != nn {
		return nil, fmt.Errorf("node array length mismatch: ids %d, x %d, y %d, z %d, codes %d",
			nn, len(x), len(y), len(z), len(codes))
	}
	if len(elementIDs) != len(conn) {
		return nil, fmt.Errorf("element array length mismatch: ids %d, connectivity %d",
			len(elementIDs), len(conn))
	}
	m = &Mesh{
		Nodes:    make([]Node, nn),
		Elements: make([]Element, len(conn)),
	}
	for i := 0; i < nn; i++ {
		m.Nodes[i] = Node{
			ID:   nodeIDs[i],
			X:    x[i],
			Y:    y[i],
			Z:    z[i],
			Code: types.BCFlag(codes[i]),
		}
	}
	for k, nodes := range conn {
		if len(nodes) != 3 && len(nodes) != 4 {
			return nil, fmt.Errorf("element %d has %d nodes, must have 3 or 4",
				elementIDs[k], len(nodes))
		}
		for _, n := range nodes {
			if n < 0 || int(n) >= nn {
				return nil, fmt.Errorf("element %d references node index %d, valid range [0,%d)",
					elementIDs[k], n, nn)
			}
		}
		m.Elements[k] = Element{ID: elementIDs[k], Nodes: append([]int32{}, nodes...)}
	}
	return m, nil
}

func (m *Mesh) NumNodes() int    { return len(m.Nodes) }
func (m *Mesh) NumElements() int { return len(m.Elements) }

func (m *Mesh) NodeXY(n int) (x, y float64) {
	return m.Nodes[n].X, m.Nodes[n].Y
}

func (m *Mesh) NodeZ(n int) float64 {
	return m.Nodes[n].Z
}

func (m *Mesh) NodeCode(n int) types.BCFlag {
	return m.Nodes[n].Code
}

func (m *Mesh) ElementNodes(k int) []int32 {
	return m.Elements[k].Nodes
}

// Topology derives and caches the face graph, centers and adjacency
// indices on first call; later calls return the cached structure.
// The accumulated warnings are available from Warnings.
func (m *Mesh) Topology() (*Topology, error) {
	if !m.built {
		m.top, m.warnings, m.buildErr = BuildTopology(m)
		m.built = true
	}
	return m.top, m.buildErr
}

// Warnings returns the degraded-condition warnings accumulated while
// building the topology, nil before Topology has been called.
func (m *Mesh) Warnings() []Warning {
	return m.warnings
}

// ArrayGrid is the struct-of-arrays Grid adapter, for callers that
// already hold plain coordinate and connectivity arrays and do not
// need the Mesh aggregate.
type ArrayGrid struct {
	X, Y, Z []float64
	Codes   []int
	Conn    [][]int32
}

func (g ArrayGrid) NumNodes() int    { return len(g.X) }
func (g ArrayGrid) NumElements() int { return len(g.Conn) }

func (g ArrayGrid) NodeXY(n int) (x, y float64) {
	return g.X[n], g.Y[n]
}

func (g ArrayGrid) NodeZ(n int) float64 {
	if g.Z == nil {
		return 0
	}
	return g.Z[n]
}

func (g ArrayGrid) NodeCode(n int) types.BCFlag {
	if g.Codes == nil {
		return types.BC_Internal
	}
	return types.BCFlag(g.Codes[n])
}

func (g ArrayGrid) ElementNodes(k int) []int32 {
	return g.Conn[k]
}
