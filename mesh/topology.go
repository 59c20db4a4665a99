package mesh

import (
	"fmt"

	"github.com/oceanmesh/gomesh/types"
)

// Center is a derived element center, the arithmetic mean of the
// element's node coordinates.
type Center struct {
	X, Y, Z float64
}

// Warning records a degraded but recoverable condition met while
// building the topology, e.g. a boundary face whose nodes carry no
// boundary code. Warnings are accumulated, never returned as errors,
// so one bad code does not fail a large mesh build.
type Warning struct {
	Face int
	Node int
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("face %d (node %d): %s", w.Face, w.Node, w.Msg)
}

// Topology holds every derived structure of a mesh: the directed face
// list and the adjacency indices keyed by node and element index. Once
// built it is read-only.
type Topology struct {
	Faces        []Face
	NodeFaces    [][]int32 // node index -> incident face indices
	NodeElements [][]int32 // node index -> incident element indices
	ElementFaces [][]int32 // element index -> its face indices, in node-cycle order
	Centers      []Center  // element index -> center
}

// BuildTopology derives the face graph of g. For every element and
// every consecutive node pair (from,to) of its counter-clockwise node
// cycle, the reverse edge (to,from) is looked up among the faces
// already registered at from; when present that face gains this
// element as its right element, otherwise a new face (from,to) is
// created with this element on its left and registered under both
// endpoints. A second occurrence of the same directed edge means two
// elements share an edge with identical winding, i.e. a malformed
// mesh, and aborts the build.
//
// Boundary faces are classified after the sweep: a face keeps code 0
// while internal; on the boundary it takes the land code when either
// endpoint is coded land, degrades to land with a warning when the
// governing to-node code is missing, and takes the to-node's code
// otherwise. A missing from-node code on a boundary face is warned as
// well, without changing the classification.
func BuildTopology(g Grid) (top *Topology, warnings []Warning, err error) {
	var (
		nn = g.NumNodes()
		ne = g.NumElements()
	)
	top = &Topology{
		Faces:        make([]Face, 0, 3*ne),
		NodeFaces:    make([][]int32, nn),
		NodeElements: make([][]int32, nn),
		ElementFaces: make([][]int32, ne),
		Centers:      make([]Center, ne),
	}
	for k := 0; k < ne; k++ {
		nodes := g.ElementNodes(k)
		if len(nodes) != 3 && len(nodes) != 4 {
			return nil, nil, fmt.Errorf("element %d has %d nodes, must have 3 or 4", k, len(nodes))
		}
		top.ElementFaces[k] = make([]int32, 0, len(nodes))
		for i, from := range nodes {
			to := nodes[(i+1)%len(nodes)]
			fi, dup, full := findFaceAt(top, from, to)
			if dup {
				return nil, nil, fmt.Errorf(
					"duplicate directed face edge %d->%d at element %d: mesh is malformed (check node merge tolerance)",
					from, to, k)
			}
			if full {
				return nil, nil, fmt.Errorf(
					"edge %d-%d at element %d is already shared by two elements", from, to, k)
			}
			if fi >= 0 {
				top.Faces[fi].Right = int32(k)
			} else {
				fi = int32(len(top.Faces))
				top.Faces = append(top.Faces, Face{From: from, To: to, Left: int32(k), Right: -1})
				top.NodeFaces[from] = append(top.NodeFaces[from], fi)
				top.NodeFaces[to] = append(top.NodeFaces[to], fi)
			}
			top.ElementFaces[k] = append(top.ElementFaces[k], fi)
		}
		buildCenter(g, top, k)
		for _, n := range nodes {
			top.NodeElements[n] = append(top.NodeElements[n], int32(k))
		}
	}
	warnings = classifyBoundaryFaces(g, top)
	return top, warnings, nil
}

// findFaceAt scans the faces registered at node from. dup is true when
// the directed edge (from,to) itself is already present, full when the
// reverse face already has both elements; otherwise fi is the index of
// the open reverse face (to,from), or -1.
func findFaceAt(top *Topology, from, to int32) (fi int32, dup, full bool) {
	fi = -1
	for _, j := range top.NodeFaces[from] {
		f := top.Faces[j]
		if f.From == from && f.To == to {
			return -1, true, false
		}
		if f.From == to && f.To == from {
			if f.Right >= 0 {
				return -1, false, true
			}
			fi = j
		}
	}
	return fi, false, false
}

func buildCenter(g Grid, top *Topology, k int) {
	var c Center
	nodes := g.ElementNodes(k)
	for _, n := range nodes {
		x, y := g.NodeXY(int(n))
		c.X += x
		c.Y += y
		c.Z += g.NodeZ(int(n))
	}
	div := float64(len(nodes))
	c.X /= div
	c.Y /= div
	c.Z /= div
	top.Centers[k] = c
}

func classifyBoundaryFaces(g Grid, top *Topology) (warnings []Warning) {
	for i := range top.Faces {
		f := &top.Faces[i]
		if !f.OnBoundary() {
			continue
		}
		fromCode := g.NodeCode(int(f.From))
		toCode := g.NodeCode(int(f.To))
		switch {
		case fromCode == types.BC_Land || toCode == types.BC_Land:
			f.Code = types.BC_Land
		case toCode == types.BC_Internal:
			warnings = append(warnings, Warning{
				Face: i,
				Node: int(f.To),
				Msg:  "boundary face endpoint has no boundary code, treating as land",
			})
			f.Code = types.BC_Land
		default:
			if fromCode == types.BC_Internal {
				warnings = append(warnings, Warning{
					Face: i,
					Node: int(f.From),
					Msg:  "boundary face endpoint has no boundary code",
				})
			}
			f.Code = toCode
		}
	}
	return
}

// BoundaryFaces returns the indices of all faces without a right
// element.
func (top *Topology) BoundaryFaces() (faces []int32) {
	for i, f := range top.Faces {
		if f.OnBoundary() {
			faces = append(faces, int32(i))
		}
	}
	return
}

// Neighbor returns the element on the other side of face fi from
// element k, or -1 when fi is a boundary face.
func (top *Topology) Neighbor(k int, fi int32) int32 {
	f := top.Faces[fi]
	if f.Left == int32(k) {
		return f.Right
	}
	return f.Left
}
