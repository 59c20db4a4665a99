package interp

import (
	"fmt"
	"strings"

	"github.com/oceanmesh/gomesh/geometry2D"
	"github.com/oceanmesh/gomesh/mesh"
	"github.com/oceanmesh/gomesh/types"
)

// SourceKind states where the source values live.
type SourceKind uint8

const (
	// SourceElementsAndNodes takes element-center values, derives node
	// values through the pseudo-Laplacian reconstruction and blends
	// both over a local sub-triangle. The default and most accurate
	// mode.
	SourceElementsAndNodes SourceKind = iota
	// SourceNodes takes node values and weighs them with triangle
	// barycentric or quadrilateral bilinear coordinates.
	SourceNodes
)

var SourceNameMap = map[string]SourceKind{
	"elementsandnodes": SourceElementsAndNodes,
	"elements":         SourceElementsAndNodes,
	"nodes":            SourceNodes,
}

// ParseSourceName converts a source kind name to a SourceKind. Unknown
// names map to SourceElementsAndNodes.
func ParseSourceName(name string) SourceKind {
	if sk, ok := SourceNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return sk
	}
	return SourceElementsAndNodes
}

func (sk SourceKind) String() string {
	if sk == SourceNodes {
		return "Nodes"
	}
	return "ElementsAndNodes"
}

// Config collects the interpolation settings.
type Config struct {
	// DeleteValue is the sample value treated as "no data". Zero means
	// unset and is replaced by types.DeleteValue; a literal zero cannot
	// serve as a delete value since it is an ordinary sample value.
	DeleteValue        float64
	Circular           types.CircularType
	Chop               ChopMode
	Source             SourceKind
	Tolerance          float64 // point location slack, 0 disables the relaxed retry
	AllowExtrapolation bool    // lifts the [0,2] clamp in the node reconstruction
}

// DefaultConfig returns the settings used when nothing is configured:
// element+node sourcing, linear quantities, abrupt chop and the
// standard delete value.
func DefaultConfig() Config {
	return Config{DeleteValue: types.DeleteValue}
}

// valueRef addresses one source sample: an element-center value or a
// node value.
type valueRef struct {
	index int32
	node  bool
}

// targetWeights is the registered weight record of one target point.
// found false means the point lies outside the mesh and always yields
// the delete value. A quadrilateral node-sourced target keeps its
// local coordinates instead of fixed weights, because its delete-value
// case analysis depends on which corners survive at apply time.
type targetWeights struct {
	found bool

	quad  bool
	nodes [4]int32
	dx    float64
	dy    float64

	refs    []valueRef
	weights []float64
}

// MeshInterpolator maps source values resident on one mesh to a batch
// of target points. Registration computes the weights once; Apply
// reuses them across any number of value arrays (e.g. time steps).
type MeshInterpolator struct {
	g   mesh.Grid
	top *mesh.Topology
	loc *Locator
	ni  *NodeInterpolator
	cfg Config

	targets []targetWeights
}

// NewMeshInterpolator builds the spatial index and, in element+node
// mode, the node reconstruction weights for g. A *mesh.Mesh Grid
// reuses its cached topology.
func NewMeshInterpolator(g mesh.Grid, cfg Config) (mi *MeshInterpolator, err error) {
	if cfg.DeleteValue == 0 {
		cfg.DeleteValue = types.DeleteValue
	}
	var top *mesh.Topology
	if m, ok := g.(*mesh.Mesh); ok {
		if top, err = m.Topology(); err != nil {
			return nil, err
		}
	} else if top, _, err = mesh.BuildTopology(g); err != nil {
		return nil, err
	}
	mi = &MeshInterpolator{
		g:   g,
		top: top,
		loc: NewLocator(g, cfg.Tolerance),
		cfg: cfg,
	}
	if cfg.Source == SourceElementsAndNodes {
		mi.ni = SetupNodeInterpolation(g, top, cfg.AllowExtrapolation)
	}
	return mi, nil
}

// RegisterTargets locates every target point and stores its weights,
// replacing any previously registered batch.
func (mi *MeshInterpolator) RegisterTargets(points []geometry2D.Point) {
	mi.targets = make([]targetWeights, len(points))
	for i, p := range points {
		k, found := mi.loc.FindElement(p.X, p.Y)
		if !found {
			continue
		}
		if mi.cfg.Source == SourceNodes {
			mi.targets[i] = mi.nodeWeights(k, p)
		} else {
			mi.targets[i] = mi.elementNodeWeights(k, p)
		}
	}
}

// NumTargets returns the size of the registered batch.
func (mi *MeshInterpolator) NumTargets() int {
	return len(mi.targets)
}

// nodeWeights registers a node-sourced target: triangle barycentric
// weights with the clip-to-edge rule, or bilinear local coordinates
// for a quadrilateral.
func (mi *MeshInterpolator) nodeWeights(k int, p geometry2D.Point) targetWeights {
	nodes := mi.g.ElementNodes(k)
	ring := mi.loc.ElementRing(k)
	if len(nodes) == 3 {
		w, ok := geometry2D.BarycentricWeights(ring[0], ring[1], ring[2], p)
		if !ok {
			return targetWeights{}
		}
		return targetWeights{
			found: true,
			refs: []valueRef{
				{index: nodes[0], node: true},
				{index: nodes[1], node: true},
				{index: nodes[2], node: true},
			},
			weights: w[:],
		}
	}
	dx, dy, ok := geometry2D.BilinearCoords(ring[0], ring[1], ring[2], ring[3], p)
	if !ok {
		return targetWeights{}
	}
	return targetWeights{
		found: true,
		quad:  true,
		nodes: [4]int32{nodes[0], nodes[1], nodes[2], nodes[3]},
		dx:    dx,
		dy:    dy,
	}
}

// elementNodeWeights registers an element+node target. Each face of
// the enclosing element spans two sub-triangles {element center,
// neighbor center (or face midpoint on the boundary), face node}; the
// half-plane test against the center-to-neighbor line picks the node
// on the target's side, and barycentric weights over that sub-triangle
// weigh the three samples. A face-midpoint sample has no value of its
// own and splits its weight over the face's two nodes. When no face
// matches (a numerical corner case for a point already verified
// inside) the element center carries all the weight.
func (mi *MeshInterpolator) elementNodeWeights(k int, p geometry2D.Point) targetWeights {
	const sideTol = 1e-12
	c := mi.top.Centers[k]
	a := geometry2D.Point{X: c.X, Y: c.Y}
	nodePt := func(n int32) geometry2D.Point {
		x, y := mi.g.NodeXY(int(n))
		return geometry2D.Point{X: x, Y: y}
	}
	for _, fi := range mi.top.ElementFaces[k] {
		f := mi.top.Faces[fi]
		var (
			b        geometry2D.Point
			neighbor = mi.top.Neighbor(k, fi)
		)
		if neighbor >= 0 {
			nc := mi.top.Centers[neighbor]
			b = geometry2D.Point{X: nc.X, Y: nc.Y}
		} else {
			p1, p2 := nodePt(f.From), nodePt(f.To)
			b = geometry2D.Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
		}
		// Pick the face node on the target's side of the line a->b.
		n := f.From
		if (geometry2D.Cross(a, b, p) >= 0) != (geometry2D.Cross(a, b, nodePt(f.From)) >= 0) {
			n = f.To
		}
		tri := [3]geometry2D.Point{a, b, nodePt(n)}
		if !pointInTriangle(tri, p, sideTol) {
			continue
		}
		w, ok := geometry2D.BarycentricWeights(tri[0], tri[1], tri[2], p)
		if !ok {
			continue
		}
		tw := targetWeights{found: true}
		tw.refs = append(tw.refs, valueRef{index: int32(k)})
		tw.weights = append(tw.weights, w[0])
		if neighbor >= 0 {
			tw.refs = append(tw.refs, valueRef{index: neighbor})
			tw.weights = append(tw.weights, w[1])
		} else {
			tw.refs = append(tw.refs,
				valueRef{index: f.From, node: true},
				valueRef{index: f.To, node: true})
			tw.weights = append(tw.weights, w[1]/2, w[1]/2)
		}
		tw.refs = append(tw.refs, valueRef{index: n, node: true})
		tw.weights = append(tw.weights, w[2])
		return tw
	}
	return targetWeights{
		found:   true,
		refs:    []valueRef{{index: int32(k)}},
		weights: []float64{1},
	}
}

// pointInTriangle tests containment regardless of the triangle's
// orientation, with a small absolute slack.
func pointInTriangle(tri [3]geometry2D.Point, p geometry2D.Point, tol float64) bool {
	if geometry2D.Cross(tri[0], tri[1], tri[2]) < 0 {
		tri[1], tri[2] = tri[2], tri[1]
	}
	return geometry2D.PointInPolygon(tri[:], p, tol)
}

// Apply interpolates one source value array onto the registered
// targets. In element+node mode src holds one value per element; in
// node mode one value per node. Unlocated targets get the delete
// value. The same registration serves any number of Apply calls.
func (mi *MeshInterpolator) Apply(src []float64) (out []float64, err error) {
	var nodeValues []float64
	switch mi.cfg.Source {
	case SourceNodes:
		if len(src) != mi.g.NumNodes() {
			return nil, fmt.Errorf("source length %d, want one value per node (%d)",
				len(src), mi.g.NumNodes())
		}
		nodeValues = src
	default:
		if len(src) != mi.g.NumElements() {
			return nil, fmt.Errorf("source length %d, want one value per element (%d)",
				len(src), mi.g.NumElements())
		}
		nodeValues = mi.ni.Apply(src, mi.cfg.DeleteValue, mi.cfg.Circular)
	}
	out = make([]float64, len(mi.targets))
	vals := make([]float64, 0, 8)
	for i, tw := range mi.targets {
		switch {
		case !tw.found:
			out[i] = mi.cfg.DeleteValue
		case tw.quad:
			z := [4]float64{
				nodeValues[tw.nodes[0]],
				nodeValues[tw.nodes[1]],
				nodeValues[tw.nodes[2]],
				nodeValues[tw.nodes[3]],
			}
			out[i] = bilinearValue(z, tw.dx, tw.dy, mi.cfg.DeleteValue, mi.cfg.Chop, mi.cfg.Circular)
		default:
			vals = vals[:0]
			for _, r := range tw.refs {
				if r.node {
					vals = append(vals, nodeValues[r.index])
				} else {
					vals = append(vals, src[r.index])
				}
			}
			out[i] = blendValues(vals, tw.weights, mi.cfg.DeleteValue, mi.cfg.Circular)
		}
	}
	return out, nil
}
