// Package interp maps scalar fields between meshes, point clouds and
// element-center/node representations: spatial point location over an
// r-tree of element envelopes, pseudo-Laplacian reconstruction of node
// values from element centers, and barycentric/bilinear target
// weighting with delete-value and circular-quantity aware blending.
package interp

import (
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"gonum.org/v1/gonum/floats"

	"github.com/oceanmesh/gomesh/geometry2D"
	"github.com/oceanmesh/gomesh/mesh"
)

// elementEntry is what the r-tree stores per element: the element
// polygon (the embedded Polygonal supplies the envelope) plus its
// index.
type elementEntry struct {
	geom.Polygonal
	index int
}

// Locator answers point-in-element and polygon-overlap queries against
// a bounding-box index over the element envelopes. Tolerance, when
// positive, relaxes the exact half-plane containment test on a second
// pass, absorbing coordinates a few epsilons outside a shared edge.
type Locator struct {
	g         mesh.Grid
	Tolerance float64
	tree      *rtree.Rtree
	polys     []geom.Polygon
}

// NewLocator indexes every element polygon of g.
func NewLocator(g mesh.Grid, tolerance float64) (loc *Locator) {
	loc = &Locator{
		g:         g,
		Tolerance: tolerance,
		tree:      rtree.NewTree(8, 16),
		polys:     make([]geom.Polygon, g.NumElements()),
	}
	for k := 0; k < g.NumElements(); k++ {
		nodes := g.ElementNodes(k)
		ring := make([]geom.Point, len(nodes))
		for i, n := range nodes {
			x, y := g.NodeXY(int(n))
			ring[i] = geom.Point{X: x, Y: y}
		}
		loc.polys[k] = geom.Polygon{ring}
		loc.tree.Insert(&elementEntry{Polygonal: loc.polys[k], index: k})
	}
	return
}

// ElementRing returns the element's node coordinates as a
// counter-clockwise ring.
func (loc *Locator) ElementRing(k int) (ring []geometry2D.Point) {
	nodes := loc.g.ElementNodes(k)
	ring = make([]geometry2D.Point, len(nodes))
	for i, n := range nodes {
		x, y := loc.g.NodeXY(int(n))
		ring[i] = geometry2D.Point{X: x, Y: y}
	}
	return
}

// candidates returns the element indices whose envelopes intersect bb,
// in ascending index order so that ties at shared vertices resolve
// deterministically.
func (loc *Locator) candidates(bb *geom.Bounds) (ks []int) {
	for _, s := range loc.tree.SearchIntersect(bb) {
		ks = append(ks, s.(*elementEntry).index)
	}
	sort.Ints(ks)
	return
}

// FindElement returns the element containing (x,y). Containment is the
// counter-clockwise half-plane test: the point must not be strictly to
// the right of any directed edge, points exactly on an edge count as
// inside. When no candidate passes exactly and the locator has a
// positive tolerance, the candidates are retried with the test relaxed
// by that tolerance.
func (loc *Locator) FindElement(x, y float64) (k int, found bool) {
	p := geometry2D.Point{X: x, Y: y}
	bb := &geom.Bounds{Min: geom.Point{X: x, Y: y}, Max: geom.Point{X: x, Y: y}}
	for _, k = range loc.candidates(bb) {
		if geometry2D.PointInPolygon(loc.ElementRing(k), p, 0) {
			return k, true
		}
	}
	if loc.Tolerance > 0 {
		relaxed := &geom.Bounds{
			Min: geom.Point{X: x - loc.Tolerance, Y: y - loc.Tolerance},
			Max: geom.Point{X: x + loc.Tolerance, Y: y + loc.Tolerance},
		}
		for _, k = range loc.candidates(relaxed) {
			if geometry2D.PointInPolygon(loc.ElementRing(k), p, loc.Tolerance) {
				return k, true
			}
		}
	}
	return -1, false
}

// ElementOverlap pairs an element with its normalized share of a
// polygon-overlap query.
type ElementOverlap struct {
	Element int
	Weight  float64
}

// FindElementsOverlapping intersects poly with every element whose
// envelope overlaps it. A fully contained element weighs its whole
// area, an element fully containing poly weighs the polygon area, and
// a partial overlap weighs the intersection area; weights are
// normalized to sum to 1. The result is nil when the total
// intersection area is zero.
func (loc *Locator) FindElementsOverlapping(poly geom.Polygon) (overlaps []ElementOverlap) {
	const areaTol = 1e-9
	polyArea := poly.Area()
	for _, k := range loc.candidates(poly.Bounds()) {
		elemPoly := loc.polys[k]
		elemArea := elemPoly.Area()
		interArea := poly.Intersection(elemPoly).Area()
		if interArea <= 0 {
			continue
		}
		var w float64
		switch {
		case interArea >= elemArea*(1-areaTol):
			w = elemArea
		case interArea >= polyArea*(1-areaTol):
			w = polyArea
		default:
			w = interArea
		}
		overlaps = append(overlaps, ElementOverlap{Element: k, Weight: w})
	}
	if len(overlaps) == 0 {
		return nil
	}
	weights := make([]float64, len(overlaps))
	for i, o := range overlaps {
		weights[i] = o.Weight
	}
	total := floats.Sum(weights)
	if total <= 0 {
		return nil
	}
	for i := range overlaps {
		overlaps[i].Weight /= total
	}
	return overlaps
}
