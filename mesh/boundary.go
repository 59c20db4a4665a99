package mesh

import (
	"fmt"
	"sort"

	"github.com/ctessum/geom"

	"github.com/oceanmesh/gomesh/geometry2D"
	"github.com/oceanmesh/gomesh/types"
)

// BoundarySegment is a maximal connected directed chain of boundary
// faces sharing one boundary code. Closed marks a loop whose last face
// leads back to the first.
type BoundarySegment struct {
	Code   types.BCFlag
	Faces  []int32 // indices into Topology.Faces
	Closed bool
}

// FirstNode returns the from-node of the segment's first face.
func (s *BoundarySegment) FirstNode(top *Topology) int32 {
	return top.Faces[s.Faces[0]].From
}

// LastNode returns the to-node of the segment's last face.
func (s *BoundarySegment) LastNode(top *Topology) int32 {
	return top.Faces[s.Faces[len(s.Faces)-1]].To
}

// TraceBoundaries buckets the boundary faces by code and stitches each
// bucket into connected directed segments. Every boundary face belongs
// to exactly one segment of the result.
func TraceBoundaries(top *Topology) map[types.BCFlag][]*BoundarySegment {
	buckets := make(map[types.BCFlag][]int32)
	for i, f := range top.Faces {
		if f.OnBoundary() {
			buckets[f.Code] = append(buckets[f.Code], int32(i))
		}
	}
	segments := make(map[types.BCFlag][]*BoundarySegment, len(buckets))
	for code, faces := range buckets {
		segments[code] = traceChains(top, code, faces)
	}
	return segments
}

// traceChains stitches one code bucket. Growth of a chain ends in one
// of four ways: no face continues it (open segment), the continuation
// is the chain's own first face (closed loop), or the continuation is
// the first face of a chain emitted earlier, in which case the current
// chain is a prefix discovered out of traversal order and is spliced
// onto that chain's front.
//
// The from-node index is a multimap: self-touching boundaries can
// share a from-node among several boundary faces.
func traceChains(top *Topology, code types.BCFlag, faces []int32) (segs []*BoundarySegment) {
	var (
		fromIndex = make(map[int32][]int, len(faces)) // from node -> positions in faces
		consumed  = make([]bool, len(faces))
		headOf    = make(map[int32]*BoundarySegment) // first face -> emitted segment
	)
	for pos, fi := range faces {
		from := top.Faces[fi].From
		fromIndex[from] = append(fromIndex[from], pos)
	}
	for seed := range faces {
		if consumed[seed] {
			continue
		}
		seg := &BoundarySegment{Code: code, Faces: []int32{faces[seed]}}
		consumed[seed] = true
		spliced := false
	grow:
		for {
			to := top.Faces[seg.Faces[len(seg.Faces)-1]].To
			for _, pos := range fromIndex[to] {
				if !consumed[pos] {
					consumed[pos] = true
					seg.Faces = append(seg.Faces, faces[pos])
					continue grow
				}
			}
			if to == top.Faces[seg.Faces[0]].From {
				seg.Closed = true
				break
			}
			for _, pos := range fromIndex[to] {
				if other, ok := headOf[faces[pos]]; ok && other != seg {
					// The current chain was discovered out of
					// traversal order; it is the missing prefix of
					// an already-emitted chain.
					delete(headOf, faces[pos])
					other.Faces = append(append([]int32{}, seg.Faces...), other.Faces...)
					headOf[other.Faces[0]] = other
					spliced = true
					break
				}
			}
			break
		}
		if !spliced {
			headOf[seg.Faces[0]] = seg
			segs = append(segs, seg)
		}
	}
	return
}

// Components labels every element with its connected-component id via
// breadth-first traversal: an element's neighbor across a non-boundary
// face belongs to the same component. Ids are assigned in ascending
// order of the lowest element index in each component.
func Components(top *Topology) (label []int, count int) {
	ne := len(top.ElementFaces)
	label = make([]int, ne)
	for i := range label {
		label[i] = -1
	}
	queue := make([]int32, 0, ne)
	for k := 0; k < ne; k++ {
		if label[k] >= 0 {
			continue
		}
		label[k] = count
		queue = append(queue[:0], int32(k))
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, fi := range top.ElementFaces[cur] {
				nb := top.Neighbor(int(cur), fi)
				if nb >= 0 && label[nb] < 0 {
					label[nb] = count
					queue = append(queue, nb)
				}
			}
		}
		count++
	}
	return
}

// BoundaryPolygons assembles the boundary segments of g into closed
// rings and groups them by mesh component: each component yields one
// polygon whose first ring is the counter-clockwise outer shell and
// whose remaining rings are clockwise holes. An open chain whose ends
// do not meet is an error, never silently polygonized.
func BoundaryPolygons(g Grid, top *Topology) (polys []geom.Polygon, err error) {
	var all []*BoundarySegment
	for _, segs := range TraceBoundaries(top) {
		all = append(all, segs...)
	}
	rings, err := assembleRings(top, all)
	if err != nil {
		return nil, err
	}
	label, count := Components(top)

	type ringRec struct {
		pts   []geom.Point
		shell bool
	}
	byComp := make([][]ringRec, count)
	for _, ring := range rings {
		pts := make([]geom.Point, 0, len(ring))
		g2d := make([]geometry2D.Point, 0, len(ring))
		for _, fi := range ring {
			x, y := g.NodeXY(int(top.Faces[fi].From))
			pts = append(pts, geom.Point{X: x, Y: y})
			g2d = append(g2d, geometry2D.Point{X: x, Y: y})
		}
		comp := label[top.Faces[ring[0]].Left]
		byComp[comp] = append(byComp[comp], ringRec{pts: pts, shell: geometry2D.IsCCW(g2d)})
	}
	for comp, recs := range byComp {
		if len(recs) == 0 {
			continue
		}
		var (
			poly     geom.Polygon
			hasShell bool
		)
		for _, r := range recs {
			if r.shell {
				poly = append(geom.Polygon{r.pts}, poly...)
				hasShell = true
			} else {
				poly = append(poly, r.pts)
			}
		}
		if !hasShell {
			return nil, fmt.Errorf("component %d has no outer shell among its %d boundary rings",
				comp, len(recs))
		}
		polys = append(polys, poly)
	}
	return polys, nil
}

// assembleRings chains segments end to end, across boundary codes,
// until each chain closes into a ring of face indices.
func assembleRings(top *Topology, segs []*BoundarySegment) (rings [][]int32, err error) {
	// Deterministic order regardless of the map traversal in the
	// caller.
	sort.Slice(segs, func(i, j int) bool { return segs[i].Faces[0] < segs[j].Faces[0] })
	byStart := make(map[int32][]int, len(segs))
	used := make([]bool, len(segs))
	for i, s := range segs {
		byStart[s.FirstNode(top)] = append(byStart[s.FirstNode(top)], i)
	}
	takeAt := func(node int32) int {
		for _, i := range byStart[node] {
			if !used[i] {
				used[i] = true
				return i
			}
		}
		return -1
	}
	for i, s := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		ring := append([]int32{}, s.Faces...)
		start := s.FirstNode(top)
		end := s.LastNode(top)
		for end != start {
			next := takeAt(end)
			if next < 0 {
				return nil, fmt.Errorf("boundary ring starting at node %d does not close: dead end at node %d",
					start, end)
			}
			ring = append(ring, segs[next].Faces...)
			end = segs[next].LastNode(top)
		}
		rings = append(rings, ring)
	}
	return rings, nil
}

// BoundaryPolygons is the Mesh convenience wrapper over the free
// function of the same name.
func (m *Mesh) BoundaryPolygons() ([]geom.Polygon, error) {
	top, err := m.Topology()
	if err != nil {
		return nil, err
	}
	return BoundaryPolygons(m, top)
}
