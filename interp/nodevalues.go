package interp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/oceanmesh/gomesh/mesh"
	"github.com/oceanmesh/gomesh/types"
)

// degeneracyEps is the relative determinant threshold below which the
// gradient normal equations count as singular.
const degeneracyEps = 1e-12

// NodeInterpolator turns element-center values into node values with
// the pseudo-Laplacian least-squares gradient scheme, which reproduces
// planar fields exactly at interior nodes. Weights are computed once
// per mesh and reapplied across any number of value arrays.
type NodeInterpolator struct {
	Indices [][]int32   // node -> incident element indices
	Weights [][]float64 // node -> matching weights, summing to 1 (or empty)
}

// SetupNodeInterpolation computes the per-node element weights. For a
// node with at least three incident elements the 2x2 normal equations
//
//	| Ixx Ixy | | lx |   | -Rx |
//	| Ixy Iyy | | ly | = | -Ry |
//
// over the center offsets (dx_i,dy_i) yield weights 1 + lx*dx + ly*dy.
// Unless extrapolation is allowed each weight is clamped to [0,2].
// A degenerate system, fewer than three neighbors or a nonpositive
// weight sum falls back to inverse-distance weighting. Weights are
// always renormalized to sum to 1.
func SetupNodeInterpolation(g mesh.Grid, top *mesh.Topology, allowExtrapolation bool) (ni *NodeInterpolator) {
	nn := g.NumNodes()
	ni = &NodeInterpolator{
		Indices: make([][]int32, nn),
		Weights: make([][]float64, nn),
	}
	for n := 0; n < nn; n++ {
		elems := top.NodeElements[n]
		if len(elems) == 0 {
			continue
		}
		ni.Indices[n] = elems
		var (
			nx, ny = g.NodeXY(n)
			dx     = make([]float64, len(elems))
			dy     = make([]float64, len(elems))
		)
		for i, k := range elems {
			c := top.Centers[k]
			dx[i] = c.X - nx
			dy[i] = c.Y - ny
		}
		w := pseudoLaplacianWeights(dx, dy, allowExtrapolation)
		if w == nil {
			w = inverseDistanceWeights(dx, dy)
		}
		normalize(w)
		ni.Weights[n] = w
	}
	return
}

func pseudoLaplacianWeights(dx, dy []float64, allowExtrapolation bool) (w []float64) {
	if len(dx) < 3 {
		return nil
	}
	var Ixx, Iyy, Ixy, Rx, Ry float64
	for i := range dx {
		Ixx += dx[i] * dx[i]
		Iyy += dy[i] * dy[i]
		Ixy += dx[i] * dy[i]
		Rx += dx[i]
		Ry += dy[i]
	}
	if Ixx*Iyy-Ixy*Ixy <= degeneracyEps*Ixx*Iyy {
		return nil
	}
	var (
		lhs    = mat.NewDense(2, 2, []float64{Ixx, Ixy, Ixy, Iyy})
		rhs    = mat.NewVecDense(2, []float64{-Rx, -Ry})
		lambda mat.VecDense
	)
	if err := lambda.SolveVec(lhs, rhs); err != nil {
		return nil
	}
	lx, ly := lambda.AtVec(0), lambda.AtVec(1)
	w = make([]float64, len(dx))
	for i := range w {
		w[i] = 1 + lx*dx[i] + ly*dy[i]
		if !allowExtrapolation {
			w[i] = math.Min(2, math.Max(0, w[i]))
		}
	}
	if floats.Sum(w) <= 0 {
		return nil
	}
	return w
}

func inverseDistanceWeights(dx, dy []float64) (w []float64) {
	w = make([]float64, len(dx))
	for i := range w {
		d := math.Hypot(dx[i], dy[i])
		if d == 0 {
			// A coincident center dominates outright.
			for j := range w {
				w[j] = 0
			}
			w[i] = 1
			return
		}
		w[i] = 1 / d
	}
	return
}

func normalize(w []float64) {
	sum := floats.Sum(w)
	if sum <= 0 {
		for i := range w {
			w[i] = 0
		}
		return
	}
	for i := range w {
		w[i] /= sum
	}
}

// Apply maps one element-center value array to node values. Samples
// equal to deleteValue drop out of the blend; a node whose neighbors
// are all deleted gets deleteValue.
func (ni *NodeInterpolator) Apply(elementValues []float64, deleteValue float64, circular types.CircularType) (nodeValues []float64) {
	nodeValues = make([]float64, len(ni.Indices))
	vals := make([]float64, 0, 8)
	for n := range ni.Indices {
		if len(ni.Weights[n]) == 0 {
			nodeValues[n] = deleteValue
			continue
		}
		vals = vals[:0]
		for _, k := range ni.Indices[n] {
			vals = append(vals, elementValues[k])
		}
		nodeValues[n] = blendValues(vals, ni.Weights[n], deleteValue, circular)
	}
	return
}
