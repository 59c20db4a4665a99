package geometry2D

import "math"

// BarycentricWeights computes the barycentric coordinates of p with
// respect to triangle (t0,t1,t2). Raw negative weights from points
// marginally outside the triangle are clamped to zero and the vector
// renormalized to sum to one, the standard clip-to-edge rule for
// rounding-error robustness. ok is false for a degenerate triangle.
func BarycentricWeights(t0, t1, t2, p Point) (w [3]float64, ok bool) {
	det := Cross(t0, t1, t2)
	if det == 0 {
		return
	}
	w[0] = Cross(t1, t2, p) / det
	w[1] = Cross(t2, t0, p) / det
	w[2] = 1 - w[0] - w[1]
	var sum float64
	for i := range w {
		if w[i] < 0 {
			w[i] = 0
		}
		sum += w[i]
	}
	if sum == 0 {
		return
	}
	for i := range w {
		w[i] /= sum
	}
	return w, true
}

// BilinearCoords inverts the bilinear mapping of the counter-clockwise
// quadrilateral (q0,q1,q2,q3), with q0 at local (0,0), q1 at (1,0), q2
// at (1,1) and q3 at (0,1):
//
//	p = q0(1-dx)(1-dy) + q1 dx(1-dy) + q2 dx dy + q3 (1-dx)dy
//
// The inversion reduces to a quadratic with two roots; the root lying
// in [0,1]^2 is selected and clamped into range to absorb rounding
// error. ok is false when the quadrilateral is degenerate or p maps
// well outside the cell.
func BilinearCoords(q0, q1, q2, q3, p Point) (dx, dy float64, ok bool) {
	var (
		e = Point{q1.X - q0.X, q1.Y - q0.Y}
		f = Point{q3.X - q0.X, q3.Y - q0.Y}
		g = Point{q0.X - q1.X + q2.X - q3.X, q0.Y - q1.Y + q2.Y - q3.Y}
		h = Point{p.X - q0.X, p.Y - q0.Y}
	)
	cross := func(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }
	var (
		k2 = cross(g, f)
		k1 = cross(e, f) + cross(h, g)
		k0 = cross(h, e)
	)
	const slack = 1e-9
	inRange := func(v float64) bool { return v >= -slack && v <= 1+slack }
	solveU := func(v float64) (u float64, valid bool) {
		// u from the x or y component, whichever denominator is
		// better conditioned.
		denX := e.X + g.X*v
		denY := e.Y + g.Y*v
		if math.Abs(denX) >= math.Abs(denY) {
			if denX == 0 {
				return
			}
			u = (h.X - f.X*v) / denX
		} else {
			u = (h.Y - f.Y*v) / denY
		}
		return u, true
	}
	var roots []float64
	if math.Abs(k2) < 1e-14*(math.Abs(k1)+math.Abs(k0)+1) {
		// Parallelogram cell, the quadratic degenerates to linear.
		if k1 == 0 {
			return
		}
		roots = []float64{-k0 / k1}
	} else {
		disc := k1*k1 - 4*k2*k0
		if disc < 0 {
			return
		}
		sq := math.Sqrt(disc)
		roots = []float64{(-k1 + sq) / (2 * k2), (-k1 - sq) / (2 * k2)}
	}
	for _, v := range roots {
		if !inRange(v) {
			continue
		}
		u, valid := solveU(v)
		if !valid || !inRange(u) {
			continue
		}
		dx = math.Min(1, math.Max(0, u))
		dy = math.Min(1, math.Max(0, v))
		return dx, dy, true
	}
	return
}
