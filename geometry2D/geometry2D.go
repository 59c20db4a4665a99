// Package geometry2D holds the planar primitives underneath the mesh
// topology and interpolation code: half-plane containment tests,
// triangle barycentric and quadrilateral bilinear weights, and signed
// ring area.
package geometry2D

import "math"

type Point struct {
	X, Y float64
}

// Cross is the scalar cross product (b-a) x (p-a). Positive when p is
// strictly to the left of the directed line a->b, negative to the
// right, zero on the line.
func Cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// LeftOf reports whether p lies in the closed left half-plane of the
// directed line a->b, relaxed by tol. tol is an absolute slack on the
// left-perpendicular dot product, scaled by the edge length so that it
// acts as a distance.
func LeftOf(a, b, p Point, tol float64) bool {
	c := Cross(a, b, p)
	if tol <= 0 {
		return c >= 0
	}
	return c >= -tol*math.Hypot(b.X-a.X, b.Y-a.Y)
}

// PointInPolygon tests containment of p in the counter-clockwise
// polygon poly by requiring p not to be strictly right of any directed
// edge. Points exactly on an edge count as inside. A positive tol
// relaxes every half-plane test by that distance.
func PointInPolygon(poly []Point, p Point, tol float64) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		if !LeftOf(poly[i], poly[(i+1)%n], p, tol) {
			return false
		}
	}
	return true
}

// SignedArea returns the signed area of the ring (positive for
// counter-clockwise orientation). The ring need not repeat its first
// point.
func SignedArea(ring []Point) (area float64) {
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return area / 2
}

// IsCCW reports whether the ring winds counter-clockwise.
func IsCCW(ring []Point) bool {
	return SignedArea(ring) > 0
}

// Centroid returns the arithmetic mean of the points.
func Centroid(pts []Point) (c Point) {
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	c.X /= n
	c.Y /= n
	return
}
