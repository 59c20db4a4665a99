package interp

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanmesh/gomesh/mesh"
)

func TestFindElementTriangles(t *testing.T) {
	m := mesh.TriGridMesh(3, 3, 1)
	loc := NewLocator(m, 0)
	{ // Strictly interior points of the two triangles of cell (0,0).
		k, found := loc.FindElement(0.7, 0.2)
		require.True(t, found)
		assert.Equal(t, 0, k)
		k, found = loc.FindElement(0.2, 0.7)
		require.True(t, found)
		assert.Equal(t, 1, k)
	}
	{ // Corners and edge midpoints count as inside.
		for _, p := range [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0.5, 0}, {0.5, 0.5}} {
			_, found := loc.FindElement(p[0], p[1])
			assert.True(t, found, "point %v", p)
		}
	}
	{ // A point on the shared diagonal resolves to the lower element
		// index, deterministically.
		k, found := loc.FindElement(0.5, 0.5)
		require.True(t, found)
		assert.Equal(t, 0, k)
	}
	{ // Epsilon outside the mesh hull: not found without a tolerance.
		_, found := loc.FindElement(1.5, -1e-9)
		assert.False(t, found)
	}
}

func TestFindElementTolerance(t *testing.T) {
	m := mesh.QuadGridMesh(2, 2, 1)
	{
		loc := NewLocator(m, 0)
		_, found := loc.FindElement(-1e-9, 0.5)
		assert.False(t, found)
	}
	{
		loc := NewLocator(m, 1e-6)
		k, found := loc.FindElement(-1e-9, 0.5)
		require.True(t, found)
		assert.Equal(t, 0, k)
	}
}

func TestFindElementsOverlapping(t *testing.T) {
	m := mesh.QuadGridMesh(2, 2, 1)
	loc := NewLocator(m, 0)
	{ // A query polygon exactly covering element 0.
		poly := geom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}
		overlaps := loc.FindElementsOverlapping(poly)
		require.Len(t, overlaps, 1)
		assert.Equal(t, 0, overlaps[0].Element)
		assert.InDelta(t, 1.0, overlaps[0].Weight, 1e-9)
	}
	{ // A polygon strictly inside one element: the element fully
		// contains the polygon.
		poly := geom.Polygon{{{X: 0.2, Y: 0.2}, {X: 0.6, Y: 0.2}, {X: 0.6, Y: 0.6}, {X: 0.2, Y: 0.6}}}
		overlaps := loc.FindElementsOverlapping(poly)
		require.Len(t, overlaps, 1)
		assert.Equal(t, 0, overlaps[0].Element)
		assert.InDelta(t, 1.0, overlaps[0].Weight, 1e-9)
	}
	{ // A polygon split evenly between two elements.
		poly := geom.Polygon{{{X: 0.5, Y: 0.2}, {X: 1.5, Y: 0.2}, {X: 1.5, Y: 0.8}, {X: 0.5, Y: 0.8}}}
		overlaps := loc.FindElementsOverlapping(poly)
		require.Len(t, overlaps, 2)
		total := 0.0
		for _, o := range overlaps {
			assert.InDelta(t, 0.5, o.Weight, 1e-9)
			total += o.Weight
		}
		assert.InDelta(t, 1.0, total, 1e-12)
	}
	{ // No overlap at all.
		poly := geom.Polygon{{{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 11}, {X: 10, Y: 11}}}
		assert.Nil(t, loc.FindElementsOverlapping(poly))
	}
}

func TestFindElementsOverlappingEnvelopeOnlyCandidate(t *testing.T) {
	// Both triangles of a cell share the same envelope; a polygon
	// inside the upper-left triangle is an envelope hit for the lower
	// one too but must not appear in the overlap set.
	m := mesh.TriGridMesh(1, 1, 1)
	loc := NewLocator(m, 0)
	poly := geom.Polygon{{{X: 0.1, Y: 0.7}, {X: 0.3, Y: 0.7}, {X: 0.3, Y: 0.9}, {X: 0.1, Y: 0.9}}}
	overlaps := loc.FindElementsOverlapping(poly)
	require.Len(t, overlaps, 1)
	assert.Equal(t, 1, overlaps[0].Element)
	assert.InDelta(t, 1.0, overlaps[0].Weight, 1e-9)
}
