package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanmesh/gomesh/geometry2D"
	"github.com/oceanmesh/gomesh/mesh"
	"github.com/oceanmesh/gomesh/types"
)

func elementValues(t *testing.T, m *mesh.Mesh, f func(x, y float64) float64) []float64 {
	top, err := m.Topology()
	require.NoError(t, err)
	src := make([]float64, m.NumElements())
	for k := range src {
		src[k] = f(top.Centers[k].X, top.Centers[k].Y)
	}
	return src
}

func nodeValues(m *mesh.Mesh, f func(x, y float64) float64) []float64 {
	src := make([]float64, m.NumNodes())
	for n := range src {
		x, y := m.NodeXY(n)
		src[n] = f(x, y)
	}
	return src
}

// Interior points of the central region of a 6x6 grid, away from any
// boundary-adjacent element.
var interiorTargets = []geometry2D.Point{
	{X: 2.3, Y: 2.6}, {X: 3.5, Y: 3.5}, {X: 2.9, Y: 3.1}, {X: 3.8, Y: 2.2},
}

func TestTargetInterpolationAffineNodesMode(t *testing.T) {
	run := func(t *testing.T, m *mesh.Mesh) {
		mi, err := NewMeshInterpolator(m, Config{
			DeleteValue: types.DeleteValue,
			Source:      SourceNodes,
		})
		require.NoError(t, err)
		mi.RegisterTargets(interiorTargets)
		out, err := mi.Apply(nodeValues(m, affine))
		require.NoError(t, err)
		for i, p := range interiorTargets {
			assert.InDelta(t, affine(p.X, p.Y), out[i], 1e-6, "target %v", p)
		}
	}
	t.Run("triangles", func(t *testing.T) { run(t, mesh.TriGridMesh(6, 6, 1)) })
	t.Run("quadrilaterals", func(t *testing.T) { run(t, mesh.QuadGridMesh(6, 6, 1)) })
}

func TestTargetInterpolationAffineElementNodeMode(t *testing.T) {
	run := func(t *testing.T, m *mesh.Mesh) {
		mi, err := NewMeshInterpolator(m, DefaultConfig())
		require.NoError(t, err)
		mi.RegisterTargets(interiorTargets)
		out, err := mi.Apply(elementValues(t, m, affine))
		require.NoError(t, err)
		for i, p := range interiorTargets {
			assert.InDelta(t, affine(p.X, p.Y), out[i], 1e-6, "target %v", p)
		}
	}
	t.Run("triangles", func(t *testing.T) { run(t, mesh.TriGridMesh(6, 6, 1)) })
	t.Run("quadrilaterals", func(t *testing.T) { run(t, mesh.QuadGridMesh(6, 6, 1)) })
}

func TestTargetInterpolationRegrid(t *testing.T) {
	// Mesh-to-mesh regridding in either direction reproduces an
	// affine field at targets strictly interior to the source mesh.
	quad := mesh.QuadGridMesh(6, 6, 1)
	tri := mesh.TriGridMesh(6, 6, 1)
	regrid := func(t *testing.T, src, dst *mesh.Mesh) {
		mi, err := NewMeshInterpolator(src, DefaultConfig())
		require.NoError(t, err)
		var targets []geometry2D.Point
		for n := 0; n < dst.NumNodes(); n++ {
			x, y := dst.NodeXY(n)
			if x >= 2 && x <= 4 && y >= 2 && y <= 4 {
				targets = append(targets, geometry2D.Point{X: x + 0.31, Y: y + 0.17})
			}
		}
		require.NotEmpty(t, targets)
		mi.RegisterTargets(targets)
		out, err := mi.Apply(elementValues(t, src, affine))
		require.NoError(t, err)
		for i, p := range targets {
			assert.InDelta(t, affine(p.X, p.Y), out[i], 1e-6, "target %v", p)
		}
	}
	t.Run("quad to tri", func(t *testing.T) { regrid(t, quad, tri) })
	t.Run("tri to quad", func(t *testing.T) { regrid(t, tri, quad) })
}

func TestTargetOutsideMeshGetsDeleteValue(t *testing.T) {
	m := mesh.QuadGridMesh(2, 2, 1)
	mi, err := NewMeshInterpolator(m, DefaultConfig())
	require.NoError(t, err)
	mi.RegisterTargets([]geometry2D.Point{{X: -5, Y: -5}, {X: 1, Y: 1}})
	out, err := mi.Apply(elementValues(t, m, affine))
	require.NoError(t, err)
	assert.Equal(t, types.DeleteValue, out[0])
	assert.NotEqual(t, types.DeleteValue, out[1])
}

func TestTargetWeightsReusedAcrossApplications(t *testing.T) {
	m := mesh.QuadGridMesh(6, 6, 1)
	mi, err := NewMeshInterpolator(m, DefaultConfig())
	require.NoError(t, err)
	mi.RegisterTargets(interiorTargets)
	// Registration once, application per time step.
	f2 := func(x, y float64) float64 { return -1 + 0.5*x + 2*y }
	out1, err := mi.Apply(elementValues(t, m, affine))
	require.NoError(t, err)
	out2, err := mi.Apply(elementValues(t, m, f2))
	require.NoError(t, err)
	for i, p := range interiorTargets {
		assert.InDelta(t, affine(p.X, p.Y), out1[i], 1e-6)
		assert.InDelta(t, f2(p.X, p.Y), out2[i], 1e-6)
	}
}

func TestTargetQuadDeleteValueRegions(t *testing.T) {
	// A single quadrilateral cell with one deleted corner, node mode:
	// the corner's exclusive region yields the delete value, the
	// opposite region a blend of the three surviving corners.
	m, err := mesh.NewMesh([]int{1, 2, 3, 4},
		[]float64{0, 1, 1, 0}, []float64{0, 0, 1, 1}, make([]float64, 4),
		[]int{1, 1, 1, 1}, []int{1}, [][]int32{{0, 1, 2, 3}})
	require.NoError(t, err)
	mi, err := NewMeshInterpolator(m, Config{
		DeleteValue: types.DeleteValue,
		Source:      SourceNodes,
		Chop:        ChopAbrupt,
	})
	require.NoError(t, err)
	mi.RegisterTargets([]geometry2D.Point{{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.8}})
	src := []float64{types.DeleteValue, 2, 4, 3}
	out, err := mi.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, types.DeleteValue, out[0])
	w1, w2, w3 := 0.8*0.2, 0.8*0.8, 0.2*0.8
	assert.InDelta(t, (w1*2+w2*4+w3*3)/(w1+w2+w3), out[1], 1e-9)
}

func TestTargetCircularBlending(t *testing.T) {
	// Two node values straddling the wrap point, target equidistant:
	// the blend lands on 0 degrees, not 180.
	m, err := mesh.NewMesh([]int{1, 2, 3},
		[]float64{0, 1, 0.5}, []float64{0, 0, 1}, make([]float64, 3),
		[]int{1, 1, 1}, []int{1}, [][]int32{{0, 1, 2}})
	require.NoError(t, err)
	mi, err := NewMeshInterpolator(m, Config{
		DeleteValue: types.DeleteValue,
		Source:      SourceNodes,
		Circular:    types.Degrees360,
	})
	require.NoError(t, err)
	mi.RegisterTargets([]geometry2D.Point{{X: 0.5, Y: 0}})
	out, err := mi.Apply([]float64{359, 1, types.DeleteValue})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, out[0], 1e-9)
}

func TestTargetElementNodeModeDeleteDominance(t *testing.T) {
	// The enclosing element's center carries most of the weight near
	// the center; a deleted element value there must not be bridged.
	m := mesh.QuadGridMesh(3, 3, 1)
	mi, err := NewMeshInterpolator(m, DefaultConfig())
	require.NoError(t, err)
	mi.RegisterTargets([]geometry2D.Point{{X: 1.5, Y: 1.5}})
	src := elementValues(t, m, affine)
	src[4] = types.DeleteValue // center element of the 3x3 grid
	out, err := mi.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, types.DeleteValue, out[0])
}

func TestZeroDeleteValueDefaults(t *testing.T) {
	// A zero DeleteValue in the configuration means unset: unlocated
	// targets get the standard sentinel, not 0.
	m := mesh.QuadGridMesh(2, 2, 1)
	mi, err := NewMeshInterpolator(m, Config{Source: SourceNodes})
	require.NoError(t, err)
	mi.RegisterTargets([]geometry2D.Point{{X: -5, Y: -5}})
	out, err := mi.Apply(make([]float64, m.NumNodes()))
	require.NoError(t, err)
	assert.Equal(t, types.DeleteValue, out[0])
}

func TestTargetApplyValidation(t *testing.T) {
	m := mesh.QuadGridMesh(2, 2, 1)
	{
		mi, err := NewMeshInterpolator(m, DefaultConfig())
		require.NoError(t, err)
		_, err = mi.Apply(make([]float64, m.NumNodes()+1))
		assert.Error(t, err)
	}
	{
		mi, err := NewMeshInterpolator(m, Config{Source: SourceNodes})
		require.NoError(t, err)
		_, err = mi.Apply(make([]float64, m.NumElements()))
		assert.Error(t, err)
	}
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, SourceNodes, ParseSourceName("Nodes"))
	assert.Equal(t, SourceElementsAndNodes, ParseSourceName("elementsandnodes"))
	assert.Equal(t, SourceElementsAndNodes, ParseSourceName("bogus"))
	assert.Equal(t, ChopSmoothed, ParseChopName("Smoothed"))
	assert.Equal(t, ChopAbrupt, ParseChopName(""))
}
