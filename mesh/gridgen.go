package mesh

// Synthetic structured grids, used by the tests and handy for
// benchmarks and examples. Outer boundary nodes are coded land.

// QuadGridMesh returns an nx by ny mesh of square quadrilateral
// elements with spacing d, lower-left corner at the origin.
func QuadGridMesh(nx, ny int, d float64) *Mesh {
	ids, x, y, z, codes := gridNodes(nx, ny, d)
	var (
		elementIDs []int
		conn       [][]int32
	)
	node := func(i, j int) int32 { return int32(j*(nx+1) + i) }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			elementIDs = append(elementIDs, len(elementIDs)+1)
			conn = append(conn, []int32{
				node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1),
			})
		}
	}
	m, err := NewMesh(ids, x, y, z, codes, elementIDs, conn)
	if err != nil {
		panic(err)
	}
	return m
}

// TriGridMesh returns the same grid as QuadGridMesh with every quad
// split along its main diagonal into two counter-clockwise triangles.
func TriGridMesh(nx, ny int, d float64) *Mesh {
	ids, x, y, z, codes := gridNodes(nx, ny, d)
	var (
		elementIDs []int
		conn       [][]int32
	)
	node := func(i, j int) int32 { return int32(j*(nx+1) + i) }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			conn = append(conn,
				[]int32{node(i, j), node(i+1, j), node(i+1, j+1)},
				[]int32{node(i, j), node(i+1, j+1), node(i, j+1)})
			elementIDs = append(elementIDs, len(elementIDs)+1, len(elementIDs)+2)
		}
	}
	m, err := NewMesh(ids, x, y, z, codes, elementIDs, conn)
	if err != nil {
		panic(err)
	}
	return m
}

func gridNodes(nx, ny int, d float64) (ids []int, x, y, z []float64, codes []int) {
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			ids = append(ids, len(ids)+1)
			x = append(x, float64(i)*d)
			y = append(y, float64(j)*d)
			z = append(z, 0)
			code := 0
			if i == 0 || j == 0 || i == nx || j == ny {
				code = 1
			}
			codes = append(codes, code)
		}
	}
	return
}
