package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ErikKalkoken/go-set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/svgextrude/pkg/geom"
)

// square is a unit quad in the y=0 plane, wound so its normal points up.
func square() Group {
	return Group{
		Vertices: []geom.Point3D{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}},
		Indices:  []int{0, 1, 2, 0, 2, 3},
	}
}

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name  string
		m     *Mesh
		verts int
		tris  int
		empty bool
	}{
		{"empty", &Mesh{}, 0, 0, true},
		{"one vertex", &Mesh{Vertices: []geom.Point3D{{1, 2, 3}}}, 1, 0, false},
		{"quad", &Mesh{Vertices: square().Vertices, Indices: square().Indices}, 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.verts, tt.m.VertexCount())
			assert.Equal(t, tt.tris, tt.m.TriangleCount())
			assert.Equal(t, tt.empty, tt.m.IsEmpty())
		})
	}
}

func TestValidate(t *testing.T) {
	good := &Mesh{Vertices: square().Vertices, Indices: square().Indices}
	require.NoError(t, good.Validate())
	require.NoError(t, (&Mesh{}).Validate())

	for name, m := range map[string]*Mesh{
		"partial triangle": {Vertices: square().Vertices, Indices: []int{0, 1}},
		"out of range":     {Vertices: square().Vertices, Indices: []int{0, 1, 4}},
		"negative":         {Vertices: square().Vertices, Indices: []int{0, -1, 2}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.Is(m.Validate(), ErrInvalidMesh))
		})
	}
}

func TestAssembleOffsetsGroups(t *testing.T) {
	top := square()
	bottom := square()
	side := Group{
		Vertices: []geom.Point3D{{0, 0, 0}, {1, 0, 0}, {0, -1, 0}},
		Indices:  []int{0, 1, 2},
	}
	m := Assemble(top, bottom, []Group{side, side}, Winding{})

	require.NoError(t, m.Validate())
	assert.Equal(t, 4+4+3+3, m.VertexCount())
	assert.Equal(t, 2+2+1+1, m.TriangleCount())
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, m.Indices[:6])
	assert.Equal(t, []int{4, 5, 6, 4, 6, 7}, m.Indices[6:12])
	assert.Equal(t, []int{8, 9, 10}, m.Indices[12:15])
	assert.Equal(t, []int{11, 12, 13}, m.Indices[15:18])

	// No index is shared between groups.
	groups := [][]int{m.Indices[:6], m.Indices[6:12], m.Indices[12:15], m.Indices[15:18]}
	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			a := set.Of(groups[i]...)
			for _, x := range groups[j] {
				assert.False(t, a.Contains(x), "groups %d and %d share vertex %d", i, j, x)
			}
		}
	}
}

func TestAssembleInversion(t *testing.T) {
	top, bottom := square(), square()
	plain := Assemble(top, bottom, nil, Winding{})
	inv := Assemble(top, bottom, nil, Winding{InvertTop: true})

	assert.Equal(t, []int{3, 2, 0, 2, 1, 0}, inv.Indices[:6])
	assert.Equal(t, plain.Indices[6:], inv.Indices[6:], "bottom is untouched")
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, top.Indices, "input not mutated")

	twice := Reversed(Reversed(top.Indices))
	assert.Equal(t, top.Indices, twice)
}

func TestAssembleSidesInverted(t *testing.T) {
	side := Group{Vertices: square().Vertices, Indices: square().Indices}
	m := Assemble(Group{}, Group{}, []Group{side}, Winding{InvertSides: true})
	assert.Equal(t, []int{3, 2, 0, 2, 1, 0}, m.Indices)
}

func TestCloneAndTransform(t *testing.T) {
	m := &Mesh{Vertices: square().Vertices, Indices: square().Indices}
	c := m.Clone()
	c.Vertices[0].X = 42
	c.Indices[0] = 3
	assert.Equal(t, 0.0, m.Vertices[0].X)
	assert.Equal(t, 0, m.Indices[0])

	moved := m.Transform(geom.Translation(geom.Point3D{Y: -2}))
	assert.Equal(t, geom.Point3D{X: 1, Y: -2, Z: 1}, moved.Vertices[2])
	assert.Equal(t, 0.0, m.Vertices[2].Y)

	b := moved.Bounds()
	assert.Equal(t, geom.Point3D{X: 0, Y: -2, Z: 0}, b.Min)
	assert.Equal(t, geom.Point3D{X: 1, Y: -2, Z: 1}, b.Max)
}

func TestBuffers(t *testing.T) {
	m := &Mesh{Vertices: square().Vertices, Indices: square().Indices}
	b := m.Buffers("quad")

	assert.Equal(t, "quad", b.PartName)
	assert.Equal(t, 4, b.VertexCount())
	assert.Equal(t, 2, b.TriangleCount())
	require.Len(t, b.Normals, 12)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, b.Indices)
	for v := 0; v < 4; v++ {
		assert.InDelta(t, 0, b.Normals[3*v], 1e-6)
		assert.InDelta(t, 1, b.Normals[3*v+1], 1e-6)
		assert.InDelta(t, 0, b.Normals[3*v+2], 1e-6)
	}
}

func TestBuffersSkipsDegenerateTriangles(t *testing.T) {
	m := &Mesh{
		Vertices: []geom.Point3D{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		Indices:  []int{0, 1, 2},
	}
	b := m.Buffers("")
	for _, n := range b.Normals {
		assert.Equal(t, float32(0), n)
	}
}

func TestSaveSTL(t *testing.T) {
	m := &Mesh{Vertices: square().Vertices, Indices: square().Indices}
	path := filepath.Join(t.TempDir(), "quad.stl")
	require.NoError(t, SaveSTL(path, m))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	// Binary STL: 80 byte header, triangle count, 50 bytes per triangle.
	assert.Equal(t, int64(84+50*2), fi.Size())

	bad := &Mesh{Vertices: square().Vertices, Indices: []int{0, 1, 9}}
	assert.ErrorIs(t, SaveSTL(path, bad), ErrInvalidMesh)
}

func TestMerge(t *testing.T) {
	a := &Mesh{Vertices: square().Vertices, Indices: square().Indices}
	b := a.Transform(geom.Translation(geom.Point3D{Y: -1}))

	m := Merge(a, nil, b)
	require.NoError(t, m.Validate())
	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 4, m.TriangleCount())
	assert.Equal(t, []int{4, 5, 6, 4, 6, 7}, m.Indices[6:])
	assert.True(t, Merge().IsEmpty())
}
