// Package mesh holds the indexed triangle mesh produced by an extrusion
// and the assembler that concatenates its vertex groups.
package mesh

import (
	"errors"
	"fmt"
	"slices"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/svgextrude/pkg/geom"
)

// ErrInvalidMesh is wrapped by Validate failures.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle mesh. Indices hold three entries per
// triangle, each a position in Vertices.
type Mesh struct {
	Vertices []geom.Point3D `json:"vertices"`
	Indices  []int          `json:"indices"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: slices.Clone(m.Vertices),
		Indices:  slices.Clone(m.Indices),
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() geom.Bounds3D {
	return geom.Bounds3DOf(m.Vertices)
}

// Transform returns a copy of m with every vertex mapped through t.
func (m *Mesh) Transform(t geom.Transform) *Mesh {
	return &Mesh{
		Vertices: geom.TransformAll(t, m.Vertices),
		Indices:  slices.Clone(m.Indices),
	}
}

// Validate checks that the index list describes whole triangles and that
// every index refers to a vertex.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at position %d out of range [0, %d)",
				ErrInvalidMesh, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Triangles returns the mesh as sdfx triangles, in index order.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, &sdf.Triangle3{
			m.Vertices[m.Indices[i]].Vec(),
			m.Vertices[m.Indices[i+1]].Vec(),
			m.Vertices[m.Indices[i+2]].Vec(),
		})
	}
	return tris
}

// Merge concatenates meshes into one, offsetting each mesh's indices past
// the vertices before it. Nil meshes are skipped.
func Merge(ms ...*Mesh) *Mesh {
	out := &Mesh{}
	for _, m := range ms {
		if m == nil {
			continue
		}
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}
