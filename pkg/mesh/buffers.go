package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Buffers is a mesh flattened for a renderer. All arrays are flat:
// vertices has 3 floats per vertex (x,y,z), normals has 3 floats per
// vertex, indices has 3 uint32s per triangle.
type Buffers struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene node this came from
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (b *Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// Buffers flattens m and computes per-vertex normals. A vertex normal is the
// area-weighted average of the face normals of the triangles using it, so
// with unshared cap and side vertices every face group stays flat shaded.
// Zero-area triangles contribute nothing.
func (m *Mesh) Buffers(partName string) *Buffers {
	b := &Buffers{
		Vertices: make([]float32, 0, 3*len(m.Vertices)),
		Normals:  make([]float32, 0, 3*len(m.Vertices)),
		Indices:  make([]uint32, 0, len(m.Indices)),
		PartName: partName,
	}

	acc := make([]v3.Vec, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, c, d := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		tri := &sdf.Triangle3{m.Vertices[a].Vec(), m.Vertices[c].Vec(), m.Vertices[d].Vec()}
		area := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Length() / 2
		if area <= 1e-12 {
			continue
		}
		n := tri.Normal().MulScalar(area)
		acc[a] = acc[a].Add(n)
		acc[c] = acc[c].Add(n)
		acc[d] = acc[d].Add(n)
	}

	for i, v := range m.Vertices {
		b.Vertices = append(b.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		n := acc[i]
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		b.Normals = append(b.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, idx := range m.Indices {
		b.Indices = append(b.Indices, uint32(idx))
	}
	return b
}
