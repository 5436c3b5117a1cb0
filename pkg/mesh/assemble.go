package mesh

import (
	"slices"

	"github.com/chazu/svgextrude/pkg/geom"
)

// Group is a block of vertices with triangle indices local to the block.
type Group struct {
	Vertices []geom.Point3D
	Indices  []int
}

// Winding selects which face groups have their triangle order flipped.
type Winding struct {
	InvertTop    bool `yaml:"invert_top" json:"invertTop"`
	InvertBottom bool `yaml:"invert_bottom" json:"invertBottom"`
	InvertSides  bool `yaml:"invert_sides" json:"invertSides"`
}

// Assemble concatenates the top cap, the bottom cap and the side groups, in
// that order, into one mesh. Each group's indices are offset by the number
// of vertices placed before it. Groups never share vertices, so every face
// group keeps its own normals.
//
// An inverted group has its whole index list reversed, which flips the
// winding of every triangle in it. The input groups are not modified.
func Assemble(top, bottom Group, sides []Group, w Winding) *Mesh {
	nv, ni := len(top.Vertices)+len(bottom.Vertices), len(top.Indices)+len(bottom.Indices)
	for _, s := range sides {
		nv += len(s.Vertices)
		ni += len(s.Indices)
	}
	m := &Mesh{
		Vertices: make([]geom.Point3D, 0, nv),
		Indices:  make([]int, 0, ni),
	}

	m.add(top, w.InvertTop)
	m.add(bottom, w.InvertBottom)
	for _, s := range sides {
		m.add(s, w.InvertSides)
	}
	return m
}

func (m *Mesh) add(g Group, invert bool) {
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, g.Vertices...)

	idx := g.Indices
	if invert {
		idx = Reversed(idx)
	}
	for _, i := range idx {
		m.Indices = append(m.Indices, i+offset)
	}
}

// Reversed returns a reversed copy of an index list.
func Reversed(idx []int) []int {
	out := slices.Clone(idx)
	slices.Reverse(out)
	return out
}
