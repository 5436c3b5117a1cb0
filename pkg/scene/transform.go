package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/svgextrude/pkg/geom"
)

// Placement is an affine map from a node's local space to its parent's, or
// to world space for a world placement.
type Placement struct {
	M mgl64.Mat4
}

var _ geom.Transform = Placement{}

// Identity returns the identity placement.
func Identity() Placement { return Placement{M: mgl64.Ident4()} }

// TransformPoint implements geom.Transform.
func (p Placement) TransformPoint(pt geom.Point3D) geom.Point3D {
	v := p.M.Mul4x1(mgl64.Vec4{pt.X, pt.Y, pt.Z, 1})
	return geom.Point3D{X: v[0], Y: v[1], Z: v[2]}
}

// Then returns the placement that applies p and then q.
func (p Placement) Then(q Placement) Placement {
	return Placement{M: q.M.Mul4(p.M)}
}

// Local returns the matrix T * Rz * Ry * Rx * S for td.
func (td TransformData) Local() Placement {
	m := mgl64.Ident4()
	if td.Translation != nil {
		t := td.Translation
		m = m.Mul4(mgl64.Translate3D(t.X, t.Y, t.Z))
	}
	if td.Rotation != nil {
		r := td.Rotation
		m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(r.Z)))
		m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(r.Y)))
		m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(r.X)))
	}
	if td.Scale != nil {
		s := td.Scale
		m = m.Mul4(mgl64.Scale3D(s.X, s.Y, s.Z))
	}
	return Placement{M: m}
}

// LocalPlacement returns the placement a node applies to itself and its
// children. Groups place nothing.
func LocalPlacement(n *Node) Placement {
	switch d := n.Data.(type) {
	case TransformData:
		return d.Local()
	case ExtruderData:
		return d.Placement.Local()
	default:
		return Identity()
	}
}

// WorldPlacement composes the local placements from the root down to id.
func (g *Graph) WorldPlacement(id NodeID) (Placement, error) {
	n := g.Nodes[id]
	if n == nil {
		return Placement{}, fmt.Errorf("scene: no node %s", id.Short())
	}
	world := LocalPlacement(n)
	seen := map[NodeID]bool{id: true}
	for p := g.Parent(id); p != nil; p = g.Parent(p.ID) {
		if seen[p.ID] {
			return Placement{}, fmt.Errorf("scene: cycle above node %s", id.Short())
		}
		seen[p.ID] = true
		world = world.Then(LocalPlacement(p))
	}
	return world, nil
}
