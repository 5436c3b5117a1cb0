// Package tessellate walks a scene graph and builds one mesh per extruder
// node, placed in world space.
package tessellate

import (
	"fmt"

	"github.com/chazu/svgextrude/pkg/extrude"
	"github.com/chazu/svgextrude/pkg/logging"
	"github.com/chazu/svgextrude/pkg/mesh"
	"github.com/chazu/svgextrude/pkg/scene"
)

// Part is the world-space mesh of one extruder node.
type Part struct {
	Name string
	Node scene.NodeID
	Mesh *mesh.Mesh
}

// Buffers returns the part's render buffers, named after the part.
func (p *Part) Buffers() *mesh.Buffers {
	return p.Mesh.Buffers(p.Name)
}

// Tessellator builds the parts of a scene. The zero value builds every
// extruder from scratch.
type Tessellator struct {
	// Cache, when set, memoizes extruder builds across calls.
	Cache *extrude.Cache
}

// Tessellate walks g with a zero Tessellator.
func Tessellate(g *scene.Graph) ([]*Part, error) {
	return (&Tessellator{}).Tessellate(g)
}

// Tessellate walks the graph from its roots and produces one part per
// extruder node that yields a mesh. Extruders with degenerate outlines are
// skipped with a warning. The graph is never mutated.
func (t *Tessellator) Tessellate(g *scene.Graph) ([]*Part, error) {
	if g == nil {
		return nil, nil
	}

	w := &walker{t: t, g: g, visiting: make(map[scene.NodeID]bool)}
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		if err := w.walk(root, scene.Identity()); err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
	}

	logging.WithComponent("tessellate").Debug("scene tessellated",
		"nodes", g.NodeCount(), "parts", len(w.parts), "skipped", w.skipped)
	return w.parts, nil
}

// Buffers converts parts to render buffers.
func Buffers(parts []*Part) []*mesh.Buffers {
	out := make([]*mesh.Buffers, len(parts))
	for i, p := range parts {
		out[i] = p.Buffers()
	}
	return out
}

// Merge combines every part into a single mesh.
func Merge(parts []*Part) *mesh.Mesh {
	ms := make([]*mesh.Mesh, len(parts))
	for i, p := range parts {
		ms[i] = p.Mesh
	}
	return mesh.Merge(ms...)
}

type walker struct {
	t        *Tessellator
	g        *scene.Graph
	visiting map[scene.NodeID]bool
	parts    []*Part
	skipped  int
}

// walk recursively traverses a node and its children. parent is the world
// placement of n's parent.
func (w *walker) walk(n *scene.Node, parent scene.Placement) error {
	if w.visiting[n.ID] {
		return fmt.Errorf("cycle through node %s", n.ID.Short())
	}
	w.visiting[n.ID] = true
	defer delete(w.visiting, n.ID)

	world := scene.LocalPlacement(n).Then(parent)

	switch n.Kind {
	case scene.NodeExtruder:
		if err := w.extruder(n, world); err != nil {
			return err
		}
	case scene.NodeTransform:
		if _, ok := n.Data.(scene.TransformData); !ok {
			return fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
	case scene.NodeGroup:
	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}

	for _, child := range w.g.Children(n) {
		if err := w.walk(child, world); err != nil {
			return err
		}
	}
	return nil
}

// extruder builds the mesh for an extruder node and places it.
func (w *walker) extruder(n *scene.Node, world scene.Placement) error {
	data, ok := n.Data.(scene.ExtruderData)
	if !ok {
		return fmt.Errorf("extruder node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	name := n.Name
	if name == "" {
		name = n.ID.Short()
	}

	var (
		m   *mesh.Mesh
		err error
	)
	if w.t.Cache != nil {
		m, ok, err = w.t.Cache.Build(data.Outline, data.Path, data.Options)
	} else {
		m, ok, err = extrude.Build(data.Outline, data.Path, data.Options)
	}
	if err != nil {
		return fmt.Errorf("extruder %q: %w", name, err)
	}
	if !ok {
		w.skipped++
		logging.WithComponent("tessellate").Warn("degenerate outline, extruder skipped", "node", name)
		return nil
	}

	placed := m.Transform(world)
	if world.M.Det() < 0 {
		// A mirroring placement turns every face inside out.
		placed.Indices = mesh.Reversed(placed.Indices)
	}
	w.parts = append(w.parts, &Part{Name: name, Node: n.ID, Mesh: placed})
	return nil
}
