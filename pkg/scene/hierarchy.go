package scene

import (
	"fmt"

	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/steps"
)

var _ steps.Path = HierarchyPath{}

// HierarchyPath derives extrusion steps from a chain of scene nodes: Root,
// then Root's first child, then that node's first child, and so on until a
// node has no children. Each node contributes its world placement as one
// step. With no Root, the single step is the world placement of Self.
type HierarchyPath struct {
	Graph *Graph
	Root  NodeID
	Self  NodeID
}

// Steps implements steps.Path.
func (h HierarchyPath) Steps() ([]geom.Transform, error) {
	if h.Graph == nil {
		return nil, fmt.Errorf("scene: hierarchy path without a graph")
	}
	if h.Root.IsZero() {
		if h.Self.IsZero() {
			return nil, nil
		}
		p, err := h.Graph.WorldPlacement(h.Self)
		if err != nil {
			return nil, err
		}
		return []geom.Transform{p}, nil
	}

	var out []geom.Transform
	seen := make(map[NodeID]bool)
	for id := h.Root; ; {
		if seen[id] {
			return nil, fmt.Errorf("scene: hierarchy path loops at node %s", id.Short())
		}
		seen[id] = true
		p, err := h.Graph.WorldPlacement(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)

		n := h.Graph.Nodes[id]
		if len(n.Children) == 0 {
			break
		}
		id = n.Children[0]
	}
	return out, nil
}
