package scene

import "fmt"

// Graph holds the scene nodes. Children lists define a forest; Roots are
// the top-level nodes in display order.
type Graph struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
	}
}

// AddNode adds a node to the graph. It does not check for duplicates.
func (g *Graph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the graph.
func (g *Graph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// AddChild appends child to parent's children.
func (g *Graph) AddChild(parent, child NodeID) error {
	p := g.Nodes[parent]
	if p == nil {
		return fmt.Errorf("scene: no parent node %s", parent.Short())
	}
	p.Children = append(p.Children, child)
	return nil
}

// Lookup returns the node with the given name, or nil.
func (g *Graph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (g *Graph) MustLookup(name string) *Node {
	n := g.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("scene: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (g *Graph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// Children returns the child nodes of the given node.
func (g *Graph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// Parent returns the node listing id as a child, or nil for a root.
func (g *Graph) Parent(id NodeID) *Node {
	for _, n := range g.Nodes {
		for _, c := range n.Children {
			if c == id {
				return n
			}
		}
	}
	return nil
}

// Extruders returns all extruder nodes in the graph.
func (g *Graph) Extruders() []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Kind == NodeExtruder {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the total number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}
