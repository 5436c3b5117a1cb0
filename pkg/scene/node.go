package scene

// NodeKind enumerates the types of nodes in the scene graph.
type NodeKind int

const (
	NodeTransform NodeKind = iota // local placement (translate, rotate, scale)
	NodeGroup                     // logical grouping, no placement of its own
	NodeExtruder                  // an outline swept along a step path
)

func (k NodeKind) String() string {
	switch k {
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "group"
	case NodeExtruder:
		return "extruder"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the scene graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
