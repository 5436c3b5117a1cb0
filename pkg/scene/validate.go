package scene

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks a build
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks the build
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate runs the structural checks on the scene graph and returns the
// findings. An empty slice means the graph is valid. The graph is never
// mutated.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateCycles(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateParents(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateRoots(g)...)
	errs = append(errs, validatePayloads(g)...)
	return errs
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// validateCycles checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
func validateCycles(g *Graph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		node, ok := g.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}
		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for id := range g.Nodes {
		if color[id] == white && visit(id) {
			break
		}
	}
	return errs
}

// validateReferences checks that every child ID points to an existing node.
func validateReferences(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, node := range g.Nodes {
		for _, childID := range node.Children {
			if _, ok := g.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateParents checks that the graph is a forest: no node is listed as
// a child twice, and no root is also a child.
func validateParents(g *Graph) []ValidationError {
	var errs []ValidationError
	parents := make(map[NodeID]int)
	for _, node := range g.Nodes {
		for _, childID := range node.Children {
			parents[childID]++
		}
	}
	for id, n := range parents {
		if n > 1 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("node has %d parents, placement is ambiguous", n),
				Severity: SeverityError,
			})
		}
	}
	for _, rid := range g.Roots {
		if parents[rid] > 0 {
			errs = append(errs, ValidationError{
				NodeID:   rid,
				Message:  "root node is also a child",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateNames checks that every NameIndex entry exists and that no two
// nodes share a name.
func validateNames(g *Graph) []ValidationError {
	var errs []ValidationError
	for name, id := range g.NameIndex {
		if _, ok := g.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	nameToNodes := make(map[string][]NodeID)
	for id, node := range g.Nodes {
		if node.Name != "" {
			nameToNodes[node.Name] = append(nameToNodes[node.Name], id)
		}
	}
	for name, ids := range nameToNodes {
		if len(ids) > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, len(ids)),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateRoots checks root references and warns about nodes unreachable
// from any root.
func validateRoots(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}
	if len(g.Nodes) == 0 {
		return errs
	}

	reachable := make(map[NodeID]bool)
	var queue []NodeID
	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; ok && !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}
	for len(queue) > 0 {
		node := g.Nodes[queue[0]]
		queue = queue[1:]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for id, node := range g.Nodes {
		if !reachable[id] {
			name := node.Name
			if name == "" {
				name = id.Short()
			}
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("node %q is not reachable from any root (orphan)", name),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validatePayloads checks that each node carries the data its kind needs.
func validatePayloads(g *Graph) []ValidationError {
	var errs []ValidationError
	bad := func(n *Node, msg string, args ...any) {
		errs = append(errs, ValidationError{NodeID: n.ID, Message: fmt.Sprintf(msg, args...), Severity: SeverityError})
	}

	for _, n := range g.Nodes {
		switch n.Kind {
		case NodeTransform:
			td, ok := n.Data.(TransformData)
			if !ok {
				bad(n, "transform node has %T data", n.Data)
				continue
			}
			if td.Scale != nil && (td.Scale.X == 0 || td.Scale.Y == 0 || td.Scale.Z == 0) {
				bad(n, "scale %v collapses an axis", *td.Scale)
			}
		case NodeGroup:
			if _, ok := n.Data.(GroupData); !ok && n.Data != nil {
				bad(n, "group node has %T data", n.Data)
			}
		case NodeExtruder:
			ed, ok := n.Data.(ExtruderData)
			if !ok {
				bad(n, "extruder node has %T data", n.Data)
				continue
			}
			if ed.Outline == nil {
				bad(n, "extruder has no outline")
			}
		default:
			bad(n, "unknown node kind %v", n.Kind)
		}
	}
	return errs
}
