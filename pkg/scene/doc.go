// Package scene is the small scene graph that hosts extruders. Nodes
// carry local transforms; an extruder node names the outline it sweeps and
// the path of steps it sweeps along. A chain of nodes can itself serve as
// that path through HierarchyPath.
package scene
