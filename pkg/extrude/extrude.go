// Package extrude sweeps a 2D outline through a sequence of step
// transforms and assembles the capped, side-walled result into one mesh.
package extrude

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/logging"
	"github.com/chazu/svgextrude/pkg/mesh"
	"github.com/chazu/svgextrude/pkg/outline"
	"github.com/chazu/svgextrude/pkg/steps"
	"github.com/chazu/svgextrude/pkg/triangulate"
)

// ErrNoOutline is returned when a build has no outline source.
var ErrNoOutline = errors.New("extrude: no outline")

// Options flip the winding of each face group.
type Options struct {
	InvertTop    bool `yaml:"invert_top"`
	InvertBottom bool `yaml:"invert_bottom"`
	InvertSides  bool `yaml:"invert_sides"`
}

// Result is a finished build.
type Result struct {
	Mesh *mesh.Mesh
	// Outlines holds the cross-section after each step; the last one is
	// the bottom cap.
	Outlines [][]geom.Point3D
}

// CheckExtrudable returns a *outline.DegenerateOutlineError when pts has
// fewer than three points or encloses no area. The area test is relative
// to the outline's extent so it holds at any scale.
func CheckExtrudable(pts []geom.Point2D) error {
	if len(pts) < 3 {
		return &outline.DegenerateOutlineError{Points: len(pts)}
	}
	b := geom.BoundsOf(pts)
	extent := math.Max(b.Width(), b.Height())
	// Negated so non-finite points also count as enclosing no area.
	if !(math.Abs(triangulate.SignedArea(pts)) > geom.Epsilon*extent*extent) {
		return &outline.DegenerateOutlineError{Points: len(pts), ZeroArea: true}
	}
	return nil
}

// Extrude maps base through each step in turn. For every step it returns
// the resulting cross-section and one side group joining it to the
// previous cross-section. Side vertices are fresh copies per step and the
// group indices are local to the group.
//
// Each edge i -> next becomes the quad (A[i], A[next], B[i], B[next]),
// where A is the previous cross-section and B the new one, split into the
// triangles (A[i], A[next], B[i]) and (B[next], B[i], A[next]).
func Extrude(base []geom.Point3D, ts []geom.Transform) ([][]geom.Point3D, []mesh.Group) {
	n := len(base)
	outlines := make([][]geom.Point3D, 0, len(ts))
	sides := make([]mesh.Group, 0, len(ts))

	last := base
	for _, t := range ts {
		next := geom.TransformAll(t, last)
		g := mesh.Group{
			Vertices: make([]geom.Point3D, 0, 4*n),
			Indices:  make([]int, 0, 6*n),
		}
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			q := len(g.Vertices)
			g.Vertices = append(g.Vertices, last[i], last[j], next[i], next[j])
			g.Indices = append(g.Indices,
				q, q+1, q+2,
				q+3, q+2, q+1,
			)
		}
		outlines = append(outlines, next)
		sides = append(sides, g)
		last = next
	}
	return outlines, sides
}

// BuildPoints triangulates pts for the caps, sweeps it through ts and
// assembles the mesh. Fewer than three points or a zero-area outline yield
// a *outline.DegenerateOutlineError.
func BuildPoints(pts []geom.Point2D, ts []geom.Transform, opts Options) (*Result, error) {
	if err := CheckExtrudable(pts); err != nil {
		return nil, err
	}

	base := geom.LiftAll(pts)
	capIdx := triangulate.Triangulate(pts)

	outlines, sides := Extrude(base, ts)
	bottom := base
	if len(outlines) > 0 {
		bottom = outlines[len(outlines)-1]
	}

	// The bottom cap faces the other way, so its triangles run reversed.
	m := mesh.Assemble(
		mesh.Group{Vertices: base, Indices: capIdx},
		mesh.Group{Vertices: bottom, Indices: mesh.Reversed(capIdx)},
		sides,
		mesh.Winding(opts),
	)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("extrude: %w", err)
	}

	logging.WithComponent("extrude").Debug("mesh built",
		"points", len(pts), "steps", len(ts), "vertices", m.VertexCount(), "triangles", m.TriangleCount())
	return &Result{Mesh: m, Outlines: outlines}, nil
}

// Build reads the outline and the steps and builds the mesh. A degenerate
// outline is not an error: Build returns ok == false and a nil error, and
// the caller should treat the result as "no mesh". A nil path means zero
// steps.
func Build(o outline.Outline, p steps.Path, opts Options) (m *mesh.Mesh, ok bool, err error) {
	res, err := build(o, p, opts)
	if err != nil {
		if outline.IsDegenerate(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return res.Mesh, true, nil
}

func build(o outline.Outline, p steps.Path, opts Options) (*Result, error) {
	pts, ts, err := inputs(o, p)
	if err != nil {
		return nil, err
	}
	return BuildPoints(pts, ts, opts)
}

func inputs(o outline.Outline, p steps.Path) ([]geom.Point2D, []geom.Transform, error) {
	if o == nil {
		return nil, nil, ErrNoOutline
	}
	pts, err := o.Points()
	if err != nil {
		return nil, nil, fmt.Errorf("extrude: outline: %w", err)
	}
	var ts []geom.Transform
	if p != nil {
		if ts, err = p.Steps(); err != nil {
			return nil, nil, fmt.Errorf("extrude: path: %w", err)
		}
	}
	return pts, ts, nil
}
