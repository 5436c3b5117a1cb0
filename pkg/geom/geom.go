// Package geom holds the small value types shared by the outline parser,
// the triangulator and the extrusion engine.
package geom

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the tolerance used for floating point comparisons.
const Epsilon = 1e-9

// Point2D is an outline vertex in 2D space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D { return Point2D{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D { return Point2D{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point2D) Mul(s float64) Point2D { return Point2D{p.X * s, p.Y * s} }

// Cross returns the z component of the cross product of p and q.
func (p Point2D) Cross(q Point2D) float64 { return p.X*q.Y - p.Y*q.X }

// ApproxEqual reports whether p and q differ by at most tol on each axis.
func (p Point2D) ApproxEqual(q Point2D, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Lift maps an outline point into 3D on the y=0 plane. The 2D y axis
// becomes -z so that a y-down SVG outline reads correctly from above.
func (p Point2D) Lift() Point3D { return Point3D{X: p.X, Y: 0, Z: -p.Y} }

func (p Point2D) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Point3D is a vertex in 3D space.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns p + q.
func (p Point3D) Add(q Point3D) Point3D { return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p - q.
func (p Point3D) Sub(q Point3D) Point3D { return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// ApproxEqual reports whether p and q differ by at most tol on each axis.
func (p Point3D) ApproxEqual(q Point3D, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol && math.Abs(p.Z-q.Z) <= tol
}

// Vec converts p to an sdfx vector.
func (p Point3D) Vec() v3.Vec { return v3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// FromVec converts an sdfx vector to a Point3D.
func FromVec(v v3.Vec) Point3D { return Point3D{X: v.X, Y: v.Y, Z: v.Z} }

func (p Point3D) String() string { return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z) }

// LiftAll lifts every point of an outline into 3D.
func LiftAll(pts []Point2D) []Point3D {
	out := make([]Point3D, len(pts))
	for i, p := range pts {
		out[i] = p.Lift()
	}
	return out
}
