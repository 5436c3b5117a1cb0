package steps

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/svgextrude/pkg/geom"
)

// Matrix is an affine step transform backed by an sdfx 4x4 matrix.
type Matrix struct {
	m sdf.M44
}

var _ geom.Transform = Matrix{}

// Identity returns the identity step.
func Identity() Matrix { return Matrix{m: sdf.Identity3d()} }

// FromM44 wraps an existing sdfx matrix.
func FromM44(m sdf.M44) Matrix { return Matrix{m: m} }

// Translate moves points by (x, y, z).
func Translate(x, y, z float64) Matrix {
	return Matrix{m: sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})}
}

// Scale scales points about the origin.
func Scale(x, y, z float64) Matrix {
	return Matrix{m: sdf.Scale3d(v3.Vec{X: x, Y: y, Z: z})}
}

// Rotate rotates by Euler angles in degrees, about X first, then Y, then Z.
func Rotate(x, y, z float64) Matrix {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	return Matrix{m: sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))}
}

// Then returns the transform that applies a and then b.
func (a Matrix) Then(b Matrix) Matrix {
	return Matrix{m: b.m.Mul(a.m)}
}

// Compose chains transforms, applied left to right. With no arguments it
// returns the identity.
func Compose(ms ...Matrix) Matrix {
	out := Identity()
	for _, m := range ms {
		out = out.Then(m)
	}
	return out
}

// M44 returns the underlying sdfx matrix.
func (a Matrix) M44() sdf.M44 { return a.m }

// TransformPoint implements geom.Transform.
func (a Matrix) TransformPoint(p geom.Point3D) geom.Point3D {
	return geom.FromVec(a.m.MulPosition(p.Vec()))
}
