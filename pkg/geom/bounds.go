package geom

import "math"

// Bounds2D is an axis-aligned bounding box in 2D.
type Bounds2D struct {
	Min, Max Point2D
}

// BoundsOf returns the bounding box of pts. The zero Bounds2D is returned
// for an empty slice.
func BoundsOf(pts []Point2D) Bounds2D {
	if len(pts) == 0 {
		return Bounds2D{}
	}
	b := Bounds2D{
		Min: Point2D{math.Inf(1), math.Inf(1)},
		Max: Point2D{math.Inf(-1), math.Inf(-1)},
	}
	for _, p := range pts {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Width returns the extent along x.
func (b Bounds2D) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the extent along y.
func (b Bounds2D) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Bounds2D) Center() Point2D {
	return Point2D{b.Min.X + b.Width()/2, b.Min.Y + b.Height()/2}
}

// Bounds3D is an axis-aligned bounding box in 3D.
type Bounds3D struct {
	Min, Max Point3D
}

// Bounds3DOf returns the bounding box of pts.
func Bounds3DOf(pts []Point3D) Bounds3D {
	if len(pts) == 0 {
		return Bounds3D{}
	}
	inf := math.Inf(1)
	b := Bounds3D{
		Min: Point3D{inf, inf, inf},
		Max: Point3D{-inf, -inf, -inf},
	}
	for _, p := range pts {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}
