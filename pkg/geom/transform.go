package geom

// Transform maps a point to a new point. Steps of an extrusion path are
// supplied as Transforms by whoever owns the scene.
type Transform interface {
	TransformPoint(p Point3D) Point3D
}

// TransformFunc adapts an ordinary function to the Transform interface.
type TransformFunc func(p Point3D) Point3D

// TransformPoint calls f(p).
func (f TransformFunc) TransformPoint(p Point3D) Point3D { return f(p) }

// Identity leaves points unchanged.
var Identity Transform = TransformFunc(func(p Point3D) Point3D { return p })

// Translation returns a transform that offsets points by d.
func Translation(d Point3D) Transform {
	return TransformFunc(func(p Point3D) Point3D { return p.Add(d) })
}

// TransformAll maps every point in pts through t.
func TransformAll(t Transform, pts []Point3D) []Point3D {
	out := make([]Point3D, len(pts))
	for i, p := range pts {
		out[i] = t.TransformPoint(p)
	}
	return out
}

// Fingerprint returns the images of the origin and the three unit vectors.
// For affine transforms these four points determine t completely.
func Fingerprint(t Transform) [4]Point3D {
	return [4]Point3D{
		t.TransformPoint(Point3D{}),
		t.TransformPoint(Point3D{X: 1}),
		t.TransformPoint(Point3D{Y: 1}),
		t.TransformPoint(Point3D{Z: 1}),
	}
}
