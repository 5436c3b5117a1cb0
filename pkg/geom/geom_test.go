package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLift(t *testing.T) {
	p := Point2D{X: 2, Y: 3}.Lift()
	assert.Equal(t, Point3D{X: 2, Y: 0, Z: -3}, p)
}

func TestBoundsOf(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Bounds2D{}, BoundsOf(nil))
	})
	t.Run("points", func(t *testing.T) {
		b := BoundsOf([]Point2D{{1, 5}, {-2, 3}, {4, -1}})
		assert.Equal(t, Point2D{-2, -1}, b.Min)
		assert.Equal(t, Point2D{4, 5}, b.Max)
		assert.Equal(t, 6.0, b.Width())
		assert.Equal(t, 6.0, b.Height())
		assert.Equal(t, Point2D{1, 2}, b.Center())
	})
	t.Run("first point is both min and max", func(t *testing.T) {
		// Increasing sequence: every later point only raises the max.
		b := BoundsOf([]Point2D{{0, 0}, {1, 1}, {2, 2}})
		assert.Equal(t, Point2D{0, 0}, b.Min)
		assert.Equal(t, Point2D{2, 2}, b.Max)
	})
}

func TestTranslationAndFingerprint(t *testing.T) {
	tr := Translation(Point3D{Y: -2})
	assert.Equal(t, Point3D{X: 1, Y: -2, Z: 1}, tr.TransformPoint(Point3D{X: 1, Z: 1}))

	fp := Fingerprint(tr)
	assert.Equal(t, Point3D{Y: -2}, fp[0])
	assert.Equal(t, Point3D{X: 1, Y: -2}, fp[1])
	assert.Equal(t, Fingerprint(Translation(Point3D{Y: -2})), fp)
	assert.NotEqual(t, Fingerprint(Identity), fp)
}

func TestTransformAll(t *testing.T) {
	pts := []Point3D{{1, 2, 3}, {4, 5, 6}}
	out := TransformAll(Translation(Point3D{X: 1}), pts)
	assert.Equal(t, []Point3D{{2, 2, 3}, {5, 5, 6}}, out)
	assert.Equal(t, Point3D{1, 2, 3}, pts[0], "input must not be mutated")
}
