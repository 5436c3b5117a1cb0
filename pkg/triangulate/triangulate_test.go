package triangulate

import (
	"math"
	"slices"
	"testing"

	"github.com/ErikKalkoken/go-set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/svgextrude/pkg/geom"
)

func star(points int, outer, inner float64) []geom.Point2D {
	var out []geom.Point2D
	for k := 0; k < 2*points; k++ {
		r := outer
		if k%2 == 1 {
			r = inner
		}
		a := float64(k) * math.Pi / float64(points)
		out = append(out, geom.Point2D{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	return out
}

func reversed(p []geom.Point2D) []geom.Point2D {
	out := slices.Clone(p)
	slices.Reverse(out)
	return out
}

var polygons = map[string][]geom.Point2D{
	"triangle": {{0, 0}, {1, 0}, {0, 1}},
	"square":   {{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
	"L shape":  {{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}},
	"comb": {
		{0, 0}, {5, 0}, {5, 3}, {4, 3}, {4, 1}, {3, 1},
		{3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3},
	},
	"collinear edges": {{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}},
	"star":            star(5, 2, 0.8),
	"clockwise star":  reversed(star(7, 3, 1)),
}

// checkTriangulation verifies the index count and range, that every vertex
// is used, that each triangle has the polygon's winding, and that the
// triangles tile the polygon's area exactly.
func checkTriangulation(t *testing.T, poly []geom.Point2D, idx []int) {
	t.Helper()
	n := len(poly)
	require.Len(t, idx, 3*(n-2))

	used := set.Of(idx...)
	assert.Equal(t, n, used.Size())
	for _, i := range idx {
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, n)
	}

	area := SignedArea(poly)
	var sum float64
	for k := 0; k < len(idx); k += 3 {
		tri := []geom.Point2D{poly[idx[k]], poly[idx[k+1]], poly[idx[k+2]]}
		a := SignedArea(tri)
		assert.GreaterOrEqual(t, a*math.Copysign(1, area), -1e-9, "triangle %d is wound against the polygon", k/3)
		sum += math.Abs(a)
	}
	assert.InDelta(t, math.Abs(area), sum, 1e-9)
}

func TestTriangulate(t *testing.T) {
	for name, poly := range polygons {
		t.Run(name, func(t *testing.T) {
			checkTriangulation(t, poly, Triangulate(poly))
		})
	}
}

func TestTriangulatePreservesWinding(t *testing.T) {
	ccw := polygons["L shape"]
	cw := reversed(ccw)
	require.Positive(t, SignedArea(ccw))
	require.Negative(t, SignedArea(cw))

	for _, poly := range [][]geom.Point2D{ccw, cw} {
		idx := Triangulate(poly)
		for k := 0; k < len(idx); k += 3 {
			a := SignedArea([]geom.Point2D{poly[idx[k]], poly[idx[k+1]], poly[idx[k+2]]})
			assert.Equal(t, math.Signbit(SignedArea(poly)), math.Signbit(a))
		}
	}
}

func TestTriangulateSquare(t *testing.T) {
	idx := Triangulate(polygons["square"])
	require.Len(t, idx, 6)
	got := set.Of(idx...)
	want := set.Of(0, 1, 2, 3)
	assert.True(t, got.Equal(want))
}

func TestTriangulateDegenerate(t *testing.T) {
	assert.Nil(t, Triangulate(nil))
	assert.Nil(t, Triangulate([]geom.Point2D{{0, 0}, {1, 1}}))

	// All points on one line: no area, but the index count still holds.
	line := []geom.Point2D{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	idx := Triangulate(line)
	assert.Len(t, idx, 9)

	dup := []geom.Point2D{{0, 0}, {1, 0}, {1, 0}, {1, 1}, {0, 1}}
	checkTriangulation(t, dup, Triangulate(dup))
}

func TestTriangulateLargeCircle(t *testing.T) {
	var circle []geom.Point2D
	for k := 0; k < 256; k++ {
		a := 2 * math.Pi * float64(k) / 256
		circle = append(circle, geom.Point2D{X: math.Cos(a), Y: math.Sin(a)})
	}
	checkTriangulation(t, circle, Triangulate(circle))
}

func TestSignedArea(t *testing.T) {
	assert.Equal(t, 8.0, SignedArea(polygons["square"]))
	assert.Equal(t, -8.0, SignedArea(reversed(polygons["square"])))
	assert.InDelta(t, 22.0, SignedArea(polygons["comb"]), 1e-12)
}
