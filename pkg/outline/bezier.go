package outline

import "github.com/chazu/svgextrude/pkg/geom"

// cubicPoints samples the cubic Bezier p0..p3 at t = 1/n, 2/n, ... 1.
// The start point is not included; the last sample is exactly p3.
func cubicPoints(p0, p1, p2, p3 geom.Point2D, n int) []geom.Point2D {
	pts := make([]geom.Point2D, n)
	for i := 1; i <= n; i++ {
		if i == n {
			pts[i-1] = p3
			break
		}
		t := float64(i) / float64(n)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		pts[i-1] = geom.Point2D{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		}
	}
	return pts
}

// quadPoints samples the quadratic Bezier p0, p1, p2 the same way.
func quadPoints(p0, p1, p2 geom.Point2D, n int) []geom.Point2D {
	pts := make([]geom.Point2D, n)
	for i := 1; i <= n; i++ {
		if i == n {
			pts[i-1] = p2
			break
		}
		t := float64(i) / float64(n)
		mt := 1 - t
		pts[i-1] = geom.Point2D{
			X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
			Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
		}
	}
	return pts
}
