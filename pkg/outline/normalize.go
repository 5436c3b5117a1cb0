package outline

import (
	"math"

	"github.com/chazu/svgextrude/pkg/geom"
)

// Normalize centers pts on the origin using their bounding box and scales
// them. With fit set, the larger half-extent is scaled to scale; otherwise
// scale is a plain multiplier. A new slice is returned.
func Normalize(pts []geom.Point2D, fit bool, scale float64) []geom.Point2D {
	if len(pts) == 0 {
		return nil
	}
	b := geom.BoundsOf(pts)
	half := geom.Point2D{X: b.Width() / 2, Y: b.Height() / 2}

	s := scale
	if fit {
		ext := math.Max(half.X, half.Y)
		if ext > geom.Epsilon {
			s = scale / ext
		} else {
			s = 1
		}
	}

	out := make([]geom.Point2D, len(pts))
	for i, p := range pts {
		out[i] = p.Sub(b.Min).Sub(half).Mul(s)
	}
	return out
}
