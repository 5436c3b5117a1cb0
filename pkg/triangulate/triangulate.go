// Package triangulate splits a simple polygon into triangles by ear clipping.
//
// Triangles are emitted with the same winding as the input polygon, so a
// caller that wants the opposite facing reverses the whole index list.
//
// Each vertex keeps a cached convexity and ear flag. Clipping an ear only
// changes the angles at its two neighbours, so only those are re-examined,
// which keeps the work at O(n^2) point-in-triangle tests. Clipping can
// unblock an ear elsewhere without touching it; when the cached ears run
// out the flags are rebuilt once before falling back to clipping the most
// convex vertex, which always makes progress on degenerate input.
package triangulate

import (
	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/logging"
)

// Triangulate returns a flat triple-index list into poly covering its
// interior. Polygons with fewer than three points yield nil; otherwise the
// result always holds 3*(len(poly)-2) indices.
func Triangulate(poly []geom.Point2D) []int {
	n := len(poly)
	if n < 3 {
		return nil
	}
	out := make([]int, 0, 3*(n-2))
	if n == 3 {
		return append(out, 0, 1, 2)
	}

	c := newClipper(poly)
	fallbacks := 0
	for c.remaining > 3 {
		i, ok := c.findEar()
		if !ok {
			c.refresh()
			if i, ok = c.findEar(); !ok {
				i = c.mostConvex()
				fallbacks++
			}
		}
		out = append(out, c.prev[i], i, c.next[i])
		c.remove(i)
	}
	i := c.head
	out = append(out, c.prev[i], i, c.next[i])

	if fallbacks > 0 {
		logging.WithComponent("triangulate").Debug("forced clips on degenerate polygon",
			"points", n, "forced", fallbacks)
	}
	return out
}

// SignedArea returns twice the signed area of poly: positive when the
// points run counter-clockwise in a y-up frame.
func SignedArea(poly []geom.Point2D) float64 {
	var a float64
	for i, p := range poly {
		a += p.Cross(poly[(i+1)%len(poly)])
	}
	return a
}

type clipper struct {
	pts        []geom.Point2D
	prev, next []int
	reflex     []bool
	ear        []bool
	orient     float64 // +1 or -1, the polygon's winding
	head       int
	remaining  int
}

func newClipper(pts []geom.Point2D) *clipper {
	n := len(pts)
	c := &clipper{
		pts:       pts,
		prev:      make([]int, n),
		next:      make([]int, n),
		reflex:    make([]bool, n),
		ear:       make([]bool, n),
		orient:    1,
		remaining: n,
	}
	if SignedArea(pts) < 0 {
		c.orient = -1
	}
	for i := range pts {
		c.prev[i] = (i + n - 1) % n
		c.next[i] = (i + 1) % n
	}
	c.refresh()
	return c
}

// convexity is positive for a convex corner at i, negative for a reflex
// one, and zero when prev, i and next are collinear.
func (c *clipper) convexity(i int) float64 {
	a, b, p := c.pts[c.prev[i]], c.pts[i], c.pts[c.next[i]]
	return c.orient * b.Sub(a).Cross(p.Sub(b))
}

func (c *clipper) refresh() {
	i := c.head
	for k := 0; k < c.remaining; k++ {
		c.reflex[i] = c.convexity(i) < -geom.Epsilon
		i = c.next[i]
	}
	for k := 0; k < c.remaining; k++ {
		c.ear[i] = c.isEar(i)
		i = c.next[i]
	}
}

func (c *clipper) isEar(i int) bool {
	if c.reflex[i] {
		return false
	}
	pi, ni := c.prev[i], c.next[i]
	a, b, d := c.pts[pi], c.pts[i], c.pts[ni]
	if c.convexity(i) <= geom.Epsilon {
		// Collinear corner: clipping it emits a zero-area triangle and
		// leaves the shape unchanged.
		return true
	}
	for j := c.next[ni]; j != pi; j = c.next[j] {
		if !c.reflex[j] {
			continue
		}
		p := c.pts[j]
		if p == a || p == b || p == d {
			continue
		}
		if c.inTriangle(p, a, b, d) {
			return false
		}
	}
	return true
}

// inTriangle reports whether p lies inside or on the boundary of a, b, d,
// a triangle wound the same way as the polygon.
func (c *clipper) inTriangle(p, a, b, d geom.Point2D) bool {
	return c.orient*b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		c.orient*d.Sub(b).Cross(p.Sub(b)) >= 0 &&
		c.orient*a.Sub(d).Cross(p.Sub(d)) >= 0
}

func (c *clipper) findEar() (int, bool) {
	i := c.head
	for k := 0; k < c.remaining; k++ {
		if c.ear[i] {
			return i, true
		}
		i = c.next[i]
	}
	return -1, false
}

func (c *clipper) mostConvex() int {
	best, bestVal := c.head, c.convexity(c.head)
	i := c.next[c.head]
	for k := 1; k < c.remaining; k++ {
		if v := c.convexity(i); v > bestVal {
			best, bestVal = i, v
		}
		i = c.next[i]
	}
	return best
}

func (c *clipper) remove(i int) {
	p, n := c.prev[i], c.next[i]
	c.next[p] = n
	c.prev[n] = p
	c.remaining--
	c.head = n

	for _, v := range [2]int{p, n} {
		c.reflex[v] = c.convexity(v) < -geom.Epsilon
	}
	for _, v := range [2]int{p, n} {
		c.ear[v] = c.isEar(v)
	}
}
