package extrude

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/logging"
	"github.com/chazu/svgextrude/pkg/mesh"
	"github.com/chazu/svgextrude/pkg/outline"
	"github.com/chazu/svgextrude/pkg/steps"
)

// DefaultCacheSize is the entry limit used by NewCache for a limit <= 0.
const DefaultCacheSize = 64

// Cache memoizes builds by a content hash of the outline points, the step
// transforms and the options. Concurrent requests for the same key share
// one build. Results are cloned on the way out, so callers never share
// buffers.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Result
	order   []string // insertion order, oldest first
	limit   int

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache returns a cache holding at most limit results.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	return &Cache{entries: make(map[string]*Result), limit: limit}
}

// Key returns the content hash for a build. Each transform contributes
// its fingerprint, which pins down an affine map.
func Key(pts []geom.Point2D, ts []geom.Transform, opts Options) string {
	buf := make([]byte, 0, 8*(2+2*len(pts)+12*len(ts))+3)
	f := func(v float64) { buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)) }

	f(float64(len(pts)))
	for _, p := range pts {
		f(p.X)
		f(p.Y)
	}
	f(float64(len(ts)))
	for _, t := range ts {
		for _, p := range geom.Fingerprint(t) {
			f(p.X)
			f(p.Y)
			f(p.Z)
		}
	}
	for _, b := range []bool{opts.InvertTop, opts.InvertBottom, opts.InvertSides} {
		if b {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// BuildPoints is the memoized form of the package-level BuildPoints.
func (c *Cache) BuildPoints(pts []geom.Point2D, ts []geom.Transform, opts Options) (*Result, error) {
	if err := CheckExtrudable(pts); err != nil {
		return nil, err
	}
	key := Key(pts, ts, opts)
	if r, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return cloneResult(r), nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if r, ok := c.lookup(key); ok {
			return r, nil
		}
		c.misses.Add(1)
		r, err := BuildPoints(pts, ts, opts)
		if err != nil {
			return nil, err
		}
		c.store(key, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.WithComponent("extrude").Debug("build shared", "key", key[:12])
	}
	return cloneResult(v.(*Result)), nil
}

// Build is the memoized form of the package-level Build.
func (c *Cache) Build(o outline.Outline, p steps.Path, opts Options) (*mesh.Mesh, bool, error) {
	pts, ts, err := inputs(o, p)
	if err != nil {
		return nil, false, err
	}
	res, err := c.BuildPoints(pts, ts, opts)
	if err != nil {
		if outline.IsDegenerate(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return res.Mesh, true, nil
}

func (c *Cache) lookup(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[key]
	return r, ok
}

func (c *Cache) store(key string, r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = r
	c.order = append(c.order, key)
	for len(c.order) > c.limit {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the number of cache hits and of builds performed.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.order = nil
}

func cloneResult(r *Result) *Result {
	return &Result{Mesh: r.Mesh.Clone(), Outlines: cloneOutlines(r.Outlines)}
}

func cloneOutlines(outlines [][]geom.Point3D) [][]geom.Point3D {
	out := make([][]geom.Point3D, len(outlines))
	for i, o := range outlines {
		out[i] = slices.Clone(o)
	}
	return out
}
