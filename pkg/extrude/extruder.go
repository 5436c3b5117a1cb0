package extrude

import (
	"sync"

	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/logging"
	"github.com/chazu/svgextrude/pkg/mesh"
	"github.com/chazu/svgextrude/pkg/outline"
	"github.com/chazu/svgextrude/pkg/steps"
)

// Extruder owns an outline, a path and options, and rebuilds its mesh when
// any of them change. The host calls RebuildIfDirty after edits; the
// Extruder never polls.
//
// A rebuild replaces the mesh wholesale. A mesh handed out earlier is
// never modified.
type Extruder struct {
	mu sync.Mutex

	outline outline.Outline
	path    steps.Path
	opts    Options
	cache   *Cache

	dirty  bool
	result *Result
	err    error
}

// New returns an Extruder that builds on the first RebuildIfDirty.
func New(o outline.Outline, p steps.Path, opts Options) *Extruder {
	return &Extruder{outline: o, path: p, opts: opts, dirty: true}
}

// SetOutline replaces the outline source.
func (e *Extruder) SetOutline(o outline.Outline) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.outline = o
	e.dirty = true
}

// SetPath replaces the step source.
func (e *Extruder) SetPath(p steps.Path) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.path = p
	e.dirty = true
}

// SetOptions replaces the winding options.
func (e *Extruder) SetOptions(opts Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if opts != e.opts {
		e.opts = opts
		e.dirty = true
	}
}

// UseCache routes builds through c. A nil cache builds directly.
func (e *Extruder) UseCache(c *Cache) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = c
}

// MarkDirty forces the next RebuildIfDirty to build, for sources that
// changed behind the Extruder's back.
func (e *Extruder) MarkDirty() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = true
}

// RebuildIfDirty builds the mesh if an input changed since the last build
// and reports whether it did. A failed or degenerate build leaves the
// Extruder unprepared; only a failure is returned as an error.
func (e *Extruder) RebuildIfDirty() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.dirty {
		return false, nil
	}
	e.dirty = false

	res, err := e.build()
	log := logging.WithComponent("extrude")
	switch {
	case err == nil:
		e.result, e.err = res, nil
	case outline.IsDegenerate(err):
		log.Debug("outline not extrudable", "error", err)
		e.result, e.err = nil, nil
	default:
		log.Warn("rebuild failed", "error", err)
		e.result, e.err = nil, err
	}
	return true, e.err
}

func (e *Extruder) build() (*Result, error) {
	pts, ts, err := inputs(e.outline, e.path)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		return e.cache.BuildPoints(pts, ts, e.opts)
	}
	return BuildPoints(pts, ts, e.opts)
}

// IsPrepared reports whether the last build produced a mesh.
func (e *Extruder) IsPrepared() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result != nil
}

// Mesh returns a copy of the current mesh, or nil when not prepared.
func (e *Extruder) Mesh() *mesh.Mesh {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return nil
	}
	return e.result.Mesh.Clone()
}

// Outlines returns a copy of the per-step cross-sections of the current
// build.
func (e *Extruder) Outlines() [][]geom.Point3D {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return nil
	}
	return cloneOutlines(e.result.Outlines)
}

// Err returns the error of the last build, if it failed.
func (e *Extruder) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
