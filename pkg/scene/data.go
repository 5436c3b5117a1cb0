package scene

import (
	"github.com/chazu/svgextrude/pkg/extrude"
	"github.com/chazu/svgextrude/pkg/outline"
	"github.com/chazu/svgextrude/pkg/steps"
)

// TransformData is a node's placement relative to its parent. Nil fields
// are the identity. The local matrix is T * R * S, with R rotating about
// X first, then Y, then Z.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
	Scale       *Vec3 `json:"scale,omitempty"`
}

func (TransformData) nodeData() {}

// GroupData represents a logical grouping.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// ExtruderData is an outline swept along a path. The extruder node may
// also carry its own placement, which positions the finished mesh.
type ExtruderData struct {
	Outline   outline.Outline `json:"-"`
	Path      steps.Path      `json:"-"`
	Options   extrude.Options `json:"options"`
	Placement TransformData   `json:"placement"`
}

func (ExtruderData) nodeData() {}
