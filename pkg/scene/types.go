package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID is a content-addressed identifier for scene nodes.
type NodeID string

// NewNodeID derives a stable ID from a seed such as "extruder/wing".
func NewNodeID(seed string) NodeID {
	sum := sha256.Sum256([]byte(seed))
	return NodeID(hex.EncodeToString(sum[:]))
}

// Short returns an abbreviated form for logs and error messages.
func (id NodeID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool { return id == "" }

// Vec3 is a 3-component vector in scene units.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// IsZero reports whether every component is zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }
