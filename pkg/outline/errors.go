package outline

import (
	"errors"
	"fmt"
)

// ErrPathNotFound is returned when an SVG document has no <path> element
// matching the requested id.
var ErrPathNotFound = errors.New("no matching <path> element")

// MalformedPathError reports path data that cannot be interpreted: a
// non-numeric operand, a command that runs out of operands, or a path
// that ends without Z when a closing command is required.
type MalformedPathError struct {
	Pos    int    // byte offset into the path data, -1 at end of input
	Token  string // offending token, empty at end of input
	Reason string
}

func (e *MalformedPathError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("malformed path data at end of input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed path data at offset %d (%q): %s", e.Pos, e.Token, e.Reason)
}

// UnsupportedCommandError is returned under PolicyReject when the path uses a
// command that would otherwise be approximated.
type UnsupportedCommandError struct {
	Command string
	Pos     int
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported path command %q at offset %d", e.Command, e.Pos)
}

// DegenerateOutlineError signals an outline with fewer than three points,
// or one whose points enclose no area. It is an expected transient state,
// not a failure.
type DegenerateOutlineError struct {
	Points   int
	ZeroArea bool
}

func (e *DegenerateOutlineError) Error() string {
	if e.ZeroArea {
		return fmt.Sprintf("outline of %d points encloses no area", e.Points)
	}
	return fmt.Sprintf("outline has %d points, need at least 3 to extrude", e.Points)
}

// IsDegenerate reports whether err is a DegenerateOutlineError.
func IsDegenerate(err error) bool {
	var d *DegenerateOutlineError
	return errors.As(err, &d)
}

// Warning records a command that was interpreted with a fallback.
type Warning struct {
	Pos     int
	Command string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("offset %d: %s: %s", w.Pos, w.Command, w.Message)
}
