// Package outline turns SVG path data into the flat, centered polygon that
// the extrusion engine sweeps.
//
// Path data is lexed into command letters and numbers, walked by a
// state machine that tracks the current point and absolute/relative mode,
// flattened where curves appear, and finally centered on the origin and
// optionally fitted to a target size.
package outline

import (
	"fmt"

	"github.com/chazu/svgextrude/pkg/geom"
)

// Outline produces the ordered points of a closed 2D polygon.
type Outline interface {
	Points() ([]geom.Point2D, error)
}

// Config controls parsing and normalization.
type Config struct {
	Normalize     bool          `yaml:"normalize"`      // fit the outline to Scale
	Scale         float64       `yaml:"scale"`          // target half-extent, or multiplier when not normalizing
	CurveSegments int           `yaml:"curve_segments"` // points per curve command
	PathID        string        `yaml:"path_id"`        // <path> id to select in a document
	Policy        CommandPolicy `yaml:"-"`
	RequireClose  bool          `yaml:"require_close"`
}

// DefaultConfig returns the default parse settings.
func DefaultConfig() Config {
	return Config{
		Normalize:     true,
		Scale:         1,
		CurveSegments: DefaultCurveSegments,
		Policy:        PolicyFlatten,
		RequireClose:  true,
	}
}

func (c Config) interpreter() Interpreter {
	return Interpreter{CurveSegments: c.CurveSegments, Policy: c.Policy, RequireClose: c.RequireClose}
}

// Parse interprets path data and normalizes the resulting points.
func Parse(d string, cfg Config) (*Parsed, error) {
	res, err := cfg.interpreter().Interpret(d)
	if err != nil {
		return nil, err
	}
	res.Points = Normalize(res.Points, cfg.Normalize, cfg.Scale)
	return res, nil
}

// ParsePath interprets d with the default configuration and returns the
// normalized points.
func ParsePath(d string) ([]geom.Point2D, error) {
	res, err := Parse(d, DefaultConfig())
	if err != nil {
		return nil, err
	}
	return res.Points, nil
}

// Static is an outline given as explicit points. They are returned as is.
type Static []geom.Point2D

// Points returns a copy of the points.
func (s Static) Points() ([]geom.Point2D, error) {
	out := make([]geom.Point2D, len(s))
	copy(out, s)
	return out, nil
}

// PathData is an outline read from the d attribute of an SVG path.
type PathData struct {
	D      string
	Config Config

	// Warnings from the most recent call to Points.
	Warnings []Warning
}

// Points parses the path data.
func (p *PathData) Points() ([]geom.Point2D, error) {
	res, err := Parse(p.D, p.Config)
	if err != nil {
		return nil, err
	}
	p.Warnings = res.Warnings
	return res.Points, nil
}

// SVG is an outline read from a path element of an SVG document. The
// element is chosen by Config.PathID; the first <path> wins when it is empty.
type SVG struct {
	Document []byte
	Config   Config

	// Warnings from the most recent call to Points.
	Warnings []Warning
}

// Points selects the path element and parses it.
func (s *SVG) Points() ([]geom.Point2D, error) {
	d, err := SelectPath(s.Document, s.Config.PathID)
	if err != nil {
		return nil, err
	}
	res, err := Parse(d, s.Config)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", s.Config.PathID, err)
	}
	s.Warnings = res.Warnings
	return res.Points, nil
}
