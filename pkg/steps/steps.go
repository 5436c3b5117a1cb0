// Package steps supplies the ordered transforms an outline is swept
// through. A step maps every vertex of the previous cross-section to the
// next one.
package steps

import (
	"slices"

	"github.com/chazu/svgextrude/pkg/geom"
)

// Path produces an ordered sequence of step transforms.
type Path interface {
	Steps() ([]geom.Transform, error)
}

// List is an explicit step sequence.
type List []geom.Transform

// Steps returns a copy of the list.
func (l List) Steps() ([]geom.Transform, error) {
	return slices.Clone([]geom.Transform(l)), nil
}

// Repeat returns a list holding t n times. Sweeping a translation with
// Repeat gives evenly spaced cross-sections.
func Repeat(t geom.Transform, n int) List {
	if n <= 0 {
		return nil
	}
	l := make(List, n)
	for i := range l {
		l[i] = t
	}
	return l
}

// Func adapts a function to the Path interface.
type Func func() ([]geom.Transform, error)

// Steps calls f.
func (f Func) Steps() ([]geom.Transform, error) { return f() }
