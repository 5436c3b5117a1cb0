package engine

import (
	"fmt"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/steps"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites step script source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     Keywords then never collide with user-defined variables.
//
//  2. Kebab-case to underscore: step-height -> step_height.
//     zygomys reads a hyphen as the subtraction operator.
//
//  3. ; line comments become // comments, which is what zygomys accepts.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '"' || c == '`':
			j := skipString(b, i)
			out = append(out, b[i:j]...)
			i = j
		case c == ';':
			// ;; and ; both become //.
			for i < len(b) && b[i] == ';' {
				i++
			}
			j := i
			for j < len(b) && b[j] != '\n' {
				j++
			}
			out = append(out, '/', '/')
			out = append(out, b[i:j]...)
			i = j
		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2
		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// A hyphen between identifier characters is part of a name,
			// not a minus operator.
			out = append(out, '_')
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// skipString returns the index just past the string literal starting at
// b[i]. Double-quoted strings honor backslash escapes; backtick strings
// are raw. An unterminated literal runs to the end of the input.
func skipString(b []byte, i int) int {
	quote := b[i]
	j := i + 1
	for j < len(b) && b[j] != quote {
		if quote == '"' && b[j] == '\\' && j+1 < len(b) {
			j++
		}
		j++
	}
	if j < len(b) {
		j++
	}
	return j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMatrix wraps a steps.Matrix so transforms can be bound to variables
// and passed between builtins.
type sexpMatrix struct {
	m steps.Matrix
}

func (s *sexpMatrix) SexpString(ps *zygo.PrintState) string {
	o := s.m.TransformPoint(geom.Point3D{})
	return fmt.Sprintf("(transform :origin (%g %g %g))", o.X, o.Y, o.Z)
}
func (s *sexpMatrix) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	return strings.CutPrefix(str.S, kwPrefix)
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A keyword at the end with no value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toFloats converts every element of args to a float64.
func toFloats(fn string, args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// toMatrix extracts a steps.Matrix from a sexpMatrix.
func toMatrix(s zygo.Sexp) (steps.Matrix, error) {
	if m, ok := s.(*sexpMatrix); ok {
		return m.m, nil
	}
	return steps.Matrix{}, fmt.Errorf("expected transform, got %T (%s)", s, s.SexpString(nil))
}

// toMatrices converts positional args to matrices, flattening lists so a
// script can pass a (list ...) of transforms.
func toMatrices(fn string, args []zygo.Sexp) ([]steps.Matrix, error) {
	var out []steps.Matrix
	for i, a := range args {
		if items, err := sexpListToSlice(a); err == nil {
			nested, err := toMatrices(fn, items)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		m, err := toMatrix(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Step recording
// ---------------------------------------------------------------------------

// recorder collects the steps a script appends, in call order.
type recorder struct {
	mu    sync.Mutex
	steps steps.List
}

func (r *recorder) add(m steps.Matrix, times int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < times; i++ {
		r.steps = append(r.steps, m)
	}
}

func (r *recorder) list() steps.List {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(steps.List, len(r.steps))
	copy(out, r.steps)
	return out
}

// maxRepeat bounds :times so a typo cannot allocate an enormous mesh.
const maxRepeat = 100000

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the step DSL into a zygomys environment.
// Steps recorded by (step ...) are appended to rec.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, rec *recorder) {

	// -----------------------------------------------------------------------
	// (translate x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("translate requires exactly 3 arguments, got %d", len(args))
		}
		v, err := toFloats("translate", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpMatrix{m: steps.Translate(v[0], v[1], v[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (rotate :x 10 :y 20 :z 30) or (rotate 10 20 30), degrees
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 3 {
			return zygo.SexpNull, fmt.Errorf("rotate takes at most 3 angles, got %d", len(pa.positional))
		}
		var angles [3]float64
		pos, err := toFloats("rotate", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		copy(angles[:], pos)

		for axis, key := range []string{"x", "y", "z"} {
			v, ok := pa.kw[key]
			if !ok {
				continue
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate: %s: %w", key, err)
			}
			angles[axis] = f
		}
		for k := range pa.kw {
			if k != "x" && k != "y" && k != "z" {
				return zygo.SexpNull, fmt.Errorf("rotate: unknown axis %q, expected x, y, or z", k)
			}
		}

		return &sexpMatrix{m: steps.Rotate(angles[0], angles[1], angles[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (scale s) or (scale x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats("scale", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		switch len(v) {
		case 1:
			return &sexpMatrix{m: steps.Scale(v[0], v[0], v[0])}, nil
		case 3:
			return &sexpMatrix{m: steps.Scale(v[0], v[1], v[2])}, nil
		}
		return zygo.SexpNull, fmt.Errorf("scale requires 1 or 3 arguments, got %d", len(v))
	})

	// -----------------------------------------------------------------------
	// (compose t1 t2 ...) applies t1 first
	// -----------------------------------------------------------------------
	env.AddFunction("compose", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ms, err := toMatrices("compose", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpMatrix{m: steps.Compose(ms...)}, nil
	})

	// -----------------------------------------------------------------------
	// (step t1 t2 ... :times n)
	// -----------------------------------------------------------------------
	env.AddFunction("step", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("step requires at least one transform")
		}
		ms, err := toMatrices("step", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}

		times := 1
		if v, ok := pa.kw["times"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("step: times: %w", err)
			}
			if f < 0 || f > maxRepeat || f != float64(int(f)) {
				return zygo.SexpNull, fmt.Errorf("step: times must be a whole number in [0, %d], got %g", maxRepeat, f)
			}
			times = int(f)
		}

		m := steps.Compose(ms...)
		rec.add(m, times)
		return &sexpMatrix{m: m}, nil
	})
}
