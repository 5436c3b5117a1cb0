package outline

import (
	"fmt"
	"strings"

	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/logging"
)

// DefaultCurveSegments is the number of points emitted per curve command.
const DefaultCurveSegments = 8

// CommandPolicy decides what happens to the S, Q and T commands.
type CommandPolicy int

const (
	// PolicyFlatten interprets S, Q and T with the SVG reflection rules and
	// flattens them like C.
	PolicyFlatten CommandPolicy = iota
	// PolicyLine treats S, Q and T as line-tos over their coordinate pairs
	// and records a warning.
	PolicyLine
	// PolicyReject fails with UnsupportedCommandError.
	PolicyReject
)

func (p CommandPolicy) String() string {
	switch p {
	case PolicyFlatten:
		return "flatten"
	case PolicyLine:
		return "line"
	case PolicyReject:
		return "reject"
	default:
		return fmt.Sprintf("CommandPolicy(%d)", int(p))
	}
}

// ParseCommandPolicy converts a policy name to a CommandPolicy.
func ParseCommandPolicy(s string) (CommandPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flatten":
		return PolicyFlatten, nil
	case "line":
		return PolicyLine, nil
	case "reject":
		return PolicyReject, nil
	}
	return 0, fmt.Errorf("unknown command policy %q, expected flatten, line or reject", s)
}

type drawMode int

const (
	modeMoveTo drawMode = iota // (x y)+, pairs after the first are line-tos
	modeLineTo                 // (x y)+
	modeHorizontalTo           // x+
	modeVerticalTo             // y+
	modeCurveTo                // (x1 y1 x2 y2 x y)+
	modeSmoothCurveTo          // (x2 y2 x y)+
	modeQuadTo                 // (x1 y1 x y)+
	modeSmoothQuadTo           // (x y)+
	modeClose
)

// commandMode maps an upper-case command letter to its mode.
func commandMode(c byte) (drawMode, bool) {
	switch c {
	case 'M':
		return modeMoveTo, true
	case 'L':
		return modeLineTo, true
	case 'H':
		return modeHorizontalTo, true
	case 'V':
		return modeVerticalTo, true
	case 'C':
		return modeCurveTo, true
	case 'S':
		return modeSmoothCurveTo, true
	case 'Q':
		return modeQuadTo, true
	case 'T':
		return modeSmoothQuadTo, true
	case 'Z':
		return modeClose, true
	}
	return modeLineTo, false
}

// Interpreter walks SVG path data and produces the outline points in order.
// The zero value uses the default segment count, PolicyFlatten, and accepts
// paths without a closing Z.
type Interpreter struct {
	CurveSegments int
	Policy        CommandPolicy
	RequireClose  bool
}

// Parsed is the result of interpreting path data.
type Parsed struct {
	Points   []geom.Point2D
	Warnings []Warning
	Closed   bool // a Z command was reached
}

// Interpret runs the path state machine over d. Empty path data yields an
// empty result and no error.
func (ip Interpreter) Interpret(d string) (*Parsed, error) {
	toks, err := Tokenize(d)
	if err != nil {
		return nil, err
	}
	res := &Parsed{}
	if len(toks) == 0 {
		return res, nil
	}

	w := &walker{
		toks:     toks,
		segments: ip.CurveSegments,
		res:      res,
	}
	if w.segments <= 0 {
		w.segments = DefaultCurveSegments
	}
	if err := w.run(ip.Policy); err != nil {
		return nil, err
	}

	if !res.Closed && ip.RequireClose {
		return nil, &MalformedPathError{Pos: -1, Reason: "unterminated path: missing Z"}
	}
	if res.Closed && w.pos < len(toks) {
		t := toks[w.pos]
		w.warn(t.Pos, t.Text, fmt.Sprintf("%d tokens after Z ignored", len(toks)-w.pos))
	}

	logging.WithComponent("outline").Debug("path interpreted",
		"tokens", len(toks), "points", len(res.Points), "closed", res.Closed, "warnings", len(res.Warnings))
	return res, nil
}

// walker holds the interpreter state for one pass over the tokens.
type walker struct {
	toks     []Token
	pos      int
	segments int
	res      *Parsed

	last     geom.Point2D // current point
	relative bool
	// Control point of the previous curve segment and the mode that set it,
	// used to reflect the first control point of S and T.
	lastCtrl geom.Point2D
	prevMode drawMode
}

func (w *walker) run(policy CommandPolicy) error {
	mode := modeMoveTo
	for w.pos < len(w.toks) {
		tok := w.toks[w.pos]
		if tok.Kind == TokenCommand {
			w.pos++
			letter := tok.Text[0]
			w.relative = letter >= 'a' && letter <= 'z'
			upper := strings.ToUpper(tok.Text)
			m, known := commandMode(upper[0])
			if !known {
				if policy == PolicyReject {
					return &UnsupportedCommandError{Command: tok.Text, Pos: tok.Pos}
				}
				w.warn(tok.Pos, tok.Text, "unrecognized command, treated as line-to")
			}
			if m == modeSmoothCurveTo || m == modeQuadTo || m == modeSmoothQuadTo {
				switch policy {
				case PolicyReject:
					return &UnsupportedCommandError{Command: tok.Text, Pos: tok.Pos}
				case PolicyLine:
					w.warn(tok.Pos, tok.Text, "curve command treated as line-to")
					m = modeLineTo
				}
			}
			mode = m
			if mode == modeClose {
				w.res.Closed = true
				return nil
			}
		}

		next, err := w.step(mode)
		if err != nil {
			return err
		}
		w.prevMode = mode
		mode = next
	}
	return nil
}

// step consumes one operand group for mode and returns the mode that
// applies to the following group.
func (w *walker) step(mode drawMode) (drawMode, error) {
	switch mode {
	case modeMoveTo, modeLineTo:
		p, err := w.pair()
		if err != nil {
			return mode, err
		}
		w.emit(p)
		w.last = p
		if mode == modeMoveTo {
			return modeLineTo, nil
		}

	case modeHorizontalTo:
		x, err := w.number()
		if err != nil {
			return mode, err
		}
		if w.relative {
			x += w.last.X
		}
		w.last.X = x
		w.emit(w.last)

	case modeVerticalTo:
		y, err := w.number()
		if err != nil {
			return mode, err
		}
		if w.relative {
			y += w.last.Y
		}
		w.last.Y = y
		w.emit(w.last)

	case modeCurveTo:
		pts, err := w.pairs(3)
		if err != nil {
			return mode, err
		}
		w.cubic(pts[0], pts[1], pts[2])

	case modeSmoothCurveTo:
		pts, err := w.pairs(2)
		if err != nil {
			return mode, err
		}
		c1 := w.last
		if w.prevMode == modeCurveTo || w.prevMode == modeSmoothCurveTo {
			c1 = reflect(w.lastCtrl, w.last)
		}
		w.cubic(c1, pts[0], pts[1])

	case modeQuadTo:
		pts, err := w.pairs(2)
		if err != nil {
			return mode, err
		}
		w.quad(pts[0], pts[1])

	case modeSmoothQuadTo:
		p, err := w.pair()
		if err != nil {
			return mode, err
		}
		c := w.last
		if w.prevMode == modeQuadTo || w.prevMode == modeSmoothQuadTo {
			c = reflect(w.lastCtrl, w.last)
		}
		w.quad(c, p)
	}
	return mode, nil
}

func (w *walker) cubic(c1, c2, dst geom.Point2D) {
	for _, p := range cubicPoints(w.last, c1, c2, dst, w.segments) {
		w.emit(p)
	}
	w.lastCtrl = c2
	w.last = dst
}

func (w *walker) quad(c, dst geom.Point2D) {
	for _, p := range quadPoints(w.last, c, dst, w.segments) {
		w.emit(p)
	}
	w.lastCtrl = c
	w.last = dst
}

func (w *walker) emit(p geom.Point2D) {
	w.res.Points = append(w.res.Points, p)
}

func (w *walker) warn(pos int, cmd, msg string) {
	wr := Warning{Pos: pos, Command: cmd, Message: msg}
	w.res.Warnings = append(w.res.Warnings, wr)
	logging.WithComponent("outline").Warn("path command fallback", "offset", pos, "command", cmd, "detail", msg)
}

// number dequeues one numeric operand.
func (w *walker) number() (float64, error) {
	if w.pos >= len(w.toks) {
		return 0, &MalformedPathError{Pos: -1, Reason: "ran out of operands"}
	}
	t := w.toks[w.pos]
	if t.Kind != TokenNumber {
		return 0, &MalformedPathError{Pos: t.Pos, Token: t.Text, Reason: "expected a number"}
	}
	w.pos++
	return t.Value, nil
}

// pair dequeues an (x, y) operand pair, made absolute against the current
// point when the active command is relative.
func (w *walker) pair() (geom.Point2D, error) {
	x, err := w.number()
	if err != nil {
		return geom.Point2D{}, err
	}
	y, err := w.number()
	if err != nil {
		return geom.Point2D{}, err
	}
	p := geom.Point2D{X: x, Y: y}
	if w.relative {
		p = p.Add(w.last)
	}
	return p, nil
}

// pairs dequeues n pairs. Relative pairs are all offset by the current
// point as it was before the group.
func (w *walker) pairs(n int) ([]geom.Point2D, error) {
	out := make([]geom.Point2D, n)
	for i := range out {
		p, err := w.pair()
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func reflect(ctrl, about geom.Point2D) geom.Point2D {
	return about.Mul(2).Sub(ctrl)
}
