package engine

import (
	"errors"
	"strings"

	"github.com/chazu/svgextrude/pkg/geom"
	"github.com/chazu/svgextrude/pkg/steps"
)

// ScriptError reports the user-code errors of a failed script.
type ScriptError struct {
	Errors []EvalError
}

func (e *ScriptError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ee := range e.Errors {
		msgs[i] = ee.Error()
	}
	return "step script: " + strings.Join(msgs, "; ")
}

// Script is a step path described by DSL source. It is evaluated each time
// Steps is called.
type Script struct {
	Source string
	// Engine is optional. Scripts sharing an engine supersede each other's
	// in-flight evaluations, so leave it nil for independent scripts.
	Engine *Engine
}

var _ steps.Path = Script{}

// Steps evaluates the script. User-code failures come back as *ScriptError.
func (s Script) Steps() ([]geom.Transform, error) {
	eng := s.Engine
	if eng == nil {
		eng = NewEngine()
	}
	ts, evalErrs, err := eng.Evaluate(s.Source)
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		return nil, &ScriptError{Errors: evalErrs}
	}
	return ts.Steps()
}

// IsScriptError reports whether err carries user-code errors.
func IsScriptError(err error) bool {
	var se *ScriptError
	return errors.As(err, &se)
}
