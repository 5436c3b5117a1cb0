package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/chazu/svgextrude/pkg/steps"
)

// DefaultTimeout bounds one script evaluation when Engine.Timeout is zero.
const DefaultTimeout = 5 * time.Second

var (
	// ErrTimeout is wrapped by the error returned when a step script runs
	// past the engine's timeout.
	ErrTimeout = errors.New("step script timed out")
	// ErrSuperseded is returned to a caller whose script finished after a
	// newer Evaluate call on the same engine had started.
	ErrSuperseded = errors.New("step script superseded by a newer evaluation")
)

// outcome carries one evaluation back from its goroutine.
type outcome struct {
	steps  steps.List
	errors []EvalError
	err    error
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}

// current reports whether gen is still the newest evaluation.
func (e *Engine) current(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// await blocks until evaluation gen delivers its outcome on ch or the
// timeout fires. A script that overruns keeps its goroutine until the
// sandbox returns; ch must be buffered so that late send never blocks.
func (e *Engine) await(ch <-chan outcome, gen uint64) (steps.List, []EvalError, error) {
	limit := e.timeout()
	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case o := <-ch:
		if !e.current(gen) {
			return nil, nil, ErrSuperseded
		}
		return o.steps, o.errors, o.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, limit)
	}
}
