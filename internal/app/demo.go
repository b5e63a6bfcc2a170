package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime/debug"
	"time"

	"github.com/llehouerou/pressable/internal/button"
	"github.com/llehouerou/pressable/internal/config"
)

// ErrSimulated is wrapped by every failure a demo action produces.
var ErrSimulated = errors.New("simulated failure")

// demoError carries the stack captured where the demo action failed.
type demoError struct {
	err   error
	trace string
}

func (e *demoError) Error() string { return e.err.Error() }
func (e *demoError) Unwrap() error { return e.err }
func (e *demoError) Trace() string { return e.trace }

var _ button.Tracer = (*demoError)(nil)

// DemoAction returns an action that waits for the configured latency and
// then applies the configured behavior. roll returns values in [0, 1) and
// decides flaky outcomes; nil uses math/rand.
func DemoAction(spec config.ButtonSpec, roll func() float64) button.Action {
	if roll == nil {
		roll = rand.Float64
	}
	latency := time.Duration(spec.LatencyMS) * time.Millisecond

	return func(ctx context.Context) error {
		if latency > 0 {
			t := time.NewTimer(latency)
			defer t.Stop()
			select {
			case <-t.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		switch spec.Behavior {
		case config.BehaviorFail:
			return fail(spec.Name)
		case config.BehaviorFlaky:
			if roll() < spec.FailRate {
				return fail(spec.Name)
			}
		case config.BehaviorPanic:
			panic(fmt.Sprintf("%s: index corrupted", spec.Name))
		}
		return nil
	}
}

func fail(name string) error {
	return &demoError{
		err:   fmt.Errorf("%s: %w", name, ErrSimulated),
		trace: string(debug.Stack()),
	}
}
