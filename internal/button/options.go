package button

import (
	"context"
	"log/slog"
	"time"

	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/timer"
)

// DefaultRevertDuration is used when a revert duration is not positive.
const DefaultRevertDuration = time.Second

// Action is the work a button wraps. The context belongs to the host; the
// button never cancels it.
type Action func(ctx context.Context) error

// Tracer may be implemented by action errors to supply the trace stored in
// the Error state.
type Tracer interface {
	Trace() string
}

// Renderer draws the visual for a state. It is the only rendering
// capability the button relies on.
type Renderer interface {
	Render(name string, s buttonstate.State) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(name string, s buttonstate.State) string

// Render implements Renderer.
func (f RendererFunc) Render(name string, s buttonstate.State) string { return f(name, s) }

// Options configures a button. Start from DefaultOptions.
type Options struct {
	SuccessDuration time.Duration
	ErrorDuration   time.Duration
	ShowSuccess     bool
	ShowError       bool
	Notifications   bool // emit TransitionEvents (observers and action.Msg)
	Disabled        bool

	// Initial, when set, is an externally-driven starting state.
	Initial *buttonstate.State

	// OnSuccess runs right before a Success state reverts to Idle.
	OnSuccess func()
	// OnError runs right before an Error state reverts to Idle.
	OnError func(err error)

	Renderer Renderer
	Logger   *slog.Logger
	Context  context.Context
	Tick     timer.TickFunc
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		SuccessDuration: DefaultRevertDuration,
		ErrorDuration:   DefaultRevertDuration,
		ShowSuccess:     true,
		ShowError:       true,
		Notifications:   true,
	}
}

func (o Options) normalized() Options {
	if o.SuccessDuration <= 0 {
		o.SuccessDuration = DefaultRevertDuration
	}
	if o.ErrorDuration <= 0 {
		o.ErrorDuration = DefaultRevertDuration
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Renderer == nil {
		o.Renderer = RendererFunc(func(name string, s buttonstate.State) string {
			return name + " [" + s.Kind().String() + "]"
		})
	}
	return o
}
