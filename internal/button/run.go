package button

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// resultMsg carries an action's outcome back into Update.
type resultMsg struct {
	button uint64
	press  uint64
	err    error
	trace  string
}

// PanicError wraps a value recovered from a panicking action.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("action panicked: %v", e.Value)
}

// runCmd runs act on the bubbletea command goroutine. It touches no button
// state; the outcome comes back as a resultMsg.
func runCmd(ctx context.Context, act Action, button, press uint64) tea.Cmd {
	return func() tea.Msg {
		trace, err := invoke(ctx, act)
		return resultMsg{button: button, press: press, err: err, trace: trace}
	}
}

func invoke(ctx context.Context, act Action) (trace string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
			trace = string(debug.Stack())
		}
	}()

	err = act(ctx)
	if err != nil {
		var tr Tracer
		if errors.As(err, &tr) {
			trace = tr.Trace()
		}
	}
	return trace, err
}
