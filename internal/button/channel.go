package button

import (
	"log/slog"
	"time"

	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/ui/action"
)

// Source is the action.Msg source name used when events bubble up.
const Source = "button"

// Origin tells what caused a transition.
type Origin uint8

const (
	OriginPress    Origin = iota // Idle -> Loading
	OriginResult                 // Loading -> Success/Error/Idle
	OriginRevert                 // Success/Error -> Idle after the delay
	OriginOverride               // state supplied by the host
)

func (o Origin) String() string {
	switch o {
	case OriginPress:
		return "press"
	case OriginResult:
		return "result"
	case OriginRevert:
		return "revert"
	case OriginOverride:
		return "override"
	}
	return "unknown"
}

// TransitionEvent is emitted once per applied transition.
type TransitionEvent struct {
	Button string
	State  buttonstate.State
	Origin Origin
	At     time.Time
}

// ActionType implements action.Action.
func (TransitionEvent) ActionType() string { return "button.transition" }

var _ action.Action = TransitionEvent{}

// Observer receives transition events synchronously.
type Observer func(TransitionEvent)

// Channel fans transition events out to observers, in subscription order.
// Delivery is best effort: a panicking observer is logged and skipped.
type Channel struct {
	observers []*Observer
	logger    *slog.Logger
}

// NewChannel creates an empty channel. A nil logger uses slog.Default().
func NewChannel(logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{logger: logger}
}

// Subscribe registers o and returns a func that removes it.
func (c *Channel) Subscribe(o Observer) (unsubscribe func()) {
	if o == nil {
		return func() {}
	}
	ref := &o
	c.observers = append(c.observers, ref)
	return func() {
		for i, r := range c.observers {
			if r == ref {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribed observers.
func (c *Channel) Len() int {
	return len(c.observers)
}

// Emit delivers ev to every observer.
func (c *Channel) Emit(ev TransitionEvent) {
	for _, o := range c.observers {
		c.deliver(*o, ev)
	}
}

func (c *Channel) deliver(o Observer, ev TransitionEvent) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("observer panicked",
				"button", ev.Button,
				"state", ev.State.String(),
				"panic", r)
		}
	}()
	o(ev)
}
