// Package timer provides a single-slot, cancellable delayed callback that
// fires inside a bubbletea Update loop.
//
// A Controller never runs a callback on its own goroutine. Schedule returns a
// tick command; the resulting FireMsg must be handed back through Handle from
// the owner's Update, where it is checked against the active schedule. A
// cancelled or superseded schedule therefore can never fire.
package timer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"
)

// TickFunc has the shape of tea.Tick.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// FireMsg is produced when a scheduled delay elapses.
type FireMsg struct {
	Owner uint64
	Seq   uint64
}

var nextOwner atomic.Uint64

// Controller holds at most one pending callback.
type Controller struct {
	owner  uint64
	seq    uint64
	active bool
	delay  time.Duration
	onFire func() tea.Cmd
	tick   TickFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithTick replaces tea.Tick, mainly so tests can control time.
func WithTick(tick TickFunc) Option {
	return func(c *Controller) {
		if tick != nil {
			c.tick = tick
		}
	}
}

// New creates an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		owner: nextOwner.Inc(),
		tick:  tea.Tick,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedule cancels any pending callback and arranges for onFire to run once
// after delay. The returned command must be run by the bubbletea program.
func (c *Controller) Schedule(delay time.Duration, onFire func() tea.Cmd) tea.Cmd {
	c.Cancel()
	c.seq++
	c.active = true
	c.delay = delay
	c.onFire = onFire

	owner, seq := c.owner, c.seq
	return c.tick(delay, func(time.Time) tea.Msg {
		return FireMsg{Owner: owner, Seq: seq}
	})
}

// Cancel drops the pending callback, if any. Safe to call repeatedly.
func (c *Controller) Cancel() {
	c.active = false
	c.delay = 0
	c.onFire = nil
}

// Active reports whether a callback is pending.
func (c *Controller) Active() bool {
	return c.active
}

// Delay returns the delay of the pending callback, zero when none is pending.
func (c *Controller) Delay() time.Duration {
	return c.delay
}

// Owns reports whether msg is a FireMsg emitted by this controller.
func (c *Controller) Owns(msg tea.Msg) bool {
	fire, ok := msg.(FireMsg)
	return ok && fire.Owner == c.owner
}

// Handle consumes FireMsg values belonging to this controller. It returns
// handled=false for any other message. A stale fire (cancelled or replaced
// schedule) is consumed without running anything.
func (c *Controller) Handle(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	fire, ok := msg.(FireMsg)
	if !ok || fire.Owner != c.owner {
		return nil, false
	}
	if !c.active || fire.Seq != c.seq {
		return nil, true
	}

	onFire := c.onFire
	c.active = false
	c.delay = 0
	c.onFire = nil
	if onFire == nil {
		return nil, true
	}
	return onFire(), true
}
