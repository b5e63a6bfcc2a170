package testutil

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// epoch is the wall time handed to tick callbacks at Clock offset zero.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Clock is a manual clock whose Tick method can stand in for tea.Tick.
// Ticks only fire when the clock is advanced past their deadline.
type Clock struct {
	now     time.Duration
	pending []pendingTick
	delays  []time.Duration
}

type pendingTick struct {
	at time.Duration
	fn func(time.Time) tea.Msg
}

// NewClock creates a clock at offset zero.
func NewClock() *Clock {
	return &Clock{}
}

// Tick has the signature of tea.Tick. The deadline starts counting when the
// returned command is executed, as with the real implementation.
func (c *Clock) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.delays = append(c.delays, d)
	return func() tea.Msg {
		c.pending = append(c.pending, pendingTick{at: c.now + d, fn: fn})
		sort.SliceStable(c.pending, func(i, j int) bool {
			return c.pending[i].at < c.pending[j].at
		})
		return nil
	}
}

// Now returns the elapsed time since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Delays returns every delay requested through Tick, in order.
func (c *Clock) Delays() []time.Duration {
	return c.delays
}

// Pending returns the number of ticks that have not fired yet.
func (c *Clock) Pending() int {
	return len(c.pending)
}

// next pops the earliest tick due at or before limit and moves the clock to
// its deadline.
func (c *Clock) next(limit time.Duration) (tea.Msg, bool) {
	if len(c.pending) == 0 || c.pending[0].at > limit {
		return nil, false
	}
	t := c.pending[0]
	c.pending = c.pending[1:]
	c.now = t.at
	return t.fn(epoch.Add(t.at)), true
}
