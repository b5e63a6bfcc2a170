package testutil

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pressable/internal/ui/action"
)

// Harness drives a tea.Model the way a bubbletea program would, but
// synchronously: commands are executed in place and their messages fed back
// to the model. action.Msg values are recorded instead of delivered, since
// they are addressed to the model's parent; a root harness records and
// delivers them, as a program would.
type Harness struct {
	model   tea.Model
	clock   *Clock
	bubbled []action.Msg
	root    bool
}

// NewHarness wraps m and runs its Init command. clock may be nil when the
// model schedules no ticks.
func NewHarness(m tea.Model, clock *Clock) *Harness {
	if clock == nil {
		clock = NewClock()
	}
	h := &Harness{model: m, clock: clock}
	h.Run(m.Init())
	return h
}

// NewRootHarness wraps a top-level model. Unlike NewHarness, action.Msg
// values reach the model's Update after being recorded.
func NewRootHarness(m tea.Model, clock *Clock) *Harness {
	if clock == nil {
		clock = NewClock()
	}
	h := &Harness{model: m, clock: clock, root: true}
	h.Run(m.Init())
	return h
}

// Model returns the wrapped model for type assertion.
func (h *Harness) Model() tea.Model {
	return h.model
}

// Clock returns the harness clock.
func (h *Harness) Clock() *Clock {
	return h.clock
}

// Run executes cmd and everything it leads to until the model goes quiet.
func (h *Harness) Run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case action.Msg:
			h.bubbled = append(h.bubbled, msg)
			if h.root {
				queue = append(queue, h.update(msg))
			}
		default:
			queue = append(queue, h.update(msg))
		}
	}
}

func (h *Harness) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// Collect executes cmd without delivering anything, returning the messages
// it produced with batches flattened. Useful to hold back a result.
func (h *Harness) Collect(cmd tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// Send delivers msg to the model and runs the resulting command.
func (h *Harness) Send(msg tea.Msg) {
	h.Run(h.update(msg))
}

// SendKey simulates a key press by creating a tea.KeyMsg.
func (h *Harness) SendKey(key string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendEnter sends the enter key.
func (h *Harness) SendEnter() {
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

// SendSpace sends the space bar.
func (h *Harness) SendSpace() {
	h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

// Advance moves the clock forward by d, delivering due ticks in deadline
// order. Ticks scheduled while advancing fire too if they fall in range.
func (h *Harness) Advance(d time.Duration) {
	limit := h.clock.now + d
	for {
		msg, ok := h.clock.next(limit)
		if !ok {
			break
		}
		h.Send(msg)
	}
	h.clock.now = limit
}

// Bubbled returns the action messages emitted towards the parent.
func (h *Harness) Bubbled() []action.Msg {
	return h.bubbled
}

// ClearBubbled forgets recorded action messages.
func (h *Harness) ClearBubbled() {
	h.bubbled = nil
}

// View returns the model's rendered content.
func (h *Harness) View() string {
	return h.model.View()
}

// AssertViewContains returns an error message if view doesn't contain substr.
func (h *Harness) AssertViewContains(substr string) string {
	return AssertContains(h.View(), substr)
}

// AssertViewNotContains returns an error message if view contains substr.
func (h *Harness) AssertViewNotContains(substr string) string {
	return AssertNotContains(h.View(), substr)
}
