// Package button wraps an asynchronous action in a bubbletea component that
// tracks its lifecycle as Idle -> Loading -> Success|Error -> Idle.
//
// All state changes happen on the bubbletea Update loop. The action itself
// runs in a command goroutine and reports back through a message; revert
// timers are tick commands validated by a timer.Controller. While the state
// is not Idle, Handle returns nil, so a second press cannot start while one
// is in flight.
package button

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"

	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/timer"
	"github.com/llehouerou/pressable/internal/ui/action"
)

var nextID atomic.Uint64

// Model is an action button.
type Model struct {
	id       uint64
	name     string
	action   Action
	opts     Options
	state    buttonstate.State
	external *buttonstate.State
	revert   *timer.Controller
	channel  *Channel
	press    uint64 // sequence of the latest press
	focused  bool
	disposed bool
	log      *slog.Logger
	now      func() time.Time
}

// Compile-time check that Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// New creates a button named name wrapping act. A nil act leaves the button
// permanently non-interactive.
func New(name string, act Action, opts Options) *Model {
	opts = opts.normalized()
	m := &Model{
		id:      nextID.Inc(),
		name:    name,
		action:  act,
		opts:    opts,
		revert:  timer.New(timer.WithTick(opts.Tick)),
		channel: NewChannel(opts.Logger),
		log:     opts.Logger.With("button", name),
		now:     time.Now,
	}
	if opts.Initial != nil {
		initial := *opts.Initial
		m.state = initial
		m.external = &initial
	}
	return m
}

// Name returns the button's name.
func (m *Model) Name() string { return m.name }

// State returns the current state.
func (m *Model) State() buttonstate.State { return m.state }

// External returns the last externally supplied state, if any.
func (m *Model) External() (buttonstate.State, bool) {
	if m.external == nil {
		return buttonstate.State{}, false
	}
	return *m.external, true
}

// Subscribe registers an observer for transition events.
func (m *Model) Subscribe(o Observer) (unsubscribe func()) {
	return m.channel.Subscribe(o)
}

// RevertPending reports whether an auto-revert to Idle is scheduled.
func (m *Model) RevertPending() bool { return m.revert.Active() }

// RevertDelay returns the delay of the scheduled revert, zero when none.
func (m *Model) RevertDelay() time.Duration { return m.revert.Delay() }

// SetDisabled enables or disables interaction.
func (m *Model) SetDisabled(disabled bool) { m.opts.Disabled = disabled }

// Disabled reports whether the host disabled interaction.
func (m *Model) Disabled() bool { return m.opts.Disabled }

// SetFocused sets whether key presses reach the button.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// IsFocused returns whether the button is focused.
func (m *Model) IsFocused() bool { return m.focused }

// Disposed reports whether Dispose was called.
func (m *Model) Disposed() bool { return m.disposed }

func (m *Model) canPress() bool {
	return !m.disposed && !m.opts.Disabled && m.action != nil && m.state.Is(buttonstate.Idle)
}

// Handle returns the press function, or nil when the button cannot be
// pressed: disabled, disposed, without action, or not Idle.
func (m *Model) Handle() func() tea.Cmd {
	if !m.canPress() {
		return nil
	}
	return m.Press
}

// Press starts the action. It does nothing unless the button is pressable.
func (m *Model) Press() tea.Cmd {
	if !m.canPress() {
		m.log.Debug("press ignored",
			"state", m.state.String(),
			"disabled", m.opts.Disabled,
			"disposed", m.disposed)
		return nil
	}

	m.revert.Cancel()
	m.press++
	emit := m.transition(buttonstate.NewLoading(), OriginPress)
	return tea.Batch(emit, runCmd(m.opts.Context, m.action, m.id, m.press))
}

// SetState applies an externally-driven state. It is adopted only when it
// differs from the current state; any scheduled revert is cancelled and no
// new one is scheduled.
func (m *Model) SetState(s buttonstate.State) tea.Cmd {
	if m.disposed {
		m.log.Debug("override after dispose dropped", "state", s.String())
		return nil
	}
	m.external = &s
	if s.Equal(m.state) {
		return nil
	}
	m.revert.Cancel()
	return m.transition(s, OriginOverride)
}

// Dispose cancels any scheduled revert and makes the button inert.
// Results and timers arriving afterwards are discarded.
func (m *Model) Dispose() {
	if m.disposed {
		return
	}
	m.revert.Cancel()
	m.disposed = true
	m.log.Debug("disposed", "state", m.state.String())
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.disposed {
		return m, nil
	}

	switch msg := msg.(type) {
	case resultMsg:
		if msg.button != m.id {
			return m, nil
		}
		return m, m.handleResult(msg)
	case timer.FireMsg:
		cmd, _ := m.revert.Handle(msg)
		return m, cmd
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "enter", " ":
			if press := m.Handle(); press != nil {
				return m, press()
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.opts.Renderer.Render(m.name, m.state)
}

func (m *Model) handleResult(msg resultMsg) tea.Cmd {
	if msg.press != m.press {
		m.log.Debug("stale result dropped", "press", msg.press, "latest", m.press)
		return nil
	}
	if msg.err != nil {
		return m.fail(msg.err, msg.trace)
	}
	return m.succeed()
}

func (m *Model) succeed() tea.Cmd {
	if !m.opts.ShowSuccess {
		return m.transition(buttonstate.NewIdle(), OriginResult)
	}

	emit := m.transition(buttonstate.NewSuccess(), OriginResult)
	revert := m.revert.Schedule(m.opts.SuccessDuration, func() tea.Cmd {
		if m.opts.OnSuccess != nil {
			m.opts.OnSuccess()
		}
		return m.transition(buttonstate.NewIdle(), OriginRevert)
	})
	return tea.Batch(emit, revert)
}

func (m *Model) fail(err error, trace string) tea.Cmd {
	m.log.Debug("action failed", "error", err)
	if !m.opts.ShowError {
		return m.transition(buttonstate.NewIdle(), OriginResult)
	}

	emit := m.transition(buttonstate.NewError(err, trace), OriginResult)
	revert := m.revert.Schedule(m.opts.ErrorDuration, func() tea.Cmd {
		if m.opts.OnError != nil {
			m.opts.OnError(err)
		}
		return m.transition(buttonstate.NewIdle(), OriginRevert)
	})
	return tea.Batch(emit, revert)
}

// transition applies s and emits it. Nothing is applied once disposed.
func (m *Model) transition(s buttonstate.State, origin Origin) tea.Cmd {
	if m.disposed {
		m.log.Debug("transition after dispose dropped", "state", s.String())
		return nil
	}
	m.log.Debug("transition",
		"from", m.state.String(),
		"to", s.String(),
		"origin", origin.String())
	m.state = s
	return m.emit(TransitionEvent{
		Button: m.name,
		State:  s,
		Origin: origin,
		At:     m.now(),
	})
}

func (m *Model) emit(ev TransitionEvent) tea.Cmd {
	if !m.opts.Notifications {
		return nil
	}
	m.channel.Emit(ev)
	return action.Cmd(Source, ev)
}
