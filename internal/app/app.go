// Package app is the bubbletea program hosting the configured buttons.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pressable/internal/button"
	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/config"
	"github.com/llehouerou/pressable/internal/history"
	"github.com/llehouerou/pressable/internal/keymap"
	"github.com/llehouerou/pressable/internal/notify"
	"github.com/llehouerou/pressable/internal/timer"
	"github.com/llehouerou/pressable/internal/ui/indicator"
)

// Options wires the app to its collaborators. Only Config is required.
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	History  *history.Store  // nil disables recording
	Notifier notify.Notifier // nil disables desktop notifications

	// Context is handed to every action and cancelled by the caller on exit.
	Context context.Context

	// Actions replaces the demo action of the named buttons.
	Actions map[string]button.Action

	Tick timer.TickFunc
	Now  func() time.Time
}

// entry is one hosted button.
type entry struct {
	spec   config.ButtonSpec
	button *button.Model
}

// Model is the root bubbletea model.
type Model struct {
	entries []entry
	focus   int

	spinner  *spinner.Model
	spinning bool

	keys     *keymap.Resolver
	counts   map[buttonstate.Kind]int
	lifetime map[buttonstate.Kind]int
	last     *button.TransitionEvent
	status   Status
	showHelp bool
	width    int

	// statusSeq only grows, so a pending clear never matches a later status.
	statusSeq int64

	history *history.Store
	tick    timer.TickFunc
	now     func() time.Time
	log     *slog.Logger
}

// Compile-time check that Model implements tea.Model.
var _ tea.Model = Model{}

// New builds the app and its buttons from opts.Config.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Tick == nil {
		opts.Tick = tea.Tick
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	spin := indicator.NewSpinner()
	m := Model{
		spinner: &spin,
		keys:    keymap.NewResolver(keymap.Bindings),
		counts:  make(map[buttonstate.Kind]int),
		history: opts.History,
		tick:    opts.Tick,
		now:     opts.Now,
		log:     opts.Logger.With("component", "app"),
	}

	specs := cfg.GetButtons()
	labels := make(map[string]string, len(specs))
	for _, spec := range specs {
		labels[spec.Name] = spec.Label
	}

	var notifyObserver button.Observer
	if opts.Notifier != nil && cfg.Notifications.Desktop {
		notifyObserver = notify.Observer(opts.Notifier, notify.ObserverOptions{
			OnSuccess: cfg.Notifications.OnSuccess,
			Labels:    labels,
			Logger:    opts.Logger,
		})
	}

	logger := m.log
	for _, spec := range specs {
		act, ok := opts.Actions[spec.Name]
		if !ok {
			act = DemoAction(spec, nil)
		}

		bopts := cfg.ButtonOptions(spec)
		bopts.Renderer = indicator.Indicator{Label: spec.Label, Spinner: m.spinner}
		bopts.Logger = opts.Logger
		bopts.Context = opts.Context
		bopts.Tick = opts.Tick
		bopts.OnError = func(err error) {
			logger.Info("error acknowledged", "button", spec.Name, "error", err)
		}

		b := button.New(spec.Name, act, bopts)
		if opts.History != nil {
			b.Subscribe(opts.History.Observer(nil))
		}
		if notifyObserver != nil {
			b.Subscribe(notifyObserver)
		}
		m.entries = append(m.entries, entry{spec: spec, button: b})
	}

	if len(m.entries) > 0 {
		m.entries[0].button.SetFocused(true)
	}
	return m
}

// Init loads lifetime counts from the history database.
func (m Model) Init() tea.Cmd {
	if m.history == nil {
		return nil
	}
	store := m.history
	return func() tea.Msg {
		counts, err := store.Counts(context.Background(), "")
		return LifetimeCountsMsg{Counts: counts, Err: err}
	}
}

// Buttons returns the hosted buttons in display order.
func (m Model) Buttons() []*button.Model {
	out := make([]*button.Model, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.button
	}
	return out
}

// Focused returns the focused button, or nil when there are none.
func (m Model) Focused() *button.Model {
	if len(m.entries) == 0 {
		return nil
	}
	return m.entries[m.focus].button
}

// Counts returns how many transitions into each kind this session saw.
func (m Model) Counts() map[buttonstate.Kind]int {
	return m.counts
}

// Status returns the current status line.
func (m Model) Status() Status {
	return m.status
}

func (m Model) anyLoading() bool {
	for _, e := range m.entries {
		if !e.button.Disposed() && e.button.State().Is(buttonstate.Loading) {
			return true
		}
	}
	return false
}
