package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pressable/internal/button"
	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/errmsg"
	"github.com/llehouerou/pressable/internal/ui/action"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case action.Msg:
		cmd := m.handleAction(msg)
		return m, cmd

	case frameMsg:
		if !m.anyLoading() {
			m.spinning = false
			return m, nil
		}
		*m.spinner, _ = m.spinner.Update(m.spinner.Tick())
		return m, m.frameCmd()

	case StatusClearMsg:
		if msg.ID == m.status.ID {
			m.status = Status{}
		}
		return m, nil

	case LifetimeCountsMsg:
		if msg.Err != nil {
			m.log.Warn("load lifetime counts failed", "error", msg.Err)
			cmd := m.setStatus(errmsg.Format(errmsg.OpOpenHistory, msg.Err), true)
			return m, cmd
		}
		m.lifetime = msg.Counts
		return m, nil
	}

	// Action results and revert timers belong to one of the buttons; each
	// ignores what is not addressed to it.
	return m, m.forward(msg)
}

func (m Model) forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range m.entries {
		if _, cmd := e.button.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	if msg.Source != button.Source {
		return nil
	}
	ev, ok := msg.Action.(button.TransitionEvent)
	if !ok {
		return nil
	}

	m.counts[ev.State.Kind()]++
	m.last = &ev

	switch ev.State.Kind() {
	case buttonstate.Loading:
		if !m.spinning {
			m.spinning = true
			return m.frameCmd()
		}
	case buttonstate.Error:
		return m.setStatus(errmsg.FormatWith(errmsg.OpRunAction, m.labelFor(ev.Button), ev.State.Err()), true)
	case buttonstate.Idle, buttonstate.Success:
	}
	return nil
}

func (m Model) labelFor(name string) string {
	for _, e := range m.entries {
		if e.spec.Name == name {
			return e.spec.Label
		}
	}
	return name
}
