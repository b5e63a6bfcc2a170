package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/keymap"
)

// ErrForced is the error shown when the host forces a button into Error.
var ErrForced = errors.New("forced by host")

// handleKey resolves msg through the keymap and applies the action.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	act := m.keys.Resolve(msg.String())
	if act == "" {
		return nil
	}

	switch act {
	case keymap.ActionQuit:
		for _, e := range m.entries {
			e.button.Dispose()
		}
		return tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		return nil
	case keymap.ActionFocusNext:
		m.moveFocus(1)
		return nil
	case keymap.ActionFocusPrev:
		m.moveFocus(-1)
		return nil
	case keymap.ActionClearStatus:
		m.status = Status{}
		return nil
	case keymap.ActionPressAll:
		return m.pressAll()
	}

	return m.handleButtonKey(act)
}

// handleButtonKey applies act to the focused button.
func (m *Model) handleButtonKey(act keymap.Action) tea.Cmd {
	b := m.Focused()
	if b == nil {
		return nil
	}

	switch act {
	case keymap.ActionPress:
		if press := b.Handle(); press != nil {
			return press()
		}
		m.log.Debug("focused button not pressable", "button", b.Name(), "state", b.State().String())
	case keymap.ActionToggleDisabled:
		b.SetDisabled(!b.Disabled())
	case keymap.ActionForceIdle:
		return b.SetState(buttonstate.NewIdle())
	case keymap.ActionForceLoading:
		return b.SetState(buttonstate.NewLoading())
	case keymap.ActionForceError:
		return b.SetState(buttonstate.NewError(ErrForced, ""))
	case keymap.ActionDispose:
		b.Dispose()
	}
	return nil
}

func (m *Model) pressAll() tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range m.entries {
		if press := e.button.Handle(); press != nil {
			cmds = append(cmds, press())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) moveFocus(delta int) {
	n := len(m.entries)
	if n == 0 {
		return
	}
	m.entries[m.focus].button.SetFocused(false)
	m.focus = ((m.focus+delta)%n + n) % n
	m.entries[m.focus].button.SetFocused(true)
}
