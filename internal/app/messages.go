package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pressable/internal/buttonstate"
)

// LifetimeCountsMsg carries per-kind totals read from the history database.
type LifetimeCountsMsg struct {
	Counts map[buttonstate.Kind]int
	Err    error
}

// frameMsg advances the shared spinner.
type frameMsg struct{}

// Status represents a temporary status line message.
type Status struct {
	ID      int64
	Message string
	IsError bool
}

// StatusClearMsg is sent to clear a specific status message after a delay.
type StatusClearMsg struct {
	ID int64
}

// StatusDuration is how long status messages are displayed.
const StatusDuration = 3 * time.Second

// setStatus replaces the status line and schedules its removal.
func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusSeq++
	id := m.statusSeq
	m.status = Status{ID: id, Message: message, IsError: isError}
	return m.tick(StatusDuration, func(time.Time) tea.Msg {
		return StatusClearMsg{ID: id}
	})
}

func (m *Model) frameCmd() tea.Cmd {
	return m.tick(m.spinner.Spinner.FPS, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}
