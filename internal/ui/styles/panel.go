package styles

import "github.com/charmbracelet/lipgloss"

// ButtonStyle returns the bordered frame drawn around a button cell.
func ButtonStyle(focused bool) lipgloss.Style {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// DisabledButtonStyle is used for buttons the host disabled or disposed.
func DisabledButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(T().FgSubtle).
		Foreground(T().FgSubtle).
		Padding(0, 1)
}
