package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/ui/render"
	"github.com/llehouerou/pressable/internal/ui/styles"
)

const (
	appTitle     = "pressable"
	defaultWidth = 60
)

// View renders the application UI.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	st := styles.T().S()

	sections := []string{m.renderHeader(width), ""}

	for i, e := range m.entries {
		sections = append(sections, m.renderButton(i, e))
	}

	sections = append(sections, "", m.renderCounts(width))
	if line := m.renderLast(width); line != "" {
		sections = append(sections, line)
	}
	if m.status.Message != "" {
		style := st.Muted
		if m.status.IsError {
			style = st.Error
		}
		sections = append(sections, style.Render(render.Truncate(m.status.Message, width)))
	}

	sections = append(sections, "", m.renderHelp(width))
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader(width int) string {
	title := styles.BoldGradient(appTitle, styles.T().Primary, styles.T().Secondary)
	right := styles.T().S().Subtle.Render(fmt.Sprintf("%d buttons", len(m.entries)))
	return render.Row(title, right, width)
}

func (m Model) renderButton(i int, e entry) string {
	b := e.button
	switch {
	case b.Disposed():
		return styles.DisabledButtonStyle().Render(e.spec.Label + " (disposed)")
	case b.Disabled():
		return styles.DisabledButtonStyle().Render(b.View() + " (disabled)")
	}

	cell := styles.ButtonStyle(i == m.focus).Render(b.View())
	if _, external := b.External(); external {
		cell = lipgloss.JoinHorizontal(lipgloss.Center, cell, styles.T().S().Warning.Render(" host"))
	}
	return cell
}

func (m Model) renderCounts(width int) string {
	st := styles.T().S()
	kindStyles := map[buttonstate.Kind]lipgloss.Style{
		buttonstate.Idle:    st.Idle,
		buttonstate.Loading: st.Loading,
		buttonstate.Success: st.Success,
		buttonstate.Error:   st.Error,
	}

	parts := make([]string, 0, len(buttonstate.Kinds))
	for _, k := range buttonstate.Kinds {
		parts = append(parts, kindStyles[k].Render(k.String())+" "+humanize.Comma(int64(m.counts[k])))
	}
	left := strings.Join(parts, st.Subtle.Render(" · "))

	var right string
	if m.lifetime != nil {
		var total int
		for _, n := range m.lifetime {
			total += n
		}
		right = st.Subtle.Render("history " + humanize.Comma(int64(total)))
	}
	return render.Row(left, right, width)
}

func (m Model) renderLast(width int) string {
	if m.last == nil {
		return ""
	}
	st := styles.T().S()
	left := st.Muted.Render(fmt.Sprintf("%s → %s (%s)", m.labelFor(m.last.Button), m.last.State.Kind(), m.last.Origin))
	right := st.Subtle.Render(humanize.RelTime(m.last.At, m.now(), "ago", "from now"))
	return render.Row(left, right, width)
}

func (m Model) renderHelp(width int) string {
	st := styles.T().S()
	if !m.showHelp {
		return st.Subtle.Render("? help · enter press · tab next · q quit")
	}

	var lines []string
	for _, context := range m.keys.Contexts() {
		lines = append(lines, st.Title.Render(strings.ToUpper(context[:1])+context[1:]))
		for _, h := range m.keys.Help(context) {
			lines = append(lines, render.Row("  "+st.Base.Render(h.Description), st.Muted.Render(h.Keys), width))
		}
	}
	return strings.Join(lines, "\n")
}
