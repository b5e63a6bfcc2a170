package indicator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/ui/testutil"
)

func TestRender_States(t *testing.T) {
	ind := Indicator{Label: "Sync library", Width: 20}
	wrapped := fmt.Errorf("sync: %w", errors.New("connection refused"))

	tests := []struct {
		name  string
		state buttonstate.State
		want  []string
	}{
		{"idle", buttonstate.NewIdle(), []string{IdleGlyph, "Sync library"}},
		{"loading", buttonstate.NewLoading(), []string{LoadingGlyph, "Sync library…"}},
		{"success", buttonstate.NewSuccess(), []string{SuccessGlyph, "Sync library"}},
		{"error shows cause", buttonstate.NewError(wrapped, ""), []string{ErrorGlyph, "connection refused"}},
		{"error without value", buttonstate.NewError(nil, ""), []string{ErrorGlyph, "failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ind.Render("sync", tt.state)
			for _, want := range tt.want {
				if msg := testutil.AssertContains(out, want); msg != "" {
					t.Error(msg)
				}
			}
		})
	}
}

func TestRender_FallsBackToName(t *testing.T) {
	out := Indicator{}.Render("upload", buttonstate.NewIdle())

	assert.Contains(t, testutil.StripANSI(out), "upload")
}

func TestRender_FixedWidth(t *testing.T) {
	ind := Indicator{Label: "A label that is much too long for the cell", Width: 10}

	idle := lipgloss.Width(ind.Render("x", buttonstate.NewIdle()))
	success := lipgloss.Width(ind.Render("x", buttonstate.NewSuccess()))
	failed := lipgloss.Width(ind.Render("x", buttonstate.NewError(errors.New("short"), "")))

	assert.Equal(t, 12, idle)
	assert.Equal(t, idle, success)
	assert.Equal(t, idle, failed)
}

func TestRender_MultilineErrorKeepsFirstLine(t *testing.T) {
	out := Indicator{Width: 30}.Render("x", buttonstate.NewError(errors.New("first\nsecond"), ""))

	assert.Contains(t, testutil.StripANSI(out), "first")
	assert.NotContains(t, testutil.StripANSI(out), "second")
}

func TestRender_UsesSpinnerFrame(t *testing.T) {
	spin := NewSpinner()
	out := Indicator{Spinner: &spin}.Render("x", buttonstate.NewLoading())

	assert.Contains(t, testutil.StripANSI(out), testutil.StripANSI(spin.View()))
	assert.NotContains(t, testutil.StripANSI(out), LoadingGlyph)
}
