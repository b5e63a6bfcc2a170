// Package indicator draws a one-line visual for each button state.
package indicator

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/llehouerou/pressable/internal/button"
	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/errmsg"
	"github.com/llehouerou/pressable/internal/ui/render"
	"github.com/llehouerou/pressable/internal/ui/styles"
)

// Glyphs shown in front of the label.
const (
	IdleGlyph    = "▶"
	LoadingGlyph = "◦" // used when no spinner is attached
	SuccessGlyph = "✓"
	ErrorGlyph   = "✗"
)

// DefaultWidth is the label width when none is set.
const DefaultWidth = 24

// Indicator renders button states. The spinner, when set, is owned and
// ticked by the host; the indicator only reads its current frame.
type Indicator struct {
	Label   string // idle text; the button name when empty
	Width   int
	Spinner *spinner.Model
}

var _ button.Renderer = Indicator{}

// Render implements button.Renderer.
func (ind Indicator) Render(name string, s buttonstate.State) string {
	label := ind.Label
	if label == "" {
		label = name
	}
	width := ind.Width
	if width <= 0 {
		width = DefaultWidth
	}

	st := styles.T().S()
	switch s.Kind() {
	case buttonstate.Idle:
		return st.Idle.Render(IdleGlyph + " " + render.TruncateAndPad(label, width))
	case buttonstate.Loading:
		return ind.frame() + " " + st.Loading.Render(render.TruncateAndPad(label+"…", width))
	case buttonstate.Success:
		return st.Success.Render(SuccessGlyph + " " + render.TruncateAndPad(label, width))
	case buttonstate.Error:
		return st.Error.Render(ErrorGlyph + " " + render.TruncateAndPad(errorText(s), width))
	}
	return ""
}

func (ind Indicator) frame() string {
	if ind.Spinner == nil {
		return styles.T().S().Loading.Render(LoadingGlyph)
	}
	return ind.Spinner.View()
}

func errorText(s buttonstate.State) string {
	cause := errmsg.Cause(s.Err())
	if cause == nil {
		return "failed"
	}
	return render.FirstLine(cause.Error())
}

// NewSpinner returns the spinner the demo shares between its buttons.
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(styles.T().S().Loading),
	)
}
