package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestBoldGradient_KeepsText(t *testing.T) {
	tests := []string{"pressable", "p", "héllo", "日本語", "👍🏽ok"}
	for _, text := range tests {
		got := BoldGradient(text, lipgloss.Color("#ff0000"), lipgloss.Color("#0000ff"))
		assert.Equal(t, text, ansi.Strip(got), "text %q", text)
	}
}

func TestBoldGradient_Empty(t *testing.T) {
	assert.Empty(t, BoldGradient("", lipgloss.Color("#ff0000"), lipgloss.Color("#0000ff")))
}

func TestToColorful(t *testing.T) {
	red := toColorful(lipgloss.Color("#ff0000"))
	assert.Equal(t, "#ff0000", red.Hex())

	gray := toColorful(lipgloss.Color("205"))
	assert.Equal(t, "#808080", gray.Hex())

	assert.Equal(t, gray, toColorful(lipgloss.Color("#zzzzzz")))
}
