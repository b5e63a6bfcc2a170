package testutil

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", StripANSI("plain"))
	assert.Equal(t, "✗ failed", StripANSI("\x1b[1;31m✗ failed\x1b[0m"))
	assert.Equal(t, "", StripANSI(""))

	styled := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5555")).Render("save")
	assert.Equal(t, "save", StripANSI(styled))
}

func TestContainsLine(t *testing.T) {
	out := "▶ save\n\x1b[32m✓ upload\x1b[0m"

	assert.True(t, ContainsLine(out, "✓ upload"))
	assert.False(t, ContainsLine(out, "save\n✓"), "matches never span lines")
}

func TestAssertContains(t *testing.T) {
	out := "\x1b[31merror\x1b[0m 1"

	assert.Empty(t, AssertContains(out, "error 1"))
	assert.Equal(t, "expected output to contain success", AssertContains(out, "success"))
}

func TestAssertNotContains(t *testing.T) {
	out := "idle 3"

	assert.Empty(t, AssertNotContains(out, "loading"))
	assert.NotEmpty(t, AssertNotContains(out, "idle"))
}
