// Package testutil drives bubbletea models synchronously in tests and
// inspects what they render.
package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared
// as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ContainsLine reports whether a single line of the plain output holds
// substr. Unlike strings.Contains it cannot match across a line break.
func ContainsLine(output, substr string) bool {
	for line := range strings.SplitSeq(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// AssertContains returns a failure message when the plain output lacks
// substr, and "" otherwise.
func AssertContains(output, substr string) string {
	if strings.Contains(StripANSI(output), substr) {
		return ""
	}
	return "expected output to contain " + substr
}

// AssertNotContains is the inverse of AssertContains.
func AssertNotContains(output, substr string) string {
	if !strings.Contains(StripANSI(output), substr) {
		return ""
	}
	return "expected output to NOT contain " + substr
}
