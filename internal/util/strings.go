// Package util provides shared string helpers for terminal output.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TruncateMiddle shortens s to at most maxLen runes by replacing its middle
// with "...". Long numbers stay recognizable by their leading and trailing
// digits.
func TruncateMiddle(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	keep := maxLen - 3
	head := (keep + 1) / 2
	tail := keep - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}

// PadRight pads s with spaces to width visual columns, ignoring escape
// sequences. Strings already at least width wide are returned unchanged.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Strip removes ANSI escape sequences.
func Strip(s string) string {
	return ansi.Strip(s)
}
