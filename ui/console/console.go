// Package console prints the visible part of a menu as plain text, for
// scripts and terminals without a TUI.
package console

import (
	"fmt"
	"io"
	"strings"

	"simsiac/internal/engine"
	"simsiac/internal/menu"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Print renders the visible window of m. Every item takes exactly as many
// lines as its height, so the body is RowsUsed lines long.
func Print(w io.Writer, m *menu.Menu) {
	width, height := m.Size()
	above, below := m.Pending()

	fmt.Fprintf(w, "%s■ MENU%s (%s, %dx%d)\n", colorCyan, colorReset, m.ScrollMode(), width, height)
	if above > 0 {
		fmt.Fprintf(w, "%s  ↑ %d more%s\n", colorCyan, above, colorReset)
	}
	for _, it := range m.VisibleItems() {
		for _, line := range box(it, width) {
			fmt.Fprintln(w, line)
		}
	}
	if below > 0 {
		fmt.Fprintf(w, "%s  ↓ %d more%s\n", colorCyan, below, colorReset)
	}
	fmt.Fprintf(w, "%s─ Summary%s: %d/%d rows, %d items\n", colorCyan, colorReset, m.RowsUsed(), height, m.Len())
}

// box draws it as a frame of it.Height() lines, at most width runes wide.
func box(it menu.Item, width int) []string {
	label := it.Label()
	if it.Shortcut() != "" {
		label = "[" + it.Shortcut() + "] " + label
	}
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	if r := []rune(label); len(r) > inner {
		label = string(r[:inner])
	}

	h := it.Height()
	if h == 1 {
		return []string{"[ " + label + " ]"}
	}
	lines := make([]string, 0, h)
	lines = append(lines, "┌ "+label)
	for i := 1; i < h-1; i++ {
		lines = append(lines, "│")
	}
	lines = append(lines, "└"+strings.Repeat("─", min(inner, 20)))
	return lines
}

// PrintChecks renders graded probe readings, one per line.
func PrintChecks(w io.Writer, checks []engine.CheckResult) {
	for _, c := range checks {
		color := colorFor(c.Status)
		dots := strings.Repeat("·", max(1, 12-len(c.Name)))
		fmt.Fprintf(w, "  %s%s%s%s %8.1f %s%s%s\n", c.Name, colorCyan, dots, colorReset, c.Value, color, marker(c.Status), colorReset)
	}
}

func marker(status string) string {
	switch status {
	case engine.StatusWarning:
		return "!"
	case engine.StatusCritical:
		return "X"
	case engine.StatusUnknown:
		return "?"
	default:
		return "✓"
	}
}

func colorFor(status string) string {
	switch status {
	case engine.StatusWarning:
		return colorYellow
	case engine.StatusCritical:
		return colorRed
	default:
		return colorGreen
	}
}
