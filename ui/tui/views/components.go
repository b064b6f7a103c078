package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"simsiac/internal/engine"
	"simsiac/internal/menu"
	"simsiac/ui/tui/styles"
)

func ColorForStatus(status string) lipgloss.Style {
	sStyle := styles.StatusStyle
	switch status {
	case engine.StatusWarning:
		return sStyle.Foreground(lipgloss.Color("220")) // Gold
	case engine.StatusCritical:
		return sStyle.Foreground(lipgloss.Color("196")) // Red
	case engine.StatusUnknown:
		return sStyle.Foreground(lipgloss.Color("244"))
	}
	return sStyle.Foreground(lipgloss.Color("46")) // Green
}

// ItemBox renders it in exactly it.Height() rows and at most width columns.
// Tall items get a full rounded frame, two-row items drop the top edge and
// one-row items keep only the left edge.
func ItemBox(it menu.Item, width int) string {
	label := it.Label()
	if it.Shortcut() != "" {
		label = "[" + it.Shortcut() + "] " + label
	}
	label = truncate(label, max(1, width-4))

	h := it.Height()
	style := lipgloss.NewStyle().
		BorderForeground(styles.BaseColor).
		Foreground(lipgloss.Color("#AAA"))
	if it.HasAction() {
		style = style.BorderForeground(styles.BrandColor).Foreground(lipgloss.Color("#FFF"))
	}

	switch {
	case h == 1:
		style = style.Border(lipgloss.RoundedBorder(), false, false, false, true).
			PaddingLeft(1).
			Width(max(1, width-1))
	case h == 2:
		style = style.Border(lipgloss.RoundedBorder(), false, true, true, true).
			Padding(0, 1).
			Width(max(1, width-2))
	default:
		style = style.Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(max(1, width-2)).
			Height(h - 2)
	}
	return style.MaxHeight(h).Render(label)
}

// Scrollbar renders a one-column track of rows lines with the thumb at pos.
func Scrollbar(rows int, pos float64) string {
	if rows < 1 {
		return ""
	}
	at := int(math.Round(pos))
	at = min(max(at, 0), rows-1)

	lines := make([]string, rows)
	for i := range lines {
		if i == at {
			lines[i] = styles.ThumbStyle.Render("┃")
		} else {
			lines[i] = styles.TrackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// fit pads or cuts s to exactly rows lines.
func fit(s string, rows int) string {
	if rows <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(s)
}
