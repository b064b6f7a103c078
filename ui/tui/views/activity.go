package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"simsiac/ui/tui/state"
)

// ActivityView shows the newest activity lines that fit in Rows.
type ActivityView struct {
	Rows int
}

func (v ActivityView) Render(s state.AppState, props ViewProps) string {
	if v.Rows <= 0 || len(s.Activity) == 0 {
		return ""
	}
	start := max(0, len(s.Activity)-v.Rows)
	width := max(1, props.PanelWidth-4)

	lines := make([]string, 0, len(s.Activity)-start)
	for _, l := range s.Activity[start:] {
		lines = append(lines, truncate(l, width))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#777")).Render(strings.Join(lines, "\n"))
}
