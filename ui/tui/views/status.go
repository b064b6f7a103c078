package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"simsiac/ui/tui/state"
	"simsiac/ui/tui/styles"
)

// StatusView is the side panel with the last probe reading, its history and
// the activity log.
type StatusView struct{}

func (v StatusView) Render(s state.AppState, props ViewProps) string {
	inner := max(1, props.PanelWidth-4)

	var lines []string
	switch {
	case s.Err != nil:
		lines = append(lines, ColorForStatus("CRIT").Render("error: "+truncate(s.Err.Error(), inner-7)))
	case s.ActiveProbe == "":
		lines = append(lines, styles.CopyStyle.UnsetPaddingLeft().Render("press a shortcut to run a probe"))
	default:
		check := s.LastCheck
		value := fmt.Sprintf("%s %.1f%s", check.Name, check.Value, s.Last.Unit)
		lines = append(lines,
			ColorForStatus(check.Status).Render(fmt.Sprintf("%s [%s]", value, check.Status)),
			truncate(s.Last.Detail, inner),
			lipgloss.NewStyle().Foreground(lipgloss.Color("#666")).Render("at "+s.LastUpdate.Format("15:04:05")),
		)
	}
	if s.InFlight > 0 {
		lines = append(lines, props.SpinnerView+" reading…")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if props.ChartView != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", props.ChartView)
	}
	used := lipgloss.Height(content)
	if logRows := props.Budget - 2 - used - 1; logRows > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", ActivityView{Rows: logRows}.Render(s, props))
	}

	return styles.CardStyle.
		Width(max(1, props.PanelWidth-2)).
		MaxHeight(max(1, props.Budget)).
		Render(content)
}
