package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"simsiac/ui/tui/state"
	"simsiac/ui/tui/styles"
)

// MenuView draws header, visible items, status panel and footer. It only
// reads what the core computed; it never changes the window.
type MenuView struct{}

func (v MenuView) Render(s state.AppState, props ViewProps) string {
	// 1. Header
	title := styles.HeaderStyle.Width(max(1, props.Width)).Render("SIMSIAC // MENU")
	sub := styles.CopyStyle.Render(fmt.Sprintf("%s scrolling • %d items", props.Mode, props.Total))
	header := fit(lipgloss.JoinVertical(lipgloss.Left, title, sub), props.HeaderLines)

	// 2. Menu Items
	boxes := make([]string, 0, len(props.Items))
	for _, it := range props.Items {
		boxes = append(boxes, ItemBox(it, props.MenuWidth))
	}
	list := fit(lipgloss.JoinVertical(lipgloss.Left, boxes...), props.Budget)
	column := lipgloss.JoinHorizontal(lipgloss.Top, list, Scrollbar(props.Budget, props.Thumb))

	body := column
	if props.PanelWidth > 0 {
		panel := StatusView{}.Render(s, props)
		body = lipgloss.JoinHorizontal(lipgloss.Top, column, " ", panel)
	}
	body = fit(body, props.Budget)

	// 3. Footer
	info := lipgloss.NewStyle().Foreground(lipgloss.Color("#555")).Render(
		fmt.Sprintf("rows %d/%d • ↑ %d • ↓ %d", props.RowsUsed, props.Budget, props.Above, props.Below))
	footer := fit(lipgloss.JoinVertical(lipgloss.Left, props.HelpView, info), props.FooterLines)

	parts := []string{header, body}
	if props.FooterLines > 0 {
		parts = append(parts, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
