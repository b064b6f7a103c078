package views

import (
	"simsiac/ui/tui/state"
)

func RenderMenu(s state.AppState, props ViewProps) string {
	return MenuView{}.Render(s, props)
}
