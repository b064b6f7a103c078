package views

import (
	"simsiac/internal/menu"
	"simsiac/ui/tui/state"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height int

	// Layout budget computed by the Controller
	HeaderLines int
	FooterLines int
	Budget      int
	MenuWidth   int
	PanelWidth  int

	// Menu window, already computed by the core
	Items    []menu.Item
	Above    int
	Below    int
	Total    int
	RowsUsed int
	Mode     string

	// Component States
	Thumb       float64
	SpinnerView string
	ChartView   string
	HelpView    string
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}
