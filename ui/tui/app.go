package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"simsiac/internal/catalog"
	"simsiac/internal/collector"
	"simsiac/internal/config"
	"simsiac/internal/engine"
	"simsiac/internal/menu"
	"simsiac/ui/tui/components"
	"simsiac/ui/tui/state"
	"simsiac/ui/tui/views"
)

// MainModel is the Bubble Tea Model acting as the Controller. It owns the
// menu, turns terminal events into menu operations and renders the window
// the menu computed.
type MainModel struct {
	cfg    config.Config
	menu   *menu.Menu
	probes *collector.Registry
	queue  *actionQueue
	log    *slog.Logger

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	chart    *components.HistoryChart
	state    state.AppState
	thumb    float64
	velocity float64 // Physics velocity
	spring   harmonica.Spring
	quitting bool

	width, height int
	budget        int
	menuWidth     int
	panelWidth    int
}

// actionQueue collects the action names fired while the menu handles a key.
// The model turns them into commands once HandleKey has returned.
type actionQueue struct {
	names []string
}

func (q *actionQueue) take() []string {
	names := q.names
	q.names = nil
	return names
}

// Messages
type TickMsg time.Time
type AnimateMsg time.Time
type ReadingMsg struct {
	Name    string
	Reading collector.Reading
	Err     error
}

// NewModel builds the menu from entries, sized for the fallback terminal
// until the first WindowSizeMsg arrives.
func NewModel(cfg config.Config, entries []catalog.Entry, probes *collector.Registry) (*MainModel, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &MainModel{
		cfg:     cfg,
		probes:  probes,
		queue:   &actionQueue{},
		log:     slog.Default().With("component", "tui"),
		keys:    DefaultKeyMap(cfg.QuitKeys),
		help:    help.New(),
		spinner: s,
		chart:   components.NewHistoryChart(30, 8, cfg.HistoryCapacity),
		// Increased frequency (12.0) for faster response and damping (0.9) to prevent overshoot
		spring: harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9),
	}
	m.layout(cfg.FallbackWidth, cfg.FallbackHeight)

	mn, err := menu.New(m.menuWidth, m.budget,
		menu.WithScrollMode(cfg.Mode()),
		menu.WithQuitKeys(cfg.QuitKeys...),
		menu.WithItems(catalog.Items(entries, m.resolve)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}
	m.menu = mn
	return m, nil
}

// resolve gives items whose action names a known probe an action that
// queues a read of it.
func (m *MainModel) resolve(name string) menu.Action {
	if m.probes == nil {
		return nil
	}
	if _, ok := m.probes.Lookup(name); !ok {
		m.log.Warn("menu action has no probe", "action", name)
		return nil
	}
	q := m.queue
	return func(menu.Item) {
		q.names = append(q.names, name)
	}
}

// layout splits a w x h terminal into header, menu column, side panel and
// footer. The menu gets whatever rows the chrome leaves, at least one.
func (m *MainModel) layout(w, h int) {
	m.width, m.height = w, h

	m.budget = max(1, h-m.cfg.HeaderLines-m.cfg.FooterLines)

	m.panelWidth = 0
	if w >= 80 {
		m.panelWidth = min(44, w/2)
	}
	// scrollbar and gap
	m.menuWidth = max(1, w-m.panelWidth-2)

	m.chart.Resize(max(10, m.panelWidth-6), 8)
	m.help.Width = w
}

func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		animateCmd(),
	)
}

// Commands
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second*1, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func readProbeCmd(r *collector.Registry, name string) tea.Cmd {
	return func() tea.Msg {
		reading, err := r.Read(context.Background(), name)
		return ReadingMsg{Name: name, Reading: reading, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case TickMsg:
		return m.handleTickMsg(msg)

	case ReadingMsg:
		return m.handleReadingMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleMode):
		mode := menu.ScrollStep
		if m.menu.ScrollMode() == menu.ScrollStep {
			mode = menu.ScrollPage
		}
		m.menu.SetScrollMode(mode)
		m.state.Log("scroll mode: " + mode.String())
		return m, nil
	}

	k := msg.String()
	switch {
	case key.Matches(msg, m.keys.Up):
		k = menu.KeyUp
	case key.Matches(msg, m.keys.Down):
		k = menu.KeyDown
	}

	sig := m.menu.HandleKey(k)
	m.log.Debug("key dispatched", "key", k, "signal", sig)

	switch sig {
	case menu.Quit:
		m.quitting = true
		return m, tea.Quit
	case menu.Consumed:
		var cmds []tea.Cmd
		for _, name := range m.queue.take() {
			m.state.InFlight++
			cmds = append(cmds, readProbeCmd(m.probes, name))
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	var v float64 = m.velocity
	m.thumb, v = m.spring.Update(m.thumb, m.thumbTarget(), v)
	m.velocity = v
	return m, animateCmd()
}

// thumbTarget places the scrollbar thumb by how many items are hidden above
// the window relative to all hidden items.
func (m *MainModel) thumbTarget() float64 {
	above, below := m.menu.Pending()
	if above+below == 0 {
		return 0
	}
	return float64(above) / float64(above+below) * float64(m.budget-1)
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.layout(msg.Width, msg.Height)
	if err := m.menu.OnResize(m.menuWidth, m.budget); err != nil {
		m.log.Error("resize rejected", "width", m.menuWidth, "height", m.budget, "err", err)
	}
	return m, nil
}

func (m *MainModel) handleTickMsg(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.state.ActiveProbe == "" || m.state.InFlight > 0 {
		return m, tickCmd()
	}
	m.state.InFlight++
	return m, tea.Batch(
		readProbeCmd(m.probes, m.state.ActiveProbe),
		tickCmd(),
	)
}

func (m *MainModel) handleReadingMsg(msg ReadingMsg) (tea.Model, tea.Cmd) {
	if m.state.InFlight > 0 {
		m.state.InFlight--
	}
	if msg.Err != nil {
		m.state.Err = msg.Err
		m.state.Log(fmt.Sprintf("[%s] %s failed", time.Now().Format("15:04:05"), msg.Name))
		m.log.Warn("probe failed", "probe", msg.Name, "err", msg.Err)
		return m, nil
	}

	// Update State
	r := msg.Reading
	m.state.Err = nil
	m.state.ActiveProbe = msg.Name
	m.state.Last = r
	m.state.LastCheck = engine.Evaluate(r)
	m.state.LastUpdate = r.At

	// Update History
	m.state.Push(msg.Name, r.Value, m.cfg.HistoryCapacity)
	m.chart.SetSeries(msg.Name, m.state.History[msg.Name])

	// Update Logs
	m.state.Log(fmt.Sprintf("[%s] %s", r.At.Format("15:04:05"), r))
	return m, nil
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	above, below := m.menu.Pending()
	props := views.ViewProps{
		Width:       m.width,
		Height:      m.height,
		HeaderLines: m.cfg.HeaderLines,
		FooterLines: m.cfg.FooterLines,
		Budget:      m.budget,
		MenuWidth:   m.menuWidth,
		PanelWidth:  m.panelWidth,
		Items:       m.menu.VisibleItems(),
		Above:       above,
		Below:       below,
		Total:       m.menu.Len(),
		RowsUsed:    m.menu.RowsUsed(),
		Mode:        m.menu.ScrollMode().String(),
		Thumb:       m.thumb,
		SpinnerView: m.spinner.View(),
		HelpView:    m.help.View(m.keys),
	}
	if m.panelWidth > 0 && m.budget >= 16 {
		props.ChartView = m.chart.View()
	}
	return views.RenderMenu(m.state, props)
}

// Start runs the TUI until the user quits.
func Start(cfg config.Config, entries []catalog.Entry, probes *collector.Registry) error {
	m, err := NewModel(cfg, entries, probes)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
