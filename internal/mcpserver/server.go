package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"simsiac/internal/catalog"
	"simsiac/internal/collector"
	"simsiac/internal/engine"
	"simsiac/internal/menu"
)

// Server exposes a menu as MCP tools. The menu is not safe for concurrent
// use, so every handler holds mu for the whole transition.
type Server struct {
	mcpServer *mcp.Server
	probes    *collector.Registry
	log       *slog.Logger

	mu      sync.Mutex
	menu    *menu.Menu
	pending []string // actions fired by the key being handled
}

// Config holds configuration for the MCP server.
type Config struct {
	ServerName    string
	ServerVersion string

	Width    int
	Height   int
	Mode     menu.ScrollMode
	QuitKeys []string
}

// NewServer builds a menu from entries and registers the menu tools.
// Entries whose action names a probe in probes get an action that reads it.
func NewServer(cfg Config, entries []catalog.Entry, probes *collector.Registry) (*Server, error) {
	s := &Server{
		probes: probes,
		log:    slog.Default().With("component", "mcpserver"),
	}

	opts := []menu.Option{
		menu.WithScrollMode(cfg.Mode),
		menu.WithItems(catalog.Items(entries, s.resolve)),
	}
	if len(cfg.QuitKeys) > 0 {
		opts = append(opts, menu.WithQuitKeys(cfg.QuitKeys...))
	}
	m, err := menu.New(cfg.Width, cfg.Height, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}
	s.menu = m

	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, nil)
	s.registerTools()

	return s, nil
}

// resolve maps an action name to a menu action. The action only records the
// name; the probe is read once the key has been handled.
func (s *Server) resolve(name string) menu.Action {
	if s.probes == nil {
		return nil
	}
	if _, ok := s.probes.Lookup(name); !ok {
		return nil
	}
	return func(menu.Item) {
		s.pending = append(s.pending, name)
	}
}

// ItemView is one menu item as reported to clients.
type ItemView struct {
	ID       int    `json:"id" jsonschema:"position of the item in the menu"`
	Label    string `json:"label" jsonschema:"item label"`
	Height   int    `json:"height" jsonschema:"rows the item occupies"`
	Shortcut string `json:"shortcut,omitempty" jsonschema:"key that fires the item's action"`
	Action   bool   `json:"action" jsonschema:"whether the item has an action"`
}

// WindowView describes the visible window.
type WindowView struct {
	Items    []ItemView `json:"items" jsonschema:"visible items, top to bottom"`
	RowsUsed int        `json:"rows_used" jsonschema:"sum of visible item heights"`
	Above    int        `json:"above" jsonschema:"items hidden above the window"`
	Below    int        `json:"below" jsonschema:"items hidden below the window"`
}

// EmptyArgs is the input of tools without parameters.
type EmptyArgs struct{}

// PressKeyArgs defines the input for the press_key tool.
type PressKeyArgs struct {
	Key string `json:"key" jsonschema:"key name: up, down, a quit key or an item shortcut"`
}

// PressKeyResult defines the output for the press_key tool.
type PressKeyResult struct {
	Signal   string          `json:"signal" jsonschema:"consumed, unconsumed or quit"`
	Readings []ReadingResult `json:"readings,omitempty" jsonschema:"probe readings from fired actions"`
	Window   WindowView      `json:"window" jsonschema:"visible window after the key"`
}

// ReadingResult is a graded probe reading.
type ReadingResult struct {
	Probe  string  `json:"probe"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	Detail string  `json:"detail,omitempty"`
	Status string  `json:"status" jsonschema:"OK, WARN, CRIT or N/A"`
	Error  string  `json:"error,omitempty"`
}

// AddItemArgs defines the input for the add_item tool.
type AddItemArgs struct {
	Label    string `json:"label" jsonschema:"item label"`
	Height   int    `json:"height" jsonschema:"rows the item occupies, at least 1"`
	Shortcut string `json:"shortcut,omitempty" jsonschema:"optional shortcut key"`
	Action   string `json:"action,omitempty" jsonschema:"optional probe name: cpu, memory, disk, load, uptime, net or processes"`
}

// AddItemResult defines the output for the add_item tool.
type AddItemResult struct {
	ID     int        `json:"id" jsonschema:"position assigned to the item"`
	Window WindowView `json:"window"`
}

// ResizeArgs defines the input for the resize tool.
type ResizeArgs struct {
	Width  int `json:"width" jsonschema:"new width, at least 1"`
	Height int `json:"height" jsonschema:"new height budget in rows, at least 1"`
}

// SetScrollModeArgs defines the input for the set_scroll_mode tool.
type SetScrollModeArgs struct {
	Mode string `json:"mode" jsonschema:"page or step"`
}

// StateResult defines the output for the menu_state tool.
type StateResult struct {
	Mode   string     `json:"mode"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Items  int        `json:"items" jsonschema:"total number of items"`
	Window WindowView `json:"window"`
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "visible_items",
		Description: "List the menu items currently visible, top to bottom, with the rows they use and how many items are hidden above and below.",
	}, s.handleVisibleItems)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "press_key",
		Description: "Send one key to the menu. 'up' and 'down' scroll, a shortcut fires its item's action even when the item is not visible, and quit keys report 'quit'. Returns the signal, readings of any probes that ran, and the new window.",
	}, s.handlePressKey)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_item",
		Description: "Append an item to the menu. It becomes visible only if the window already shows the whole list and there is room for it.",
	}, s.handleAddItem)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "resize",
		Description: "Change the menu area. Items are dropped from the bottom of the window until it fits; the window never grows on resize.",
	}, s.handleResize)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "menu_state",
		Description: "Report scroll mode, size, item count and the visible window.",
	}, s.handleMenuState)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_scroll_mode",
		Description: "Switch between page scrolling and step scrolling.",
	}, s.handleSetScrollMode)
}

func (s *Server) handleVisibleItems(_ context.Context, _ *mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, WindowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.window(), nil
}

func (s *Server) handlePressKey(ctx context.Context, _ *mcp.CallToolRequest, args PressKeyArgs) (*mcp.CallToolResult, PressKeyResult, error) {
	if args.Key == "" {
		return nil, PressKeyResult{}, fmt.Errorf("key is required")
	}

	s.mu.Lock()
	s.pending = s.pending[:0]
	sig := s.menu.HandleKey(args.Key)
	fired := append([]string(nil), s.pending...)
	win := s.window()
	s.mu.Unlock()

	s.log.Debug("key handled", "key", args.Key, "signal", sig, "fired", fired)

	res := PressKeyResult{Signal: sig.String(), Window: win}
	for _, name := range fired {
		res.Readings = append(res.Readings, s.read(ctx, name))
	}
	return nil, res, nil
}

func (s *Server) read(ctx context.Context, name string) ReadingResult {
	r, err := s.probes.Read(ctx, name)
	if err != nil {
		s.log.Warn("probe failed", "probe", name, "err", err)
		return ReadingResult{Probe: name, Status: engine.StatusUnknown, Error: err.Error()}
	}
	return ReadingResult{
		Probe:  r.Probe,
		Value:  r.Value,
		Unit:   r.Unit,
		Detail: r.Detail,
		Status: engine.Evaluate(r).Status,
	}
}

func (s *Server) handleAddItem(_ context.Context, _ *mcp.CallToolRequest, args AddItemArgs) (*mcp.CallToolResult, AddItemResult, error) {
	e := catalog.Entry{Label: args.Label, Height: args.Height, Shortcut: args.Shortcut, Action: args.Action}
	if err := e.Validate(); err != nil {
		return nil, AddItemResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.menu.AddItem(e.Item(s.resolve)); err != nil {
		return nil, AddItemResult{}, fmt.Errorf("failed to add item: %w", err)
	}
	return nil, AddItemResult{ID: s.menu.Len() - 1, Window: s.window()}, nil
}

func (s *Server) handleResize(_ context.Context, _ *mcp.CallToolRequest, args ResizeArgs) (*mcp.CallToolResult, WindowView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.menu.OnResize(args.Width, args.Height); err != nil {
		return nil, WindowView{}, fmt.Errorf("failed to resize: %w", err)
	}
	return nil, s.window(), nil
}

func (s *Server) handleMenuState(_ context.Context, _ *mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, StateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.state(), nil
}

func (s *Server) handleSetScrollMode(_ context.Context, _ *mcp.CallToolRequest, args SetScrollModeArgs) (*mcp.CallToolResult, StateResult, error) {
	mode, err := menu.ParseScrollMode(args.Mode)
	if err != nil {
		return nil, StateResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu.SetScrollMode(mode)
	return nil, s.state(), nil
}

// window snapshots the visible window. Callers hold mu.
func (s *Server) window() WindowView {
	visible := s.menu.VisibleItems()
	w := WindowView{Items: make([]ItemView, 0, len(visible)), RowsUsed: s.menu.RowsUsed()}
	for _, it := range visible {
		w.Items = append(w.Items, ItemView{
			ID:       it.ID(),
			Label:    it.Label(),
			Height:   it.Height(),
			Shortcut: it.Shortcut(),
			Action:   it.HasAction(),
		})
	}
	w.Above, w.Below = s.menu.Pending()
	return w
}

// state reports the whole menu. Callers hold mu.
func (s *Server) state() StateResult {
	width, height := s.menu.Size()
	return StateResult{
		Mode:   s.menu.ScrollMode().String(),
		Width:  width,
		Height: height,
		Items:  s.menu.Len(),
		Window: s.window(),
	}
}

// Start starts the MCP server using stdio transport.
func (s *Server) Start(ctx context.Context) error {
	fmt.Fprintf(os.Stderr, "Starting simsiac MCP server on stdio...\n")
	s.log.Info("mcp server starting", "items", s.menu.Len())
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}
