package menu

// Signal reports what happened to a key handed to Menu.HandleKey.
type Signal int

const (
	// Unconsumed means the menu ignored the key; the container may handle it.
	Unconsumed Signal = iota
	// Consumed means the menu handled the key, even if nothing changed.
	Consumed
	// Quit means the key is a quit key. It is passed up unconsumed.
	Quit
)

func (s Signal) String() string {
	switch s {
	case Consumed:
		return "consumed"
	case Quit:
		return "quit"
	default:
		return "unconsumed"
	}
}

// Logical key names understood by the menu.
const (
	KeyUp   = "up"
	KeyDown = "down"
)

// DefaultQuitKeys are the quit keys used when none are configured.
var DefaultQuitKeys = []string{"q", "Q"}

// Menu is the key-driven front of a Viewport. It dispatches item shortcuts and
// turns up/down into scroll transitions.
type Menu struct {
	*Viewport

	quitKeys map[string]struct{}
}

// Option configures a Menu.
type Option func(*Menu) error

// WithScrollMode sets the initial scroll mode.
func WithScrollMode(mode ScrollMode) Option {
	return func(m *Menu) error {
		m.SetScrollMode(mode)
		return nil
	}
}

// WithQuitKeys replaces the default quit keys.
func WithQuitKeys(keys ...string) Option {
	return func(m *Menu) error {
		m.quitKeys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			m.quitKeys[k] = struct{}{}
		}
		return nil
	}
}

// WithItems adds the given items once the menu is built.
func WithItems(items []Item) Option {
	return func(m *Menu) error {
		return m.AddItems(items)
	}
}

// New creates a Menu over a width x height area. The default scroll mode is
// ScrollPage.
func New(width, height int, opts ...Option) (*Menu, error) {
	vp, err := NewViewport(width, height, ScrollPage)
	if err != nil {
		return nil, err
	}
	m := &Menu{Viewport: vp}
	WithQuitKeys(DefaultQuitKeys...)(m)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// HandleKey processes a single key press.
//
// Shortcuts are matched first, across the whole item list and not just the
// visible window; the first matching item's action runs and the window is
// left alone. Then quit keys produce Quit, and up/down scroll the window.
// Anything else is Unconsumed.
func (m *Menu) HandleKey(key string) Signal {
	if it, ok := m.Shortcut(key); ok {
		if it.action != nil {
			it.action(it)
		}
		return Consumed
	}
	if m.IsQuitKey(key) {
		return Quit
	}
	switch key {
	case KeyUp:
		m.ScrollUp()
		return Consumed
	case KeyDown:
		m.ScrollDown()
		return Consumed
	}
	return Unconsumed
}

// Shortcut returns the first item whose shortcut is key.
func (m *Menu) Shortcut(key string) (Item, bool) {
	if key == "" {
		return Item{}, false
	}
	for _, it := range m.items {
		if it.shortcut == key {
			return it, true
		}
	}
	return Item{}, false
}

// IsQuitKey reports whether key is one of the configured quit keys.
func (m *Menu) IsQuitKey(key string) bool {
	_, ok := m.quitKeys[key]
	return ok
}
