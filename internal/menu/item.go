package menu

// Action is invoked when the shortcut of its item is pressed. It receives a
// copy of the item. An action must not call back into the Menu that
// dispatched it; schedule follow-up work instead.
type Action func(Item)

// Item is a single menu entry. Its fields are fixed at creation and the item
// is copied by value into the Viewport, so later changes to the caller's copy
// never reach the menu.
type Item struct {
	id       int
	label    string
	action   Action
	shortcut string
	height   int
}

// ItemOption configures optional fields of an Item.
type ItemOption func(*Item)

// WithAction sets the callback run when the item's shortcut is pressed.
func WithAction(a Action) ItemOption {
	return func(it *Item) {
		it.action = a
	}
}

// WithShortcut sets the key that triggers the item's action.
func WithShortcut(key string) ItemOption {
	return func(it *Item) {
		it.shortcut = key
	}
}

// NewItem creates an item with the given label and row height. The height is
// validated when the item is added to a Viewport.
func NewItem(label string, height int, opts ...ItemOption) Item {
	it := Item{
		id:     -1,
		label:  label,
		height: height,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&it)
		}
	}
	return it
}

// ID returns the item's position in the logical list, or -1 if the item has
// not been added to a Viewport.
func (it Item) ID() int { return it.id }

func (it Item) Label() string { return it.label }

func (it Item) Height() int { return it.height }

func (it Item) Shortcut() string { return it.shortcut }

// HasAction reports whether the item carries a callback.
func (it Item) HasAction() bool { return it.action != nil }
