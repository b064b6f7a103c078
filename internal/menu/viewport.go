package menu

import (
	"fmt"
	"strings"
)

// ScrollMode selects how up/down input moves the visible window.
type ScrollMode int

const (
	// ScrollPage re-lays the window out from the item just past its edge.
	ScrollPage ScrollMode = iota
	// ScrollStep slides the window by one item.
	ScrollStep
)

func (m ScrollMode) String() string {
	switch m {
	case ScrollStep:
		return "step"
	case ScrollPage:
		return "page"
	default:
		return fmt.Sprintf("ScrollMode(%d)", int(m))
	}
}

// ParseScrollMode converts "step" or "page" (case-insensitive) to a ScrollMode.
// "list" is accepted as an alias for step.
func ParseScrollMode(s string) (ScrollMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "step", "list":
		return ScrollStep, nil
	case "page":
		return ScrollPage, nil
	}
	return ScrollPage, fmt.Errorf("unknown scroll mode %q", s)
}

// Viewport holds the full ordered item list and the contiguous window of it
// that fits inside a maxWidth x maxHeight area.
//
// The window is [first, last] inclusive; both indices are -1 while it is
// empty. It is empty when the list is, or when the first item added was too
// tall for the area; the next scroll then brings the list start in. rows is
// the sum of the heights in the window. Adding items never makes it exceed
// maxHeight; only a scroll or resize can leave a single item taller than the
// area on its own.
//
// A Viewport is not safe for concurrent use.
type Viewport struct {
	items []Item

	maxWidth  int
	maxHeight int

	first int
	last  int
	rows  int

	mode ScrollMode

	// detached is set once any item has been evicted from the window. From
	// then on appended items are never admitted automatically.
	detached bool
}

// NewViewport creates an empty Viewport for the given display area.
func NewViewport(width, height int, mode ScrollMode) (*Viewport, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Viewport{
		maxWidth:  width,
		maxHeight: height,
		first:     -1,
		last:      -1,
		mode:      mode,
	}, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return nil
}

func checkItem(it Item) error {
	if it.height <= 0 {
		return fmt.Errorf("%w: %q has height %d", ErrInvalidItem, it.label, it.height)
	}
	return nil
}

// AddItem appends an item to the list. The item joins the visible window only
// while nothing has been scrolled out of view, the window reaches the end of
// the list, and the item still fits. Otherwise it stays pending until
// scrolled into view.
func (v *Viewport) AddItem(it Item) error {
	if err := checkItem(it); err != nil {
		return err
	}
	v.appendItem(it)
	return nil
}

// AddItems adds each item in order. A nil slice is rejected; an empty one is
// a no-op. The whole slice is validated first so a failed call adds nothing.
func (v *Viewport) AddItems(items []Item) error {
	if items == nil {
		return fmt.Errorf("%w: nil slice", ErrInvalidItemList)
	}
	for i, it := range items {
		if err := checkItem(it); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	for _, it := range items {
		v.appendItem(it)
	}
	return nil
}

func (v *Viewport) appendItem(it Item) {
	it.id = len(v.items)
	v.items = append(v.items, it)

	switch {
	case v.detached || it.height > v.maxHeight-v.rows:
		// Pending. A first item that does not fit leaves the window empty
		// until the next scroll, and everything after it queues behind it.
	case v.last < 0 && it.id == 0:
		v.first, v.last = it.id, it.id
		v.rows = it.height
	case v.first == 0 && v.last == it.id-1:
		v.last = it.id
		v.rows += it.height
	}
}

// OnResize updates the display area. When the window no longer fits, trailing
// items are dropped until it does. Extra room is not filled; the window only
// grows through scrolling or AddItem.
func (v *Viewport) OnResize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	v.maxWidth, v.maxHeight = width, height
	v.trimTail()
	return nil
}

// trimTail drops items from the end of the window while it overflows, always
// keeping the first one.
func (v *Viewport) trimTail() {
	for v.rows > v.maxHeight && v.last > v.first {
		v.rows -= v.items[v.last].height
		v.last--
		v.detached = true
	}
}

// trimHead drops items from the start of the window while it overflows,
// always keeping the last one.
func (v *Viewport) trimHead() {
	for v.rows > v.maxHeight && v.first < v.last {
		v.rows -= v.items[v.first].height
		v.first++
		v.detached = true
	}
}

// VisibleItems returns a copy of the items currently in the window.
func (v *Viewport) VisibleItems() []Item {
	if v.last < 0 {
		return nil
	}
	out := make([]Item, v.last-v.first+1)
	copy(out, v.items[v.first:v.last+1])
	return out
}

// RowsUsed returns the summed height of the visible items.
func (v *Viewport) RowsUsed() int { return v.rows }

// Window returns the inclusive bounds of the visible window. ok is false when
// the window is empty.
func (v *Viewport) Window() (first, last int, ok bool) {
	if v.last < 0 {
		return -1, -1, false
	}
	return v.first, v.last, true
}

// Len returns the number of items in the logical list.
func (v *Viewport) Len() int { return len(v.items) }

// Items returns a copy of the whole logical list.
func (v *Viewport) Items() []Item {
	out := make([]Item, len(v.items))
	copy(out, v.items)
	return out
}

// Item returns the item at index i.
func (v *Viewport) Item(i int) (Item, bool) {
	if i < 0 || i >= len(v.items) {
		return Item{}, false
	}
	return v.items[i], true
}

// Size returns the current display area.
func (v *Viewport) Size() (width, height int) { return v.maxWidth, v.maxHeight }

func (v *Viewport) ScrollMode() ScrollMode { return v.mode }

func (v *Viewport) SetScrollMode(m ScrollMode) { v.mode = m }

// Pending returns how many items lie before and after the window.
func (v *Viewport) Pending() (above, below int) {
	if v.last < 0 {
		return 0, len(v.items)
	}
	return v.first, len(v.items) - 1 - v.last
}
