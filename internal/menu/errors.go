package menu

import "errors"

var (
	// ErrInvalidItem is returned when an item has a non-positive height.
	ErrInvalidItem = errors.New("invalid menu item")
	// ErrInvalidItemList is returned when a bulk add receives a nil list.
	ErrInvalidItemList = errors.New("invalid menu item list")
	// ErrInvalidDimension is returned for a non-positive width or height.
	ErrInvalidDimension = errors.New("invalid viewport dimension")
)
