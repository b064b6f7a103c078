package menu

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsOfHeights(heights ...int) []Item {
	items := make([]Item, len(heights))
	for i, h := range heights {
		items[i] = NewItem(fmt.Sprintf("item %d", i), h)
	}
	return items
}

func newTestViewport(t *testing.T, height int, mode ScrollMode, heights ...int) *Viewport {
	t.Helper()
	v, err := NewViewport(40, height, mode)
	require.NoError(t, err)
	require.NoError(t, v.AddItems(itemsOfHeights(heights...)))
	return v
}

func requireWindow(t *testing.T, v *Viewport, first, last, rows int) {
	t.Helper()
	f, l, ok := v.Window()
	require.True(t, ok, "window should not be empty")
	assert.Equal(t, first, f, "first visible")
	assert.Equal(t, last, l, "last visible")
	assert.Equal(t, rows, v.RowsUsed(), "rows used")
}

func TestNewViewport(t *testing.T) {
	t.Parallel()

	t.Run("starts empty", func(t *testing.T) {
		t.Parallel()
		v, err := NewViewport(80, 10, ScrollStep)
		require.NoError(t, err)
		_, _, ok := v.Window()
		assert.False(t, ok)
		assert.Nil(t, v.VisibleItems())
		assert.Equal(t, 0, v.RowsUsed())
		assert.Equal(t, ScrollStep, v.ScrollMode())
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		t.Parallel()
		for _, dim := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {5, -3}} {
			_, err := NewViewport(dim[0], dim[1], ScrollPage)
			assert.ErrorIs(t, err, ErrInvalidDimension, "dims %v", dim)
		}
	})
}

func TestAddItems(t *testing.T) {
	t.Parallel()

	t.Run("admits greedily until the budget is spent", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 3, 5, 7, 5, 3)
		requireWindow(t, v, 0, 1, 8)
		assert.Equal(t, 5, v.Len())

		above, below := v.Pending()
		assert.Equal(t, 0, above)
		assert.Equal(t, 3, below)
	})

	t.Run("small item after a refused one stays pending", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 3, 5, 7)
		require.NoError(t, v.AddItem(NewItem("tiny", 1)))
		requireWindow(t, v, 0, 1, 8)
	})

	t.Run("assigns ids in insertion order", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 1, 1, 1)
		for i, it := range v.Items() {
			assert.Equal(t, i, it.ID())
		}
	})

	t.Run("nil list is rejected, empty list is a no-op", func(t *testing.T) {
		t.Parallel()
		v, err := NewViewport(10, 10, ScrollPage)
		require.NoError(t, err)
		assert.ErrorIs(t, v.AddItems(nil), ErrInvalidItemList)
		assert.NoError(t, v.AddItems([]Item{}))
		assert.Equal(t, 0, v.Len())
	})

	t.Run("invalid height is rejected without touching state", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 3)
		assert.ErrorIs(t, v.AddItem(NewItem("zero", 0)), ErrInvalidItem)
		assert.ErrorIs(t, v.AddItem(NewItem("negative", -2)), ErrInvalidItem)
		assert.ErrorIs(t, v.AddItems(itemsOfHeights(2, 0, 2)), ErrInvalidItem)
		assert.Equal(t, 1, v.Len())
		requireWindow(t, v, 0, 0, 3)
	})

	t.Run("first item taller than the area stays pending", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 4, ScrollPage, 6, 1)
		_, _, ok := v.Window()
		assert.False(t, ok, "window should stay empty")
		assert.Nil(t, v.VisibleItems())
		assert.Equal(t, 0, v.RowsUsed())

		above, below := v.Pending()
		assert.Equal(t, 0, above)
		assert.Equal(t, 2, below)
	})
}

func TestScrollFillsEmptyWindow(t *testing.T) {
	t.Parallel()

	t.Run("page mode shows the tall item alone", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 4, ScrollPage, 6, 1, 2)
		require.True(t, v.ScrollDown())
		requireWindow(t, v, 0, 0, 6)

		require.True(t, v.ScrollDown())
		requireWindow(t, v, 1, 2, 3)
	})

	t.Run("page mode fills from the start", func(t *testing.T) {
		t.Parallel()
		v, err := NewViewport(40, 4, ScrollPage)
		require.NoError(t, err)
		require.NoError(t, v.AddItem(NewItem("tall", 5)))
		require.NoError(t, v.OnResize(40, 8))
		require.NoError(t, v.AddItem(NewItem("short", 2)))
		_, _, ok := v.Window()
		require.False(t, ok, "items queue behind a pending first item")

		require.True(t, v.ScrollUp())
		requireWindow(t, v, 0, 1, 7)
	})

	t.Run("step mode takes one item", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 4, ScrollStep, 6, 1)
		require.True(t, v.ScrollDown())
		requireWindow(t, v, 0, 0, 6)

		require.True(t, v.ScrollDown())
		requireWindow(t, v, 1, 1, 1)
	})
}

// TestAddingNeverOverflows adds random items, some taller than the area,
// and checks the height budget after every call.
func TestAddingNeverOverflows(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 200; round++ {
		maxHeight := 1 + rng.Intn(10)
		v, err := NewViewport(40, maxHeight, ScrollMode(rng.Intn(2)))
		require.NoError(t, err)

		for step := 0; step < 20; step++ {
			if rng.Intn(3) == 0 {
				require.NoError(t, v.AddItems(itemsOfHeights(1+rng.Intn(12), 1+rng.Intn(12))))
			} else {
				require.NoError(t, v.AddItem(NewItem("x", 1+rng.Intn(12))))
			}
			require.LessOrEqual(t, v.RowsUsed(), maxHeight)
			if first, _, ok := v.Window(); ok {
				assert.Equal(t, 0, first)
			}
		}
	}
}

func TestAdmissionStopsAfterScrolling(t *testing.T) {
	t.Parallel()

	v := newTestViewport(t, 10, ScrollStep, 3, 5, 7)
	require.True(t, v.ScrollDown())
	requireWindow(t, v, 2, 2, 7)

	require.NoError(t, v.AddItem(NewItem("late", 1)))
	requireWindow(t, v, 2, 2, 7)

	// Scrolling back to the top does not re-enable admission.
	require.True(t, v.ScrollUp())
	requireWindow(t, v, 1, 1, 5)
	require.True(t, v.ScrollUp())
	requireWindow(t, v, 0, 1, 8)
	require.NoError(t, v.AddItem(NewItem("later", 1)))
	requireWindow(t, v, 0, 1, 8)
}

func TestAdmissionResumesWhenWindowCoversAll(t *testing.T) {
	t.Parallel()

	// Nothing was ever evicted: step down only extended the window.
	v := newTestViewport(t, 10, ScrollStep, 3, 5, 7)
	require.NoError(t, v.OnResize(40, 20))
	require.True(t, v.ScrollDown())
	requireWindow(t, v, 0, 2, 15)

	require.NoError(t, v.AddItem(NewItem("fits", 5)))
	requireWindow(t, v, 0, 3, 20)
}

func TestPageDown(t *testing.T) {
	t.Parallel()

	v := newTestViewport(t, 10, ScrollPage, 3, 5, 7, 5, 3)
	require.True(t, v.ScrollDown())
	requireWindow(t, v, 2, 2, 7)

	require.True(t, v.ScrollDown())
	requireWindow(t, v, 3, 4, 8)

	assert.False(t, v.ScrollDown(), "already at the end")
	requireWindow(t, v, 3, 4, 8)
}

func TestPageUp(t *testing.T) {
	t.Parallel()

	v := newTestViewport(t, 10, ScrollPage, 3, 5, 7, 5, 3)
	require.True(t, v.ScrollDown())
	require.True(t, v.ScrollDown())
	requireWindow(t, v, 3, 4, 8)

	require.True(t, v.ScrollUp())
	requireWindow(t, v, 2, 2, 7)

	require.True(t, v.ScrollUp())
	requireWindow(t, v, 0, 1, 8)

	assert.False(t, v.ScrollUp(), "already at the start")
	requireWindow(t, v, 0, 1, 8)
}

func TestStepUpEvictsUntilFit(t *testing.T) {
	t.Parallel()

	t.Run("after a page down", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 3, 5, 7, 5, 3)
		require.True(t, v.ScrollDown())
		requireWindow(t, v, 2, 2, 7)

		v.SetScrollMode(ScrollStep)
		require.True(t, v.ScrollUp())
		requireWindow(t, v, 1, 1, 5)
	})

	t.Run("tall item pushes out several", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollStep, 9, 2, 2, 2, 2, 2)
		require.True(t, v.ScrollDown())
		requireWindow(t, v, 1, 1, 2)
		require.True(t, v.ScrollDown())
		require.True(t, v.ScrollDown())
		require.True(t, v.ScrollDown())
		requireWindow(t, v, 1, 4, 8)

		require.True(t, v.ScrollUp())
		requireWindow(t, v, 0, 0, 9)
	})
}

func TestStepDown(t *testing.T) {
	t.Parallel()

	v := newTestViewport(t, 10, ScrollStep, 3, 5, 7, 5, 3)
	require.True(t, v.ScrollDown())
	requireWindow(t, v, 2, 2, 7)

	require.True(t, v.ScrollDown())
	requireWindow(t, v, 3, 3, 5)

	require.True(t, v.ScrollDown())
	requireWindow(t, v, 3, 4, 8)

	assert.False(t, v.ScrollDown())
	requireWindow(t, v, 3, 4, 8)
}

func TestScrollOnBoundaries(t *testing.T) {
	t.Parallel()

	for _, mode := range []ScrollMode{ScrollStep, ScrollPage} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()
			v := newTestViewport(t, 10, mode, 2, 2, 2)
			assert.False(t, v.ScrollUp())
			assert.False(t, v.ScrollDown())
			requireWindow(t, v, 0, 2, 6)

			empty, err := NewViewport(10, 10, mode)
			require.NoError(t, err)
			assert.False(t, empty.ScrollUp())
			assert.False(t, empty.ScrollDown())
		})
	}
}

func TestPageRoundTripSkipsNothing(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		heights := make([]int, 5+rng.Intn(20))
		for i := range heights {
			heights[i] = 1 + rng.Intn(6)
		}
		v := newTestViewport(t, 6+rng.Intn(10), ScrollPage, heights...)

		for v.ScrollDown() {
			first, last, _ := v.Window()
			require.True(t, v.ScrollUp())
			upFirst, upLast, _ := v.Window()
			assert.Equal(t, first-1, upLast, "page up ends right before the old window")
			require.True(t, v.ScrollDown())
			downFirst, downLast, _ := v.Window()
			assert.Equal(t, first, downFirst)
			assert.Equal(t, last, downLast)
			assert.LessOrEqual(t, upFirst, first-1)
		}
	}
}

func TestOnResize(t *testing.T) {
	t.Parallel()

	t.Run("shrinking drops trailing items", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 3, 5, 7, 5, 3)
		require.NoError(t, v.OnResize(40, 6))
		requireWindow(t, v, 0, 0, 3)
		w, h := v.Size()
		assert.Equal(t, 40, w)
		assert.Equal(t, 6, h)
	})

	t.Run("growing does not admit pending items", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 3, 5, 7)
		require.NoError(t, v.OnResize(40, 100))
		requireWindow(t, v, 0, 1, 8)
	})

	t.Run("invalid size leaves state alone", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 3, 5)
		assert.ErrorIs(t, v.OnResize(0, 4), ErrInvalidDimension)
		assert.ErrorIs(t, v.OnResize(40, -1), ErrInvalidDimension)
		requireWindow(t, v, 0, 1, 8)
		w, h := v.Size()
		assert.Equal(t, 40, w)
		assert.Equal(t, 10, h)
	})

	t.Run("window never empties", func(t *testing.T) {
		t.Parallel()
		v := newTestViewport(t, 10, ScrollPage, 4, 4)
		require.NoError(t, v.OnResize(40, 1))
		requireWindow(t, v, 0, 0, 4)
	})
}

func TestVisibleItemsIsASnapshot(t *testing.T) {
	t.Parallel()

	v := newTestViewport(t, 10, ScrollPage, 3, 5, 7)
	visible := v.VisibleItems()
	require.Len(t, visible, 2)
	assert.Equal(t, "item 0", visible[0].Label())
	assert.Equal(t, "item 1", visible[1].Label())

	visible[0] = NewItem("changed", 1)
	assert.Equal(t, "item 0", v.VisibleItems()[0].Label())
}

func TestParseScrollMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ScrollMode
		wantErr bool
	}{
		{in: "step", want: ScrollStep},
		{in: "list", want: ScrollStep},
		{in: " Page ", want: ScrollPage},
		{in: "wheel", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseScrollMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

// TestInvariantsHold drives random operation sequences and checks the window
// after every call.
func TestInvariantsHold(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		maxHeight := 5 + rng.Intn(20)
		v, err := NewViewport(40, maxHeight, ScrollMode(rng.Intn(2)))
		require.NoError(t, err)

		for step := 0; step < 60; step++ {
			switch rng.Intn(6) {
			case 0:
				require.NoError(t, v.AddItem(NewItem("x", 1+rng.Intn(5))))
			case 1:
				v.ScrollUp()
			case 2:
				v.ScrollDown()
			case 3:
				v.SetScrollMode(ScrollMode(rng.Intn(2)))
			case 4:
				maxHeight = 5 + rng.Intn(20)
				require.NoError(t, v.OnResize(40, maxHeight))
			case 5:
				assert.Error(t, v.AddItem(NewItem("bad", -rng.Intn(3))))
			}

			first, last, ok := v.Window()
			if v.Len() == 0 {
				assert.False(t, ok)
				continue
			}
			require.True(t, ok)
			require.LessOrEqual(t, first, last)
			require.GreaterOrEqual(t, first, 0)
			require.Less(t, last, v.Len())

			visible := v.VisibleItems()
			require.Len(t, visible, last-first+1)
			sum := 0
			for i, it := range visible {
				require.Equal(t, first+i, it.ID(), "window must be contiguous")
				sum += it.Height()
			}
			require.Equal(t, sum, v.RowsUsed())
			// Generated items are at most 5 rows, so each fits alone.
			require.LessOrEqual(t, v.RowsUsed(), maxHeight)
		}
	}
}
