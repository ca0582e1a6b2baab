package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioRects is the five-item list used across the scenario tests:
// heights 100..500 laid out back to back.
func scenarioRects() []Rect {
	return []Rect{
		{Offset: 0, Size: 100},
		{Offset: 100, Size: 200},
		{Offset: 300, Size: 300},
		{Offset: 600, Size: 400},
		{Offset: 1000, Size: 500},
	}
}

func scenarioWindow() Window {
	return Window{VisibleMargin: 200, RenderMargin: 400}
}

func TestInWindow(t *testing.T) {
	c := Cursor{Offset: 100, Size: 50}

	t.Run("overlapping", func(t *testing.T) {
		assert.True(t, InWindow(Rect{Offset: 120, Size: 10}, c, 0))
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		// Item ending exactly at the window start.
		assert.True(t, InWindow(Rect{Offset: 50, Size: 50}, c, 0))
		// Item starting exactly at the window end.
		assert.True(t, InWindow(Rect{Offset: 150, Size: 10}, c, 0))
		// One unit past either boundary.
		assert.False(t, InWindow(Rect{Offset: 39, Size: 10}, c, 0))
		assert.False(t, InWindow(Rect{Offset: 151, Size: 10}, c, 0))
	})

	t.Run("margin widens both sides", func(t *testing.T) {
		assert.True(t, InWindow(Rect{Offset: 40, Size: 10}, c, 50))
		assert.True(t, InWindow(Rect{Offset: 200, Size: 10}, c, 50))
		assert.False(t, InWindow(Rect{Offset: 201, Size: 10}, c, 49))
	})
}

func TestClassify(t *testing.T) {
	w := scenarioWindow()

	t.Run("cursor at origin", func(t *testing.T) {
		c := Cursor{Offset: 0, Size: 200}
		want := []Tier{TierVisible, TierVisible, TierVisible, TierRendered, TierHidden}
		for i, rect := range scenarioRects() {
			assert.Equal(t, want[i], Classify(rect, c, w), "item %d", i)
		}
	})

	t.Run("cursor at 600", func(t *testing.T) {
		c := Cursor{Offset: 600, Size: 200}
		want := []Tier{TierHidden, TierRendered, TierVisible, TierVisible, TierVisible}
		for i, rect := range scenarioRects() {
			assert.Equal(t, want[i], Classify(rect, c, w), "item %d", i)
		}
	})

	t.Run("visible implies rendered overlap", func(t *testing.T) {
		// Sweep cursor positions; whenever an item is visible it must also
		// overlap the render window, because render >= visible.
		for offset := int64(-500); offset <= 2000; offset += 37 {
			c := Cursor{Offset: offset, Size: 200}
			for i, rect := range scenarioRects() {
				if Classify(rect, c, w) == TierVisible {
					require.True(t, InWindow(rect, c, w.RenderMargin),
						"item %d visible at offset %d but outside render window", i, offset)
				}
			}
		}
	})
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "hidden", TierHidden.String())
	assert.Equal(t, "rendered", TierRendered.String())
	assert.Equal(t, "visible", TierVisible.String())
}
