package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRegistry loads rects into a fresh registry with identities 0..n-1.
func fillRegistry(rects []Rect) *Registry {
	r := NewRegistry()
	for i, rect := range rects {
		r.Update(ItemID(i), rect)
	}
	return r
}

func TestComputePaddings(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		assert.Equal(t, Paddings{}, ComputePaddings(NewRegistry()))
	})

	t.Run("boundary anchored", func(t *testing.T) {
		r := fillRegistry(scenarioRects())
		r.At(0).Tier = TierHidden
		r.At(1).Tier = TierRendered
		r.At(2).Tier = TierVisible
		r.At(3).Tier = TierVisible
		r.At(4).Tier = TierHidden

		pads := ComputePaddings(r)
		assert.Equal(t, int64(100), pads.Top, "offset of the first non-hidden item")
		assert.Equal(t, int64(500), pads.Bottom, "extent past the last non-hidden item")
	})

	t.Run("all hidden falls back to accumulated sizes", func(t *testing.T) {
		r := fillRegistry(scenarioRects())
		pads := ComputePaddings(r)
		assert.Equal(t, int64(1500), pads.Top)
		assert.Zero(t, pads.Bottom)
	})

	t.Run("identity holds for every classification", func(t *testing.T) {
		rects := scenarioRects()
		w := scenarioWindow()
		for offset := int64(-600); offset <= 2200; offset += 53 {
			r := fillRegistry(rects)
			c := Cursor{Offset: offset, Size: 200}
			var span int64
			for i := 0; i < r.Len(); i++ {
				item := r.At(i)
				item.Tier = Classify(item.Rect, c, w)
				if item.Tier != TierHidden {
					span += item.Rect.Size
				}
			}
			pads := ComputePaddings(r)
			require.Equal(t, r.TotalExtent(), pads.Top+span+pads.Bottom,
				"padding identity broken at cursor offset %d", offset)
		}
	})
}
