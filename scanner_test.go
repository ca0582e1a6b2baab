package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeItem(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		p, err := MakeItem(1234, 56789)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), p.Size())
		assert.Equal(t, int64(56789), p.Offset())
		assert.Equal(t, Rect{Offset: 56789, Size: 1234}, p.Rect())
	})

	t.Run("extremes fit", func(t *testing.T) {
		p, err := MakeItem(maxPackedField, maxPackedField)
		require.NoError(t, err)
		assert.Equal(t, maxPackedField, p.Size())
		assert.Equal(t, maxPackedField, p.Offset())
	})

	t.Run("overflow is rejected, not truncated", func(t *testing.T) {
		_, err := MakeItem(maxPackedField+1, 0)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
		_, err = MakeItem(0, maxPackedField+1)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
		_, err = MakeItem(-1, 0)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
		_, err = MakeItem(0, -1)
		assert.ErrorIs(t, err, ErrValueOutOfRange)
	})
}

// packedFixture builds 50 ascending records with varying sizes laid out back
// to back.
func packedFixture(t *testing.T) []PackedItem {
	t.Helper()
	items := make([]PackedItem, 0, 50)
	offset := int64(0)
	for i := 0; i < 50; i++ {
		size := int64(40 + (i*13)%90)
		p, err := MakeItem(size, offset)
		require.NoError(t, err)
		items = append(items, p)
		offset += size
	}
	return items
}

func TestScanMatchesBruteForce(t *testing.T) {
	items := packedFixture(t)
	result := make([]int32, len(items))

	windows := []struct {
		offset, size, margin int64
	}{
		{0, 200, 0},
		{0, 200, 400},
		{500, 120, 50},
		{1500, 300, 100},
		{100000, 200, 400}, // far past the end
		{0, 0, 0},
	}
	for _, win := range windows {
		c := Cursor{Offset: win.offset, Size: win.size}
		var want []int32
		for i, item := range items {
			if InWindow(item.Rect(), c, win.margin) {
				want = append(want, int32(i))
			}
		}

		n := Scan(items, result, win.offset, win.size, win.margin)
		assert.Equal(t, want, append([]int32(nil), result[:n]...),
			"window %+v", win)

		// The matches form one contiguous run; first and last bound it.
		first, last, ok := ScanRange(items, win.offset, win.size, win.margin)
		if len(want) == 0 {
			assert.False(t, ok, "window %+v", win)
		} else {
			require.True(t, ok, "window %+v", win)
			assert.Equal(t, int(want[0]), first, "window %+v", win)
			assert.Equal(t, int(want[len(want)-1]), last, "window %+v", win)
		}
	}
}

func TestScanRangeEmptyBuffer(t *testing.T) {
	_, _, ok := ScanRange(nil, 0, 100, 50)
	assert.False(t, ok)
}

func TestPackedPaddings(t *testing.T) {
	items := packedFixture(t)
	total := items[len(items)-1].Rect().End()

	first, last, ok := ScanRange(items, 500, 120, 50)
	require.True(t, ok)

	top := TopPadding(items, first)
	bottom := BottomPadding(items, last)
	assert.Equal(t, items[first].Offset(), top)
	assert.Equal(t, total-items[last].Rect().End(), bottom)

	// Paddings plus the in-window span reconstruct the full extent.
	span := items[last].Rect().End() - items[first].Offset()
	assert.Equal(t, total, top+span+bottom)
}
