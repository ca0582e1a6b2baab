package vlist

import (
	"github.com/pkg/errors"
)

// PackedItem packs an item's (size, offset) pair into a single 64-bit word,
// size in the high 32 bits and offset in the low 32 bits. This is the record
// layout of the batch scanner, kept deliberately compact so large lists fit
// one contiguous buffer.
//
// Both fields are unsigned 32-bit on the wire. Values outside [0, 2^32-1] do
// not round-trip, so MakeItem rejects them instead of truncating silently.
type PackedItem uint64

// maxPackedField is the largest value a packed size or offset can hold.
const maxPackedField = int64(1)<<32 - 1

// ErrValueOutOfRange is returned when a size or offset does not fit the
// packed 32-bit field.
var ErrValueOutOfRange = errors.New("vlist: value does not fit packed 32-bit field")

// MakeItem packs size and offset into a PackedItem. Both values must be in
// [0, 2^32-1].
func MakeItem(size, offset int64) (PackedItem, error) {
	if size < 0 || size > maxPackedField {
		return 0, errors.Wrapf(ErrValueOutOfRange, "size %d", size)
	}
	if offset < 0 || offset > maxPackedField {
		return 0, errors.Wrapf(ErrValueOutOfRange, "offset %d", offset)
	}
	return PackedItem(uint64(size)<<32 | uint64(offset)), nil
}

// Size returns the packed size field.
func (p PackedItem) Size() int64 {
	return int64(p >> 32)
}

// Offset returns the packed offset field.
func (p PackedItem) Offset() int64 {
	return int64(p & 0xffffffff)
}

// Rect unpacks the record into a Rect.
func (p PackedItem) Rect() Rect {
	return Rect{Offset: p.Offset(), Size: p.Size()}
}

// Scan writes into result the ascending indices of all items whose interval
// overlaps the cursor interval widened by margin, and returns how many
// indices were written. It is the reference linear pass over the packed
// buffer; result must have room for len(items) indices.
func Scan(items []PackedItem, result []int32, cursorOffset, cursorSize, margin int64) int {
	c := Cursor{Offset: cursorOffset, Size: cursorSize}
	n := 0
	for i, item := range items {
		if InWindow(item.Rect(), c, margin) {
			result[n] = int32(i)
			n++
		}
	}
	return n
}

// ScanRange returns the first and last index of the contiguous run of items
// overlapping the widened cursor interval, or ok=false when no item
// overlaps. It requires items to be sorted ascending by offset (the
// registry's monotonic-offset invariant); under that invariant it is
// behavior-identical to Scan but runs two binary searches instead of a full
// pass.
func ScanRange(items []PackedItem, cursorOffset, cursorSize, margin int64) (first, last int, ok bool) {
	if len(items) == 0 {
		return 0, 0, false
	}

	lo := cursorOffset - margin
	hi := cursorOffset + cursorSize + margin

	// First item whose inclusive end reaches lo. Ends are non-decreasing when
	// offsets are sorted and sizes are non-negative.
	first = searchInt(len(items), func(i int) bool {
		return items[i].Rect().End() >= lo
	})

	// First item starting strictly past hi; everything before it overlaps.
	last = searchInt(len(items), func(i int) bool {
		return items[i].Offset() > hi
	}) - 1

	if first > last {
		return 0, 0, false
	}
	return first, last, true
}

// searchInt is sort.Search without the package dependency; f must be
// monotonically false-then-true over [0, n).
func searchInt(n int, f func(int) bool) int {
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if f(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// TopPadding returns the scroll extent above the first in-window item.
func TopPadding(items []PackedItem, firstIndex int) int64 {
	return items[firstIndex].Offset()
}

// BottomPadding returns the scroll extent beyond the last in-window item,
// measured against the final item in the buffer.
func BottomPadding(items []PackedItem, lastIndex int) int64 {
	last := items[len(items)-1].Rect()
	lastInWindow := items[lastIndex].Rect()
	return last.End() - lastInWindow.End()
}
