package vlist

// Tier classifies a tracked item relative to the cursor. The ordering is
// hidden < rendered < visible; a visible item is always also rendered.
type Tier int8

const (
	TierHidden Tier = iota
	TierRendered
	TierVisible
)

func (t Tier) String() string {
	switch t {
	case TierHidden:
		return "hidden"
	case TierRendered:
		return "rendered"
	case TierVisible:
		return "visible"
	}
	return "unknown"
}

// Rect is an item's measured extent along the scroll axis.
type Rect struct {
	Offset int64
	Size   int64
}

// End returns the inclusive end of the item interval.
func (r Rect) End() int64 {
	return r.Offset + r.Size
}

// InWindow reports whether the item interval [offset, offset+size] overlaps
// the cursor interval widened by margin on both sides. Boundaries are
// inclusive at both ends: an item exactly touching the widened interval
// counts as overlapping.
func InWindow(r Rect, c Cursor, margin int64) bool {
	return r.Offset <= c.End()+margin && r.End() >= c.Offset-margin
}

// Classify assigns a tier to an item: visible if it overlaps the
// visible-margin window, rendered if it only overlaps the render-margin
// window, hidden otherwise. The function is pure; it never mutates shared
// state, so it is safe to evaluate concurrently for different items.
func Classify(r Rect, c Cursor, w Window) Tier {
	if InWindow(r, c, w.VisibleMargin) {
		return TierVisible
	}
	if InWindow(r, c, w.RenderMargin) {
		return TierRendered
	}
	return TierHidden
}
