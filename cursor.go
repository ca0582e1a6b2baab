package vlist

// Cursor is the current viewport along the scroll axis: where it starts and
// how much of the axis it covers. Offsets and sizes are 64-bit throughout the
// engine; only the packed scanner representation narrows to 32 bits, and it
// range-checks on the way in.
type Cursor struct {
	Offset int64
	Size   int64
}

// End returns the exclusive end of the cursor interval.
func (c Cursor) End() int64 {
	return c.Offset + c.Size
}

// Window holds the two margins that widen the cursor interval for
// classification. Rendered must be a superset of visible, so callers are
// expected to keep RenderMargin >= VisibleMargin; the engine does not reorder
// them.
type Window struct {
	VisibleMargin int64
	RenderMargin  int64
}
