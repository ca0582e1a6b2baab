package vlist

// Range is a contiguous, inclusive run of registry list positions. Because
// offsets are monotonically non-decreasing, the set of in-window items is
// always one such run.
type Range struct {
	First int
	Last  int
}

// emptyRange is the canonical empty run.
var emptyRange = Range{First: 0, Last: -1}

// Empty reports whether the run contains no positions.
func (r Range) Empty() bool {
	return r.Last < r.First
}

// Contains reports whether position i falls inside the run.
func (r Range) Contains(i int) bool {
	return i >= r.First && i <= r.Last
}

// Layout is the classify-and-layout strategy driving a pass: it reduces the
// current registry contents and cursor to the contiguous render and visible
// index runs. A strategy is selected once at engine construction.
type Layout interface {
	Ranges(reg *Registry, c Cursor, w Window) (render, visible Range, err error)
}

// sizeObserver is implemented by layouts that keep size statistics the
// engine should feed as items are measured and re-measured.
type sizeObserver interface {
	observeAdd(size int64)
	observeCorrect(old, updated int64)
}

// StaticLayout classifies a list of uniformly sized items. Ranges are
// computed arithmetically; no walking and no per-item measurement are
// needed.
type StaticLayout struct {
	// ItemSize is the uniform item size. Must be positive.
	ItemSize int64
}

// NewStaticLayout returns a layout for items of uniform size.
func NewStaticLayout(itemSize int64) *StaticLayout {
	return &StaticLayout{ItemSize: itemSize}
}

// Ranges implements Layout.
func (l *StaticLayout) Ranges(reg *Registry, c Cursor, w Window) (render, visible Range, err error) {
	n := reg.Len()
	if n == 0 || l.ItemSize <= 0 {
		return emptyRange, emptyRange, nil
	}
	return uniformRange(n, l.ItemSize, c, w.RenderMargin),
		uniformRange(n, l.ItemSize, c, w.VisibleMargin), nil
}

// uniformRange computes the inclusive in-window run for items of uniform
// size s: item i occupies [i*s, i*s+s] and overlaps with inclusive bounds,
// matching Classify exactly.
func uniformRange(n int, s int64, c Cursor, margin int64) Range {
	lo := c.Offset - margin
	hi := c.End() + margin
	if hi < 0 {
		return emptyRange
	}

	first := int64(0)
	if lo > s {
		// Smallest i with i*s+s >= lo.
		first = (lo - s + s - 1) / s
	}
	last := hi / s
	if first >= int64(n) {
		return emptyRange
	}
	if last >= int64(n) {
		last = int64(n) - 1
	}
	if last < first {
		return emptyRange
	}
	return Range{First: int(first), Last: int(last)}
}

// AverageLayout classifies using an adaptive running mean of observed item
// sizes: it approximates the window's boundary index from the mean, then
// walks neighbors outward classifying each with the real measured geometry
// until leaving the margin in both directions. Cost is proportional to the
// number of in-window items when the mean is reasonably accurate.
type AverageLayout struct {
	est Estimator

	// strictVisibleMargin selects which margin the visible-range walk uses.
	// Off by default: the reference implementation reuses the render margin
	// there, making every rendered item count as visible. Turn on to walk the
	// visible range with the visible margin instead.
	strictVisibleMargin bool
}

// NewAverageLayout returns an average-estimation layout with no samples.
// Until a measurement seeds the estimator it classifies nothing.
func NewAverageLayout() *AverageLayout {
	return &AverageLayout{}
}

// SetStrictVisibleMargin selects the visible-range margin semantics. See the
// field note; the default preserves the reference behavior.
func (l *AverageLayout) SetStrictVisibleMargin(strict bool) *AverageLayout {
	l.strictVisibleMargin = strict
	return l
}

// Estimator exposes the layout's running average, mostly for inspection in
// tests.
func (l *AverageLayout) Estimator() *Estimator {
	return &l.est
}

func (l *AverageLayout) observeAdd(size int64) {
	l.est.Add(size)
}

func (l *AverageLayout) observeCorrect(old, updated int64) {
	l.est.Correct(old, updated)
}

// Ranges implements Layout.
func (l *AverageLayout) Ranges(reg *Registry, c Cursor, w Window) (render, visible Range, err error) {
	n := reg.Len()
	if n == 0 || !l.est.Seeded() {
		return emptyRange, emptyRange, nil
	}

	seed := l.est.ApproxIndex(c.Offset-w.RenderMargin, n)
	render = walkRange(reg, n, seed, c, w.RenderMargin)

	visibleMargin := w.RenderMargin
	if l.strictVisibleMargin {
		visibleMargin = w.VisibleMargin
	}
	if !render.Empty() {
		seed = render.First
	}
	visible = walkRange(reg, n, seed, c, visibleMargin)
	return render, visible, nil
}

// walkRange finds the contiguous in-window run by walking outward from an
// approximate seed index, testing each neighbor with the real classifier.
// Monotonic offsets make the run contiguous, so walking can stop at the
// first out-of-window item in each direction.
func walkRange(reg *Registry, n, seed int, c Cursor, margin int64) Range {
	if seed < 0 {
		seed = 0
	}
	if seed >= n {
		seed = n - 1
	}

	in := func(i int) bool {
		return InWindow(reg.At(i).Rect, c, margin)
	}

	i := seed
	if !in(i) {
		// The seed missed; step toward the window until we enter it or run
		// off the list.
		if reg.At(i).Rect.End() < c.Offset-margin {
			for i++; i < n && !in(i); i++ {
			}
			if i >= n {
				return emptyRange
			}
		} else {
			for i--; i >= 0 && !in(i); i-- {
			}
			if i < 0 {
				return emptyRange
			}
		}
	}

	r := Range{First: i, Last: i}
	for r.First > 0 && in(r.First-1) {
		r.First--
	}
	for r.Last < n-1 && in(r.Last+1) {
		r.Last++
	}
	return r
}

// MeasuredLayout classifies fully measured lists with the packed batch
// scanner: two binary-search scans over the registry's packed buffer, one
// per margin. Every item's exact geometry must already be in the registry.
type MeasuredLayout struct{}

// NewMeasuredLayout returns a batch-scanning layout.
func NewMeasuredLayout() *MeasuredLayout {
	return &MeasuredLayout{}
}

// Ranges implements Layout. It fails when any record does not fit the packed
// 32-bit representation.
func (l *MeasuredLayout) Ranges(reg *Registry, c Cursor, w Window) (render, visible Range, err error) {
	packed, err := reg.Packed()
	if err != nil {
		return emptyRange, emptyRange, err
	}

	render = emptyRange
	if first, last, ok := ScanRange(packed, c.Offset, c.Size, w.RenderMargin); ok {
		render = Range{First: first, Last: last}
	}
	visible = emptyRange
	if first, last, ok := ScanRange(packed, c.Offset, c.Size, w.VisibleMargin); ok {
		visible = Range{First: first, Last: last}
	}
	return render, visible, nil
}
