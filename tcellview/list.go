package tcellview

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/ayn2op/vlist"
)

// ItemSource supplies the list's content. Item identities are the source
// indices; implementations must keep indices stable between Invalidate
// calls.
type ItemSource interface {
	Len() int
	Item(i int) string
}

// List is a terminal container for a virtualized list. It implements
// vlist.Target: the engine measures items through it, writes tiers and
// paddings back, and observes scrolling; the list itself only mounts what
// the engine left non-hidden.
//
// List methods are safe for concurrent use; the engine coordinator and the
// UI event loop call in from different goroutines.
type List struct {
	mu     sync.Mutex
	source ItemSource

	x, y, width, height int
	scroll              int64

	hide        vlist.HideStrategy
	textStyle   tcell.Style
	strippedStyle tcell.Style
	bar         scrollBar
	showBar     bool

	// Geometry cache for the width it was measured at, invalidated on
	// resize and on source changes.
	heights   []int64
	offsets   []int64
	geomWidth int

	tiers     map[vlist.ItemID]vlist.Tier
	padTop    int64
	padBottom int64

	nextHook    int
	scrollHooks map[int]func(int64)
	sizeHooks   map[int]func(vlist.ItemID)
	structHooks map[int]func()

	changed func()
}

// NewList returns a list over the given source.
func NewList(source ItemSource) *List {
	return &List{
		source:      source,
		geomWidth:   -1,
		textStyle:   tcell.StyleDefault,
		strippedStyle: tcell.StyleDefault.Dim(true),
		bar:         newScrollBar(),
		showBar:     true,
		tiers:       make(map[vlist.ItemID]vlist.Tier),
		scrollHooks: make(map[int]func(int64)),
		sizeHooks:   make(map[int]func(vlist.ItemID)),
		structHooks: make(map[int]func()),
	}
}

// SetHideStrategy selects how hidden items are treated while drawing:
// skipped entirely, kept as a stripped placeholder row, or drawn in full.
func (l *List) SetHideStrategy(s vlist.HideStrategy) *List {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hide = s
	return l
}

// SetTextStyle sets the style used for item content.
func (l *List) SetTextStyle(style tcell.Style) *List {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.textStyle = style
	return l
}

// SetShowScrollBar toggles the right-edge scroll bar.
func (l *List) SetShowScrollBar(show bool) *List {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showBar = show
	l.geomWidth = -1
	return l
}

// SetChangedFunc registers a handler invoked whenever the engine's writes
// change what the list would draw. Typically wired to the app's redraw
// request.
func (l *List) SetChangedFunc(fn func()) *List {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changed = fn
	return l
}

// SetRect positions the list. Width changes re-measure everything since
// wrapped heights depend on the text width; height changes only move the
// viewport boundary.
func (l *List) SetRect(x, y, width, height int) {
	l.mu.Lock()
	widthChanged := width != l.width
	heightChanged := height != l.height
	l.x, l.y, l.width, l.height = x, y, width, height
	if widthChanged {
		l.geomWidth = -1
	}
	l.mu.Unlock()

	if widthChanged {
		l.fireStructural()
	} else if heightChanged {
		l.fireScroll()
	}
}

// Invalidate drops all cached geometry and notifies the engine that the
// tracked set may have changed.
func (l *List) Invalidate() {
	l.mu.Lock()
	l.geomWidth = -1
	l.mu.Unlock()
	l.fireStructural()
}

// InvalidateItem notifies the engine that one item's content changed and
// needs re-measurement.
func (l *List) InvalidateItem(i int) {
	l.mu.Lock()
	l.geomWidth = -1
	hooks := make([]func(vlist.ItemID), 0, len(l.sizeHooks))
	for _, fn := range l.sizeHooks {
		hooks = append(hooks, fn)
	}
	l.mu.Unlock()
	for _, fn := range hooks {
		fn(vlist.ItemID(i))
	}
}

// textWidth returns the columns available to item content.
func (l *List) textWidth() int {
	if l.showBar {
		return l.width - 1
	}
	return l.width
}

// geometry rebuilds the height/offset cache if it is stale. Callers hold
// l.mu.
func (l *List) geometry() {
	width := l.textWidth()
	if l.geomWidth == width {
		return
	}
	n := l.source.Len()
	l.heights = l.heights[:0]
	l.offsets = l.offsets[:0]
	offset := int64(0)
	for i := 0; i < n; i++ {
		h := int64(wrapHeight(l.source.Item(i), width))
		l.heights = append(l.heights, h)
		l.offsets = append(l.offsets, offset)
		offset += h
	}
	l.geomWidth = width
}

func (l *List) totalExtent() int64 {
	if len(l.offsets) == 0 {
		return 0
	}
	last := len(l.offsets) - 1
	return l.offsets[last] + l.heights[last]
}

// Items implements vlist.Target.
func (l *List) Items() []vlist.ItemID {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.source.Len()
	ids := make([]vlist.ItemID, n)
	for i := range ids {
		ids[i] = vlist.ItemID(i)
	}
	return ids
}

// Rect implements vlist.Target.
func (l *List) Rect(id vlist.ItemID) (vlist.Rect, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.geometry()
	i := int(id)
	if i < 0 || i >= len(l.offsets) {
		return vlist.Rect{}, false
	}
	return vlist.Rect{Offset: l.offsets[i], Size: l.heights[i]}, true
}

// SetTier implements vlist.Target.
func (l *List) SetTier(id vlist.ItemID, index int, tier vlist.Tier) {
	l.mu.Lock()
	l.tiers[id] = tier
	changed := l.changed
	l.mu.Unlock()
	if changed != nil {
		changed()
	}
}

// SetPadding implements vlist.Target.
func (l *List) SetPadding(top, bottom int64) {
	l.mu.Lock()
	l.padTop, l.padBottom = top, bottom
	changed := l.changed
	l.mu.Unlock()
	if changed != nil {
		changed()
	}
}

// ScrollOffset implements vlist.Target.
func (l *List) ScrollOffset() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scroll
}

// ViewportSize implements vlist.Target.
func (l *List) ViewportSize() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(l.height)
}

// OnScroll implements vlist.Target.
func (l *List) OnScroll(fn func(int64)) vlist.DetachFunc {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextHook
	l.nextHook++
	l.scrollHooks[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.scrollHooks, id)
	}
}

// OnSizeChange implements vlist.Target.
func (l *List) OnSizeChange(fn func(vlist.ItemID)) vlist.DetachFunc {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextHook
	l.nextHook++
	l.sizeHooks[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.sizeHooks, id)
	}
}

// OnStructuralChange implements vlist.Target.
func (l *List) OnStructuralChange(fn func()) vlist.DetachFunc {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextHook
	l.nextHook++
	l.structHooks[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.structHooks, id)
	}
}

func (l *List) fireScroll() {
	l.mu.Lock()
	offset := l.scroll
	hooks := make([]func(int64), 0, len(l.scrollHooks))
	for _, fn := range l.scrollHooks {
		hooks = append(hooks, fn)
	}
	l.mu.Unlock()
	for _, fn := range hooks {
		fn(offset)
	}
}

func (l *List) fireStructural() {
	l.mu.Lock()
	hooks := make([]func(), 0, len(l.structHooks))
	for _, fn := range l.structHooks {
		hooks = append(hooks, fn)
	}
	l.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// ScrollTo moves the viewport to offset, clamped to the content extent.
func (l *List) ScrollTo(offset int64) {
	l.mu.Lock()
	l.geometry()
	maxScroll := max(l.totalExtent()-int64(l.height), 0)
	offset = min(max(offset, 0), maxScroll)
	moved := offset != l.scroll
	l.scroll = offset
	l.mu.Unlock()
	if moved {
		l.fireScroll()
	}
}

// ScrollBy moves the viewport by delta rows.
func (l *List) ScrollBy(delta int64) {
	l.mu.Lock()
	current := l.scroll
	l.mu.Unlock()
	l.ScrollTo(current + delta)
}

// ScrollToEnd jumps to the bottom of the list.
func (l *List) ScrollToEnd() {
	l.mu.Lock()
	l.geometry()
	end := l.totalExtent()
	l.mu.Unlock()
	l.ScrollTo(end)
}

// HandleEvent applies keyboard and mouse scrolling. It reports whether the
// event was consumed.
func (l *List) HandleEvent(event tcell.Event) bool {
	switch event := event.(type) {
	case *tcell.EventKey:
		switch event.Key() {
		case tcell.KeyUp:
			l.ScrollBy(-1)
		case tcell.KeyDown:
			l.ScrollBy(1)
		case tcell.KeyPgUp:
			l.ScrollBy(-int64(max(l.pageSize(), 1)))
		case tcell.KeyPgDn:
			l.ScrollBy(int64(max(l.pageSize(), 1)))
		case tcell.KeyHome:
			l.ScrollTo(0)
		case tcell.KeyEnd:
			l.ScrollToEnd()
		default:
			return false
		}
		return true
	case *tcell.EventMouse:
		switch {
		case event.Buttons()&tcell.WheelUp != 0:
			l.ScrollBy(-3)
		case event.Buttons()&tcell.WheelDown != 0:
			l.ScrollBy(3)
		default:
			return false
		}
		return true
	}
	return false
}

func (l *List) pageSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// Draw renders the list into its rectangle. Only items the engine left
// non-hidden are mounted; the paddings account for everything else, which
// keeps the scroll bar proportional to the full extent.
func (l *List) Draw(screen tcell.Screen) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.width <= 0 || l.height <= 0 {
		return
	}
	l.geometry()

	width := l.textWidth()
	top := l.scroll
	bottom := top + int64(l.height)

	// Clear the content area.
	for row := 0; row < l.height; row++ {
		for col := 0; col < width; col++ {
			screen.SetContent(l.x+col, l.y+row, ' ', nil, l.textStyle)
		}
	}

	// First item that can intersect the viewport.
	first := 0
	for first < len(l.offsets) && l.offsets[first]+l.heights[first] <= top {
		first++
	}

	for i := first; i < len(l.offsets) && l.offsets[i] < bottom; i++ {
		tier := l.tiers[vlist.ItemID(i)]
		if tier == vlist.TierHidden {
			switch l.hide {
			case vlist.HideUnmount:
				continue
			case vlist.HideStripContent:
				l.drawStripped(screen, i, top)
				continue
			}
			// HideKeepMounted draws the full item below.
		}
		l.drawItem(screen, i, top, width)
	}

	if l.showBar {
		l.bar.draw(screen, l.x+l.width-1, l.y, l.height,
			l.totalExtent(), int64(l.height), l.scroll)
	}
}

func (l *List) drawItem(screen tcell.Screen, i int, top int64, width int) {
	lines := wrapLines(l.source.Item(i), width)
	for li, line := range lines {
		row := l.offsets[i] + int64(li) - top
		if row < 0 || row >= int64(l.height) {
			continue
		}
		l.putLine(screen, l.x, l.y+int(row), line, width, l.textStyle)
	}
}

// drawStripped stands in for a hidden item that stays mounted: its rows are
// kept but the content is dropped.
func (l *List) drawStripped(screen tcell.Screen, i int, top int64) {
	for r := int64(0); r < l.heights[i]; r++ {
		row := l.offsets[i] + r - top
		if row < 0 || row >= int64(l.height) {
			continue
		}
		screen.SetContent(l.x, l.y+int(row), '·', nil, l.strippedStyle)
	}
}

func (l *List) putLine(screen tcell.Screen, x, y int, line string, maxWidth int, style tcell.Style) {
	col := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if col >= maxWidth {
			return
		}
		runes := gr.Runes()
		w := max(uniseg.StringWidth(gr.Str()), 1)
		var comb []rune
		if len(runes) > 1 {
			comb = runes[1:]
		}
		screen.SetContent(x+col, y, runes[0], comb, style)
		col += w
	}
}

// Tier returns the engine-assigned tier of item i, for inspection.
func (l *List) Tier(i int) vlist.Tier {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tiers[vlist.ItemID(i)]
}

// Paddings returns the engine-applied spacer sizes, for inspection.
func (l *List) Paddings() (top, bottom int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.padTop, l.padBottom
}
