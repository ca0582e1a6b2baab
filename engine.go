package vlist

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

const (
	// The size of the trigger queue feeding the coordinator.
	triggerQueueSize = 100
	// The minimum time between two scroll-driven classification passes.
	defaultThrottleInterval = 50 * time.Millisecond
	// How often the resolver is re-run to catch a swapped-out target.
	defaultReconcileInterval = time.Second
	// How often observer hooks are detached and reattached to bound their
	// subscription set.
	defaultCleanupInterval = 10 * time.Second
)

// Errors reported by Start.
var (
	ErrStarted            = errors.New("vlist: engine already started")
	ErrNoResolver         = errors.New("vlist: no target resolver configured")
	ErrLayoutUnconfigured = errors.New("vlist: no layout strategy configured")
	ErrNoTarget           = errors.New("vlist: resolver returned no target")
)

type triggerKind int8

const (
	triggerScroll triggerKind = iota
	triggerCursorMove
	triggerSizeChange
	triggerStructural
)

type trigger struct {
	kind   triggerKind
	id     ItemID
	offset int64
}

// Engine is the update coordinator: it owns one cursor and one item registry,
// decides when classification re-runs, and applies the resulting tier
// transitions and paddings back to the target.
//
// All engine state is owned by a single coordinator goroutine started by
// Start. External entry points (SetCursorOffset, Refresh, target hooks)
// enqueue triggers; nothing mutates the cursor or registry directly. A pass
// in progress is never pre-empted; triggers arriving during one queue up
// behind it.
type Engine struct {
	resolve Resolver
	layout  Layout

	window              Window
	initialCursor       Cursor
	hide                HideStrategy
	rectProvider        RectProvider
	disableScrollCursor bool

	throttleInterval  time.Duration
	reconcileInterval time.Duration
	cleanupInterval   time.Duration

	cb      callbacks
	errFunc func(error)

	// Everything below belongs to the coordinator goroutine once started.
	target       Target
	reg          *Registry
	cursor       Cursor
	pinnedCursor bool
	lastPads     Paddings
	padsApplied  bool
	detachers    []DetachFunc

	// applying guards the engine's own writes to the target so they are not
	// observed as external mutations. An explicit phase flag, never a timing
	// window.
	applying atomic.Bool

	mu       sync.Mutex
	running  bool
	triggers chan trigger
	stopc    chan struct{}
	done     chan struct{}
}

// NewEngine returns an engine that will classify the container located by
// resolve. Configure it with the Set... methods before calling Start.
func NewEngine(resolve Resolver) *Engine {
	return &Engine{
		resolve:           resolve,
		reg:               NewRegistry(),
		throttleInterval:  defaultThrottleInterval,
		reconcileInterval: defaultReconcileInterval,
		cleanupInterval:   defaultCleanupInterval,
	}
}

// SetMargins sets the visible and render margins. The algorithm assumes
// render >= visible; this is not validated, matching the reference behavior.
func (e *Engine) SetMargins(visible, render int64) *Engine {
	e.window = Window{VisibleMargin: visible, RenderMargin: render}
	return e
}

// SetLayout selects the classify-and-layout strategy. Exactly one must be
// configured before Start.
func (e *Engine) SetLayout(layout Layout) *Engine {
	e.layout = layout
	return e
}

// SetCursor sets the initial cursor. The offset is replaced by the target's
// scroll position on every pass unless scroll-cursor tracking is disabled;
// the size is replaced by the target's viewport size whenever that reports
// positive.
func (e *Engine) SetCursor(c Cursor) *Engine {
	e.initialCursor = c
	return e
}

// SetHideStrategy selects how the adapter should treat hidden items. The
// engine itself only reports transitions.
func (e *Engine) SetHideStrategy(s HideStrategy) *Engine {
	e.hide = s
	return e
}

// HideStrategy returns the configured hide strategy.
func (e *Engine) HideStrategy() HideStrategy {
	return e.hide
}

// SetRectProvider overrides how items are measured. The default asks the
// target's layout query.
func (e *Engine) SetRectProvider(p RectProvider) *Engine {
	e.rectProvider = p
	return e
}

// SetDisableScrollCursor stops the cursor from tracking the target's scroll
// position; the cursor then moves only through SetCursorOffset.
func (e *Engine) SetDisableScrollCursor(disable bool) *Engine {
	e.disableScrollCursor = disable
	return e
}

// SetThrottleInterval sets the minimum time between two scroll-driven
// passes. Zero disables throttling.
func (e *Engine) SetThrottleInterval(d time.Duration) *Engine {
	e.throttleInterval = d
	return e
}

// SetReconcileInterval sets how often the resolver is re-run.
func (e *Engine) SetReconcileInterval(d time.Duration) *Engine {
	e.reconcileInterval = d
	return e
}

// SetCleanupInterval sets how often observer hooks are reattached.
func (e *Engine) SetCleanupInterval(d time.Duration) *Engine {
	e.cleanupInterval = d
	return e
}

// SetAddedFunc registers the callback for items entering the tracked set.
func (e *Engine) SetAddedFunc(fn Callback) *Engine {
	e.cb.added = fn
	return e
}

// SetUpdatedFunc registers the callback for re-measured items.
func (e *Engine) SetUpdatedFunc(fn Callback) *Engine {
	e.cb.updated = fn
	return e
}

// SetVisibleFunc registers the callback for items transitioning to visible.
func (e *Engine) SetVisibleFunc(fn Callback) *Engine {
	e.cb.visible = fn
	return e
}

// SetRenderedFunc registers the callback for items transitioning to
// rendered.
func (e *Engine) SetRenderedFunc(fn Callback) *Engine {
	e.cb.rendered = fn
	return e
}

// SetHiddenFunc registers the callback for items transitioning to hidden.
func (e *Engine) SetHiddenFunc(fn Callback) *Engine {
	e.cb.hidden = fn
	return e
}

// SetErrorFunc registers the callback for asynchronous classification
// errors, such as a packed-field overflow during a measured pass.
func (e *Engine) SetErrorFunc(fn func(error)) *Engine {
	e.errFunc = fn
	return e
}

// Start resolves the target and launches the coordinator. Resolution failure
// is a fatal configuration error reported synchronously; nothing is started
// in that case.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return ErrStarted
	}
	if e.resolve == nil {
		return ErrNoResolver
	}
	if e.layout == nil {
		return ErrLayoutUnconfigured
	}

	target, err := e.resolve()
	if err != nil {
		return errors.Wrap(err, "vlist: resolving target")
	}
	if target == nil {
		return ErrNoTarget
	}

	e.target = target
	e.cursor = e.initialCursor
	e.triggers = make(chan trigger, triggerQueueSize)
	e.stopc = make(chan struct{})
	e.done = make(chan struct{})
	e.running = true
	go e.loop()
	return nil
}

// Stop shuts the coordinator down. It returns only after every pending timer
// is cancelled and every observer hook is detached; a dangling timer after
// Stop would be a resource leak, not a degraded state.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopc)
	done := e.done
	e.mu.Unlock()
	<-done
}

// SetCursorOffset moves the cursor explicitly. This is the only external
// entry point that mutates engine state, and it does so by queueing the move
// onto the coordinator.
func (e *Engine) SetCursorOffset(offset int64) {
	e.enqueue(trigger{kind: triggerCursorMove, offset: offset})
}

// Refresh queues a full re-resolution of the tracked item set, as after a
// structural change.
func (e *Engine) Refresh() {
	e.enqueue(trigger{kind: triggerStructural})
}

func (e *Engine) enqueue(tr trigger) {
	e.mu.Lock()
	triggers, stopc := e.triggers, e.stopc
	e.mu.Unlock()
	if triggers == nil {
		return
	}
	select {
	case triggers <- tr:
	case <-stopc:
	}
}

func (e *Engine) loop() {
	defer close(e.done)

	thr := newThrottle(e.throttleInterval)
	reconcile := time.NewTicker(e.reconcileInterval)
	cleanup := time.NewTicker(e.cleanupInterval)
	defer func() {
		thr.stop()
		reconcile.Stop()
		cleanup.Stop()
		e.detachAll()
	}()

	e.attach()
	e.refresh()

	for {
		select {
		case <-e.stopc:
			return
		case tr := <-e.triggers:
			e.handle(tr, thr)
		case <-thr.c():
			if thr.fired() {
				e.reclassify()
			}
		case <-reconcile.C:
			e.reconcile()
		case <-cleanup.C:
			e.detachAll()
			e.attach()
		}
	}
}

func (e *Engine) handle(tr trigger, thr *throttle) {
	switch tr.kind {
	case triggerScroll:
		if e.disableScrollCursor {
			return
		}
		e.cursor.Offset = tr.offset
		if thr.trigger() {
			e.reclassify()
		}
	case triggerCursorMove:
		e.cursor.Offset = tr.offset
		e.pinnedCursor = true
		if thr.trigger() {
			e.reclassify()
		}
	case triggerSizeChange:
		e.remeasure(tr.id)
	case triggerStructural:
		e.refresh()
	}
}

// attach subscribes the engine to the target's change notifications. Size
// and structural notifications observed while the engine itself is writing
// are its own echoes and are dropped; re-entrant passes would otherwise loop
// forever.
func (e *Engine) attach() {
	t := e.target
	e.detachers = []DetachFunc{
		t.OnScroll(func(offset int64) {
			e.enqueue(trigger{kind: triggerScroll, offset: offset})
		}),
		t.OnSizeChange(func(id ItemID) {
			if e.applying.Load() {
				return
			}
			e.enqueue(trigger{kind: triggerSizeChange, id: id})
		}),
		t.OnStructuralChange(func() {
			if e.applying.Load() {
				return
			}
			e.enqueue(trigger{kind: triggerStructural})
		}),
	}
}

func (e *Engine) detachAll() {
	for _, detach := range e.detachers {
		detach()
	}
	e.detachers = nil
}

// reconcile re-runs the resolver in case the target was swapped out from
// under a selector-style configuration.
func (e *Engine) reconcile() {
	target, err := e.resolve()
	if err != nil {
		e.fail(errors.Wrap(err, "vlist: re-resolving target"))
		return
	}
	if target == nil || target == e.target {
		return
	}
	e.detachAll()
	e.target = target
	e.padsApplied = false
	e.attach()
	e.refresh()
}

func (e *Engine) measure(id ItemID) (Rect, bool) {
	if e.rectProvider != nil {
		return e.rectProvider(e.target, id)
	}
	return e.target.Rect(id)
}

// refresh re-resolves the tracked item set, re-measures every item, then
// runs a pass. Registry writes here do not trigger classification on their
// own; the single pass at the end covers the whole batch.
func (e *Engine) refresh() {
	obs, _ := e.layout.(sizeObserver)
	ids := e.target.Items()
	e.reg.Retain(ids)
	for _, id := range ids {
		rect, ok := e.measure(id)
		if !ok {
			continue
		}
		if item, existed := e.reg.Get(id); existed {
			if item.Rect != rect {
				old := item.Rect.Size
				e.reg.Update(id, rect)
				if obs != nil {
					obs.observeCorrect(old, rect.Size)
				}
				e.cb.emitUpdated(id)
			}
		} else {
			e.reg.Update(id, rect)
			if obs != nil {
				obs.observeAdd(rect.Size)
			}
			e.cb.emitAdded(id)
		}
	}
	e.reclassify()
}

// remeasure refreshes a single item's geometry and re-runs classification
// only when the geometry actually changed.
func (e *Engine) remeasure(id ItemID) {
	item, ok := e.reg.Get(id)
	if !ok {
		e.refresh()
		return
	}
	rect, measured := e.measure(id)
	if !measured || rect == item.Rect {
		return
	}
	old := item.Rect.Size
	e.reg.Update(id, rect)
	if obs, isObs := e.layout.(sizeObserver); isObs {
		obs.observeCorrect(old, rect.Size)
	}
	e.cb.emitUpdated(id)
	e.reclassify()
}

// reclassify is the classification pass: read the freshest cursor, compute
// the render and visible runs, apply tier transitions and paddings, emit
// events. With unchanged cursor and geometry it applies and emits nothing.
func (e *Engine) reclassify() {
	if !e.disableScrollCursor && !e.pinnedCursor {
		e.cursor.Offset = e.target.ScrollOffset()
	}
	e.pinnedCursor = false
	if size := e.target.ViewportSize(); size > 0 {
		e.cursor.Size = size
	}

	render, visible, err := e.layout.Ranges(e.reg, e.cursor, e.window)
	if err != nil {
		e.fail(errors.Wrap(err, "vlist: classification pass"))
		return
	}

	type transition struct {
		id    ItemID
		index int
		tier  Tier
	}
	var changes []transition
	for i := 0; i < e.reg.Len(); i++ {
		item := e.reg.At(i)
		tier := TierHidden
		switch {
		case visible.Contains(i):
			tier = TierVisible
		case render.Contains(i):
			tier = TierRendered
		}
		if item.Tier != tier {
			item.Tier = tier
			changes = append(changes, transition{id: item.ID, index: i, tier: tier})
		}
	}
	pads := ComputePaddings(e.reg)

	e.applying.Store(true)
	for _, ch := range changes {
		e.target.SetTier(ch.id, ch.index, ch.tier)
	}
	if !e.padsApplied || pads != e.lastPads {
		e.target.SetPadding(pads.Top, pads.Bottom)
		e.lastPads = pads
		e.padsApplied = true
	}
	e.applying.Store(false)

	for _, ch := range changes {
		e.cb.emitTier(ch.id, ch.tier)
	}
}

func (e *Engine) fail(err error) {
	if e.errFunc != nil {
		e.errFunc(err)
	}
}
