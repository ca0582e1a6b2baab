package vlist

// DetachFunc removes a previously registered hook. Detach functions must be
// safe to call exactly once.
type DetachFunc func()

// Target is the capability surface the engine needs from the platform it
// virtualizes: enumerate the tracked items, measure them, receive tier and
// padding writes, expose the scroll position, and deliver change
// notifications. Keeping the engine behind this interface lets tests drive
// it with a deterministic in-memory double.
type Target interface {
	// Items returns the identities of the tracked items in list order.
	Items() []ItemID

	// Rect measures the item's current extent along the scroll axis.
	Rect(id ItemID) (Rect, bool)

	// SetTier applies a tier transition to an item, together with its list
	// position index. Called only from the engine's apply phase.
	SetTier(id ItemID, index int, tier Tier)

	// SetPadding applies the leading and trailing spacer sizes.
	SetPadding(top, bottom int64)

	// ScrollOffset returns the current scroll position of the container.
	ScrollOffset() int64

	// ViewportSize returns the size of the visible viewport.
	ViewportSize() int64

	// OnScroll registers a scroll notification hook.
	OnScroll(fn func(offset int64)) DetachFunc

	// OnSizeChange registers a hook for single-item content or size changes.
	OnSizeChange(fn func(id ItemID)) DetachFunc

	// OnStructuralChange registers a hook for items being added to or removed
	// from the container.
	OnStructuralChange(fn func()) DetachFunc
}

// Resolver locates the target container. It runs once during Start, where a
// failure is fatal, and again on the reconciliation tick so a container
// swapped out behind a selector-style configuration is picked up.
type Resolver func() (Target, error)

// StaticResolver returns a resolver that always yields t.
func StaticResolver(t Target) Resolver {
	return func() (Target, error) {
		return t, nil
	}
}

// RectProvider overrides how the engine measures an item. The default asks
// the target's layout query.
type RectProvider func(t Target, id ItemID) (Rect, bool)

// HideStrategy selects how the adapter treats hidden items. The engine only
// reports tier transitions; rendering policy belongs to the adapter.
type HideStrategy int8

const (
	// HideUnmount removes hidden items from layout entirely.
	HideUnmount HideStrategy = iota
	// HideStripContent keeps hidden items mounted but empties their content.
	HideStripContent
	// HideKeepMounted leaves hidden items fully mounted.
	HideKeepMounted
)
