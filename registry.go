package vlist

// ItemID is the stable identity token of a tracked item. The platform
// adapter chooses the values; the engine only requires them to be unique and
// stable across re-measurements.
type ItemID int64

// Item is a tracked item's registry record: its identity, last measured
// geometry, and current tier.
type Item struct {
	ID   ItemID
	Rect Rect
	Tier Tier
}

// Registry maps item identities to measured geometry, in list order.
// Iteration order is insertion order, and the engine relies on offsets being
// monotonically non-decreasing in that order (the contiguous-range shortcut
// and the padding math both depend on it).
//
// A registry belongs to one engine instance and is mutated only by its
// coordinator goroutine. Registry mutation never triggers classification by
// itself; batching and re-runs are the coordinator's concern.
type Registry struct {
	order []ItemID
	items map[ItemID]*Item

	// packed is the scanner's shadow buffer, rebuilt lazily after mutations.
	packed      []PackedItem
	packedValid bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[ItemID]*Item)}
}

// Update upserts the record for id with a fresh measurement and returns it
// along with whether the record already existed. New records start hidden.
func (r *Registry) Update(id ItemID, rect Rect) (item *Item, existed bool) {
	r.packedValid = false
	if item, existed = r.items[id]; existed {
		item.Rect = rect
		return item, true
	}
	item = &Item{ID: id, Rect: rect, Tier: TierHidden}
	r.items[id] = item
	r.order = append(r.order, id)
	return item, false
}

// Get returns the record for id, if tracked.
func (r *Registry) Get(id ItemID) (*Item, bool) {
	item, ok := r.items[id]
	return item, ok
}

// Remove drops the record for id.
func (r *Registry) Remove(id ItemID) {
	if _, ok := r.items[id]; !ok {
		return
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.packedValid = false
}

// Retain drops every record whose identity is not in keep, preserving the
// order of survivors. Used when the tracked set is re-resolved after a
// structural change.
func (r *Registry) Retain(keep []ItemID) {
	set := make(map[ItemID]struct{}, len(keep))
	for _, id := range keep {
		set[id] = struct{}{}
	}
	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := set[id]; ok {
			kept = append(kept, id)
		} else {
			delete(r.items, id)
		}
	}
	r.order = kept
	r.packedValid = false
}

// Len returns the number of tracked items.
func (r *Registry) Len() int {
	return len(r.order)
}

// At returns the record at list position i.
func (r *Registry) At(i int) *Item {
	return r.items[r.order[i]]
}

// IndexOf returns the list position of id, or -1.
func (r *Registry) IndexOf(id ItemID) int {
	for i, oid := range r.order {
		if oid == id {
			return i
		}
	}
	return -1
}

// TotalExtent returns the scroll extent through the end of the last item.
func (r *Registry) TotalExtent() int64 {
	if len(r.order) == 0 {
		return 0
	}
	return r.At(len(r.order) - 1).Rect.End()
}

// Packed returns the scanner's packed view of the registry, rebuilding it if
// a mutation invalidated the cached buffer. Fails when any record does not
// fit the packed 32-bit fields.
func (r *Registry) Packed() ([]PackedItem, error) {
	if r.packedValid {
		return r.packed, nil
	}
	if cap(r.packed) < len(r.order) {
		r.packed = make([]PackedItem, len(r.order))
	}
	r.packed = r.packed[:len(r.order)]
	for i := range r.order {
		rect := r.At(i).Rect
		p, err := MakeItem(rect.Size, rect.Offset)
		if err != nil {
			return nil, err
		}
		r.packed[i] = p
	}
	r.packedValid = true
	return r.packed, nil
}
