package vlist

// Paddings are the leading and trailing spacer sizes that stand in for
// hidden items, preserving the list's total scrollable extent without
// mounting everything.
type Paddings struct {
	Top    int64
	Bottom int64
}

// ComputePaddings derives spacer sizes from the registry's current tiers:
// Top is the offset of the first non-hidden item and Bottom the extent
// beyond the last non-hidden item.
//
// When every item is hidden (the cursor jumped far away from all of them)
// there is no boundary item to anchor on, so the paddings fall back to the
// accumulated size of the skipped items: all of it lands in Top. Either way
// the identity Top + span(non-hidden) + Bottom == TotalExtent holds.
func ComputePaddings(reg *Registry) Paddings {
	n := reg.Len()
	if n == 0 {
		return Paddings{}
	}

	first, last := -1, -1
	for i := 0; i < n; i++ {
		if reg.At(i).Tier != TierHidden {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		var sum int64
		for i := 0; i < n; i++ {
			sum += reg.At(i).Rect.Size
		}
		return Paddings{Top: sum}
	}

	return Paddings{
		Top:    reg.At(first).Rect.Offset,
		Bottom: reg.TotalExtent() - reg.At(last).Rect.End(),
	}
}
