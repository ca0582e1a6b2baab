package vlist

// Callback receives the identity of an affected item. Callbacks run on the
// engine's coordinator goroutine; long work should be handed off.
type Callback func(id ItemID)

// callbacks is the engine's typed notification registration. One explicit
// slot per notification kind instead of a generic emitter.
type callbacks struct {
	added    Callback
	updated  Callback
	visible  Callback
	rendered Callback
	hidden   Callback
}

func (c *callbacks) emitAdded(id ItemID) {
	if c.added != nil {
		c.added(id)
	}
}

func (c *callbacks) emitUpdated(id ItemID) {
	if c.updated != nil {
		c.updated(id)
	}
}

func (c *callbacks) emitTier(id ItemID, tier Tier) {
	switch tier {
	case TierVisible:
		if c.visible != nil {
			c.visible(id)
		}
	case TierRendered:
		if c.rendered != nil {
			c.rendered(id)
		}
	case TierHidden:
		if c.hidden != nil {
			c.hidden(id)
		}
	}
}
