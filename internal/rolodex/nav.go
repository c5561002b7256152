package rolodex

import "github.com/agustinfitipaldi/blood/internal/store"

// Nav owns the carousel selection index. It is an explicit value held by the
// model rather than package state, so tests can construct independent
// instances. The component count is external and passed to each transition.
type Nav struct {
	index int
}

// Index returns the current 0-based selection. Meaningless when the
// component list is empty.
func (n Nav) Index() int { return n.index }

// Next advances the selection with circular wrap. A list of one (or none)
// leaves the selection unchanged.
func (n *Nav) Next(count int) {
	if count <= 0 {
		n.index = 0
		return
	}
	n.index = (n.index + 1) % count
}

// Prev moves the selection back with circular wrap.
func (n *Nav) Prev(count int) {
	if count <= 0 {
		n.index = 0
		return
	}
	n.index = (n.index - 1 + count) % count
}

// ListChanged re-resolves the selection after the component list was
// refreshed. If preferredID names a component still present, the selection
// follows it even when its index shifted; otherwise the old index is clamped
// into range. A preferredID of 0 means no preference.
func (n *Nav) ListChanged(components []store.Component, preferredID int64) {
	if len(components) == 0 {
		n.index = 0
		return
	}

	if preferredID != 0 {
		for i, c := range components {
			if c.ID == preferredID {
				n.index = i
				return
			}
		}
	}

	if n.index >= len(components) {
		n.index = len(components) - 1
	}
	if n.index < 0 {
		n.index = 0
	}
}
