// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ MULTI-VALUE HASH INDEX
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Same-Key Cursor
//
// Description:
//   Lazy, finite, restartable walk over all values stored under one hash. Rides the
//   engine guarantee that equal tags occupy one contiguous span (with wraparound)
//   starting at the Lookup index.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package multidx

import "main/rhtable"

// Cursor yields the values of a single hash in probe order. Zero allocations;
// copy freely. A cursor is a snapshot of slot positions: any mutation of the
// index invalidates it (use Reset to re-anchor).
type Cursor[V any] struct {
	core *rhtable.Table[V]
	hash uint64
	slot int
	live bool
}

// Values returns a cursor positioned at the first value stored under hash.
// An absent hash yields an exhausted cursor.
func (x *Index[V]) Values(hash uint64) Cursor[V] {
	c := Cursor[V]{core: x.core, hash: hash}
	c.slot, c.live = x.core.Lookup(hash)
	return c
}

// Next returns the next value for the cursor's hash, advancing with
// wraparound, and false once the contiguous run is exhausted.
func (c *Cursor[V]) Next() (V, bool) {
	if !c.live || c.core.Tag(c.slot) != c.hash {
		c.live = false
		var zero V
		return zero, false
	}
	v := c.core.Value(c.slot)
	c.slot = c.core.Next(c.slot)
	return v, true
}

// Reset re-anchors the cursor at the start of its hash's run, making the walk
// restartable after exhaustion or after index mutations.
func (c *Cursor[V]) Reset() {
	c.slot, c.live = c.core.Lookup(c.hash)
}
