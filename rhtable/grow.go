// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ ROBIN HOOD TABLE ENGINE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: In-Place Sweep Growth
//
// Description:
//   Doubles the table in place and relocates every entry with a single forward sweep.
//   The backing arrays are extended without rebuilding a second table, and the sweep
//   moves each entry at most once regardless of how long its collision run is.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package rhtable

// grow doubles the capacity (minimum 4), recomputes the growth threshold, and
// relocates all entries with one sweep over the old slot range.
//
// ALGORITHM:
//
//	The sweep works in "unwrapped" coordinates: reading position u maps to old
//	slot u & oldMask, so a run that wrapped past the old end is scanned as one
//	contiguous span. It proceeds in three steps:
//
//	1. Skip the displaced prefix. Entries at the front of the old table whose
//	   distance is non-zero belong to a run wrapping in from the old tail; the
//	   sweep must begin at a true run boundary (an empty slot or a distance-0
//	   occupant) so those entries are revisited unwrapped at the tail instead.
//
//	2. Sweep oldCap read positions from that boundary. Each run splits into two
//	   output sub-runs: entries whose new ideal slot lies within oldCap slots of
//	   the run start stay "low" (destination = unwrapped old ideal), the rest go
//	   "high" (destination = unwrapped old ideal + oldCap, i.e. the extended
//	   half). One free cursor per sub-run packs entries Robin-Hood-tight.
//
//	3. A copy whose destination equals its source slot is skipped; any other
//	   copy clears the source slot behind it.
//
//	Low writes never pass the read position and high writes stay oldCap ahead
//	of it, wrapping only onto prefix slots the sweep has already consumed, so
//	no unread source is ever overwritten.
//
//go:norace
func (t *Table[V]) grow() {
	oldCap := len(t.tags)
	newCap := oldCap * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}

	// Extend storage in place; append reuses the allocation when it can.
	t.tags = append(t.tags, make([]uint64, newCap-oldCap)...)
	t.vals = append(t.vals, make([]V, newCap-oldCap)...)
	t.threshold = newCap - newCap/3

	if oldCap == 0 || t.count == 0 {
		return
	}

	oldMask := uint64(oldCap - 1)
	newMask := uint64(newCap - 1)
	half := uint64(oldCap)

	// Step 1: find the first true run boundary. At least one empty slot exists
	// (count <= threshold < oldCap), so this stops before a full lap.
	b := uint64(0)
	for t.tags[b] != Empty && (b+half-(t.tags[b]&oldMask))&oldMask != 0 {
		b++
	}

	// Step 2: sweep oldCap read positions starting at the boundary.
	var (
		inRun    bool
		runStart uint64 // Unwrapped index where the current run begins
		lowW     uint64 // Next free slot in the low output sub-run
		highW    uint64 // Next free slot in the high output sub-run
	)
	var zero V

	for j := uint64(0); j < half; j++ {
		u := b + j          // Unwrapped read position
		src := u & oldMask  // Physical source slot
		tag := t.tags[src]

		if tag == Empty {
			inRun = false
			continue
		}
		if !inRun {
			inRun = true
			runStart = u
			lowW = u
			highW = u + half
		}

		dist := (src + half - (tag & oldMask)) & oldMask
		idealU := u - dist // Unwrapped old ideal slot (>= runStart)

		// Sub-run selection: offset of the new ideal slot from the run start.
		var w uint64
		if ((tag&newMask)-runStart)&newMask < half {
			w = idealU
			if lowW > w {
				w = lowW
			}
			lowW = w + 1
		} else {
			w = idealU + half
			if highW > w {
				w = highW
			}
			highW = w + 1
		}

		// Step 3: move unless the entry already sits at its destination.
		dst := w & newMask
		if dst != src {
			t.tags[dst] = tag
			t.vals[dst] = t.vals[src]
			t.tags[src] = Empty
			t.vals[src] = zero
		}
	}
}
