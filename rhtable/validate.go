// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ ROBIN HOOD TABLE ENGINE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Structural Validator
//
// Description:
//   From-scratch consistency check over the whole table. Recomputes every occupant's
//   displacement and verifies the table is reconstructible by pure Robin Hood
//   insertion. Development-time and snapshot-time tool, never on the hot path.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package rhtable

// Validate recomputes all slot displacements and checks the table's structural
// invariants:
//
//   - capacity is 0 or a power of 2, and the growth threshold is in bounds
//   - the occupied-slot count matches Len
//   - at least one occupant (when non-empty) sits at its ideal slot, and no
//     more ideal-slot occupants exist than entries
//   - walking slots in index order with wraparound, an occupant's displacement
//     never exceeds its predecessor's by more than 1, and an occupant directly
//     after an empty slot has displacement 0
//
// The last rule is the Robin Hood probe/displacement invariant: any violation
// would leave an entry unreachable by Lookup's early-exit probe.
func (t *Table[V]) Validate() bool {
	capacity := len(t.tags)
	if capacity == 0 {
		return t.count == 0
	}
	if capacity&(capacity-1) != 0 {
		return false
	}
	if t.threshold < 1 || t.threshold >= capacity {
		return false
	}

	mask := uint64(capacity - 1)
	occupied := 0
	atHome := 0

	// Seed the predecessor displacement from the last slot so the i == 0 check
	// covers the wraparound edge.
	prev := int64(-1)
	if last := t.tags[capacity-1]; last != Empty {
		prev = int64((uint64(capacity-1) + mask + 1 - (last & mask)) & mask)
	}

	for i := 0; i < capacity; i++ {
		tag := t.tags[i]
		if tag == Empty {
			prev = -1
			continue
		}
		occupied++
		dist := int64((uint64(i) + mask + 1 - (tag & mask)) & mask)
		if dist == 0 {
			atHome++
		}
		if dist > prev+1 {
			return false
		}
		prev = dist
	}

	if occupied != t.count {
		return false
	}
	if t.count > 0 && atHome == 0 {
		return false
	}
	if atHome > t.count {
		return false
	}
	return true
}
