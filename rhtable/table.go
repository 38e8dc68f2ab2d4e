// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ ROBIN HOOD TABLE ENGINE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Core Table Implementation
//
// Description:
//   Growable open-addressing hash table using Robin Hood hashing with backward-shift
//   deletion. Owns two parallel arrays (hash tags and values), probes linearly with
//   on-the-fly displacement recomputation, and never leaves a tombstone behind.
//
// Design Principles:
//   - Power-of-2 sizing for mask-based modulo
//   - Parallel arrays for tags and values optimize cache usage
//   - Zero sentinel value enables efficient empty slot detection
//   - DIB recomputed from the tag, never stored
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package rhtable

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TYPE DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Empty is the reserved tag value marking an unoccupied slot. No live entry may
// carry it; front-ends remap any natural hash of 0 before reaching the engine.
const Empty uint64 = 0

// minCapacity is the smallest non-zero table size. Below 4 slots the growth
// threshold (cap - cap/3) would equal the capacity and insertion could fill
// the table completely, breaking probe termination.
const minCapacity = 4

// Table implements a growable Robin Hood hash table over a generic value type.
// Tags and values live in same-length parallel arrays; tags[i] == Empty means
// slot i is unoccupied.
//
// MEMORY LAYOUT:
//
//	Two flat slices plus two counters. No per-slot metadata: the displacement
//	of an occupant is recomputed from its tag and the capacity mask, so a slot
//	costs exactly one tag word plus one value.
//
// SAFETY REQUIREMENTS:
//   - Single-threaded: all mutating calls require exclusive access
//   - Any slot index obtained from Lookup or Insert is invalidated by the next
//     structural mutation (Insert may relocate via growth, RemoveAt shifts)
type Table[V any] struct {
	tags      []uint64 // Tag array (Empty = unoccupied)
	vals      []V      // Value array (parallel to tags)
	count     int      // Occupied slot count
	threshold int      // Growth trigger: cap - cap/3
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// UTILITY FUNCTIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// nextPow2 rounds n up to the nearest power of 2, clamped below at minCapacity.
//
//go:inline
func nextPow2(n int) int {
	s := minCapacity
	for s < n {
		s <<= 1
	}
	return s
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CONSTRUCTOR
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// New creates an empty table with the given initial capacity rounded up to a
// power of 2 (minimum 4). A capacity of 0 allocates nothing; the first insert
// grows the table on demand.
func New[V any](capacity int) *Table[V] {
	t := &Table[V]{}
	if capacity > 0 {
		size := nextPow2(capacity)
		t.tags = make([]uint64, size)
		t.vals = make([]V, size)
		t.threshold = size - size/3
	}
	return t
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ACCESSORS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Len returns the number of occupied slots.
//
//go:inline
func (t *Table[V]) Len() int { return t.count }

// Cap returns the current slot count of the backing arrays (0 or a power of 2).
//
//go:inline
func (t *Table[V]) Cap() int { return len(t.tags) }

// Threshold returns the occupancy at which the next insertion triggers growth.
//
//go:inline
func (t *Table[V]) Threshold() int { return t.threshold }

// Tag returns the tag stored at slot i (Empty if unoccupied).
//
//go:inline
func (t *Table[V]) Tag(i int) uint64 { return t.tags[i] }

// Value returns the value stored at slot i. Meaningless for empty slots.
//
//go:inline
func (t *Table[V]) Value(i int) V { return t.vals[i] }

// SetValue overwrites the value at an occupied slot without touching its tag.
// Used by front-ends that update in place after resolving a key.
//
//go:inline
func (t *Table[V]) SetValue(i int, v V) { t.vals[i] = v }

// Next returns the slot index following i in probe order, with wraparound.
//
//go:inline
func (t *Table[V]) Next(i int) int { return (i + 1) & (len(t.tags) - 1) }

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CORE OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Lookup probes for a tag and returns the first matching slot in probe order.
// With duplicate tags present (multi-value front-end), later duplicates sit
// contiguously after the returned index; callers scan forward with Next while
// Tag matches.
//
// EARLY TERMINATION:
//
//	If an occupant is found whose own displacement is smaller than the probe's
//	running distance, the target tag cannot exist: it would have displaced this
//	richer occupant during insertion. The probe stops without walking the run.
//
// SAFETY REQUIREMENTS:
//   - hash must not be Empty (0)
//
//go:norace
//go:nosplit
func (t *Table[V]) Lookup(hash uint64) (int, bool) {
	if len(t.tags) == 0 {
		return -1, false
	}
	mask := uint64(len(t.tags) - 1)
	i := hash & mask
	dist := uint64(0) // Probe's running distance from its ideal slot

	for {
		tag := t.tags[i]

		// Case 1: Empty slot - tag not present
		if tag == Empty {
			return -1, false
		}

		// Case 2: Tag found - first match in probe order
		if tag == hash {
			return int(i), true
		}

		// Case 3: Robin Hood early exit on a richer occupant
		if (i+mask+1-(tag&mask))&mask < dist {
			return -1, false
		}

		i = (i + 1) & mask
		dist++
	}
}

// Insert places (hash, value) and returns the index of the first slot the new
// entry occupied: the empty slot it took, or the slot it won by its first
// displacement swap. The engine never de-duplicates; equal tags end up
// contiguous in probe order by construction.
//
// ROBIN HOOD RULE:
//
//	When the carried entry meets an occupant strictly closer to its ideal slot
//	than the carry distance, they swap: the carried entry takes the slot and
//	the former occupant continues probing with its own (smaller) distance.
//
// ORDERED TIE-BREAK:
//
//	On equal distance (same ideal slot) the swap happens iff the occupant's tag
//	is greater than the carried tag. Each run therefore stays sorted by
//	(ideal slot, tag), which is what pins equal tags into one contiguous span:
//	without the tie-break, a colliding tag sharing the ideal slot could end up
//	interleaved inside an equal-tag run and break forward run scans. Equal tags
//	never swap with each other, so duplicates keep insertion order. Growth and
//	backward-shift deletion both preserve relative run order, so the property
//	survives every mutation.
//
// SAFETY REQUIREMENTS:
//   - hash must not be Empty (0)
//
//go:norace
//go:nosplit
func (t *Table[V]) Insert(hash uint64, value V) int {
	if t.count+1 > t.threshold {
		t.grow()
	}
	mask := uint64(len(t.tags) - 1)
	i := hash & mask
	dist := uint64(0)
	first := -1 // First slot the incoming entry itself landed in

	for {
		tag := t.tags[i]

		// Case 1: Empty slot found - place the carried entry
		if tag == Empty {
			t.tags[i], t.vals[i] = hash, value
			t.count++
			if first < 0 {
				first = int(i)
			}
			return first
		}

		// Case 2: Displacement check against the occupant's own distance
		kDist := (i + mask + 1 - (tag & mask)) & mask
		if kDist < dist || (kDist == dist && tag > hash) {
			hash, t.tags[i] = tag, hash
			value, t.vals[i] = t.vals[i], value
			if first < 0 {
				first = int(i)
			}
			dist = kDist // Carried entry continues with the vacated distance
		}

		i = (i + 1) & mask
		dist++
	}
}

// RemoveAt deletes the entry at slot i using backward-shift deletion and
// reports whether a removal happened (false when the slot is already empty).
//
// BACKWARD SHIFT:
//
//	Successors are copied one slot backward while they remain displaced
//	(distance > 0). The walk stops at an empty slot, at an occupant already in
//	its ideal slot, or after a full wrap. The final vacated slot becomes Empty.
//	This keeps the table identical to one built by pure Robin Hood insertion,
//	with no tombstones for later probes to skip.
//
//go:norace
//go:nosplit
func (t *Table[V]) RemoveAt(i int) bool {
	if len(t.tags) == 0 || t.tags[i] == Empty {
		return false
	}
	mask := uint64(len(t.tags) - 1)
	hole := uint64(i) & mask
	var zero V

	// At most cap-1 shifts: a full wrap must stop before revisiting i.
	for n := 0; n < len(t.tags)-1; n++ {
		next := (hole + 1) & mask
		tag := t.tags[next]
		if tag == Empty {
			break
		}
		if (next+mask+1-(tag&mask))&mask == 0 {
			break // Occupant at its ideal slot must not move
		}
		t.tags[hole] = tag
		t.vals[hole] = t.vals[next]
		hole = next
	}

	t.tags[hole] = Empty
	t.vals[hole] = zero
	t.count--
	return true
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// LIFECYCLE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Clear resets every slot to Empty and the count to 0, preserving capacity.
// The table is reusable indefinitely; there is no destroy step.
func (t *Table[V]) Clear() {
	clear(t.tags)
	clear(t.vals)
	t.count = 0
}

// EnsureCapacity grows (doubling, via the sweep relocation) until the capacity
// is at least n. It never shrinks.
func (t *Table[V]) EnsureCapacity(n int) {
	for len(t.tags) < n {
		t.grow()
	}
}
