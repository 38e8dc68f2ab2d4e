// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ MULTI-VALUE HASH INDEX
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Multi-Value Front-End
//
// Description:
//   Thinnest front-end over the core engine: keyed directly by a caller-supplied
//   non-zero integer hash with no further hashing, duplicate keys permitted.
//   Adds duplicate control on insertion and a lazy, restartable same-key cursor
//   that rides the engine's contiguous-duplicates guarantee.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package multidx

import (
	"errors"

	"main/rhtable"
)

// ErrDuplicateKey is returned by Add when duplicates are disallowed and the
// hash is already present.
var ErrDuplicateKey = errors.New("multidx: duplicate key")

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TYPE DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Index maps raw integer hashes to values, allowing several values per hash.
// The caller owns hash quality; the engine probes with the value as given.
//
// SAFETY REQUIREMENTS:
//   - Keys must not be 0 (reserved as the empty-slot sentinel)
//   - Single-threaded; cursors are invalidated by any mutation
type Index[V any] struct {
	core *rhtable.Table[V]
}

// New returns an index with the given initial capacity hint.
func New[V any](capacity int) *Index[V] {
	return &Index[V]{core: rhtable.New[V](capacity)}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CORE OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Add inserts (hash, value). With allowDup false the insertion fails with
// ErrDuplicateKey when the hash is already present; with allowDup true the new
// value joins the hash's contiguous run after its existing values.
func (x *Index[V]) Add(hash uint64, value V, allowDup bool) error {
	if !allowDup {
		if _, ok := x.core.Lookup(hash); ok {
			return ErrDuplicateKey
		}
	}
	x.core.Insert(hash, value)
	return nil
}

// Get returns the first value stored under hash in probe order.
func (x *Index[V]) Get(hash uint64) (V, bool) {
	if i, ok := x.core.Lookup(hash); ok {
		return x.core.Value(i), true
	}
	var zero V
	return zero, false
}

// Contains reports whether at least one value is stored under hash.
func (x *Index[V]) Contains(hash uint64) bool {
	_, ok := x.core.Lookup(hash)
	return ok
}

// Remove deletes the first value stored under hash and reports whether one
// existed.
func (x *Index[V]) Remove(hash uint64) bool {
	i, ok := x.core.Lookup(hash)
	if !ok {
		return false
	}
	return x.core.RemoveAt(i)
}

// RemoveAll deletes every value stored under hash and returns how many were
// removed. Each removal backward-shifts the rest of the run into the vacated
// slot, so the run is consumed in place from its head.
func (x *Index[V]) RemoveAll(hash uint64) int {
	n := 0
	for {
		i, ok := x.core.Lookup(hash)
		if !ok {
			return n
		}
		x.core.RemoveAt(i)
		n++
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// LIFECYCLE & INTROSPECTION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Len returns the total number of stored values (duplicates counted).
func (x *Index[V]) Len() int { return x.core.Len() }

// Clear resets the index to empty, preserving capacity.
func (x *Index[V]) Clear() { x.core.Clear() }

// EnsureCapacity grows until the underlying capacity is at least n.
func (x *Index[V]) EnsureCapacity(n int) { x.core.EnsureCapacity(n) }

// Validate runs the engine's structural invariant check.
func (x *Index[V]) Validate() bool { return x.core.Validate() }
