// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ HASH SET
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Hash Set Front-End
//
// Description:
//   Set front-end over the core engine: structurally the unique-key map with value
//   unified with key. Same sentinel substitution and equality-scan resolution; the
//   engine slot stores the element itself.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package setidx

import (
	"errors"

	"main/rhtable"
)

// ErrDuplicateItem is returned by Add when an equal element is already present.
var ErrDuplicateItem = errors.New("setidx: duplicate item")

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TYPE DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Set stores unique elements, with hashing and equality injected at
// construction.
//
// SAFETY REQUIREMENTS:
//   - equal(a, b) implies hash(a) == hash(b)
//   - Single-threaded; see the engine contract
type Set[K any] struct {
	core  *rhtable.Table[K]
	hash  func(K) uint64
	equal func(K, K) bool
}

// New returns a set with the given capacity hint and element capabilities.
func New[K any](capacity int, hash func(K) uint64, equal func(K, K) bool) *Set[K] {
	return &Set[K]{
		core:  rhtable.New[K](capacity),
		hash:  hash,
		equal: equal,
	}
}

// remap substitutes the reserved empty sentinel, same fixed alternate and same
// documented bucket bias as the map front-end.
//
//go:inline
func remap(h uint64) uint64 {
	if h == rhtable.Empty {
		return 0x9E3779B185EBCA87
	}
	return h
}

// findSlot resolves an element to its engine slot via the contiguous
// matching-tag run.
func (s *Set[K]) findSlot(item K) (int, bool) {
	h := remap(s.hash(item))
	i, ok := s.core.Lookup(h)
	if !ok {
		return -1, false
	}
	for s.core.Tag(i) == h {
		if s.equal(s.core.Value(i), item) {
			return i, true
		}
		i = s.core.Next(i)
	}
	return -1, false
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CORE OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Add inserts item, failing with ErrDuplicateItem when an equal element is
// already present.
func (s *Set[K]) Add(item K) error {
	if _, exists := s.findSlot(item); exists {
		return ErrDuplicateItem
	}
	s.core.Insert(remap(s.hash(item)), item)
	return nil
}

// TryAdd inserts item and reports success instead of failing on a duplicate.
func (s *Set[K]) TryAdd(item K) bool {
	return s.Add(item) == nil
}

// Contains reports whether an equal element is present.
func (s *Set[K]) Contains(item K) bool {
	_, ok := s.findSlot(item)
	return ok
}

// TryGet returns the stored element equal to item. Useful for interning:
// the returned value is the set's canonical instance, not the probe argument.
func (s *Set[K]) TryGet(item K) (K, bool) {
	if i, ok := s.findSlot(item); ok {
		return s.core.Value(i), true
	}
	var zero K
	return zero, false
}

// Remove deletes the element equal to item and reports whether one existed.
func (s *Set[K]) Remove(item K) bool {
	i, ok := s.findSlot(item)
	if !ok {
		return false
	}
	return s.core.RemoveAt(i)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// LIFECYCLE & INTROSPECTION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Len returns the number of stored elements.
func (s *Set[K]) Len() int { return s.core.Len() }

// Clear resets the set to empty, preserving capacity.
func (s *Set[K]) Clear() { s.core.Clear() }

// EnsureCapacity grows until the underlying capacity is at least n.
func (s *Set[K]) EnsureCapacity(n int) { s.core.EnsureCapacity(n) }

// Validate runs the engine's structural invariant check.
func (s *Set[K]) Validate() bool { return s.core.Validate() }
