// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ UNIQUE-KEY HASH MAP
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Unique-Key Map Front-End
//
// Description:
//   Associative map over the core engine. Keys are opaque to the engine: the map
//   hashes them with a caller-injected function, remaps the reserved empty sentinel,
//   and resolves full-hash collisions by scanning the contiguous matching-tag run
//   with a caller-injected equality test. The engine stores boxed key/value pairs.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package mapidx

import (
	"errors"

	"main/rhtable"
)

// Error kinds. Absence on query paths is reported by boolean results, never by
// errors; these two cover the only caller-input failures the map can produce.
var (
	ErrDuplicateKey = errors.New("mapidx: duplicate key")
	ErrKeyNotFound  = errors.New("mapidx: key not found")
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TYPE DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// entry boxes a key with its value inside an engine slot.
type entry[K, V any] struct {
	key K
	val V
}

// Map is a unique-key associative map generic over key and value types, with
// hashing and equality injected at construction.
//
// SAFETY REQUIREMENTS:
//   - equal(a, b) implies hash(a) == hash(b)
//   - Single-threaded; see the engine contract
type Map[K, V any] struct {
	core  *rhtable.Table[entry[K, V]]
	hash  func(K) uint64
	equal func(K, K) bool
}

// New returns a map with the given capacity hint and key capabilities.
func New[K, V any](capacity int, hash func(K) uint64, equal func(K, K) bool) *Map[K, V] {
	return &Map[K, V]{
		core:  rhtable.New[entry[K, V]](capacity),
		hash:  hash,
		equal: equal,
	}
}

// remapHash substitutes the reserved empty sentinel with a fixed alternate so
// no live key ever carries tag 0.
//
// KNOWN BIAS:
//
//	A key naturally hashing to 0 and a key naturally hashing to the substitute
//	collide in bucket placement exactly like a true hash collision. The
//	equality scan keeps them correct; the substitute's bucket is slightly
//	over-loaded. Preserved for layout compatibility.
//
//go:inline
func remapHash(h uint64) uint64 {
	if h == rhtable.Empty {
		return prime64_1
	}
	return h
}

// findSlot resolves a key to its engine slot: hash, remap, then walk the
// contiguous run of matching tags applying the equality test.
func (m *Map[K, V]) findSlot(key K) (int, bool) {
	h := remapHash(m.hash(key))
	i, ok := m.core.Lookup(h)
	if !ok {
		return -1, false
	}
	for m.core.Tag(i) == h {
		if m.equal(m.core.Value(i).key, key) {
			return i, true
		}
		i = m.core.Next(i)
	}
	return -1, false
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CORE OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Add inserts (key, value), failing with ErrDuplicateKey when an equal key is
// already present. Hash collisions without key equality coexist in the run.
func (m *Map[K, V]) Add(key K, value V) error {
	if _, exists := m.findSlot(key); exists {
		return ErrDuplicateKey
	}
	m.core.Insert(remapHash(m.hash(key)), entry[K, V]{key: key, val: value})
	return nil
}

// TryAdd inserts (key, value) and reports success instead of failing on a
// duplicate.
func (m *Map[K, V]) TryAdd(key K, value V) bool {
	return m.Add(key, value) == nil
}

// TryGet returns the value stored under key, reporting absence via the bool.
func (m *Map[K, V]) TryGet(key K) (V, bool) {
	if i, ok := m.findSlot(key); ok {
		return m.core.Value(i).val, true
	}
	var zero V
	return zero, false
}

// Get returns the value stored under key, failing with ErrKeyNotFound when
// absent. This is the indexer-style accessor.
func (m *Map[K, V]) Get(key K) (V, error) {
	if i, ok := m.findSlot(key); ok {
		return m.core.Value(i).val, nil
	}
	var zero V
	return zero, ErrKeyNotFound
}

// Set overwrites the value of an existing key in place, or inserts the pair
// when the key is absent.
func (m *Map[K, V]) Set(key K, value V) {
	if i, ok := m.findSlot(key); ok {
		m.core.SetValue(i, entry[K, V]{key: key, val: value})
		return
	}
	m.core.Insert(remapHash(m.hash(key)), entry[K, V]{key: key, val: value})
}

// Remove deletes the entry stored under key and reports whether one existed.
func (m *Map[K, V]) Remove(key K) bool {
	i, ok := m.findSlot(key)
	if !ok {
		return false
	}
	return m.core.RemoveAt(i)
}

// Contains reports whether an equal key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.findSlot(key)
	return ok
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// LIFECYCLE & INTROSPECTION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Len returns the number of stored keys.
func (m *Map[K, V]) Len() int { return m.core.Len() }

// Clear resets the map to empty, preserving capacity.
func (m *Map[K, V]) Clear() { m.core.Clear() }

// EnsureCapacity grows until the underlying capacity is at least n.
func (m *Map[K, V]) EnsureCapacity(n int) { m.core.EnsureCapacity(n) }

// Validate runs the engine's structural invariant check.
func (m *Map[K, V]) Validate() bool { return m.core.Validate() }
