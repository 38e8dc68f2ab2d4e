// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ TABLE SNAPSHOT ADAPTER
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Flatten / Restore Core
//
// Description:
//   Flattens a table into two parallel sequences sorted by hash for deterministic,
//   diff-friendly output, and rebuilds a table from such sequences. Talks to the
//   engine exclusively through Validate, Clear and Insert; probe layout is the
//   engine's business, not the snapshot's.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package snapshot

import (
	"errors"
	"sort"

	"main/rhtable"
)

var (
	// ErrInvalidTable reports a failed structural validation before a flatten
	// or after a restore.
	ErrInvalidTable = errors.New("snapshot: table failed validation")

	// ErrLengthMismatch reports parallel sequences of different lengths.
	ErrLengthMismatch = errors.New("snapshot: hash/value sequence length mismatch")
)

// Flatten validates the table and emits its occupied (hash, value) pairs as
// two parallel slices sorted by hash. The sort is stable over slot order, so
// duplicate hashes keep their probe order and two tables with identical
// content flatten identically.
func Flatten[V any](t *rhtable.Table[V]) ([]uint64, []V, error) {
	if !t.Validate() {
		return nil, nil, ErrInvalidTable
	}

	type pair struct {
		hash uint64
		val  V
	}
	pairs := make([]pair, 0, t.Len())
	for i := 0; i < t.Cap(); i++ {
		if t.Tag(i) != rhtable.Empty {
			pairs = append(pairs, pair{hash: t.Tag(i), val: t.Value(i)})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].hash < pairs[j].hash })

	hashes := make([]uint64, len(pairs))
	vals := make([]V, len(pairs))
	for i, p := range pairs {
		hashes[i] = p.hash
		vals[i] = p.val
	}
	return hashes, vals, nil
}

// Restore clears the table and re-adds the pairs in the order supplied.
// Empty-sentinel hashes in the input are skipped, never inserted. The rebuilt
// table is validated before returning.
func Restore[V any](t *rhtable.Table[V], hashes []uint64, vals []V) error {
	if len(hashes) != len(vals) {
		return ErrLengthMismatch
	}
	t.Clear()
	t.EnsureCapacity(len(hashes) + len(hashes)/2)
	for i, h := range hashes {
		if h == rhtable.Empty {
			continue
		}
		t.Insert(h, vals[i])
	}
	if !t.Validate() {
		return ErrInvalidTable
	}
	return nil
}
