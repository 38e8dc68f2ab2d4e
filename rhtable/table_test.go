// Package rhtable provides correctness tests for the growable Robin Hood
// table engine. These tests validate probe behavior under collision and
// wraparound, displacement bookkeeping, backward-shift deletion, and the
// growth threshold contract.
package rhtable

import (
	"testing"
)

// -----------------------------------------------------------------------------
// ░░ Constructor and Capacity Semantics ░░
// -----------------------------------------------------------------------------

func TestNewTable(t *testing.T) {
	tbl := New[int](8)
	if tbl.Cap() != 8 {
		t.Fatalf("Cap() = %d, want 8", tbl.Cap())
	}
	if tbl.Threshold() != 6 {
		t.Fatalf("Threshold() = %d, want 6 (8 - 8/3)", tbl.Threshold())
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tbl.Len())
	}
	if !tbl.Validate() {
		t.Fatal("fresh table failed Validate")
	}
}

func TestNewTableRounding(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 0}, {1, 4}, {3, 4}, {4, 4}, {5, 8}, {8, 8}, {9, 16}, {1000, 1024},
	}
	for _, c := range cases {
		if got := New[int](c.in).Cap(); got != c.want {
			t.Fatalf("New(%d).Cap() = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestZeroCapacityTable(t *testing.T) {
	tbl := New[int](0)
	if _, ok := tbl.Lookup(42); ok {
		t.Fatal("Lookup on zero-capacity table should miss")
	}
	if !tbl.Validate() {
		t.Fatal("zero-capacity table failed Validate")
	}
	tbl.Insert(42, 1)
	if tbl.Cap() != 4 {
		t.Fatalf("first insert should grow to 4, got cap %d", tbl.Cap())
	}
	if i, ok := tbl.Lookup(42); !ok || tbl.Value(i) != 1 {
		t.Fatal("entry lost after on-demand growth")
	}
}

// -----------------------------------------------------------------------------
// ░░ Basic Insert / Lookup Semantics ░░
// -----------------------------------------------------------------------------

func TestInsertAndLookup(t *testing.T) {
	tbl := New[uint64](64)
	for i := uint64(1); i <= 40; i++ {
		tbl.Insert(i, i*10)
	}
	if tbl.Len() != 40 {
		t.Fatalf("Len() = %d, want 40", tbl.Len())
	}
	for i := uint64(1); i <= 40; i++ {
		j, ok := tbl.Lookup(i)
		if !ok || tbl.Value(j) != i*10 {
			t.Fatalf("Lookup(%d) slot=%d ok=%v; want value %d", i, j, ok, i*10)
		}
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed after inserts")
	}
}

func TestLookupMiss(t *testing.T) {
	tbl := New[int](8)
	tbl.Insert(1, 100)
	if _, ok := tbl.Lookup(99); ok {
		t.Fatal("Lookup(99) should miss")
	}
}

// TestLookupEarlyExit forces the miss probe to land on an occupant whose own
// displacement is below the probe distance, exercising the Robin Hood bound.
func TestLookupEarlyExit(t *testing.T) {
	tbl := New[int](8)
	// Ideal slot 1 three times: slots 1,2,3 with distances 0,1,2.
	tbl.Insert(1, 0)
	tbl.Insert(9, 0)
	tbl.Insert(17, 0)
	// Slot 4 occupant at its ideal (distance 0).
	tbl.Insert(4, 0)
	// 25 probes 1,2,3 then hits slot 4: occupant distance 0 < probe distance 3.
	if _, ok := tbl.Lookup(25); ok {
		t.Fatal("expected early-exit miss through occupied run")
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed")
	}
}

// -----------------------------------------------------------------------------
// ░░ Displacement & First-Touched Slot ░░
// -----------------------------------------------------------------------------

func TestInsertReturnsIdealSlotWhenFree(t *testing.T) {
	tbl := New[int](8)
	if got := tbl.Insert(5, 1); got != 5 {
		t.Fatalf("Insert(5) = slot %d, want 5", got)
	}
}

// TestInsertReturnsSwapSlot verifies the returned index is where the incoming
// entry itself landed, not where the displaced occupant ended up.
func TestInsertReturnsSwapSlot(t *testing.T) {
	tbl := New[int](8)
	tbl.Insert(1, 10) // slot 1
	tbl.Insert(9, 20) // slot 2, distance 1
	// 2 probes slot 2 with distance 0... occupant distance 1 is not smaller,
	// continues to slot 3 with distance 1 vs occupant? slot 3 empty.
	if got := tbl.Insert(2, 30); got != 3 {
		t.Fatalf("Insert(2) = slot %d, want 3", got)
	}
	// 10 (ideal 2) probes: slot 2 occupant 9 d1 vs d0: no; slot 3 occupant 2
	// d1 vs d1: no; slot 4 empty.
	tbl.Insert(10, 40)
	// 17 (ideal 1): slot 1 occupant d0 vs d0 no; slot 2 occupant 9 d1 vs d1 no;
	// slot 3 occupant 2 d1 < d2: swap here.
	if got := tbl.Insert(17, 50); got != 3 {
		t.Fatalf("Insert(17) = slot %d, want 3 (first displacement)", got)
	}
	for _, c := range []struct {
		hash uint64
		want int
	}{{1, 10}, {9, 20}, {2, 30}, {10, 40}, {17, 50}} {
		j, ok := tbl.Lookup(c.hash)
		if !ok || tbl.Value(j) != c.want {
			t.Fatalf("Lookup(%d) = %v, want value %d", c.hash, ok, c.want)
		}
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed after displacement chain")
	}
}

// -----------------------------------------------------------------------------
// ░░ Duplicate Tags (Multi-Value Contract) ░░
// -----------------------------------------------------------------------------

// TestDuplicateTagsContiguous inserts the same tag repeatedly among colliders
// and checks the duplicates form one contiguous span starting at the Lookup
// index, in insertion order.
func TestDuplicateTagsContiguous(t *testing.T) {
	tbl := New[int](16)
	tbl.Insert(3, 100)
	tbl.Insert(19, 200) // same ideal slot as 3
	tbl.Insert(3, 101)
	tbl.Insert(3, 102)
	tbl.Insert(35, 300) // same ideal slot again

	i, ok := tbl.Lookup(3)
	if !ok {
		t.Fatal("Lookup(3) missed")
	}
	var got []int
	for tbl.Tag(i) == 3 {
		got = append(got, tbl.Value(i))
		i = tbl.Next(i)
	}
	want := []int{100, 101, 102}
	if len(got) != len(want) {
		t.Fatalf("run of tag 3 has %d entries, want %d", len(got), len(want))
	}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("run[%d] = %d, want %d (insertion order)", k, got[k], want[k])
		}
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed with duplicate tags")
	}
}

// -----------------------------------------------------------------------------
// ░░ Backward-Shift Deletion ░░
// -----------------------------------------------------------------------------

func TestRemoveAtBasic(t *testing.T) {
	tbl := New[int](8)
	tbl.Insert(5, 50)
	i, _ := tbl.Lookup(5)
	if !tbl.RemoveAt(i) {
		t.Fatal("RemoveAt on occupied slot returned false")
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len() = %d after removal, want 0", tbl.Len())
	}
	if _, ok := tbl.Lookup(5); ok {
		t.Fatal("removed entry still found")
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed after removal")
	}
}

func TestRemoveAtEmptySlot(t *testing.T) {
	tbl := New[int](8)
	tbl.Insert(1, 1)
	if tbl.RemoveAt(5) {
		t.Fatal("RemoveAt on empty slot returned true")
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() changed by no-op removal: %d", tbl.Len())
	}
}

// TestRemoveBackwardShift removes the head of a collision run and verifies the
// displaced successors shift back one slot, keeping them reachable with no
// dead slots left behind.
func TestRemoveBackwardShift(t *testing.T) {
	tbl := New[int](8)
	tbl.Insert(1, 10)  // slot 1
	tbl.Insert(9, 20)  // slot 2
	tbl.Insert(17, 30) // slot 3
	tbl.Insert(4, 40)  // slot 4, at its ideal: must not move

	i, _ := tbl.Lookup(1)
	tbl.RemoveAt(i)

	if j, ok := tbl.Lookup(9); !ok || j != 1 || tbl.Value(j) != 20 {
		t.Fatalf("9 should shift to slot 1, got slot %d ok=%v", j, ok)
	}
	if j, ok := tbl.Lookup(17); !ok || j != 2 || tbl.Value(j) != 30 {
		t.Fatalf("17 should shift to slot 2, got slot %d ok=%v", j, ok)
	}
	if j, ok := tbl.Lookup(4); !ok || j != 4 {
		t.Fatalf("4 was at its ideal slot and must not move, got slot %d ok=%v", j, ok)
	}
	if tbl.Tag(3) != Empty {
		t.Fatalf("slot 3 should be the vacated hole, tag %d", tbl.Tag(3))
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed after backward shift")
	}
}

// TestRemoveShiftWraparound builds a run crossing the top of the table and
// removes its head, forcing the shift walk to wrap.
func TestRemoveShiftWraparound(t *testing.T) {
	tbl := New[int](8)
	tbl.Insert(7, 70)  // slot 7
	tbl.Insert(15, 80) // ideal 7 -> slot 0
	tbl.Insert(23, 90) // ideal 7 -> slot 1

	i, _ := tbl.Lookup(7)
	tbl.RemoveAt(i)

	if j, ok := tbl.Lookup(15); !ok || j != 7 {
		t.Fatalf("15 should wrap back to slot 7, got %d ok=%v", j, ok)
	}
	if j, ok := tbl.Lookup(23); !ok || j != 0 {
		t.Fatalf("23 should wrap back to slot 0, got %d ok=%v", j, ok)
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed after wrapped shift")
	}
}

// -----------------------------------------------------------------------------
// ░░ Clear & Reuse ░░
// -----------------------------------------------------------------------------

func TestClearIdempotent(t *testing.T) {
	tbl := New[int](16)
	for i := uint64(1); i <= 10; i++ {
		tbl.Insert(i, int(i))
	}
	for n := 0; n < 3; n++ {
		tbl.Clear()
		if tbl.Len() != 0 {
			t.Fatalf("Len() = %d after Clear, want 0", tbl.Len())
		}
		if tbl.Cap() != 16 {
			t.Fatalf("Clear changed capacity to %d", tbl.Cap())
		}
		if !tbl.Validate() {
			t.Fatal("Validate failed after Clear")
		}
	}
	// Table stays usable after clearing.
	tbl.Insert(99, 1)
	if _, ok := tbl.Lookup(99); !ok {
		t.Fatal("insert after Clear not found")
	}
}

// -----------------------------------------------------------------------------
// ░░ Growth Threshold Contract ░░
// -----------------------------------------------------------------------------

// TestGrowthTick pins the exact growth trigger on an 8-slot table:
// threshold = 8 - 8/3 = 6, so six inserts fit and the seventh doubles.
func TestGrowthTick(t *testing.T) {
	tbl := New[int](8)
	for i := uint64(1); i <= 6; i++ {
		tbl.Insert(i, int(i))
	}
	if tbl.Cap() != 8 {
		t.Fatalf("no growth expected at threshold: cap = %d, want 8", tbl.Cap())
	}
	tbl.Insert(7, 7)
	if tbl.Cap() != 16 {
		t.Fatalf("seventh insert should double: cap = %d, want 16", tbl.Cap())
	}
	for i := uint64(1); i <= 7; i++ {
		j, ok := tbl.Lookup(i)
		if !ok || tbl.Value(j) != int(i) {
			t.Fatalf("key %d lost across growth tick", i)
		}
	}
	if !tbl.Validate() {
		t.Fatal("Validate failed after growth tick")
	}
}

// -----------------------------------------------------------------------------
// ░░ Validator Discrimination ░░
// -----------------------------------------------------------------------------

// TestValidateCatchesCorruption hand-corrupts internal state and checks the
// validator actually rejects it, not just accepts everything.
func TestValidateCatchesCorruption(t *testing.T) {
	tbl := New[int](8)
	tbl.Insert(1, 1)
	tbl.Insert(2, 2)

	// Wrong count.
	tbl.count++
	if tbl.Validate() {
		t.Fatal("Validate accepted a wrong element count")
	}
	tbl.count--

	// Displaced entry after an empty slot: unreachable by probe.
	tbl.tags[5] = 20 // ideal slot 4, planted at 5 with empty slot 4 before it
	tbl.count++
	if tbl.Validate() {
		t.Fatal("Validate accepted an unreachable displaced entry")
	}
	tbl.tags[5] = Empty
	tbl.count--

	// Out-of-bounds threshold.
	saved := tbl.threshold
	tbl.threshold = tbl.Cap()
	if tbl.Validate() {
		t.Fatal("Validate accepted threshold == capacity")
	}
	tbl.threshold = saved

	if !tbl.Validate() {
		t.Fatal("restored table should validate")
	}
}
