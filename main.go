// ════════════════════════════════════════════════════════════════════════════════════════════════
// Robin Hood Hash Table Engine - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Main Entry Point & Driver Orchestration
//
// Description:
//   Exercises the full index stack end to end with a synthetic account workload:
//   Ingest → Validate & Snapshot → Reload & Verify
//
// Architecture:
//   - Phase 1: Synthetic ingest through the set, map and multi-value front-ends
//   - Phase 2: Structural validation and persistence (SQLite + JSON)
//   - Phase 3: Cold reload from both stores with content verification
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"main/mapidx"
	"main/multidx"
	"main/rhtable"
	"main/setidx"
	"main/snapshot"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// MAIN ORCHESTRATION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func main() {
	// PHASE 1: Synthetic ingest across all front-ends
	dropError("INGEST", nil)

	interned := setidx.New[string](initialCapacity, mapidx.HashString, mapidx.EqualString)
	accounts := mapidx.New[string, uint64](initialCapacity, mapidx.HashString, mapidx.EqualString)
	groups := multidx.New[uint64](initialCapacity)
	records := rhtable.New[uint64](initialCapacity)

	r := rand.New(rand.NewSource(1337))
	for id := uint64(0); id < seedRecords; id++ {
		addr := makeAddress(r)

		// Interning: a repeated address keeps its first canonical copy.
		if !interned.TryAdd(addr) {
			continue
		}
		if err := accounts.Add(addr, id); err != nil {
			dropError("INGEST_MAP", err)
			os.Exit(1)
		}

		// Group accounts into a deliberately small bucket space so every
		// bucket carries a long duplicate run.
		bucket := mapidx.HashString(addr)%groupCount | 1<<63
		if err := groups.Add(bucket, id, true); err != nil {
			dropError("INGEST_GROUP", err)
			os.Exit(1)
		}

		records.Insert(recordTag(id), id)
	}

	dropMessage("LOADED", strconv.Itoa(accounts.Len())+" accounts, "+
		strconv.Itoa(groups.Len())+" group entries, "+
		strconv.Itoa(records.Cap())+" record slots")

	// Walk one bucket to confirm duplicate runs stay scannable after growth.
	probe := uint64(7)%groupCount | 1<<63
	cur := groups.Values(probe)
	walked := 0
	for _, ok := cur.Next(); ok; _, ok = cur.Next() {
		walked++
	}
	dropMessage("GROUP_WALK", "bucket 7 holds "+strconv.Itoa(walked)+" accounts")

	// Churn: retire a slice of accounts through every front-end, forcing
	// backward-shift deletion inside grown tables before the snapshot.
	retired := 0
	r = rand.New(rand.NewSource(1337))
	for id := uint64(0); id < seedRecords; id++ {
		addr := makeAddress(r)
		if id%10 != 0 {
			continue
		}
		if !accounts.Remove(addr) {
			continue
		}
		interned.Remove(addr)
		if i, ok := records.Lookup(recordTag(id)); ok {
			records.RemoveAt(i)
		}
		retired++
	}
	dropped := groups.RemoveAll(uint64(13)%groupCount | 1<<63)
	dropMessage("CHURN", strconv.Itoa(retired)+" accounts retired, bucket 13 dropped "+
		strconv.Itoa(dropped)+" entries")

	// PHASE 2: Structural validation and persistence
	if !interned.Validate() || !accounts.Validate() || !groups.Validate() || !records.Validate() {
		dropError("VALIDATE", nil)
		os.Exit(1)
	}
	dropError("VALIDATED", nil)

	db, err := snapshot.OpenStore(snapshotDBPath)
	if err != nil {
		dropError("SNAPSHOT_OPEN", err)
		os.Exit(1)
	}
	if err := snapshot.SaveDB(db, records); err != nil {
		dropError("SNAPSHOT_SAVE", err)
		os.Exit(1)
	}

	blob, err := snapshot.MarshalJSON(records)
	if err != nil {
		dropError("SNAPSHOT_JSON", err)
		os.Exit(1)
	}
	if err := os.WriteFile(snapshotJSONPath, blob, 0o644); err != nil {
		dropError("SNAPSHOT_WRITE", err)
		os.Exit(1)
	}
	dropMessage("PERSISTED", strconv.Itoa(records.Len())+" records → "+
		snapshotDBPath+", "+strconv.Itoa(len(blob))+"B JSON")

	// PHASE 3: Cold reload from both stores with content verification
	fromDB := rhtable.New[uint64](0)
	if err := snapshot.LoadDB(db, fromDB); err != nil {
		dropError("RELOAD_DB", err)
		os.Exit(1)
	}
	db.Close()

	fromJSON := rhtable.New[uint64](0)
	if err := snapshot.UnmarshalJSON(fromJSON, blob); err != nil {
		dropError("RELOAD_JSON", err)
		os.Exit(1)
	}

	if err := verifyReload(records, fromDB); err != nil {
		dropError("VERIFY_DB", err)
		os.Exit(1)
	}
	if err := verifyReload(records, fromJSON); err != nil {
		dropError("VERIFY_JSON", err)
		os.Exit(1)
	}

	dropMessage("DONE", strconv.Itoa(fromDB.Len())+" records verified across both stores")
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// WORKLOAD HELPERS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const hexDigits = "0123456789abcdef"

// makeAddress builds a 0x-prefixed 40-digit hex account string from the
// driver's seeded source.
func makeAddress(r *rand.Rand) string {
	var buf [42]byte
	buf[0], buf[1] = '0', 'x'
	for i := 2; i < len(buf); i += 8 {
		v := r.Uint32()
		for j := 0; j < 8; j++ {
			buf[i+j] = hexDigits[v&0xF]
			v >>= 4
		}
	}
	return string(buf[:])
}

// recordTag derives a non-sentinel probe tag for a record id. The top bit is
// forced so the tag can never collide with the empty sentinel.
func recordTag(id uint64) uint64 {
	return mapidx.HashUint64(id) | 1<<63
}

// verifyReload checks that every record in want survives in got with its
// value intact.
func verifyReload(want, got *rhtable.Table[uint64]) error {
	if got.Len() != want.Len() {
		return fmt.Errorf("record count %d, want %d", got.Len(), want.Len())
	}
	for i := 0; i < want.Cap(); i++ {
		tag := want.Tag(i)
		if tag == rhtable.Empty {
			continue
		}
		j, ok := got.Lookup(tag)
		if !ok || got.Value(j) != want.Value(i) {
			return fmt.Errorf("record %#x lost or corrupted", tag)
		}
	}
	return nil
}
