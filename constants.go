package main

// constants.go — driver workload tunables and snapshot locations.
//
// All runtime logic lives in main.go; everything here must be compile-time
// resolvable.

// ──────────────────────────── Workload Sizing ──────────────────────────────

const (
	// seedRecords is the number of synthetic accounts the driver ingests.
	// Large enough to force several growth sweeps from a small initial table.
	seedRecords = 100_000

	// initialCapacity deliberately undersizes every index so the run
	// exercises threshold-triggered growth rather than a pre-sized table.
	initialCapacity = 64

	// groupCount is the number of grouping buckets for the multi-value
	// index. Small on purpose: every bucket collects a long duplicate run.
	groupCount = 512
)

// ─────────────────────────── Snapshot Outputs ──────────────────────────────

const (
	// snapshotDBPath is where the SQLite snapshot lands.
	snapshotDBPath = "table_snapshot.db"

	// snapshotJSONPath is where the JSON snapshot lands.
	snapshotJSONPath = "table_snapshot.json"
)
