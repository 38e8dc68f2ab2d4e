// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ TABLE SNAPSHOT ADAPTER
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: SQLite Persistence
//
// Description:
//   Persists flattened tables as (seq, hash, value) rows in SQLite. Hashes are
//   stored as their two's-complement int64 image and the seq column preserves
//   the flatten ordering, so a load replays rows exactly as the snapshot emitted
//   them. Values travel as JSON text.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package snapshot

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sugawarayuuta/sonnet"

	"main/rhtable"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS table_snapshot (
	seq   INTEGER PRIMARY KEY,
	hash  INTEGER NOT NULL,
	value TEXT NOT NULL
);`

// OpenStore opens (or creates) a snapshot database at path and applies the
// schema. The caller owns the returned handle.
func OpenStore(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: database connection failed: %w", err)
	}

	// Bulk-write tuning; a snapshot that loses a race just gets retaken.
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	if _, err := db.Exec(snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: create schema: %w", err)
	}
	return db, nil
}

// SaveDB flattens the table and replaces the snapshot rows in a single
// transaction.
func SaveDB[V any](db *sql.DB, t *rhtable.Table[V]) error {
	hashes, vals, err := Flatten(t)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("snapshot: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM table_snapshot"); err != nil {
		return fmt.Errorf("snapshot: clear rows: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO table_snapshot (seq, hash, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("snapshot: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, h := range hashes {
		blob, err := sonnet.Marshal(vals[i])
		if err != nil {
			return fmt.Errorf("snapshot: encode value %d: %w", i, err)
		}
		if _, err := stmt.Exec(i, int64(h), string(blob)); err != nil {
			return fmt.Errorf("snapshot: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("snapshot: commit: %w", err)
	}
	return nil
}

// LoadDB reads the snapshot rows in seq order and restores them into the
// table, replacing its contents.
func LoadDB[V any](db *sql.DB, t *rhtable.Table[V]) error {
	rows, err := db.Query("SELECT hash, value FROM table_snapshot ORDER BY seq")
	if err != nil {
		return fmt.Errorf("snapshot: query rows: %w", err)
	}
	defer rows.Close()

	var (
		hashes []uint64
		vals   []V
	)
	for rows.Next() {
		var (
			h    int64
			blob string
		)
		if err := rows.Scan(&h, &blob); err != nil {
			return fmt.Errorf("snapshot: scan row: %w", err)
		}
		var v V
		if err := sonnet.Unmarshal([]byte(blob), &v); err != nil {
			return fmt.Errorf("snapshot: decode value: %w", err)
		}
		hashes = append(hashes, uint64(h))
		vals = append(vals, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("snapshot: row iteration: %w", err)
	}

	return Restore(t, hashes, vals)
}
