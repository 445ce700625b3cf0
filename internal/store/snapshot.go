package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const snapshotFileName = "cache.sqlite"

// ErrNoSnapshot is returned when a collection was never cached.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Cache keeps the last record list fetched for each collection so the grid
// can be browsed offline. Records are stored as the JSON the backend sent.
type Cache struct {
	Dir string
}

// Snapshot is one cached collection.
type Snapshot struct {
	Collection string           `json:"collection"`
	Server     string           `json:"server"`
	FetchedAt  time.Time        `json:"fetchedAt"`
	Count      int              `json:"count"`
	Records    []map[string]any `json:"records,omitempty"`
}

// OpenCache returns a cache rooted at the config dir.
func OpenCache() (Cache, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Cache{}, err
	}
	return Cache{Dir: dir}, nil
}

func (c Cache) Path() string {
	return filepath.Join(c.Dir, snapshotFileName)
}

func (c Cache) openSQLite(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(c.Dir) == "" {
		return nil, errors.New("cache dir is empty")
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", c.Path())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI read while a CLI invocation refreshes a snapshot.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSnapshots(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSnapshots(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			collection TEXT PRIMARY KEY,
			server TEXT NOT NULL,
			fetched_at_unixms INTEGER NOT NULL,
			record_count INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the snapshot for collection.
func (c Cache) Save(ctx context.Context, collection, server string, records []map[string]any, at time.Time) error {
	if records == nil {
		records = []map[string]any{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	db, err := c.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
		INSERT INTO snapshots(collection, server, fetched_at_unixms, record_count, json)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(collection) DO UPDATE SET
			server=excluded.server,
			fetched_at_unixms=excluded.fetched_at_unixms,
			record_count=excluded.record_count,
			json=excluded.json
	`, collection, server, at.UnixMilli(), len(records), string(b))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", collection, err)
	}
	return nil
}

// Load returns the cached snapshot for collection, or ErrNoSnapshot.
func (c Cache) Load(ctx context.Context, collection string) (Snapshot, error) {
	if _, err := os.Stat(c.Path()); errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("%s: %w", collection, ErrNoSnapshot)
	}
	db, err := c.openSQLite(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	defer db.Close()

	var (
		snap Snapshot
		ms   int64
		raw  string
	)
	err = db.QueryRowContext(ctx, `
		SELECT collection, server, fetched_at_unixms, record_count, json
		FROM snapshots WHERE collection = ?
	`, collection).Scan(&snap.Collection, &snap.Server, &ms, &snap.Count, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%s: %w", collection, ErrNoSnapshot)
	}
	if err != nil {
		return Snapshot{}, err
	}
	snap.FetchedAt = time.UnixMilli(ms).UTC()

	if err := json.Unmarshal([]byte(raw), &snap.Records); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", collection, err)
	}
	return snap, nil
}

// List describes every cached snapshot without its records.
func (c Cache) List(ctx context.Context) ([]Snapshot, error) {
	if _, err := os.Stat(c.Path()); errors.Is(err, os.ErrNotExist) {
		return []Snapshot{}, nil
	}
	db, err := c.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT collection, server, fetched_at_unixms, record_count
		FROM snapshots ORDER BY collection
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var (
			s  Snapshot
			ms int64
		)
		if err := rows.Scan(&s.Collection, &s.Server, &ms, &s.Count); err != nil {
			return nil, err
		}
		s.FetchedAt = time.UnixMilli(ms).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Clear drops cached snapshots. With no collections it drops all of them.
// It returns the number of snapshots removed.
func (c Cache) Clear(ctx context.Context, collections ...string) (int, error) {
	if _, err := os.Stat(c.Path()); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	db, err := c.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int64
	if len(collections) == 0 {
		res, err := tx.ExecContext(ctx, `DELETE FROM snapshots`)
		if err != nil {
			return 0, err
		}
		n, _ = res.RowsAffected()
	} else {
		for _, coll := range collections {
			res, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE collection = ?`, coll)
			if err != nil {
				return 0, err
			}
			k, _ := res.RowsAffected()
			n += k
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(n), nil
}
