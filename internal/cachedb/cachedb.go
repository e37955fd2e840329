// Package cachedb persists the quick-select cache between runs. Pairs are
// partitioned per user so shared machines do not leak suggestions across
// accounts.
package cachedb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claimdeck/claimdeck/internal/cache"
)

const schema = `
CREATE TABLE IF NOT EXISTS quick_select (
	user_id   TEXT NOT NULL,
	customer  TEXT NOT NULL,
	work_item TEXT NOT NULL,
	last_used TEXT NOT NULL,
	PRIMARY KEY (user_id, customer, work_item)
);
CREATE TABLE IF NOT EXISTS refresh_marks (
	user_id      TEXT PRIMARY KEY,
	refreshed_at TEXT NOT NULL
);
`

// DB wraps the sqlite handle for the cache file.
type DB struct {
	conn *sql.DB
}

// Open creates or opens the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close releases the database handle.
func (d *DB) Close() error { return d.conn.Close() }

// Load returns the stored pairs for a user, most recent first.
func (d *DB) Load(userID string) ([]cache.Entry, error) {
	rows, err := d.conn.Query(
		`SELECT customer, work_item, last_used FROM quick_select
		 WHERE user_id = ? ORDER BY last_used DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}
	defer rows.Close()

	var out []cache.Entry
	for rows.Next() {
		var e cache.Entry
		var lastUsed string
		if err := rows.Scan(&e.Customer, &e.WorkItem, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, lastUsed)
		if err != nil {
			continue // skip rows written by a broken run
		}
		e.LastUsed = t
		out = append(out, e)
	}
	return out, rows.Err()
}

// Save replaces the stored pairs for a user with the given set.
func (d *DB) Save(userID string, entries []cache.Entry) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM quick_select WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO quick_select (user_id, customer, work_item, last_used)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(userID, e.Customer, e.WorkItem, e.LastUsed.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("save cache entry: %w", err)
		}
	}
	return tx.Commit()
}

// Touch records a single use without rewriting the whole set.
func (d *DB) Touch(userID, customer, workItem string, usedOn time.Time) error {
	_, err := d.conn.Exec(
		`INSERT INTO quick_select (user_id, customer, work_item, last_used)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, customer, work_item)
		 DO UPDATE SET last_used = MAX(last_used, excluded.last_used)`,
		userID, customer, workItem, usedOn.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("touch cache entry: %w", err)
	}
	return nil
}

// MarkRefreshed records when the user's cache was last rebuilt from remote.
func (d *DB) MarkRefreshed(userID string, at time.Time) error {
	_, err := d.conn.Exec(
		`INSERT OR REPLACE INTO refresh_marks (user_id, refreshed_at) VALUES (?, ?)`,
		userID, at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("mark cache refresh: %w", err)
	}
	return nil
}

// LastRefreshed returns when the user's cache was last rebuilt, or zero time.
func (d *DB) LastRefreshed(userID string) (time.Time, error) {
	var raw string
	err := d.conn.QueryRow(
		`SELECT refreshed_at FROM refresh_marks WHERE user_id = ?`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read cache refresh mark: %w", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}
