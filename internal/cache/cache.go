// Package cache is a keyed last-write-wins store of API responses, used by
// the CLI's read paths to show something useful when the network is down.
// It sits behind the API client boundary and is never consulted by the
// session or permission logic.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite-backed response cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS responses (
			key        TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate cache: %w", err)
	}
	return nil
}

// Put stores payload under key, replacing whatever was there. Last write
// wins; there is no merging.
func (s *Store) Put(key string, payload []byte, fetchedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO responses (key, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, payload, fetchedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Get returns the cached payload for key and when it was fetched.
func (s *Store) Get(key string) ([]byte, time.Time, bool) {
	var payload []byte
	var fetchedAt int64
	err := s.db.QueryRow(
		`SELECT payload, fetched_at FROM responses WHERE key = ?`, key,
	).Scan(&payload, &fetchedAt)
	if err != nil {
		return nil, time.Time{}, false
	}
	return payload, time.Unix(fetchedAt, 0), true
}

// Purge deletes entries fetched before cutoff and reports how many went.
func (s *Store) Purge(cutoff time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM responses WHERE fetched_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Clear removes every entry. Called on logout so cached data from one
// account never leaks into the next.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM responses`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
