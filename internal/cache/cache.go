// Package cache provides SQLite-backed caching of transformed barrel file
// output. The cache is stored in .bx/cache.db and lets repeated scans skip
// files whose content and processing options have not changed. The
// resolution core never touches the cache; it is a host-side concern.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache manages the .bx/cache.db SQLite database for storing transformed
// barrel output keyed by content hash and options fingerprint.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the cache database at the specified .bx directory.
// It initializes the schema if the database is new.
func Open(bxDir string) (*Cache, error) {
	dbPath := filepath.Join(bxDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	cache := &Cache{db: db, dbPath: dbPath}

	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return cache, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached output for a file, matching on the file path, its
// content hash, and the options fingerprint. The second return value is
// false on a cache miss.
func (c *Cache) Get(path, contentHash, optionsHash string) (string, bool, error) {
	var output string
	err := c.db.QueryRow(
		`SELECT output FROM results WHERE path = ? AND content_hash = ? AND options_hash = ?`,
		path, contentHash, optionsHash,
	).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached result: %w", err)
	}
	return output, true, nil
}

// Put stores the transformed output for a file, replacing any previous
// entry for the same path and options fingerprint.
func (c *Cache) Put(path, contentHash, optionsHash, output string) error {
	_, err := c.db.Exec(
		`INSERT INTO results (path, content_hash, options_hash, output, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path, options_hash) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   output = excluded.output,
		   updated_at = excluded.updated_at`,
		path, contentHash, optionsHash, output, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("put cached result: %w", err)
	}
	return nil
}

// Clear removes all cached results.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM results")
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.dbPath
}

// Stats returns cache statistics.
type Stats struct {
	ResultCount int64
}

// GetStats returns statistics about the cache contents.
func (c *Cache) GetStats() (*Stats, error) {
	stats := &Stats{}
	if err := c.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&stats.ResultCount); err != nil {
		return nil, fmt.Errorf("count results: %w", err)
	}
	return stats, nil
}
