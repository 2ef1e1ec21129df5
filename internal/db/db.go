// Package db is the local SQLite-backed store for progression state,
// daily metric aggregates, the sync outbox, and the XP activity log.
// The database is exclusive to the current device; the CRM never writes
// to it directly.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const dbFile = "repsync.db"

// DB wraps the database connection
type DB struct {
	conn    *sql.DB
	baseDir string
}

// Open opens (creating if necessary) the store under baseDir and runs
// any pending migrations. The progression singleton is created lazily
// on first read, so a fresh database is immediately usable.
func Open(baseDir string) (*DB, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	// Slightly faster writes, still safe with WAL
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	db := &DB{conn: conn, baseDir: baseDir}
	if err := db.runMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the base directory for the database
func (db *DB) BaseDir() string {
	return db.baseDir
}

// Conn returns the underlying *sql.DB connection for use in transactions.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// runMigrations stamps the schema version and applies column additions
// for databases created by earlier versions. All schema statements are
// idempotent, so re-running is safe.
func (db *DB) runMigrations() error {
	var version int
	err := db.conn.QueryRow(`SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	if err == sql.ErrNoRows {
		_, err = db.conn.Exec(`INSERT INTO schema_info (version) VALUES (?)`, SchemaVersion)
		return err
	}
	if err != nil {
		return err
	}
	if version >= SchemaVersion {
		return nil
	}

	// v1 -> v2: idempotency keys on the outbox
	if version < 2 {
		db.conn.Exec(`ALTER TABLE sync_queue ADD COLUMN idempotency_key TEXT NOT NULL DEFAULT ''`)
	}
	// v2 -> v3: mentee count and active title on progression
	if version < 3 {
		db.conn.Exec(`ALTER TABLE progression ADD COLUMN mentee_count INTEGER NOT NULL DEFAULT 0`)
		db.conn.Exec(`ALTER TABLE progression ADD COLUMN active_title TEXT DEFAULT ''`)
	}

	_, err = db.conn.Exec(`UPDATE schema_info SET version = ?`, SchemaVersion)
	return err
}
