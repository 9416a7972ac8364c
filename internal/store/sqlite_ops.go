// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, transactions,
// driver registration) from business logic. This is the only file that
// imports the SQLite driver.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes; the busy timeout prevents
// "database is locked" errors when several requests hit one document.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/redlinehq/redline/internal/clock"
	"github.com/redlinehq/redline/internal/id"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// defaultMaxContent caps version content at 10 MB unless reconfigured.
const defaultMaxContent int64 = 10 * 1024 * 1024

// SQLiteStore implements Store using SQLite with WAL mode for concurrent
// access. Version numbers are assigned inside the insert transaction, giving
// the atomic per-document sequence the manager relies on.
type SQLiteStore struct {
	db         *sql.DB
	ids        id.Generator
	clock      clock.Clock
	maxContent int64
	log        zerolog.Logger
}

// Compile-time interface compliance check: a missing or misshapen method
// fails the build instead of a runtime call.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path and returns a configured
// SQLiteStore with UUID ids and the system clock. The caller should call
// Close on the returned store.
func Open(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL: concurrent readers while writing. Trade-off: -wal and -shm files
	// alongside the database.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	// Wait on a held lock instead of failing immediately; operations here
	// complete in milliseconds, so 5s is generous.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	// NORMAL is crash-safe under WAL and avoids an fsync per commit.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{
		db:         db,
		ids:        id.UUID{},
		clock:      clock.System{},
		maxContent: defaultMaxContent,
		log:        logger,
	}, nil
}

// WithIDs replaces the id generator. Used by tests for deterministic ids.
func (s *SQLiteStore) WithIDs(g id.Generator) *SQLiteStore {
	s.ids = g
	return s
}

// WithClock replaces the clock. Used by tests to control retention windows.
func (s *SQLiteStore) WithClock(c clock.Clock) *SQLiteStore {
	s.clock = c
	return s
}

// WithMaxContent sets the content size limit in bytes (0 disables the check).
func (s *SQLiteStore) WithMaxContent(n int64) *SQLiteStore {
	s.maxContent = n
	return s
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; the schema uses IF NOT EXISTS throughout.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for callers needing custom queries
// (tests use it to age rows past retention windows).
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Tx runs fn inside a transaction, committing on nil and rolling back on
// error. Keeps transaction ceremony out of the business logic.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanVersion extracts a Version from a database row, handling nullable
// columns and decoding the stored suggestion diff.
func scanVersion(sc scanner) (Version, error) {
	var v Version
	var userID, sessionID, previousID, changeDesc sql.NullString
	var sugType, model, prompt, status, diffJSON sql.NullString

	err := sc.Scan(&v.ID, &v.DocumentID, &v.Number, &v.Content, &v.CreatedAt,
		&userID, &sessionID, &v.Type, &previousID, &changeDesc,
		&sugType, &model, &prompt, &status, &diffJSON)
	if err != nil {
		return v, err
	}

	v.UserID = userID.String
	v.SessionID = sessionID.String
	v.PreviousID = previousID.String
	v.ChangeDescription = changeDesc.String

	if v.Type == TypeAISuggestion {
		meta, err := decodeSuggestion(sugType.String, model.String, prompt.String, status.String, diffJSON.String)
		if err != nil {
			return v, err
		}
		v.Suggestion = meta
	}
	return v, nil
}

// scanOne converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func (s *SQLiteStore) scanOne(row *sql.Row) (*Version, error) {
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan version: %w", err)
	}
	return &v, nil
}

// scanAll iterates over query results, collecting versions into a slice.
func (s *SQLiteStore) scanAll(rows *sql.Rows) ([]Version, error) {
	var versions []Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
