package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// The modernc driver registers itself with database/sql under the
	// name "sqlite" when this package loads. Pure Go, no CGo, so the
	// binary cross-compiles cleanly for every device target.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteRepository stores each document in a single kv table.
type SQLiteRepository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dsn and ensures the schema.
//
// Recommended DSN formats:
//   - File:  "civiccred.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
//   - Tests: "file:testXYZ?mode=memory&cache=shared"
func Open(dsn string) (*SQLiteRepository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("storage DSN is empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate storage: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Get returns the document stored under key, or ErrKeyNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Put writes the document under key, replacing any previous value.
func (r *SQLiteRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes the document under key. Deleting an absent key is not an
// error; restore relies on that to clear partial session state.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Ping verifies the underlying database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
