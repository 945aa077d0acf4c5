// Package repo contains all storage access logic for the Activity Logbook.
// Records are kept as whole-collection blobs under fixed keys, so the only
// storage contract is a flat key-value store. Each backend lives in its own
// file. No business logic lives here, only storage and byte handling.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// KVStore persists opaque values under string keys.
// The service layer depends on this interface, not on any backend.
type KVStore interface {
	// Put overwrites the value stored under key. Last write wins.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the value stored under key. ok is false when the key was
	// never written; that is not an error. A key written with an empty value
	// returns ok == true and an empty slice.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
}

// pgKVStore is the Postgres implementation of KVStore.
type pgKVStore struct {
	db db
}

// NewPostgresKVStore constructs a KVStore backed by the kv_entries table.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKVStore(db db) KVStore {
	return &pgKVStore{db: db}
}

// Put upserts the row for key.
func (s *pgKVStore) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_entries (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	if value == nil {
		value = []byte{} // value is NOT NULL; written-empty is still written
	}

	_, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("repo.pgKVStore.Put: %w", err)
	}
	return nil
}

// Get reads the row for key.
func (s *pgKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = @key`

	var value []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("repo.pgKVStore.Get: %w", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}
