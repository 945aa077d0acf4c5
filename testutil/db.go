// Package testutil provides shared helpers for tests that need a real store.
// Postgres helpers skip automatically when TEST_DATABASE_URL is not set, so
// the default test run needs nothing but a temp directory.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	bolt "go.etcd.io/bbolt"

	"github.com/pkordes/activity-logbook/internal/repo"
	"github.com/pkordes/activity-logbook/migrations"
)

// NewPool opens a *pgxpool.Pool on TEST_DATABASE_URL and closes it when the
// test finishes. The test is skipped if the variable is not set.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := requireDSN(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens a *sql.DB on TEST_DATABASE_URL through the pgx driver.
// goose needs database/sql, which is the only reason to prefer this over
// NewPool.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := requireDSN(t)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustMigrate applies every embedded migration to dsn and panics on failure.
// Intended for TestMain, where no *testing.T is available.
func MustMigrate(dsn string) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil.MustMigrate: open: " + err.Error())
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		panic("testutil.MustMigrate: create goose provider: " + err.Error())
	}
	if _, err := provider.Up(context.Background()); err != nil {
		panic("testutil.MustMigrate: run migrations: " + err.Error())
	}
}

// NewBoltStore returns a KVStore on a fresh bbolt file in t.TempDir.
// The file is closed when the test finishes.
func NewBoltStore(t *testing.T) repo.KVStore {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "logbook.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("testutil.NewBoltStore: open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := repo.NewBoltKVStore(db)
	if err != nil {
		t.Fatalf("testutil.NewBoltStore: %v", err)
	}
	return store
}

// requireDSN returns TEST_DATABASE_URL, skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
