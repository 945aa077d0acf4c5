package repo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	bolt "go.etcd.io/bbolt"

	"github.com/pkordes/activity-logbook/migrations"
)

// Options selects and locates the backing store for Open.
type Options struct {
	// Driver is one of "bolt", "postgres" or "memory".
	Driver string
	// Path is the bbolt file, used by the bolt driver.
	Path string
	// DatabaseURL is the Postgres connection string, used by the postgres driver.
	DatabaseURL string
}

// Open constructs the KVStore named by opts.Driver and returns a close
// function that releases whatever it opened. For Postgres the pool is pinged
// and the embedded migrations are applied before the store is returned.
func Open(ctx context.Context, opts Options, log *slog.Logger) (KVStore, func(), error) {
	switch opts.Driver {
	case "bolt":
		db, err := bolt.Open(opts.Path, 0o600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: open bolt file %q: %w", opts.Path, err)
		}
		store, err := NewBoltKVStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("repo.Open: %w", err)
		}
		log.InfoContext(ctx, "store opened", "driver", opts.Driver, "path", opts.Path)
		return store, func() { _ = db.Close() }, nil

	case "postgres":
		// pgxpool.New does not open connections immediately; the ping does.
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repo.Open: connect to database: %w", err)
		}
		if err := migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repo.Open: %w", err)
		}
		log.InfoContext(ctx, "store opened", "driver", opts.Driver)
		return NewPostgresKVStore(pool), pool.Close, nil

	case "memory":
		log.WarnContext(ctx, "store opened", "driver", opts.Driver, "note", "data is lost on exit")
		return NewMemoryKVStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("repo.Open: unknown driver %q", opts.Driver)
	}
}

// migrate applies every pending embedded migration through a database/sql
// handle borrowed from pool.
func migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}
