package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the shared connection pool for the filing_facts
// store. Postgres persistence is optional: the CSV sink is the primary
// output, and callers that never pass -db never call this. The URL comes
// from the CLI layer so this package stays free of environment reads.
func InitDB(ctx context.Context, databaseURL string) error {
	var err error
	once.Do(func() {
		if databaseURL == "" {
			err = fmt.Errorf("database URL is empty (set DATABASE_URL)")
			return
		}

		config, parseErr := pgxpool.ParseConfig(databaseURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the connection pool, nil when uninitialized.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
