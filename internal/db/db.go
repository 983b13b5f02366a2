package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Pool *pgxpool.Pool
}

var (
	dbInstance *Database
	dbOnce     sync.Once
	dbErr      error
)

// NewDatabase returns the process wide connection pool, creating it on first use.
func NewDatabase(ctx context.Context, connString string) (*Database, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = Open(ctx, connString)
	})

	if dbErr != nil {
		return nil, dbErr
	}

	return dbInstance, nil
}

// Open creates a standalone pool, used by tests that run their own containers.
func Open(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return &Database{Pool: pool}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *Database) Close() {
	db.Pool.Close()
}
