package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultQueryTimeout   = 5 * time.Second
)

// Config captures the settings for establishing the PostgreSQL pool.
type Config struct {
	URL      string
	MaxConns int32
	// QueryTimeout bounds every repository call. A request that cannot
	// acquire a connection (pool exhausted) or finish its query within this
	// window fails with context.DeadlineExceeded, which the HTTP layer maps
	// to 503 instead of queuing indefinitely.
	QueryTimeout time.Duration
}

// DB wraps the bounded pgx pool together with the per-query deadline.
type DB struct {
	Pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// Connect builds the pool, verifies connectivity with a ping, and returns the
// wrapper. Defaults are applied for missing tunables.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres parse config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &DB{Pool: pool, queryTimeout: timeout}, nil
}

// Ping verifies the database is reachable (readiness probe).
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases the pool.
func (db *DB) Close() {
	db.Pool.Close()
}

func (db *DB) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.queryTimeout)
}
