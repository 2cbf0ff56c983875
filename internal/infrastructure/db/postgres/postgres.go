package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 5 * time.Second

// Config captures the minimal settings required to establish a Postgres
// connection pool.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Database wraps a pgx connection pool.
type Database struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool, verifies connectivity with a
// ping, and returns the Database. A default timeout is applied when none
// is provided.
func Connect(ctx context.Context, cfg Config) (*Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &Database{pool: pool}, nil
}

// Pool exposes the underlying pgx pool to the repositories.
func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}

// Ping verifies connectivity, for readiness probes.
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Close releases all pooled connections.
func (d *Database) Close() {
	d.pool.Close()
}

// EnsureSchema creates the tables and the uniqueness index the ledger
// relies on. The unique index on (username, UTC date of check_in_time)
// is what makes concurrent check-ins for the same user and day resolve
// to exactly one persisted record.
func (d *Database) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin      BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id             BIGSERIAL PRIMARY KEY,
			username       TEXT NOT NULL REFERENCES users (username),
			check_in_time  TIMESTAMPTZ NOT NULL,
			check_out_time TIMESTAMPTZ,
			latitude       DOUBLE PRECISION NOT NULL,
			longitude      DOUBLE PRECISION NOT NULL,
			CONSTRAINT attendance_checkout_after_checkin
				CHECK (check_out_time IS NULL OR check_out_time >= check_in_time)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS attendance_user_day_uniq
			ON attendance (username, ((check_in_time AT TIME ZONE 'UTC')::date))`,
	}

	for _, stmt := range statements {
		if _, err := d.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
