package repository

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of *pgxpool.Pool used by the repository.
// pgxmock pools satisfy it as well.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// NewDatabase opens a connection pool to PostgreSQL and verifies it with a ping.
func NewDatabase(ctx context.Context, host string, port int, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, strconv.Itoa(port)),
		Path:     name,
		RawQuery: "sslmode=disable",
	}

	return Connect(ctx, dsn.String())
}

// Connect opens a pool from a connection string.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS route_cache (
		id             BIGSERIAL PRIMARY KEY,
		destination_id TEXT             NOT NULL,
		origin_lat     DOUBLE PRECISION NOT NULL,
		origin_lng     DOUBLE PRECISION NOT NULL,
		dest_lat       DOUBLE PRECISION NOT NULL,
		dest_lng       DOUBLE PRECISION NOT NULL,
		distance_km    DOUBLE PRECISION NOT NULL,
		duration_min   INTEGER          NOT NULL,
		path           TEXT             NOT NULL,
		created_at     TIMESTAMPTZ      NOT NULL DEFAULT now(),
		CONSTRAINT route_cache_key UNIQUE (destination_id, origin_lat, origin_lng, dest_lat, dest_lng)
	);
`

// EnsureSchema creates the route cache table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to create route_cache table: %w", err)
	}

	r.log.DebugContext(ctx, "Route cache schema is in place")

	return nil
}
