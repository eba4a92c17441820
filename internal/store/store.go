package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IMPORTANT:
// Every UPDATE of jobs.state must re-check the expected current state
// in its WHERE clause and treat zero affected rows as
// ErrInvalidTransition, either via the transitionJob gate or an
// equivalent guarded update. An unguarded write is a correctness bug.

type Store struct {
	connectionPool *pgxpool.Pool
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id          text PRIMARY KEY,
		command     text NOT NULL,
		state       text NOT NULL DEFAULT 'pending',
		attempts    integer NOT NULL DEFAULT 0,
		max_retries integer NOT NULL DEFAULT 3,
		run_at      timestamptz NOT NULL DEFAULT now(),
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_state_run_at ON jobs (state, run_at)`,
	`CREATE TABLE IF NOT EXISTS config (
		key   text PRIMARY KEY,
		value text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS worker_control (
		id             integer PRIMARY KEY CHECK (id = 1),
		stop_requested boolean NOT NULL DEFAULT false,
		updated_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`INSERT INTO worker_control (id, stop_requested)
	 VALUES (1, false)
	 ON CONFLICT (id) DO NOTHING`,
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	store := &Store{connectionPool: pool}

	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates the tables on first use. Every statement is
// idempotent, so running it on each CLI invocation is safe.
func (s *Store) initSchema(ctx context.Context) error {
	for _, statement := range schema {
		if _, err := s.connectionPool.Exec(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() {
	s.connectionPool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.connectionPool.Ping(ctx)
}
