package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
)

const (
	ConfigMaxRetries  = "max_retries"
	ConfigBackoffBase = "backoff_base"
)

// Built-in defaults, applied when a key has never been set. A stored
// value that fails validation also falls back here rather than breaking
// running workers.
var configDefaults = map[string]string{
	ConfigMaxRetries:  "3",
	ConfigBackoffBase: "2",
}

type configQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetConfig returns the stored value for key, or its built-in default
// when absent. Unknown keys with no stored value return "".
func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	return getConfig(ctx, s.connectionPool, key)
}

// SetConfig stores a value, creating or replacing the key. Changes only
// affect operations that read the key afterwards; nothing is
// recalculated retroactively.
func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.connectionPool.Exec(
		ctx,
		`
		INSERT INTO config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE
		SET value = EXCLUDED.value
		`,
		key,
		value,
	)

	return err
}

// GetConfigInt reads a numeric config key, falling back to the built-in
// default when the stored value is missing, unparsable, or negative.
func (s *Store) GetConfigInt(ctx context.Context, key string) (int, error) {
	return getConfigInt(ctx, s.connectionPool, key)
}

func getConfig(ctx context.Context, querier configQuerier, key string) (string, error) {
	var value string

	err := querier.QueryRow(
		ctx,
		`SELECT value FROM config WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return configDefaults[key], nil
		}
		return "", err
	}

	return value, nil
}

func getConfigInt(ctx context.Context, querier configQuerier, key string) (int, error) {
	value, err := getConfig(ctx, querier, key)
	if err != nil {
		return 0, err
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		parsed, _ = strconv.Atoi(configDefaults[key])
	}

	return parsed, nil
}

// getConfigIntTx reads a numeric key inside an open transaction, so the
// value observed happens-before any write made with it.
func getConfigIntTx(ctx context.Context, tx pgx.Tx, key string) (int, error) {
	return getConfigInt(ctx, tx, key)
}
