package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type TransactionFunc func(transaction pgx.Tx) error

// WithTransaction runs fn inside a transaction, committing on nil and
// rolling back on error. The claim path relies on this scope to make
// its select-and-transition a single atomic unit.
func (s *Store) WithTransaction(
	ctx context.Context,
	fn TransactionFunc,
) error {
	transaction, err := s.connectionPool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer transaction.Rollback(ctx)

	if err := fn(transaction); err != nil {
		return err
	}

	return transaction.Commit(ctx)
}
