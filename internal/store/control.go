package store

import "context"

// The shutdown signal is a single durable row rather than in-process
// state: workers and the CLI are separate processes, and a stop
// requested by one invocation must outlive it and be visible to workers
// launched at any time.

// RequestStop raises the durable shutdown flag. Workers observe it at
// job boundaries only; in-flight executions run to completion.
func (s *Store) RequestStop(ctx context.Context) error {
	return s.setStopRequested(ctx, true)
}

// ClearStop lowers the shutdown flag so workers keep (or resume)
// claiming jobs.
func (s *Store) ClearStop(ctx context.Context) error {
	return s.setStopRequested(ctx, false)
}

// StopRequested reports whether a stop has been requested.
func (s *Store) StopRequested(ctx context.Context) (bool, error) {
	var stopRequested bool

	err := s.connectionPool.QueryRow(
		ctx,
		`SELECT stop_requested FROM worker_control WHERE id = 1`,
	).Scan(&stopRequested)
	if err != nil {
		return false, err
	}

	return stopRequested, nil
}

func (s *Store) setStopRequested(ctx context.Context, stopRequested bool) error {
	_, err := s.connectionPool.Exec(
		ctx,
		`
		INSERT INTO worker_control (id, stop_requested)
		VALUES (1, $1)
		ON CONFLICT (id)
		DO UPDATE
		SET stop_requested = EXCLUDED.stop_requested,
			updated_at = now()
		`,
		stopRequested,
	)

	return err
}
