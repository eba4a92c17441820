package store

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/okvee/queuectl/internal/backoff"
)

type Job struct {
	ID         string
	Command    string
	State      string
	Attempts   int
	MaxRetries int
	RunAt      time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const jobColumns = `
	id,
	command,
	state,
	attempts,
	max_retries,
	run_at,
	created_at,
	updated_at
`

func scanJob(row pgx.Row) (*Job, error) {
	var job Job

	err := row.Scan(
		&job.ID,
		&job.Command,
		&job.State,
		&job.Attempts,
		&job.MaxRetries,
		&job.RunAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// SubmitJob creates a pending job eligible to run immediately. When
// maxRetries is nil the current max_retries config value is applied.
func (s *Store) SubmitJob(
	ctx context.Context,
	jobID string,
	command string,
	maxRetries *int,
) (*Job, error) {
	retries := 0

	if maxRetries != nil {
		retries = *maxRetries
	} else {
		configured, err := s.GetConfigInt(ctx, ConfigMaxRetries)
		if err != nil {
			return nil, err
		}
		retries = configured
	}

	row := s.connectionPool.QueryRow(
		ctx,
		`
		INSERT INTO jobs (id, command, state, attempts, max_retries, run_at)
		VALUES ($1, $2, 'pending', 0, $3, now())
		RETURNING `+jobColumns,
		jobID,
		command,
		retries,
	)

	job, err := scanJob(row)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateJob
		}
		return nil, err
	}

	return job, nil
}

// ClaimNextJob atomically selects the oldest eligible pending job and
// transitions it to processing. The row lock taken by FOR UPDATE SKIP
// LOCKED, held until the surrounding transaction commits, is what keeps
// two concurrent claimers from receiving the same job: a second claimer
// skips the locked row instead of blocking on it.
func (s *Store) ClaimNextJob(ctx context.Context) (*Job, error) {
	var job *Job

	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(
			ctx,
			`
			SELECT `+jobColumns+`
			FROM jobs
			WHERE state = 'pending'
				AND run_at <= now()
			ORDER BY run_at, created_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
			`,
		)

		claimed, err := scanJob(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNoJobAvailable
			}
			return err
		}

		if err := transitionJob(ctx, tx, claimed.ID, JobPending, JobProcessing); err != nil {
			return err
		}

		claimed.State = JobProcessing
		job = claimed
		return nil
	})

	if err != nil {
		return nil, err
	}

	return job, nil
}

// MarkJobCompleted transitions a processing job to completed.
func (s *Store) MarkJobCompleted(ctx context.Context, jobID string) error {
	return s.WithTransaction(ctx, func(tx pgx.Tx) error {
		return transitionJob(ctx, tx, jobID, JobProcessing, JobCompleted)
	})
}

// MarkJobFailed records a failed attempt for a processing job. The job
// goes back to pending with an exponential backoff delay while attempts
// remain, and to dead once they are exhausted. backoff_base is read
// inside the transaction so a concurrent config change only affects
// failures reported after it. Returns the state the job landed in.
func (s *Store) MarkJobFailed(ctx context.Context, jobID string) (string, error) {
	var nextState string

	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		var attempts, maxRetries int

		err := tx.QueryRow(
			ctx,
			`
			SELECT attempts, max_retries
			FROM jobs
			WHERE id = $1
				AND state = 'processing'
			FOR UPDATE
			`,
			jobID,
		).Scan(&attempts, &maxRetries)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvalidTransition
			}
			return err
		}

		attempts++

		if attempts < maxRetries {
			base, err := getConfigIntTx(ctx, tx, ConfigBackoffBase)
			if err != nil {
				return err
			}

			nextState = JobPending
			nextRunAt := time.Now().Add(backoff.Delay(attempts, base))

			commandTag, err := tx.Exec(
				ctx,
				`
				UPDATE jobs
				SET state = 'pending',
					attempts = $2,
					run_at = $3,
					updated_at = now()
				WHERE id = $1
					AND state = 'processing'
				`,
				jobID,
				attempts,
				nextRunAt,
			)
			if err != nil {
				return err
			}
			if commandTag.RowsAffected() != 1 {
				return ErrInvalidTransition
			}
			return nil
		}

		nextState = JobDead

		commandTag, err := tx.Exec(
			ctx,
			`
			UPDATE jobs
			SET state = 'dead',
				attempts = $2,
				updated_at = now()
			WHERE id = $1
				AND state = 'processing'
			`,
			jobID,
			attempts,
		)
		if err != nil {
			return err
		}
		if commandTag.RowsAffected() != 1 {
			return ErrInvalidTransition
		}
		return nil
	})

	if err != nil {
		return "", err
	}

	return nextState, nil
}

// RetryDeadJob moves a dead job back to pending with a clean attempt
// counter, eligible to run immediately.
func (s *Store) RetryDeadJob(ctx context.Context, jobID string) (*Job, error) {
	var job *Job

	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(
			ctx,
			`
			UPDATE jobs
			SET state = 'pending',
				attempts = 0,
				run_at = now(),
				updated_at = now()
			WHERE id = $1
				AND state = 'dead'
			RETURNING `+jobColumns,
			jobID,
		)

		retried, err := scanJob(row)
		if err == nil {
			job = retried
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		// Distinguish an unknown id from a job in the wrong state.
		var exists bool
		if err := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`,
			jobID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrJobNotFound
		}
		return ErrJobNotDead
	})

	if err != nil {
		return nil, err
	}

	return job, nil
}

func (s *Store) GetJobByID(ctx context.Context, jobID string) (*Job, error) {
	row := s.connectionPool.QueryRow(
		ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`,
		jobID,
	)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	return job, nil
}

// ListJobs returns a lazy sequence of the jobs in a state, oldest first.
// Each range over the sequence runs its own query, so the sequence can
// be restarted. Iteration stops at the first error, yielded with a nil
// job.
func (s *Store) ListJobs(ctx context.Context, state string) iter.Seq2[*Job, error] {
	return func(yield func(*Job, error) bool) {
		rows, err := s.connectionPool.Query(
			ctx,
			`
			SELECT `+jobColumns+`
			FROM jobs
			WHERE state = $1
			ORDER BY created_at
			`,
			state,
		)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			job, err := scanJob(rows)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(job, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// CountJobsByState reports how many jobs sit in each state.
func (s *Store) CountJobsByState(ctx context.Context) (map[string]int, error) {
	rows, err := s.connectionPool.Query(
		ctx,
		`SELECT state, count(*) FROM jobs GROUP BY state`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var state string
		var count int

		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		counts[state] = count
	}

	return counts, rows.Err()
}

// transitionJob is the single gate for job state changes. The WHERE
// clause re-checks the expected current state, so a stale caller gets
// ErrInvalidTransition instead of clobbering a concurrent transition.
func transitionJob(
	ctx context.Context,
	tx pgx.Tx,
	jobID string,
	previousState string,
	nextState string,
) error {
	if err := ValidateJobTransition(previousState, nextState); err != nil {
		return err
	}

	commandTag, err := tx.Exec(
		ctx,
		`
		UPDATE jobs
		SET state = $2,
			updated_at = now()
		WHERE id = $1
			AND state = $3
		`,
		jobID,
		nextState,
		previousState,
	)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() != 1 {
		return ErrInvalidTransition
	}

	return nil
}
