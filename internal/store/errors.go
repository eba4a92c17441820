package store

import "errors"

var (
	// ErrDuplicateJob is returned by SubmitJob when the id already exists.
	ErrDuplicateJob = errors.New("job id already exists")

	// ErrInvalidTransition is returned when an operation finds the job in
	// a state it cannot transition from, including reporting an outcome
	// for a job that is not processing.
	ErrInvalidTransition = errors.New("invalid job state transition")

	// ErrJobNotDead is returned by RetryDeadJob when the job is not in the
	// dead state.
	ErrJobNotDead = errors.New("job is not in the dead state")

	// ErrNoJobAvailable is returned by ClaimNextJob when no pending job is
	// eligible to run. Workers treat it as "idle", not as a failure.
	ErrNoJobAvailable = errors.New("no job available")

	// ErrJobNotFound is returned by lookups for an unknown id.
	ErrJobNotFound = errors.New("job not found")
)
