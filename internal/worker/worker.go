// Package worker implements the claim → execute → report loop. Workers
// are symmetric: any number of them may run against one store, in one
// process or many, and coordinate only through the store's atomic
// claim.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/okvee/queuectl/internal/store"
)

const DefaultPollInterval = time.Second

// Queue is the slice of the job store a worker needs.
type Queue interface {
	ClaimNextJob(ctx context.Context) (*store.Job, error)
	MarkJobCompleted(ctx context.Context, jobID string) error
	MarkJobFailed(ctx context.Context, jobID string) (string, error)
	StopRequested(ctx context.Context) (bool, error)
}

var _ Queue = (*store.Store)(nil)

type Worker struct {
	id           int
	queue        Queue
	runner       Runner
	pollInterval time.Duration
	logger       *logrus.Entry
}

func New(id int, queue Queue, logger *logrus.Entry) *Worker {
	return &Worker{
		id:           id,
		queue:        queue,
		runner:       ShellRunner{},
		pollInterval: DefaultPollInterval,
		logger:       logger.WithField("worker", id),
	}
}

// WithPollInterval overrides how long the worker idles when no job is
// eligible.
func (w *Worker) WithPollInterval(interval time.Duration) *Worker {
	w.pollInterval = interval
	return w
}

// WithRunner overrides the command runner.
func (w *Worker) WithRunner(runner Runner) *Worker {
	w.runner = runner
	return w
}

// Run polls the queue until the context is cancelled or the durable
// stop flag is raised. Both are observed only between jobs: once a job
// is claimed its outcome is always reported before the worker looks at
// either signal again, so a voluntary shutdown never strands a job in
// processing.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("worker started")

	for {
		if w.shouldStop(ctx) {
			w.logger.Info("stop requested, worker exiting")
			return
		}

		job, err := w.queue.ClaimNextJob(ctx)
		if err != nil {
			if errors.Is(err, store.ErrNoJobAvailable) {
				if !w.waitPoll(ctx) {
					w.logger.Info("stop requested, worker exiting")
					return
				}
				continue
			}

			// Storage trouble is transient: log it and try again next
			// poll cycle rather than counting it against any job.
			claimErrors.Inc()
			w.logger.WithError(err).Warn("claim failed, retrying next poll")
			if !w.waitPoll(ctx) {
				w.logger.Info("stop requested, worker exiting")
				return
			}
			continue
		}

		w.process(ctx, job)
	}
}

// process runs one claimed job to completion and reports its outcome.
// Reporting uses a context detached from cancellation: a shutdown
// raised mid-execution must not prevent the report.
func (w *Worker) process(ctx context.Context, job *store.Job) {
	jobsClaimed.Inc()

	logger := w.logger.WithField("job_id", job.ID)
	logger.WithField("command", job.Command).Info("job claimed")

	reportCtx := context.WithoutCancel(ctx)

	if runErr := w.runner.Run(job.Command); runErr != nil {
		logger.WithError(runErr).Warn("job failed")

		state, err := w.queue.MarkJobFailed(reportCtx, job.ID)
		if err != nil {
			logger.WithError(err).Error("failed to report job failure")
			return
		}

		if state == store.JobDead {
			jobsDead.Inc()
			logger.Warn("job moved to dead letter queue")
		} else {
			jobsRetried.Inc()
			logger.Info("job scheduled for retry")
		}
		return
	}

	if err := w.queue.MarkJobCompleted(reportCtx, job.ID); err != nil {
		logger.WithError(err).Error("failed to report job success")
		return
	}

	jobsCompleted.Inc()
	logger.Info("job completed")
}

func (w *Worker) shouldStop(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}

	stopRequested, err := w.queue.StopRequested(ctx)
	if err != nil {
		// Can't read the flag; keep running and re-check next cycle.
		w.logger.WithError(err).Warn("could not read stop flag")
		return false
	}

	return stopRequested
}

// waitPoll sleeps one poll interval. Returns false when the context is
// cancelled while waiting, so an idle worker exits promptly.
func (w *Worker) waitPoll(ctx context.Context) bool {
	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
