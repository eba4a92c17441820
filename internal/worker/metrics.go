package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "queuectl_jobs_claimed_total",
		Help: "Jobs claimed by workers in this process.",
	})
	jobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "queuectl_jobs_completed_total",
		Help: "Jobs that finished with exit status 0.",
	})
	jobsRetried = promauto.NewCounter(prometheus.CounterOpts{
		Name: "queuectl_jobs_retried_total",
		Help: "Failed attempts that were rescheduled with backoff.",
	})
	jobsDead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "queuectl_jobs_dead_total",
		Help: "Jobs moved to the dead letter queue.",
	})
	claimErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "queuectl_claim_errors_total",
		Help: "Claim attempts that failed due to storage errors.",
	})
)
