package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The core correctness guarantee: with one eligible job and many
// concurrent claimers, exactly one claimer receives it.
func TestClaimNextJobMutualExclusion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SubmitJob(ctx, "job-contended", "true", nil)
	require.NoError(t, err)

	const claimers = 16

	var wg sync.WaitGroup
	results := make(chan *Job, claimers)
	failures := make(chan error, claimers)

	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			job, err := s.ClaimNextJob(ctx)
			if err != nil {
				failures <- err
				return
			}
			results <- job
		}()
	}

	wg.Wait()
	close(results)
	close(failures)

	var claimed []*Job
	for job := range results {
		claimed = append(claimed, job)
	}
	require.Len(t, claimed, 1, "exactly one claimer may win the job")
	assert.Equal(t, "job-contended", claimed[0].ID)

	for err := range failures {
		assert.True(t, errors.Is(err, ErrNoJobAvailable),
			"losing claimers must see no-job-available, got %v", err)
	}
}

// With as many eligible jobs as claimers, every claimer gets a job and
// no job is handed out twice.
func TestConcurrentClaimsNeverShareAJob(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	const jobs = 12

	for i := 0; i < jobs; i++ {
		_, err := s.SubmitJob(ctx, string(rune('a'+i)), "true", nil)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	results := make(chan string, jobs)

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			job, err := s.ClaimNextJob(ctx)
			if err != nil {
				return
			}
			results <- job.ID
		}()
	}

	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for id := range results {
		assert.False(t, seen[id], "job %s claimed twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, jobs)
}
