package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Store tests run against a real database named by TEST_DATABASE_URL
// and are skipped when it is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()

	s, err := NewStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	_, err = s.connectionPool.Exec(ctx, `TRUNCATE jobs, config`)
	require.NoError(t, err)

	require.NoError(t, s.ClearStop(ctx))

	return s
}

// makeEligible rewinds a job's run_at so tests do not have to sit out
// real backoff delays.
func makeEligible(t *testing.T, s *Store, jobID string) {
	t.Helper()

	_, err := s.connectionPool.Exec(
		context.Background(),
		`UPDATE jobs SET run_at = now() - interval '1 second' WHERE id = $1`,
		jobID,
	)
	require.NoError(t, err)
}

// setRunAt pins a job's run_at for ordering tests.
func setRunAt(t *testing.T, s *Store, jobID string, runAt time.Time) {
	t.Helper()

	_, err := s.connectionPool.Exec(
		context.Background(),
		`UPDATE jobs SET run_at = $2 WHERE id = $1`,
		jobID,
		runAt,
	)
	require.NoError(t, err)
}

func intPtr(v int) *int {
	return &v
}
