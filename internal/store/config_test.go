package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigReturnsBuiltInDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	value, err := s.GetConfig(ctx, ConfigMaxRetries)
	require.NoError(t, err)
	assert.Equal(t, "3", value)

	value, err = s.GetConfig(ctx, ConfigBackoffBase)
	require.NoError(t, err)
	assert.Equal(t, "2", value)

	value, err = s.GetConfig(ctx, "no-such-key")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSetConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetConfig(ctx, ConfigBackoffBase, "5"))

	value, err := s.GetConfig(ctx, ConfigBackoffBase)
	require.NoError(t, err)
	assert.Equal(t, "5", value)

	// Upsert replaces.
	require.NoError(t, s.SetConfig(ctx, ConfigBackoffBase, "9"))

	parsed, err := s.GetConfigInt(ctx, ConfigBackoffBase)
	require.NoError(t, err)
	assert.Equal(t, 9, parsed)
}

func TestGetConfigIntFallsBackOnGarbage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetConfig(ctx, ConfigMaxRetries, "not-a-number"))

	parsed, err := s.GetConfigInt(ctx, ConfigMaxRetries)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed)

	require.NoError(t, s.SetConfig(ctx, ConfigMaxRetries, "-4"))

	parsed, err = s.GetConfigInt(ctx, ConfigMaxRetries)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed)
}

func TestStopFlagRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	stopRequested, err := s.StopRequested(ctx)
	require.NoError(t, err)
	assert.False(t, stopRequested)

	require.NoError(t, s.RequestStop(ctx))

	stopRequested, err = s.StopRequested(ctx)
	require.NoError(t, err)
	assert.True(t, stopRequested)

	// Raising it twice is fine.
	require.NoError(t, s.RequestStop(ctx))

	require.NoError(t, s.ClearStop(ctx))

	stopRequested, err = s.StopRequested(ctx)
	require.NoError(t, err)
	assert.False(t, stopRequested)
}
