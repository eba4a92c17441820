package backoff_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okvee/queuectl/internal/backoff"
)

func TestDelay_ExponentialGrowth(t *testing.T) {
	tests := []struct {
		attempts int
		base     int
		want     time.Duration
	}{
		{1, 2, 2 * time.Second},
		{2, 2, 4 * time.Second},
		{3, 2, 8 * time.Second},
		{4, 2, 16 * time.Second},
		{1, 3, 3 * time.Second},
		{3, 3, 27 * time.Second},
		{2, 10, 100 * time.Second},
		{5, 1, 1 * time.Second},
	}

	for _, tc := range tests {
		got := backoff.Delay(tc.attempts, tc.base)
		assert.Equalf(t, tc.want, got, "Delay(%d, %d)", tc.attempts, tc.base)
	}
}

func TestDelay_SaturatesInsteadOfOverflowing(t *testing.T) {
	// 2^63 seconds overflows int64; the delay must clamp, not wrap.
	got := backoff.Delay(63, 2)
	assert.Greater(t, got, time.Duration(0))
	assert.Equal(t, backoff.Delay(64, 2), got)
	assert.Equal(t, backoff.Delay(1000, 2), got)
	assert.Equal(t, backoff.Delay(math.MaxInt, 10), got)
}

func TestDelay_DegenerateInputs(t *testing.T) {
	assert.Equal(t, time.Duration(0), backoff.Delay(0, 2))
	assert.Equal(t, time.Duration(0), backoff.Delay(-1, 2))
	assert.Equal(t, time.Duration(0), backoff.Delay(3, 0))
	assert.Equal(t, time.Duration(0), backoff.Delay(3, -2))
}
