// Package backoff computes the retry delay inserted before a failed job
// becomes claimable again.
package backoff

import "time"

// maxDelay caps the computed delay so large attempt counts saturate
// instead of overflowing time.Duration.
const maxDelay = time.Duration(1<<62 - 1)

const maxSeconds = int64(maxDelay / time.Second)

// Delay returns base^attempts seconds, where attempts is the count
// after the failure just observed (attempts=1 is the first retry).
// base=2 gives 2s, 4s, 8s, 16s. The result saturates at maxDelay and
// is never negative; bases below 1 and non-positive attempt counts
// yield zero.
func Delay(attempts, base int) time.Duration {
	if attempts <= 0 || base < 1 {
		return 0
	}
	if base == 1 {
		return time.Second
	}

	seconds := int64(1)
	for i := 0; i < attempts; i++ {
		if seconds > maxSeconds/int64(base) {
			return maxDelay
		}
		seconds *= int64(base)
	}

	return time.Duration(seconds) * time.Second
}
