package pipeline

import (
	"math/rand/v2"
	"time"
)

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// MaxRetries bounds generation attempts. Retries only happen before the
// first chunk arrives; a partially streamed buffer is never restarted.
const MaxRetries = 3
