package baselinker

import (
	"context"
	"time"
)

// RetryPolicy defines the backoff between attempts of a single call.
//
// By default a call is attempted len(Delays)+1 times: once, then once more
// after each configured delay. MaxAttempts overrides that count; attempts
// past the end of Delays reuse the last delay.
type RetryPolicy struct {
	Delays      []time.Duration
	MaxAttempts int
}

// DefaultRetryPolicy waits 1s, 2s and 4s between four attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Delays: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
}

// NoRetry makes every call a single attempt.
func NoRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

// Attempts returns the total number of attempts, initial one included.
func (p RetryPolicy) Attempts() int {
	if p.MaxAttempts > 0 {
		return p.MaxAttempts
	}
	return len(p.Delays) + 1
}

// Delay returns the wait before retry number retry (zero-based), clamped to
// the last configured delay.
func (p RetryPolicy) Delay(retry int) time.Duration {
	if len(p.Delays) == 0 || retry < 0 {
		return 0
	}
	if retry >= len(p.Delays) {
		return p.Delays[len(p.Delays)-1]
	}
	return p.Delays[retry]
}

// sleepFunc suspends the calling goroutine for d or until ctx is done.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
