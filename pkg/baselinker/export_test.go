package baselinker

import (
	"context"
	"time"
)

// SetSleep replaces the backoff sleeper so tests can record delays
// without waiting for them.
func SetSleep(c *HTTPCaller, fn func(ctx context.Context, d time.Duration) error) {
	c.sleep = fn
}
