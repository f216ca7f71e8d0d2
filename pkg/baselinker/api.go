package baselinker

import (
	"context"
	"time"
)

// Caller executes one remote operation. The production implementation is
// HTTPCaller; MockCaller stands in for it in tests and offline runs.
type Caller interface {
	// Call invokes method with params and returns the decoded response.
	// params may be nil, a Params mapping or any JSON-encodable request.
	Call(ctx context.Context, method string, params any) (Response, error)
}

// Observer receives diagnostic events from the executor. Implementations
// must be safe for concurrent use; panics are recovered and never change
// the outcome of a call.
type Observer interface {
	// OnAttempt is called before each attempt; attempt starts at 0.
	OnAttempt(method string, attempt int)

	// OnRetry is called before the executor waits delay ahead of a retry.
	OnRetry(method string, attempt int, delay time.Duration, err error)

	// OnRequestEnd is called once per call with the final outcome.
	OnRequestEnd(method string, attempts int, duration time.Duration, err error)
}
