package baselinker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecordedCall is a call captured by MockCaller, with parameters already
// normalized the way HTTPCaller would send them.
type RecordedCall struct {
	Method     string
	Parameters map[string]any
}

// MockCaller is an in-memory Caller for tests and offline runs.
type MockCaller struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	// OnCall, when set, produces the response for every call.
	OnCall func(ctx context.Context, method string, params map[string]any) (Response, error)

	mu    sync.Mutex
	calls []RecordedCall
}

// NewMockCaller creates a new mock caller with default behavior.
func NewMockCaller() *MockCaller {
	return &MockCaller{}
}

// Call records the call and returns a canned success response.
func (m *MockCaller) Call(ctx context.Context, method string, params any) (Response, error) {
	if m.SimulateLatency > 0 {
		if err := sleepContext(ctx, m.SimulateLatency); err != nil {
			return nil, err
		}
	}

	encoded, ok, err := encodeParams(params)
	if err != nil {
		return nil, fmt.Errorf("baselinker %s: %w", method, err)
	}
	var normalized map[string]any
	if ok {
		if err := json.Unmarshal([]byte(encoded), &normalized); err != nil {
			return nil, fmt.Errorf("baselinker %s: %w", method, err)
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, RecordedCall{Method: method, Parameters: normalized})
	m.mu.Unlock()

	if m.SimulateErrors {
		return nil, &APIError{Method: method, ErrorCode: "ERROR_MOCK", Message: "Simulated API error"}
	}

	if m.OnCall != nil {
		return m.OnCall(ctx, method, normalized)
	}

	return Response{
		"status":     StatusSuccess,
		"request_id": "mock-" + uuid.New().String()[:8],
	}, nil
}

// Calls returns a copy of every call received so far.
func (m *MockCaller) Calls() []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent call, or false when none was made.
func (m *MockCaller) LastCall() (RecordedCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return RecordedCall{}, false
	}
	return m.calls[len(m.calls)-1], true
}

var _ Caller = (*MockCaller)(nil)
