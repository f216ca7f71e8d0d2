package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/baselinker/internal/telemetry"
	"github.com/tournevent/baselinker/pkg/baselinker"
)

func TestMetrics_ObserverCounts(t *testing.T) {
	m := telemetry.NewMetrics(prometheus.NewRegistry())
	rateLimited := &baselinker.APIError{ErrorCode: "429", Message: "limit"}

	m.OnAttempt("getOrders", 0)
	m.OnRetry("getOrders", 1, time.Second, rateLimited)
	m.OnAttempt("getOrders", 1)
	m.OnRequestEnd("getOrders", 2, 1500*time.Millisecond, nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AttemptsTotal.WithLabelValues("getOrders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RetriesTotal.WithLabelValues("getOrders", "429")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CallsTotal.WithLabelValues("getOrders", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CallDuration))
}

func TestMetrics_FailedCall(t *testing.T) {
	m := telemetry.NewMetrics(prometheus.NewRegistry())
	exhausted := &baselinker.ExhaustedRetriesError{
		Method:   "getOrders",
		Attempts: 4,
		Last:     &baselinker.TransportError{StatusCode: 503},
	}

	m.OnRequestEnd("getOrders", 4, time.Second, exhausted)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CallsTotal.WithLabelValues("getOrders", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.APIErrors.WithLabelValues("getOrders", "exhausted")))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.NewMetrics(prometheus.NewRegistry())
		telemetry.NewMetrics(prometheus.NewRegistry())
	})
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&baselinker.APIError{ErrorCode: "ERROR_BAD_TOKEN"}, "api"},
		{&baselinker.TransportError{StatusCode: 404}, "transport"},
		{&baselinker.ExhaustedRetriesError{Last: &baselinker.APIError{}}, "exhausted"},
		{fmt.Errorf("wrapped: %w", &baselinker.TransportError{}), "transport"},
		{errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, telemetry.ErrorType(tt.err), "%v", tt.err)
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error", "bogus"} {
		logger, err := telemetry.NewLogger(level, "svc", "1.0.0")
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}

func TestInitTracer_InvalidEndpoint(t *testing.T) {
	_, _, err := telemetry.InitTracer(context.Background(), "::not a url", "svc", "1.0.0")
	assert.Error(t, err)
}

func TestInitTracer(t *testing.T) {
	tracer, shutdown, err := telemetry.InitTracer(context.Background(), "http://127.0.0.1:4318", "svc", "1.0.0")
	require.NoError(t, err)
	require.NotNil(t, tracer)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
