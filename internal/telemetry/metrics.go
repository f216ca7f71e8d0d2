package telemetry

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tournevent/baselinker/pkg/baselinker"
)

// Metrics holds all Prometheus metrics for the service. It implements
// baselinker.Observer so the executor can report into it directly.
type Metrics struct {
	CallsTotal      *prometheus.CounterVec
	CallDuration    *prometheus.HistogramVec
	AttemptsTotal   *prometheus.CounterVec
	RetriesTotal    *prometheus.CounterVec
	APIErrors       *prometheus.CounterVec
	GatewayRequests *prometheus.CounterVec
}

// NewMetrics creates metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baselinker_calls_total",
				Help: "Total number of Baselinker calls by method and outcome",
			},
			[]string{"method", "status"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "baselinker_call_duration_seconds",
				Help:    "Baselinker call duration in seconds, retries and backoff included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		AttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baselinker_attempts_total",
				Help: "Total number of HTTP attempts by method",
			},
			[]string{"method"},
		),
		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baselinker_retries_total",
				Help: "Total number of retries by method and error code",
			},
			[]string{"method", "code"},
		),
		APIErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baselinker_errors_total",
				Help: "Total failed Baselinker calls by method and error type",
			},
			[]string{"method", "error_type"},
		),
		GatewayRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baselinker_gateway_requests_total",
				Help: "Total gateway requests by route and HTTP status",
			},
			[]string{"route", "code"},
		),
	}
}

// OnAttempt implements baselinker.Observer.
func (m *Metrics) OnAttempt(method string, attempt int) {
	m.AttemptsTotal.WithLabelValues(method).Inc()
}

// OnRetry implements baselinker.Observer.
func (m *Metrics) OnRetry(method string, attempt int, delay time.Duration, err error) {
	m.RetriesTotal.WithLabelValues(method, baselinker.CodeOf(err)).Inc()
}

// OnRequestEnd implements baselinker.Observer.
func (m *Metrics) OnRequestEnd(method string, attempts int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		m.APIErrors.WithLabelValues(method, ErrorType(err)).Inc()
	}
	m.CallsTotal.WithLabelValues(method, status).Inc()
	m.CallDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordGatewayRequest counts one request served by the gateway.
func (m *Metrics) RecordGatewayRequest(route, code string) {
	m.GatewayRequests.WithLabelValues(route, code).Inc()
}

// ErrorType buckets a call failure for metric labels.
func ErrorType(err error) string {
	var (
		apiErr       *baselinker.APIError
		transportErr *baselinker.TransportError
		exhausted    *baselinker.ExhaustedRetriesError
	)
	switch {
	case errors.As(err, &exhausted):
		return "exhausted"
	case errors.As(err, &apiErr):
		return "api"
	case errors.As(err, &transportErr):
		return "transport"
	default:
		return "other"
	}
}

var _ baselinker.Observer = (*Metrics)(nil)
