package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/baselinker/internal/server"
	"github.com/tournevent/baselinker/internal/telemetry"
	"github.com/tournevent/baselinker/pkg/baselinker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type testServer struct {
	handler http.Handler
	mock    *baselinker.MockCaller
	metrics *telemetry.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := otelzap.New(zap.NewNop())
	mockAPI := baselinker.NewMockCaller()
	client := baselinker.NewWithCaller(mockAPI, logger, nil)

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)

	srv := server.New(server.Config{Port: 8080, MaxBatchSize: 3}, client, logger, metrics, reg)
	return &testServer{handler: srv.Handler(), mock: mockAPI, metrics: metrics}
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Call_Success(t *testing.T) {
	ts := newTestServer(t)
	ts.mock.OnCall = func(ctx context.Context, method string, params map[string]any) (baselinker.Response, error) {
		return baselinker.Response{"status": "SUCCESS", "orders": []any{}}, nil
	}

	rec := ts.do(http.MethodPost, "/v1/call", `{"method":"getOrders","parameters":{"order_id":12345,"status_id":null}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "SUCCESS", resp["status"])

	call, ok := ts.mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, "getOrders", call.Method)
	assert.Equal(t, map[string]any{"order_id": float64(12345)}, call.Parameters)
}

func TestServer_Call_WithoutParameters(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/call", `{"method":"getOrderSources"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	call, ok := ts.mock.LastCall()
	require.True(t, ok)
	assert.Nil(t, call.Parameters)
}

func TestServer_Call_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/v1/call", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "ERROR", resp["status"])
	assert.Equal(t, server.CodeMethodNotAllowed, resp["error_code"])
}

func TestServer_Call_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/call", "invalid json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, server.CodeBadRequest, decode(t, rec)["error_code"])
}

func TestServer_Call_UnknownMethod(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/call", `{"method":"dropDatabase"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, server.CodeUnknownMethod, decode(t, rec)["error_code"])
	assert.Empty(t, ts.mock.Calls())
}

func TestServer_Call_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "api error",
			err:        &baselinker.APIError{ErrorCode: "ERROR_BAD_TOKEN", Message: "Invalid user token"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ERROR_BAD_TOKEN",
		},
		{
			name:       "transport error",
			err:        &baselinker.TransportError{StatusCode: http.StatusNotFound, Message: "Not Found"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "404",
		},
		{
			name:       "connection error",
			err:        &baselinker.TransportError{Message: "request failed"},
			wantStatus: http.StatusBadGateway,
			wantCode:   server.CodeTransport,
		},
		{
			name: "exhausted retries",
			err: &baselinker.ExhaustedRetriesError{
				Method:   "getOrders",
				Attempts: 4,
				Last:     &baselinker.APIError{ErrorCode: "429", Message: "Query limit exceeded"},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "429",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.mock.OnCall = func(ctx context.Context, method string, params map[string]any) (baselinker.Response, error) {
				return nil, tt.err
			}

			rec := ts.do(http.MethodPost, "/v1/call", `{"method":"getOrders"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			assert.Equal(t, "ERROR", resp["status"])
			assert.Equal(t, tt.wantCode, resp["error_code"])
			assert.NotEmpty(t, resp["error_message"])
		})
	}
}

func TestServer_Batch(t *testing.T) {
	ts := newTestServer(t)
	ts.mock.OnCall = func(ctx context.Context, method string, params map[string]any) (baselinker.Response, error) {
		if method == baselinker.MethodGetInvoices {
			return nil, &baselinker.APIError{ErrorCode: "ERROR_X", Message: "nope"}
		}
		return baselinker.Response{"status": "SUCCESS"}, nil
	}

	rec := ts.do(http.MethodPost, "/v1/batch", `{"calls":[
		{"method":"getOrders","parameters":{"order_id":1}},
		{"method":"notAMethod"},
		{"method":"getInvoices"}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "SUCCESS", resp["status"])
	assert.NotEmpty(t, resp["batch_id"])

	results, ok := resp["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 3)

	first := results[0].(map[string]any)
	assert.Equal(t, "SUCCESS", first["status"])
	assert.Equal(t, "getOrders", first["method"])

	second := results[1].(map[string]any)
	assert.Equal(t, server.CodeUnknownMethod, second["error_code"])

	third := results[2].(map[string]any)
	assert.Equal(t, "ERROR_X", third["error_code"])

	assert.Len(t, ts.mock.Calls(), 2)
}

func TestServer_Batch_TooLarge(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/batch", `{"calls":[
		{"method":"getOrders"},{"method":"getOrders"},{"method":"getOrders"},{"method":"getOrders"}
	]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.mock.Calls())
}

func TestServer_Batch_Empty(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/batch", `{"calls":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Methods(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/v1/methods", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	methods, ok := resp["methods"].([]any)
	require.True(t, ok)
	assert.Len(t, methods, len(baselinker.Operations()))

	first := methods[0].(map[string]any)
	assert.Contains(t, first, "name")
	assert.Contains(t, first, "group")
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)
	ts.do(http.MethodGet, "/v1/methods", "")
	ts.do(http.MethodPost, "/v1/call", `{"method":"nope"}`)

	assert.Equal(t, float64(1), testutil.ToFloat64(ts.metrics.GatewayRequests.WithLabelValues("/v1/methods", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ts.metrics.GatewayRequests.WithLabelValues("/v1/call", "422")))

	rec := ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "baselinker_gateway_requests_total")
}
