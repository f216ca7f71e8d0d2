package baselinker_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/baselinker/pkg/baselinker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockAPI *baselinker.MockCaller) *baselinker.Client {
	logger := otelzap.New(zap.NewNop())
	return baselinker.NewWithCaller(mockAPI, logger, nil)
}

func TestNew_MissingToken(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	for _, token := range []string{"", "   "} {
		client, err := baselinker.New(baselinker.Config{Token: token, URL: srv.URL}, nil, nil)

		require.Error(t, err)
		assert.Nil(t, client)

		var cfgErr *baselinker.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "token", cfgErr.Field)
		assert.ErrorIs(t, err, baselinker.ErrMissingToken)
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := baselinker.New(baselinker.Config{Token: testToken, URL: "not a url"}, nil, nil)

	var cfgErr *baselinker.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "url", cfgErr.Field)
}

func TestNew_WithMock(t *testing.T) {
	client, err := baselinker.New(baselinker.Config{Token: testToken, UseMock: true}, nil, nil)
	require.NoError(t, err)

	resp, err := client.Orders().GetOrderStatusList(context.Background())

	require.NoError(t, err)
	assert.Equal(t, baselinker.StatusSuccess, resp.Status())
}

func TestNew_HTTPRoundTrip(t *testing.T) {
	api, srv := newFakeAPI(t, okBody)
	noRetry := baselinker.NoRetry()

	client, err := baselinker.New(baselinker.Config{
		Token: testToken,
		URL:   srv.URL,
		Retry: &noRetry,
	}, otelzap.New(zap.NewNop()), nil)
	require.NoError(t, err)

	resp, err := client.Orders().GetOrders(context.Background(), &baselinker.OrdersRequest{
		OrderID: baselinker.Ptr(12345),
	})

	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", resp.Status())
	assert.Equal(t, []string{"getOrders"}, api.lastForm()["method"])
	assert.JSONEq(t, `{"order_id":12345}`, api.lastForm()["parameters"][0])
}

func TestClient_Call_EmptyMethod(t *testing.T) {
	mockAPI := baselinker.NewMockCaller()
	client := newTestClient(mockAPI)

	_, err := client.Call(context.Background(), " ", nil)

	assert.ErrorIs(t, err, baselinker.ErrUnknownMethod)
	assert.Empty(t, mockAPI.Calls())
}

func TestClient_Call_APIError(t *testing.T) {
	mockAPI := baselinker.NewMockCaller()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	_, err := client.Call(context.Background(), baselinker.MethodGetOrders, nil)

	var apiErr *baselinker.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ERROR_MOCK", apiErr.Code())
}

func TestClient_CallBatch(t *testing.T) {
	mockAPI := baselinker.NewMockCaller()
	mockAPI.OnCall = func(ctx context.Context, method string, params map[string]any) (baselinker.Response, error) {
		if method == baselinker.MethodGetInvoices {
			return nil, &baselinker.APIError{Method: method, ErrorCode: "ERROR_X", Message: "nope"}
		}
		return baselinker.Response{"status": "SUCCESS", "method": method}, nil
	}
	client := newTestClient(mockAPI)

	results := client.CallBatch(context.Background(), []baselinker.BatchCall{
		{Method: baselinker.MethodGetOrders, Parameters: baselinker.Params{"order_id": 1}},
		{Method: baselinker.MethodGetInvoices},
		{Method: baselinker.MethodGetSeries},
	}, 2)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "getOrders", results[0].Response.String("method"))
	assert.Error(t, results[1].Err)
	assert.Equal(t, baselinker.MethodGetInvoices, results[1].Method)
	assert.NoError(t, results[2].Err)
	assert.Len(t, mockAPI.Calls(), 3)
}

func TestClient_CallBatch_Empty(t *testing.T) {
	client := newTestClient(baselinker.NewMockCaller())

	results := client.CallBatch(context.Background(), nil, 0)

	assert.Empty(t, results)
}

func TestMockCaller_SimulateLatencyHonoursContext(t *testing.T) {
	mockAPI := baselinker.NewMockCaller()
	mockAPI.SimulateLatency = 1 << 40
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mockAPI.Call(ctx, baselinker.MethodGetOrders, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mockAPI.Calls())
}

func TestMockCaller_LastCall(t *testing.T) {
	mockAPI := baselinker.NewMockCaller()

	_, ok := mockAPI.LastCall()
	assert.False(t, ok)

	_, err := mockAPI.Call(context.Background(), baselinker.MethodGetOrderSources, nil)
	require.NoError(t, err)

	call, ok := mockAPI.LastCall()
	require.True(t, ok)
	assert.Equal(t, baselinker.MethodGetOrderSources, call.Method)
	assert.Nil(t, call.Parameters)
}
