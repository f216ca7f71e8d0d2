package baselinker_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/baselinker/pkg/baselinker"
)

func TestClassify_Success(t *testing.T) {
	err := baselinker.Classify("getOrders", http.StatusOK, baselinker.Response{"status": "SUCCESS"})
	assert.Nil(t, err)
}

func TestClassify_MissingStatusIsSuccess(t *testing.T) {
	err := baselinker.Classify("getOrders", http.StatusOK, baselinker.Response{"orders": []any{}})
	assert.Nil(t, err)
}

func TestClassify_HTTPStatus(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, false},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := baselinker.Classify("getOrders", tt.status, nil)
			require.NotNil(t, err)

			var transportErr *baselinker.TransportError
			require.True(t, errors.As(err, &transportErr))
			assert.Equal(t, tt.status, transportErr.StatusCode)
			assert.Equal(t, fmt.Sprint(tt.status), err.Code())
			assert.Equal(t, tt.retryable, err.Retryable())
		})
	}
}

func TestClassify_APIError(t *testing.T) {
	body := baselinker.Response{
		"status":        "ERROR",
		"error_code":    "ERROR_BAD_TOKEN",
		"error_message": "Invalid user token",
	}

	err := baselinker.Classify("getOrders", http.StatusOK, body)
	require.NotNil(t, err)

	var apiErr *baselinker.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ERROR_BAD_TOKEN", apiErr.Code())
	assert.Equal(t, "Invalid user token", apiErr.Message)
	assert.Equal(t, "getOrders", apiErr.Method)
	assert.False(t, apiErr.Retryable())
}

func TestClassify_APIErrorDefaults(t *testing.T) {
	err := baselinker.Classify("getOrders", http.StatusOK, baselinker.Response{"status": "ERROR"})
	require.NotNil(t, err)

	assert.Equal(t, "0", err.Code())
	assert.Contains(t, err.Error(), "Unknown API error")
}

func TestClassify_NumericErrorCodes(t *testing.T) {
	tests := []struct {
		name      string
		code      any
		want      string
		retryable bool
	}{
		{"float", float64(429), "429", true},
		{"json number", json.Number("503"), "503", true},
		{"string", "504", "504", true},
		{"padded string", " 429 ", "429", true},
		{"not transient", json.Number("500"), "500", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := baselinker.Response{"status": "ERROR", "error_code": tt.code}
			err := baselinker.Classify("getOrders", http.StatusOK, body)
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Code())
			assert.Equal(t, tt.retryable, err.Retryable())
		})
	}
}

func TestIsRetryableCode(t *testing.T) {
	assert.True(t, baselinker.IsRetryableCode("429"))
	assert.True(t, baselinker.IsRetryableCode("503"))
	assert.True(t, baselinker.IsRetryableCode("504"))
	assert.False(t, baselinker.IsRetryableCode("500"))
	assert.False(t, baselinker.IsRetryableCode("ERROR_BAD_TOKEN"))
	assert.False(t, baselinker.IsRetryableCode(""))
}

func TestIsRateLimit(t *testing.T) {
	rateLimited := &baselinker.APIError{ErrorCode: "429", Message: "Too many requests"}
	exhausted := &baselinker.ExhaustedRetriesError{Method: "getOrders", Attempts: 4, Last: rateLimited}

	assert.True(t, baselinker.IsRateLimit(rateLimited))
	assert.True(t, baselinker.IsRateLimit(exhausted))
	assert.True(t, baselinker.IsRateLimit(&baselinker.TransportError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, baselinker.IsRateLimit(&baselinker.APIError{ErrorCode: "503"}))
	assert.False(t, baselinker.IsRateLimit(errors.New("boom")))
}

func TestAPIError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &baselinker.APIError{ErrorCode: "ERROR_BAD_TOKEN", Message: "bad"})

	assert.True(t, errors.Is(err, &baselinker.APIError{ErrorCode: "ERROR_BAD_TOKEN"}))
	assert.False(t, errors.Is(err, &baselinker.APIError{ErrorCode: "ERROR_OTHER"}))
}

func TestExhaustedRetriesError(t *testing.T) {
	last := &baselinker.APIError{Method: "getOrders", ErrorCode: "503", Message: "Service unavailable"}
	err := &baselinker.ExhaustedRetriesError{Method: "getOrders", Attempts: 4, Last: last}

	assert.Equal(t, "503", err.Code())
	assert.Equal(t, "Service unavailable", err.Message())
	assert.False(t, err.Retryable())
	assert.ErrorIs(t, err, last)
	assert.Contains(t, err.Error(), "4 attempts")
	assert.False(t, baselinker.IsRetryable(err))
}

func TestTransportError_ConnectionFailureIsRetryable(t *testing.T) {
	err := &baselinker.TransportError{Method: "getOrders", Message: "request failed", Cause: errors.New("connection refused")}

	assert.True(t, err.Retryable())
	assert.Equal(t, "", err.Code())
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "ERROR_X", baselinker.CodeOf(&baselinker.APIError{ErrorCode: "ERROR_X"}))
	assert.Equal(t, "404", baselinker.CodeOf(&baselinker.TransportError{StatusCode: 404}))
	assert.Equal(t, "", baselinker.CodeOf(errors.New("plain")))
}

func TestConfigurationError(t *testing.T) {
	err := &baselinker.ConfigurationError{Field: "token", Message: "missing", Cause: baselinker.ErrMissingToken}

	assert.ErrorIs(t, err, baselinker.ErrMissingToken)
	assert.Contains(t, err.Error(), "token")
}
