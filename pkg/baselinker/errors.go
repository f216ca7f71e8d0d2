package baselinker

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Sentinel errors for common client failures.
var (
	// ErrMissingToken indicates the client was built without an API token.
	ErrMissingToken = errors.New("baselinker API token is not configured")

	// ErrInvalidResponse indicates the API answered with a body that is not a JSON object.
	ErrInvalidResponse = errors.New("invalid response from baselinker")

	// ErrUnknownMethod indicates the method name is not a known Baselinker operation.
	ErrUnknownMethod = errors.New("unknown baselinker method")

	// ErrRateLimited indicates the API rejected the call because of rate limiting.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// retryableCodes are the API error codes that indicate a transient failure.
var retryableCodes = map[string]bool{
	"429": true, // rate limit exceeded
	"503": true, // service unavailable
	"504": true, // gateway timeout
}

// ConfigurationError is returned when the client cannot be constructed.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("baselinker configuration error (%s): %s", e.Field, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// TransportError is an HTTP-level failure: the connection failed or the
// endpoint answered with a non-2xx status. StatusCode is zero when no
// response was received.
type TransportError struct {
	Method     string
	StatusCode int
	Message    string
	Body       string
	Cause      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("baselinker transport error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Method != "" {
		fmt.Fprintf(&b, " calling %s", e.Method)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Code returns the HTTP status as the error code.
func (e *TransportError) Code() string {
	if e.StatusCode == 0 {
		return ""
	}
	return strconv.Itoa(e.StatusCode)
}

// Retryable reports whether the failure is expected to resolve on retry.
// Connection failures and 5xx responses are; 4xx responses and undecodable
// 2xx bodies are not.
func (e *TransportError) Retryable() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode >= http.StatusInternalServerError
}

// Is matches ErrRateLimited against an HTTP 429 answer.
func (e *TransportError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// APIError is a well-formed response whose body carries status "ERROR".
type APIError struct {
	Method    string
	ErrorCode string
	Message   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("baselinker API error (%s): %s", e.ErrorCode, e.Message)
}

// Code returns the error code reported by the API.
func (e *APIError) Code() string {
	return e.ErrorCode
}

// Retryable reports whether the error code marks a transient failure.
func (e *APIError) Retryable() bool {
	return retryableCodes[e.ErrorCode]
}

// Is lets errors.Is match API errors by code, and ErrRateLimited against code 429.
func (e *APIError) Is(target error) bool {
	if target == ErrRateLimited {
		return e.ErrorCode == "429"
	}
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

// ExhaustedRetriesError is returned when every attempt failed with a
// retryable error. It carries the last observed error.
type ExhaustedRetriesError struct {
	Method   string
	Attempts int
	Last     error
}

// Error implements the error interface.
func (e *ExhaustedRetriesError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("baselinker %s: request failed after %d attempts", e.Method, e.Attempts)
	}
	return fmt.Sprintf("baselinker %s: request failed after %d attempts: %v", e.Method, e.Attempts, e.Last)
}

// Unwrap returns the last observed error.
func (e *ExhaustedRetriesError) Unwrap() error {
	return e.Last
}

// Code returns the code of the last observed error.
func (e *ExhaustedRetriesError) Code() string {
	return CodeOf(e.Last)
}

// Message returns the message of the last observed error.
func (e *ExhaustedRetriesError) Message() string {
	var apiErr *APIError
	if errors.As(e.Last, &apiErr) {
		return apiErr.Message
	}
	var transportErr *TransportError
	if errors.As(e.Last, &transportErr) && transportErr.Message != "" {
		return transportErr.Message
	}
	if e.Last != nil {
		return e.Last.Error()
	}
	return "request failed after retries"
}

// Retryable is always false: the retry budget has already been spent.
func (e *ExhaustedRetriesError) Retryable() bool {
	return false
}

// ClassifiedError is implemented by every failure the executor produces.
type ClassifiedError interface {
	error
	Code() string
	Retryable() bool
}

// Classify turns an HTTP exchange into a ClassifiedError. It returns nil for
// a 2xx response whose body does not carry status "ERROR".
func Classify(method string, statusCode int, body Response) ClassifiedError {
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return &TransportError{
			Method:     method,
			StatusCode: statusCode,
			Message:    http.StatusText(statusCode),
		}
	}
	if body.Status() != StatusError {
		return nil
	}
	msg := body.String("error_message")
	if msg == "" {
		msg = "Unknown API error"
	}
	return &APIError{
		Method:    method,
		ErrorCode: normalizeCode(body["error_code"]),
		Message:   msg,
	}
}

// IsRetryableCode reports whether an API error code is transient.
func IsRetryableCode(code string) bool {
	return retryableCodes[strings.TrimSpace(code)]
}

// IsRetryable returns true if the error is a classified, retryable failure.
func IsRetryable(err error) bool {
	var classified ClassifiedError
	if errors.As(err, &classified) {
		return classified.Retryable()
	}
	return false
}

// IsRateLimit returns true if the error, or the last error behind an
// exhausted retry, is an API rate limit error.
func IsRateLimit(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// CodeOf returns the code carried by a classified error, or "" otherwise.
func CodeOf(err error) string {
	var classified ClassifiedError
	if errors.As(err, &classified) {
		return classified.Code()
	}
	return ""
}

// normalizeCode renders an error_code value (number or string) as a string.
func normalizeCode(v any) string {
	switch c := v.(type) {
	case nil:
		return "0"
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}
