package baselinker

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultURL is the single connector endpoint of the Baselinker API.
	DefaultURL = "https://api.baselinker.com/connector.php"

	tokenHeader  = "X-BLToken"
	userAgent    = "tournevent-baselinker/1.0"
	maxBodyBytes = 32 << 20
	maxBodyInLog = 2048
)

// HTTPCaller is the production Caller. It posts form-encoded requests to the
// connector endpoint and retries transient failures according to its
// RetryPolicy.
type HTTPCaller struct {
	url        string
	token      string
	debug      bool
	httpClient *http.Client
	retry      RetryPolicy
	observer   Observer
	logger     *otelzap.Logger
	tracer     trace.Tracer
	sleep      sleepFunc
}

// HTTPCallerConfig holds configuration for the HTTP caller.
type HTTPCallerConfig struct {
	URL           string
	Token         string
	Debug         bool          // Log requests, responses and retries
	SkipTLSVerify bool          // Disable certificate verification
	Timeout       time.Duration // Per-attempt timeout
	Retry         RetryPolicy
	Observer      Observer
	HTTPClient    *http.Client // Overrides Timeout and SkipTLSVerify when set
}

// NewHTTPCaller creates the HTTP caller. The token and URL are expected to
// be validated by the caller; see New.
func NewHTTPCaller(cfg HTTPCallerConfig, logger *otelzap.Logger, tracer trace.Tracer) *HTTPCaller {
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.SkipTLSVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in toggle
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}

	return &HTTPCaller{
		url:        endpoint,
		token:      cfg.Token,
		debug:      cfg.Debug,
		httpClient: httpClient,
		retry:      cfg.Retry,
		observer:   cfg.Observer,
		logger:     loggerOrNop(logger),
		tracer:     tracerOrDefault(tracer),
		sleep:      sleepContext,
	}
}

// Call executes method with retry and returns the decoded response.
func (c *HTTPCaller) Call(ctx context.Context, method string, params any) (Response, error) {
	encoded, hasParams, err := encodeParams(params)
	if err != nil {
		return nil, fmt.Errorf("baselinker %s: %w", method, err)
	}

	form := url.Values{}
	form.Set("method", method)
	if hasParams {
		form.Set("parameters", encoded)
	}

	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "baselinker."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("baselinker.method", method),
			attribute.String("baselinker.request_id", requestID),
		),
	)
	defer span.End()

	log := c.logger.WithOptions(zap.Fields(
		zap.String("method", method),
		zap.String("request_id", requestID),
	)).Ctx(ctx)
	if c.debug {
		log.Debug("Baselinker API request", zap.String("parameters", encoded))
	}

	start := time.Now()
	attempts := c.retry.Attempts()

	var lastErr ClassifiedError
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.retry.Delay(attempt - 1)
			if c.debug {
				log.Debug("Baselinker API retry",
					zap.Int("attempt", attempt),
					zap.Int64("delay_ms", delay.Milliseconds()),
				)
			}
			c.notify(log, func(o Observer) { o.OnRetry(method, attempt, delay, lastErr) })

			if err := c.sleep(ctx, delay); err != nil {
				return nil, c.finish(log, span, method, attempt, start, &TransportError{
					Method:  method,
					Message: "cancelled while waiting to retry",
					Cause:   err,
				})
			}
		}

		c.notify(log, func(o Observer) { o.OnAttempt(method, attempt) })

		resp, cerr := c.attempt(ctx, method, attempt, form)
		if cerr == nil {
			if c.debug {
				log.Debug("Baselinker API response",
					zap.String("status", resp.Status()),
					zap.Any("data", resp),
				)
			}
			c.finish(log, span, method, attempt+1, start, nil)
			return resp, nil
		}

		if c.debug {
			log.Warn("Baselinker API error",
				zap.Int("attempt", attempt),
				zap.String("message", cerr.Error()),
				zap.String("code", cerr.Code()),
			)
		}

		if ctx.Err() != nil || !cerr.Retryable() {
			return nil, c.finish(log, span, method, attempt+1, start, cerr)
		}
		lastErr = cerr
	}

	exhausted := &ExhaustedRetriesError{Method: method, Attempts: attempts}
	if lastErr != nil {
		exhausted.Last = lastErr
	}
	return nil, c.finish(log, span, method, attempts, start, exhausted)
}

// attempt performs a single HTTP exchange and classifies its outcome.
func (c *HTTPCaller) attempt(ctx context.Context, method string, n int, form url.Values) (resp Response, cerr ClassifiedError) {
	ctx, span := c.tracer.Start(ctx, "baselinker.attempt",
		trace.WithAttributes(attribute.Int("baselinker.attempt", n)),
	)
	defer func() {
		if cerr != nil {
			span.SetAttributes(attribute.String("baselinker.error_code", cerr.Code()))
			span.SetStatus(codes.Error, cerr.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Method: method, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("User-Agent", userAgent)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Message: "request failed", Cause: err}
	}
	defer httpResp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))

	if terr := Classify(method, httpResp.StatusCode, nil); terr != nil {
		if te, ok := terr.(*TransportError); ok {
			te.Body = truncate(string(body), maxBodyInLog)
		}
		return nil, terr
	}
	if readErr != nil {
		return nil, &TransportError{Method: method, Message: "failed to read response", Cause: readErr}
	}

	decoded, err := decodeResponse(body)
	if err != nil {
		return nil, &TransportError{
			Method:     method,
			StatusCode: httpResp.StatusCode,
			Message:    "failed to decode response",
			Body:       truncate(string(body), maxBodyInLog),
			Cause:      err,
		}
	}

	if aerr := Classify(method, httpResp.StatusCode, decoded); aerr != nil {
		return nil, aerr
	}
	return decoded, nil
}

// finish records the outcome of a call on the span, the observer and the
// log, and returns err unchanged.
func (c *HTTPCaller) finish(log otelzap.LoggerWithCtx, span trace.Span, method string, attempts int, start time.Time, err error) error {
	duration := time.Since(start)
	span.SetAttributes(attribute.Int("baselinker.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("Baselinker call failed",
			zap.Int("attempts", attempts),
			zap.Duration("duration", duration),
			zap.String("code", CodeOf(err)),
			zap.Error(err),
		)
	}
	c.notify(log, func(o Observer) { o.OnRequestEnd(method, attempts, duration, err) })
	return err
}

// notify invokes fn on the observer, if any, swallowing panics.
func (c *HTTPCaller) notify(log otelzap.LoggerWithCtx, fn func(Observer)) {
	if c.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn("Baselinker observer panicked", zap.Any("panic", r))
		}
	}()
	fn(c.observer)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Ensure HTTPCaller implements Caller
var _ Caller = (*HTTPCaller)(nil)
