// Package baselinker provides a typed client for the Baselinker e-commerce
// management API.
//
// Every remote operation is a POST to a single connector endpoint carrying
// the operation name and a JSON parameter object. The client strips null
// parameters, authenticates with the account token, retries transient
// failures with backoff and reports failures as typed errors.
package baselinker

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "github.com/tournevent/baselinker/pkg/baselinker"

// Config holds Baselinker client configuration.
type Config struct {
	Token         string
	URL           string // Defaults to DefaultURL
	Debug         bool
	SkipTLSVerify bool
	Timeout       time.Duration
	Retry         *RetryPolicy // nil means DefaultRetryPolicy
	Observer      Observer
	UseMock       bool // When true, uses an in-memory mock caller
}

// Client is the Baselinker API client. It is safe for concurrent use.
type Client struct {
	caller Caller
	logger *otelzap.Logger
	tracer trace.Tracer

	catalog   *Catalog
	orders    *Orders
	shipments *Shipments
	storage   *ExternalStorage
}

// New creates a new Baselinker client. It fails with a *ConfigurationError
// when the token is missing or the URL is malformed; no request is made.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, &ConfigurationError{
			Field:   "token",
			Message: "Baselinker API token is not configured, set BASELINKER_TOKEN",
			Cause:   ErrMissingToken,
		}
	}
	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, &ConfigurationError{
				Field:   "url",
				Message: fmt.Sprintf("invalid endpoint URL %q", cfg.URL),
				Cause:   err,
			}
		}
	}

	retry := DefaultRetryPolicy()
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}

	var caller Caller
	if cfg.UseMock {
		caller = NewMockCaller()
	} else {
		caller = NewHTTPCaller(HTTPCallerConfig{
			URL:           cfg.URL,
			Token:         token,
			Debug:         cfg.Debug,
			SkipTLSVerify: cfg.SkipTLSVerify,
			Timeout:       cfg.Timeout,
			Retry:         retry,
			Observer:      cfg.Observer,
		}, logger, tracer)
	}

	return NewWithCaller(caller, logger, tracer), nil
}

// NewWithCaller creates a client around a custom Caller.
// This is useful for injecting mock callers in tests.
func NewWithCaller(caller Caller, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	c := &Client{
		caller: caller,
		logger: loggerOrNop(logger),
		tracer: tracerOrDefault(tracer),
	}
	c.catalog = &Catalog{caller: caller}
	c.orders = &Orders{caller: caller}
	c.shipments = &Shipments{caller: caller}
	c.storage = &ExternalStorage{caller: caller}
	return c
}

// Call invokes any remote operation by name. Resource methods should be
// preferred; Call exists for operations the typed surface does not cover yet.
func (c *Client) Call(ctx context.Context, method string, params any) (Response, error) {
	if strings.TrimSpace(method) == "" {
		return nil, fmt.Errorf("%w: empty method name", ErrUnknownMethod)
	}
	return c.caller.Call(ctx, method, params)
}

// Catalog returns the inventory and catalog operations.
func (c *Client) Catalog() *Catalog { return c.catalog }

// Orders returns the order management operations.
func (c *Client) Orders() *Orders { return c.orders }

// Shipments returns the courier and package operations.
func (c *Client) Shipments() *Shipments { return c.shipments }

// ExternalStorage returns the external storage (shop, wholesaler) operations.
func (c *Client) ExternalStorage() *ExternalStorage { return c.storage }

// BatchCall is one entry of a CallBatch request.
type BatchCall struct {
	Method     string `json:"method"`
	Parameters Params `json:"parameters,omitempty"`
}

// BatchResult is the outcome of one BatchCall, in request order.
type BatchResult struct {
	Method   string
	Response Response
	Err      error
}

// CallBatch runs independent calls concurrently, at most limit at a time
// (limit <= 0 means one at a time). Each call keeps its own retry budget;
// a failed call does not cancel the others.
func (c *Client) CallBatch(ctx context.Context, calls []BatchCall, limit int) []BatchResult {
	if limit <= 0 {
		limit = 1
	}

	ctx, span := c.tracer.Start(ctx, "baselinker.batch",
		trace.WithAttributes(attribute.Int("baselinker.batch.size", len(calls))),
	)
	defer span.End()

	results := make([]BatchResult, len(calls))

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, call := range calls {
		g.Go(func() error {
			var params any
			if call.Parameters != nil {
				params = call.Parameters
			}
			resp, err := c.Call(ctx, call.Method, params)
			results[i] = BatchResult{Method: call.Method, Response: resp, Err: err}
			return nil // Don't fail the group, continue with other calls
		})
	}

	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("baselinker.batch.failed", failed))
	c.logger.Ctx(ctx).Debug("Baselinker batch finished",
		zap.Int("calls", len(calls)),
		zap.Int("failed", failed),
	)
	return results
}

func loggerOrNop(logger *otelzap.Logger) *otelzap.Logger {
	if logger == nil {
		return otelzap.New(zap.NewNop())
	}
	return logger
}

func tracerOrDefault(tracer trace.Tracer) trace.Tracer {
	if tracer == nil {
		return otel.Tracer(instrumentationName)
	}
	return tracer
}
