package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/baselinker/internal/telemetry"
	"github.com/tournevent/baselinker/pkg/baselinker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Error codes produced by the gateway itself, next to the ones relayed
// from Baselinker.
const (
	CodeUnknownMethod    = "ERROR_UNKNOWN_METHOD"
	CodeBadRequest       = "ERROR_BAD_REQUEST"
	CodeMethodNotAllowed = "ERROR_METHOD_NOT_ALLOWED"
	CodeTransport        = "ERROR_TRANSPORT"
	CodeInternal         = "ERROR_INTERNAL"
)

const maxRequestBytes = 8 << 20

// Server is the HTTP gateway in front of the Baselinker client.
type Server struct {
	port       int
	batchLimit int
	maxBatch   int
	client     *baselinker.Client
	logger     *otelzap.Logger
	metrics    *telemetry.Metrics
	gatherer   prometheus.Gatherer
}

// Config holds server configuration.
type Config struct {
	Port         int
	BatchLimit   int // concurrent calls per batch
	MaxBatchSize int
}

// New creates a new server instance. gatherer backs /metrics and should be
// the registry metrics were registered with.
func New(cfg Config, client *baselinker.Client, logger *otelzap.Logger, metrics *telemetry.Metrics, gatherer prometheus.Gatherer) *Server {
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = 4
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 50
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	return &Server{
		port:       cfg.Port,
		batchLimit: cfg.BatchLimit,
		maxBatch:   cfg.MaxBatchSize,
		client:     client,
		logger:     logger,
		metrics:    metrics,
		gatherer:   gatherer,
	}
}

// Handler returns the gateway routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	// API
	mux.HandleFunc("/v1/call", s.handleCall)
	mux.HandleFunc("/v1/batch", s.handleBatch)
	mux.HandleFunc("/v1/methods", s.handleMethods)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
		// Calls may spend up to 7s in backoff on top of the per-attempt timeout.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type callRequest struct {
	Method     string            `json:"method"`
	Parameters baselinker.Params `json:"parameters,omitempty"`
}

type batchRequest struct {
	Calls []callRequest `json:"calls"`
}

type batchResponse struct {
	Status  string           `json:"status"`
	BatchID string           `json:"batch_id"`
	Results []map[string]any `json:"results"`
}

// errorEnvelope mirrors the error shape of the Baselinker API.
type errorEnvelope struct {
	Status       string `json:"status"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	const route = "/v1/call"
	if !s.requirePost(w, r, route) {
		return
	}

	var req callRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeJSON(w, route, http.StatusBadRequest, envelope(CodeBadRequest, "Invalid JSON: "+err.Error()))
		return
	}
	if !baselinker.IsKnownOperation(req.Method) {
		s.writeError(w, route, fmt.Errorf("%w: %q", baselinker.ErrUnknownMethod, req.Method))
		return
	}

	var params any
	if req.Parameters != nil {
		params = req.Parameters
	}

	resp, err := s.client.Call(r.Context(), req.Method, params)
	if err != nil {
		s.logger.Ctx(r.Context()).Warn("Gateway call failed",
			zap.String("method", req.Method),
			zap.Error(err),
		)
		s.writeError(w, route, err)
		return
	}
	s.writeJSON(w, route, http.StatusOK, resp)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	const route = "/v1/batch"
	if !s.requirePost(w, r, route) {
		return
	}

	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeJSON(w, route, http.StatusBadRequest, envelope(CodeBadRequest, "Invalid JSON: "+err.Error()))
		return
	}
	if len(req.Calls) == 0 {
		s.writeJSON(w, route, http.StatusBadRequest, envelope(CodeBadRequest, "calls must not be empty"))
		return
	}
	if len(req.Calls) > s.maxBatch {
		s.writeJSON(w, route, http.StatusBadRequest,
			envelope(CodeBadRequest, fmt.Sprintf("at most %d calls per batch", s.maxBatch)))
		return
	}

	results := make([]map[string]any, len(req.Calls))
	calls := make([]baselinker.BatchCall, 0, len(req.Calls))
	index := make([]int, 0, len(req.Calls))
	for i, c := range req.Calls {
		if !baselinker.IsKnownOperation(c.Method) {
			results[i] = errorResult(c.Method, fmt.Errorf("%w: %q", baselinker.ErrUnknownMethod, c.Method))
			continue
		}
		calls = append(calls, baselinker.BatchCall{Method: c.Method, Parameters: c.Parameters})
		index = append(index, i)
	}

	for j, res := range s.client.CallBatch(r.Context(), calls, s.batchLimit) {
		if res.Err != nil {
			results[index[j]] = errorResult(res.Method, res.Err)
			continue
		}
		out := make(map[string]any, len(res.Response)+1)
		for k, v := range res.Response {
			out[k] = v
		}
		out["method"] = res.Method
		results[index[j]] = out
	}

	s.writeJSON(w, route, http.StatusOK, batchResponse{
		Status:  baselinker.StatusSuccess,
		BatchID: uuid.NewString(),
		Results: results,
	})
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	const route = "/v1/methods"
	if r.Method != http.MethodGet {
		s.writeJSON(w, route, http.StatusMethodNotAllowed, envelope(CodeMethodNotAllowed, "Method not allowed, use GET"))
		return
	}
	s.writeJSON(w, route, http.StatusOK, map[string]any{
		"status":  baselinker.StatusSuccess,
		"methods": baselinker.Operations(),
	})
}

func (s *Server) requirePost(w http.ResponseWriter, r *http.Request, route string) bool {
	if r.Method == http.MethodPost {
		return true
	}
	s.writeJSON(w, route, http.StatusMethodNotAllowed, envelope(CodeMethodNotAllowed, "Method not allowed, use POST"))
	return false
}

func (s *Server) writeError(w http.ResponseWriter, route string, err error) {
	status, body := errorResponse(err)
	s.writeJSON(w, route, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, body any) {
	if s.metrics != nil {
		s.metrics.RecordGatewayRequest(route, strconv.Itoa(status))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to write response", zap.String("route", route), zap.Error(err))
	}
}

// errorResponse maps a client error to an HTTP status and an envelope.
func errorResponse(err error) (int, errorEnvelope) {
	var (
		exhausted    *baselinker.ExhaustedRetriesError
		apiErr       *baselinker.APIError
		transportErr *baselinker.TransportError
	)
	switch {
	case errors.Is(err, baselinker.ErrUnknownMethod):
		return http.StatusUnprocessableEntity, envelope(CodeUnknownMethod, err.Error())
	case errors.As(err, &exhausted):
		return http.StatusServiceUnavailable, envelope(codeOr(exhausted.Code(), CodeTransport), exhausted.Message())
	case errors.As(err, &apiErr):
		return http.StatusBadRequest, envelope(apiErr.ErrorCode, apiErr.Message)
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, envelope(codeOr(transportErr.Code(), CodeTransport), transportErr.Error())
	default:
		return http.StatusInternalServerError, envelope(CodeInternal, err.Error())
	}
}

func errorResult(method string, err error) map[string]any {
	_, env := errorResponse(err)
	return map[string]any{
		"method":        method,
		"status":        env.Status,
		"error_code":    env.ErrorCode,
		"error_message": env.ErrorMessage,
	}
}

func envelope(code, message string) errorEnvelope {
	return errorEnvelope{Status: baselinker.StatusError, ErrorCode: code, ErrorMessage: message}
}

func codeOr(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.UseNumber()
	return dec.Decode(v)
}
