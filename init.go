package main

import (
	"context"

	"github.com/tournevent/baselinker/internal/config"
	"github.com/tournevent/baselinker/internal/telemetry"
	"github.com/tournevent/baselinker/pkg/baselinker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(cfg *config.Config) (*otelzap.Logger, error) {
	return telemetry.NewLogger(cfg.LogLevel, cfg.ServiceName, cfg.Version)
}

// initTracer returns a nil tracer when tracing is disabled; the client then
// falls back to the global provider.
func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version, cfg.Attributes()...)
}

func initClient(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer, metrics *telemetry.Metrics) (*baselinker.Client, error) {
	var observer baselinker.Observer
	if metrics != nil {
		observer = metrics
	}
	return baselinker.New(cfg.Client(observer), logger, tracer)
}
