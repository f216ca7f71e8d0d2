package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tournevent/baselinker/pkg/baselinker"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port         int    `envconfig:"PORT" default:"80"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	BatchLimit   int    `envconfig:"BATCH_CONCURRENCY" default:"4"`
	MaxBatchSize int    `envconfig:"BATCH_MAX_SIZE" default:"50"`

	// Baselinker
	BaselinkerToken       string          `envconfig:"BASELINKER_TOKEN"`
	BaselinkerURL         string          `envconfig:"BASELINKER_URL" default:"https://api.baselinker.com/connector.php"`
	BaselinkerVerifyTLS   bool            `envconfig:"BASELINKER_VERIFY_TLS" default:"true"`
	BaselinkerDebug       bool            `envconfig:"BASELINKER_DEBUG" default:"false"`
	BaselinkerTimeout     time.Duration   `envconfig:"BASELINKER_TIMEOUT" default:"30s"`
	BaselinkerRetryDelays []time.Duration `envconfig:"BASELINKER_RETRY_DELAYS" default:"1s,2s,4s"`
	BaselinkerMaxAttempts int             `envconfig:"BASELINKER_MAX_ATTEMPTS" default:"0"`
	BaselinkerUseMock     bool            `envconfig:"BASELINKER_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.claude.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"tournevent-baselinker"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// RetryPolicy returns the backoff configured for Baselinker calls.
func (c *Config) RetryPolicy() baselinker.RetryPolicy {
	delays := make([]time.Duration, len(c.BaselinkerRetryDelays))
	copy(delays, c.BaselinkerRetryDelays)
	return baselinker.RetryPolicy{
		Delays:      delays,
		MaxAttempts: c.BaselinkerMaxAttempts,
	}
}

// Client returns the Baselinker client configuration. The token is not
// validated here; baselinker.New rejects a missing one.
func (c *Config) Client(observer baselinker.Observer) baselinker.Config {
	retry := c.RetryPolicy()
	return baselinker.Config{
		Token:         c.BaselinkerToken,
		URL:           c.BaselinkerURL,
		Debug:         c.BaselinkerDebug,
		SkipTLSVerify: !c.BaselinkerVerifyTLS,
		Timeout:       c.BaselinkerTimeout,
		Retry:         &retry,
		Observer:      observer,
		UseMock:       c.BaselinkerUseMock,
	}
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("baselinker.debug", c.BaselinkerDebug),
		attribute.Bool("baselinker.verify_tls", c.BaselinkerVerifyTLS),
		attribute.Bool("baselinker.mock", c.BaselinkerUseMock),
		attribute.Int("baselinker.max_attempts", c.RetryPolicy().Attempts()),
	}
}
