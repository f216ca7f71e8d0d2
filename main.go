package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tournevent/baselinker/internal/server"
	"github.com/tournevent/baselinker/internal/telemetry"
	"github.com/tournevent/baselinker/pkg/baselinker"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "baselinker",
	Short:        "Baselinker API client and HTTP gateway",
	Version:      version,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	RunE:  runServe,
}

var callCmd = &cobra.Command{
	Use:   "call <method>",
	Short: "Call a single Baselinker method and print the response",
	Args:  cobra.ExactArgs(1),
	RunE:  runCall,
}

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the known Baselinker methods",
	Args:  cobra.NoArgs,
	RunE:  runMethods,
}

var callParams string

func init() {
	callCmd.Flags().StringVarP(&callParams, "params", "p", "", "method parameters as a JSON object")

	rootCmd.AddCommand(serveCmd, callCmd, methodsCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(context.Background())
	}

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	client, err := initClient(cfg, logger, tracer, metrics)
	if err != nil {
		return err
	}

	logger.Info("Starting Baselinker gateway",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Bool("mock", cfg.BaselinkerUseMock),
	)

	// Start HTTP server
	srv := server.New(server.Config{
		Port:         cfg.Port,
		BatchLimit:   cfg.BatchLimit,
		MaxBatchSize: cfg.MaxBatchSize,
	}, client, logger, metrics, prometheus.DefaultGatherer)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runCall(cmd *cobra.Command, args []string) error {
	method := args[0]
	if !baselinker.IsKnownOperation(method) {
		return fmt.Errorf("%w: %q", baselinker.ErrUnknownMethod, method)
	}

	var params any
	if callParams != "" {
		var p baselinker.Params
		if err := json.Unmarshal([]byte(callParams), &p); err != nil {
			return fmt.Errorf("parsing --params: %w", err)
		}
		params = p
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := initClient(cfg, logger, nil, nil)
	if err != nil {
		return err
	}

	resp, err := client.Call(cmd.Context(), method, params)
	if err != nil {
		return err
	}
	return printJSON(cmd, resp)
}

func runMethods(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, op := range baselinker.Operations() {
		fmt.Fprintf(out, "%-18s %s\n", op.Group, op.Name)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
