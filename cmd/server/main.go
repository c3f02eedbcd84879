// Command main is the entry point for the SimplePostApp server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simplepost/internal/bootstrap"
	"simplepost/internal/config"
	"simplepost/internal/middleware"
	"simplepost/internal/observability"
	"simplepost/internal/server"
)

// @title SimplePostApp API
// @version 1.0
// @description CRUD API for blog posts

// @BasePath /api/v1
// @schemes http https

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	middleware.ConfigureLogger(cfg.LogFormat, cfg.LogLevel)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "simplepost-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Mode,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		return err
	}

	srv, err := server.NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	app := srv.NewApp()

	listenErr := make(chan error, 1)
	go func() {
		middleware.Logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("mode", cfg.Mode))
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return awaitShutdown(listenErr, sigChan, 10*time.Second,
		namedShutdown{"server resource shutdown", srv.Shutdown},
		namedShutdown{"tracing shutdown", shutdownTracing},
	)
}

type namedShutdown struct {
	name string
	fn   func(context.Context) error
}

// awaitShutdown blocks until the listener fails or a signal arrives, then
// runs every step within timeout. Steps run on both paths.
func awaitShutdown(listenErr <-chan error, sigChan <-chan os.Signal, timeout time.Duration, steps ...namedShutdown) error {
	var errs []error
	select {
	case err := <-listenErr:
		if err != nil {
			errs = append(errs, fmt.Errorf("server stopped: %w", err))
		}
	case sig := <-sigChan:
		middleware.Logger.Info("Shutting down server...", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.name, err))
		}
	}
	return errors.Join(errs...)
}

