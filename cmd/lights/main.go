package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/acai-travel/lights-assistant/internal/chat"
	"github.com/acai-travel/lights-assistant/internal/chat/assistant"
	"github.com/acai-travel/lights-assistant/internal/chat/tools"
	"github.com/acai-travel/lights-assistant/internal/config"
	"github.com/acai-travel/lights-assistant/internal/httpx"
	"github.com/acai-travel/lights-assistant/internal/lights"
	"github.com/openai/openai-go/v2/option"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	// Logs go to stderr so they never interleave with the chat on stdout
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// Initialize OpenTelemetry
	meterProvider, err := httpx.SetupMeterProvider()
	if err != nil {
		slog.Error("Failed to initialize OpenTelemetry", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpx.Shutdown(shutdownCtx, meterProvider); err != nil {
			slog.Error("Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	tracerProvider := httpx.SetupTracerProvider(slog.Default())
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpx.ShutdownTracing(shutdownCtx, tracerProvider); err != nil {
			slog.Error("Failed to shutdown tracing", "error", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(cfg.MetricsAddr)
		if err != nil {
			slog.Error("Failed to start metrics server", "error", err)
			return 1
		}
		defer stop()
	}

	// Initialize components
	registry := tools.NewLightsRegistry(lights.NewRegistry())

	var requestOpts []option.RequestOption
	if cfg.OpenAIBaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	assist := assistant.New(registry,
		assistant.WithModel(cfg.Model),
		assistant.WithSystemPrompt(cfg.SystemPrompt),
		assistant.WithMaxToolRounds(cfg.MaxToolRounds),
		assistant.WithRequestOptions(requestOpts...),
	)

	session := chat.NewSession(os.Stdin, os.Stdout, assist)

	if err := session.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("Chat session interrupted")
			return 0
		}
		slog.Error("Chat session failed", "session_id", session.ID, "error", err)
		return 1
	}

	return 0
}

func serveMetrics(addr string) (func(), error) {
	telemetry, err := httpx.NewTelemetry()
	if err != nil {
		return nil, err
	}

	srv := httpx.NewServer(addr, telemetry)

	go func() {
		slog.Info("Starting the metrics server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server error", "error", err)
		}
	}()

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Metrics server shutdown error", "error", err)
		}
	}, nil
}
