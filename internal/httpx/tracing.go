package httpx

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogSpanProcessor writes every finished span to a structured logger.
// Failed spans are logged at warn level, the rest at debug.
type LogSpanProcessor struct {
	logger *slog.Logger
}

func NewLogSpanProcessor(logger *slog.Logger) *LogSpanProcessor {
	return &LogSpanProcessor{logger: logger}
}

func (p *LogSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *LogSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	level := slog.LevelDebug
	if s.Status().Code == codes.Error {
		level = slog.LevelWarn
	}

	attrs := []any{
		"span", s.Name(),
		"trace_id", s.SpanContext().TraceID().String(),
		"duration", s.EndTime().Sub(s.StartTime()),
	}
	if desc := s.Status().Description; desc != "" {
		attrs = append(attrs, "status", desc)
	}

	p.logger.Log(context.Background(), level, "Span ended", attrs...)
}

func (p *LogSpanProcessor) Shutdown(context.Context) error   { return nil }
func (p *LogSpanProcessor) ForceFlush(context.Context) error { return nil }

// SetupTracerProvider installs a global tracer provider that logs finished spans
func SetupTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogSpanProcessor(logger)))
	otel.SetTracerProvider(provider)
	return provider
}

// ShutdownTracing flushes and stops the tracer provider
func ShutdownTracing(ctx context.Context, provider *sdktrace.TracerProvider) error {
	if provider == nil {
		return nil
	}
	return provider.Shutdown(ctx)
}
