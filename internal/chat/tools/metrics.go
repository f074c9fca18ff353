package tools

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "lights-assistant/tools"

type toolMetrics struct {
	tracer      trace.Tracer
	invocations metric.Int64Counter
	errors      metric.Int64Counter
	duration    metric.Float64Histogram
}

func newToolMetrics(mp metric.MeterProvider, tp trace.TracerProvider) *toolMetrics {
	tracer := tp.Tracer(instrumentationName)

	m, err := buildToolMetrics(mp.Meter(instrumentationName), tracer)
	if err != nil {
		slog.Warn("Failed to create tool metrics, recording disabled", "error", err)
		m, _ = buildToolMetrics(noop.NewMeterProvider().Meter(instrumentationName), tracer)
	}
	return m
}

func buildToolMetrics(meter metric.Meter, tracer trace.Tracer) (*toolMetrics, error) {
	invocations, err := meter.Int64Counter(
		"lights.tool.invocations",
		metric.WithDescription("Total number of tool calls requested by the model"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"lights.tool.errors",
		metric.WithDescription("Total number of tool calls that returned an error"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"lights.tool.duration",
		metric.WithDescription("Tool call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &toolMetrics{
		tracer:      tracer,
		invocations: invocations,
		errors:      errs,
		duration:    duration,
	}, nil
}

// start opens a span for a tool call; the returned func closes it, records
// the call's metrics and reports how long the call took
func (m *toolMetrics) start(ctx context.Context, name string) (context.Context, func(error) time.Duration) {
	attrs := []attribute.KeyValue{attribute.String("tool.name", name)}

	ctx, span := m.tracer.Start(ctx, "tool "+name, trace.WithAttributes(attrs...))
	start := time.Now()

	return ctx, func(err error) time.Duration {
		defer span.End()

		elapsed := time.Since(start)
		m.invocations.Add(ctx, 1, metric.WithAttributes(attrs...))
		m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))

		if err != nil {
			m.errors.Add(ctx, 1, metric.WithAttributes(attrs...))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return elapsed
	}
}

// globalProviders returns the process-wide providers installed at startup
func globalProviders() (metric.MeterProvider, trace.TracerProvider) {
	return otel.GetMeterProvider(), otel.GetTracerProvider()
}
