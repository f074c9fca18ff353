package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Telemetry instruments the metrics server's own requests
type Telemetry struct {
	requestCounter  metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func NewTelemetry() (*Telemetry, error) {
	meter := otel.Meter("lights-assistant/httpx")

	requestCounter, err := meter.Int64Counter(
		"http.server.requests",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &Telemetry{
		requestCounter:  requestCounter,
		requestDuration: requestDuration,
	}, nil
}

// statusRecorder captures the status code written by the next handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request count and duration per route and status
func (t *Telemetry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", r.URL.Path),
			attribute.Int("http.status_code", rec.status),
		)
		t.requestCounter.Add(r.Context(), 1, attrs)
		t.requestDuration.Record(r.Context(), time.Since(start).Seconds(), attrs)

		slog.DebugContext(r.Context(), "Served request", "method", r.Method, "path", r.URL.Path, "status", rec.status)
	})
}
