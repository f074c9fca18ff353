package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v2"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnknownTool is returned by Invoke for names that were never registered
var ErrUnknownTool = errors.New("unknown tool")

// Registry maps tool names to their schema and handler
type Registry struct {
	tools   map[string]Tool
	order   []string
	metrics *toolMetrics
}

// NewRegistry creates a new tool registry reporting to the global
// OpenTelemetry providers
func NewRegistry() *Registry {
	return NewRegistryWithProviders(globalProviders())
}

// NewRegistryWithProviders creates a new tool registry reporting to the given providers
func NewRegistryWithProviders(mp metric.MeterProvider, tp trace.TracerProvider) *Registry {
	return &Registry{
		tools:   make(map[string]Tool),
		metrics: newToolMetrics(mp, tp),
	}
}

// Register adds a tool to the registry, replacing any tool with the same name
func (r *Registry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// Definitions returns OpenAI tool definitions in registration order
func (r *Registry) Definitions() []openai.ChatCompletionToolUnionParam {
	defs := make([]openai.ChatCompletionToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// List returns names of all registered tools in registration order
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Invoke dispatches a tool call by name and records its outcome
func (r *Registry) Invoke(ctx context.Context, name, arguments string) (string, error) {
	tool, exists := r.Get(name)
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	ctx, done := r.metrics.start(ctx, name)

	result, err := tool.Execute(ctx, arguments)
	elapsed := done(err)

	if err != nil {
		slog.WarnContext(ctx, "Tool call failed", "name", name, "error", err, "duration", elapsed)
		return "", err
	}

	slog.DebugContext(ctx, "Tool call succeeded", "name", name, "result", result, "duration", elapsed)
	return result, nil
}
