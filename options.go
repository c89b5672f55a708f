package triage

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Reedboot/triage-saurus/finding"
)

// Option configures the Engine.
type Option func(*engineConfig)

// engineConfig holds configuration for the Engine instance.
type engineConfig struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	categories *finding.CategoryMap
}

// WithLogger sets a custom structured logger for the engine.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the engine.
// Each pipeline stage (enumerate, parse, dedupe, rank, write) is recorded
// as a child span of the run span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *engineConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter used for the engine's counters
// (accepted records, skipped duplicates, failed documents).
func WithMeter(meter metric.Meter) Option {
	return func(c *engineConfig) {
		c.meter = meter
	}
}

// WithCategoryMap sets the resource-type classification table.
// If not provided, finding.DefaultCategoryMap is used.
func WithCategoryMap(categories *finding.CategoryMap) Option {
	return func(c *engineConfig) {
		c.categories = categories
	}
}
