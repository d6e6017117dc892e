// Package tracing sets up OpenTelemetry tracing for the matrix service.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "github.com/MikeSquared-Agency/Matrix"

// Config configures the tracer provider. An empty OTLPEndpoint disables export.
type Config struct {
	ServiceName  string
	OTLPEndpoint string
	SampleRate   float64
}

// Provider wraps the SDK tracer provider. The zero value is a no-op.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// Init installs a global tracer provider exporting over OTLP gRPC.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.OTLPEndpoint == "" {
		return &Provider{}, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	// No schema URL here: merging one with the SDK's own detectors fails
	// whenever the two semconv versions differ.
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		_ = exporter.Shutdown(ctx)
		return nil, fmt.Errorf("create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRate <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{provider: provider}, nil
}

func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}

// StartTransitionSpan starts a span for a workflow transition request.
func StartTransitionSpan(ctx context.Context, sessionID, action string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "workflow."+action,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("matrix.session_id", sessionID)),
	)
}

// RecordTransition annotates a transition span with its outcome.
func RecordTransition(span trace.Span, from, to string, violations []string) {
	span.SetAttributes(
		attribute.String("matrix.from_stage", from),
		attribute.String("matrix.to_stage", to),
	)
	RecordViolations(span, violations)
}

// StartRankingSpan starts a span for a scoring computation.
func StartRankingSpan(ctx context.Context, criteria, alternatives int) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "scoring.rank",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("matrix.criteria", criteria),
			attribute.Int("matrix.alternatives", alternatives),
		),
	)
}

// RecordViolations marks a span as rejected with the violation count.
func RecordViolations(span trace.Span, violations []string) {
	if len(violations) == 0 {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.SetAttributes(attribute.Int("matrix.violations", len(violations)))
	span.SetStatus(codes.Error, "rejected")
}
