package observe

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracing records bootstrap steps as OpenTelemetry spans.
//
// The bootstrapper replaces its own process image at the end of every run, so
// spans are exported synchronously to a local writer (stderr in practice) and
// flushed before the exec handoff. There is no network exporter: the process
// has no lifetime in which to serve or flush one.
type Tracing struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// StartTracing sets up span tracing for one bootstrap run.
//
// When enabled is false the returned Tracing is a no-op and Shutdown is free.
// The writer receives one JSON span record per line.
func StartTracing(ctx context.Context, enabled bool, w io.Writer, version string) (*Tracing, error) {
	if !enabled {
		return &Tracing{
			tracer: tracenoop.NewTracerProvider().Tracer("noop"),
		}, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("clawstrap"),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	// Syncer exports each span as it ends; the run is a handful of spans,
	// and the batching pipeline would only add a flush hazard before exec.
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	return &Tracing{
		tracer:   provider.Tracer("github.com/jonwraymond/clawstrap"),
		provider: provider,
	}, nil
}

// StartSpan starts a span for one bootstrap step.
func (t *Tracing) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span, recording any error.
func (t *Tracing) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Shutdown flushes and stops the provider. It must run before the process
// image is replaced; spans still in flight afterwards are gone for good.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	if err := t.provider.ForceFlush(ctx); err != nil {
		return err
	}
	return t.provider.Shutdown(ctx)
}
