// Package otel traces generation runs with OpenTelemetry by listening to
// pipeline events.
package otel

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hanpama/sdlgen/internal/eventbus"
	"github.com/hanpama/sdlgen/internal/events"
	"github.com/hanpama/sdlgen/internal/runid"
)

const tracerName = "github.com/hanpama/sdlgen"

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(ctx context.Context, endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe := Attach(tp.Tracer(tracerName))
	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

// Attach records a span per run and a child span per backend with tracer.
func Attach(tracer trace.Tracer) (unsubscribe func()) {
	s := &subscriber{tracer: tracer}
	return s.register()
}

type emitKey struct {
	run     string
	backend string
}

type subscriber struct {
	tracer    trace.Tracer
	runSpans  sync.Map // run id -> trace.Span
	emitSpans sync.Map // emitKey -> trace.Span
}

func (s *subscriber) register() func() {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.RunStart) {
			rid, _ := runid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "sdlgen.run")
			span.SetAttributes(
				attribute.String("sdlgen.run_id", rid),
				attribute.String("sdlgen.schema_dir", e.SchemaDir),
				attribute.String("sdlgen.output_dir", e.OutputDir),
				attribute.StringSlice("sdlgen.backends", e.Backends),
				attribute.Bool("sdlgen.dry_run", e.DryRun),
			)
			s.runSpans.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.SchemaLoaded) {
			rid, _ := runid.FromContext(ctx)
			end := time.Now()
			_, span := s.tracer.Start(s.parent(ctx, rid), "sdlgen.load",
				trace.WithTimestamp(end.Add(-e.Duration)))
			span.SetAttributes(attribute.String("sdlgen.schema_dir", e.SchemaDir))
			if e.Schema != nil {
				span.SetAttributes(
					attribute.Int("sdlgen.types", len(e.Schema.Types)),
					attribute.Int("sdlgen.operations",
						len(e.Schema.Queries)+len(e.Schema.Mutations)+len(e.Schema.Subscriptions)),
				)
			}
			fail(span, e.Err)
			span.End(trace.WithTimestamp(end))
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.EmitStart) {
			rid, _ := runid.FromContext(ctx)
			_, span := s.tracer.Start(s.parent(ctx, rid), "sdlgen.emit")
			span.SetAttributes(
				attribute.String("sdlgen.backend", e.Backend),
				attribute.String("sdlgen.path", e.Path),
				attribute.String("sdlgen.platform", e.Platform.String()),
			)
			s.emitSpans.Store(emitKey{rid, e.Backend}, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.EmitFinish) {
			rid, _ := runid.FromContext(ctx)
			v, ok := s.emitSpans.LoadAndDelete(emitKey{rid, e.Backend})
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(
				attribute.Int("sdlgen.bytes", e.Bytes),
				attribute.Bool("sdlgen.written", e.Written),
			)
			fail(span, e.Err)
			span.End()
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.RunFinish) {
			rid, _ := runid.FromContext(ctx)
			v, ok := s.runSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(
				attribute.Int("sdlgen.succeeded", e.Succeeded),
				attribute.Int("sdlgen.failed", e.Failed),
			)
			fail(span, e.Err)
			span.End()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (s *subscriber) parent(ctx context.Context, rid string) context.Context {
	if v, ok := s.runSpans.Load(rid); ok {
		return trace.ContextWithSpan(ctx, v.(trace.Span))
	}
	return ctx
}

func fail(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
