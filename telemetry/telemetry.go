// Package telemetry wires compile and evaluate instrumentation to
// OpenTelemetry. NoopProvider is a zero-allocation trace.TracerProvider
// used as the default so the engine never pays for tracing it hasn't been
// asked to do; hosts supply a real provider (e.g. from an OTLP exporter) to
// get actual spans.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer emits one span per Step call; the engine opens one for each
// Compile and each Evaluate.
// Its Step method matches the shape of a construction-time trace hook:
// callers get back an end function to defer.
type Tracer struct {
	tracer trace.Tracer
}

// New builds a Tracer backed by provider's "github.com/kairoslabs/hfsm"
// instrumentation scope. A nil provider falls back to NoopProvider.
func New(provider trace.TracerProvider) *Tracer {
	if provider == nil {
		provider = NoopProvider()
	}
	return &Tracer{tracer: provider.Tracer("github.com/kairoslabs/hfsm")}
}

// Step starts a span named step, tags it with the strings passed in names
// (a qualified name for compile, an event name for evaluate), and returns a function that ends the span and optionally records
// an error (the first non-nil argument, if any, is recorded as the span
// error).
func (t *Tracer) Step(ctx context.Context, step string, names ...string) func(...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	attrs := make([]attribute.KeyValue, 0, len(names))
	for i, name := range names {
		attrs = append(attrs, attribute.String(elementAttr(i), name))
	}
	_, span := t.tracer.Start(ctx, step, trace.WithAttributes(attrs...))
	return func(args ...any) {
		for _, arg := range args {
			if err, ok := arg.(error); ok && err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
		}
		span.End()
	}
}

func elementAttr(i int) string {
	if i == 0 {
		return "hfsm.element"
	}
	return "hfsm.element." + string(rune('0'+i))
}

// NoopProvider returns a trace.TracerProvider whose spans perform no work,
// adapted from the shim this package originally carried as its only
// implementation. Kept as the engine's zero-value default.
func NoopProvider() trace.TracerProvider {
	return noopProvider
}

var noopProvider = &provider{}

type provider struct{ trace.TracerProvider }

func (p *provider) Tracer(name string, options ...trace.TracerOption) trace.Tracer {
	return noopTracer
}

var noopTracer = &tracer{}

type tracer struct{ trace.Tracer }

func (t *tracer) Start(ctx context.Context, name string, options ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, noopSpan
}

var noopSpan = &span{}

type span struct{ trace.Span }

func (s *span) End(options ...trace.SpanEndOption)                  {}
func (s *span) AddEvent(name string, options ...trace.EventOption)  {}
func (s *span) AddLink(link trace.Link)                             {}
func (s *span) IsRecording() bool                                   { return false }
func (s *span) RecordError(err error, options ...trace.EventOption) {}
func (s *span) SetAttributes(kv ...attribute.KeyValue)              {}
func (s *span) SetName(name string)                                 {}
func (s *span) SetStatus(code codes.Code, description string)       {}
func (s *span) SpanContext() trace.SpanContext                      { return trace.SpanContext{} }
func (s *span) TracerProvider() trace.TracerProvider                { return noopProvider }
