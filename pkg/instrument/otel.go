package instrument

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for reactive runtimes.
const defaultTracerName = "reactive"

// TraceConfig configures the OpenTelemetry observer.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "reactive").
	TracerName string

	// EffectSpans enables a span per effect run. Enabled by default;
	// disable for write-heavy runtimes where per-run spans are too noisy
	// and flush spans are enough.
	EffectSpans bool

	// MemoSpans enables a span per memo recompute. Enabled by default.
	MemoSpans bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the OpenTelemetry observer.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithEffectSpans enables or disables per-effect-run spans.
func WithEffectSpans(enabled bool) TraceOption {
	return func(c *TraceConfig) {
		c.EffectSpans = enabled
	}
}

// WithMemoSpans enables or disables per-memo-recompute spans.
func WithMemoSpans(enabled bool) TraceOption {
	return func(c *TraceConfig) {
		c.MemoSpans = enabled
	}
}

// defaultTraceConfig returns the default OpenTelemetry configuration.
func defaultTraceConfig() TraceConfig {
	return TraceConfig{
		TracerName:  defaultTracerName,
		EffectSpans: true,
		MemoSpans:   true,
	}
}

// Tracing is a reactive.Observer that emits OpenTelemetry spans for
// effect runs, memo recomputes, and batch flushes. Because observer
// callbacks fire after the work completed, spans are back-dated by the
// reported duration so their start and end times bracket the real run.
type Tracing struct {
	config TraceConfig
}

// OpenTelemetry creates a tracing observer.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before creating the runtime:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-app"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
//
//	rt := reactive.NewRuntime(
//	    reactive.WithObserver(instrument.OpenTelemetry(
//	        instrument.WithTracerName("my-app"),
//	    )),
//	)
func OpenTelemetry(opts ...TraceOption) *Tracing {
	config := defaultTraceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &Tracing{config: config}
}

// span emits a completed span covering the d interval ending now.
func (t *Tracing) span(name string, d time.Duration, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, sp := t.config.tracer.Start(
		context.Background(),
		name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(end.Add(-d)),
	)
	sp.End(trace.WithTimestamp(end))
}

// SignalWrite implements reactive.Observer. Writes are not traced; they
// surface through the effect and flush spans they cause.
func (t *Tracing) SignalWrite(signalID uint64) {}

// EffectRun emits a span for a completed effect run.
func (t *Tracing) EffectRun(effectID uint64, name string, d time.Duration) {
	if !t.config.EffectSpans {
		return
	}
	spanName := "reactive.effect"
	if name != "" {
		spanName = fmt.Sprintf("reactive.effect %s", name)
	}
	t.span(spanName, d,
		attribute.Int64("reactive.effect_id", int64(effectID)),
		attribute.String("reactive.effect_name", name),
	)
}

// MemoRecompute emits a span for a completed memo recompute.
func (t *Tracing) MemoRecompute(memoID uint64, d time.Duration) {
	if !t.config.MemoSpans {
		return
	}
	t.span("reactive.memo", d,
		attribute.Int64("reactive.memo_id", int64(memoID)),
	)
}

// BatchFlush emits a span for a completed batch flush.
func (t *Tracing) BatchFlush(queued int, d time.Duration) {
	t.span("reactive.flush", d,
		attribute.Int("reactive.flush_queued", queued),
	)
}

// OwnerDisposed implements reactive.Observer. Disposals are not traced.
func (t *Tracing) OwnerDisposed(ownerID uint64) {}

// ComputationPanic emits a zero-length error event span.
func (t *Tracing) ComputationPanic(computationID uint64) {
	_, sp := t.config.tracer.Start(
		context.Background(),
		"reactive.panic",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int64("reactive.computation_id", int64(computationID))),
	)
	sp.End()
}
