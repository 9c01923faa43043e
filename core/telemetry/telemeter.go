package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceContext carries the context a strategy's span tree grows from,
// together with the remote context extracted from a carrier when setup was
// requested by another service.
type TraceContext struct {
	ctx       context.Context
	remote    bool
	remoteCtx context.Context
}

// TracingHandler groups the tracer and propagators used by production
// strategies.
type TracingHandler struct {
	Tracer      trace.Tracer
	Propagators propagation.TextMapPropagator
	isInit      bool
}

// TracingIsInit checks if telemetry was initialized.
func (th *TracingHandler) TracingIsInit() bool {
	return th.isInit
}

// TracingInit sets tracing telemetry init param as true.
func (th *TracingHandler) TracingInit() {
	th.isInit = true
}

// StartNewSpan starts new span.
func (th *TracingHandler) StartNewSpan(traceCtx TraceContext, spanName string, opts ...trace.SpanStartOption) (TraceContext, trace.Span) {
	if traceCtx.ctx == nil {
		traceCtx.ctx = context.Background()
	}

	ctx, span := th.Tracer.Start(traceCtx.ctx, spanName, opts...)
	return TraceContext{
		ctx:       ctx,
		remote:    traceCtx.remote,
		remoteCtx: traceCtx.remoteCtx,
	}, span
}

// ContextFromCarrier builds a trace context from the plain string map a
// hosting container passed along with setup parameters. Before the handler
// is initialized it returns a plain local context without extracting.
func (th *TracingHandler) ContextFromCarrier(m map[string]string) TraceContext {
	if !th.TracingIsInit() || len(m) == 0 {
		return TraceContext{ctx: context.Background()}
	}

	ctx := th.Propagators.Extract(context.Background(), UnpackCarrier(m))

	return TraceContext{
		ctx:       ctx,
		remote:    trace.SpanContextFromContext(ctx).IsRemote(),
		remoteCtx: ctx,
	}
}

// RemoteCarrier injects the remote context back into a carrier for calls
// that continue on another service. The carrier is empty for local traces.
func (th *TracingHandler) RemoteCarrier(traceCtx TraceContext) propagation.MapCarrier {
	carrier := propagation.MapCarrier{}
	if !th.TracingIsInit() || !traceCtx.remote {
		return carrier
	}

	th.Propagators.Inject(traceCtx.remoteCtx, carrier)
	return carrier
}
