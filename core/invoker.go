package core

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/anoideaopen/factory/core/contract"
	"github.com/anoideaopen/factory/core/logger"
	"github.com/anoideaopen/factory/core/reflectx"
	"github.com/anoideaopen/factory/core/stringsx"
	"github.com/anoideaopen/factory/core/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// tracerName identifies spans started by invokers and production strategies.
const tracerName = "github.com/anoideaopen/factory/core"

// Invoker resolves a configured method once and dispatches calls to it. The
// target is either a class name looked up through a contract.Lookup (its
// registered functions play the role of static methods) or an object
// instance whose method set is inspected through reflection. Resolution is
// lazy and memoized; arguments are converted afresh on every invocation.
type Invoker struct {
	id        string
	className string
	lookup    contract.Lookup
	instance  any
	method    string
	args      []any
	converter contract.Converter
	tracing   *telemetry.TracingHandler
	traceCtx  telemetry.TraceContext

	mu       sync.Mutex
	prepared bool
	prepErr  error
	handle   contract.Handle
}

// NewInvoker builds an invoker from the given options.
func NewInvoker(opts ...Option) (*Invoker, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return newInvoker(o), nil
}

func applyOptions(opts []Option) (*invokerOptions, error) {
	o := &invokerOptions{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func newInvoker(o *invokerOptions) *Invoker {
	inv := &Invoker{
		id:        uuid.NewString(),
		className: o.className,
		lookup:    o.lookup,
		instance:  o.instance,
		method:    o.method,
		args:      o.args,
		converter: o.converter,
		tracing:   o.tracing,
	}

	if inv.converter == nil {
		inv.converter = reflectx.Converter{}
	}
	if inv.tracing == nil {
		inv.tracing = &telemetry.TracingHandler{
			Tracer:      otel.Tracer(tracerName),
			Propagators: otel.GetTextMapPropagator(),
		}
		inv.tracing.TracingInit()
	}

	// Spans started by this invoker and its owning strategy grow from the
	// context the hosting container handed over, parenting them to the
	// caller's trace when the carrier holds a remote one.
	inv.traceCtx = inv.tracing.ContextFromCarrier(o.carrier)

	return inv
}

// ID returns the id this invoker reports in log fields and span attributes.
func (inv *Invoker) ID() string {
	return inv.id
}

// Prepare resolves the configured target and method to a single callable.
// It is idempotent: a second call returns the first outcome without
// re-resolving, whether that outcome was success or failure.
func (inv *Invoker) Prepare() error {
	return inv.prepareFrom(inv.traceCtx)
}

func (inv *Invoker) prepareFrom(traceCtx telemetry.TraceContext) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.prepared {
		return inv.prepErr
	}

	_, span := inv.tracing.StartNewSpan(traceCtx, "invoker.Prepare")
	defer span.End()
	span.SetAttributes(telemetry.InstanceID(inv.id))

	inv.prepared = true

	inv.handle, inv.prepErr = inv.resolve()
	if inv.prepErr != nil {
		span.SetStatus(codes.Error, inv.prepErr.Error())
		return inv.prepErr
	}

	span.SetAttributes(telemetry.TargetKind(inv.handle.Kind.String()))
	span.SetStatus(codes.Ok, "")

	logger.Logger().WithFields(map[string]any{
		"instance_id": inv.id,
		"class":       inv.handle.Class,
		"method":      inv.handle.Method,
		"target_kind": inv.handle.Kind.String(),
	}).Debug("method resolved")

	return nil
}

func (inv *Invoker) resolve() (contract.Handle, error) {
	if inv.method == "" {
		return contract.Handle{}, fmt.Errorf("%w: method name is not set", ErrConfiguration)
	}
	if inv.instance != nil && inv.className != "" {
		return contract.Handle{}, fmt.Errorf("%w: both an instance and a class are set", ErrConfiguration)
	}

	switch {
	case inv.instance != nil:
		return inv.resolveInstance()
	case inv.className != "":
		return inv.resolveStatic()
	default:
		return contract.Handle{}, fmt.Errorf("%w: neither an instance nor a class is set", ErrConfiguration)
	}
}

func (inv *Invoker) resolveInstance() (contract.Handle, error) {
	if !stringsx.OneOf(inv.method, reflectx.Methods(inv.instance)...) {
		return contract.Handle{}, fmt.Errorf("%w: '%s' on %T", ErrMethodNotFound, inv.method, inv.instance)
	}

	v := reflect.ValueOf(inv.instance)

	return inv.choose(contract.TargetInstance, v.Type().String(), []reflect.Value{v.MethodByName(inv.method)})
}

func (inv *Invoker) resolveStatic() (contract.Handle, error) {
	if inv.lookup == nil {
		return contract.Handle{}, fmt.Errorf("%w: class '%s' is set without a lookup", ErrConfiguration, inv.className)
	}

	cls, err := inv.lookup.Class(inv.className)
	if err != nil {
		return contract.Handle{}, fmt.Errorf("%w: %w", ErrResolution, err)
	}

	candidates := cls.Candidates(inv.method)
	if len(candidates) == 0 {
		return contract.Handle{}, fmt.Errorf("%w: '%s' on class '%s'", ErrMethodNotFound, inv.method, inv.className)
	}

	return inv.choose(contract.TargetStatic, cls.Name(), candidates)
}

// choose picks one callable among the candidates. A candidate matches when
// its arity fits the configured arguments (a variadic candidate accepts
// len(args) >= NumIn-1) and every argument is either directly assignable to
// its parameter type (cost 0) or adaptable by the converter (cost 1); an
// argument the converter rejects disqualifies the candidate. A fixed-arity
// match always beats a variadic one. Among the remaining matches the lowest
// total cost wins; a tie at the lowest cost is ambiguous.
func (inv *Invoker) choose(kind contract.TargetKind, class string, candidates []reflect.Value) (contract.Handle, error) {
	type match struct {
		handle contract.Handle
		weight int
	}

	var (
		fixed    []match
		variadic []match
		arityOK  bool
	)

	for _, fn := range candidates {
		h := contract.NewHandle(kind, class, inv.method, fn)

		if h.Variadic {
			if len(inv.args) < h.NumIn-1 {
				continue
			}
		} else if len(inv.args) != h.NumIn {
			continue
		}
		arityOK = true

		weight, ok := inv.weigh(h)
		if !ok {
			continue
		}

		if h.Variadic {
			variadic = append(variadic, match{handle: h, weight: weight})
		} else {
			fixed = append(fixed, match{handle: h, weight: weight})
		}
	}

	pool := fixed
	if len(pool) == 0 {
		pool = variadic
	}

	if len(pool) == 0 {
		if !arityOK {
			return contract.Handle{}, fmt.Errorf("%w: method '%s' with %d argument(s)", ErrArgumentCount, inv.method, len(inv.args))
		}

		return contract.Handle{}, fmt.Errorf("%w: no overload of '%s' accepts the given arguments", ErrResolution, inv.method)
	}

	best, ties := pool[0], 0
	for _, m := range pool[1:] {
		switch {
		case m.weight < best.weight:
			best, ties = m, 0
		case m.weight == best.weight:
			ties++
		}
	}

	if ties > 0 {
		return contract.Handle{}, fmt.Errorf("%w: %d overloads of '%s' match with conversion cost %d",
			ErrAmbiguousMethod, ties+1, inv.method, best.weight)
	}

	return best.handle, nil
}

// weigh computes the conversion cost of calling the candidate behind h with
// the configured arguments, trying the converter on every argument that is
// not directly assignable.
func (inv *Invoker) weigh(h contract.Handle) (weight int, ok bool) {
	for i, raw := range inv.args {
		t := h.ArgType(i)

		if raw != nil && reflect.TypeOf(raw).AssignableTo(t) {
			continue
		}

		if _, err := inv.converter.Convert(raw, t); err != nil {
			return 0, false
		}

		weight++
	}

	return weight, true
}

// Invoke converts the configured arguments and calls the resolved method.
// When the method's last result is a non-nil error, exactly that error value
// is returned, so errors.Is and errors.As keep working against the original
// failure; it is never wrapped. Remaining results collapse to nil, the bare
// value, or a []any. A panic inside the method is not intercepted.
//
// Invoke requires a prior successful Prepare and fails with ErrInvocation
// otherwise. Arguments are converted again on every call.
func (inv *Invoker) Invoke() (any, error) {
	return inv.invokeFrom(inv.traceCtx)
}

func (inv *Invoker) invokeFrom(traceCtx telemetry.TraceContext) (any, error) {
	inv.mu.Lock()
	prepared, prepErr, handle := inv.prepared, inv.prepErr, inv.handle
	inv.mu.Unlock()

	if !prepared || prepErr != nil || !handle.Valid() {
		return nil, fmt.Errorf("%w: invoker is not prepared", ErrInvocation)
	}

	_, span := inv.tracing.StartNewSpan(traceCtx, "invoker.Invoke")
	defer span.End()
	span.SetAttributes(telemetry.InstanceID(inv.id), telemetry.TargetKind(handle.Kind.String()))

	in, err := inv.convertArgs(handle)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	value, err := reflectx.Split(handle.Call(in), handle.ReturnsError)
	if err != nil {
		// The method's own failure, surfaced untouched.
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")

	return value, nil
}

func (inv *Invoker) convertArgs(h contract.Handle) ([]reflect.Value, error) {
	in := make([]reflect.Value, 0, len(inv.args))
	for i, raw := range inv.args {
		v, err := inv.converter.Convert(raw, h.ArgType(i))
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d of '%s': %w", ErrConversion, i, h.Method, err)
		}

		in = append(in, v)
	}

	return in, nil
}

// Prepared reports whether preparation has run and succeeded.
func (inv *Invoker) Prepared() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	return inv.prepared && inv.prepErr == nil
}

// Handle returns the resolved method handle. Before a successful Prepare it
// returns the zero handle.
func (inv *Invoker) Handle() contract.Handle {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.prepErr != nil {
		return contract.Handle{}
	}

	return inv.handle
}

// ResultType returns the declared type of the resolved method's first
// non-error result. It is nil before a successful Prepare and for methods
// without a value result; callers must tolerate that. A method with several
// value results produces a []any from Invoke; ResultType keeps reporting the
// first declared result.
func (inv *Invoker) ResultType() reflect.Type {
	return inv.Handle().Result
}

// RemoteCarrier returns the carrier for handing the invoker's originating
// trace on to another service, as a plain string map. It is empty when the
// trace began locally.
func (inv *Invoker) RemoteCarrier() map[string]string {
	return telemetry.PackCarrier(inv.tracing.RemoteCarrier(inv.traceCtx))
}
