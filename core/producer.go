package core

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/anoideaopen/factory/core/contract"
	"github.com/anoideaopen/factory/core/logger"
	"github.com/anoideaopen/factory/core/telemetry"
	"go.opentelemetry.io/otel/codes"
)

// Producer is the execute-and-produce production strategy. In singleton mode
// (the default) the target method runs once during Init and every Produce
// call returns the cached value; in prototype mode the method runs afresh on
// every Produce call and nothing is cached.
//
// Singleton lifecycle: StateUnprepared -> StatePrepared -> StateReady on the
// first successful invocation, or -> StateFailed when the setup invocation
// fails. Both end states are terminal; a failed producer never retries, and
// every later Produce reports ErrNotReady together with the stored setup
// error.
type Producer struct {
	inv       *Invoker
	singleton bool

	mu       sync.RWMutex
	gate     sync.Once
	state    contract.State
	cached   any
	setupErr error

	initialized bool
}

var _ contract.Producer = (*Producer)(nil)

// NewProducer builds a producer from the given options. Producers are
// singletons unless WithPrototype is given.
func NewProducer(opts ...Option) (*Producer, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	p := &Producer{
		inv:       newInvoker(o),
		singleton: true,
		state:     contract.StateUnprepared,
	}
	if o.singleton != nil {
		p.singleton = *o.singleton
	}

	return p, nil
}

// Init prepares the target and, in singleton mode, immediately invokes it
// and caches the value. A hosting container calls it exactly once after
// configuration; any further call returns ErrAlreadyInitialized. A failed
// setup invocation leaves the producer permanently in StateFailed.
func (p *Producer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.initialized = true

	traceCtx, span := p.inv.tracing.StartNewSpan(p.inv.traceCtx, "producer.Init")
	defer span.End()
	span.SetAttributes(telemetry.InstanceID(p.inv.id), telemetry.Mode(p.mode()))

	if err := p.init(traceCtx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Logger().WithField("instance_id", p.inv.id).WithError(err).Error("setup invocation failed")

		return err
	}

	span.SetStatus(codes.Ok, "")

	return nil
}

// init runs under p.mu.
func (p *Producer) init(traceCtx telemetry.TraceContext) error {
	if err := p.inv.prepareFrom(traceCtx); err != nil {
		return err
	}

	if err := p.transition(contract.StatePrepared); err != nil {
		return err
	}

	if !p.singleton {
		return nil
	}

	// The invocation-and-cache step runs at most once over the producer's
	// lifetime, whatever path reaches it.
	var err error
	p.gate.Do(func() {
		var value any
		if value, err = p.inv.invokeFrom(traceCtx); err != nil {
			p.setupErr = err
			p.state = contract.StateFailed

			return
		}

		p.cached = value
		p.state = contract.StateReady
	})

	p.log("lifecycle state reached")

	return err
}

// transition moves the lifecycle to next, validating the step.
func (p *Producer) transition(next contract.State) error {
	if !p.state.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrLifecycle, p.state, next)
	}

	p.state = next
	p.log("lifecycle state reached")

	return nil
}

func (p *Producer) log(msg string) {
	logger.Logger().WithFields(map[string]any{
		"instance_id": p.inv.id,
		"mode":        p.mode().String(),
		"state":       p.state.String(),
	}).Debug(msg)
}

// Produce returns the produced object. In singleton mode it is a read of
// the value cached during Init; reading before readiness fails with
// ErrNotReady rather than invoking, and after a failed setup the stored
// error is carried alongside ErrNotReady. In prototype mode every call
// invokes the target method afresh, and per-call failures do not change the
// lifecycle state.
func (p *Producer) Produce() (any, error) {
	if !p.singleton {
		return p.inv.Invoke()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	switch p.state {
	case contract.StateReady:
		return p.cached, nil
	case contract.StateFailed:
		return nil, fmt.Errorf("%w: setup failed: %w", ErrNotReady, p.setupErr)
	default:
		return nil, ErrNotReady
	}
}

// ResultType returns the declared type of produced objects, nil until the
// target has been resolved.
func (p *Producer) ResultType() reflect.Type {
	return p.inv.ResultType()
}

// IsSingleton reports whether Produce returns a shared cached value.
func (p *Producer) IsSingleton() bool {
	return p.singleton
}

// State returns the producer's lifecycle state.
func (p *Producer) State() contract.State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state
}

// Invoker returns the underlying invoker, mainly for inspecting the
// resolved handle.
func (p *Producer) Invoker() *Invoker {
	return p.inv
}

func (p *Producer) mode() telemetry.ModeNum {
	if p.singleton {
		return telemetry.ModeSingleton
	}

	return telemetry.ModePrototype
}
