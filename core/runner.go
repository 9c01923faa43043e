package core

import (
	"sync"

	"github.com/anoideaopen/factory/core/contract"
	"github.com/anoideaopen/factory/core/logger"
	"github.com/anoideaopen/factory/core/telemetry"
	"go.opentelemetry.io/otel/codes"
)

// Runner is the execute-and-discard production strategy: it resolves and
// invokes the configured method exactly once during setup and drops the
// return value. It suits initialization side effects where only the call
// itself matters.
type Runner struct {
	inv *Invoker

	mu          sync.Mutex
	initialized bool
}

var _ contract.Runner = (*Runner)(nil)

// NewRunner builds a runner from the given options.
func NewRunner(opts ...Option) (*Runner, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Runner{inv: newInvoker(o)}, nil
}

// Init prepares the target and invokes it once, discarding any return
// value. A hosting container calls it exactly once after configuration; any
// further call returns ErrAlreadyInitialized, including after a failed first
// attempt, which is terminal and never retried. Failures propagate to the
// caller.
func (r *Runner) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return ErrAlreadyInitialized
	}
	r.initialized = true

	traceCtx, span := r.inv.tracing.StartNewSpan(r.inv.traceCtx, "runner.Init")
	defer span.End()
	span.SetAttributes(telemetry.InstanceID(r.inv.id))

	if err := r.init(traceCtx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Logger().WithField("instance_id", r.inv.id).WithError(err).Error("setup invocation failed")

		return err
	}

	span.SetStatus(codes.Ok, "")

	return nil
}

func (r *Runner) init(traceCtx telemetry.TraceContext) error {
	if err := r.inv.prepareFrom(traceCtx); err != nil {
		return err
	}

	_, err := r.inv.invokeFrom(traceCtx)

	return err
}

// Invoker returns the underlying invoker, mainly for inspecting the
// resolved handle.
func (r *Runner) Invoker() *Invoker {
	return r.inv
}
