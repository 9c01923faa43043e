package core

import (
	"fmt"

	"github.com/anoideaopen/factory/core/contract"
	"github.com/anoideaopen/factory/core/stringsx"
	"github.com/anoideaopen/factory/core/telemetry"
)

// Option represents a function that applies configuration options to an
// invoker or to a production strategy built around one.
type Option func(opts *invokerOptions) error

// invokerOptions holds the configuration gathered from options before an
// invoker is built.
type invokerOptions struct {
	className string
	lookup    contract.Lookup
	instance  any
	method    string
	args      []any
	converter contract.Converter
	tracing   *telemetry.TracingHandler
	carrier   map[string]string
	singleton *bool
}

// WithClass targets a class registered under name in the lookup supplied
// with WithLookup. The method name then selects among the class's static
// function candidates.
func WithClass(name string) Option {
	return func(o *invokerOptions) error {
		o.className = name
		return nil
	}
}

// WithLookup supplies the class lookup used to resolve the name given with
// WithClass.
func WithLookup(lookup contract.Lookup) Option {
	return func(o *invokerOptions) error {
		o.lookup = lookup
		return nil
	}
}

// WithInstance targets an object instance. The method name selects from the
// instance's method set.
func WithInstance(obj any) Option {
	return func(o *invokerOptions) error {
		o.instance = obj
		return nil
	}
}

// WithMethod sets the name of the method to resolve on the target.
func WithMethod(name string) Option {
	return func(o *invokerOptions) error {
		o.method = name
		return nil
	}
}

// WithStaticMethod sets the class and method names from a single dotted
// path, "math.Square" targeting method "Square" of class "math". The class
// may itself contain dots; the split happens at the last one.
func WithStaticMethod(path string) Option {
	return func(o *invokerOptions) error {
		class, method, found := stringsx.CutLast(path, ".")
		if !found || class == "" || method == "" {
			return fmt.Errorf("%w: static method path '%s' is not of the form 'class.Method'", ErrConfiguration, path)
		}

		o.className = class
		o.method = method

		return nil
	}
}

// WithArgs sets the raw argument values converted and passed on every
// invocation.
func WithArgs(args ...any) Option {
	return func(o *invokerOptions) error {
		o.args = args
		return nil
	}
}

// WithConverter replaces the default argument converter.
func WithConverter(converter contract.Converter) Option {
	return func(o *invokerOptions) error {
		o.converter = converter
		return nil
	}
}

// WithTracingHandler replaces the tracing handler spans are started through.
// Handlers must be marked ready with TracingInit; an uninitialized handler
// yields plain local trace contexts.
func WithTracingHandler(th *telemetry.TracingHandler) Option {
	return func(o *invokerOptions) error {
		o.tracing = th
		return nil
	}
}

// WithTraceCarrier supplies the trace carrier the hosting container received
// alongside the setup request. The strategy's spans are parented to the
// trace it carries, so they join the remote caller's trace instead of
// starting a fresh one.
func WithTraceCarrier(m map[string]string) Option {
	return func(o *invokerOptions) error {
		o.carrier = m
		return nil
	}
}

// WithPrototype switches a producer to prototype mode, invoking the target
// afresh on every Produce call. Producers are singletons by default; the
// option has no effect on invokers and runners.
func WithPrototype() Option {
	return func(o *invokerOptions) error {
		singleton := false
		o.singleton = &singleton

		return nil
	}
}
