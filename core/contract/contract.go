package contract

import "reflect"

// Runner performs a one-shot setup invocation. A hosting container calls
// Init exactly once after the runner has been configured.
type Runner interface {
	// Init resolves the configured target and invokes it once.
	// It returns an error if the runner has already been initialized.
	Init() error
}

// Producer yields objects for a hosting container. An implementation decides
// whether Produce returns a shared cached value or a fresh one per call.
type Producer interface {
	// Produce returns the produced object.
	Produce() (any, error)

	// ResultType reports the declared type of produced objects. It returns
	// nil until the producer has resolved its target, and callers must
	// tolerate that.
	ResultType() reflect.Type

	// IsSingleton reports whether Produce returns a shared cached value.
	IsSingleton() bool
}

// Converter adapts raw argument values to the parameter types of a resolved
// callable.
type Converter interface {
	// Convert returns raw adapted to the target type.
	Convert(raw any, target reflect.Type) (reflect.Value, error)
}

// Class is a named group of functions playing the role of its static
// methods. Several functions may be registered under one method name.
type Class interface {
	// Name returns the name the class was registered under.
	Name() string

	// Candidates returns the functions registered under the method name in
	// registration order. The returned slice is a copy.
	Candidates(method string) []reflect.Value
}

// Lookup resolves class names to classes.
type Lookup interface {
	// Class returns the class registered under name.
	Class(name string) (Class, error)
}
