package core

import (
	"errors"
	"fmt"
)

// Error types.
var (
	// ErrConfiguration is returned when the invoker's target or method is
	// missing or contradictory at preparation time.
	ErrConfiguration = errors.New("invalid invoker configuration")

	// ErrResolution is returned when preparation cannot settle on a single
	// callable for the configured target and method name.
	ErrResolution = errors.New("method resolution failed")

	// ErrConversion is returned when a raw argument cannot be adapted to the
	// parameter type of the resolved callable. The converter's own error is
	// wrapped alongside it.
	ErrConversion = errors.New("argument conversion failed")

	// ErrInvocation is returned when the call cannot be dispatched at all,
	// for example when Invoke runs before a successful Prepare.
	ErrInvocation = errors.New("method could not be invoked")

	// ErrNotReady is returned by a singleton producer whose setup invocation
	// has not completed successfully.
	ErrNotReady = errors.New("producer is not fully initialized yet")

	// ErrAlreadyInitialized is returned when Init is called a second time,
	// including after a failed first attempt.
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrLifecycle is returned on an illegal lifecycle state transition.
	ErrLifecycle = errors.New("illegal lifecycle transition")
)

// Specializations of ErrResolution; errors.Is matches both the specific
// error and ErrResolution itself.
var (
	ErrMethodNotFound  = fmt.Errorf("%w: method not found", ErrResolution)
	ErrAmbiguousMethod = fmt.Errorf("%w: ambiguous method overloads", ErrResolution)
	ErrArgumentCount   = fmt.Errorf("%w: incorrect number of method arguments", ErrResolution)
)
