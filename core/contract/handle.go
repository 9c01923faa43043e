package contract

import "reflect"

// TargetKind tells how the callable behind a handle was resolved.
type TargetKind int

// Constants representing the different kinds of invocation targets.
const (
	TargetUnknown  TargetKind = iota // Zero value, nothing resolved.
	TargetStatic                     // Function registered on a named class.
	TargetInstance                   // Method bound to an object instance.
)

func (k TargetKind) String() string {
	switch k {
	case TargetStatic:
		return "static"
	case TargetInstance:
		return "instance"
	case TargetUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Handle is a resolved method: the callable chosen during preparation plus
// the metadata needed to convert arguments and interpret results.
type Handle struct {
	Kind         TargetKind // How the callable was resolved.
	Class        string     // Class name or receiver type name.
	Method       string     // The resolved method name.
	NumIn        int        // Number of declared parameters.
	Variadic     bool       // The final parameter is variadic.
	NumOut       int        // Number of declared results.
	ReturnsError bool       // The final result is an error.

	// Result is the declared type of the first non-error result, nil when
	// the method has none. A method with several value results yields a
	// []any from the error-channel split; Result still reports the first
	// declared result, by convention.
	Result reflect.Type

	fn reflect.Value
}

// NewHandle builds a handle around fn, which must hold a callable value.
// The metadata fields are derived from the callable's signature.
func NewHandle(kind TargetKind, class, method string, fn reflect.Value) Handle {
	h := Handle{
		Kind:   kind,
		Class:  class,
		Method: method,
		fn:     fn,
	}

	t := fn.Type()
	h.NumIn = t.NumIn()
	h.Variadic = t.IsVariadic()
	h.NumOut = t.NumOut()

	if h.NumOut > 0 && t.Out(h.NumOut-1).Implements(errorType) {
		h.ReturnsError = true
	}
	if h.NumOut > 1 || (h.NumOut == 1 && !h.ReturnsError) {
		h.Result = t.Out(0)
	}

	return h
}

// Valid reports whether the handle holds a callable.
func (h Handle) Valid() bool {
	return h.fn.IsValid()
}

// Call invokes the underlying callable with already converted arguments.
func (h Handle) Call(in []reflect.Value) []reflect.Value {
	return h.fn.Call(in)
}

// ArgType returns the conversion target type for the raw argument at index i,
// unrolling a variadic tail to its element type.
func (h Handle) ArgType(i int) reflect.Type {
	t := h.fn.Type()
	if h.Variadic && i >= h.NumIn-1 {
		return t.In(h.NumIn - 1).Elem()
	}

	return t.In(i)
}
