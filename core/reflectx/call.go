package reflectx

import "reflect"

// Results converts raw reflection call outputs into plain Go values.
func Results(output []reflect.Value) []any {
	results := make([]any, len(output))
	for i, out := range output {
		results[i] = out.Interface()
	}

	return results
}

// Split separates the error channel from a call's results. When returnsError
// is set the last result is inspected: a non-nil error is returned exactly as
// the called method produced it, so errors.Is and errors.As keep working
// against the original value.
//
// The remaining results collapse to nil when there are none, to the bare
// value when there is one, and to a []any otherwise.
func Split(output []reflect.Value, returnsError bool) (any, error) {
	results := Results(output)

	if returnsError && len(results) > 0 {
		if errorValue := results[len(results)-1]; errorValue != nil {
			return nil, errorValue.(error) //nolint:forcetypeassert
		}

		results = results[:len(results)-1]
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}
