package reflectx

import (
	"reflect"
	"sort"
)

// Methods returns the sorted names of all methods in the method set of the
// value's type. Only exported methods are visible through reflection, so only
// those are listed. A nil value has no methods.
func Methods(v any) []string {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil
	}

	names := make([]string, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		names = append(names, t.Method(i).Name)
	}

	sort.Strings(names)

	return names
}
