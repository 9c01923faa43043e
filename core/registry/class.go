package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/anoideaopen/factory/core/contract"
	"github.com/anoideaopen/factory/core/stringsx"
)

// Class is a named group of functions playing the role of its static
// methods. Registering several functions under one method name declares
// overload candidates; their order is registration order.
type Class struct {
	name string

	mu      sync.RWMutex
	methods map[string][]reflect.Value
}

var _ contract.Class = (*Class)(nil)

func newClass(name string) *Class {
	return &Class{
		name:    name,
		methods: make(map[string][]reflect.Value),
	}
}

// Static registers fn under the method name. fn must be a function and the
// method name must be exported.
func (c *Class) Static(method string, fn any) error {
	if !stringsx.IsExported(method) {
		return fmt.Errorf("%w: '%s'", ErrUnexportedMethod, method)
	}

	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return fmt.Errorf("%w: method '%s'", ErrNotAFunction, method)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.methods[method] = append(c.methods[method], fv)

	return nil
}

// MustStatic is like Static but panics on error. It returns the class so
// registrations can be chained.
func (c *Class) MustStatic(method string, fn any) *Class {
	if err := c.Static(method, fn); err != nil {
		panic(err)
	}

	return c
}

// Name returns the name the class was registered under.
func (c *Class) Name() string {
	return c.name
}

// Candidates returns a copy of the functions registered under method in
// registration order.
func (c *Class) Candidates(method string) []reflect.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]reflect.Value(nil), c.methods[method]...)
}

// Methods lists the registered method names in sorted order.
func (c *Class) Methods() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
