package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/anoideaopen/factory/core/contract"
)

// Error types.
var (
	ErrClassNotFound      = errors.New("class not found")
	ErrClassAlreadyExists = errors.New("class already exists")
	ErrNotAFunction       = errors.New("candidate is not a function")
	ErrUnexportedMethod   = errors.New("method name is not exported")
)

// Registry maps logical class names to classes holding registered static
// functions. It implements contract.Lookup and is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

var _ contract.Lookup = (*Registry)(nil)

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		classes: make(map[string]*Class),
	}
}

// Define adds a new named class to the registry.
func (r *Registry) Define(name string) (*Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classes[name]; ok {
		return nil, fmt.Errorf("%w: '%s'", ErrClassAlreadyExists, name)
	}

	cls := newClass(name)
	r.classes[name] = cls

	return cls, nil
}

// MustDefine is like Define but panics on error. It suits package-level
// registration of well-known classes.
func (r *Registry) MustDefine(name string) *Class {
	cls, err := r.Define(name)
	if err != nil {
		panic(err)
	}

	return cls
}

// Class returns the class registered under name.
func (r *Registry) Class(name string) (contract.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cls, ok := r.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrClassNotFound, name)
	}

	return cls, nil
}

// Classes lists the registered class names in sorted order.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
