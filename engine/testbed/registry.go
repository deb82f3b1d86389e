package testbed

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownTest is returned when a name is not registered.
var ErrUnknownTest = errors.New("unknown test")

type entry struct {
	name    string
	factory Factory
}

// Registry is an ordered set of named test factories. Names are listed in registration order.
type Registry struct {
	entries []entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a factory under name.
//
// Parameters:
//   - name: the name shown in the menu, unique within the registry
//   - factory: constructs the test
//
// Returns:
//   - error: error if name is empty or taken, or factory is nil
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("testbed: test name must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("testbed: test %q has no factory", name)
	}
	if _, ok := r.Lookup(name); ok {
		return fmt.Errorf("testbed: test %q is already registered", name)
	}
	r.entries = append(r.entries, entry{name: name, factory: factory})
	return nil
}

// MustRegister is Register for static setup code. It panics on error.
func (r *Registry) MustRegister(name string, factory Factory) *Registry {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	i := slices.IndexFunc(r.entries, func(e entry) bool { return e.name == name })
	if i < 0 {
		return nil, false
	}
	return r.entries[i].factory, true
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	return len(r.entries)
}
