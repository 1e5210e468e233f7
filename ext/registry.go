// Package ext is zenframe's capability extension layer: external code
// registers named operations over the public Table, Index and Column types.
// Registration is pure composition — extensions cannot reach private
// storage or alter the behavior of core operations.
package ext

import (
	"sort"
	"sync"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/logging"
)

// Operation is an extension operation over public types. Arguments beyond
// the Table are operation-specific.
type Operation func(t zenframe.Table, args ...interface{}) (zenframe.Table, error)

// A Registry maps operation names to Operations. The zero value is not
// usable; construct with NewRegistry. Registries are safe for concurrent
// use.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry creates an empty extension Registry
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// Register adds an Operation under a unique name, failing with
// DuplicateExtensionError if the name is taken
func (r *Registry) Register(name string, op Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[name]; exists {
		return errors.DuplicateExtensionError{Name: name}
	}
	r.ops[name] = op
	logging.L().Debug("registered extension operation", "name", name)
	return nil
}

// Lookup resolves a name to its Operation, failing with KeyNotFoundError if
// no Operation is registered under it
func (r *Registry) Lookup(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	if !ok {
		return nil, errors.KeyNotFoundError{Key: name}
	}
	return op, nil
}

// Apply resolves and invokes a registered Operation
func (r *Registry) Apply(name string, t zenframe.Table, args ...interface{}) (zenframe.Table, error) {
	op, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return op(t, args...)
}

// Names returns the registered operation names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// the default Registry used by the package-level functions
var defaultRegistry = NewRegistry()

// Register adds an Operation to the default Registry
func Register(name string, op Operation) error {
	return defaultRegistry.Register(name, op)
}

// Lookup resolves a name in the default Registry
func Lookup(name string) (Operation, error) {
	return defaultRegistry.Lookup(name)
}

// Apply resolves and invokes an Operation from the default Registry
func Apply(name string, t zenframe.Table, args ...interface{}) (zenframe.Table, error) {
	return defaultRegistry.Apply(name, t, args...)
}

// Names returns the default Registry's operation names in sorted order
func Names() []string {
	return defaultRegistry.Names()
}
