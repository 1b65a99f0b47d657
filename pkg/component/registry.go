// Package component defines custom markdown components: the typed attribute
// accessors a component function uses and the immutable registry that maps
// tag names to those functions.
package component

import (
	"slices"
)

// Func renders one component occurrence into a view.
// Errors are returned to the caller of the render pass unchanged.
type Func[V any] func(props Props[V]) (V, error)

// Entry pairs a component name with its function.
type Entry[V any] struct {
	Name string
	Func Func[V]
}

// NewEntry is shorthand for Entry{Name: name, Func: fn}.
func NewEntry[V any](name string, fn Func[V]) Entry[V] {
	return Entry[V]{Name: name, Func: fn}
}

// Registry is an immutable mapping from component name to Func.
// It is safe for concurrent use and is shared by pointer; two registries are
// equal only when they are the same instance.
type Registry[V any] struct {
	funcs map[string]Func[V]
}

// NewRegistry builds a registry from entries. On duplicate names the last entry wins.
// Entries with a nil Func are ignored.
func NewRegistry[V any](entries ...Entry[V]) *Registry[V] {
	funcs := make(map[string]Func[V], len(entries))
	for _, e := range entries {
		if e.Func == nil {
			continue
		}
		funcs[e.Name] = e.Func
	}
	return &Registry[V]{funcs: funcs}
}

// Lookup returns the function registered for name. A nil registry has no entries.
func (r *Registry[V]) Lookup(name string) (Func[V], bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry[V]) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Equal reports whether r and other are the same registry instance.
func (r *Registry[V]) Equal(other *Registry[V]) bool {
	return r == other
}

// Len returns the number of registered components.
func (r *Registry[V]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.funcs)
}

// Names returns all registered names in sorted order.
func (r *Registry[V]) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
