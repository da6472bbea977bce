package inject

import (
	"fmt"
	"sort"
)

// Registry is the ordered mapping of names to materialized instances or
// factories. It is built once per application context and only ever extended;
// resolution reads it but never mutates it.
//
// A value of type *Factory registers as a factory; any other value registers
// as an already-materialized instance.
type Registry struct {
	names   []string
	entries map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]any)}
}

// Add merges entries into the registry. A name that already exists is
// overridden — last write wins. Keys within a single call are applied in
// sorted order so first-registration order stays deterministic.
func (r *Registry) Add(entries map[string]any) {
	for _, name := range sortedKeys(entries) {
		if _, exists := r.entries[name]; !exists {
			r.names = append(r.names, name)
		}
		r.entries[name] = entries[name]
	}
}

// Extend merges entries like Add but refuses to override: if any name is
// already bound, Extend fails with ErrDuplicateBinding and writes nothing.
func (r *Registry) Extend(entries map[string]any) error {
	for _, name := range sortedKeys(entries) {
		if _, exists := r.entries[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateBinding, name)
		}
	}
	r.Add(entries)
	return nil
}

// Lookup returns the entry bound to name.
func (r *Registry) Lookup(name string) (any, bool) {
	v, ok := r.entries[name]
	return v, ok
}

// Names returns all bound names in first-registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func sortedKeys(entries map[string]any) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
