package inject

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ── Injector ──────────────────────────────────────────────────────────────────

// Injector builds object graphs from a Registry. It is single-threaded:
// scope, cycle path, and teardown state are driven purely by the call stack,
// so concurrent Resolve calls on one injector require external
// synchronization.
type Injector struct {
	registry *Registry
	scope    *scope
	path     cyclePath
	shared   map[string]any
	observer Observer
}

// Option configures an Injector.
type Option func(*Injector)

// WithObserver attaches an event listener.
func WithObserver(o Observer) Option {
	return func(in *Injector) { in.observer = o }
}

// WithLogger attaches a zerolog-backed observer emitting debug events.
func WithLogger(logger zerolog.Logger) Option {
	return WithObserver(NewLogObserver(logger))
}

// New creates an Injector over registry.
func New(registry *Registry, opts ...Option) *Injector {
	in := &Injector{
		registry: registry,
		scope:    newScope(),
		shared:   make(map[string]any),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Registry returns the injector's registry, for late registration between
// resolutions.
func (in *Injector) Registry() *Registry { return in.registry }

// bound reports whether name resolves without falling back to defaults or
// type-directed construction.
func (in *Injector) bound(name string) bool {
	if _, ok := in.scope.lookup(name); ok {
		return true
	}
	if _, ok := in.shared[name]; ok {
		return true
	}
	_, ok := in.registry.Lookup(name)
	return ok
}

// Resolve builds each target — a bound name (string) or a *Factory — and
// returns them as one Resolution. Within the call every named dependency is
// built at most once, so targets sharing a transitive dependency share the
// instance. The caller owns the returned Resolution and must Close it to
// release scoped resources and discard the scope frame; nested resolutions
// close in reverse order of opening.
//
// On error the partially-built scope is discarded and any resources already
// acquired are released, in reverse order, before the error is returned.
func (in *Injector) Resolve(targets ...any) (*Resolution, error) {
	in.observer.ResolveStart(targetNames(targets))
	in.scope.push()

	b := &build{in: in, teardown: &teardownStack{}}
	values := make([]any, 0, len(targets))
	for _, target := range targets {
		value, err := b.target(target)
		if err != nil {
			releaseErr := b.teardown.unwind()
			in.scope.pop()
			_ = releaseErr // the build error wins; releases were reported to the observer
			return nil, err
		}
		values = append(values, value)
	}

	return &Resolution{in: in, values: values, teardown: b.teardown}, nil
}

// Get returns the i-th resolved value type-asserted to T.
func Get[T any](res *Resolution, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(res.values) {
		return zero, fmt.Errorf("no resolved value at index %d", i)
	}
	out, ok := res.values[i].(T)
	if !ok {
		return zero, fmt.Errorf("resolved value %d is %T, not %T", i, res.values[i], zero)
	}
	return out, nil
}

func targetNames(targets []any) []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		switch t := t.(type) {
		case string:
			names[i] = t
		case *Factory:
			names[i] = t.name
		default:
			names[i] = fmt.Sprintf("%T", t)
		}
	}
	return names
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolution holds the values built by one Resolve call together with the
// scope frame and teardown stack backing them.
type Resolution struct {
	in       *Injector
	values   []any
	teardown *teardownStack
	closed   bool
}

// Value returns the single (first) resolved value.
func (r *Resolution) Value() any {
	if len(r.values) == 0 {
		return nil
	}
	return r.values[0]
}

// Values returns all resolved values in request order.
func (r *Resolution) Values() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

// Close releases the resolution's scoped resources in reverse acquisition
// order and discards its scope frame. Every release is attempted; the first
// failure is returned after all have run. Close is idempotent.
func (r *Resolution) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	err := r.teardown.unwind()
	r.in.scope.pop()
	return err
}

// ── Graph building ────────────────────────────────────────────────────────────

// build carries the per-call teardown stack through the recursive graph walk.
type build struct {
	in       *Injector
	teardown *teardownStack
}

func (b *build) target(t any) (any, error) {
	switch t := t.(type) {
	case string:
		return b.byName(t)
	case *Factory:
		return b.byFactory(t, "")
	default:
		return nil, fmt.Errorf("%w: %T (string or *Factory expected)", ErrInvalidTarget, t)
	}
}

// byName resolves a name through scope, shared cache, then registry. A
// registry factory is built and bound under the name; a plain value is
// returned as-is.
func (b *build) byName(name string) (any, error) {
	if v, ok := b.in.scope.lookup(name); ok {
		return v, nil
	}
	if v, ok := b.in.shared[name]; ok {
		return v, nil
	}
	entry, ok := b.in.registry.Lookup(name)
	if !ok {
		return nil, b.fail(fmt.Errorf("%w: %q", ErrNotFound, name))
	}
	if f, ok := entry.(*Factory); ok {
		return b.byFactory(f, name)
	}
	return entry, nil
}

// byFactory constructs an instance: cycle check, parameter resolution, build
// invocation, scoped-resource acquisition, then scope binding. Direct factory
// targets with no binding name memoize under the factory's own name.
func (b *build) byFactory(f *Factory, binding string) (any, error) {
	name := f.displayName(binding)

	if name != "" {
		if v, ok := b.in.scope.lookup(name); ok {
			return v, nil
		}
		if v, ok := b.in.shared[name]; ok {
			return v, nil
		}
	}

	if f.build == nil {
		return nil, b.fail(fmt.Errorf("%w: mapping for %q of type %q is missing", ErrBuiltinType, name, f.name))
	}

	if err := b.in.path.enter(f, name); err != nil {
		return nil, b.fail(err)
	}
	defer b.in.path.exit(f)

	args, err := b.params(f)
	if err != nil {
		return nil, b.fail(err)
	}

	b.in.observer.FactoryInvoked(name, f.name, args.names())
	instance, err := f.build(b.in, args)
	if err != nil {
		return nil, b.fail(err)
	}

	if resource, ok := instance.(ScopedResource); ok {
		if err := resource.Acquire(); err != nil {
			return nil, b.fail(err)
		}
		b.in.observer.ResourceAcquired(name)
		b.teardown.register(func() error {
			err := resource.Release()
			b.in.observer.ResourceReleased(name, err)
			return err
		})
	}

	if name != "" {
		b.in.scope.bind(name, instance)
		if f.shared {
			b.in.shared[name] = instance
		}
	}

	return instance, nil
}

// fail wraps err with the in-flight factory path, most specific first. An
// error already carrying a path, or one raised outside any factory, passes
// through unchanged.
func (b *build) fail(err error) error {
	var be *BuildError
	if errors.As(err, &be) {
		return err
	}
	path := b.in.path.snapshot()
	if len(path) == 0 {
		return err
	}
	return &BuildError{Path: path, Err: err}
}
