package inject

// ── Parameter descriptors ─────────────────────────────────────────────────────

// Kind classifies a factory parameter.
type Kind int

const (
	// KindNormal is an ordinary named parameter.
	KindNormal Kind = iota
	// KindList is a variadic-list parameter. When its name is unbound it
	// resolves to an empty list instead of failing.
	KindList
	// KindMap is a variadic-map parameter. When its name is unbound it
	// resolves to an empty map instead of failing.
	KindMap
)

// Param describes one declared factory parameter. Descriptors are written out
// explicitly at registration time — there is no runtime signature inspection.
type Param struct {
	Name       string
	Kind       Kind
	HasDefault bool
	Default    any

	// Type optionally names the parameter's declared type as a factory.
	// When the parameter cannot be resolved by name or default, the type
	// factory is built instead and bound under the parameter's name.
	Type *Factory
}

// Arg declares an ordinary parameter resolved by name.
func Arg(name string) Param {
	return Param{Name: name}
}

// ArgDefault declares a parameter with a fallback value used when the name is
// bound nowhere.
func ArgDefault(name string, def any) Param {
	return Param{Name: name, HasDefault: true, Default: def}
}

// ArgList declares a variadic-list parameter. A binding for the name must
// hold a []any; an unbound name yields an empty list.
func ArgList(name string) Param {
	return Param{Name: name, Kind: KindList}
}

// ArgMap declares a variadic-map parameter. A binding for the name must hold
// a map[string]any; an unbound name yields an empty map.
func ArgMap(name string) Param {
	return Param{Name: name, Kind: KindMap}
}

// ArgTyped declares a parameter whose declared type is itself constructible.
// When no binding or default applies, typ is built and bound under name.
func ArgTyped(name string, typ *Factory) Param {
	return Param{Name: name, Type: typ}
}

// ── Resolved arguments ────────────────────────────────────────────────────────

// NamedArg is a single resolved parameter binding. Defaulted reports whether
// the value came from the parameter's declared default.
type NamedArg struct {
	Name      string
	Value     any
	Defaulted bool
}

// Args holds a factory's resolved arguments: the normal parameters in
// declaration order plus the variadic-list and variadic-map buckets.
type Args struct {
	Named []NamedArg
	List  []any
	Map   map[string]any
}

// Get returns the named argument's value.
func (a Args) Get(name string) (any, bool) {
	for _, n := range a.Named {
		if n.Name == name {
			return n.Value, true
		}
	}
	return nil, false
}

// Values returns the normal-parameter values in declaration order.
func (a Args) Values() []any {
	out := make([]any, len(a.Named))
	for i, n := range a.Named {
		out[i] = n.Value
	}
	return out
}

// names lists the resolved argument names, for observer events.
func (a Args) names() []string {
	out := make([]string, len(a.Named))
	for i, n := range a.Named {
		out[i] = n.Name
	}
	return out
}

// ── Factory ───────────────────────────────────────────────────────────────────

// BuildFunc constructs an instance from resolved arguments. The injector
// handle is passed explicitly so a factory that needs nested resolution can
// call in.Resolve itself.
type BuildFunc func(in *Injector, args Args) (any, error)

// Factory is a registered constructor: a build function plus its declared
// parameter descriptors. Factories are compared by pointer identity during
// cycle detection, so the same *Factory may safely be registered under
// several names.
type Factory struct {
	name   string
	params []Param
	build  BuildFunc
	shared bool
}

// NewFactory creates a factory. The name is used in log events and error
// messages; params are resolved in the order given.
func NewFactory(name string, build BuildFunc, params ...Param) *Factory {
	return &Factory{name: name, params: params, build: build}
}

// TypeRef declares a bare type with no construction semantics, the analogue
// of a primitive or builtin type. Building one fails with ErrBuiltinType
// unless the registry maps an explicit override for the requested name.
func TypeRef(name string) *Factory {
	return &Factory{name: name}
}

// Shared marks the factory as memoized injector-wide: once built under a
// name, the same instance is reused by every later resolution on that
// injector, not just within one open scope. It returns f for chaining.
func (f *Factory) Shared() *Factory {
	f.shared = true
	return f
}

// Name returns the factory's display name.
func (f *Factory) Name() string { return f.name }

// displayName prefers the binding name a factory is being built under.
func (f *Factory) displayName(binding string) string {
	if binding != "" {
		return binding
	}
	return f.name
}
