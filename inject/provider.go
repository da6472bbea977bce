package inject

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider contributes bindings to a registry. Group related registrations in
// one provider and install them together:
//
//	type storageProvider struct{}
//
//	func (storageProvider) Provide(r *inject.Registry) {
//	    r.Add(map[string]any{
//	        "store": inject.NewFactory("store", newStore, inject.Arg("logger")),
//	    })
//	}
type Provider interface {
	// Provide binds entries into the registry. Do not resolve anything
	// here — use Boot for work that needs built dependencies.
	Provide(r *Registry)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(r *Registry)

func (f ProviderFunc) Provide(r *Registry) { f(r) }

// Booter is optionally implemented by providers that need a second phase
// after every provider has registered, when it is safe to resolve any
// binding.
type Booter interface {
	Boot(in *Injector) error
}

// ── ProviderSet ───────────────────────────────────────────────────────────────

// ProviderSet manages registration and booting of providers against one
// registry. Register runs each provider's Provide phase immediately; Boot
// runs the Boot phase on every provider that has one, exactly once, after
// all registrations.
type ProviderSet struct {
	registry  *Registry
	providers []Provider
	injector  *Injector
	booted    bool
}

// NewProviderSet creates a set bound to registry.
func NewProviderSet(registry *Registry) *ProviderSet {
	return &ProviderSet{registry: registry}
}

// Register installs a provider. A provider registered after Boot has its
// Boot phase run immediately.
func (s *ProviderSet) Register(p Provider) error {
	p.Provide(s.registry)
	s.providers = append(s.providers, p)

	if s.booted {
		if b, ok := p.(Booter); ok {
			return b.Boot(s.injector)
		}
	}
	return nil
}

// Boot runs the Boot phase of every registered provider in registration
// order. Subsequent calls are no-ops.
func (s *ProviderSet) Boot(in *Injector) error {
	if s.booted {
		return nil
	}
	s.booted = true
	s.injector = in

	for _, p := range s.providers {
		if b, ok := p.(Booter); ok {
			if err := b.Boot(in); err != nil {
				return err
			}
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (s *ProviderSet) Booted() bool { return s.booted }

// Providers returns all registered providers.
func (s *ProviderSet) Providers() []Provider { return s.providers }
