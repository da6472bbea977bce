package inject

import (
	"fmt"
	"strings"
)

// cyclePath tracks the factories currently mid-construction on the active
// call path. Detection is identity-based: the same *Factory reachable under
// two names is still one node.
type cyclePath struct {
	factories []*Factory
	names     []string
}

// enter fails with ErrCycle if f is already on the path, otherwise appends it.
func (p *cyclePath) enter(f *Factory, name string) error {
	for _, g := range p.factories {
		if g == f {
			chain := append(append([]string{}, p.names...), name)
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(chain, " -> "))
		}
	}
	p.factories = append(p.factories, f)
	p.names = append(p.names, name)
	return nil
}

// exit removes the most recently entered factory. Calls must mirror enter in
// LIFO order.
func (p *cyclePath) exit(f *Factory) {
	n := len(p.factories)
	if n == 0 || p.factories[n-1] != f {
		panic("inject: cycle path exit out of order")
	}
	p.factories = p.factories[:n-1]
	p.names = p.names[:n-1]
}

// snapshot returns the in-flight factory names, most specific first.
func (p *cyclePath) snapshot() []string {
	out := make([]string, len(p.names))
	for i, name := range p.names {
		out[len(p.names)-1-i] = name
	}
	return out
}
