package inject

// ScopedResource is implemented by instances whose lifetime is tied to the
// resolution scope that built them. Acquire runs immediately after
// construction; Release runs when the owning scope closes, in strict reverse
// order of acquisition, on every exit path.
type ScopedResource interface {
	Acquire() error
	Release() error
}

// teardownStack collects release actions in acquisition order and unwinds
// them in reverse.
type teardownStack struct {
	releases []func() error
}

func (t *teardownStack) register(release func() error) {
	t.releases = append(t.releases, release)
}

// unwind runs every registered release in reverse order. All of them are
// attempted; the first error encountered is returned after the rest have
// run. A second unwind is a no-op.
func (t *teardownStack) unwind() error {
	var first error
	for i := len(t.releases) - 1; i >= 0; i-- {
		if err := t.releases[i](); err != nil && first == nil {
			first = err
		}
	}
	t.releases = nil
	return first
}
