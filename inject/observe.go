package inject

import "github.com/rs/zerolog"

// Observer receives structured events as the injector works. Events are
// observational only — resolution behaves identically whether or not a
// listener is attached.
type Observer interface {
	// ResolveStart fires when a top-level Resolve call begins, with the
	// requested target names in order.
	ResolveStart(targets []string)

	// FactoryInvoked fires just before a factory's build function runs.
	// binding is the name being built (or the factory name for direct
	// targets); args are the resolved normal-parameter names.
	FactoryInvoked(binding, factory string, args []string)

	// ResourceAcquired fires after a scoped resource's Acquire succeeds.
	ResourceAcquired(binding string)

	// ResourceReleased fires after a scoped resource's Release runs.
	ResourceReleased(binding string, err error)
}

type nopObserver struct{}

func (nopObserver) ResolveStart([]string)                   {}
func (nopObserver) FactoryInvoked(string, string, []string) {}
func (nopObserver) ResourceAcquired(string)                 {}
func (nopObserver) ResourceReleased(string, error)          {}

// NewLogObserver returns an Observer that emits each event as a structured
// debug record on logger.
func NewLogObserver(logger zerolog.Logger) Observer {
	return logObserver{logger}
}

type logObserver struct {
	log zerolog.Logger
}

func (o logObserver) ResolveStart(targets []string) {
	o.log.Debug().Strs("targets", targets).Msg("resolve")
}

func (o logObserver) FactoryInvoked(binding, factory string, args []string) {
	o.log.Debug().
		Str("binding", binding).
		Str("factory", factory).
		Strs("args", args).
		Msg("factory invoked")
}

func (o logObserver) ResourceAcquired(binding string) {
	o.log.Debug().Str("binding", binding).Msg("resource acquired")
}

func (o logObserver) ResourceReleased(binding string, err error) {
	evt := o.log.Debug().Str("binding", binding)
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg("resource released")
}
