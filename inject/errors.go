package inject

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested name is bound neither in the
	// active scope nor in the registry.
	ErrNotFound = errors.New("binding not found")

	// ErrUnresolvedParam is returned when a factory parameter cannot be
	// satisfied by the scope, the registry, a declared default, or
	// type-directed resolution.
	ErrUnresolvedParam = errors.New("unresolved parameter")

	// ErrBuiltinType is returned when a bare type reference with no build
	// function is asked to construct an instance.
	ErrBuiltinType = errors.New("builtin type requires an explicit mapping")

	// ErrCycle is returned when a factory is requested again while already
	// under construction on the same path. The message carries the full
	// construction chain.
	ErrCycle = errors.New("dependency cycle detected")

	// ErrInvalidTarget is returned when a resolution target is neither a
	// name nor a *Factory.
	ErrInvalidTarget = errors.New("invalid resolution target")

	// ErrDuplicateBinding is returned by Registry.Extend when a name is
	// already bound. Registry.Add, by contrast, silently overrides.
	ErrDuplicateBinding = errors.New("duplicate binding")
)

// BuildError annotates a resolution failure with the chain of factories that
// were under construction when it occurred, most specific first. Use
// errors.As to recover it and errors.Is to match the underlying cause.
type BuildError struct {
	Path []string
	Err  error
}

func (e *BuildError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("building %s: %v", strings.Join(e.Path, " <- "), e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
