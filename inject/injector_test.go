package inject_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/inject"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// concat builds a factory joining its named string arguments in order.
func concat(name string, argNames ...string) *inject.Factory {
	params := make([]inject.Param, len(argNames))
	for i, n := range argNames {
		params[i] = inject.Arg(n)
	}
	return inject.NewFactory(name, func(_ *inject.Injector, args inject.Args) (any, error) {
		out := ""
		for _, v := range args.Values() {
			out += v.(string)
		}
		return out, nil
	}, params...)
}

// counting wraps a zero-parameter factory that returns a fresh *int and
// counts invocations.
func counting(name string, calls *int) *inject.Factory {
	return inject.NewFactory(name, func(_ *inject.Injector, _ inject.Args) (any, error) {
		*calls++
		n := *calls
		return &n, nil
	})
}

// resource implements ScopedResource and records acquire/release events.
type resource struct {
	name       string
	events     *[]string
	releaseErr error
}

func (r *resource) Acquire() error {
	*r.events = append(*r.events, r.name+":acquire")
	return nil
}

func (r *resource) Release() error {
	*r.events = append(*r.events, r.name+":release")
	return r.releaseErr
}

func resourceFactory(name string, events *[]string) *inject.Factory {
	return inject.NewFactory(name, func(_ *inject.Injector, _ inject.Args) (any, error) {
		return &resource{name: name, events: events}, nil
	})
}

// ── plain values and the basic scenario ───────────────────────────────────────

func TestResolve_PlainValueReturnsExactly(t *testing.T) {
	r := inject.NewRegistry()
	v := &struct{ n int }{42}
	r.Add(map[string]any{"value": v})

	in := inject.New(r)
	res, err := in.Resolve("value")
	require.NoError(t, err)
	defer res.Close()

	require.Same(t, v, res.Value())
}

func TestResolve_PrefixSuffixScenario(t *testing.T) {
	r := inject.NewRegistry()
	r.Add(map[string]any{
		"prefix": "ab",
		"suffix": "cd",
		"text":   concat("text", "prefix", "suffix"),
	})

	in := inject.New(r)
	res, err := in.Resolve("text")
	require.NoError(t, err)
	defer res.Close()

	require.Equal(t, "abcd", res.Value())
}

func TestResolve_TupleMatchesRequestOrder(t *testing.T) {
	r := inject.NewRegistry()
	r.Add(map[string]any{"a": "A", "b": "B", "c": "C"})

	in := inject.New(r)
	res, err := in.Resolve("c", "a", "b")
	require.NoError(t, err)
	defer res.Close()

	require.Equal(t, []any{"C", "A", "B"}, res.Values())
}

// ── memoization ───────────────────────────────────────────────────────────────

func TestResolve_SharedDependencyBuiltOncePerCall(t *testing.T) {
	calls := 0
	r := inject.NewRegistry()
	r.Add(map[string]any{
		"dep": counting("dep", &calls),
		"left": inject.NewFactory("left", func(_ *inject.Injector, args inject.Args) (any, error) {
			v, _ := args.Get("dep")
			return v, nil
		}, inject.Arg("dep")),
		"right": inject.NewFactory("right", func(_ *inject.Injector, args inject.Args) (any, error) {
			v, _ := args.Get("dep")
			return v, nil
		}, inject.Arg("dep")),
	})

	in := inject.New(r)
	res, err := in.Resolve("left", "right")
	require.NoError(t, err)
	defer res.Close()

	require.Equal(t, 1, calls)
	require.Same(t, res.Values()[0], res.Values()[1])
}

func TestResolve_NestedScopeSeesOuterInstance(t *testing.T) {
	calls := 0
	r := inject.NewRegistry()
	r.Add(map[string]any{"a": counting("a", &calls)})

	in := inject.New(r)
	outer, err := in.Resolve("a")
	require.NoError(t, err)

	inner, err := in.Resolve("a")
	require.NoError(t, err)
	require.Same(t, outer.Value(), inner.Value())
	require.Equal(t, 1, calls)

	require.NoError(t, inner.Close())
	require.NoError(t, outer.Close())

	// Fully closed: the next resolution builds fresh.
	reopened, err := in.Resolve("a")
	require.NoError(t, err)
	defer reopened.Close()
	require.NotSame(t, outer.Value(), reopened.Value())
	require.Equal(t, 2, calls)
}

func TestResolve_TwoNamesSameFactoryAreDistinct(t *testing.T) {
	calls := 0
	f := counting("thing", &calls)
	r := inject.NewRegistry()
	r.Add(map[string]any{"a": f, "b": f})

	in := inject.New(r)
	res, err := in.Resolve("a", "b")
	require.NoError(t, err)
	defer res.Close()

	require.NotSame(t, res.Values()[0], res.Values()[1])
	require.Equal(t, 2, calls)
}

func TestResolve_DirectFactoryMemoizedWhileScopeOpen(t *testing.T) {
	calls := 0
	f := counting("thing", &calls)

	in := inject.New(inject.NewRegistry())
	outer, err := in.Resolve(f)
	require.NoError(t, err)

	inner, err := in.Resolve(f)
	require.NoError(t, err)
	require.Same(t, outer.Value(), inner.Value())
	require.Equal(t, 1, calls)

	require.NoError(t, inner.Close())
	require.NoError(t, outer.Close())

	again, err := in.Resolve(f)
	require.NoError(t, err)
	defer again.Close()
	require.Equal(t, 2, calls)
}

func TestSharedFactory_MemoizesAcrossResolutions(t *testing.T) {
	calls := 0
	r := inject.NewRegistry()
	r.Add(map[string]any{"conn": counting("conn", &calls).Shared()})

	in := inject.New(r)

	first, err := in.Resolve("conn")
	require.NoError(t, err)
	v1 := first.Value()
	require.NoError(t, first.Close())

	second, err := in.Resolve("conn")
	require.NoError(t, err)
	defer second.Close()

	require.Same(t, v1, second.Value())
	require.Equal(t, 1, calls)
}

// ── errors ────────────────────────────────────────────────────────────────────

func TestResolve_UnknownNameFails(t *testing.T) {
	in := inject.New(inject.NewRegistry())
	_, err := in.Resolve("ghost")
	require.ErrorIs(t, err, inject.ErrNotFound)
	require.ErrorContains(t, err, `"ghost"`)
}

func TestResolve_InvalidTargetFails(t *testing.T) {
	in := inject.New(inject.NewRegistry())
	_, err := in.Resolve(42)
	require.ErrorIs(t, err, inject.ErrInvalidTarget)
}

func TestResolve_UnresolvedParamNamesParamAndFactory(t *testing.T) {
	r := inject.NewRegistry()
	r.Add(map[string]any{"text": concat("text", "x")})

	in := inject.New(r)
	_, err := in.Resolve("text")
	require.ErrorIs(t, err, inject.ErrUnresolvedParam)
	require.ErrorContains(t, err, `"x"`)
	require.ErrorContains(t, err, `"text"`)
}

func TestResolve_BareTypeFails(t *testing.T) {
	r := inject.NewRegistry()
	r.Add(map[string]any{"n": inject.TypeRef("int")})

	in := inject.New(r)
	_, err := in.Resolve("n")
	require.ErrorIs(t, err, inject.ErrBuiltinType)
	require.ErrorContains(t, err, `"int"`)
}

func TestResolve_CycleDetectedBeforeRecursionBlows(t *testing.T) {
	r := inject.NewRegistry()
	pass := func(_ *inject.Injector, args inject.Args) (any, error) {
		return args.Values()[0], nil
	}
	r.Add(map[string]any{
		"a": inject.NewFactory("a", pass, inject.Arg("b")),
		"b": inject.NewFactory("b", pass, inject.Arg("a")),
	})

	in := inject.New(r)
	_, err := in.Resolve("a")
	require.ErrorIs(t, err, inject.ErrCycle)
	require.ErrorContains(t, err, "a -> b -> a")
}

func TestResolve_BuildErrorCarriesPathMostSpecificFirst(t *testing.T) {
	boom := errors.New("boom")
	r := inject.NewRegistry()
	r.Add(map[string]any{
		"inner": inject.NewFactory("inner", func(_ *inject.Injector, _ inject.Args) (any, error) {
			return nil, boom
		}),
		"outer": concat("outer", "inner"),
	})

	in := inject.New(r)
	_, err := in.Resolve("outer")
	require.ErrorIs(t, err, boom)

	var be *inject.BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, []string{"inner", "outer"}, be.Path)
}

// ── teardown ──────────────────────────────────────────────────────────────────

func TestClose_ReleasesInReverseAcquisitionOrder(t *testing.T) {
	var events []string
	r := inject.NewRegistry()
	r.Add(map[string]any{
		"first":  resourceFactory("first", &events),
		"second": resourceFactory("second", &events),
	})

	in := inject.New(r)
	res, err := in.Resolve("first", "second")
	require.NoError(t, err)
	require.NoError(t, res.Close())

	require.Equal(t, []string{
		"first:acquire", "second:acquire",
		"second:release", "first:release",
	}, events)

	// Close is idempotent: releases fire exactly once.
	require.NoError(t, res.Close())
	require.Len(t, events, 4)
}

func TestResolve_FailureUnwindsAcquiredResources(t *testing.T) {
	var events []string
	r := inject.NewRegistry()
	r.Add(map[string]any{
		"held": resourceFactory("held", &events),
		"bad": inject.NewFactory("bad", func(_ *inject.Injector, _ inject.Args) (any, error) {
			return nil, fmt.Errorf("bad build")
		}, inject.Arg("held")),
	})

	in := inject.New(r)
	_, err := in.Resolve("bad")
	require.Error(t, err)
	require.Equal(t, []string{"held:acquire", "held:release"}, events)
}

func TestClose_ReportsFirstReleaseErrorAfterAllRan(t *testing.T) {
	var events []string
	failFirst := errors.New("first failed")
	r := inject.NewRegistry()
	r.Add(map[string]any{
		"first": inject.NewFactory("first", func(_ *inject.Injector, _ inject.Args) (any, error) {
			return &resource{name: "first", events: &events, releaseErr: failFirst}, nil
		}),
		"second": resourceFactory("second", &events),
	})

	in := inject.New(r)
	res, err := in.Resolve("first", "second")
	require.NoError(t, err)

	err = res.Close()
	require.ErrorIs(t, err, failFirst)
	// Both releases ran despite the failure; reverse order preserved.
	require.Equal(t, []string{
		"first:acquire", "second:acquire",
		"second:release", "first:release",
	}, events)
}

// ── Get ───────────────────────────────────────────────────────────────────────

func TestGet_TypeAssertsResolvedValue(t *testing.T) {
	r := inject.NewRegistry()
	r.Add(map[string]any{"s": "hello", "n": 7})

	in := inject.New(r)
	res, err := in.Resolve("s", "n")
	require.NoError(t, err)
	defer res.Close()

	s, err := inject.Get[string](res, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	_, err = inject.Get[string](res, 1)
	require.ErrorContains(t, err, "not string")

	_, err = inject.Get[string](res, 5)
	require.ErrorContains(t, err, "index 5")
}

// ── observer ──────────────────────────────────────────────────────────────────

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) ResolveStart(targets []string) {
	o.events = append(o.events, fmt.Sprintf("resolve %v", targets))
}

func (o *recordingObserver) FactoryInvoked(binding, factory string, args []string) {
	o.events = append(o.events, fmt.Sprintf("invoke %s %v", binding, args))
}

func (o *recordingObserver) ResourceAcquired(binding string) {
	o.events = append(o.events, "acquire "+binding)
}

func (o *recordingObserver) ResourceReleased(binding string, _ error) {
	o.events = append(o.events, "release "+binding)
}

func TestObserver_SeesResolutionLifecycle(t *testing.T) {
	var events []string
	obs := &recordingObserver{}

	r := inject.NewRegistry()
	r.Add(map[string]any{
		"prefix": "ab",
		"suffix": "cd",
		"text":   concat("text", "prefix", "suffix"),
		"store":  resourceFactory("store", &events),
	})

	in := inject.New(r, inject.WithObserver(obs))
	res, err := in.Resolve("text", "store")
	require.NoError(t, err)
	require.NoError(t, res.Close())

	require.Equal(t, []string{
		"resolve [text store]",
		"invoke text [prefix suffix]",
		"invoke store []",
		"acquire store",
		"release store",
	}, obs.events)
}
