// Package inject is a named-binding dependency resolver with scoped
// lifecycles.
//
// A Registry maps names to either materialized values or factories. An
// Injector builds requested names (or factories) on demand, resolving each
// factory's declared parameters by name, memoizing every instance within the
// open scope, rejecting circular construction, and releasing scoped
// resources in reverse acquisition order when the scope closes.
//
// # Quick start
//
//	r := inject.NewRegistry()
//	r.Add(map[string]any{
//	    "prefix": "ab",
//	    "suffix": "cd",
//	    "text": inject.NewFactory("text",
//	        func(_ *inject.Injector, args inject.Args) (any, error) {
//	            vals := args.Values()
//	            return vals[0].(string) + vals[1].(string), nil
//	        },
//	        inject.Arg("prefix"), inject.Arg("suffix")),
//	})
//
//	in := inject.New(r)
//	res, err := in.Resolve("text")
//	if err != nil { ... }
//	defer res.Close()
//
//	res.Value() // "abcd"
//
// # Factories and parameters
//
// Factories declare their parameters explicitly — there is no reflection.
// Each parameter resolves, in declaration order, from the open scope, then
// the registry (building sub-dependencies recursively), then its declared
// default, then its declared type when that type is itself constructible:
//
//	inject.Arg("db")                      // must resolve by name
//	inject.ArgDefault("retries", 3)       // falls back to 3
//	inject.ArgList("middlewares")         // []any bucket, empty when unbound
//	inject.ArgMap("options")              // map[string]any bucket
//	inject.ArgTyped("clock", clockFactory) // built from its type when unbound
//
// # Scopes and memoization
//
// Each Resolve call opens a scope frame copied from its parent, so nested
// resolutions see every instance the enclosing scope already built, while
// their own bindings vanish when they close. Within one call a shared
// transitive dependency is constructed exactly once. Mark a factory
// .Shared() to memoize it across resolutions on the same injector.
//
// # Scoped resources
//
// An instance implementing ScopedResource is acquired right after
// construction and released when its scope closes — in strict reverse
// acquisition order, on both the success and the error path.
//
// # Errors
//
// Failures surface as wrapped sentinels (ErrNotFound, ErrUnresolvedParam,
// ErrBuiltinType, ErrCycle, ErrInvalidTarget, ErrDuplicateBinding) matched
// with errors.Is. Errors raised inside a build additionally carry the chain
// of factories under construction via *BuildError, most specific first.
//
// # Concurrency
//
// The injector is call-stack driven and single-threaded. Share a Registry
// across goroutines only behind external synchronization, and give each
// goroutine its own Injector if resolutions must run concurrently.
package inject
