package inject

import "fmt"

// params computes a factory's arguments, in declaration order. Per parameter:
//
//  1. a name bound in the scope, the shared cache, or the registry is built
//     by name (recursively);
//  2. an unbound variadic-list parameter becomes an empty list;
//  3. an unbound variadic-map parameter becomes an empty map;
//  4. a declared default is used as-is;
//  5. a constructible declared type is built and bound under the parameter's
//     name;
//  6. otherwise resolution fails with ErrUnresolvedParam.
func (b *build) params(f *Factory) (Args, error) {
	args := Args{Map: map[string]any{}}

	for _, p := range f.params {
		switch {
		case b.in.bound(p.Name):
			value, err := b.byName(p.Name)
			if err != nil {
				return Args{}, err
			}
			if err := bindParam(&args, p, value); err != nil {
				return Args{}, err
			}

		case p.Kind == KindList, p.Kind == KindMap:
			// Unbound variadics default to empty, never error.

		case p.HasDefault:
			args.Named = append(args.Named, NamedArg{Name: p.Name, Value: p.Default, Defaulted: true})

		case p.Type != nil:
			value, err := b.byFactory(p.Type, p.Name)
			if err != nil {
				return Args{}, err
			}
			args.Named = append(args.Named, NamedArg{Name: p.Name, Value: value})

		default:
			return Args{}, fmt.Errorf("%w: %q for factory %q", ErrUnresolvedParam, p.Name, f.name)
		}
	}

	return args, nil
}

// bindParam places a name-resolved value into the right bucket, enforcing
// the variadic container types.
func bindParam(args *Args, p Param, value any) error {
	switch p.Kind {
	case KindList:
		list, ok := value.([]any)
		if !ok {
			return fmt.Errorf("%w: %q expects []any, got %T", ErrUnresolvedParam, p.Name, value)
		}
		args.List = append(args.List, list...)
	case KindMap:
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %q expects map[string]any, got %T", ErrUnresolvedParam, p.Name, value)
		}
		for k, v := range m {
			args.Map[k] = v
		}
	default:
		args.Named = append(args.Named, NamedArg{Name: p.Name, Value: value})
	}
	return nil
}
