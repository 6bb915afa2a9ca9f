package lattice

import (
	"fmt"
	"sort"
)

// ArgumentKey is a typed, named identifier for a value in an Arguments store.
type ArgumentKey[T any] struct {
	name string
}

// NewArgumentKey creates a key. Two keys with the same name address the same
// slot; a lookup through a key of a different type reports ErrArgumentType.
func NewArgumentKey[T any](name string) ArgumentKey[T] {
	if name == "" {
		panic("lattice: argument key name must not be empty")
	}
	return ArgumentKey[T]{name: name}
}

// Name returns the key's name.
func (k ArgumentKey[T]) Name() string {
	return k.name
}

// Arguments is an immutable keyed bag of values injected into a session when
// it is opened. The zero value is an empty store.
type Arguments struct {
	values map[string]any
}

// NewArguments returns an empty store.
func NewArguments() Arguments {
	return Arguments{}
}

// ArgumentsFromMap builds a store from untyped values, for hosts that receive
// arguments from configuration or commands.
func ArgumentsFromMap(m map[string]any) Arguments {
	if len(m) == 0 {
		return Arguments{}
	}
	values := make(map[string]any, len(m))
	for k, v := range m {
		values[k] = v
	}
	return Arguments{values: values}
}

// With returns a copy of args with key bound to value. args is unchanged.
func With[T any](args Arguments, key ArgumentKey[T], value T) Arguments {
	values := make(map[string]any, len(args.values)+1)
	for k, v := range args.values {
		values[k] = v
	}
	values[key.name] = value
	return Arguments{values: values}
}

// Get looks key up in args. It fails with ErrMissingArgument when the key was
// never bound and with ErrArgumentType when the bound value is not a T.
func Get[T any](args Arguments, key ArgumentKey[T]) (T, error) {
	var zero T
	raw, ok := args.values[key.name]
	if !ok {
		return zero, newError(CodeMissingArgument, "missing argument %q", key.name)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, newError(CodeArgumentType, "argument %q has type %T, want %T", key.name, raw, zero)
	}
	return v, nil
}

// MustGet is Get for transforms: it panics with the lookup error, which the
// pipeline recovers and reports as a transform failure.
func MustGet[T any](args Arguments, key ArgumentKey[T]) T {
	v, err := Get(args, key)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether a value is bound under name.
func (a Arguments) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Len returns the number of bound values.
func (a Arguments) Len() int {
	return len(a.values)
}

// Names returns the bound names in sorted order.
func (a Arguments) Names() []string {
	names := make([]string, 0, len(a.values))
	for k := range a.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String renders the store for logs.
func (a Arguments) String() string {
	s := "{"
	for i, name := range a.Names() {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%v", name, a.values[name])
	}
	return s + "}"
}
