package lattice

import "fmt"

// DefaultPriority is the priority of transforms added without WithPriority.
const DefaultPriority = 1

// TransformFunc paints into a view. Returning an error, or panicking, discards
// everything the call wrote during the pass.
type TransformFunc func(v *View) error

// Transform is a registered paint function plus its ordering and reactive
// bindings. Lower priorities run first; equal priorities run in registration
// order. A transform with no properties is static: it only runs on full
// passes.
type Transform struct {
	Name       string
	Priority   int
	Properties []Observable
	Fn         TransformFunc

	index int // registration order
}

// TransformOption configures a transform at registration.
type TransformOption func(*Transform)

// WithPriority sets the transform's priority.
func WithPriority(priority int) TransformOption {
	return func(t *Transform) { t.Priority = priority }
}

// WithProperties binds the transform to properties; setting any of them
// re-runs the transform in every open session of the interface.
func WithProperties(props ...Observable) TransformOption {
	return func(t *Transform) {
		for _, p := range props {
			if p == nil {
				panic("lattice: nil property binding")
			}
		}
		t.Properties = append(t.Properties, props...)
	}
}

// WithName labels the transform in logs, traces, and failure errors.
func WithName(name string) TransformOption {
	return func(t *Transform) { t.Name = name }
}

// Static reports whether the transform has no property bindings.
func (t *Transform) Static() bool {
	return len(t.Properties) == 0
}

// Index returns the registration order of the transform within its interface.
func (t *Transform) Index() int {
	return t.index
}

// String returns the transform's label.
func (t *Transform) String() string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("transform#%d", t.index)
}

func newTransform(index int, fn TransformFunc, opts []TransformOption) *Transform {
	if fn == nil {
		panic("lattice: cannot add nil transform")
	}
	t := &Transform{Priority: DefaultPriority, Fn: fn, index: index}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
