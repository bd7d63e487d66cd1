package boolalg

import "github.com/katalvlaran/setexpr/eval"

// Backend evaluates an expression over T against a set of "active"
// keys: eval.Evaluate reports whether the expression holds true when
// exactly the active keys are present.
type Backend[T comparable] struct {
	active map[T]bool
}

// New returns an empty Backend with no active keys.
func New[T comparable]() *Backend[T] {
	return &Backend[T]{active: make(map[T]bool)}
}

var _ eval.Backend[string, bool] = (*Backend[string])(nil)

// Add marks key as active (true) for the next evaluation.
func (b *Backend[T]) Add(key T) {
	b.active[key] = true
}

func (b *Backend[T]) Universal() (bool, error) { return true, nil }
func (b *Backend[T]) Empty() (bool, error)     { return false, nil }

func (b *Backend[T]) Set(key T) (bool, error) {
	return b.active[key], nil
}

func (b *Backend[T]) Union(values []bool) (bool, error) {
	for _, v := range values {
		if v {
			return true, nil
		}
	}
	return false, nil
}

func (b *Backend[T]) Intersection(values []bool) (bool, error) {
	for _, v := range values {
		if !v {
			return false, nil
		}
	}
	return true, nil
}

func (b *Backend[T]) Difference(include, exclude bool) (bool, error) {
	return include && !exclude, nil
}
