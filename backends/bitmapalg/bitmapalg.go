package bitmapalg

import (
	"github.com/pilosa/pilosa/roaring"

	"github.com/katalvlaran/setexpr/eval"
)

// Backend evaluates an expression over term type T into *roaring.Bitmap
// results, drawing each leaf's bitmap from Lookup and treating Universe
// as the full row-position space for top-level negations.
type Backend[T comparable] struct {
	Universe *roaring.Bitmap
	Lookup   func(T) (*roaring.Bitmap, error)
}

// New returns a Backend over the given universe bitmap and term lookup.
func New[T comparable](universe *roaring.Bitmap, lookup func(T) (*roaring.Bitmap, error)) *Backend[T] {
	return &Backend[T]{Universe: universe, Lookup: lookup}
}

var _ eval.Backend[string, *roaring.Bitmap] = (*Backend[string])(nil)

func (b *Backend[T]) Universal() (*roaring.Bitmap, error) { return b.Universe, nil }
func (b *Backend[T]) Empty() (*roaring.Bitmap, error)     { return roaring.NewBitmap(), nil }

func (b *Backend[T]) Set(value T) (*roaring.Bitmap, error) { return b.Lookup(value) }

func (b *Backend[T]) Union(values []*roaring.Bitmap) (*roaring.Bitmap, error) {
	out := roaring.NewBitmap()
	for _, v := range values {
		out = out.Union(v)
	}
	return out, nil
}

func (b *Backend[T]) Intersection(values []*roaring.Bitmap) (*roaring.Bitmap, error) {
	if len(values) == 0 {
		return b.Universe, nil
	}
	out := values[0]
	for _, v := range values[1:] {
		out = out.Intersect(v)
	}
	return out, nil
}

func (b *Backend[T]) Difference(include, exclude *roaring.Bitmap) (*roaring.Bitmap, error) {
	return include.Difference(exclude), nil
}
