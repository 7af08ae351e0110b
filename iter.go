package cqrs

import "context"

// Iterator is a generic pull iterator over query results, for handlers that
// produce their rows one at a time instead of materializing a slice.
type Iterator[T any] struct {
	nextFunc func(ctx context.Context) (T, bool, error)
	current  T
	err      error
}

// NewIterator creates a new Iterator from a function that produces the next
// value. The function returns ok=false when the iterator is finished, or a
// non-nil error on failure.
func NewIterator[T any](nextFunc func(ctx context.Context) (T, bool, error)) *Iterator[T] {
	return &Iterator[T]{
		nextFunc: nextFunc,
	}
}

// SliceIterator creates an Iterator over a fixed set of values.
func SliceIterator[T any](values ...T) *Iterator[T] {
	i := 0
	return NewIterator(func(ctx context.Context) (T, bool, error) {
		if i >= len(values) {
			var zero T
			return zero, false, nil
		}
		v := values[i]
		i++
		return v, true, nil
	})
}

// Next advances the iterator. Returns false if the iterator is done or an error occurred.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}

	var ok bool
	it.current, ok, it.err = it.nextFunc(ctx)
	return ok && it.err == nil
}

// Value returns the current value.
func (it *Iterator[T]) Value() T {
	return it.current
}

// Err returns the last error encountered during iteration.
func (it *Iterator[T]) Err() error {
	return it.err
}

// All consumes the iterator and returns all items in a slice.
func (it *Iterator[T]) All(ctx context.Context) ([]T, error) {
	var results []T
	for it.Next(ctx) {
		results = append(results, it.Value())
	}
	return results, it.Err()
}
