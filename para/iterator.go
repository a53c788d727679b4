package para

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[V any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (V, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Process computes the lazy sequence of values for one work item.
// Returning an error, either directly or from the iterator's Next, marks
// the item as failed.
type Process[I, V any] func(ctx context.Context, item I) (Iterator[V], error)

// Values creates an iterator over the given values.
func Values[V any](values ...V) Iterator[V] {
	return &sliceIter[V]{items: values}
}

// FromSlice creates an iterator over a slice of values.
func FromSlice[V any](items []V) Iterator[V] {
	return &sliceIter[V]{items: items}
}

// Collect drains the iterator and returns all values as a slice.
// The iterator is closed before returning.
func Collect[V any](ctx context.Context, it Iterator[V]) ([]V, error) {
	defer it.Close()
	var result []V
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// ForEach drains the iterator, calling fn for each value.
// The iterator is closed before returning.
func ForEach[V any](ctx context.Context, it Iterator[V], fn func(context.Context, V) error) error {
	defer it.Close()
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, val); err != nil {
			return err
		}
	}
}

// --- Internal iterators ---

type sliceIter[V any] struct {
	items []V
	index int
}

func (it *sliceIter[V]) Next(_ context.Context) (V, bool, error) {
	if it.index >= len(it.items) {
		var zero V
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[V]) Close() error { return nil }
