package reactive

// SliceSignal wraps Signal[[]T] with convenience methods for list state.
// All mutating methods copy the backing slice before changing it, so
// values handed out by Get stay stable.
type SliceSignal[T any] struct {
	*Signal[[]T]
}

// NewSliceSignal creates a new SliceSignal with the given initial value.
// A nil initial value becomes an empty slice.
func NewSliceSignal[T any](rt *Runtime, initial []T) *SliceSignal[T] {
	if initial == nil {
		initial = []T{}
	}
	return &SliceSignal[T]{NewSignal(rt, initial)}
}

// Append adds an item to the end of the slice.
func (s *SliceSignal[T]) Append(item T) {
	s.Update(func(items []T) []T {
		next := make([]T, len(items), len(items)+1)
		copy(next, items)
		return append(next, item)
	})
}

// AppendAll adds multiple items to the end of the slice.
func (s *SliceSignal[T]) AppendAll(items ...T) {
	s.Update(func(current []T) []T {
		next := make([]T, len(current), len(current)+len(items))
		copy(next, current)
		return append(next, items...)
	})
}

// Prepend adds an item to the beginning of the slice.
func (s *SliceSignal[T]) Prepend(item T) {
	s.Update(func(items []T) []T {
		next := make([]T, 0, len(items)+1)
		next = append(next, item)
		return append(next, items...)
	})
}

// RemoveAt removes the item at the given index.
// Does nothing if index is out of bounds.
func (s *SliceSignal[T]) RemoveAt(index int) {
	s.Update(func(items []T) []T {
		if index < 0 || index >= len(items) {
			return items
		}
		next := make([]T, 0, len(items)-1)
		next = append(next, items[:index]...)
		return append(next, items[index+1:]...)
	})
}

// SetAt sets the item at the given index.
// Does nothing if index is out of bounds.
func (s *SliceSignal[T]) SetAt(index int, item T) {
	s.Update(func(items []T) []T {
		if index < 0 || index >= len(items) {
			return items
		}
		next := make([]T, len(items))
		copy(next, items)
		next[index] = item
		return next
	})
}

// UpdateAt updates the item at the given index using the provided function.
// Does nothing if index is out of bounds.
func (s *SliceSignal[T]) UpdateAt(index int, fn func(T) T) {
	s.Update(func(items []T) []T {
		if index < 0 || index >= len(items) {
			return items
		}
		next := make([]T, len(items))
		copy(next, items)
		next[index] = fn(next[index])
		return next
	})
}

// Filter keeps only items that satisfy the predicate.
func (s *SliceSignal[T]) Filter(predicate func(T) bool) {
	s.Update(func(items []T) []T {
		next := make([]T, 0, len(items))
		for _, item := range items {
			if predicate(item) {
				next = append(next, item)
			}
		}
		return next
	})
}

// Clear removes all items from the slice.
func (s *SliceSignal[T]) Clear() {
	s.Set([]T{})
}

// Len returns the length of the slice.
// This reads the signal and creates a dependency.
func (s *SliceSignal[T]) Len() int {
	return len(s.Get())
}
