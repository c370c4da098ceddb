package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a month.
// It ensures that months are unique and the series is always sorted.
type History[T any] struct {
	months []Month
	values []T
}

// Latest returns the latest month and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (month Month, value T) {
	last := len(h.months) - 1
	if last < 0 {
		return Month{}, value
	}
	return h.months[last], h.values[last]
}

// First returns the earliest month and value in the history.
func (h *History[T]) First() (month Month, value T) {
	if len(h.months) == 0 {
		return Month{}, value
	}
	return h.months[0], h.values[0]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.months) }

// Months returns the sorted months of the history. The slice must not be modified.
func (h *History[T]) Months() []Month { return h.months }

// search returns the position of 'on' in the months, and whether it was found.
func (h *History[T]) search(on Month) (int, bool) {
	return slices.BinarySearchFunc(h.months, on, Month.Compare)
}

// Append adds a point to the history.
//
// Existing value at that month is overwritten.
func (h *History[T]) Append(on Month, v T) *History[T] {
	i, found := h.search(on)
	if found {
		// Last write wins, giving priority to the most recent data.
		h.values[i] = v
		return h
	}
	h.months = slices.Insert(h.months, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Values returns an iterator over all month/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Month, T] {
	return func(yield func(Month, T) bool) {
		for i, on := range h.months {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at exactly 'on' and true or zero value and false.
func (h *History[T]) Get(on Month) (T, bool) {
	var value T
	if i, found := h.search(on); found {
		return h.values[i], true
	}
	return value, false
}

// ValueAsOf returns the value on a given month, or the most recent value before it.
// It returns the value and true if found, otherwise it returns the zero value and false.
func (h *History[T]) ValueAsOf(on Month) (T, bool) {
	i, found := h.search(on)
	if found {
		return h.values[i], true
	}
	// `i` is the index where `on` would be inserted, the value we want is at `i-1`.
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// iterate returns an iterator over all unique, sorted months from multiple sorted series.
func iterate(series ...[]Month) iter.Seq[Month] {
	return func(yield func(Month) bool) {
		indexes := make([]int, len(series))
		for {
			var (
				m     Month
				found bool
			)
			for i, index := range indexes {
				if index < len(series[i]) {
					if on := series[i][index]; !found || on.Before(m) {
						m, found = on, true
					}
				}
			}
			if !found {
				// All series have been consumed.
				return
			}
			for i, index := range indexes {
				if index < len(series[i]) && series[i][index] == m {
					indexes[i]++
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Iterate returns an iterator over all unique, sorted months from multiple History objects.
func Iterate[T any](histories ...*History[T]) iter.Seq[Month] {
	months := make([][]Month, 0, len(histories))
	for _, h := range histories {
		months = append(months, h.months)
	}
	return iterate(months...)
}
