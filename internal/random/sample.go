package random

import (
	"errors"
	"fmt"
)

// ErrEmptyInput indicates a selection was requested from an empty slice.
var ErrEmptyInput = errors.New("random: empty input")

// ErrInvalidCount indicates a sample size of zero or larger than the input.
var ErrInvalidCount = errors.New("random: invalid sample count")

// Pick returns one element of items chosen uniformly at random.
//
// Precondition: src must be non-nil.
// Postcondition: returns an element of items, or ErrEmptyInput when items is empty.
func Pick[T any](src Source, items []T) (T, error) {
	if len(items) == 0 {
		var zero T
		return zero, ErrEmptyInput
	}
	return items[src.Uniform(0, len(items)-1)], nil
}

// Sample returns k elements drawn uniformly at random without replacement,
// in draw order. items is not modified.
//
// Precondition: src must be non-nil.
// Postcondition: len(result) == k and no position of items is returned twice,
// or ErrInvalidCount when k < 1 or k > len(items).
func Sample[T any](src Source, items []T, k int) ([]T, error) {
	if k < 1 || k > len(items) {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrInvalidCount, k, len(items))
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}

	out := make([]T, k)
	for i := 0; i < k; i++ {
		j := src.Uniform(i, len(idx)-1)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = items[idx[i]]
	}
	return out, nil
}

// Shuffle returns a Fisher-Yates permutation of a copy of items. items is not
// modified.
//
// Precondition: src must be non-nil.
// Postcondition: result is a permutation of items with the same length.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Uniform(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
