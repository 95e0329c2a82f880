// Package mergesort implements top-down recursive merge sort over slices.
package mergesort

import "golang.org/x/exp/constraints"

// Sort returns a sorted copy of seq. The input is never modified.
//
// seq is split at len/2, both halves are sorted recursively and the results
// merged with a left-biased comparison, so equal values keep their original
// relative order. Recursion depth is O(log n).
func Sort[T constraints.Ordered](seq []T) []T {
	if len(seq) <= 1 {
		out := make([]T, len(seq))
		copy(out, seq)
		return out
	}

	mid := len(seq) / 2
	left := Sort(seq[:mid])
	right := Sort(seq[mid:])
	return merge(left, right)
}

// Ints sorts a slice of ints.
func Ints(seq []int) []int {
	return Sort(seq)
}

func merge[T constraints.Ordered](left, right []T) []T {
	out := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		// <= takes from the left on ties
		if left[i] <= right[j] {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}
