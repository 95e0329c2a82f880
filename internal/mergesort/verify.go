package mergesort

import "golang.org/x/exp/constraints"

// IsSorted reports whether seq is non-decreasing.
func IsSorted[T constraints.Ordered](seq []T) bool {
	return FirstViolation(seq) < 0
}

// FirstViolation returns the first index i with seq[i] > seq[i+1], or -1.
func FirstViolation[T constraints.Ordered](seq []T) int {
	for i := 0; i+1 < len(seq); i++ {
		if seq[i] > seq[i+1] {
			return i
		}
	}
	return -1
}
