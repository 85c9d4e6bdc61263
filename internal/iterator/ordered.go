package iterator

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortedSlice returns a sorted copy of s's elements in ascending order.
// Used wherever a set or stream backed by a map needs to materialize in a
// deterministic order, most commonly handle-ascending.
func SortedSlice[T constraints.Ordered](s []T) []T {
	out := append([]T(nil), s...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
