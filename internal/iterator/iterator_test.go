package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceIterator(t *testing.T) {
	x := []int{3, 2, 1}
	slice := Slice[int](x)
	iter := BuildIterator[int](slice)
	assert.True(t, iter.Next())
	assert.Equal(t, 3, iter.Value())
	assert.True(t, iter.Next())
	assert.Equal(t, 2, iter.Value())
	assert.True(t, iter.Next())
	assert.Equal(t, 1, iter.Value())
	assert.False(t, iter.Next())
}

func TestReduce(t *testing.T) {
	iter := BuildIterator[int](Slice[int]([]int{1, 2, 3, 4}))
	sum := Reduce(iter, func(total int, n int) int { return total + n }, 0)
	assert.Equal(t, 10, sum)
}

func TestIteratorsConsecutive(t *testing.T) {
	first := BuildIterator[int](Slice[int]([]int{1, 2}))
	second := BuildIterator[int](Slice[int]([]int{3, 4}))
	drained := Iterators[int]{first, second}
	got := []int{}
	BuildIterator[int](drained).Each(func(v int) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestStopAfterPartialIteration(t *testing.T) {
	iter := BuildIterator[int](Slice[int]([]int{1, 2, 3}))
	assert.True(t, iter.Next())
	assert.Equal(t, 1, iter.Value())
	iter.Stop()
}

func TestIteratorEach(t *testing.T) {
	iter := BuildIterator[int](Slice[int]([]int{1, 2, 3}))
	var got []int
	iter.Each(func(v int) bool {
		got = append(got, v)
		return v < 2
	})
	assert.Equal(t, []int{1, 2}, got)
}

func TestSortedSlice(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, SortedSlice([]int{3, 1, 2}))
	assert.Equal(t, []string{"a", "b"}, SortedSlice([]string{"b", "a"}))
}
