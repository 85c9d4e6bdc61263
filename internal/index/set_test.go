package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dball/gindex/internal/types"
)

func TestHandleSetAddRemoveContains(t *testing.T) {
	s := NewHandleSet(0)
	assert.False(t, s.Contains(1))
	s.Add(1)
	s.Add(2)
	assert.True(t, s.Contains(1))
	assert.Equal(t, 2, s.Len())
	s.Remove(1)
	assert.False(t, s.Contains(1))
	assert.Equal(t, 1, s.Len())
}

func TestHandleSetClone(t *testing.T) {
	s := HandleSetOf(1, 2, 3)
	clone := s.Clone()
	clone.Add(4)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 4, clone.Len())
}

func TestHandleSetSorted(t *testing.T) {
	s := HandleSetOf(3, 1, 2)
	assert.Equal(t, []types.Handle{1, 2, 3}, s.Sorted())
}

func TestUnion(t *testing.T) {
	a := HandleSetOf(1, 2)
	b := HandleSetOf(2, 3)
	u := Union(a, b)
	assert.Equal(t, []types.Handle{1, 2, 3}, u.Sorted())
}

func TestIntersect(t *testing.T) {
	a := HandleSetOf(1, 2, 3)
	b := HandleSetOf(2, 3, 4)
	assert.Equal(t, []types.Handle{2, 3}, Intersect(a, b).Sorted())
}

func TestDifference(t *testing.T) {
	a := HandleSetOf(1, 2, 3)
	b := HandleSetOf(2)
	assert.Equal(t, []types.Handle{1, 3}, Difference(a, b).Sorted())
}

func TestNilHandleSetIsEmpty(t *testing.T) {
	var s *HandleSet
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(1))
}
