package index

import (
	"github.com/dball/gindex/internal/iterator"
	"github.com/dball/gindex/internal/types"
)

// HandleSet is a mutable set of handles. It backs posting lists, candidate
// sets built by the query evaluator, and allow-sets held by filtered views.
type HandleSet struct {
	m map[types.Handle]struct{}
}

// NewHandleSet returns an empty handle set, optionally pre-sized.
func NewHandleSet(sizeHint int) *HandleSet {
	return &HandleSet{m: make(map[types.Handle]struct{}, sizeHint)}
}

// HandleSetOf returns a handle set containing exactly the given handles.
func HandleSetOf(handles ...types.Handle) *HandleSet {
	s := NewHandleSet(len(handles))
	for _, h := range handles {
		s.Add(h)
	}
	return s
}

// Add inserts h into the set.
func (s *HandleSet) Add(h types.Handle) {
	s.m[h] = struct{}{}
}

// Remove deletes h from the set.
func (s *HandleSet) Remove(h types.Handle) {
	delete(s.m, h)
}

// Contains reports whether h is a member of the set.
func (s *HandleSet) Contains(h types.Handle) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[h]
	return ok
}

// Len returns the number of members.
func (s *HandleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Clone returns an independent copy of the set.
func (s *HandleSet) Clone() *HandleSet {
	clone := NewHandleSet(s.Len())
	for h := range s.m {
		clone.m[h] = struct{}{}
	}
	return clone
}

// Each invokes accept for every member until accept returns false or the set
// is exhausted.
func (s *HandleSet) Each(accept iterator.Accept[types.Handle]) {
	if s == nil {
		return
	}
	for h := range s.m {
		if !accept(h) {
			return
		}
	}
}

// Sorted returns the set's members in handle-ascending order, the order
// Index.Collect materializes results in.
func (s *HandleSet) Sorted() []types.Handle {
	out := make([]types.Handle, 0, s.Len())
	s.Each(func(h types.Handle) bool {
		out = append(out, h)
		return true
	})
	return iterator.SortedSlice(out)
}

// Union returns a new set containing every member of either input.
func Union(a, b *HandleSet) *HandleSet {
	out := NewHandleSet(a.Len() + b.Len())
	a.Each(func(h types.Handle) bool { out.Add(h); return true })
	b.Each(func(h types.Handle) bool { out.Add(h); return true })
	return out
}

// Intersect returns a new set containing members present in both inputs. It
// iterates the smaller input to keep the cost proportional to the cheaper
// side, which is what lets And short-circuit efficiently.
func Intersect(a, b *HandleSet) *HandleSet {
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := NewHandleSet(a.Len())
	a.Each(func(h types.Handle) bool {
		if b.Contains(h) {
			out.Add(h)
		}
		return true
	})
	return out
}

// Difference returns a new set containing members of a not present in b.
func Difference(a, b *HandleSet) *HandleSet {
	out := NewHandleSet(a.Len())
	a.Each(func(h types.Handle) bool {
		if !b.Contains(h) {
			out.Add(h)
		}
		return true
	})
	return out
}
