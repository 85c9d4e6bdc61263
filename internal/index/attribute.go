package index

import (
	"math"

	"github.com/google/btree"

	"github.com/dball/gindex/internal/types"
)

const defaultBTreeDegree = 32

// rangeEntry is one key in an attribute's numeric range index: a float64
// key shared by every numeric atom that casts to it, plus the handles
// currently holding that value.
type rangeEntry struct {
	key     float64
	handles *HandleSet
}

func lessRangeEntry(a, b rangeEntry) bool {
	return a.key < b.key
}

// AttributeIndex is the per-attribute pair of structures backing equality
// and range queries: an equality posting list over every atom ever indexed
// for the attribute, and a btree ordered by numeric value for range
// queries. Reads (Eq/Range) take no lock of their own; callers serialize
// writes through the owning Index's single-writer discipline.
type AttributeIndex struct {
	eq     map[eqKey]*HandleSet
	ranged *btree.BTreeG[rangeEntry]
}

// NewAttributeIndex returns an empty attribute index whose range btree has
// the given node degree (0 selects a default).
func NewAttributeIndex(degree int) *AttributeIndex {
	if degree <= 0 {
		degree = defaultBTreeDegree
	}
	return &AttributeIndex{
		eq:     make(map[eqKey]*HandleSet),
		ranged: btree.NewG(degree, lessRangeEntry),
	}
}

// Insert adds h to the posting list for v, and to the range btree if v is
// numeric.
func (ai *AttributeIndex) Insert(v types.Atom, h types.Handle) {
	key := normalize(v)
	set, ok := ai.eq[key]
	if !ok {
		set = NewHandleSet(1)
		ai.eq[key] = set
	}
	set.Add(h)
	if f, ok := v.AsFloat64(); ok {
		entry, found := ai.ranged.Get(rangeEntry{key: f})
		if !found {
			entry = rangeEntry{key: f, handles: NewHandleSet(1)}
			ai.ranged.ReplaceOrInsert(entry)
		}
		entry.handles.Add(h)
	}
}

// Remove deletes h from the posting list for v, pruning empty posting
// lists and empty range buckets as it goes. A deleted range bucket must
// actually be removed from the tree rather than left as an empty node, or
// a later AscendGreaterOrEqual walks over it and the rebalance on the next
// insert corrupts offsets.
func (ai *AttributeIndex) Remove(v types.Atom, h types.Handle) {
	key := normalize(v)
	if set, ok := ai.eq[key]; ok {
		set.Remove(h)
		if set.Len() == 0 {
			delete(ai.eq, key)
		}
	}
	if f, ok := v.AsFloat64(); ok {
		if entry, found := ai.ranged.Get(rangeEntry{key: f}); found {
			entry.handles.Remove(h)
			if entry.handles.Len() == 0 {
				ai.ranged.Delete(rangeEntry{key: f})
			}
		}
	}
}

// Eq returns the posting list for v, or an empty set if none exists.
func (ai *AttributeIndex) Eq(v types.Atom) *HandleSet {
	if set, ok := ai.eq[normalize(v)]; ok {
		return set
	}
	return NewHandleSet(0)
}

// Range returns the union of handles whose numeric value of this attribute
// falls within [lo, hi] (bounds applied per loIncl/hiIncl; a nil bound is
// unbounded on that side). Non-numeric atoms never appear in the range
// btree, so they're naturally excluded from any range query.
func (ai *AttributeIndex) Range(lo, hi *float64, loIncl, hiIncl bool) *HandleSet {
	out := NewHandleSet(0)
	pivot := rangeEntry{key: math.Inf(-1)}
	if lo != nil {
		pivot.key = *lo
	}
	ai.ranged.AscendGreaterOrEqual(pivot, func(entry rangeEntry) bool {
		if lo != nil && entry.key == *lo && !loIncl {
			return true
		}
		if hi != nil {
			if entry.key > *hi {
				return false
			}
			if entry.key == *hi && !hiIncl {
				return false
			}
		}
		entry.handles.Each(func(h types.Handle) bool {
			out.Add(h)
			return true
		})
		return true
	})
	return out
}

// Cardinality returns the number of (value, handle) memberships indexed
// for this attribute, used by the query evaluator to order And's children
// from cheapest to most expensive.
func (ai *AttributeIndex) Cardinality() int {
	total := 0
	for _, set := range ai.eq {
		total += set.Len()
	}
	return total
}
