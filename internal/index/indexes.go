package index

import (
	"sync"

	"github.com/dball/gindex/internal/types"
)

// Indexes is the composite, per-attribute index set that backs a single
// in-memory graph: one AttributeIndex per attribute name, created lazily on
// first use. mu guards only the name -> AttributeIndex map: callers hold it
// just long enough to look up the relevant AttributeIndex, then release it.
// The AttributeIndex's own posting lists and btree have no lock, so reads
// and writes on them are kept apart one level up, by the single-writer
// discipline of the engine that owns this Indexes.
type Indexes struct {
	mu     sync.RWMutex
	byAttr map[string]*AttributeIndex
	degree int
}

// NewIndexes returns an empty composite index. degree configures every
// AttributeIndex's range btree node size; 0 selects a default.
func NewIndexes(degree int) *Indexes {
	return &Indexes{
		byAttr: make(map[string]*AttributeIndex),
		degree: degree,
	}
}

// attr returns the AttributeIndex for name, creating it if absent.
func (idx *Indexes) attr(name string) *AttributeIndex {
	idx.mu.RLock()
	ai, ok := idx.byAttr[name]
	idx.mu.RUnlock()
	if ok {
		return ai
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	ai, ok = idx.byAttr[name]
	if !ok {
		ai = NewAttributeIndex(idx.degree)
		idx.byAttr[name] = ai
	}
	return ai
}

// Insert records that handle h now holds value v for attribute name.
func (idx *Indexes) Insert(name string, v types.Atom, h types.Handle) {
	idx.attr(name).Insert(v, h)
}

// Remove records that handle h no longer holds value v for attribute name.
func (idx *Indexes) Remove(name string, v types.Atom, h types.Handle) {
	idx.mu.RLock()
	ai, ok := idx.byAttr[name]
	idx.mu.RUnlock()
	if ok {
		ai.Remove(v, h)
	}
}

// Eq returns the set of handles whose value for name equals v. Returns an
// empty set if the attribute was never indexed.
func (idx *Indexes) Eq(name string, v types.Atom) *HandleSet {
	idx.mu.RLock()
	ai, ok := idx.byAttr[name]
	idx.mu.RUnlock()
	if !ok {
		return NewHandleSet(0)
	}
	return ai.Eq(v)
}

// Range returns the set of handles whose numeric value for name falls
// within [lo, hi], per loIncl/hiIncl. Returns an empty set if the
// attribute was never indexed.
func (idx *Indexes) Range(name string, lo, hi *float64, loIncl, hiIncl bool) *HandleSet {
	idx.mu.RLock()
	ai, ok := idx.byAttr[name]
	idx.mu.RUnlock()
	if !ok {
		return NewHandleSet(0)
	}
	return ai.Range(lo, hi, loIncl, hiIncl)
}

// Cardinality returns the number of memberships indexed under name, or 0
// if the attribute was never indexed. The query evaluator's And ordering
// uses this as a cheap pre-evaluation cardinality estimate.
func (idx *Indexes) Cardinality(name string) int {
	idx.mu.RLock()
	ai, ok := idx.byAttr[name]
	idx.mu.RUnlock()
	if !ok {
		return 0
	}
	return ai.Cardinality()
}
