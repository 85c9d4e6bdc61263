// Package graph maintains the directed edge table that backs dotted
// attribute-path resolution: forward edges (parent, attr) -> child, and
// the reverse multimap that inverts them so a path predicate evaluated on
// a referenced record can be pulled back to every record pointing at it.
package graph

import (
	"sync"

	"github.com/dball/gindex/internal/index"
	"github.com/dball/gindex/internal/types"
)

type edgeKey struct {
	parent types.Handle
	attr   string
}

// EdgeTable is a directed graph whose vertices are handles and whose edges
// are (parent, attr) -> child. A reverse multimap child -> set<(parent,
// attr)> is maintained alongside it so path resolution can invert a
// forward traversal without ever walking the object graph itself.
//
// Invariant: a forward edge (p, a) -> c exists iff p's current value of a
// is ref(c); reverse entries mirror forward entries exactly. Callers
// (the dispatcher in internal/engine) are responsible for calling Set
// exactly once per attribute write and Clear exactly once per attribute
// delete, so this invariant holds between writes.
type EdgeTable struct {
	mu      sync.RWMutex
	forward map[edgeKey]types.Handle
	reverse map[types.Handle]map[edgeKey]struct{}
}

// NewEdgeTable returns an empty edge table.
func NewEdgeTable() *EdgeTable {
	return &EdgeTable{
		forward: make(map[edgeKey]types.Handle),
		reverse: make(map[types.Handle]map[edgeKey]struct{}),
	}
}

// Set records that parent's attr now holds ref(child), replacing any prior
// edge for (parent, attr).
func (et *EdgeTable) Set(parent types.Handle, attr string, child types.Handle) {
	et.mu.Lock()
	defer et.mu.Unlock()
	et.clearLocked(parent, attr)
	key := edgeKey{parent, attr}
	et.forward[key] = child
	refs, ok := et.reverse[child]
	if !ok {
		refs = make(map[edgeKey]struct{})
		et.reverse[child] = refs
	}
	refs[key] = struct{}{}
}

// Clear removes any forward edge for (parent, attr) and its mirrored
// reverse entry. It's a no-op if no such edge exists.
func (et *EdgeTable) Clear(parent types.Handle, attr string) {
	et.mu.Lock()
	defer et.mu.Unlock()
	et.clearLocked(parent, attr)
}

func (et *EdgeTable) clearLocked(parent types.Handle, attr string) {
	key := edgeKey{parent, attr}
	child, ok := et.forward[key]
	if !ok {
		return
	}
	delete(et.forward, key)
	if refs, ok := et.reverse[child]; ok {
		delete(refs, key)
		if len(refs) == 0 {
			delete(et.reverse, child)
		}
	}
}

// Child returns the handle parent's attr currently references, if any.
func (et *EdgeTable) Child(parent types.Handle, attr string) (types.Handle, bool) {
	et.mu.RLock()
	defer et.mu.RUnlock()
	child, ok := et.forward[edgeKey{parent, attr}]
	return child, ok
}

// ParentsOf returns the set of handles with a (parent, attr) edge pointing
// at child. This is the reverse-edge lookup the path resolver uses to
// pull a tail predicate's matches back through one hop.
func (et *EdgeTable) ParentsOf(child types.Handle, attr string) *index.HandleSet {
	et.mu.RLock()
	defer et.mu.RUnlock()
	out := index.NewHandleSet(0)
	for key := range et.reverse[child] {
		if key.attr == attr {
			out.Add(key.parent)
		}
	}
	return out
}

// ParentsOfAny returns, for each child in children, the union of handles
// with a (parent, attr) edge pointing at that child. Used by the path
// resolver to pull an entire tail candidate set back through one hop.
func (et *EdgeTable) ParentsOfAny(children *index.HandleSet, attr string) *index.HandleSet {
	out := index.NewHandleSet(0)
	children.Each(func(c types.Handle) bool {
		et.ParentsOf(c, attr).Each(func(p types.Handle) bool {
			out.Add(p)
			return true
		})
		return true
	})
	return out
}
