package engine

import (
	"github.com/dball/gindex/internal/iterator"
	"github.com/dball/gindex/internal/types"
)

// GroupBy partitions every handle currently resolving path (which may be
// a dotted path crossing reference edges) into buckets keyed by the
// resolved attribute's current value, in handle-ascending order within
// each bucket. A handle whose path resolution hits a non-ref intermediate
// or a dangling reference, or that has no value for the final attribute,
// is omitted.
func (idx *Index) GroupBy(path string) (map[types.Atom][]types.Handle, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	segs, err := idx.paths.ParsePath(path)
	if err != nil {
		return nil, err
	}
	groups := make(map[types.Atom][]types.Handle)
	for _, h := range idx.handles.Sorted() {
		v, ok := idx.resolveGroupValueLocked(h, segs)
		if !ok {
			continue
		}
		groups[v] = append(groups[v], h)
	}
	return groups, nil
}

func (idx *Index) resolveGroupValueLocked(h types.Handle, segs []string) (types.Atom, bool) {
	cur := h
	for i := 0; i < len(segs)-1; i++ {
		child, found := idx.edges.Child(cur, segs[i])
		if !found {
			return types.Atom{}, false
		}
		cur = child
	}
	v, ok := idx.snapshots[cur][segs[len(segs)-1]]
	return v, ok
}

// GroupBy restricts the grouping to this view's allow-set.
func (v *View) GroupBy(path string) (map[types.Atom][]types.Handle, error) {
	v.base.mu.RLock()
	defer v.base.mu.RUnlock()
	segs, err := v.base.paths.ParsePath(path)
	if err != nil {
		return nil, err
	}
	groups := make(map[types.Atom][]types.Handle)
	v.allow.Each(func(h types.Handle) bool {
		if val, ok := v.base.resolveGroupValueLocked(h, segs); ok {
			groups[val] = append(groups[val], h)
		}
		return true
	})
	for name, handles := range groups {
		groups[name] = iterator.SortedSlice(handles)
	}
	return groups, nil
}
