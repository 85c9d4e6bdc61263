package engine

import "github.com/dball/gindex/internal/types"

// observer is the mutation callback bound to a record at registration
// time. Every post-registration attribute write on the record flows
// through here into the index structures the record participates in.
type observer struct {
	idx    *Index
	handle types.Handle
}

func (o *observer) OnSet(attr string, value types.Atom) {
	o.idx.applySet(o.handle, attr, value)
}

func (o *observer) OnDelete(attr string) {
	o.idx.applyDelete(o.handle, attr)
}

// applySet propagates a record's (attr, newVal) write to every index
// structure it participates in. Setting an attribute to its current value
// is a no-op; otherwise the old value's entries are removed before the
// new value's are inserted, so a reader can never observe both fail to
// hold of the record's snapshot for that attribute.
func (idx *Index) applySet(h types.Handle, attr string, newVal types.Atom) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	snapshot, ok := idx.snapshots[h]
	if !ok {
		return
	}
	old, existed := snapshot[attr]
	if existed && old.Equal(newVal) {
		return
	}
	if existed {
		idx.applyDeleteLocked(h, attr, old)
	}
	idx.applyInsertLocked(h, attr, newVal)
	snapshot[attr] = newVal
}

// applyDelete propagates a record's removal of attr's value.
func (idx *Index) applyDelete(h types.Handle, attr string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	snapshot, ok := idx.snapshots[h]
	if !ok {
		return
	}
	old, existed := snapshot[attr]
	if !existed {
		return
	}
	idx.applyDeleteLocked(h, attr, old)
	delete(snapshot, attr)
}

func (idx *Index) applyInsertLocked(h types.Handle, attr string, v types.Atom) {
	idx.attrs.Insert(attr, v, h)
	if ref, ok := v.AsRef(); ok {
		idx.edges.Set(h, attr, ref)
	}
}

func (idx *Index) applyDeleteLocked(h types.Handle, attr string, v types.Atom) {
	idx.attrs.Remove(attr, v, h)
	if _, ok := v.AsRef(); ok {
		idx.edges.Clear(h, attr)
	}
}
