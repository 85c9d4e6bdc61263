package engine

import (
	"github.com/dball/gindex/internal/index"
	"github.com/dball/gindex/internal/iterator"
	"github.com/dball/gindex/internal/types"
)

// snapshotRecord is a frozen copy of one handle's attribute snapshot,
// registered into a new Index by Rebase and UnionWith in place of the
// original, already-registered types.Record. A Record's BindObserver is a
// single overwritable slot (see pkg/gindex.Bag and the package's
// testRecord): re-adding the original record into a second Index would
// steal its observer away from the Index it's already bound to, so any
// later mutation on that record would stop reaching the first Index's
// posting lists and snapshots. snapshotRecord has no mutation API of its
// own, so it never has anything to report; it exists purely to seed a new
// Index with a point-in-time copy that shares no state with the original.
type snapshotRecord struct {
	attrs map[string]types.Atom
}

func newSnapshotRecord(src map[string]types.Atom) *snapshotRecord {
	attrs := make(map[string]types.Atom, len(src))
	for name, v := range src {
		attrs[name] = v
	}
	return &snapshotRecord{attrs: attrs}
}

func (s *snapshotRecord) Attributes() *iterator.Iterator[types.AttrValue] {
	avs := make([]types.AttrValue, 0, len(s.attrs))
	for name, v := range s.attrs {
		avs = append(avs, types.AttrValue{Name: name, Value: v})
	}
	return iterator.BuildIterator[types.AttrValue](iterator.Slice[types.AttrValue](avs))
}

// BindObserver is a no-op: a snapshotRecord is never mutated, so it has
// nothing to ever report to the observer.
func (s *snapshotRecord) BindObserver(types.Observer) {}

// snapshotRecordsLocked builds a snapshotRecord for every member of handles
// still registered, in handle-ascending order. idx.mu must be held (read or
// write) by the caller.
func (idx *Index) snapshotRecordsLocked(handles *index.HandleSet) []types.Record {
	sorted := handles.Sorted()
	out := make([]types.Record, 0, len(sorted))
	for _, h := range sorted {
		if snap, ok := idx.snapshots[h]; ok {
			out = append(out, newSnapshotRecord(snap))
		}
	}
	return out
}
