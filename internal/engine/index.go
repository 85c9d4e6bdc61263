// Package engine wires the attribute indexes, edge table, and query
// evaluator into a single Index: the entry point records are added to and
// queries are run against. It owns the single-writer/many-readers
// discipline and the mutation-propagation protocol that keeps every index
// structure consistent with a record's current attribute snapshot.
package engine

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/dball/gindex/internal/graph"
	"github.com/dball/gindex/internal/index"
	"github.com/dball/gindex/internal/query"
	"github.com/dball/gindex/internal/types"
)

// Config tunes the structures an Index allocates.
type Config struct {
	// BTreeDegree sets the node degree of every attribute's range btree.
	// 0 selects a default.
	BTreeDegree int
	// PathCacheSize bounds the number of distinct dotted paths memoized.
	// 0 selects a default.
	PathCacheSize int
}

// Index is the engine's core: the owner of every posting list, range
// index, edge, and record snapshot for one graph of indexables. Reads may
// proceed concurrently; writes (Add, Remove, and attribute mutation via
// the bound observer) serialize against each other and against reads via
// mu.
type Index struct {
	mu        sync.RWMutex
	cfg       Config
	attrs     *index.Indexes
	edges     *graph.EdgeTable
	paths     *graph.PathCache
	eval      *query.Evaluator
	handles   *index.HandleSet
	records   map[types.Handle]types.Record
	snapshots map[types.Handle]map[string]types.Atom
	seen      map[types.Record]types.Handle
}

// New returns an empty Index configured per cfg.
func New(cfg Config) *Index {
	attrs := index.NewIndexes(cfg.BTreeDegree)
	edges := graph.NewEdgeTable()
	paths := graph.NewPathCache(cfg.PathCacheSize)
	return &Index{
		cfg:       cfg,
		attrs:     attrs,
		edges:     edges,
		paths:     paths,
		eval:      query.NewEvaluator(attrs, edges, paths),
		handles:   index.NewHandleSet(0),
		records:   make(map[types.Handle]types.Record),
		snapshots: make(map[types.Handle]map[string]types.Atom),
		seen:      make(map[types.Record]types.Handle),
	}
}

// Add registers record, assigning it a handle and indexing its current
// attributes. Adding an already-registered record is a no-op.
func (idx *Index) Add(record types.Record) types.Handle {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if h, ok := idx.seen[record]; ok {
		return h
	}
	h := types.AllocateHandle()
	idx.seen[record] = h
	idx.records[h] = record
	idx.handles.Add(h)
	snapshot := make(map[string]types.Atom)
	idx.snapshots[h] = snapshot
	record.Attributes().Each(func(av types.AttrValue) bool {
		idx.applyInsertLocked(h, av.Name, av.Value)
		snapshot[av.Name] = av.Value
		return true
	})
	record.BindObserver(&observer{idx: idx, handle: h})
	return h
}

// AddMany registers each record in order, returning their assigned handles.
func (idx *Index) AddMany(records []types.Record) []types.Handle {
	handles := make([]types.Handle, len(records))
	for i, r := range records {
		handles[i] = idx.Add(r)
	}
	return handles
}

// Remove destroys h: its attributes are cleared from every index
// structure and it's dropped from the handle set and record registry. Any
// surviving record's ref(h) attribute is left untouched; path resolution
// naturally treats it as dangling because h can no longer appear in any
// tail candidate set.
func (idx *Index) Remove(h types.Handle) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(h)
}

func (idx *Index) removeLocked(h types.Handle) {
	snapshot, ok := idx.snapshots[h]
	if !ok {
		return
	}
	for attr, v := range snapshot {
		idx.applyDeleteLocked(h, attr, v)
	}
	delete(idx.snapshots, h)
	if record, ok := idx.records[h]; ok {
		delete(idx.seen, record)
		delete(idx.records, h)
	}
	idx.handles.Remove(h)
}

// Collect returns every registered record in handle-ascending order.
func (idx *Index) Collect() []types.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.collectLocked(idx.handles)
}

func (idx *Index) collectLocked(handles *index.HandleSet) []types.Record {
	sorted := handles.Sorted()
	out := make([]types.Record, 0, len(sorted))
	for _, h := range sorted {
		if r, ok := idx.records[h]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Reduced is equality-only sugar over ReducedQuery(and(eq...)). It reports
// an error rather than evaluating if attrEq is empty.
func (idx *Index) Reduced(attrEq map[string]types.Atom) (*View, error) {
	e, err := eqAnd(attrEq)
	if err != nil {
		return nil, err
	}
	return idx.ReducedQuery(e)
}

// ReducedQuery validates e, then evaluates it against the Index's full
// handle set and returns a View holding the matching handles as its
// allow-set. A malformed e (empty path, wrong composite arity) is reported
// as an error rather than reaching the evaluator.
func (idx *Index) ReducedQuery(e query.Expr) (*View, error) {
	if err := query.Validate(e); err != nil {
		return nil, err
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	allow := idx.eval.Eval(e, idx.handles)
	return &View{base: idx, allow: allow}, nil
}

// GetByAttribute is equivalent to Reduced(attrEq).Collect() without
// holding a view.
func (idx *Index) GetByAttribute(attrEq map[string]types.Atom) ([]types.Record, error) {
	v, err := idx.Reduced(attrEq)
	if err != nil {
		return nil, err
	}
	return v.Collect(), nil
}

// Reduce removes, in place, every record that does not match attrEq.
func (idx *Index) Reduce(attrEq map[string]types.Atom) error {
	e, err := eqAnd(attrEq)
	if err != nil {
		return err
	}
	if err := query.Validate(e); err != nil {
		return err
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	keep := idx.eval.Eval(e, idx.handles)
	drop := index.Difference(idx.handles.Clone(), keep)
	drop.Each(func(h types.Handle) bool {
		idx.removeLocked(h)
		return true
	})
	return nil
}

// UnionWith returns a new Index containing the union of this Index's and
// other's records, re-registered in arrival order (this Index's records
// first) as copies of their current attribute snapshots. Neither input is
// mutated, and neither input's records are re-bound: mutating a record
// that was part of either input keeps propagating only to the Index it was
// originally added to.
func (idx *Index) UnionWith(other *Index) *Index {
	idx.mu.RLock()
	mine := idx.snapshotRecordsLocked(idx.handles)
	idx.mu.RUnlock()
	other.mu.RLock()
	theirs := other.snapshotRecordsLocked(other.handles)
	other.mu.RUnlock()

	merged := New(idx.cfg)
	for _, r := range mine {
		merged.Add(r)
	}
	for _, r := range theirs {
		merged.Add(r)
	}
	return merged
}

func eqAnd(attrEq map[string]types.Atom) (query.Expr, error) {
	leaves := make([]query.Expr, 0, len(attrEq))
	names := make([]string, 0, len(attrEq))
	for name := range attrEq {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		leaves = append(leaves, query.Q.Eq(name, attrEq[name]))
	}
	if len(leaves) == 0 {
		return query.Expr{}, errors.New("reduced requires at least one attribute")
	}
	return query.Q.And(leaves...), nil
}
