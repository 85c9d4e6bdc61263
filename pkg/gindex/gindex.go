// Package gindex is the public surface of the in-memory object indexer:
// an Index callers register indexable records into, a Q query builder,
// and Atom value constructors. Everything under internal/ is an
// implementation detail reachable only through this package.
package gindex

import (
	"github.com/dball/gindex/internal/engine"
	"github.com/dball/gindex/internal/query"
	"github.com/dball/gindex/internal/types"
)

// Atom is an immutable tagged value: an int64, a float64, a string, a
// bool, null, or a reference to another record's Handle.
type Atom = types.Atom

// Handle is the engine-assigned identity of a registered record.
type Handle = types.Handle

// Record is the interface an indexable entity must satisfy.
type Record = types.Record

var (
	Null   = types.Null
	Int    = types.Int
	Float  = types.Float
	String = types.String
	Bool   = types.Bool
	Ref    = types.Ref
)

// Expr is a built query expression, constructed via Q and passed to
// ReducedQuery.
type Expr = query.Expr

// Q is the query builder: Q.Eq, Q.Ne, Q.In, Q.Gt, Q.Ge, Q.Lt, Q.Le,
// Q.Between, Q.And, Q.Or, Q.Not.
var Q = query.Q

// Validate reports a structured build-time error for a malformed
// expression (empty path, wrong composite arity) before it's evaluated.
func Validate(e Expr) error {
	return query.Validate(e)
}

// Config tunes the structures a new Index allocates.
type Config = engine.Config

// Index is the engine's public handle: the entry point records are added
// to and queries are run against. A zero Config is a reasonable default.
type Index struct {
	core *engine.Index
}

// NewIndex returns an empty Index configured per cfg.
func NewIndex(cfg Config) *Index {
	return &Index{core: engine.New(cfg)}
}

// Add registers record, returning its assigned handle. Re-adding an
// already-registered record is a no-op that returns its existing handle.
func (idx *Index) Add(record Record) Handle {
	return idx.core.Add(record)
}

// AddMany registers each record in order.
func (idx *Index) AddMany(records []Record) []Handle {
	return idx.core.AddMany(records)
}

// Remove destroys h, clearing its attributes from every index structure.
func (idx *Index) Remove(h Handle) {
	idx.core.Remove(h)
}

// Collect returns every registered record in handle-ascending order.
func (idx *Index) Collect() []Record {
	return idx.core.Collect()
}

// Reduced is equality-only sugar over ReducedQuery(and(eq...)). It returns
// an error rather than evaluating if attrEq is empty.
func (idx *Index) Reduced(attrEq map[string]Atom) (*View, error) {
	v, err := idx.core.Reduced(attrEq)
	if err != nil {
		return nil, err
	}
	return &View{core: v}, nil
}

// ReducedQuery evaluates e and returns a View over the matching handles. A
// malformed e (empty path, wrong composite arity) is reported as an error
// rather than panicking during evaluation.
func (idx *Index) ReducedQuery(e Expr) (*View, error) {
	v, err := idx.core.ReducedQuery(e)
	if err != nil {
		return nil, err
	}
	return &View{core: v}, nil
}

// GetByAttribute is equivalent to Reduced(attrEq).Collect() without
// holding a view.
func (idx *Index) GetByAttribute(attrEq map[string]Atom) ([]Record, error) {
	return idx.core.GetByAttribute(attrEq)
}

// Reduce removes, in place, every record that doesn't match attrEq.
func (idx *Index) Reduce(attrEq map[string]Atom) error {
	return idx.core.Reduce(attrEq)
}

// UnionWith returns a new Index containing the union of this Index's and
// other's records. Neither input is mutated.
func (idx *Index) UnionWith(other *Index) *Index {
	return &Index{core: idx.core.UnionWith(other.core)}
}

// GroupBy partitions every handle resolving path into buckets keyed by
// the resolved attribute's current value.
func (idx *Index) GroupBy(path string) (map[Atom][]Handle, error) {
	return idx.core.GroupBy(path)
}

// View is an immutable (base Index, allow-set) pair produced by
// Reduced/ReducedQuery. Further Reduced/ReducedQuery calls refine it
// without re-scanning the base Index.
type View struct {
	core *engine.View
}

// Reduced is equality-only sugar over ReducedQuery(and(eq...)).
func (v *View) Reduced(attrEq map[string]Atom) (*View, error) {
	core, err := v.core.Reduced(attrEq)
	if err != nil {
		return nil, err
	}
	return &View{core: core}, nil
}

// ReducedQuery further restricts this view's allow-set to the handles
// matching e.
func (v *View) ReducedQuery(e Expr) (*View, error) {
	core, err := v.core.ReducedQuery(e)
	if err != nil {
		return nil, err
	}
	return &View{core: core}, nil
}

// Collect returns the view's matching records in handle-ascending order.
func (v *View) Collect() []Record {
	return v.core.Collect()
}

// Rebase materializes a fresh, independent Index from this view's
// matching records.
func (v *View) Rebase() *Index {
	return &Index{core: v.core.Rebase()}
}

// GroupBy restricts the grouping to this view's allow-set.
func (v *View) GroupBy(path string) (map[Atom][]Handle, error) {
	return v.core.GroupBy(path)
}
