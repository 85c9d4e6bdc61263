package engine

import (
	"github.com/dball/gindex/internal/index"
	"github.com/dball/gindex/internal/query"
	"github.com/dball/gindex/internal/types"
)

// View is an immutable (base Index, allow-set) pair: the result of a
// reduced/reduced_query call. It holds a strong reference to its base
// Index and an owned allow-set; destroying a View never affects the base
// Index, and further Reduced/ReducedQuery calls compose without touching
// the base Index's structures beyond read access.
type View struct {
	base  *Index
	allow *index.HandleSet
}

// Reduced is equality-only sugar over ReducedQuery(and(eq...)), further
// restricting this view's allow-set. It reports an error rather than
// evaluating if attrEq is empty.
func (v *View) Reduced(attrEq map[string]types.Atom) (*View, error) {
	e, err := eqAnd(attrEq)
	if err != nil {
		return nil, err
	}
	return v.ReducedQuery(e)
}

// ReducedQuery validates e, then evaluates it against this view's allow-set
// and returns a new View holding the matches. A malformed e is reported as
// an error rather than reaching the evaluator.
func (v *View) ReducedQuery(e query.Expr) (*View, error) {
	if err := query.Validate(e); err != nil {
		return nil, err
	}
	v.base.mu.RLock()
	defer v.base.mu.RUnlock()
	allow := v.base.eval.Eval(e, v.allow)
	return &View{base: v.base, allow: allow}, nil
}

// Collect returns the view's matching records in handle-ascending order.
func (v *View) Collect() []types.Record {
	v.base.mu.RLock()
	defer v.base.mu.RUnlock()
	return v.base.collectLocked(v.allow)
}

// Rebase materializes a fresh, independent Index by copying the view's
// matching records' current attribute snapshots and registering the
// copies. The new Index shares no structures with the base Index, and
// none of the base Index's records are re-bound: mutating a record that
// was part of this view keeps propagating only to the base Index.
func (v *View) Rebase() *Index {
	v.base.mu.RLock()
	records := v.base.snapshotRecordsLocked(v.allow)
	v.base.mu.RUnlock()

	rebased := New(v.base.cfg)
	for _, r := range records {
		rebased.Add(r)
	}
	return rebased
}
