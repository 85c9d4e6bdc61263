package query

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dball/gindex/internal/graph"
	"github.com/dball/gindex/internal/index"
)

// Evaluator resolves Expr values into candidate handle sets against a
// single index's attribute posting lists and edge table.
type Evaluator struct {
	attrs *index.Indexes
	edges *graph.EdgeTable
	paths *graph.PathCache
}

// NewEvaluator builds an evaluator over the given attribute index and edge
// table, using paths to memoize dotted-path splits.
func NewEvaluator(attrs *index.Indexes, edges *graph.EdgeTable, paths *graph.PathCache) *Evaluator {
	return &Evaluator{attrs: attrs, edges: edges, paths: paths}
}

// Eval returns the handles in scope matching e. scope is the base Index's
// full handle set for an unfiltered query, or a FilteredView's allow-set.
func (ev *Evaluator) Eval(e Expr, scope *index.HandleSet) *index.HandleSet {
	switch e.op {
	case OpEq, OpIn, OpGt, OpGe, OpLt, OpLe, OpBetween:
		return index.Intersect(ev.resolve(e), scope)
	case OpNe:
		eqForm := e
		eqForm.op = OpEq
		return index.Difference(scope, ev.resolve(eqForm))
	case OpAnd:
		return ev.evalAnd(e.children, scope)
	case OpOr:
		return ev.evalOr(e.children, scope)
	case OpNot:
		return index.Difference(scope, ev.Eval(e.children[0], scope))
	default:
		return index.NewHandleSet(0)
	}
}

// evalAnd orders children by ascending estimated cardinality, then
// evaluates and intersects them one at a time, stopping as soon as either
// the running intersection or a not-yet-evaluated child turns out empty.
// Ordering by estimate rather than by evaluating every child upfront means
// an expensive child (a deep nested path, a wide range) is never evaluated
// at all once a cheap leading child has already emptied the accumulator.
func (ev *Evaluator) evalAnd(children []Expr, scope *index.HandleSet) *index.HandleSet {
	if len(children) == 0 {
		return index.NewHandleSet(0)
	}
	ordered := make([]Expr, len(children))
	copy(ordered, children)
	scopeLen := scope.Len()
	sort.Slice(ordered, func(i, j int) bool {
		return ev.estimateCardinality(ordered[i], scopeLen) < ev.estimateCardinality(ordered[j], scopeLen)
	})
	acc := ev.Eval(ordered[0], scope)
	for i := 1; i < len(ordered) && acc.Len() > 0; i++ {
		acc = index.Intersect(acc, ev.Eval(ordered[i], scope))
	}
	return acc
}

// estimateCardinality returns a cheap estimate (not a bound) of how many
// handles a child expression will match, used only to order And's
// children from cheapest to most expensive before evaluating them. A leaf's
// estimate is the membership count of its path's final segment.
// scopeLen is the fallback for anything not backed by a single indexed
// attribute (Not, an unindexed path, a malformed path).
func (ev *Evaluator) estimateCardinality(e Expr, scopeLen int) int {
	switch e.op {
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe, OpBetween, OpIn:
		segs, err := ev.paths.ParsePath(e.path)
		if err != nil || len(segs) == 0 {
			return scopeLen
		}
		c := ev.attrs.Cardinality(segs[len(segs)-1])
		if c == 0 {
			return scopeLen
		}
		return c
	case OpAnd:
		best := scopeLen
		for _, c := range e.children {
			if v := ev.estimateCardinality(c, scopeLen); v < best {
				best = v
			}
		}
		return best
	case OpOr:
		sum := 0
		for _, c := range e.children {
			sum += ev.estimateCardinality(c, scopeLen)
		}
		if sum > scopeLen {
			return scopeLen
		}
		return sum
	default:
		return scopeLen
	}
}

// evalOr evaluates every child concurrently and unions the results.
func (ev *Evaluator) evalOr(children []Expr, scope *index.HandleSet) *index.HandleSet {
	results := make([]*index.HandleSet, len(children))
	g, _ := errgroup.WithContext(context.Background())
	for i, c := range children {
		i, c := i, c
		g.Go(func() error {
			results[i] = ev.Eval(c, scope)
			return nil
		})
	}
	_ = g.Wait()
	out := index.NewHandleSet(0)
	for _, r := range results {
		out = index.Union(out, r)
	}
	return out
}

// resolve computes the raw candidate set for a leaf expression's path,
// unrestricted by any outer scope. A multi-segment path is resolved
// tail-first: the tail's candidates are computed over the referenced
// attribute, then pulled back one hop via the edge table's reverse lookup.
// This is depth-first on the path, never on the object graph, so cycles
// among records are harmless.
func (ev *Evaluator) resolve(e Expr) *index.HandleSet {
	segs, err := ev.paths.ParsePath(e.path)
	if err != nil {
		return index.NewHandleSet(0)
	}
	return ev.resolveSegments(segs, e)
}

func (ev *Evaluator) resolveSegments(segs []string, e Expr) *index.HandleSet {
	head := segs[0]
	if len(segs) == 1 {
		return ev.matchAttr(head, e)
	}
	tail := e
	tail.path = strings.Join(segs[1:], ".")
	children := ev.resolveSegments(segs[1:], tail)
	return ev.edges.ParentsOfAny(children, head)
}

func (ev *Evaluator) matchAttr(attr string, e Expr) *index.HandleSet {
	switch e.op {
	case OpEq:
		return ev.attrs.Eq(attr, e.value)
	case OpIn:
		out := index.NewHandleSet(0)
		for _, v := range e.values {
			out = index.Union(out, ev.attrs.Eq(attr, v))
		}
		return out
	case OpGt:
		lo, ok := e.value.AsFloat64()
		if !ok {
			return index.NewHandleSet(0)
		}
		return ev.attrs.Range(attr, &lo, nil, false, false)
	case OpGe:
		lo, ok := e.value.AsFloat64()
		if !ok {
			return index.NewHandleSet(0)
		}
		return ev.attrs.Range(attr, &lo, nil, true, false)
	case OpLt:
		hi, ok := e.value.AsFloat64()
		if !ok {
			return index.NewHandleSet(0)
		}
		return ev.attrs.Range(attr, nil, &hi, false, false)
	case OpLe:
		hi, ok := e.value.AsFloat64()
		if !ok {
			return index.NewHandleSet(0)
		}
		return ev.attrs.Range(attr, nil, &hi, false, true)
	case OpBetween:
		lo, loOk := e.lo.AsFloat64()
		hi, hiOk := e.hi.AsFloat64()
		if !loOk || !hiOk {
			return index.NewHandleSet(0)
		}
		return ev.attrs.Range(attr, &lo, &hi, true, true)
	default:
		return index.NewHandleSet(0)
	}
}
