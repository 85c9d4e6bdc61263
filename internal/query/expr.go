// Package query implements the predicate algebra evaluated against an
// index: leaf comparisons over a (possibly dotted) attribute path, and
// and/or/not composites over other expressions.
package query

import "github.com/dball/gindex/internal/types"

// Op discriminates an Expr's variant.
type Op uint8

const (
	OpEq Op = iota
	OpNe
	OpIn
	OpGt
	OpGe
	OpLt
	OpLe
	OpBetween
	OpAnd
	OpOr
	OpNot
)

// Expr is a query expression node. Leaf nodes carry Path and the operands
// relevant to Op; composite nodes carry Children. Expr values are meant to
// be constructed through the Q builder, not assembled by hand.
type Expr struct {
	op       Op
	path     string
	value    types.Atom
	values   []types.Atom
	lo, hi   types.Atom
	children []Expr
}

// Q is the query builder namespace, mirroring the engine's exported
// predicate constructors.
var Q builder

type builder struct{}

func (builder) Eq(path string, v types.Atom) Expr {
	return Expr{op: OpEq, path: path, value: v}
}

func (builder) Ne(path string, v types.Atom) Expr {
	return Expr{op: OpNe, path: path, value: v}
}

func (builder) In(path string, vs ...types.Atom) Expr {
	return Expr{op: OpIn, path: path, values: vs}
}

func (builder) Gt(path string, v types.Atom) Expr {
	return Expr{op: OpGt, path: path, value: v}
}

func (builder) Ge(path string, v types.Atom) Expr {
	return Expr{op: OpGe, path: path, value: v}
}

func (builder) Lt(path string, v types.Atom) Expr {
	return Expr{op: OpLt, path: path, value: v}
}

func (builder) Le(path string, v types.Atom) Expr {
	return Expr{op: OpLe, path: path, value: v}
}

// Between is inclusive on both ends.
func (builder) Between(path string, lo, hi types.Atom) Expr {
	return Expr{op: OpBetween, path: path, lo: lo, hi: hi}
}

func (builder) And(children ...Expr) Expr {
	return Expr{op: OpAnd, children: children}
}

func (builder) Or(children ...Expr) Expr {
	return Expr{op: OpOr, children: children}
}

func (builder) Not(child Expr) Expr {
	return Expr{op: OpNot, children: []Expr{child}}
}
