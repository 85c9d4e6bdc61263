package index

import "github.com/dball/gindex/internal/types"

// eqKey is the normalized map key the equality posting lists are indexed by.
// It merges int64 and float64 atoms into a single numeric slot keyed by
// their float64 cast, so an indexed int64(30) and a query for float64(30.0)
// land in the same bucket and compare equal via ordinary Go map equality.
// This mirrors the range index's own choice to key entries by their float64
// cast, so both structures agree on what "the same numeric value" means,
// including the same precision ceiling past 2^53.
type eqKey struct {
	kind types.Kind
	f    float64
	s    string
	b    bool
	ref  types.Handle
}

func normalize(a types.Atom) eqKey {
	switch a.Kind() {
	case types.KindInt, types.KindFloat:
		f, _ := a.AsFloat64()
		return eqKey{kind: types.KindFloat, f: f}
	case types.KindString:
		s, _ := a.AsString()
		return eqKey{kind: types.KindString, s: s}
	case types.KindBool:
		b, _ := a.AsBool()
		return eqKey{kind: types.KindBool, b: b}
	case types.KindRef:
		ref, _ := a.AsRef()
		return eqKey{kind: types.KindRef, ref: ref}
	default:
		return eqKey{kind: types.KindNull}
	}
}
