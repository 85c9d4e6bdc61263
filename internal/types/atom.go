package types

import "fmt"

// Kind discriminates the variant held by an Atom.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Atom is an immutable, comparable tagged value: an int64, a float64, a
// string, a bool, null, or a reference to another record's Handle. Atom is
// comparable (no slice/map fields) so it can be used directly as a Go map
// key, as GroupBy's result map does. The equality posting lists in
// internal/index key by a normalized form instead (index.eqKey), which
// merges int64 and float64 atoms.
type Atom struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	ref  Handle
}

// Null returns the null atom.
func Null() Atom { return Atom{kind: KindNull} }

// Int returns an atom wrapping a signed 64-bit integer.
func Int(v int64) Atom { return Atom{kind: KindInt, i: v} }

// Float returns an atom wrapping a 64-bit float.
func Float(v float64) Atom { return Atom{kind: KindFloat, f: v} }

// String returns an atom wrapping a string.
func String(v string) Atom { return Atom{kind: KindString, s: v} }

// Bool returns an atom wrapping a boolean.
func Bool(v bool) Atom { return Atom{kind: KindBool, b: v} }

// Ref returns an atom referencing another record by handle.
func Ref(h Handle) Atom { return Atom{kind: KindRef, ref: h} }

// Kind reports which variant the atom holds.
func (a Atom) Kind() Kind { return a.kind }

// IsNull reports whether the atom is the null atom.
func (a Atom) IsNull() bool { return a.kind == KindNull }

// IsNumeric reports whether the atom is an int64 or float64, the only
// variants ordering is defined over.
func (a Atom) IsNumeric() bool {
	return a.kind == KindInt || a.kind == KindFloat
}

// AsFloat64 returns the atom's value cast to float64 and true if the atom is
// numeric; otherwise it returns (0, false). Range indexes key entries by
// this cast value, so an int64 and a float64 that denote the same number
// share a single bucket.
func (a Atom) AsFloat64() (float64, bool) {
	switch a.kind {
	case KindInt:
		return float64(a.i), true
	case KindFloat:
		return a.f, true
	default:
		return 0, false
	}
}

// AsInt64 returns the atom's int64 payload and true if the atom is an int64.
func (a Atom) AsInt64() (int64, bool) {
	if a.kind == KindInt {
		return a.i, true
	}
	return 0, false
}

// AsString returns the atom's string payload and true if the atom is a string.
func (a Atom) AsString() (string, bool) {
	if a.kind == KindString {
		return a.s, true
	}
	return "", false
}

// AsBool returns the atom's bool payload and true if the atom is a bool.
func (a Atom) AsBool() (bool, bool) {
	if a.kind == KindBool {
		return a.b, true
	}
	return false, false
}

// AsRef returns the atom's referenced handle and true if the atom is a ref.
func (a Atom) AsRef() (Handle, bool) {
	if a.kind == KindRef {
		return a.ref, true
	}
	return 0, false
}

// Equal reports structural equality, except int64 and float64 compare
// equal when the float is exactly integral and equal to the int.
func (a Atom) Equal(other Atom) bool {
	if a.kind == other.kind {
		switch a.kind {
		case KindNull:
			return true
		case KindInt:
			return a.i == other.i
		case KindFloat:
			return a.f == other.f
		case KindString:
			return a.s == other.s
		case KindBool:
			return a.b == other.b
		case KindRef:
			return a.ref == other.ref
		}
	}
	if a.kind == KindInt && other.kind == KindFloat {
		return float64(a.i) == other.f && other.f == float64(int64(other.f))
	}
	if a.kind == KindFloat && other.kind == KindInt {
		return other.Equal(a)
	}
	return false
}

func (a Atom) String() string {
	switch a.kind {
	case KindNull:
		return "null"
	case KindInt:
		return fmt.Sprintf("%d", a.i)
	case KindFloat:
		return fmt.Sprintf("%v", a.f)
	case KindString:
		return fmt.Sprintf("%q", a.s)
	case KindBool:
		return fmt.Sprintf("%v", a.b)
	case KindRef:
		return a.ref.String()
	default:
		return "?"
	}
}
