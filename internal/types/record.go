package types

import "github.com/dball/gindex/internal/iterator"

// AttrValue is a single (name, value) pair yielded by a Record's attribute
// iterator.
type AttrValue struct {
	Name  string
	Value Atom
}

// Observer is the mutation callback a Record invokes on every
// post-registration write to an indexable attribute. Attribute names
// beginning with "_" are not indexable and must not be reported.
type Observer interface {
	// OnSet reports that attr now holds value on the record the observer
	// was bound to.
	OnSet(attr string, value Atom)
	// OnDelete reports that attr no longer has a value on the record the
	// observer was bound to.
	OnDelete(attr string)
}

// Record is the abstract collaborator the engine consumes: a host-language
// entity exposing a dynamic attribute set and a hook for installing a
// mutation observer. The binding that traps attribute writes and reports
// them to the observer lives outside this package; gindex.Bag in
// pkg/gindex is the reference implementation.
type Record interface {
	// Attributes returns the record's current attributes at registration
	// time. Names beginning with "_" must be omitted by the implementation.
	Attributes() *iterator.Iterator[AttrValue]
	// BindObserver installs the engine's mutation observer. The record must
	// invoke it on every subsequent attribute write.
	BindObserver(observer Observer)
}
